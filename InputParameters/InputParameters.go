package InputParameters

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/ghodss/yaml"
)

// ShapeParameters describes the subdomain region, obtained from the YAML shape file
type ShapeParameters struct {
	Title     string     `json:"Title"`
	Type      string     `json:"Type"` // "c" for circle, "e" for ellipse
	Center    [2]float64 `json:"Center"`
	Radius    float64    `json:"Radius"`
	SemiMajor float64    `json:"SemiMajor"`
	SemiMinor float64    `json:"SemiMinor"`
	Rotation  float64    `json:"Rotation"` // Radians
}

func (sp *ShapeParameters) Parse(data []byte) error {
	if err := yaml.Unmarshal(data, sp); err != nil {
		return err
	}
	sp.Type = strings.ToLower(strings.TrimSpace(sp.Type))
	return nil
}

func (sp *ShapeParameters) Print(w io.Writer) {
	if sp.Title != "" {
		fmt.Fprintf(w, "\"%s\"\t\t= Title\n", sp.Title)
	}
	fmt.Fprintf(w, "[%s]\t\t\t= Shape Type\n", sp.Type)
	fmt.Fprintf(w, "(%g, %g)\t\t= Center\n", sp.Center[0], sp.Center[1])
	switch sp.Type {
	case "c":
		fmt.Fprintf(w, "%8.5f\t\t= Radius\n", sp.Radius)
	case "e":
		fmt.Fprintf(w, "%8.5f\t\t= Semi Major Axis\n", sp.SemiMajor)
		fmt.Fprintf(w, "%8.5f\t\t= Semi Minor Axis\n", sp.SemiMinor)
		fmt.Fprintf(w, "%8.5f\t\t= Rotation (radians)\n", sp.Rotation)
	}
}

func (sp *ShapeParameters) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("type", sp.Type),
		slog.String("center", fmt.Sprintf("(%g, %g)", sp.Center[0], sp.Center[1])),
	}
	switch sp.Type {
	case "c":
		attrs = append(attrs, slog.Float64("radius", sp.Radius))
	case "e":
		attrs = append(attrs,
			slog.Float64("semi_major", sp.SemiMajor),
			slog.Float64("semi_minor", sp.SemiMinor),
			slog.Float64("rotation", sp.Rotation))
	}
	if sp.Title != "" {
		attrs = append(attrs, slog.String("title", sp.Title))
	}
	return slog.GroupValue(attrs...)
}
