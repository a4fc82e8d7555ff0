/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/notargets/subdomain/InputParameters"
	"github.com/notargets/subdomain/adcirc"
	"github.com/notargets/subdomain/geometry2D"
	"github.com/notargets/subdomain/mesh/readers"
	"github.com/notargets/subdomain/mesh/writers"
	"github.com/notargets/subdomain/subdomain"
	"github.com/notargets/subdomain/utils"
)

const (
	DefaultShapeFile = "shape.yaml"
	advisoryNotice   = "prepare fort.15 and any meteorological forcing files of the subdomain manually"
)

const exampleShapeFile = `
########################################
Title: "Inlet subdomain"
Type: e          # c for circle, e for ellipse
Center: [ -77.5, 34.25 ]
Radius: 0.3      # circle only
SemiMajor: 0.4   # ellipse only
SemiMinor: 0.15
Rotation: 0.785  # radians, counter-clockwise
########################################
`

type ExtractParameters struct {
	FullDir   string // Run directory of the full domain, holds fort.14
	SubDir    string // Output directory of the subdomain
	MeshFile  string // Full mesh, defaults to FullDir/fort.14
	ShapeFile string // Defaults to SubDir/shape.yaml
	Shape     InputParameters.ShapeParameters
	Control   adcirc.ControlParams
	Verbose   bool
}

// ExtractCmd represents the extract command
var ExtractCmd = &cobra.Command{
	Use:   "extract [fullDir subDir]",
	Short: "Cut a circular or elliptical subdomain out of a full ADCIRC mesh",
	Long: `Cut a circular or elliptical subdomain out of a full ADCIRC mesh.

The shape is read from a YAML file, shape.yaml in the subdomain directory unless
--shape is given, and any shape flag overrides the value from the file. An
example shape file:
` + exampleShapeFile,
	Args: cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger(cmd.ErrOrStderr(), viper.GetBool("verbose"))
		ep, err := processInput(cmd, args)
		if err != nil {
			logger.Error("invalid input", "err", err)
			return loggedError{err}
		}
		if ep.Verbose {
			ep.Shape.Print(cmd.ErrOrStderr())
		}
		if err = runExtract(ep, logger); err != nil {
			logger.Error("extraction failed", "err", err)
			return loggedError{err}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(ExtractCmd)
	flags := ExtractCmd.Flags()
	flags.StringP("full", "F", "", "run directory of the full domain")
	flags.StringP("sub", "S", "", "output directory of the subdomain")
	flags.StringP("mesh", "M", "", "full mesh file, fort.14 or .su2 (default is <full>/fort.14)")
	flags.StringP("shape", "I", "", "shape file (default is <sub>/shape.yaml)")
	flags.String("type", "", "shape type, c (circle) or e (ellipse)")
	flags.Float64("x", 0, "x coordinate of the shape center")
	flags.Float64("y", 0, "y coordinate of the shape center")
	flags.Float64("r", 0, "circle radius")
	flags.Float64("a", 0, "ellipse semi major axis")
	flags.Float64("b", 0, "ellipse semi minor axis")
	flags.Float64("theta", 0, "ellipse rotation in radians")
	for _, name := range []string{"full", "sub", "mesh", "shape"} {
		_ = viper.BindPFlag(name, flags.Lookup(name))
	}

	defaults := adcirc.DefaultControlParams()
	viper.SetDefault("fort015.noutgs", defaults.NOUTGS)
	viper.SetDefault("fort015.nspoolgs", defaults.NSPOOLGS)
	viper.SetDefault("fort015.enforcebn", defaults.EnforceBN)
	viper.SetDefault("fort015.ncbnr", defaults.NCBNR)
}

func processInput(cmd *cobra.Command, args []string) (ep *ExtractParameters, err error) {
	ep = &ExtractParameters{
		FullDir:   viper.GetString("full"),
		SubDir:    viper.GetString("sub"),
		MeshFile:  viper.GetString("mesh"),
		ShapeFile: viper.GetString("shape"),
		Verbose:   viper.GetBool("verbose"),
		Control: adcirc.ControlParams{
			NOUTGS:    viper.GetInt("fort015.noutgs"),
			NSPOOLGS:  viper.GetInt("fort015.nspoolgs"),
			EnforceBN: viper.GetInt("fort015.enforcebn"),
			NCBNR:     viper.GetInt("fort015.ncbnr"),
		},
	}
	if len(args) == 2 {
		ep.FullDir, ep.SubDir = args[0], args[1]
	} else if len(args) == 1 {
		return nil, fmt.Errorf("give both the full and the subdomain directories, have only %q", args[0])
	}
	if ep.FullDir == "" || ep.SubDir == "" {
		return nil, fmt.Errorf("must supply the full (-F, --full) and subdomain (-S, --sub) directories")
	}

	flags := cmd.Flags()
	shapeFlagged := flags.Changed("type")
	shapeFile := ep.ShapeFile
	if shapeFile == "" {
		shapeFile = filepath.Join(ep.SubDir, DefaultShapeFile)
	}
	data, err := os.ReadFile(shapeFile)
	switch {
	case err == nil:
		if err = ep.Shape.Parse(data); err != nil {
			return nil, fmt.Errorf("%s: %w", shapeFile, err)
		}
	case errors.Is(err, fs.ErrNotExist) && ep.ShapeFile == "" && shapeFlagged:
	default:
		return nil, fmt.Errorf("%w\nmust supply a shape file (-I, --shape) or --type, example shape file:%s",
			err, exampleShapeFile)
	}

	if shapeFlagged {
		shapeType, _ := flags.GetString("type")
		ep.Shape.Type = strings.ToLower(strings.TrimSpace(shapeType))
	}
	overrides := []struct {
		name string
		dst  *float64
	}{
		{"x", &ep.Shape.Center[0]},
		{"y", &ep.Shape.Center[1]},
		{"r", &ep.Shape.Radius},
		{"a", &ep.Shape.SemiMajor},
		{"b", &ep.Shape.SemiMinor},
		{"theta", &ep.Shape.Rotation},
	}
	for _, o := range overrides {
		if flags.Changed(o.name) {
			*o.dst, _ = flags.GetFloat64(o.name)
		}
	}
	return ep, nil
}

// runExtract reads the full mesh, extracts the subdomain and writes its input files
func runExtract(ep *ExtractParameters, logger *slog.Logger) error {
	meshFile := ep.MeshFile
	if meshFile == "" {
		meshFile = filepath.Join(ep.FullDir, subdomain.MeshFile)
	}
	if _, err := os.Stat(meshFile); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: no full mesh at %s", subdomain.ErrMissingInput, meshFile)
		}
		return err
	}

	shape, err := geometry2D.NewShape(&ep.Shape)
	if err != nil {
		return err
	}
	logger.Info("subdomain shape", "shape", &ep.Shape)

	full, err := readers.ReadMeshFile(meshFile)
	if err != nil {
		return err
	}
	logger.Info("read full mesh", "file", meshFile, "mesh", full.Statistics())

	sd, err := subdomain.Extract(full, shape, logger)
	if err != nil {
		return err
	}

	// Optional inputs are read and checked before the first file is written
	var attributes []byte
	attributesFile := filepath.Join(ep.FullDir, adcirc.NodalAttributesFile)
	if _, err = os.Stat(attributesFile); err == nil {
		if attributes, err = adcirc.FilterNodalAttributesFile(attributesFile, sd.FullToSub, sd.NumNodes()); err != nil {
			return err
		}
	}
	swanFiles, err := adcirc.CoupledFiles(ep.FullDir)
	if err != nil {
		return err
	}

	if err = os.MkdirAll(ep.SubDir, 0755); err != nil {
		return err
	}
	if err = sd.WriteFiles(ep.SubDir); err != nil {
		return err
	}
	logger.Debug("wrote subdomain mesh and mappings", "dir", ep.SubDir)

	if attributes != nil {
		err = writers.WriteFile(filepath.Join(ep.SubDir, adcirc.NodalAttributesFile), func(w io.Writer) error {
			_, err := w.Write(attributes)
			return err
		})
		if err != nil {
			return err
		}
		logger.Info("extracted nodal attributes", "file", attributesFile)
	}

	err = writers.WriteFile(filepath.Join(ep.SubDir, adcirc.ControlFile), func(w io.Writer) error {
		return adcirc.WriteControlFile(w, ep.Control)
	})
	if err != nil {
		return err
	}

	if swanFiles != nil {
		if _, err = adcirc.CopyCoupledFiles(ep.FullDir, ep.SubDir); err != nil {
			return err
		}
		logger.Info("copied SWAN input files", "dir", ep.SubDir, "files", swanFiles)
	}

	logger.Info("subdomain input files written", "dir", ep.SubDir, "mesh", sd.Mesh.Statistics())
	logger.Debug("memory", "mem", utils.MemUsage())
	logger.Info(advisoryNotice)
	return nil
}
