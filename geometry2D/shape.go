package geometry2D

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/notargets/subdomain/InputParameters"
)

// ErrInvalidShape is returned for shape descriptors that cannot select a region
var ErrInvalidShape = errors.New("invalid subdomain shape")

// Shape decides whether a point lies strictly inside a region. Points on the
// region boundary are outside.
type Shape interface {
	Contains(p r2.Vec) bool
}

type Circle struct {
	Center r2.Vec
	Radius float64
	rsq    float64
}

func NewCircle(center r2.Vec, radius float64) (*Circle, error) {
	if radius < 0 || math.IsNaN(radius) {
		return nil, fmt.Errorf("%w: circle radius must be non-negative, have %g", ErrInvalidShape, radius)
	}
	return &Circle{Center: center, Radius: radius, rsq: radius * radius}, nil
}

func (c *Circle) Contains(p r2.Vec) bool {
	return r2.Norm2(r2.Sub(p, c.Center)) < c.rsq
}

// Ellipse is centered at Center with semi axes SemiMajor along the local x and
// SemiMinor along the local y, the local frame being rotated by Rotation radians
// counter-clockwise from the global frame
type Ellipse struct {
	Center               r2.Vec
	SemiMajor, SemiMinor float64
	Rotation             float64
	sin, cos             float64
}

func NewEllipse(center r2.Vec, semiMajor, semiMinor, rotation float64) (*Ellipse, error) {
	if !(semiMajor > 0) || !(semiMinor > 0) {
		return nil, fmt.Errorf("%w: ellipse axes must be positive, have %g and %g",
			ErrInvalidShape, semiMajor, semiMinor)
	}
	sin, cos := math.Sincos(rotation)
	return &Ellipse{
		Center:    center,
		SemiMajor: semiMajor,
		SemiMinor: semiMinor,
		Rotation:  rotation,
		sin:       sin,
		cos:       cos,
	}, nil
}

// ToLocal translates p to the ellipse center and rotates it by -Rotation
func (e *Ellipse) ToLocal(p r2.Vec) r2.Vec {
	d := r2.Sub(p, e.Center)
	return r2.Vec{
		X: e.cos*d.X + e.sin*d.Y,
		Y: -e.sin*d.X + e.cos*d.Y,
	}
}

func (e *Ellipse) Contains(p r2.Vec) bool {
	l := e.ToLocal(p)
	x, y := l.X/e.SemiMajor, l.Y/e.SemiMinor
	return x*x+y*y < 1
}

// NewShape builds the region described by the shape parameters
func NewShape(sp *InputParameters.ShapeParameters) (Shape, error) {
	center := r2.Vec{X: sp.Center[0], Y: sp.Center[1]}
	switch sp.Type {
	case "c":
		c, err := NewCircle(center, sp.Radius)
		if err != nil {
			return nil, err
		}
		return c, nil
	case "e":
		e, err := NewEllipse(center, sp.SemiMajor, sp.SemiMinor, sp.Rotation)
		if err != nil {
			return nil, err
		}
		return e, nil
	default:
		return nil, fmt.Errorf("%w: unrecognized shape type %q, use \"c\" (circle) or \"e\" (ellipse)",
			ErrInvalidShape, sp.Type)
	}
}
