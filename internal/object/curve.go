package object

import (
	"fmt"

	"github.com/thurbridi/rudolph/internal/curve"
	"github.com/thurbridi/rudolph/internal/geom"
)

// CurveBasis selects the basis a curve's control polygon is interpreted
// under.
type CurveBasis int

const (
	BasisBezier CurveBasis = iota
	BasisBSpline
)

func (b CurveBasis) String() string {
	switch b {
	case BasisBezier:
		return "bezier"
	case BasisBSpline:
		return "b-spline"
	}
	return fmt.Sprintf("basis(%d)", int(b))
}

// NewCurve builds a curve object from a control polygon, tessellating it
// immediately. Bezier curves need 3k+1 control points (k >= 1); B-splines
// need at least 4.
func NewCurve(name string, controls []geom.Vec2, basis CurveBasis) (*Object, error) {
	return NewCurveWithSteps(name, controls, basis, curve.DefaultSteps)
}

// NewCurveWithSteps is NewCurve with an explicit sample count per cubic
// segment.
func NewCurveWithSteps(name string, controls []geom.Vec2, basis CurveBasis, steps int) (*Object, error) {
	cs := make([]geom.Vec2, len(controls))
	copy(cs, controls)

	var (
		vertices []geom.Vec2
		err      error
	)
	switch basis {
	case BasisBezier:
		vertices, err = curve.Bezier(cs, steps)
	case BasisBSpline:
		vertices, err = curve.BSpline(cs, steps)
	default:
		return nil, &ValidationError{Kind: KindCurve, Reason: fmt.Sprintf("unknown basis %v", basis)}
	}
	if err != nil {
		return nil, &ValidationError{Kind: KindCurve, Reason: err.Error()}
	}

	return &Object{
		Name:     name,
		Kind:     KindCurve,
		Vertices: vertices,
		Controls: cs,
		Basis:    basis,
		dirty:    true,
	}, nil
}

// NewTessellatedCurve wraps an already-tessellated polyline as a curve
// object without re-tessellating. The scene file format stores curves as
// their tessellation, so decoding goes through here.
func NewTessellatedCurve(name string, vertices []geom.Vec2) (*Object, error) {
	if len(vertices) < 2 {
		return nil, &ValidationError{
			Kind:   KindCurve,
			Reason: fmt.Sprintf("polyline needs at least 2 vertices, got %d", len(vertices)),
		}
	}
	vs := make([]geom.Vec2, len(vertices))
	copy(vs, vertices)
	return &Object{
		Name:     name,
		Kind:     KindCurve,
		Vertices: vs,
		Controls: vs,
		dirty:    true,
	}, nil
}
