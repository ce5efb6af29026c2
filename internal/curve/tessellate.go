// Package curve expands parametric curve control polygons into polylines.
package curve

import (
	"fmt"

	"github.com/thurbridi/rudolph/internal/geom"
)

// DefaultSteps is the number of samples taken per cubic segment.
const DefaultSteps = 20

// bezierBasis is the cubic Bezier basis matrix, row-major.
var bezierBasis = [16]float64{
	-1, 3, -3, 1,
	3, -6, 3, 0,
	-3, 3, 0, 0,
	1, 0, 0, 0,
}

// bsplineBasis is the uniform cubic B-spline basis matrix divided by 6,
// row-major.
var bsplineBasis = [16]float64{
	-1.0 / 6, 3.0 / 6, -3.0 / 6, 1.0 / 6,
	3.0 / 6, -6.0 / 6, 3.0 / 6, 0,
	-3.0 / 6, 0, 3.0 / 6, 0,
	1.0 / 6, 4.0 / 6, 1.0 / 6, 0,
}

// ControlCountError reports a control polygon that cannot be grouped into
// cubic segments under the requested basis.
type ControlCountError struct {
	Basis string
	Count int
}

func (e *ControlCountError) Error() string {
	return fmt.Sprintf("%s curve cannot be built from %d control points", e.Basis, e.Count)
}

// Bezier tessellates a chain of cubic Bezier segments. Control points are
// consumed in overlapping groups of four sharing an endpoint, so segment k
// uses controls[3k : 3k+4]. Each segment is sampled at steps uniform
// parameter values including both ends, so the polyline starts at the
// first control point and ends at the last.
func Bezier(controls []geom.Vec2, steps int) ([]geom.Vec2, error) {
	if len(controls) < 4 || (len(controls)-1)%3 != 0 {
		return nil, &ControlCountError{Basis: "bezier", Count: len(controls)}
	}
	if steps < 2 {
		steps = DefaultSteps
	}

	segments := (len(controls) - 1) / 3
	points := make([]geom.Vec2, 0, segments*steps)

	for k := 0; k < segments; k++ {
		g := controls[3*k : 3*k+4]
		for i := 0; i < steps; i++ {
			t := float64(i) / float64(steps-1)
			points = append(points, evalCubic(g, t))
		}
	}
	return points, nil
}

// evalCubic evaluates [t^3, t^2, t, 1] * bezierBasis * G per axis.
func evalCubic(g []geom.Vec2, t float64) geom.Vec2 {
	tv := [4]float64{t * t * t, t * t, t, 1}

	var w [4]float64
	for j := 0; j < 4; j++ {
		for i := 0; i < 4; i++ {
			w[j] += tv[i] * bezierBasis[i*4+j]
		}
	}

	var p geom.Vec2
	for i := 0; i < 4; i++ {
		p.X += w[i] * g[i].X
		p.Y += w[i] * g[i].Y
	}
	return p
}

// BSpline tessellates a uniform cubic B-spline over a sliding window of
// four consecutive control points, using forward differences. The
// difference state is recomputed for every window; carrying it across
// segments accumulates floating error.
func BSpline(controls []geom.Vec2, steps int) ([]geom.Vec2, error) {
	if len(controls) < 4 {
		return nil, &ControlCountError{Basis: "b-spline", Count: len(controls)}
	}
	if steps < 2 {
		steps = DefaultSteps
	}

	segments := len(controls) - 3
	points := make([]geom.Vec2, 0, segments*(steps+1))

	for i := 3; i < len(controls); i++ {
		g := controls[i-3 : i+1]
		cx := coefficients(g[0].X, g[1].X, g[2].X, g[3].X)
		cy := coefficients(g[0].Y, g[1].Y, g[2].Y, g[3].Y)

		points = append(points, forwardDifferences(cx, cy, steps)...)
	}
	return points, nil
}

// coefficients computes the cubic coefficients (a, b, c, d) for one axis:
// bsplineBasis * G.
func coefficients(g0, g1, g2, g3 float64) [4]float64 {
	var c [4]float64
	for i := 0; i < 4; i++ {
		c[i] = bsplineBasis[i*4]*g0 + bsplineBasis[i*4+1]*g1 +
			bsplineBasis[i*4+2]*g2 + bsplineBasis[i*4+3]*g3
	}
	return c
}

// forwardDifferences generates steps+1 points of the cubic
// a*t^3 + b*t^2 + c*t + d by repeatedly adding running differences
// instead of re-evaluating the polynomial.
func forwardDifferences(cx, cy [4]float64, steps int) []geom.Vec2 {
	delta := 1 / float64(steps)
	d2 := delta * delta
	d3 := d2 * delta

	// Initial value and first/second/third differences at t=0.
	x := cx[3]
	dx := cx[0]*d3 + cx[1]*d2 + cx[2]*delta
	d2x := 6*cx[0]*d3 + 2*cx[1]*d2
	d3x := 6 * cx[0] * d3

	y := cy[3]
	dy := cy[0]*d3 + cy[1]*d2 + cy[2]*delta
	d2y := 6*cy[0]*d3 + 2*cy[1]*d2
	d3y := 6 * cy[0] * d3

	points := make([]geom.Vec2, 0, steps+1)
	points = append(points, geom.Vec2{X: x, Y: y})

	for i := 0; i < steps; i++ {
		x += dx
		dx += d2x
		d2x += d3x

		y += dy
		dy += d2y
		d2y += d3y

		points = append(points, geom.Vec2{X: x, Y: y})
	}
	return points
}
