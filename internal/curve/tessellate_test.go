package curve

import (
	"errors"
	"math"
	"testing"

	"github.com/thurbridi/rudolph/internal/geom"
)

func TestBezierEndpointInterpolation(t *testing.T) {
	controls := []geom.Vec2{
		geom.V2(0, 0),
		geom.V2(1, 2),
		geom.V2(3, 2),
		geom.V2(4, 0),
	}
	points, err := Bezier(controls, 20)
	if err != nil {
		t.Fatal(err)
	}
	if len(points) != 20 {
		t.Fatalf("got %d points, want 20", len(points))
	}
	if !points[0].NearlyEqual(controls[0], 1e-9) {
		t.Errorf("first point %v, want %v", points[0], controls[0])
	}
	if !points[len(points)-1].NearlyEqual(controls[3], 1e-9) {
		t.Errorf("last point %v, want %v", points[len(points)-1], controls[3])
	}
}

func TestBezierChainedSegments(t *testing.T) {
	// Seven controls make two segments sharing the fourth point.
	controls := []geom.Vec2{
		geom.V2(0, 0), geom.V2(1, 1), geom.V2(2, 1), geom.V2(3, 0),
		geom.V2(4, -1), geom.V2(5, -1), geom.V2(6, 0),
	}
	points, err := Bezier(controls, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(points) != 20 {
		t.Fatalf("got %d points, want 20", len(points))
	}
	// Segment boundary: sample 9 ends at the shared control, sample 10
	// starts there again.
	if !points[9].NearlyEqual(geom.V2(3, 0), 1e-9) {
		t.Errorf("first segment ends at %v, want (3,0)", points[9])
	}
	if !points[10].NearlyEqual(geom.V2(3, 0), 1e-9) {
		t.Errorf("second segment starts at %v, want (3,0)", points[10])
	}
}

func TestBezierCollinearControls(t *testing.T) {
	controls := []geom.Vec2{
		geom.V2(0, 0), geom.V2(1, 0), geom.V2(2, 0), geom.V2(3, 0),
	}
	points, err := Bezier(controls, 15)
	if err != nil {
		t.Fatal(err)
	}
	for i, p := range points {
		if math.Abs(p.Y) > 1e-9 {
			t.Errorf("point %d = %v, want y=0", i, p)
		}
	}
}

func TestBezierControlCount(t *testing.T) {
	valid := []int{4, 7, 10, 13}
	invalid := []int{0, 1, 2, 3, 5, 6, 8, 9}

	mk := func(n int) []geom.Vec2 {
		vs := make([]geom.Vec2, n)
		for i := range vs {
			vs[i] = geom.V2(float64(i), float64(i%2))
		}
		return vs
	}

	for _, n := range valid {
		if _, err := Bezier(mk(n), 5); err != nil {
			t.Errorf("%d controls rejected: %v", n, err)
		}
	}
	for _, n := range invalid {
		_, err := Bezier(mk(n), 5)
		var ce *ControlCountError
		if !errors.As(err, &ce) {
			t.Errorf("%d controls: err = %v, want ControlCountError", n, err)
		}
	}
}

func TestBSplineCollinearControls(t *testing.T) {
	// Controls on the line y=x; the tessellation must stay on it.
	controls := []geom.Vec2{
		geom.V2(0, 0), geom.V2(1, 1), geom.V2(2, 2), geom.V2(3, 3), geom.V2(4, 4),
	}
	points, err := BSpline(controls, 12)
	if err != nil {
		t.Fatal(err)
	}
	for i, p := range points {
		if math.Abs(p.Y-p.X) > 1e-9 {
			t.Errorf("point %d = %v, want y=x", i, p)
		}
	}
}

func TestBSplineControlCount(t *testing.T) {
	mk := func(n int) []geom.Vec2 {
		vs := make([]geom.Vec2, n)
		for i := range vs {
			vs[i] = geom.V2(float64(i), 0)
		}
		return vs
	}

	for _, n := range []int{0, 1, 2, 3} {
		_, err := BSpline(mk(n), 5)
		var ce *ControlCountError
		if !errors.As(err, &ce) {
			t.Errorf("%d controls: err = %v, want ControlCountError", n, err)
		}
	}
	for _, n := range []int{4, 5, 9} {
		if _, err := BSpline(mk(n), 5); err != nil {
			t.Errorf("%d controls rejected: %v", n, err)
		}
	}
}

func TestBSplinePointCount(t *testing.T) {
	mk := func(n int) []geom.Vec2 {
		vs := make([]geom.Vec2, n)
		for i := range vs {
			vs[i] = geom.V2(float64(i), float64(i*i))
		}
		return vs
	}

	tests := []struct {
		controls, steps, want int
	}{
		{4, 10, 11},
		{5, 10, 22},
		{6, 4, 15},
	}
	for _, tt := range tests {
		points, err := BSpline(mk(tt.controls), tt.steps)
		if err != nil {
			t.Fatal(err)
		}
		if len(points) != tt.want {
			t.Errorf("%d controls, %d steps: got %d points, want %d",
				tt.controls, tt.steps, len(points), tt.want)
		}
	}
}

func TestBSplineMatchesDirectEvaluation(t *testing.T) {
	controls := []geom.Vec2{
		geom.V2(0, 0), geom.V2(2, 4), geom.V2(5, 4), geom.V2(7, 0),
	}
	steps := 16
	points, err := BSpline(controls, steps)
	if err != nil {
		t.Fatal(err)
	}

	cx := coefficients(controls[0].X, controls[1].X, controls[2].X, controls[3].X)
	cy := coefficients(controls[0].Y, controls[1].Y, controls[2].Y, controls[3].Y)
	eval := func(c [4]float64, t float64) float64 {
		return c[0]*t*t*t + c[1]*t*t + c[2]*t + c[3]
	}

	for i, p := range points {
		u := float64(i) / float64(steps)
		want := geom.V2(eval(cx, u), eval(cy, u))
		if !p.NearlyEqual(want, 1e-6) {
			t.Errorf("point %d = %v, direct evaluation gives %v", i, p, want)
		}
	}
}

func TestBSplineSegmentsRejoin(t *testing.T) {
	// Consecutive windows share three controls, so the last point of one
	// segment equals the first point of the next.
	controls := []geom.Vec2{
		geom.V2(0, 0), geom.V2(1, 3), geom.V2(3, 3), geom.V2(4, 0), geom.V2(6, -2),
	}
	steps := 8
	points, err := BSpline(controls, steps)
	if err != nil {
		t.Fatal(err)
	}
	if len(points) != 2*(steps+1) {
		t.Fatalf("got %d points, want %d", len(points), 2*(steps+1))
	}
	if !points[steps].NearlyEqual(points[steps+1], 1e-6) {
		t.Errorf("segments disconnected: %v vs %v", points[steps], points[steps+1])
	}
}
