package object

import (
	"errors"
	"testing"

	"github.com/thurbridi/rudolph/internal/geom"
)

const eps = 1e-9

func TestNewLineRejectsCoincidentEndpoints(t *testing.T) {
	_, err := NewLine("degenerate", geom.V2(1, 1), geom.V2(1, 1))
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
	if ve.Kind != KindLine {
		t.Errorf("error kind = %v, want line", ve.Kind)
	}
}

func TestNewPolygonRejectsTooFewVertices(t *testing.T) {
	_, err := NewPolygon("flat", []geom.Vec2{geom.V2(0, 0), geom.V2(1, 1)}, false)
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
}

func TestNewPolygonCopiesVertices(t *testing.T) {
	vs := []geom.Vec2{geom.V2(0, 0), geom.V2(1, 0), geom.V2(0, 1)}
	obj, err := NewPolygon("tri", vs, false)
	if err != nil {
		t.Fatal(err)
	}
	vs[0] = geom.V2(99, 99)
	if obj.Vertices[0] != geom.V2(0, 0) {
		t.Error("polygon shares the caller's vertex slice")
	}
}

func TestCentroid(t *testing.T) {
	obj, err := NewPolygon("square", []geom.Vec2{
		geom.V2(0, 0), geom.V2(2, 0), geom.V2(2, 2), geom.V2(0, 2),
	}, false)
	if err != nil {
		t.Fatal(err)
	}
	if got := obj.Centroid(); !got.NearlyEqual(geom.V2(1, 1), eps) {
		t.Errorf("centroid = %v, want (1,1)", got)
	}
}

func TestTranslate(t *testing.T) {
	obj := NewPoint("p", geom.V2(1, 2))
	obj.Translate(geom.V2(3, -1))
	if !obj.Vertices[0].NearlyEqual(geom.V2(4, 1), eps) {
		t.Errorf("translated to %v, want (4,1)", obj.Vertices[0])
	}
}

func TestScaleKeepsCentroid(t *testing.T) {
	obj, err := NewPolygon("square", []geom.Vec2{
		geom.V2(0, 0), geom.V2(2, 0), geom.V2(2, 2), geom.V2(0, 2),
	}, false)
	if err != nil {
		t.Fatal(err)
	}
	before := obj.Centroid()
	obj.Scale(geom.V2(3, 3))
	if got := obj.Centroid(); !got.NearlyEqual(before, eps) {
		t.Errorf("centroid moved from %v to %v", before, got)
	}
	if !obj.Vertices[0].NearlyEqual(geom.V2(-2, -2), eps) {
		t.Errorf("vertex 0 = %v, want (-2,-2)", obj.Vertices[0])
	}
}

func TestRotateAboutPivot(t *testing.T) {
	line, err := NewLine("l", geom.V2(2, 1), geom.V2(3, 1))
	if err != nil {
		t.Fatal(err)
	}
	line.RotateAbout(90, geom.V2(1, 1))
	if !line.Start().NearlyEqual(geom.V2(1, 0), eps) {
		t.Errorf("start = %v, want (1,0)", line.Start())
	}
	if !line.End().NearlyEqual(geom.V2(1, -1), eps) {
		t.Errorf("end = %v, want (1,-1)", line.End())
	}
}

func TestTransformMarksDirtyAndUpdateNDCClears(t *testing.T) {
	w := geom.NewWindow(geom.V2(-10, -10), geom.V2(10, 10))
	obj := NewPoint("p", geom.V2(5, 5))
	if !obj.Dirty() {
		t.Fatal("new object should start dirty")
	}

	obj.UpdateNDC(w)
	if obj.Dirty() {
		t.Error("UpdateNDC left the object dirty")
	}
	if !obj.NDC[0].NearlyEqual(geom.V2(0.5, 0.5), eps) {
		t.Errorf("NDC = %v, want (0.5,0.5)", obj.NDC[0])
	}

	obj.Translate(geom.V2(1, 0))
	if !obj.Dirty() {
		t.Error("transform did not mark the NDC cache stale")
	}
}

func TestTransformMovesCurveControls(t *testing.T) {
	obj, err := NewCurve("c", []geom.Vec2{
		geom.V2(0, 0), geom.V2(1, 1), geom.V2(2, 1), geom.V2(3, 0),
	}, BasisBezier)
	if err != nil {
		t.Fatal(err)
	}
	obj.Translate(geom.V2(10, 0))
	if !obj.Controls[0].NearlyEqual(geom.V2(10, 0), eps) {
		t.Errorf("control 0 = %v, want (10,0)", obj.Controls[0])
	}
	if !obj.Vertices[0].NearlyEqual(geom.V2(10, 0), eps) {
		t.Errorf("vertex 0 = %v, want (10,0)", obj.Vertices[0])
	}
}

func TestNewCurveValidation(t *testing.T) {
	_, err := NewCurve("bad", []geom.Vec2{geom.V2(0, 0), geom.V2(1, 1)}, BasisBezier)
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
	if ve.Kind != KindCurve {
		t.Errorf("error kind = %v, want curve", ve.Kind)
	}
}

func TestNewCurveTessellates(t *testing.T) {
	obj, err := NewCurveWithSteps("c", []geom.Vec2{
		geom.V2(0, 0), geom.V2(1, 1), geom.V2(2, 1), geom.V2(3, 0),
	}, BasisBezier, 10)
	if err != nil {
		t.Fatal(err)
	}
	if obj.Kind != KindCurve {
		t.Errorf("kind = %v, want curve", obj.Kind)
	}
	if len(obj.Vertices) != 10 {
		t.Errorf("got %d vertices, want 10", len(obj.Vertices))
	}
	if len(obj.Controls) != 4 {
		t.Errorf("got %d controls, want 4", len(obj.Controls))
	}
}

func TestNewTessellatedCurve(t *testing.T) {
	if _, err := NewTessellatedCurve("short", []geom.Vec2{geom.V2(0, 0)}); err == nil {
		t.Error("single-vertex polyline accepted")
	}

	vs := []geom.Vec2{geom.V2(0, 0), geom.V2(1, 1), geom.V2(2, 0)}
	obj, err := NewTessellatedCurve("ok", vs)
	if err != nil {
		t.Fatal(err)
	}
	if len(obj.Vertices) != 3 {
		t.Errorf("got %d vertices, want 3", len(obj.Vertices))
	}
}
