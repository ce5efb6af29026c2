package render

import (
	"strings"
	"testing"

	"github.com/thurbridi/rudolph/internal/clip"
	"github.com/thurbridi/rudolph/internal/geom"
	"github.com/thurbridi/rudolph/internal/object"
	"github.com/thurbridi/rudolph/internal/scene"
)

func testScene() *scene.Scene {
	s := scene.New()
	s.SetWindow(geom.NewWindow(geom.V2(-10, -10), geom.V2(10, 10)))
	return s
}

func testViewport() geom.Viewport {
	return geom.NewViewport(geom.NewRect(geom.V2(0, 0), geom.V2(200, 200)), 0)
}

func TestDrawWithoutWindowIsNoOp(t *testing.T) {
	s := scene.New()
	s.Add(object.NewPoint("p", geom.V2(0, 0)))

	var buf CommandBuffer
	if err := (Renderer{}).Draw(s, testViewport(), &buf); err != nil {
		t.Fatal(err)
	}
	if len(buf.Commands) != 0 {
		t.Errorf("windowless draw produced %d commands", len(buf.Commands))
	}
}

func TestDrawPointInside(t *testing.T) {
	s := testScene()
	s.Add(object.NewPoint("center", geom.V2(0, 0)))

	var buf CommandBuffer
	if err := (Renderer{}).Draw(s, testViewport(), &buf); err != nil {
		t.Fatal(err)
	}
	if len(buf.Commands) != 1 {
		t.Fatalf("got %d commands, want 1", len(buf.Commands))
	}
	cmd := buf.Commands[0]
	if cmd.Op != "arc" {
		t.Fatalf("op = %q, want arc", cmd.Op)
	}
	if !cmd.Center.NearlyEqual(geom.V2(100, 100), 1e-9) {
		t.Errorf("center = %v, want (100,100)", *cmd.Center)
	}
	if cmd.Radius != PointRadius {
		t.Errorf("radius = %v, want %v", cmd.Radius, PointRadius)
	}
}

func TestDrawPointOutsideSkipped(t *testing.T) {
	s := testScene()
	s.Add(object.NewPoint("far", geom.V2(50, 50)))

	var buf CommandBuffer
	if err := (Renderer{}).Draw(s, testViewport(), &buf); err != nil {
		t.Fatal(err)
	}
	if len(buf.Commands) != 0 {
		t.Errorf("outside point produced %d commands", len(buf.Commands))
	}
}

func TestDrawLineClipped(t *testing.T) {
	s := testScene()
	line, err := object.NewLine("wide", geom.V2(-20, 0), geom.V2(20, 0))
	if err != nil {
		t.Fatal(err)
	}
	s.Add(line)

	var buf CommandBuffer
	if err := (Renderer{Method: clip.LiangBarsky}).Draw(s, testViewport(), &buf); err != nil {
		t.Fatal(err)
	}
	if len(buf.Commands) != 1 {
		t.Fatalf("got %d commands, want 1", len(buf.Commands))
	}
	cmd := buf.Commands[0]
	if cmd.Op != "line" {
		t.Fatalf("op = %q, want line", cmd.Op)
	}
	// The segment spans the full window, so it crosses the whole
	// viewport at mid-height.
	if !cmd.Points[0].NearlyEqual(geom.V2(0, 100), 1e-9) ||
		!cmd.Points[1].NearlyEqual(geom.V2(200, 100), 1e-9) {
		t.Errorf("device segment %v-%v, want (0,100)-(200,100)", cmd.Points[0], cmd.Points[1])
	}
}

func TestDrawPolygonClosedAndFilled(t *testing.T) {
	s := testScene()
	poly, err := object.NewPolygon("tri", []geom.Vec2{
		geom.V2(-5, -5), geom.V2(5, -5), geom.V2(0, 5),
	}, true)
	if err != nil {
		t.Fatal(err)
	}
	s.Add(poly)

	var buf CommandBuffer
	if err := (Renderer{}).Draw(s, testViewport(), &buf); err != nil {
		t.Fatal(err)
	}
	if len(buf.Commands) != 1 {
		t.Fatalf("got %d commands, want 1", len(buf.Commands))
	}
	cmd := buf.Commands[0]
	if cmd.Op != "polyline" || !cmd.Closed || !cmd.Filled {
		t.Errorf("got %+v, want closed filled polyline", cmd)
	}
}

func TestDrawCurveOpenPolyline(t *testing.T) {
	s := testScene()
	curveObj, err := object.NewCurveWithSteps("c", []geom.Vec2{
		geom.V2(-5, -5), geom.V2(-2, 5), geom.V2(2, 5), geom.V2(5, -5),
	}, object.BasisBezier, 8)
	if err != nil {
		t.Fatal(err)
	}
	s.Add(curveObj)

	var buf CommandBuffer
	if err := (Renderer{Method: clip.CohenSutherland}).Draw(s, testViewport(), &buf); err != nil {
		t.Fatal(err)
	}
	if len(buf.Commands) != 1 {
		t.Fatalf("got %d commands, want 1", len(buf.Commands))
	}
	cmd := buf.Commands[0]
	if cmd.Op != "polyline" || cmd.Closed || cmd.Filled {
		t.Errorf("got %+v, want open unfilled polyline", cmd)
	}
}

func TestDrawUnsupportedMethodFails(t *testing.T) {
	s := testScene()
	line, err := object.NewLine("l", geom.V2(0, 0), geom.V2(1, 1))
	if err != nil {
		t.Fatal(err)
	}
	s.Add(line)

	var buf CommandBuffer
	err = Renderer{Method: clip.Skala}.Draw(s, testViewport(), &buf)
	if err == nil {
		t.Fatal("unsupported method accepted")
	}
}

func TestCommandBufferJSON(t *testing.T) {
	var buf CommandBuffer
	data, err := buf.JSON()
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "[]" {
		t.Errorf("empty buffer serialized as %s", data)
	}

	buf.DrawLine(geom.V2(0, 0), geom.V2(1, 1))
	data, err = buf.JSON()
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"op":"line"`) {
		t.Errorf("serialized commands missing line op: %s", data)
	}
}
