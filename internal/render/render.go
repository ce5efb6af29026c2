// Package render maps scene objects through the clip -> NDC -> device
// pipeline onto an abstract drawing surface.
package render

import (
	"github.com/thurbridi/rudolph/internal/clip"
	"github.com/thurbridi/rudolph/internal/geom"
	"github.com/thurbridi/rudolph/internal/object"
	"github.com/thurbridi/rudolph/internal/scene"
)

// PointRadius is the device-space radius points are drawn with.
const PointRadius = 1.0

// Canvas is the drawing capability the renderer consumes. Coordinates
// are already device-transformed.
type Canvas interface {
	DrawLine(p0, p1 geom.Vec2)
	DrawPolyline(points []geom.Vec2, closed, filled bool)
	DrawArc(center geom.Vec2, radius float64)
}

// Renderer clips each object in normalized space and projects the
// surviving geometry into the viewport.
type Renderer struct {
	Method clip.Method
}

// Draw renders every object of the scene onto the canvas. Objects
// clipped away entirely are skipped.
func (r Renderer) Draw(sc *scene.Scene, vp geom.Viewport, canvas Canvas) error {
	if sc.Window == nil {
		return nil
	}

	vpMatrix := vp.Matrix()

	for _, obj := range sc.Objects {
		if err := r.drawObject(obj, vpMatrix, canvas); err != nil {
			return err
		}
	}
	return nil
}

func (r Renderer) drawObject(obj *object.Object, vpMatrix geom.Matrix3, canvas Canvas) error {
	switch obj.Kind {
	case object.KindPoint:
		p := obj.NDC[0]
		if !clip.Point(p, clip.NDCBounds) {
			return nil
		}
		canvas.DrawArc(vpMatrix.Apply(p), PointRadius)

	case object.KindLine:
		q0, q1, ok, err := clip.Line(obj.NDC[0], obj.NDC[1], clip.NDCBounds, r.Method)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		canvas.DrawLine(vpMatrix.Apply(q0), vpMatrix.Apply(q1))

	case object.KindPolygon:
		vs := clip.Polygon(obj.NDC, clip.NDCBounds)
		if len(vs) == 0 {
			return nil
		}
		canvas.DrawPolyline(vpMatrix.ApplyAll(vs), true, obj.Filled)

	case object.KindCurve:
		vs, err := clip.Curve(obj.NDC, clip.NDCBounds, r.Method)
		if err != nil {
			return err
		}
		if len(vs) < 2 {
			return nil
		}
		canvas.DrawPolyline(vpMatrix.ApplyAll(vs), false, false)
	}
	return nil
}
