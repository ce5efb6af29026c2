package editor

import (
	"fmt"
	"sync"

	"github.com/thurbridi/rudolph/internal/clip"
	"github.com/thurbridi/rudolph/internal/geom"
	"github.com/thurbridi/rudolph/internal/object"
	"github.com/thurbridi/rudolph/internal/render"
	"github.com/thurbridi/rudolph/internal/scene"
	"github.com/thurbridi/rudolph/internal/typeid"
	"github.com/thurbridi/rudolph/internal/wavefront"
)

// SceneState holds the authoritative scene for a room. All mutations go
// through ApplyOperation under the lock, so one edit (including its
// normalized-coordinate refresh) completes before the next begins.
type SceneState struct {
	mu         sync.RWMutex
	scene      *scene.Scene
	clipMethod clip.Method
	serverSeq  int64
	dirty      bool // unsaved changes
}

// NewSceneState wraps a loaded scene.
func NewSceneState(sc *scene.Scene) *SceneState {
	return &SceneState{
		scene:      sc,
		clipMethod: clip.CohenSutherland,
	}
}

// Document encodes the current scene in the scene file format.
func (st *SceneState) Document() string {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return wavefront.Encode(st.scene)
}

// ClipMethod returns the room's current line clipping method.
func (st *SceneState) ClipMethod() clip.Method {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.clipMethod
}

// ServerSeq returns the sequence number of the last applied operation.
func (st *SceneState) ServerSeq() int64 {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.serverSeq
}

// Dirty reports whether the scene changed since the last save.
func (st *SceneState) Dirty() bool {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.dirty
}

// MarkSaved clears the dirty flag after a successful save.
func (st *SceneState) MarkSaved() {
	st.mu.Lock()
	st.dirty = false
	st.mu.Unlock()
}

// ApplyOperation validates and applies one operation, returning the new
// server sequence number.
func (st *SceneState) ApplyOperation(op Operation) (int64, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	if err := st.applyLocked(op); err != nil {
		return 0, err
	}

	st.serverSeq++
	st.dirty = true
	return st.serverSeq, nil
}

func (st *SceneState) applyLocked(op Operation) error {
	switch op.Type {
	case OpObjectAdd:
		return st.applyAdd(op)
	case OpObjectRemove:
		return st.scene.Remove(op.Indices)
	case OpObjectTranslate:
		return st.applyTranslate(op)
	case OpObjectScale:
		return st.applyScale(op)
	case OpObjectRotate:
		return st.applyRotate(op)
	case OpWindowSet:
		return st.applyWindowSet(op)
	case OpWindowTranslate:
		return st.applyWindowTranslate(op)
	case OpWindowZoom:
		if op.ZoomFactor <= 0 {
			return fmt.Errorf("zoom factor must be positive, got %v", op.ZoomFactor)
		}
		st.scene.ZoomWindow(op.ZoomFactor)
		return nil
	case OpWindowRotate:
		st.scene.RotateWindow(op.Degrees)
		return nil
	case OpClipMethod:
		return st.applyClipMethod(op)
	default:
		return fmt.Errorf("unknown operation type: %s", op.Type)
	}
}

func (st *SceneState) applyAdd(op Operation) error {
	if op.Object == nil {
		return fmt.Errorf("object.add without object")
	}
	obj, err := buildObject(op.Object)
	if err != nil {
		return err
	}
	obj.ID = typeid.NewObjectID()
	st.scene.Add(obj)
	return nil
}

func (st *SceneState) applyTranslate(op Operation) error {
	if op.Offset == nil {
		return fmt.Errorf("object.translate without offset")
	}
	// Offsets arrive in the window frame; rotate them into the world
	// frame so dragging follows the tilted window.
	offset := *op.Offset
	if st.scene.Window != nil {
		offset = geom.Rotation(st.scene.Window.Angle).Apply(offset)
	}
	return st.scene.Transform(op.Indices, func(o *object.Object) {
		o.Translate(offset)
	})
}

func (st *SceneState) applyScale(op Operation) error {
	if op.Factor == nil {
		return fmt.Errorf("object.scale without factor")
	}
	return st.scene.Transform(op.Indices, func(o *object.Object) {
		o.Scale(*op.Factor)
	})
}

func (st *SceneState) applyRotate(op Operation) error {
	pivotFor := func(o *object.Object) (geom.Vec2, error) {
		switch op.Ref {
		case "", "center":
			return o.Centroid(), nil
		case "origin":
			return geom.Vec2{}, nil
		case "absolute":
			if op.Pivot == nil {
				return geom.Vec2{}, fmt.Errorf("object.rotate ref=absolute without pivot")
			}
			return *op.Pivot, nil
		default:
			return geom.Vec2{}, fmt.Errorf("unknown rotation ref %q", op.Ref)
		}
	}

	var refErr error
	err := st.scene.Transform(op.Indices, func(o *object.Object) {
		pivot, err := pivotFor(o)
		if err != nil {
			refErr = err
			return
		}
		o.RotateAbout(op.Degrees, pivot)
	})
	if refErr != nil {
		return refErr
	}
	return err
}

func (st *SceneState) applyWindowSet(op Operation) error {
	if op.Min == nil || op.Max == nil {
		return fmt.Errorf("window.set needs min and max corners")
	}
	if op.Max.X <= op.Min.X || op.Max.Y <= op.Min.Y {
		return fmt.Errorf("degenerate window: min %v, max %v", *op.Min, *op.Max)
	}
	st.scene.SetWindow(geom.NewWindow(*op.Min, *op.Max))
	return nil
}

func (st *SceneState) applyWindowTranslate(op Operation) error {
	if op.Offset == nil {
		return fmt.Errorf("window.translate without offset")
	}
	offset := *op.Offset
	if st.scene.Window != nil {
		offset = geom.Rotation(st.scene.Window.Angle).Apply(offset)
	}
	st.scene.TranslateWindow(offset)
	return nil
}

func (st *SceneState) applyClipMethod(op Operation) error {
	m, err := clip.ParseMethod(op.Method)
	if err != nil {
		return err
	}
	// Reject unimplemented strategies at selection time instead of at
	// the first render.
	if m != clip.CohenSutherland && m != clip.LiangBarsky {
		return fmt.Errorf("%w: %v", clip.ErrUnsupportedMethod, m)
	}
	st.clipMethod = m
	return nil
}

// Render produces the draw-command frame for the given viewport.
func (st *SceneState) Render(region geom.Rect, margin float64) ([]byte, error) {
	st.mu.RLock()
	defer st.mu.RUnlock()

	var buf render.CommandBuffer
	r := render.Renderer{Method: st.clipMethod}
	if err := r.Draw(st.scene, geom.NewViewport(region, margin), &buf); err != nil {
		return nil, err
	}
	return buf.JSON()
}

func buildObject(spec *ObjectSpec) (*object.Object, error) {
	switch spec.Kind {
	case "point":
		if len(spec.Vertices) != 1 {
			return nil, fmt.Errorf("point needs exactly 1 vertex, got %d", len(spec.Vertices))
		}
		return object.NewPoint(spec.Name, spec.Vertices[0]), nil

	case "line":
		if len(spec.Vertices) != 2 {
			return nil, fmt.Errorf("line needs exactly 2 vertices, got %d", len(spec.Vertices))
		}
		return object.NewLine(spec.Name, spec.Vertices[0], spec.Vertices[1])

	case "polygon":
		return object.NewPolygon(spec.Name, spec.Vertices, spec.Filled)

	case "curve":
		basis := object.BasisBezier
		switch spec.Basis {
		case "", "bezier":
		case "b-spline":
			basis = object.BasisBSpline
		default:
			return nil, fmt.Errorf("unknown curve basis %q", spec.Basis)
		}
		return object.NewCurve(spec.Name, spec.Controls, basis)

	default:
		return nil, fmt.Errorf("unknown object kind %q", spec.Kind)
	}
}
