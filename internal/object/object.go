package object

import (
	"fmt"

	"github.com/thurbridi/rudolph/internal/geom"
)

// Kind discriminates the closed set of graphic object variants.
type Kind int

const (
	KindPoint Kind = iota
	KindLine
	KindPolygon
	KindCurve
)

func (k Kind) String() string {
	switch k {
	case KindPoint:
		return "point"
	case KindLine:
		return "line"
	case KindPolygon:
		return "polygon"
	case KindCurve:
		return "curve"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ValidationError reports degenerate geometry rejected at construction.
type ValidationError struct {
	Kind   Kind
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Kind, e.Reason)
}

// Object is a displayable graphic object: a tagged variant over point,
// line, polygon and curve.
//
// Vertices are world coordinates. NDC is the cached projection of the
// vertices into the current window's normalized space; it is stale
// whenever dirty is set and is refreshed only through UpdateNDC. Scene
// mutations refresh every object before returning, so callers of the
// scene never observe stale coordinates.
type Object struct {
	ID   string
	Name string
	Kind Kind

	Vertices []geom.Vec2
	Filled   bool

	// Curve objects keep their control polygon; Vertices holds the
	// tessellated polyline.
	Controls []geom.Vec2
	Basis    CurveBasis

	NDC   []geom.Vec2
	dirty bool
}

// NewPoint builds a single-vertex point object.
func NewPoint(name string, pos geom.Vec2) *Object {
	return &Object{
		Name:     name,
		Kind:     KindPoint,
		Vertices: []geom.Vec2{pos},
		dirty:    true,
	}
}

// NewLine builds a line segment. Coincident endpoints are rejected.
func NewLine(name string, start, end geom.Vec2) (*Object, error) {
	if start == end {
		return nil, &ValidationError{Kind: KindLine, Reason: "start and end coincide"}
	}
	return &Object{
		Name:     name,
		Kind:     KindLine,
		Vertices: []geom.Vec2{start, end},
		dirty:    true,
	}, nil
}

// NewPolygon builds a closed polygon from at least three ordered
// vertices. The closing edge from the last vertex to the first is
// implicit.
func NewPolygon(name string, vertices []geom.Vec2, filled bool) (*Object, error) {
	if len(vertices) < 3 {
		return nil, &ValidationError{
			Kind:   KindPolygon,
			Reason: fmt.Sprintf("needs at least 3 vertices, got %d", len(vertices)),
		}
	}
	vs := make([]geom.Vec2, len(vertices))
	copy(vs, vertices)
	return &Object{
		Name:     name,
		Kind:     KindPolygon,
		Vertices: vs,
		Filled:   filled,
		dirty:    true,
	}, nil
}

// Start returns the first endpoint of a line.
func (o *Object) Start() geom.Vec2 { return o.Vertices[0] }

// End returns the second endpoint of a line.
func (o *Object) End() geom.Vec2 { return o.Vertices[1] }

// Centroid returns the average of the object's vertices.
func (o *Object) Centroid() geom.Vec2 {
	var sum geom.Vec2
	for _, v := range o.Vertices {
		sum = sum.Add(v)
	}
	return sum.Mul(1 / float64(len(o.Vertices)))
}

// Dirty reports whether the NDC cache is stale.
func (o *Object) Dirty() bool { return o.dirty }

// UpdateNDC recomputes the cached normalized coordinates against the
// given window and clears the dirty flag.
func (o *Object) UpdateNDC(w *geom.Window) {
	o.NDC = w.NDCMatrix().ApplyAll(o.Vertices)
	o.dirty = false
}

// Transform applies a matrix to every vertex and marks the NDC cache
// stale. Curve control points follow so later re-tessellation stays
// consistent with the transformed shape.
func (o *Object) Transform(m geom.Matrix3) {
	o.Vertices = m.ApplyAll(o.Vertices)
	if len(o.Controls) > 0 {
		o.Controls = m.ApplyAll(o.Controls)
	}
	o.dirty = true
}

// Translate moves the object by offset.
func (o *Object) Translate(offset geom.Vec2) {
	o.Transform(geom.Translation(offset.X, offset.Y))
}

// Scale scales the object about its centroid.
func (o *Object) Scale(factor geom.Vec2) {
	o.Transform(geom.AroundPivot(geom.Scaling(factor.X, factor.Y), o.Centroid()))
}

// RotateAbout rotates the object by degrees around the given pivot.
func (o *Object) RotateAbout(degrees float64, pivot geom.Vec2) {
	o.Transform(geom.AroundPivot(geom.Rotation(degrees), pivot))
}
