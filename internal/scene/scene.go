// Package scene holds the ordered display file of graphic objects plus
// the world window being viewed.
package scene

import (
	"fmt"
	"sort"

	"github.com/thurbridi/rudolph/internal/geom"
	"github.com/thurbridi/rudolph/internal/object"
)

// Scene is an ordered list of graphic objects and an optional window.
// Index order is display order. Every mutating entry point finishes by
// refreshing the normalized-coordinate caches, so objects read from the
// scene are always consistent with the current window.
//
// Scene itself is not safe for concurrent use; callers exposing it to
// multiple goroutines must serialize mutations (the editor hub does).
type Scene struct {
	Objects []*object.Object
	Window  *geom.Window
}

// New returns an empty scene.
func New() *Scene {
	return &Scene{}
}

// Add validates nothing further (constructors already did) and appends
// the object, normalizing it against the current window if one is set.
func (s *Scene) Add(obj *object.Object) {
	if s.Window != nil {
		obj.UpdateNDC(s.Window)
	}
	s.Objects = append(s.Objects, obj)
}

// Remove deletes the objects at the given indices. Indices are removed
// in descending order so the remaining ones stay valid while removing.
func (s *Scene) Remove(indices []int) error {
	sorted := make([]int, len(indices))
	copy(sorted, indices)
	sort.Sort(sort.Reverse(sort.IntSlice(sorted)))

	for _, i := range sorted {
		if i < 0 || i >= len(s.Objects) {
			return fmt.Errorf("object index %d out of range [0, %d)", i, len(s.Objects))
		}
		s.Objects = append(s.Objects[:i], s.Objects[i+1:]...)
	}
	return nil
}

// SetWindow replaces the scene window and renormalizes every object.
func (s *Scene) SetWindow(w *geom.Window) {
	s.Window = w
	s.Refresh()
}

// TranslateWindow moves the window by offset (window-local units).
func (s *Scene) TranslateWindow(offset geom.Vec2) {
	if s.Window == nil {
		return
	}
	s.Window.Translate(offset)
	s.Refresh()
}

// ZoomWindow scales the window around its center. A factor below 1 zooms
// in, above 1 zooms out.
func (s *Scene) ZoomWindow(factor float64) {
	if s.Window == nil {
		return
	}
	s.Window.Zoom(factor)
	s.Refresh()
}

// RotateWindow accumulates delta degrees into the window angle.
func (s *Scene) RotateWindow(delta float64) {
	if s.Window == nil {
		return
	}
	s.Window.Rotate(delta)
	s.Refresh()
}

// Transform applies an object-space transform to the objects at the
// given indices and renormalizes them.
func (s *Scene) Transform(indices []int, apply func(*object.Object)) error {
	for _, i := range indices {
		if i < 0 || i >= len(s.Objects) {
			return fmt.Errorf("object index %d out of range [0, %d)", i, len(s.Objects))
		}
		apply(s.Objects[i])
	}
	s.Refresh()
	return nil
}

// Refresh recomputes the normalized coordinates of every object against
// the current window. It is invoked by every mutation; callers only need
// it after mutating objects directly.
func (s *Scene) Refresh() {
	if s.Window == nil {
		return
	}
	for _, obj := range s.Objects {
		obj.UpdateNDC(s.Window)
	}
}
