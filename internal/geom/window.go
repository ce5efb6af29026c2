package geom

// Window is the rectangular region of the world being viewed. The
// rectangle is axis-aligned in its own local frame; Angle is its rotation
// in the world frame, in degrees.
type Window struct {
	Rect
	Angle float64
}

// NewWindow builds an unrotated window from two corners.
func NewWindow(min, max Vec2) *Window {
	return &Window{Rect: Rect{Min: min, Max: max}}
}

// Translate moves the window by offset.
func (w *Window) Translate(offset Vec2) {
	w.Min = w.Min.Add(offset)
	w.Max = w.Max.Add(offset)
}

// Zoom scales both corners around the window center. A factor below 1
// zooms in, above 1 zooms out.
func (w *Window) Zoom(factor float64) {
	m := AroundPivot(Scaling(factor, factor), w.Center())
	w.Min = m.Apply(w.Min)
	w.Max = m.Apply(w.Max)
}

// Rotate accumulates delta (degrees) into the window angle. The corners
// do not move; the rotation is undone by the normalization transform.
func (w *Window) Rotate(delta float64) {
	w.Angle += delta
}

// NDCMatrix maps window-local world coordinates to normalized device
// coordinates, the [-1,1]x[-1,1] square: translate the window center to
// the origin, undo the window rotation, then scale to the unit square.
func (w *Window) NDCMatrix() Matrix3 {
	center := w.Center()
	return Translation(-center.X, -center.Y).
		Mul(Rotation(-w.Angle)).
		Mul(Scaling(2/w.Width(), 2/w.Height()))
}

// Viewport is the device-space rectangle the window contents are drawn
// into.
type Viewport struct {
	Region Rect
}

// NewViewport builds a viewport over the given device rectangle, shrunk
// by margin on all sides.
func NewViewport(region Rect, margin float64) Viewport {
	return Viewport{Region: region.WithMargin(margin)}
}

// Matrix maps normalized device coordinates to device pixels. Y flips
// because device space grows downward.
func (vp Viewport) Matrix() Matrix3 {
	center := vp.Region.Center()
	return Scaling(vp.Region.Width()/2, -vp.Region.Height()/2).
		Mul(Translation(center.X, center.Y))
}
