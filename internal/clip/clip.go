// Package clip implements point, line, polygon and curve clipping against
// an axis-aligned window. Inputs are assumed to be in window-local space,
// so the clip boundaries are the axis-aligned edges of the bounds
// rectangle (typically the NDC unit square).
package clip

import (
	"errors"
	"fmt"

	"github.com/thurbridi/rudolph/internal/geom"
)

// Method selects the line clipping algorithm.
type Method int

const (
	CohenSutherland Method = iota
	LiangBarsky
	// Skala and NichollLeeNicholl are recognized strategy tags but have no
	// working implementation; selecting them yields ErrUnsupportedMethod.
	Skala
	NichollLeeNicholl
)

func (m Method) String() string {
	switch m {
	case CohenSutherland:
		return "cohen-sutherland"
	case LiangBarsky:
		return "liang-barsky"
	case Skala:
		return "skala"
	case NichollLeeNicholl:
		return "nicholl-lee-nicholl"
	}
	return fmt.Sprintf("method(%d)", int(m))
}

// ParseMethod maps a method name to its tag.
func ParseMethod(name string) (Method, error) {
	switch name {
	case "cohen-sutherland":
		return CohenSutherland, nil
	case "liang-barsky":
		return LiangBarsky, nil
	case "skala":
		return Skala, nil
	case "nicholl-lee-nicholl":
		return NichollLeeNicholl, nil
	}
	return 0, fmt.Errorf("unknown clipping method %q", name)
}

// ErrUnsupportedMethod is returned when a selected algorithm has no
// working implementation.
var ErrUnsupportedMethod = errors.New("unsupported line clipping method")

// NDCBounds is the normalized device space clip rectangle.
var NDCBounds = geom.Rect{Min: geom.Vec2{X: -1, Y: -1}, Max: geom.Vec2{X: 1, Y: 1}}

// Point reports whether p lies inside the bounds. Boundary points are
// inside.
func Point(p geom.Vec2, b geom.Rect) bool {
	return b.Contains(p)
}

// Line clips the segment p0-p1 against the bounds using the selected
// algorithm. ok is false when the segment lies entirely outside.
func Line(p0, p1 geom.Vec2, b geom.Rect, m Method) (q0, q1 geom.Vec2, ok bool, err error) {
	switch m {
	case CohenSutherland:
		q0, q1, ok = cohenSutherland(p0, p1, b)
		return q0, q1, ok, nil
	case LiangBarsky:
		q0, q1, ok = liangBarsky(p0, p1, b)
		return q0, q1, ok, nil
	default:
		return p0, p1, false, fmt.Errorf("%w: %v", ErrUnsupportedMethod, m)
	}
}

// Curve clips a tessellated polyline segment by segment. Segments that
// vanish are dropped without reconnecting across the gap, so the curve may
// visually break at the window boundary.
func Curve(vs []geom.Vec2, b geom.Rect, m Method) ([]geom.Vec2, error) {
	var out []geom.Vec2
	for i := 1; i < len(vs); i++ {
		q0, q1, ok, err := Line(vs[i-1], vs[i], b, m)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		if len(out) == 0 || out[len(out)-1] != q0 {
			out = append(out, q0)
		}
		out = append(out, q1)
	}
	return out, nil
}
