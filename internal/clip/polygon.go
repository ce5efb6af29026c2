package clip

import "github.com/thurbridi/rudolph/internal/geom"

type halfPlane int

const (
	planeLeft halfPlane = iota
	planeRight
	planeBottom
	planeTop
)

var sweepOrder = [4]halfPlane{planeLeft, planeRight, planeBottom, planeTop}

// Polygon clips a closed polygon with the Sutherland-Hodgman sweep: the
// vertex list is clipped against each of the four half-planes in turn,
// the output of one pass feeding the next. The closing edge from the last
// vertex to the first is included. An empty result means the polygon is
// entirely outside. The output holds at most len(vs)+4 vertices.
func Polygon(vs []geom.Vec2, b geom.Rect) []geom.Vec2 {
	out := vs
	for _, plane := range sweepOrder {
		out = clipHalfPlane(out, plane, b)
		if len(out) == 0 {
			return nil
		}
	}
	return out
}

func clipHalfPlane(vs []geom.Vec2, plane halfPlane, b geom.Rect) []geom.Vec2 {
	if len(vs) == 0 {
		return nil
	}

	out := make([]geom.Vec2, 0, len(vs)+1)
	prev := vs[len(vs)-1]
	prevIn := insidePlane(prev, plane, b)

	for _, cur := range vs {
		curIn := insidePlane(cur, plane, b)
		switch {
		case prevIn && curIn:
			out = append(out, cur)
		case !prevIn && curIn:
			out = append(out, intersectPlane(prev, cur, plane, b), cur)
		case prevIn && !curIn:
			out = append(out, intersectPlane(prev, cur, plane, b))
		}
		prev, prevIn = cur, curIn
	}
	return out
}

func insidePlane(p geom.Vec2, plane halfPlane, b geom.Rect) bool {
	switch plane {
	case planeLeft:
		return p.X >= b.Min.X
	case planeRight:
		return p.X <= b.Max.X
	case planeBottom:
		return p.Y >= b.Min.Y
	default:
		return p.Y <= b.Max.Y
	}
}

// intersectPlane returns the point where segment a-c crosses the
// boundary line of the half-plane. Callers only invoke it when a and c
// straddle the boundary, so the relevant delta is non-zero.
func intersectPlane(a, c geom.Vec2, plane halfPlane, b geom.Rect) geom.Vec2 {
	switch plane {
	case planeLeft:
		return a.Lerp(c, (b.Min.X-a.X)/(c.X-a.X))
	case planeRight:
		return a.Lerp(c, (b.Max.X-a.X)/(c.X-a.X))
	case planeBottom:
		return a.Lerp(c, (b.Min.Y-a.Y)/(c.Y-a.Y))
	default:
		return a.Lerp(c, (b.Max.Y-a.Y)/(c.Y-a.Y))
	}
}
