package clip

import "github.com/thurbridi/rudolph/internal/geom"

// outcode is the 4-bit region code of a point relative to the bounds.
type outcode uint8

const (
	inside outcode = 0
	left   outcode = 1
	right  outcode = 2
	bottom outcode = 4
	top    outcode = 8
)

func outcodeOf(v geom.Vec2, b geom.Rect) outcode {
	var c outcode
	if v.X < b.Min.X {
		c |= left
	} else if v.X > b.Max.X {
		c |= right
	}
	if v.Y < b.Min.Y {
		c |= bottom
	} else if v.Y > b.Max.Y {
		c |= top
	}
	return c
}

// Each iteration clears at least one outcode bit of one endpoint, so 8
// iterations suffice; the cap guards against oscillation from floating
// error on near-degenerate input.
const maxClipIterations = 16

// cohenSutherland clips by repeatedly moving the outside endpoint onto
// the violated boundary, testing bits in the order TOP, BOTTOM, RIGHT,
// LEFT.
func cohenSutherland(p0, p1 geom.Vec2, b geom.Rect) (geom.Vec2, geom.Vec2, bool) {
	out0 := outcodeOf(p0, b)
	out1 := outcodeOf(p1, b)

	for i := 0; i < maxClipIterations; i++ {
		if out0|out1 == 0 {
			return p0, p1, true
		}
		if out0&out1 != 0 {
			return p0, p1, false
		}

		out := out0
		if out == inside {
			out = out1
		}

		d := p1.Sub(p0)
		var v geom.Vec2
		switch {
		case out&top != 0:
			if d.Y == 0 {
				return p0, p1, false
			}
			v = geom.Vec2{X: p0.X + d.X/d.Y*(b.Max.Y-p0.Y), Y: b.Max.Y}
		case out&bottom != 0:
			if d.Y == 0 {
				return p0, p1, false
			}
			v = geom.Vec2{X: p0.X + d.X/d.Y*(b.Min.Y-p0.Y), Y: b.Min.Y}
		case out&right != 0:
			if d.X == 0 {
				return p0, p1, false
			}
			v = geom.Vec2{X: b.Max.X, Y: p0.Y + d.Y/d.X*(b.Max.X-p0.X)}
		case out&left != 0:
			if d.X == 0 {
				return p0, p1, false
			}
			v = geom.Vec2{X: b.Min.X, Y: p0.Y + d.Y/d.X*(b.Min.X-p0.X)}
		}

		if out == out0 {
			p0 = v
			out0 = outcodeOf(p0, b)
		} else {
			p1 = v
			out1 = outcodeOf(p1, b)
		}
	}
	return p0, p1, false
}

// liangBarsky clips using the parametric form P(t) = P0 + t*(P1-P0),
// t in [0,1], tightening the entry and exit parameters per axis.
func liangBarsky(v0, v1 geom.Vec2, b geom.Rect) (geom.Vec2, geom.Vec2, bool) {
	p1 := v0.X - v1.X
	p2 := -p1
	p3 := v0.Y - v1.Y
	p4 := -p3

	q1 := v0.X - b.Min.X
	q2 := b.Max.X - v0.X
	q3 := v0.Y - b.Min.Y
	q4 := b.Max.Y - v0.Y

	// A line parallel to an axis is entirely outside when either bound
	// on that axis is violated; otherwise the axis imposes no constraint.
	if p1 == 0 && (q1 < 0 || q2 < 0) {
		return v0, v1, false
	}
	if p3 == 0 && (q3 < 0 || q4 < 0) {
		return v0, v1, false
	}

	tEntry := 0.0
	tExit := 1.0

	if p1 != 0 {
		r1 := q1 / p1
		r2 := q2 / p2
		if p1 < 0 {
			tEntry = max(tEntry, r1)
			tExit = min(tExit, r2)
		} else {
			tEntry = max(tEntry, r2)
			tExit = min(tExit, r1)
		}
	}

	if p3 != 0 {
		r3 := q3 / p3
		r4 := q4 / p4
		if p3 < 0 {
			tEntry = max(tEntry, r3)
			tExit = min(tExit, r4)
		} else {
			tEntry = max(tEntry, r4)
			tExit = min(tExit, r3)
		}
	}

	if tEntry > tExit {
		return v0, v1, false
	}

	q0 := geom.Vec2{X: v0.X + p2*tEntry, Y: v0.Y + p4*tEntry}
	q1v := geom.Vec2{X: v0.X + p2*tExit, Y: v0.Y + p4*tExit}
	return q0, q1v, true
}
