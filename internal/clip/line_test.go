package clip

import (
	"errors"
	"testing"

	"github.com/thurbridi/rudolph/internal/geom"
)

const eps = 1e-9

var bounds = geom.NewRect(geom.V2(-10, -10), geom.V2(10, 10))

func TestLineFullyInside(t *testing.T) {
	for _, m := range []Method{CohenSutherland, LiangBarsky} {
		p0, p1 := geom.V2(-5, -5), geom.V2(5, 5)
		q0, q1, ok, err := Line(p0, p1, bounds, m)
		if err != nil {
			t.Fatalf("%v: unexpected error %v", m, err)
		}
		if !ok {
			t.Fatalf("%v: inside segment rejected", m)
		}
		if q0 != p0 || q1 != p1 {
			t.Errorf("%v: inside segment altered to %v-%v", m, q0, q1)
		}
	}
}

func TestLineFullyOutside(t *testing.T) {
	tests := []struct {
		name   string
		p0, p1 geom.Vec2
	}{
		{"above", geom.V2(-5, 20), geom.V2(5, 30)},
		{"left", geom.V2(-30, -5), geom.V2(-20, 5)},
		{"vertical right of window", geom.V2(15, -5), geom.V2(15, 5)},
		{"horizontal below window", geom.V2(-5, -15), geom.V2(5, -15)},
		{"diagonal corner miss", geom.V2(15, 6), geom.V2(6, 15)},
	}
	for _, m := range []Method{CohenSutherland, LiangBarsky} {
		for _, tt := range tests {
			_, _, ok, err := Line(tt.p0, tt.p1, bounds, m)
			if err != nil {
				t.Fatalf("%v/%s: unexpected error %v", m, tt.name, err)
			}
			if ok {
				t.Errorf("%v/%s: outside segment accepted", m, tt.name)
			}
		}
	}
}

func TestLineCrossingWindow(t *testing.T) {
	for _, m := range []Method{CohenSutherland, LiangBarsky} {
		q0, q1, ok, err := Line(geom.V2(-20, 0), geom.V2(20, 0), bounds, m)
		if err != nil {
			t.Fatalf("%v: unexpected error %v", m, err)
		}
		if !ok {
			t.Fatalf("%v: crossing segment rejected", m)
		}
		if !q0.NearlyEqual(geom.V2(-10, 0), eps) || !q1.NearlyEqual(geom.V2(10, 0), eps) {
			t.Errorf("%v: clipped to %v-%v, want (-10,0)-(10,0)", m, q0, q1)
		}
	}
}

func TestLineOneEndpointInside(t *testing.T) {
	for _, m := range []Method{CohenSutherland, LiangBarsky} {
		q0, q1, ok, err := Line(geom.V2(0, 0), geom.V2(0, 30), bounds, m)
		if err != nil {
			t.Fatalf("%v: unexpected error %v", m, err)
		}
		if !ok {
			t.Fatalf("%v: half-inside segment rejected", m)
		}
		if !q0.NearlyEqual(geom.V2(0, 0), eps) || !q1.NearlyEqual(geom.V2(0, 10), eps) {
			t.Errorf("%v: clipped to %v-%v, want (0,0)-(0,10)", m, q0, q1)
		}
	}
}

func TestLineGrazingCorner(t *testing.T) {
	// The segment touches the window exactly at the corner (10,10); both
	// algorithms keep the degenerate contact point.
	for _, m := range []Method{CohenSutherland, LiangBarsky} {
		q0, q1, ok, err := Line(geom.V2(0, 20), geom.V2(20, 0), bounds, m)
		if err != nil {
			t.Fatalf("%v: unexpected error %v", m, err)
		}
		if !ok {
			t.Fatalf("%v: corner-grazing segment rejected", m)
		}
		if !q0.NearlyEqual(geom.V2(10, 10), eps) || !q1.NearlyEqual(geom.V2(10, 10), eps) {
			t.Errorf("%v: clipped to %v-%v, want the corner twice", m, q0, q1)
		}
	}
}

func TestLineMethodsAgree(t *testing.T) {
	segments := [][2]geom.Vec2{
		{geom.V2(-15, -3), geom.V2(12, 8)},
		{geom.V2(-25, -25), geom.V2(25, 25)},
		{geom.V2(-10, -10), geom.V2(10, 10)},
		{geom.V2(3, -40), geom.V2(-7, 40)},
		{geom.V2(-11, 9.5), geom.V2(11, 10.5)},
		{geom.V2(-30, 5), geom.V2(-5, -30)},
	}
	for _, seg := range segments {
		cs0, cs1, csOK, err := Line(seg[0], seg[1], bounds, CohenSutherland)
		if err != nil {
			t.Fatal(err)
		}
		lb0, lb1, lbOK, err := Line(seg[0], seg[1], bounds, LiangBarsky)
		if err != nil {
			t.Fatal(err)
		}
		if csOK != lbOK {
			t.Errorf("segment %v-%v: cohen-sutherland ok=%v, liang-barsky ok=%v",
				seg[0], seg[1], csOK, lbOK)
			continue
		}
		if !csOK {
			continue
		}
		if !cs0.NearlyEqual(lb0, 1e-6) || !cs1.NearlyEqual(lb1, 1e-6) {
			t.Errorf("segment %v-%v: cohen-sutherland %v-%v vs liang-barsky %v-%v",
				seg[0], seg[1], cs0, cs1, lb0, lb1)
		}
	}
}

func TestLineUnsupportedMethod(t *testing.T) {
	for _, m := range []Method{Skala, NichollLeeNicholl} {
		_, _, _, err := Line(geom.V2(0, 0), geom.V2(1, 1), bounds, m)
		if !errors.Is(err, ErrUnsupportedMethod) {
			t.Errorf("%v: err = %v, want ErrUnsupportedMethod", m, err)
		}
	}
}

func TestParseMethod(t *testing.T) {
	for _, m := range []Method{CohenSutherland, LiangBarsky, Skala, NichollLeeNicholl} {
		got, err := ParseMethod(m.String())
		if err != nil || got != m {
			t.Errorf("ParseMethod(%q) = %v, %v", m.String(), got, err)
		}
	}
	if _, err := ParseMethod("midpoint"); err == nil {
		t.Error("unknown method name accepted")
	}
}

func TestPointClipping(t *testing.T) {
	tests := []struct {
		p    geom.Vec2
		want bool
	}{
		{geom.V2(0, 0), true},
		{geom.V2(10, 10), true},
		{geom.V2(-10, 10), true},
		{geom.V2(10.001, 0), false},
		{geom.V2(0, -10.001), false},
	}
	for _, tt := range tests {
		if got := Point(tt.p, bounds); got != tt.want {
			t.Errorf("Point(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}
}

func TestCurveClipping(t *testing.T) {
	// A polyline marching out of the window drops the outside segments
	// without bridging the gap.
	vs := []geom.Vec2{
		geom.V2(0, 0),
		geom.V2(5, 0),
		geom.V2(15, 0),
		geom.V2(25, 0),
	}
	out, err := Curve(vs, bounds, CohenSutherland)
	if err != nil {
		t.Fatal(err)
	}
	want := []geom.Vec2{geom.V2(0, 0), geom.V2(5, 0), geom.V2(10, 0)}
	if len(out) != len(want) {
		t.Fatalf("got %d points %v, want %d", len(out), out, len(want))
	}
	for i := range want {
		if !out[i].NearlyEqual(want[i], eps) {
			t.Errorf("out[%d] = %v, want %v", i, out[i], want[i])
		}
	}
}

func TestCurveClippingSharedEndpoints(t *testing.T) {
	// Consecutive inside segments must not duplicate the shared vertex.
	vs := []geom.Vec2{geom.V2(-5, 0), geom.V2(0, 5), geom.V2(5, 0)}
	out, err := Curve(vs, bounds, LiangBarsky)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 3 {
		t.Errorf("got %d points %v, want 3", len(out), out)
	}
}
