// Package wavefront reads and writes scenes in a line-oriented subset of
// the Wavefront OBJ format:
//
//	v x y w          vertex (w is the homogeneous weight, always 1.0)
//	o name           begins a named object
//	usemtl filled    marks the next polygon as filled
//	p i              point over vertex i (1-based)
//	l i1 i2          line; with the first index repeated at the end, a
//	                 closed polygon; otherwise an open curve polyline
//	w i1 i2          window from min corner i1 to max corner i2
package wavefront

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/thurbridi/rudolph/internal/geom"
	"github.com/thurbridi/rudolph/internal/object"
	"github.com/thurbridi/rudolph/internal/scene"
)

// ParseError reports a malformed directive. Decoding aborts on the first
// one rather than producing a partial scene.
type ParseError struct {
	Line   int
	Text   string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s (%q)", e.Line, e.Reason, e.Text)
}

// Decode parses the scene file contents.
func Decode(contents string) (*scene.Scene, error) {
	var (
		vertices []geom.Vec2
		sc       = scene.New()
		name     string
		filled   bool
	)

	fail := func(n int, text, reason string) error {
		return &ParseError{Line: n, Text: text, Reason: reason}
	}

	for n, raw := range strings.Split(contents, "\n") {
		lineNo := n + 1
		text := strings.TrimSpace(raw)
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		fields := strings.Fields(text)
		cmd, args := fields[0], fields[1:]

		switch cmd {
		case "v":
			if len(args) != 3 {
				return nil, fail(lineNo, text, "v expects 3 arguments")
			}
			x, errX := strconv.ParseFloat(args[0], 64)
			y, errY := strconv.ParseFloat(args[1], 64)
			if _, errW := strconv.ParseFloat(args[2], 64); errX != nil || errY != nil || errW != nil {
				return nil, fail(lineNo, text, "v expects numeric coordinates")
			}
			vertices = append(vertices, geom.Vec2{X: x, Y: y})

		case "o":
			if len(args) == 0 {
				return nil, fail(lineNo, text, "o expects a name")
			}
			name = strings.Join(args, " ")

		case "usemtl":
			if len(args) != 1 {
				return nil, fail(lineNo, text, "usemtl expects 1 argument")
			}
			if args[0] == "filled" {
				filled = true
			}

		case "p":
			if len(args) != 1 {
				return nil, fail(lineNo, text, "p expects 1 vertex index")
			}
			pos, err := lookup(vertices, args[0])
			if err != nil {
				return nil, fail(lineNo, text, err.Error())
			}
			sc.Add(object.NewPoint(name, pos))

		case "l":
			if len(args) < 2 {
				return nil, fail(lineNo, text, "l expects at least 2 vertex indices")
			}
			obj, err := decodePolyline(vertices, args, name, filled)
			if err != nil {
				return nil, fail(lineNo, text, err.Error())
			}
			filled = false
			sc.Add(obj)

		case "w":
			if len(args) != 2 {
				return nil, fail(lineNo, text, "w expects 2 vertex indices")
			}
			min, err := lookup(vertices, args[0])
			if err != nil {
				return nil, fail(lineNo, text, err.Error())
			}
			max, err := lookup(vertices, args[1])
			if err != nil {
				return nil, fail(lineNo, text, err.Error())
			}
			if max.X <= min.X || max.Y <= min.Y {
				return nil, fail(lineNo, text, "degenerate window")
			}
			sc.SetWindow(geom.NewWindow(min, max))

		default:
			return nil, fail(lineNo, text, fmt.Sprintf("unknown directive %q", cmd))
		}
	}

	sc.Refresh()
	return sc, nil
}

func decodePolyline(vertices []geom.Vec2, args []string, name string, filled bool) (*object.Object, error) {
	vs := make([]geom.Vec2, 0, len(args))
	for _, a := range args {
		v, err := lookup(vertices, a)
		if err != nil {
			return nil, err
		}
		vs = append(vs, v)
	}

	if len(vs) == 2 {
		return object.NewLine(name, vs[0], vs[1])
	}
	if args[0] == args[len(args)-1] {
		return object.NewPolygon(name, vs[:len(vs)-1], filled)
	}
	return object.NewTessellatedCurve(name, vs)
}

func lookup(vertices []geom.Vec2, arg string) (geom.Vec2, error) {
	i, err := strconv.Atoi(arg)
	if err != nil {
		return geom.Vec2{}, fmt.Errorf("invalid vertex index %q", arg)
	}
	if i < 1 || i > len(vertices) {
		return geom.Vec2{}, fmt.Errorf("vertex index %d out of range [1, %d]", i, len(vertices))
	}
	return vertices[i-1], nil
}

// Encode writes the scene in the file format. Objects without vertices
// are not representable and are skipped.
func Encode(sc *scene.Scene) string {
	var verts, objs strings.Builder
	idx := 1

	writeVert := func(v geom.Vec2) int {
		fmt.Fprintf(&verts, "v %v %v 1.0\n", v.X, v.Y)
		idx++
		return idx - 1
	}

	if sc.Window != nil {
		i := writeVert(sc.Window.Min)
		j := writeVert(sc.Window.Max)
		fmt.Fprintf(&objs, "o window\n")
		fmt.Fprintf(&objs, "w %d %d\n", i, j)
	}

	for _, obj := range sc.Objects {
		if len(obj.Vertices) == 0 {
			continue
		}
		fmt.Fprintf(&objs, "o %s\n", obj.Name)

		switch obj.Kind {
		case object.KindPoint:
			i := writeVert(obj.Vertices[0])
			fmt.Fprintf(&objs, "p %d\n", i)

		case object.KindLine:
			i := writeVert(obj.Start())
			j := writeVert(obj.End())
			fmt.Fprintf(&objs, "l %d %d\n", i, j)

		case object.KindPolygon:
			first := idx
			for _, v := range obj.Vertices {
				writeVert(v)
			}
			if obj.Filled {
				fmt.Fprintf(&objs, "usemtl filled\n")
			}
			fmt.Fprintf(&objs, "l")
			for i := 0; i < len(obj.Vertices); i++ {
				fmt.Fprintf(&objs, " %d", first+i)
			}
			fmt.Fprintf(&objs, " %d\n", first)

		case object.KindCurve:
			first := idx
			for _, v := range obj.Vertices {
				writeVert(v)
			}
			fmt.Fprintf(&objs, "l")
			for i := 0; i < len(obj.Vertices); i++ {
				fmt.Fprintf(&objs, " %d", first+i)
			}
			fmt.Fprintf(&objs, "\n")
		}
	}

	return verts.String() + objs.String()
}

// LoadFile decodes a scene from a file on disk.
func LoadFile(path string) (*scene.Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene file: %w", err)
	}
	return Decode(string(data))
}

// SaveFile encodes the scene to a file on disk.
func SaveFile(sc *scene.Scene, path string) error {
	if err := os.WriteFile(path, []byte(Encode(sc)), 0o644); err != nil {
		return fmt.Errorf("write scene file: %w", err)
	}
	return nil
}
