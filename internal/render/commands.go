package render

import (
	"encoding/json"

	"github.com/thurbridi/rudolph/internal/geom"
)

// DrawCommand is a single drawing operation for a frontend to execute.
// Coordinates are device pixels.
type DrawCommand struct {
	Op     string      `json:"op"` // "line", "polyline", "arc"
	Points []geom.Vec2 `json:"points,omitempty"`
	Center *geom.Vec2  `json:"center,omitempty"`
	Radius float64     `json:"radius,omitempty"`
	Closed bool        `json:"closed,omitempty"`
	Filled bool        `json:"filled,omitempty"`
}

// CommandBuffer is a Canvas that records draw commands instead of
// painting, for shipping render results over the wire.
type CommandBuffer struct {
	Commands []DrawCommand
}

func (cb *CommandBuffer) DrawLine(p0, p1 geom.Vec2) {
	cb.Commands = append(cb.Commands, DrawCommand{
		Op:     "line",
		Points: []geom.Vec2{p0, p1},
	})
}

func (cb *CommandBuffer) DrawPolyline(points []geom.Vec2, closed, filled bool) {
	cb.Commands = append(cb.Commands, DrawCommand{
		Op:     "polyline",
		Points: points,
		Closed: closed,
		Filled: filled,
	})
}

func (cb *CommandBuffer) DrawArc(center geom.Vec2, radius float64) {
	cb.Commands = append(cb.Commands, DrawCommand{
		Op:     "arc",
		Center: &center,
		Radius: radius,
	})
}

// JSON serializes the recorded commands.
func (cb *CommandBuffer) JSON() ([]byte, error) {
	if len(cb.Commands) == 0 {
		return []byte("[]"), nil
	}
	return json.Marshal(cb.Commands)
}
