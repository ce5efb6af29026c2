package editor

import (
	"encoding/json"

	"github.com/thurbridi/rudolph/internal/geom"
)

// Message is the envelope for every websocket frame.
type Message struct {
	Type     string          `json:"type"`
	SceneID  string          `json:"sceneId,omitempty"`
	ClientID string          `json:"clientId,omitempty"`
	UserID   string          `json:"userId,omitempty"`
	Seq      int64           `json:"seq,omitempty"`
	Payload  json.RawMessage `json:"payload"`
}

const (
	TypeWelcome = "welcome"

	// Full document sync, sent on join and after reconnect.
	TypeSceneSync = "scene.sync"

	// Edit operations.
	TypeOpSubmit    = "op.submit"
	TypeOpAck       = "op.ack"
	TypeOpNack      = "op.nack"
	TypeOpBroadcast = "op.broadcast"

	// Render requests: the client asks for the current frame as draw
	// commands for its viewport.
	TypeRenderRequest = "render.request"
	TypeRenderFrame   = "render.frame"

	TypePresenceJoin  = "presence.join"
	TypePresenceLeave = "presence.leave"

	TypeError = "error"
)

// Operation mutates the authoritative scene. Type selects the variant;
// only the fields that variant needs are set.
//
// Object operations address objects by display-list index, matching the
// scene model's ownership domain.
type Operation struct {
	ID   string `json:"id"`
	Type string `json:"type"`

	// object.add
	Object *ObjectSpec `json:"object,omitempty"`

	// object.remove, object.translate, object.scale, object.rotate
	Indices []int `json:"indices,omitempty"`

	// object.translate (window-frame offset) and window.translate
	Offset *geom.Vec2 `json:"offset,omitempty"`

	// object.scale
	Factor *geom.Vec2 `json:"factor,omitempty"`

	// object.rotate and window.rotate
	Degrees float64 `json:"degrees,omitempty"`
	// Ref selects the rotation reference: "center" (object centroid),
	// "origin", or "absolute" (use Pivot).
	Ref   string     `json:"ref,omitempty"`
	Pivot *geom.Vec2 `json:"pivot,omitempty"`

	// window.zoom
	ZoomFactor float64 `json:"zoomFactor,omitempty"`

	// window.set
	Min *geom.Vec2 `json:"min,omitempty"`
	Max *geom.Vec2 `json:"max,omitempty"`

	// clip.method
	Method string `json:"method,omitempty"`
}

// Operation types.
const (
	OpObjectAdd       = "object.add"
	OpObjectRemove    = "object.remove"
	OpObjectTranslate = "object.translate"
	OpObjectScale     = "object.scale"
	OpObjectRotate    = "object.rotate"
	OpWindowSet       = "window.set"
	OpWindowTranslate = "window.translate"
	OpWindowZoom      = "window.zoom"
	OpWindowRotate    = "window.rotate"
	OpClipMethod      = "clip.method"
)

// ObjectSpec describes a new object in an object.add operation.
type ObjectSpec struct {
	Kind     string      `json:"kind"` // "point", "line", "polygon", "curve"
	Name     string      `json:"name"`
	Vertices []geom.Vec2 `json:"vertices,omitempty"`
	Controls []geom.Vec2 `json:"controls,omitempty"`
	Basis    string      `json:"basis,omitempty"` // "bezier" or "b-spline"
	Filled   bool        `json:"filled,omitempty"`
}

type OpSubmitPayload struct {
	Operation Operation `json:"operation"`
}

type OpAckPayload struct {
	OperationID string `json:"operationId"`
	ServerSeq   int64  `json:"serverSeq"`
}

type OpNackPayload struct {
	OperationID string `json:"operationId"`
	Reason      string `json:"reason"`
}

type OpBroadcastPayload struct {
	Operation Operation `json:"operation"`
	UserID    string    `json:"userId"`
	ServerSeq int64     `json:"serverSeq"`
}

type SceneSyncPayload struct {
	Document   string `json:"document"` // scene file format
	ClipMethod string `json:"clipMethod"`
	ServerSeq  int64  `json:"serverSeq"`
}

type RenderRequestPayload struct {
	Viewport geom.Rect `json:"viewport"`
	// Margin shrinks the viewport on all sides; when omitted or not
	// positive the hub substitutes its configured default.
	Margin float64 `json:"margin"`
}

type RenderFramePayload struct {
	Commands  json.RawMessage `json:"commands"`
	ServerSeq int64           `json:"serverSeq"`
}

type PresencePayload struct {
	UserID      string `json:"userId"`
	DisplayName string `json:"displayName"`
}
