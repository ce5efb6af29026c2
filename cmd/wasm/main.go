//go:build js && wasm

package main

import (
	"encoding/json"
	"syscall/js"

	"github.com/thurbridi/rudolph/internal/editor"
	"github.com/thurbridi/rudolph/internal/geom"
	"github.com/thurbridi/rudolph/internal/scene"
	"github.com/thurbridi/rudolph/internal/wavefront"
)

// state is the local scene engine. The browser uses it for offline
// editing and previews; the websocket hub stays authoritative when
// connected.
var state *editor.SceneState

func main() {
	state = editor.NewSceneState(scene.New())

	rudolphEngine := js.Global().Get("Object").New()

	// --- Commands (frontend → backend) ---
	rudolphEngine.Set("loadScene", js.FuncOf(loadScene))
	rudolphEngine.Set("applyOperation", js.FuncOf(applyOperation))

	// --- Queries (frontend ← backend) ---
	rudolphEngine.Set("render", js.FuncOf(renderFrame))
	rudolphEngine.Set("getDocument", js.FuncOf(getDocument))
	rudolphEngine.Set("getClipMethod", js.FuncOf(getClipMethod))

	// Register on global scope
	js.Global().Set("rudolphEngine", rudolphEngine)

	// Signal that WASM is ready
	js.Global().Set("rudolphWasmReady", js.ValueOf(true))

	// Keep Go runtime alive
	select {}
}

func loadScene(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return js.ValueOf(map[string]interface{}{"error": "missing scene file contents"})
	}

	sc, err := wavefront.Decode(args[0].String())
	if err != nil {
		return js.ValueOf(map[string]interface{}{"error": err.Error()})
	}

	state = editor.NewSceneState(sc)
	return js.ValueOf(map[string]interface{}{"ok": true})
}

func applyOperation(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return js.ValueOf(map[string]interface{}{"error": "missing operation JSON"})
	}

	var op editor.Operation
	if err := json.Unmarshal([]byte(args[0].String()), &op); err != nil {
		return js.ValueOf(map[string]interface{}{"error": err.Error()})
	}

	seq, err := state.ApplyOperation(op)
	if err != nil {
		return js.ValueOf(map[string]interface{}{"error": err.Error()})
	}
	return js.ValueOf(map[string]interface{}{"ok": true, "seq": seq})
}

func renderFrame(this js.Value, args []js.Value) interface{} {
	if len(args) < 4 {
		return js.ValueOf(map[string]interface{}{"error": "render expects minX, minY, maxX, maxY"})
	}

	region := geom.Rect{
		Min: geom.Vec2{X: args[0].Float(), Y: args[1].Float()},
		Max: geom.Vec2{X: args[2].Float(), Y: args[3].Float()},
	}
	margin := 10.0
	if len(args) > 4 {
		margin = args[4].Float()
	}

	commands, err := state.Render(region, margin)
	if err != nil {
		return js.ValueOf(map[string]interface{}{"error": err.Error()})
	}
	return js.ValueOf(string(commands))
}

func getDocument(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(state.Document())
}

func getClipMethod(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(state.ClipMethod().String())
}
