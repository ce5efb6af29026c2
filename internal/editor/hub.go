package editor

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/thurbridi/rudolph/internal/typeid"
)

// SceneLoader fetches the authoritative scene document for a scene ID.
type SceneLoader func(sceneID string) (*SceneState, error)

// SceneSaver persists a scene document.
type SceneSaver func(sceneID, document string) error

// Room is one collaboratively edited scene.
type Room struct {
	sceneID string
	clients map[string]*Client // clientID -> client
	state   *SceneState
}

// Hub routes clients into rooms and fans out edits.
type Hub struct {
	mu         sync.RWMutex
	rooms      map[string]*Room // sceneID -> room
	register   chan *Client
	unregister chan *Client
	done       chan struct{}

	load SceneLoader
	save SceneSaver

	// defaultMargin is applied to render requests that omit one.
	defaultMargin float64
}

func NewHub(load SceneLoader, save SceneSaver, defaultMargin float64) *Hub {
	return &Hub{
		rooms:         make(map[string]*Room),
		register:      make(chan *Client),
		unregister:    make(chan *Client),
		done:          make(chan struct{}),
		load:          load,
		save:          save,
		defaultMargin: defaultMargin,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.addClient(client)
		case client := <-h.unregister:
			h.removeClient(client)
		case <-h.done:
			return
		}
	}
}

// Stop shuts the hub down, saving every room with unsaved edits.
func (h *Hub) Stop() {
	close(h.done)

	h.mu.Lock()
	defer h.mu.Unlock()
	for sceneID, room := range h.rooms {
		h.saveRoomLocked(sceneID, room)
	}
}

func (h *Hub) Register(client *Client) {
	h.register <- client
}

func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	room, ok := h.rooms[client.SceneID]
	if !ok {
		state, err := h.load(client.SceneID)
		if err != nil {
			h.mu.Unlock()
			slog.Error("load scene for room", "scene", client.SceneID, "error", err)
			client.SendError(fmt.Sprintf("scene %s unavailable", client.SceneID))
			client.CloseSend()
			return
		}
		room = &Room{
			sceneID: client.SceneID,
			clients: make(map[string]*Client),
			state:   state,
		}
		h.rooms[client.SceneID] = room
	}
	room.clients[client.ClientID] = client
	h.mu.Unlock()

	client.Send(&Message{Type: TypeWelcome, ClientID: client.ClientID, SceneID: client.SceneID})
	h.sendSync(client, room)

	joinPayload, _ := json.Marshal(PresencePayload{
		UserID:      client.UserID,
		DisplayName: client.DisplayName,
	})
	h.broadcast(client.SceneID, &Message{
		Type:    TypePresenceJoin,
		UserID:  client.UserID,
		Payload: joinPayload,
	}, client.ClientID)

	slog.Info("client joined", "user", client.UserID, "scene", client.SceneID)
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	room, ok := h.rooms[client.SceneID]
	if !ok {
		h.mu.Unlock()
		return
	}

	delete(room.clients, client.ClientID)
	client.CloseSend()

	var emptied bool
	if len(room.clients) == 0 {
		h.saveRoomLocked(client.SceneID, room)
		delete(h.rooms, client.SceneID)
		emptied = true
	}
	h.mu.Unlock()

	if !emptied {
		leavePayload, _ := json.Marshal(PresencePayload{UserID: client.UserID})
		h.broadcast(client.SceneID, &Message{
			Type:    TypePresenceLeave,
			UserID:  client.UserID,
			Payload: leavePayload,
		}, "")
	}

	slog.Info("client left", "user", client.UserID, "scene", client.SceneID)
}

// saveRoomLocked persists a room's scene if it has unsaved edits. Caller
// holds h.mu.
func (h *Hub) saveRoomLocked(sceneID string, room *Room) {
	if !room.state.Dirty() {
		return
	}
	if err := h.save(sceneID, room.state.Document()); err != nil {
		slog.Error("save scene", "scene", sceneID, "error", err)
		return
	}
	room.state.MarkSaved()
	slog.Info("scene saved", "scene", sceneID)
}

func (h *Hub) handleMessage(sender *Client, msg *Message) {
	switch msg.Type {
	case TypeOpSubmit:
		h.handleOpSubmit(sender, msg)
	case TypeRenderRequest:
		h.handleRenderRequest(sender, msg)
	default:
		slog.Warn("unknown message type", "type", msg.Type, "user", sender.UserID)
	}
}

func (h *Hub) handleOpSubmit(sender *Client, msg *Message) {
	room := h.room(sender.SceneID)
	if room == nil {
		return
	}

	var payload OpSubmitPayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		slog.Warn("invalid op payload", "error", err)
		return
	}

	op := payload.Operation
	if op.ID == "" {
		op.ID = typeid.NewOpID()
	}

	seq, err := room.state.ApplyOperation(op)
	if err != nil {
		nack, _ := json.Marshal(OpNackPayload{OperationID: op.ID, Reason: err.Error()})
		sender.Send(&Message{Type: TypeOpNack, Payload: nack})
		return
	}

	ack, _ := json.Marshal(OpAckPayload{OperationID: op.ID, ServerSeq: seq})
	sender.Send(&Message{Type: TypeOpAck, Payload: ack})

	bcast, _ := json.Marshal(OpBroadcastPayload{Operation: op, UserID: sender.UserID, ServerSeq: seq})
	h.broadcast(sender.SceneID, &Message{
		Type:    TypeOpBroadcast,
		UserID:  sender.UserID,
		Payload: bcast,
	}, sender.ClientID)
}

func (h *Hub) handleRenderRequest(sender *Client, msg *Message) {
	room := h.room(sender.SceneID)
	if room == nil {
		return
	}

	var payload RenderRequestPayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		slog.Warn("invalid render payload", "error", err)
		return
	}
	if payload.Margin <= 0 {
		payload.Margin = h.defaultMargin
	}

	commands, err := room.state.Render(payload.Viewport, payload.Margin)
	if err != nil {
		sender.SendError(err.Error())
		return
	}

	frame, _ := json.Marshal(RenderFramePayload{
		Commands:  commands,
		ServerSeq: room.state.ServerSeq(),
	})
	sender.Send(&Message{Type: TypeRenderFrame, Payload: frame})
}

func (h *Hub) sendSync(client *Client, room *Room) {
	payload, _ := json.Marshal(SceneSyncPayload{
		Document:   room.state.Document(),
		ClipMethod: room.state.ClipMethod().String(),
		ServerSeq:  room.state.ServerSeq(),
	})
	client.Send(&Message{Type: TypeSceneSync, SceneID: room.sceneID, Payload: payload})
}

func (h *Hub) room(sceneID string) *Room {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.rooms[sceneID]
}

func (h *Hub) broadcast(sceneID string, msg *Message, excludeClientID string) {
	h.mu.RLock()
	room, ok := h.rooms[sceneID]
	if !ok {
		h.mu.RUnlock()
		return
	}

	clients := make([]*Client, 0, len(room.clients))
	for _, c := range room.clients {
		if c.ClientID != excludeClientID {
			clients = append(clients, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range clients {
		c.Send(msg)
	}
}
