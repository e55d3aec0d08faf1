// Package server contains the realtime protocol surface: the hub routing
// inbound client messages to rooms, and the websocket connection pumps.
package server

import (
	"encoding/json"
	"errors"
	"math/rand"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nvoicu/chessroom-server/pkg/chess"
	"github.com/nvoicu/chessroom-server/pkg/events"
	"github.com/nvoicu/chessroom-server/pkg/game"
	"github.com/nvoicu/chessroom-server/pkg/messages"
	"github.com/nvoicu/chessroom-server/pkg/room"
)

// InboundHubMessage are the messages that the hub receives
type InboundHubMessage struct {
	Conn    *Connection             // who sent it
	Message messages.InboundMessage // decoded envelope
}

// Hub keeps track of all active connections and routes their messages to
// the room manager. All message handling runs on the single Run goroutine,
// which gives every room a total order of accepted moves.
type Hub struct {
	connections map[uuid.UUID]*Connection // Registered connections by identity

	register   chan *Connection       // Incoming registration
	unregister chan *Connection       // Incoming unregistration
	inbound    chan InboundHubMessage // Inbound client messages to route

	done chan struct{}

	rooms     *room.Manager
	publisher *events.Publisher
	logger    *zap.Logger
}

// NewHub creates a new hub
func NewHub(rooms *room.Manager, publisher *events.Publisher, logger *zap.Logger) *Hub {
	return &Hub{
		connections: make(map[uuid.UUID]*Connection),
		register:    make(chan *Connection),
		unregister:  make(chan *Connection),
		inbound:     make(chan InboundHubMessage),
		done:        make(chan struct{}),
		rooms:       rooms,
		publisher:   publisher,
		logger:      logger,
	}
}

// Run is the main execution of the hub
func (h *Hub) Run() {
	for {
		select {
		case conn := <-h.register:
			h.registerConnection(conn)

		case conn := <-h.unregister:
			h.unregisterConnection(conn)

		case msg := <-h.inbound:
			h.handleInbound(msg)

		case <-h.done:
			return
		}
	}
}

// Register queues a connection for registration.
func (h *Hub) Register(conn *Connection) {
	h.register <- conn
}

// Unregister queues a connection for removal and room cleanup.
func (h *Hub) Unregister(conn *Connection) {
	h.unregister <- conn
}

// Shutdown stops the run loop.
func (h *Hub) Shutdown() {
	close(h.done)
}

func (h *Hub) registerConnection(conn *Connection) {
	h.connections[conn.ID] = conn
	h.logger.Info("connection registered",
		zap.String("connection_id", conn.ID.String()),
		zap.Int("connections", len(h.connections)))

	conn.SendJSON(messages.OutboundMessage{
		Event:   messages.EventConnected,
		Payload: messages.ConnectedPayload{ConnectionID: conn.ID.String()},
	})
}

func (h *Hub) unregisterConnection(conn *Connection) {
	if _, ok := h.connections[conn.ID]; !ok {
		return
	}
	delete(h.connections, conn.ID)
	close(conn.send)

	// Vacate every seat this connection held and tell survivors.
	for _, dep := range h.rooms.LeaveAll(conn.ID) {
		if dep.Remaining != nil {
			h.sendTo(*dep.Remaining, messages.OutboundMessage{
				Event: messages.EventOpponentDisconnected,
			})
		}
	}

	h.logger.Info("connection unregistered",
		zap.String("connection_id", conn.ID.String()),
		zap.Int("connections", len(h.connections)))
}

// handleInbound decodes and routes one client message.
func (h *Hub) handleInbound(msg InboundHubMessage) {
	switch msg.Message.Type {
	case messages.TypeCreateRoom:
		var payload messages.CreateRoomPayload
		if len(msg.Message.Payload) > 0 {
			if err := json.Unmarshal(msg.Message.Payload, &payload); err != nil {
				h.sendError(msg.Conn, "Invalid createRoom payload", "")
				return
			}
		}
		h.handleCreateRoom(msg.Conn, payload)

	case messages.TypeJoinRoom:
		var payload messages.JoinRoomPayload
		if err := json.Unmarshal(msg.Message.Payload, &payload); err != nil {
			h.sendError(msg.Conn, "Invalid joinRoom payload", "")
			return
		}
		h.handleJoinRoom(msg.Conn, payload)

	case messages.TypeMakeMove:
		var payload messages.MakeMovePayload
		if err := json.Unmarshal(msg.Message.Payload, &payload); err != nil {
			h.sendError(msg.Conn, "Invalid makeMove payload", "")
			return
		}
		h.handleMakeMove(msg.Conn, payload)

	case messages.TypeResign:
		var payload messages.ResignPayload
		if err := json.Unmarshal(msg.Message.Payload, &payload); err != nil {
			h.sendError(msg.Conn, "Invalid resign payload", "")
			return
		}
		h.handleResign(msg.Conn, payload)

	default:
		h.sendError(msg.Conn, "Unknown message type", "")
	}
}

func (h *Hub) handleCreateRoom(conn *Connection, payload messages.CreateRoomPayload) {
	preferred := payload.PreferredColor
	if preferred != nil && !preferred.Valid() {
		h.sendError(conn, "Invalid preferred color", "")
		return
	}

	r := h.rooms.CreateRoom(preferred)

	// The creator takes their chosen color, or a random one.
	color := chess.White
	switch {
	case preferred != nil:
		color = *preferred
	case rand.Intn(2) == 1:
		color = chess.Black
	}
	r.TakeSeat(color, conn.ID)

	joined := messages.JoinedPayload{
		RoomID: r.Code,
		Color:  color,
		State:  r.Session().State(r.Code),
	}
	conn.SendJSON(messages.OutboundMessage{
		Event:   messages.EventRoomCreated,
		Payload: joined,
	})
}

func (h *Hub) handleJoinRoom(conn *Connection, payload messages.JoinRoomPayload) {
	color, err := h.rooms.Join(payload.RoomID, conn.ID)
	switch {
	case errors.Is(err, room.ErrRoomNotFound):
		h.sendError(conn, "Room not found", messages.ReasonRoomNotFound)
		return
	case errors.Is(err, room.ErrRoomFull):
		h.sendError(conn, "Room is full", messages.ReasonRoomFull)
		return
	case err != nil:
		h.sendError(conn, err.Error(), "")
		return
	}

	r, ok := h.rooms.Resolve(payload.RoomID)
	if !ok {
		// The room vanished between Join and Resolve; treat as not found.
		h.sendError(conn, "Room not found", messages.ReasonRoomNotFound)
		return
	}

	conn.SendJSON(messages.OutboundMessage{
		Event: messages.EventJoined,
		Payload: messages.JoinedPayload{
			RoomID: r.Code,
			Color:  color,
			State:  r.Session().State(r.Code),
		},
	})

	if opponent, seated := r.Opponent(conn.ID); seated {
		h.sendTo(opponent, messages.OutboundMessage{
			Event:   messages.EventOpponentJoined,
			Payload: messages.OpponentJoinedPayload{OpponentColor: color},
		})
	}
}

func (h *Hub) handleMakeMove(conn *Connection, payload messages.MakeMovePayload) {
	r, ok := h.rooms.Resolve(payload.RoomID)
	if !ok {
		h.rejectMove(conn, messages.ReasonRoomNotFound)
		return
	}

	seat, seated := r.SeatOf(conn.ID)
	if !seated {
		h.rejectMove(conn, messages.ReasonNotInRoom)
		return
	}
	if seat != r.Session().ActiveColor() {
		h.rejectMove(conn, messages.ReasonNotYourTurn)
		return
	}

	from, errFrom := chess.ParseSquare(payload.From)
	to, errTo := chess.ParseSquare(payload.To)
	if errFrom != nil || errTo != nil {
		// Well-behaved clients never send malformed squares; reject and
		// keep the room alive.
		h.logger.Warn("malformed move coordinates",
			zap.String("room", r.Code),
			zap.String("from", payload.From),
			zap.String("to", payload.To))
		h.rejectMove(conn, messages.ReasonIllegalMove)
		return
	}

	move, err := r.Session().ApplyMove(from, to, payload.Promotion, payload.Piece)
	if err != nil {
		h.rejectMove(conn, messages.ReasonIllegalMove)
		return
	}

	state := r.Session().State(r.Code)
	h.broadcast(r, messages.OutboundMessage{
		Event: messages.EventMoveAccepted,
		Payload: messages.MoveAcceptedPayload{
			State: state,
			LastMove: messages.Move{
				From:      move.From.String(),
				To:        move.To.String(),
				Promotion: move.Promotion,
				Piece:     move.PieceTag,
			},
		},
	})
	h.publisher.Publish(events.Event{
		Type:     events.EventMoveAccepted,
		RoomCode: r.Code,
		Payload:  state.ActiveColor,
	})

	// A move that mates or stalemates ends the game on the spot.
	if state.GameOver != nil {
		h.broadcast(r, messages.OutboundMessage{
			Event:   messages.EventGameOver,
			Payload: state.GameOver,
		})
		h.publisher.Publish(events.Event{
			Type:     events.EventGameEnded,
			RoomCode: r.Code,
			Payload:  state.GameOver.Reason,
		})
	}
}

func (h *Hub) handleResign(conn *Connection, payload messages.ResignPayload) {
	r, ok := h.rooms.Resolve(payload.RoomID)
	if !ok {
		h.sendError(conn, "Room not found", messages.ReasonRoomNotFound)
		return
	}
	seat, seated := r.SeatOf(conn.ID)
	if !seated {
		h.sendError(conn, "Not in room", messages.ReasonNotInRoom)
		return
	}

	result, err := r.Session().Resign(seat)
	if err != nil {
		if errors.Is(err, game.ErrGameOver) {
			h.sendError(conn, "Game is already over", "")
			return
		}
		h.sendError(conn, err.Error(), "")
		return
	}

	h.broadcast(r, messages.OutboundMessage{
		Event: messages.EventGameOver,
		Payload: messages.GameOver{
			Reason: result.Reason,
			Winner: result.Winner,
		},
	})
	h.publisher.Publish(events.Event{
		Type:     events.EventGameEnded,
		RoomCode: r.Code,
		Payload:  result.Reason,
	})
}

// broadcast sends a message to every seated connection of the room.
func (h *Hub) broadcast(r *room.Room, msg messages.OutboundMessage) {
	for _, id := range r.Occupants() {
		h.sendTo(id, msg)
	}
}

func (h *Hub) sendTo(id uuid.UUID, msg messages.OutboundMessage) {
	if conn, ok := h.connections[id]; ok {
		conn.SendJSON(msg)
	}
}

func (h *Hub) rejectMove(conn *Connection, reason string) {
	conn.SendJSON(messages.OutboundMessage{
		Event:   messages.EventMoveRejected,
		Payload: messages.MoveRejectedPayload{Reason: reason},
	})
}

func (h *Hub) sendError(conn *Connection, text, reason string) {
	conn.SendJSON(messages.OutboundMessage{
		Event:   messages.EventErrorMessage,
		Payload: messages.ErrorPayload{Message: text, Reason: reason},
	})
}
