package messages

import (
	"encoding/json"

	"github.com/nvoicu/chessroom-server/pkg/chess"
)

// Inbound message types. These names are part of the wire contract.
const (
	TypeCreateRoom = "createRoom"
	TypeJoinRoom   = "joinRoom"
	TypeMakeMove   = "makeMove"
	TypeResign     = "resign"
)

// InboundMessage is the generic wrapper for messages coming from the client.
// The "type" field tells us the action; "payload" is the data we parse further.
type InboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// CreateRoomPayload represents the payload for creating a new room.
type CreateRoomPayload struct {
	PreferredColor *chess.Color `json:"preferredColor,omitempty"`
}

// JoinRoomPayload represents the payload for joining an existing room by code.
type JoinRoomPayload struct {
	RoomID string `json:"roomId"`
}

// MakeMovePayload represents the payload for submitting a move.
// Promotion and Piece are client annotations carried through unmodified.
type MakeMovePayload struct {
	RoomID    string `json:"roomId"`
	From      string `json:"from"`
	To        string `json:"to"`
	Promotion string `json:"promotion,omitempty"`
	Piece     string `json:"piece,omitempty"`
}

// ResignPayload represents the payload for resigning the game in a room.
type ResignPayload struct {
	RoomID string `json:"roomId"`
}
