package messages

import "github.com/nvoicu/chessroom-server/pkg/chess"

// Outbound event names. Part of the wire contract.
const (
	EventConnected            = "connected"
	EventRoomCreated          = "roomCreated"
	EventJoined               = "joined"
	EventOpponentJoined       = "opponentJoined"
	EventMoveAccepted         = "moveAccepted"
	EventMoveRejected         = "moveRejected"
	EventGameOver             = "gameOver"
	EventOpponentDisconnected = "opponentDisconnected"
	EventErrorMessage         = "errorMessage"
)

// Rejection reason codes reported to the offending sender.
const (
	ReasonRoomNotFound = "room_not_found"
	ReasonRoomFull     = "room_full"
	ReasonNotInRoom    = "not_in_room"
	ReasonNotYourTurn  = "not_your_turn"
	ReasonIllegalMove  = "illegal_move"
)

// OutboundMessage is how we wrap responses before sending
// them to the client
type OutboundMessage struct {
	Event   string      `json:"event"`
	Payload interface{} `json:"payload"`
}

type ConnectedPayload struct {
	ConnectionID string `json:"connectionId"`
}

// Move is a single half-move as serialized on the wire.
type Move struct {
	From      string `json:"from"`
	To        string `json:"to"`
	Promotion string `json:"promotion,omitempty"`
	Piece     string `json:"piece,omitempty"`
}

// GameOver describes a terminal result.
type GameOver struct {
	Reason string       `json:"reason"`
	Winner *chess.Color `json:"winner,omitempty"`
}

// GameState is the serialized game state. It carries the full ordered move
// history rather than the board; clients reconstruct the position by
// replaying from the starting position.
type GameState struct {
	RoomID      string      `json:"roomId"`
	ActiveColor chess.Color `json:"activeColor"`
	Moves       []Move      `json:"moves"`
	GameOver    *GameOver   `json:"gameOver,omitempty"`
}

// JoinedPayload acknowledges a successful create or join.
type JoinedPayload struct {
	RoomID string      `json:"roomId"`
	Color  chess.Color `json:"color"`
	State  GameState   `json:"state"`
}

type OpponentJoinedPayload struct {
	OpponentColor chess.Color `json:"opponentColor"`
}

// MoveAcceptedPayload is broadcast to both seats after a legal move.
type MoveAcceptedPayload struct {
	State    GameState `json:"state"`
	LastMove Move      `json:"lastMove"`
}

// MoveRejectedPayload is sent only to the offending sender.
type MoveRejectedPayload struct {
	Reason string `json:"reason"`
}

// ErrorPayload carries a human-readable message plus a stable reason code
// when one applies.
type ErrorPayload struct {
	Message string `json:"message"`
	Reason  string `json:"reason,omitempty"`
}
