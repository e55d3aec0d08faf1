// Package game owns the state of one in-progress chess game: board,
// side-to-move, ply counter, move history and terminal result. A session is
// the only mutation path for its board.
package game

import (
	"errors"
	"sync"

	"github.com/nvoicu/chessroom-server/pkg/chess"
	"github.com/nvoicu/chessroom-server/pkg/messages"
)

var (
	// ErrIllegalMove is returned when the rule engine rejects a move.
	ErrIllegalMove = errors.New("illegal move")
	// ErrGameOver is returned for any mutation attempted after the
	// session reached a terminal state.
	ErrGameOver = errors.New("game is over")
)

// Terminal result reasons as they appear on the wire.
const (
	ReasonCheckmate = "checkmate"
	ReasonStalemate = "stalemate"
	ReasonResign    = "resign"
)

// Result marks a session as terminal. Winner is nil for stalemate.
type Result struct {
	Reason string
	Winner *chess.Color
}

// Move is one applied half-move. Promotion and PieceTag are client
// annotations echoed back on the wire; they never influence legality.
type Move struct {
	From      chess.Square
	To        chess.Square
	Piece     chess.Piece
	Captured  chess.Piece
	Promotion string
	PieceTag  string
}

// Session is an in-progress game. All mutations go through ApplyMove and
// Resign behind the session mutex; once a Result is set the session is
// terminal and absorbing.
type Session struct {
	mu      sync.Mutex
	board   chess.Board
	turn    chess.Color
	ply     int
	history []Move
	result  *Result
}

// NewSession starts a session at the standard starting position with white
// to move.
func NewSession() *Session {
	return &Session{
		board: chess.StartingBoard(),
		turn:  chess.White,
	}
}

// ApplyMove validates from-to against the rule engine for the current side
// to move and, if legal, mutates the board, flips the turn, increments the
// ply, appends to the history and recomputes the status. Checkmate and
// stalemate transition the session to a terminal state.
func (s *Session) ApplyMove(from, to chess.Square, promotion, pieceTag string) (Move, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.result != nil {
		return Move{}, ErrGameOver
	}
	if !chess.IsLegalMove(s.board, from, to, s.turn) {
		return Move{}, ErrIllegalMove
	}

	move := Move{
		From:      from,
		To:        to,
		Piece:     s.board.At(from),
		Captured:  s.board.At(to),
		Promotion: promotion,
		PieceTag:  pieceTag,
	}

	s.board.Put(to, s.board.At(from))
	s.board.Put(from, chess.Piece{})
	s.turn = s.turn.Opp()
	s.ply++
	s.history = append(s.history, move)

	switch chess.Status(s.board, s.turn) {
	case chess.StatusCheckmate:
		winner := s.turn.Opp()
		s.result = &Result{Reason: ReasonCheckmate, Winner: &winner}
	case chess.StatusStalemate:
		s.result = &Result{Reason: ReasonStalemate}
	}

	return move, nil
}

// Resign ends the session in favor of the opposite color.
func (s *Session) Resign(c chess.Color) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.result != nil {
		return Result{}, ErrGameOver
	}

	winner := c.Opp()
	s.result = &Result{Reason: ReasonResign, Winner: &winner}
	return *s.result, nil
}

// ActiveColor returns the side to move.
func (s *Session) ActiveColor() chess.Color {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.turn
}

// Ply returns the number of applied half-moves. Its parity always matches
// the side to move: even means white.
func (s *Session) Ply() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ply
}

// Board returns a snapshot copy of the current board.
func (s *Session) Board() chess.Board {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.board
}

// Result returns the terminal result, or nil while the game is in progress.
func (s *Session) Result() *Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.result == nil {
		return nil
	}
	r := *s.result
	return &r
}

// Moves returns a copy of the move history.
func (s *Session) Moves() []Move {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Move, len(s.history))
	copy(out, s.history)
	return out
}

// State serializes the session for the wire: active color, full move
// history and the result if any. The board itself is never sent.
func (s *Session) State(roomID string) messages.GameState {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := messages.GameState{
		RoomID:      roomID,
		ActiveColor: s.turn,
		Moves:       make([]messages.Move, 0, len(s.history)),
	}
	for _, m := range s.history {
		state.Moves = append(state.Moves, toWireMove(m))
	}
	if s.result != nil {
		state.GameOver = &messages.GameOver{
			Reason: s.result.Reason,
			Winner: s.result.Winner,
		}
	}
	return state
}

func toWireMove(m Move) messages.Move {
	tag := m.PieceTag
	if tag == "" {
		tag = m.Piece.String()
	}
	return messages.Move{
		From:      m.From.String(),
		To:        m.To.String(),
		Promotion: m.Promotion,
		Piece:     tag,
	}
}

// Replay applies a recorded history to a fresh starting board and returns
// the resulting position. It fails on the first move the rule engine
// rejects, so a session's history always replays cleanly.
func Replay(history []Move) (chess.Board, error) {
	board := chess.StartingBoard()
	turn := chess.White
	for _, m := range history {
		if !chess.IsLegalMove(board, m.From, m.To, turn) {
			return board, ErrIllegalMove
		}
		board.Put(m.To, board.At(m.From))
		board.Put(m.From, chess.Piece{})
		turn = turn.Opp()
	}
	return board, nil
}
