// Package room implements short-lived game rooms: a registry keyed by a
// human-shareable code, two color seats bound to connection identities, and
// exactly one game session per room.
package room

import (
	"sync"

	"github.com/google/uuid"

	"github.com/nvoicu/chessroom-server/pkg/chess"
	"github.com/nvoicu/chessroom-server/pkg/game"
)

// Room owns one game session and at most two seat bindings. The room mutex
// serializes every seat and session mutation, so two concurrent moves can
// never both validate against the same pre-move board.
type Room struct {
	Code string

	mu       sync.Mutex
	seats    map[chess.Color]uuid.UUID
	reserved *chess.Color
	session  *game.Session
}

func newRoom(code string, reserved *chess.Color) *Room {
	return &Room{
		Code:     code,
		seats:    make(map[chess.Color]uuid.UUID),
		reserved: reserved,
		session:  game.NewSession(),
	}
}

// Session returns the room's game session.
func (r *Room) Session() *game.Session {
	return r.session
}

// SeatOf returns the color the given connection occupies, if any.
func (r *Room) SeatOf(conn uuid.UUID) (chess.Color, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.seatOfLocked(conn)
}

func (r *Room) seatOfLocked(conn uuid.UUID) (chess.Color, bool) {
	for color, id := range r.seats {
		if id == conn {
			return color, true
		}
	}
	return "", false
}

// TakeSeat binds conn to the given color. It fails when the seat is held by
// someone else; rebinding the same connection is a no-op success.
func (r *Room) TakeSeat(c chess.Color, conn uuid.UUID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if holder, ok := r.seats[c]; ok {
		return holder == conn
	}
	r.seats[c] = conn
	return true
}

// FreeColor returns an open seat color, preferring white. The reserved
// color hint wins only while both seats are still open.
func (r *Room) FreeColor() (chess.Color, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, whiteTaken := r.seats[chess.White]
	_, blackTaken := r.seats[chess.Black]

	switch {
	case !whiteTaken && !blackTaken:
		if r.reserved != nil {
			return *r.reserved, true
		}
		return chess.White, true
	case !whiteTaken:
		return chess.White, true
	case !blackTaken:
		return chess.Black, true
	default:
		return "", false
	}
}

// Slots reports which seats are still open.
func (r *Room) Slots() (whiteOpen, blackOpen bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, whiteTaken := r.seats[chess.White]
	_, blackTaken := r.seats[chess.Black]
	return !whiteTaken, !blackTaken
}

// Occupants returns the connection identities currently seated.
func (r *Room) Occupants() []uuid.UUID {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]uuid.UUID, 0, len(r.seats))
	for _, id := range r.seats {
		out = append(out, id)
	}
	return out
}

// Opponent returns the other seated connection, if there is one.
func (r *Room) Opponent(conn uuid.UUID) (uuid.UUID, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, id := range r.seats {
		if id != conn {
			return id, true
		}
	}
	return uuid.UUID{}, false
}

// vacate clears any seat held by conn and reports whether the room became
// empty along with the surviving occupant, if any.
func (r *Room) vacate(conn uuid.UUID) (held bool, remaining *uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	color, ok := r.seatOfLocked(conn)
	if !ok {
		return false, nil
	}
	delete(r.seats, color)

	for _, id := range r.seats {
		survivor := id
		return true, &survivor
	}
	return true, nil
}
