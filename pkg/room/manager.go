package room

import (
	"errors"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nvoicu/chessroom-server/pkg/chess"
	"github.com/nvoicu/chessroom-server/pkg/events"
)

var (
	// ErrRoomNotFound is returned when no room exists for a code.
	ErrRoomNotFound = errors.New("room not found")
	// ErrRoomFull is returned when both seats are held by other connections.
	ErrRoomFull = errors.New("room is full")
)

// Departure describes the effect of a connection leaving one room.
type Departure struct {
	Code      string
	Remaining *uuid.UUID
	Destroyed bool
}

// Manager is the registry of active rooms. It is the only component that
// creates or destroys rooms; the table mutex serializes code generation and
// insert/remove independently of any single room's lock.
type Manager struct {
	mu    sync.RWMutex
	rooms map[string]*Room

	publisher *events.Publisher
	logger    *zap.Logger
}

// NewManager creates a manager with in-memory room storage.
func NewManager(logger *zap.Logger, publisher *events.Publisher) *Manager {
	return &Manager{
		rooms:     make(map[string]*Room),
		publisher: publisher,
		logger:    logger,
	}
}

// CreateRoom allocates a room with a fresh unique code, an in-progress
// session at the starting position and no seats bound. The reserved color
// is kept as a hint for the first joiner.
func (m *Manager) CreateRoom(reserved *chess.Color) *Room {
	m.mu.Lock()
	code := newCode()
	// Re-roll on collision rather than overwrite. With a 32^6 code space
	// this loop effectively never repeats.
	for _, exists := m.rooms[code]; exists; _, exists = m.rooms[code] {
		code = newCode()
	}
	r := newRoom(code, reserved)
	m.rooms[code] = r
	m.mu.Unlock()

	m.logger.Info("created room", zap.String("code", code))
	m.publisher.Publish(events.Event{
		Type:     events.EventRoomCreated,
		RoomCode: code,
	})

	return r
}

// Resolve returns the room for a code.
func (m *Manager) Resolve(code string) (*Room, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.rooms[code]
	return r, ok
}

// Join seats a connection in the room with the given code. A connection
// that already holds a seat gets it back idempotently, which is what makes
// reconnect-by-code and client retries safe. Otherwise the first open seat
// is assigned, honoring the creator's reserved color while both seats are
// open.
func (m *Manager) Join(code string, conn uuid.UUID) (chess.Color, error) {
	r, ok := m.Resolve(code)
	if !ok {
		return "", ErrRoomNotFound
	}

	if color, seated := r.SeatOf(conn); seated {
		return color, nil
	}

	for {
		color, open := r.FreeColor()
		if !open {
			return "", ErrRoomFull
		}
		if r.TakeSeat(color, conn) {
			m.logger.Info("connection joined room",
				zap.String("code", code),
				zap.String("color", string(color)),
				zap.String("connection_id", conn.String()))
			m.publisher.Publish(events.Event{
				Type:     events.EventRoomJoined,
				RoomCode: code,
				Payload:  color,
			})
			return color, nil
		}
		// Lost the race for that seat; try the remaining one.
	}
}

// LeaveAll clears every seat held by the connection. Rooms whose both
// seats became empty are destroyed; a room keeps living with a single
// occupant so the opponent can reconnect by code, however long they take.
func (m *Manager) LeaveAll(conn uuid.UUID) []Departure {
	m.mu.Lock()
	defer m.mu.Unlock()

	var departures []Departure
	for code, r := range m.rooms {
		held, remaining := r.vacate(conn)
		if !held {
			continue
		}

		dep := Departure{Code: code, Remaining: remaining}
		if remaining == nil {
			delete(m.rooms, code)
			dep.Destroyed = true
			m.logger.Info("destroyed empty room", zap.String("code", code))
			m.publisher.Publish(events.Event{
				Type:     events.EventRoomDestroyed,
				RoomCode: code,
			})
		}
		departures = append(departures, dep)
	}
	return departures
}

// Count returns the number of live rooms.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.rooms)
}
