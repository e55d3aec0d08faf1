// Package events provides a small in-process pub-sub publisher used to
// surface room lifecycle events to interested components without coupling
// them to each other.
package events

import (
	"sync"

	"go.uber.org/zap"
)

// EventType represents the type of event
type EventType string

// Define event types
const (
	EventRoomCreated      EventType = "ROOM_CREATED"
	EventRoomJoined       EventType = "ROOM_JOINED"
	EventMoveAccepted     EventType = "MOVE_ACCEPTED"
	EventGameEnded        EventType = "GAME_ENDED"
	EventRoomDestroyed    EventType = "ROOM_DESTROYED"
	EventConnectionClosed EventType = "CONNECTION_CLOSED"
)

// Event represents an event in the system
type Event struct {
	Type     EventType
	RoomCode string // Optional, empty for non-room events
	Payload  interface{}
}

// Handler is a function that processes events
type Handler func(event Event)

// Publisher is the central event publisher
type Publisher struct {
	mu          sync.RWMutex
	subscribers map[EventType][]Handler
}

// NewPublisher creates a new event publisher
func NewPublisher() *Publisher {
	return &Publisher{
		subscribers: make(map[EventType][]Handler),
	}
}

// Subscribe registers a handler for a specific event type
func (p *Publisher) Subscribe(eventType EventType, handler Handler) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.subscribers[eventType] = append(p.subscribers[eventType], handler)
}

// SubscribeAll registers a handler for every event type
func (p *Publisher) SubscribeAll(handler Handler) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.subscribers["*"] = append(p.subscribers["*"], handler)
}

// LogHandler returns a handler that records every event through the given
// logger. main wires it as a catch-all subscriber so room lifecycle and
// connection churn show up in the structured logs.
func LogHandler(logger *zap.Logger) Handler {
	return func(event Event) {
		logger.Debug("event published",
			zap.String("event_type", string(event.Type)),
			zap.String("room", event.RoomCode))
	}
}

// Publish broadcasts an event to its subscribers and to "all events"
// handlers. Handlers run concurrently; they must not assume ordering.
func (p *Publisher) Publish(event Event) {
	p.mu.RLock()
	handlers := p.subscribers[event.Type]
	allHandlers := p.subscribers["*"]
	p.mu.RUnlock()

	for _, handler := range handlers {
		go handler(event)
	}
	for _, handler := range allHandlers {
		go handler(event)
	}
}
