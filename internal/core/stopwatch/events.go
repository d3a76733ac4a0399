package stopwatch

import (
	"time"

	"cubetimer/internal/core/model"
)

// State represents the current stopwatch mode.
type State string

const (
	StateIdle    State = "idle"
	StateRunning State = "running"
	StateStopped State = "stopped"
	StateSent    State = "sent"
)

// EventType defines the type of stopwatch event.
type EventType string

const (
	EventStateChange EventType = "state_change"
	EventKindChange  EventType = "kind_change"
	EventSendFailed  EventType = "send_failed"
)

// Event represents a stopwatch update for observers.
type Event struct {
	Type    EventType
	State   State
	Elapsed time.Duration
	Kind    model.CubeKind
	Message string
}
