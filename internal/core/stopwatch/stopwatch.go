package stopwatch

import (
	"sync"
	"time"

	"cubetimer/internal/core/model"
)

// Clock supplies the current instant. Readings must carry a monotonic
// component so that elapsed time never goes negative.
type Clock interface {
	Now() time.Time
}

// SystemClock reads time.Now, which includes the monotonic reading.
var SystemClock Clock = systemClock{}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

// Ticket identifies one send attempt for a recorded solve.
type Ticket struct {
	Generation uint64
	Solve      model.Solve
}

// Stopwatch is the Idle → Running → Stopped → Sent state machine for a
// single timed solve.
type Stopwatch struct {
	mu         sync.Mutex
	clock      Clock
	state      State
	start      time.Time
	final      time.Duration
	hasFinal   bool
	kind       model.CubeKind
	generation uint64
	events     []chan Event
}

// New creates an idle stopwatch. A nil clock falls back to SystemClock.
func New(clock Clock) *Stopwatch {
	if clock == nil {
		clock = SystemClock
	}
	return &Stopwatch{
		clock: clock,
		state: StateIdle,
		kind:  model.DefaultCubeKind,
	}
}

// Subscribe registers a new observer channel.
func (watch *Stopwatch) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	watch.mu.Lock()
	watch.events = append(watch.events, ch)
	watch.mu.Unlock()
	return ch
}

// Close closes all observer channels.
func (watch *Stopwatch) Close() {
	watch.mu.Lock()
	events := watch.events
	watch.events = nil
	watch.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
}

// State returns the current state.
func (watch *Stopwatch) State() State {
	watch.mu.Lock()
	defer watch.mu.Unlock()
	return watch.state
}

// CubeKind returns the selected cube kind.
func (watch *Stopwatch) CubeKind() model.CubeKind {
	watch.mu.Lock()
	defer watch.mu.Unlock()
	return watch.kind
}

// Generation returns the session counter, bumped on every reset.
func (watch *Stopwatch) Generation() uint64 {
	watch.mu.Lock()
	defer watch.mu.Unlock()
	return watch.generation
}

// Start begins timing. It only applies from Idle.
func (watch *Stopwatch) Start() bool {
	watch.mu.Lock()
	defer watch.mu.Unlock()
	if watch.state != StateIdle {
		return false
	}
	watch.start = watch.clock.Now()
	watch.state = StateRunning
	watch.emitLocked(Event{Type: EventStateChange, State: StateRunning, Kind: watch.kind})
	return true
}

// Stop records the final duration. It only applies from Running.
func (watch *Stopwatch) Stop() bool {
	watch.mu.Lock()
	defer watch.mu.Unlock()
	if watch.state != StateRunning {
		return false
	}
	elapsed := watch.clock.Now().Sub(watch.start)
	if elapsed < 0 {
		elapsed = 0
	}
	watch.final = elapsed
	watch.hasFinal = true
	watch.state = StateStopped
	watch.emitLocked(Event{Type: EventStateChange, State: StateStopped, Elapsed: elapsed, Kind: watch.kind})
	return true
}

// Reset discards the recorded duration and returns to Idle. It only
// applies from Stopped or Sent.
func (watch *Stopwatch) Reset() bool {
	watch.mu.Lock()
	defer watch.mu.Unlock()
	if watch.state != StateStopped && watch.state != StateSent {
		return false
	}
	watch.start = time.Time{}
	watch.final = 0
	watch.hasFinal = false
	watch.generation++
	watch.state = StateIdle
	watch.emitLocked(Event{Type: EventStateChange, State: StateIdle, Kind: watch.kind})
	return true
}

// SetCubeKind changes the tag used for the next send. Unknown kinds are
// rejected, and the kind is frozen once the solve has been sent.
func (watch *Stopwatch) SetCubeKind(kind model.CubeKind) bool {
	if !kind.Valid() {
		return false
	}
	watch.mu.Lock()
	defer watch.mu.Unlock()
	if watch.state == StateSent || watch.kind == kind {
		return false
	}
	watch.kind = kind
	watch.emitLocked(Event{Type: EventKindChange, State: watch.state, Kind: kind})
	return true
}

// Elapsed returns the live duration while running, the recorded one once
// stopped, and zero when idle.
func (watch *Stopwatch) Elapsed() time.Duration {
	watch.mu.Lock()
	defer watch.mu.Unlock()
	switch watch.state {
	case StateRunning:
		elapsed := watch.clock.Now().Sub(watch.start)
		if elapsed < 0 {
			return 0
		}
		return elapsed
	case StateStopped, StateSent:
		return watch.final
	default:
		return 0
	}
}

// FinalDuration returns the recorded duration, if any.
func (watch *Stopwatch) FinalDuration() (time.Duration, bool) {
	watch.mu.Lock()
	defer watch.mu.Unlock()
	return watch.final, watch.hasFinal
}

// BeginSend snapshots the recorded solve for a send attempt. It only
// applies from Stopped or Sent.
func (watch *Stopwatch) BeginSend() (Ticket, bool) {
	watch.mu.Lock()
	defer watch.mu.Unlock()
	if (watch.state != StateStopped && watch.state != StateSent) || !watch.hasFinal {
		return Ticket{}, false
	}
	return Ticket{
		Generation: watch.generation,
		Solve: model.Solve{
			Seconds: watch.final.Seconds(),
			Kind:    watch.kind,
		},
	}, true
}

// CompleteSend applies the outcome of a send attempt. Outcomes for a
// session that has since been reset are ignored.
func (watch *Stopwatch) CompleteSend(ticket Ticket, err error) bool {
	watch.mu.Lock()
	defer watch.mu.Unlock()
	if ticket.Generation != watch.generation {
		return false
	}
	if watch.state != StateStopped && watch.state != StateSent {
		return false
	}

	if err != nil {
		watch.state = StateStopped
		watch.emitLocked(Event{
			Type:    EventSendFailed,
			State:   StateStopped,
			Elapsed: watch.final,
			Kind:    ticket.Solve.Kind,
			Message: err.Error(),
		})
		return true
	}

	watch.state = StateSent
	watch.emitLocked(Event{Type: EventStateChange, State: StateSent, Elapsed: watch.final, Kind: ticket.Solve.Kind})
	return true
}

func (watch *Stopwatch) emitLocked(event Event) {
	for _, ch := range watch.events {
		select {
		case ch <- event:
		default:
		}
	}
}
