// Package dispatch maps user input to stopwatch transitions and keeps a view in
// sync with them, independently of the UI toolkit.
package dispatch

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"cubetimer/internal/core/duration"
	"cubetimer/internal/core/model"
	"cubetimer/internal/core/stopwatch"
	"cubetimer/internal/influx"
	"cubetimer/internal/refresh"
)

const (
	PromptStart    = "Press space to start the stopwatch"
	PromptRestart  = "Hit space to start the stopwatch!"
	StartingText   = "Starting...."
	ResetHint      = "Press a to reset the stopwatch"
	SendCaption    = "Send result to InfluxDb"
	SendingCaption = "Sending..."
	SentCaption    = "Data sent to InfluxDb!"
)

// Input is a user action the controller understands.
type Input int

const (
	InputNone Input = iota
	InputToggle
	InputReset
	InputSend
)

// View is the display surface driven by the controller. All calls happen
// on the UI goroutine.
type View interface {
	SetTimeText(text string)
	SetSendVisible(visible bool)
	SetSendCaption(caption string)
	SetSendEnabled(enabled bool)
	SetCubeKind(kind model.CubeKind)
}

// Transmitter performs the outbound write of a recorded solve.
type Transmitter interface {
	Transmit(ctx context.Context, solve *model.Solve) error
}

// Options configures a Controller.
type Options struct {
	Watch     *stopwatch.Stopwatch
	Sender    Transmitter
	Scheduler refresh.Scheduler
	Loop      refresh.Loop
}

// Controller is the application context shared by every event handler.
type Controller struct {
	watch     *stopwatch.Stopwatch
	sender    Transmitter
	scheduler refresh.Scheduler
	loop      refresh.Loop
	view      View

	refresh    *refresh.Handle
	sending    bool
	sendingGen uint64

	ctx    context.Context
	cancel context.CancelFunc
}

// New creates a controller. Missing options fall back to a system-clock
// stopwatch and an immediate loop.
func New(options Options) *Controller {
	if options.Watch == nil {
		options.Watch = stopwatch.New(nil)
	}
	if options.Loop == nil {
		options.Loop = refresh.Immediate
	}
	if options.Scheduler == nil {
		options.Scheduler = refresh.NewTicker(options.Loop, refresh.DefaultInterval)
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Controller{
		watch:     options.Watch,
		sender:    options.Sender,
		scheduler: options.Scheduler,
		loop:      options.Loop,
		view:      nopView{},
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Attach connects the view and paints the idle screen.
func (controller *Controller) Attach(view View) {
	if view == nil {
		view = nopView{}
	}
	controller.view = view
	view.SetCubeKind(controller.watch.CubeKind())
	view.SetSendCaption(SendCaption)
	view.SetSendEnabled(true)
	view.SetSendVisible(false)
	view.SetTimeText(PromptStart)
}

// Watch exposes the underlying state machine.
func (controller *Controller) Watch() *stopwatch.Stopwatch {
	return controller.watch
}

// KeyInput maps a key name to an input. Space toggles the stopwatch and
// "a" resets it. Everything else is ignored.
func KeyInput(key string) Input {
	if key == " " {
		return InputToggle
	}
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "space":
		return InputToggle
	case "a":
		return InputReset
	default:
		return InputNone
	}
}

// HandleKey dispatches a key press.
func (controller *Controller) HandleKey(key string) {
	controller.Dispatch(KeyInput(key))
}

// Dispatch applies an input. Inputs that do not fit the current state are
// silently ignored.
func (controller *Controller) Dispatch(input Input) {
	switch input {
	case InputToggle:
		controller.Toggle()
	case InputReset:
		controller.Reset()
	case InputSend:
		controller.Send()
	}
}

// Toggle starts an idle stopwatch or stops a running one.
func (controller *Controller) Toggle() {
	switch controller.watch.State() {
	case stopwatch.StateIdle:
		controller.start()
	case stopwatch.StateRunning:
		controller.stop()
	}
}

func (controller *Controller) start() {
	if !controller.watch.Start() {
		return
	}
	controller.view.SetTimeText(StartingText)
	controller.refresh = controller.scheduler.Every(controller.tick)
	log.Printf("stopwatch started (%s)", controller.watch.CubeKind())
}

func (controller *Controller) stop() {
	controller.cancelRefresh()
	if !controller.watch.Stop() {
		return
	}
	final, _ := controller.watch.FinalDuration()
	controller.view.SetTimeText(StoppedText(final))
	controller.view.SetSendCaption(SendCaption)
	controller.view.SetSendEnabled(true)
	controller.view.SetSendVisible(true)
	log.Printf("stopwatch stopped at %s", duration.FormatDuration(final))
}

func (controller *Controller) tick() {
	if controller.watch.State() != stopwatch.StateRunning {
		return
	}
	controller.view.SetTimeText(duration.FormatDuration(controller.watch.Elapsed()))
}

// Reset returns a stopped or sent stopwatch to idle.
func (controller *Controller) Reset() {
	if !controller.watch.Reset() {
		return
	}
	controller.sending = false
	controller.view.SetSendVisible(false)
	controller.view.SetSendCaption(SendCaption)
	controller.view.SetSendEnabled(true)
	controller.view.SetTimeText(PromptRestart)
	log.Printf("stopwatch reset")
}

// SelectCubeKind changes the tag for the next send. A rejected kind puts
// the view back on the current one.
func (controller *Controller) SelectCubeKind(kind model.CubeKind) {
	if controller.watch.SetCubeKind(kind) {
		return
	}
	if current := controller.watch.CubeKind(); current != kind {
		controller.view.SetCubeKind(current)
	}
}

// CycleCubeKind selects the next cube kind.
func (controller *Controller) CycleCubeKind() {
	next := controller.watch.CubeKind().Next()
	if controller.watch.SetCubeKind(next) {
		controller.view.SetCubeKind(next)
	}
}

// Send writes the recorded solve on a worker goroutine and applies the
// result back on the UI loop. A result that arrives after a reset is
// dropped.
func (controller *Controller) Send() {
	if controller.sending || controller.sender == nil {
		return
	}
	ticket, ok := controller.watch.BeginSend()
	if !ok {
		return
	}

	controller.sending = true
	controller.sendingGen = ticket.Generation
	controller.view.SetSendEnabled(false)
	controller.view.SetSendCaption(SendingCaption)

	solve := ticket.Solve
	go func() {
		err := controller.sender.Transmit(controller.ctx, &solve)
		controller.loop.Post(func() {
			controller.finishSend(ticket, err)
		})
	}()
}

func (controller *Controller) finishSend(ticket stopwatch.Ticket, err error) {
	if ticket.Generation == controller.sendingGen {
		controller.sending = false
	}
	if !controller.watch.CompleteSend(ticket, err) {
		log.Printf("dropping send result for reset session %d", ticket.Generation)
		return
	}

	controller.view.SetSendEnabled(true)
	if err != nil {
		log.Printf("send %s solve: %v", ticket.Solve.Kind, err)
		controller.view.SetSendCaption(SendCaption)
		controller.view.SetTimeText(influx.Message(err))
		return
	}

	log.Printf("sent %s solve of %.3fs", ticket.Solve.Kind, ticket.Solve.Seconds)
	controller.view.SetSendCaption(SentCaption)
}

// Sending reports whether a write is in flight.
func (controller *Controller) Sending() bool {
	return controller.sending
}

// Close cancels the refresh, aborts an in-flight write and closes
// stopwatch observers.
func (controller *Controller) Close() {
	controller.cancelRefresh()
	controller.cancel()
	controller.watch.Close()
}

func (controller *Controller) cancelRefresh() {
	if controller.refresh != nil {
		controller.refresh.Cancel()
		controller.refresh = nil
	}
}

// StoppedText is the label shown once a solve has been recorded.
func StoppedText(final time.Duration) string {
	return fmt.Sprintf("Elapsed time: %s seconds", duration.FormatDuration(final))
}

type nopView struct{}

func (nopView) SetTimeText(string) {}
func (nopView) SetSendVisible(bool) {}
func (nopView) SetSendCaption(string) {}
func (nopView) SetSendEnabled(bool) {}
func (nopView) SetCubeKind(model.CubeKind) {}
