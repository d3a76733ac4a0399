package terminal

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"cubetimer/internal/core/model"
	"cubetimer/internal/core/stopwatch"
	"cubetimer/internal/dispatch"
	"cubetimer/internal/refresh"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSender struct {
	mu     sync.Mutex
	err    error
	solves []model.Solve
}

func (sender *stubSender) Transmit(_ context.Context, solve *model.Solve) error {
	sender.mu.Lock()
	defer sender.mu.Unlock()
	sender.solves = append(sender.solves, *solve)
	return sender.err
}

// channelLoop hands posted work to the test as postMsg values, the way a
// running program would receive them.
type channelLoop chan tea.Msg

func (loop channelLoop) Post(fn func()) {
	loop <- postMsg(fn)
}

func newTestModel(t *testing.T, sender *stubSender) (*Model, channelLoop) {
	t.Helper()
	loop := make(channelLoop, 8)
	controller := dispatch.New(dispatch.Options{
		Watch:     stopwatch.New(nil),
		Sender:    sender,
		Scheduler: refresh.NewTicker(loop, time.Hour),
		Loop:      loop,
	})
	t.Cleanup(controller.Close)
	return New(controller), loop
}

func runes(value string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(value)}
}

func press(m *Model, msg tea.Msg) tea.Cmd {
	_, cmd := m.Update(msg)
	return cmd
}

func receive(t *testing.T, loop channelLoop) tea.Msg {
	t.Helper()
	select {
	case msg := <-loop:
		return msg
	case <-time.After(2 * time.Second):
		t.Fatal("no message posted")
		return nil
	}
}

func TestInitialView(t *testing.T) {
	m, _ := newTestModel(t, &stubSender{})

	assert.Nil(t, m.Init())
	view := m.View()
	assert.Contains(t, view, dispatch.PromptStart)
	assert.Contains(t, view, "cube: speed")
	assert.Contains(t, view, dispatch.ResetHint)
	assert.NotContains(t, view, dispatch.SendCaption)
}

func TestKeysDriveStopwatch(t *testing.T) {
	m, _ := newTestModel(t, &stubSender{})
	watch := m.controller.Watch()

	press(m, runes(" "))
	assert.Equal(t, stopwatch.StateRunning, watch.State())
	assert.Contains(t, m.View(), dispatch.StartingText)

	press(m, runes("c"))
	assert.Equal(t, model.CubeClassic, watch.CubeKind())
	assert.Contains(t, m.View(), "cube: classic")

	press(m, runes(" "))
	assert.Equal(t, stopwatch.StateStopped, watch.State())
	assert.Contains(t, m.View(), "Elapsed time: ")
	assert.Contains(t, m.View(), dispatch.SendCaption)

	press(m, runes("a"))
	assert.Equal(t, stopwatch.StateIdle, watch.State())
	assert.Contains(t, m.View(), dispatch.PromptRestart)
}

func TestEnterSendsAndAppliesResult(t *testing.T) {
	sender := &stubSender{}
	m, loop := newTestModel(t, sender)

	press(m, runes(" "))
	press(m, runes(" "))
	press(m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, m.controller.Sending())
	assert.Contains(t, m.View(), dispatch.SendingCaption)

	press(m, receive(t, loop))
	assert.False(t, m.controller.Sending())
	assert.Equal(t, stopwatch.StateSent, m.controller.Watch().State())
	assert.Contains(t, m.View(), dispatch.SentCaption)

	sender.mu.Lock()
	defer sender.mu.Unlock()
	require.Len(t, sender.solves, 1)
	assert.Equal(t, model.CubeSpeed, sender.solves[0].Kind)
}

func TestFailedSendShowsMessage(t *testing.T) {
	m, loop := newTestModel(t, &stubSender{err: errors.New("unauthorized access")})

	press(m, runes(" "))
	press(m, runes(" "))
	press(m, tea.KeyMsg{Type: tea.KeyEnter})
	press(m, receive(t, loop))

	assert.Equal(t, stopwatch.StateStopped, m.controller.Watch().State())
	assert.Contains(t, m.View(), "unauthorized access")
	assert.Contains(t, m.View(), dispatch.SendCaption)
}

func TestQuitKeys(t *testing.T) {
	m, _ := newTestModel(t, &stubSender{})

	for _, msg := range []tea.KeyMsg{runes("q"), {Type: tea.KeyCtrlC}} {
		cmd := press(m, msg)
		require.NotNil(t, cmd)
		assert.Equal(t, tea.QuitMsg{}, cmd())
	}
}

func TestUnboundLoopDropsWork(t *testing.T) {
	loop := &ProgramLoop{}
	called := false
	loop.Post(func() { called = true })
	assert.False(t, called)
}
