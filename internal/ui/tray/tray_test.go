package tray

import (
	"testing"

	"cubetimer/internal/core/model"
	"cubetimer/internal/core/stopwatch"

	"fyne.io/fyne/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingHost struct {
	menus []*fyne.Menu
}

func (host *recordingHost) SetSystemTrayMenu(menu *fyne.Menu) {
	host.menus = append(host.menus, menu)
}

func (host *recordingHost) last() *fyne.Menu {
	return host.menus[len(host.menus)-1]
}

func findItem(t *testing.T, menu *fyne.Menu, label string) *fyne.MenuItem {
	t.Helper()
	for _, item := range menu.Items {
		if item.Label == label {
			return item
		}
	}
	require.Failf(t, "menu item not found", "label %q", label)
	return nil
}

func TestNewPublishesIdleMenu(t *testing.T) {
	host := &recordingHost{}
	manager := New(host, Callbacks{})

	require.Len(t, host.menus, 1)
	assert.Equal(t, "Status: idle", manager.Status())
	menu := host.last()
	assert.False(t, findItem(t, menu, "Start").Disabled)
	assert.True(t, findItem(t, menu, "Reset").Disabled)
	assert.True(t, findItem(t, menu, "Send result").Disabled)
	assert.True(t, findItem(t, menu, "Quit").IsQuit)
	findItem(t, menu, "Cube: speed")
}

func TestUpdateFollowsStopwatch(t *testing.T) {
	host := &recordingHost{}
	manager := New(host, Callbacks{})

	manager.Update(stopwatch.Event{Type: stopwatch.EventStateChange, State: stopwatch.StateRunning})
	assert.Equal(t, "Status: running", manager.Status())
	assert.False(t, findItem(t, host.last(), "Stop").Disabled)

	manager.Update(stopwatch.Event{Type: stopwatch.EventStateChange, State: stopwatch.StateStopped})
	menu := host.last()
	assert.True(t, findItem(t, menu, "Start").Disabled)
	assert.False(t, findItem(t, menu, "Reset").Disabled)
	assert.False(t, findItem(t, menu, "Send result").Disabled)

	manager.Update(stopwatch.Event{Type: stopwatch.EventKindChange, Kind: model.CubeClassic})
	findItem(t, host.last(), "Cube: classic")
	assert.Equal(t, "Status: stopped", manager.Status())
}

func TestMenuActionsInvokeCallbacks(t *testing.T) {
	host := &recordingHost{}
	var calls []string
	New(host, Callbacks{
		OnShow:       func() { calls = append(calls, "show") },
		OnToggle:     func() { calls = append(calls, "toggle") },
		OnCycleKind:  func() { calls = append(calls, "kind") },
		OnConnection: func() { calls = append(calls, "connection") },
		OnQuit:       func() { calls = append(calls, "quit") },
	})

	menu := host.last()
	findItem(t, menu, "Show").Action()
	findItem(t, menu, "Start").Action()
	findItem(t, menu, "Cube: speed").Action()
	findItem(t, menu, "Reset").Action()
	findItem(t, menu, "Connection...").Action()
	findItem(t, menu, "Quit").Action()

	assert.Equal(t, []string{"show", "toggle", "kind", "connection", "quit"}, calls)
}
