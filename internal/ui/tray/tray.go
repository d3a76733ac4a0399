package tray

import (
	"fmt"

	"cubetimer/internal/core/model"
	"cubetimer/internal/core/stopwatch"

	"fyne.io/fyne/v2"
)

// MenuHost is the part of desktop.App the tray needs.
type MenuHost interface {
	SetSystemTrayMenu(menu *fyne.Menu)
}

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnShow       func()
	OnToggle     func()
	OnReset      func()
	OnSend       func()
	OnCycleKind  func()
	OnConnection func()
	OnQuit       func()
}

// Manager handles system tray state.
type Manager struct {
	host       MenuHost
	callbacks  Callbacks
	statusItem *fyne.MenuItem
	toggleItem *fyne.MenuItem
	resetItem  *fyne.MenuItem
	sendItem   *fyne.MenuItem
	kindItem   *fyne.MenuItem
	state      stopwatch.State
	kind       model.CubeKind
}

// New creates a tray manager with the provided callbacks.
func New(host MenuHost, callbacks Callbacks) *Manager {
	manager := &Manager{
		host:      host,
		callbacks: callbacks,
		state:     stopwatch.StateIdle,
		kind:      model.DefaultCubeKind,
	}

	manager.statusItem = fyne.NewMenuItem("", nil)
	manager.statusItem.Disabled = true
	manager.toggleItem = fyne.NewMenuItem("", func() { call(manager.callbacks.OnToggle) })
	manager.resetItem = fyne.NewMenuItem("Reset", func() { call(manager.callbacks.OnReset) })
	manager.sendItem = fyne.NewMenuItem("Send result", func() { call(manager.callbacks.OnSend) })
	manager.kindItem = fyne.NewMenuItem("", func() { call(manager.callbacks.OnCycleKind) })

	manager.refreshItems()
	manager.refreshMenu()
	return manager
}

// Update applies a stopwatch event to the menu.
func (manager *Manager) Update(event stopwatch.Event) {
	switch event.Type {
	case stopwatch.EventStateChange, stopwatch.EventSendFailed:
		manager.state = event.State
	case stopwatch.EventKindChange:
		manager.kind = event.Kind
	default:
		return
	}
	manager.refreshItems()
	manager.refreshMenu()
}

// Status returns the current status line.
func (manager *Manager) Status() string {
	return manager.statusItem.Label
}

func (manager *Manager) refreshItems() {
	manager.statusItem.Label = fmt.Sprintf("Status: %s", manager.state)
	manager.kindItem.Label = fmt.Sprintf("Cube: %s", manager.kind)

	switch manager.state {
	case stopwatch.StateRunning:
		manager.toggleItem.Label = "Stop"
	default:
		manager.toggleItem.Label = "Start"
	}
	manager.toggleItem.Disabled = manager.state != stopwatch.StateIdle && manager.state != stopwatch.StateRunning
	manager.resetItem.Disabled = manager.state != stopwatch.StateStopped && manager.state != stopwatch.StateSent
	manager.sendItem.Disabled = manager.state != stopwatch.StateStopped && manager.state != stopwatch.StateSent
}

func (manager *Manager) refreshMenu() {
	if manager.host == nil {
		return
	}
	quit := fyne.NewMenuItem("Quit", func() { call(manager.callbacks.OnQuit) })
	quit.IsQuit = true
	manager.host.SetSystemTrayMenu(fyne.NewMenu("CubeTimer",
		manager.statusItem,
		fyne.NewMenuItem("Show", func() { call(manager.callbacks.OnShow) }),
		fyne.NewMenuItemSeparator(),
		manager.toggleItem,
		manager.resetItem,
		manager.sendItem,
		manager.kindItem,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Connection...", func() { call(manager.callbacks.OnConnection) }),
		quit,
	))
}

func call(callback func()) {
	if callback != nil {
		callback()
	}
}
