// Package terminal is a Bubble Tea front-end for the stopwatch. It drives
// the same controller as the desktop window.
package terminal

import (
	"fmt"
	"strings"
	"time"

	"cubetimer/internal/core/model"
	"cubetimer/internal/core/stopwatch"
	"cubetimer/internal/dispatch"
	"cubetimer/internal/refresh"
	"cubetimer/internal/ui/palette"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle          = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(palette.RedHex))
	kindStyle           = lipgloss.NewStyle().Foreground(lipgloss.Color(palette.YellowishHex))
	timeStyle           = lipgloss.NewStyle().Bold(true).Padding(1, 2).Foreground(lipgloss.Color(palette.BlueHex)).Background(lipgloss.Color(palette.YellowishHex))
	buttonStyle         = lipgloss.NewStyle().Padding(0, 2).Foreground(lipgloss.Color("#ffffff")).Background(lipgloss.Color(palette.RedHex))
	disabledButtonStyle = buttonStyle.Copy().Faint(true)
	hintStyle           = lipgloss.NewStyle().Faint(true)
)

// screen holds what the controller last asked to display.
type screen struct {
	timeText    string
	sendVisible bool
	sendCaption string
	sendEnabled bool
	kind        model.CubeKind
}

var _ dispatch.View = (*screen)(nil)

func (view *screen) SetTimeText(text string) { view.timeText = text }
func (view *screen) SetSendVisible(visible bool) { view.sendVisible = visible }
func (view *screen) SetSendCaption(caption string) { view.sendCaption = caption }
func (view *screen) SetSendEnabled(enabled bool) { view.sendEnabled = enabled }
func (view *screen) SetCubeKind(kind model.CubeKind) { view.kind = kind }

// Model is the Bubble Tea model of the terminal stopwatch.
type Model struct {
	controller *dispatch.Controller
	screen     *screen
	keys       keyMap
	help       help.Model
}

// New attaches a terminal screen to the controller.
func New(controller *dispatch.Controller) *Model {
	view := &screen{}
	controller.Attach(view)
	return &Model{
		controller: controller,
		screen:     view,
		keys:       defaultKeyMap(),
		help:       help.New(),
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case postMsg:
		msg()
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Toggle):
			m.controller.Dispatch(dispatch.InputToggle)
		case key.Matches(msg, m.keys.Reset):
			m.controller.Dispatch(dispatch.InputReset)
		case key.Matches(msg, m.keys.Send):
			m.controller.Dispatch(dispatch.InputSend)
		case key.Matches(msg, m.keys.Kind):
			m.controller.CycleCubeKind()
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Rubik's Cube Stopwatch"))
	b.WriteString("  ")
	b.WriteString(kindStyle.Render(fmt.Sprintf("cube: %s", m.screen.kind)))
	b.WriteString("\n\n")
	b.WriteString(timeStyle.Render(m.screen.timeText))
	b.WriteString("\n\n")

	if m.screen.sendVisible {
		style := buttonStyle
		if !m.screen.sendEnabled {
			style = disabledButtonStyle
		}
		b.WriteString(style.Render(m.screen.sendCaption))
		b.WriteString("\n\n")
	}

	b.WriteString(hintStyle.Render(dispatch.ResetHint))
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	b.WriteString("\n")
	return b.String()
}

// Run starts the terminal stopwatch and blocks until the user quits.
func Run(watch *stopwatch.Stopwatch, sender dispatch.Transmitter, interval time.Duration, options ...tea.ProgramOption) error {
	loop := &ProgramLoop{}
	controller := dispatch.New(dispatch.Options{
		Watch:     watch,
		Sender:    sender,
		Scheduler: refresh.NewTicker(loop, interval),
		Loop:      loop,
	})
	defer controller.Close()

	program := tea.NewProgram(New(controller), options...)
	loop.Bind(program)
	_, err := program.Run()
	return err
}
