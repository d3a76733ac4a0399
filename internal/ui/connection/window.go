package connection

import (
	"context"
	"fmt"
	"strings"

	"cubetimer/internal/core/model"
	"cubetimer/internal/influx"
	"cubetimer/internal/refresh"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

const (
	statusUntested = "Not tested yet"
	statusTesting  = "Testing..."
	statusOK       = "InfluxDb is reachable"
)

// Pinger checks that the configured server answers.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Window shows the InfluxDB connection in use and lets the user test it.
type Window struct {
	window     fyne.Window
	pinger     Pinger
	loop       refresh.Loop
	status     *widget.Label
	testButton *widget.Button
}

// New creates a connection window for config.
func New(app fyne.App, config model.InfluxConfig, pinger Pinger, loop refresh.Loop) *Window {
	if loop == nil {
		loop = refresh.Immediate
	}
	if config.Timeout <= 0 {
		config.Timeout = influx.DefaultTimeout
	}
	window := app.NewWindow("InfluxDb connection")

	form := widget.NewForm(
		widget.NewFormItem("URL", widget.NewLabel(config.URL)),
		widget.NewFormItem("Organization", widget.NewLabel(config.Org)),
		widget.NewFormItem("Bucket", widget.NewLabel(config.Bucket)),
		widget.NewFormItem("Token", widget.NewLabel(MaskToken(config.Token))),
		widget.NewFormItem("Timeout", widget.NewLabel(config.Timeout.String())),
	)

	status := widget.NewLabel(statusUntested)
	status.Wrapping = fyne.TextWrapWord

	testButton := widget.NewButton("Test connection", nil)
	closeButton := widget.NewButton("Close", func() {
		window.Hide()
	})
	buttons := container.NewHBox(testButton, layout.NewSpacer(), closeButton)

	window.SetContent(container.NewBorder(nil, buttons, nil, nil, container.NewVBox(form, status)))
	window.Resize(fyne.NewSize(360, 260))
	window.SetCloseIntercept(func() {
		window.Hide()
	})

	connection := &Window{
		window:     window,
		pinger:     pinger,
		loop:       loop,
		status:     status,
		testButton: testButton,
	}
	testButton.OnTapped = connection.Test
	return connection
}

// Show displays the connection window.
func (connection *Window) Show() {
	connection.window.Show()
	connection.window.RequestFocus()
}

// Test pings the server in the background and reports the outcome.
func (connection *Window) Test() {
	if connection.pinger == nil || connection.testButton.Disabled() {
		return
	}
	connection.testButton.Disable()
	connection.status.SetText(statusTesting)

	go func() {
		err := connection.pinger.Ping(context.Background())
		connection.loop.Post(func() {
			connection.testButton.Enable()
			if err != nil {
				connection.status.SetText(fmt.Sprintf("Connection failed: %s", influx.Message(err)))
				return
			}
			connection.status.SetText(statusOK)
		})
	}()
}

// Status returns the text of the status line.
func (connection *Window) Status() string {
	return connection.status.Text
}

// MaskToken hides all but the last four characters of a token.
func MaskToken(token string) string {
	const visible = 4
	if len(token) <= visible {
		return strings.Repeat("*", len(token))
	}
	return strings.Repeat("*", len(token)-visible) + token[len(token)-visible:]
}
