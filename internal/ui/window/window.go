package window

import (
	"cubetimer/internal/core/model"
	"cubetimer/internal/dispatch"
	"cubetimer/internal/refresh"
	"cubetimer/resources"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// Loop posts work onto the Fyne main goroutine.
var Loop refresh.Loop = refresh.LoopFunc(fyne.Do)

const (
	windowWidth  = float32(300)
	windowHeight = float32(300)
)

// Window is the stopwatch window. It implements dispatch.View.
type Window struct {
	window     fyne.Window
	controller *dispatch.Controller
	timeLabel  *widget.Label
	hintLabel  *widget.Label
	sendButton *widget.Button
	cubeSelect *widget.Select
	background *canvas.Image
}

var _ dispatch.View = (*Window)(nil)

// New builds the window and attaches it to the controller.
func New(app fyne.App, controller *dispatch.Controller) *Window {
	window := app.NewWindow("Rubik's Cube Stopwatch")
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}

	background := canvas.NewImageFromResource(resources.Cube())
	background.FillMode = canvas.ImageFillContain
	background.Translucency = 0.75

	timeLabel := widget.NewLabel("")
	timeLabel.Alignment = fyne.TextAlignCenter
	timeLabel.Wrapping = fyne.TextWrapWord
	timeLabel.TextStyle = fyne.TextStyle{Bold: true}

	hintLabel := widget.NewLabel(dispatch.ResetHint)
	hintLabel.Alignment = fyne.TextAlignCenter
	hintLabel.SizeName = theme.SizeNameCaptionText

	sendButton := widget.NewButton(dispatch.SendCaption, nil)
	sendButton.Importance = widget.HighImportance
	sendButton.Hide()

	cubeSelect := widget.NewSelect(cubeOptions(), nil)

	top := container.NewHBox(cubeSelect, layout.NewSpacer())
	center := container.NewVBox(
		layout.NewSpacer(),
		timeLabel,
		container.NewCenter(sendButton),
		layout.NewSpacer(),
	)
	content := container.NewBorder(top, hintLabel, nil, nil, center)

	window.SetContent(container.NewStack(background, content))
	window.Resize(fyne.NewSize(windowWidth, windowHeight))
	window.SetFixedSize(true)
	window.SetMaster()

	view := &Window{
		window:     window,
		controller: controller,
		timeLabel:  timeLabel,
		hintLabel:  hintLabel,
		sendButton: sendButton,
		cubeSelect: cubeSelect,
		background: background,
	}

	sendButton.OnTapped = func() {
		controller.Dispatch(dispatch.InputSend)
	}
	cubeSelect.OnChanged = func(selected string) {
		controller.SelectCubeKind(model.CubeKind(selected))
		// Hand keyboard focus back to the canvas so space and "a" keep working.
		window.Canvas().Unfocus()
	}
	window.Canvas().SetOnTypedKey(func(event *fyne.KeyEvent) {
		controller.HandleKey(string(event.Name))
	})

	controller.Attach(view)
	return view
}

// Show displays the window and brings it to front.
func (view *Window) Show() {
	view.window.Show()
	view.window.RequestFocus()
}

// ShowAndRun displays the window and runs the application loop.
func (view *Window) ShowAndRun() {
	view.window.ShowAndRun()
}

// Canvas exposes the window canvas.
func (view *Window) Canvas() fyne.Canvas {
	return view.window.Canvas()
}

// SetTimeText implements dispatch.View.
func (view *Window) SetTimeText(text string) {
	view.timeLabel.SetText(text)
}

// SetSendVisible implements dispatch.View.
func (view *Window) SetSendVisible(visible bool) {
	if visible {
		view.sendButton.Show()
		return
	}
	view.sendButton.Hide()
}

// SetSendCaption implements dispatch.View.
func (view *Window) SetSendCaption(caption string) {
	view.sendButton.SetText(caption)
}

// SetSendEnabled implements dispatch.View.
func (view *Window) SetSendEnabled(enabled bool) {
	if enabled {
		view.sendButton.Enable()
		return
	}
	view.sendButton.Disable()
}

// SetCubeKind implements dispatch.View.
func (view *Window) SetCubeKind(kind model.CubeKind) {
	// SetSelected fires OnChanged even for the current value.
	if view.cubeSelect.Selected == string(kind) {
		return
	}
	view.cubeSelect.SetSelected(string(kind))
}

func cubeOptions() []string {
	kinds := model.CubeKinds()
	options := make([]string, 0, len(kinds))
	for _, kind := range kinds {
		options = append(options, string(kind))
	}
	return options
}
