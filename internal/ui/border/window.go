package border

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
)

// borderColor matches the timer's not-working background.
var borderColor = color.NRGBA{R: 240, G: 112, B: 112, A: 255}

const borderThickness = float32(8)

type splashWindowDriver interface {
	CreateSplashWindow() fyne.Window
}

// Window is a frameless fullscreen frame drawn around the screen edges
// while the user is not working. It holds no state beyond visibility;
// the engine decides when to show it.
type Window struct {
	window  fyne.Window
	visible bool
}

// New creates the border window, hidden.
func New(app fyne.App) *Window {
	var window fyne.Window
	if driver, ok := app.Driver().(splashWindowDriver); ok {
		// Splash window is undecorated (no native frame/buttons).
		window = driver.CreateSplashWindow()
	} else {
		window = app.NewWindow("WORK WORK")
	}
	window.SetPadded(false)

	frame := canvas.NewRectangle(color.Transparent)
	frame.StrokeColor = borderColor
	frame.StrokeWidth = borderThickness

	window.SetContent(container.NewStack(frame))
	return &Window{window: window}
}

// SetVisible shows or hides the border. The engine only calls this on
// state edges, so redundant churn never reaches the window system.
func (border *Window) SetVisible(visible bool) {
	if visible == border.visible {
		return
	}
	border.visible = visible
	fyne.Do(func() {
		if visible {
			border.window.SetFullScreen(true)
			border.window.Show()
			return
		}
		border.window.SetFullScreen(false)
		border.window.Hide()
	})
}
