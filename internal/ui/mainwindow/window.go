package mainwindow

import (
	"image/color"
	"strconv"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"github.com/stefior/WORK-WORK/internal/core/tracker"
)

// Window background per working state.
var (
	colorNotWorking = color.NRGBA{R: 240, G: 112, B: 112, A: 255}
	colorWorking    = color.NRGBA{R: 176, G: 255, B: 255, A: 255}
	colorClockText  = color.NRGBA{R: 20, G: 20, B: 20, A: 255}
)

// Callbacks defines main window action handlers. All of them post
// requests onto the engine; none touch engine state directly.
type Callbacks struct {
	OnAddProgram     func()
	OnRemoveProgram  func()
	OnReset          func()
	OnResume         func(seconds int)
	OnToggleSound    func()
	OnToggleBorder   func()
	OnSetIdleTimeout func(seconds int)
	OnSetGoal        func(seconds int)
	OnClose          func()

	// HotkeyBindings reports the current global shortcut sequences; the
	// OnSet pair rebinds them.
	HotkeyBindings    func() (add, remove string)
	OnSetAddHotkey    func(sequence string)
	OnSetRemoveHotkey func(sequence string)
}

// Window is the always-on-top timer readout.
type Window struct {
	app        fyne.App
	window     fyne.Window
	clockLabel *canvas.Text
	background *canvas.Rectangle
	snapshotFn func() tracker.Snapshot
	callbacks  Callbacks
	hideTime   bool
	lastClock  string
}

// New creates the timer window.
func New(app fyne.App, snapshotFn func() tracker.Snapshot, callbacks Callbacks) *Window {
	window := app.NewWindow(string(tracker.StatusStarting))
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}
	window.SetPadded(false)
	window.SetFixedSize(true)

	background := canvas.NewRectangle(colorNotWorking)

	clockLabel := canvas.NewText("00:00:00", colorClockText)
	clockLabel.TextSize = 24
	clockLabel.TextStyle = fyne.TextStyle{Monospace: true, Bold: true}
	clockLabel.Alignment = fyne.TextAlignTrailing

	main := &Window{
		app:        app,
		window:     window,
		clockLabel: clockLabel,
		background: background,
		snapshotFn: snapshotFn,
		callbacks:  callbacks,
		lastClock:  "00:00:00",
	}

	menuButton := widget.NewButton("MENU", nil)
	menuButton.OnTapped = func() {
		main.showMenu(menuButton)
	}

	hideCheck := widget.NewCheck("", func(checked bool) {
		main.hideTime = checked
		main.refreshClock()
	})

	content := container.NewHBox(layout.NewSpacer(), clockLabel, menuButton, hideCheck)
	window.SetContent(container.NewStack(background, content))
	window.Resize(fyne.NewSize(240, 48))
	window.SetCloseIntercept(func() {
		if main.callbacks.OnClose != nil {
			main.callbacks.OnClose()
		}
	})

	return main
}

// Show displays the timer window.
func (main *Window) Show() {
	main.window.Show()
}

// ShowError surfaces a problem the user must see, like a failed hotkey
// registration.
func (main *Window) ShowError(err error) {
	dialog.ShowError(err, main.window)
}

// ApplyEvent updates the window from an engine event. Callers must
// invoke it on the Fyne UI thread.
func (main *Window) ApplyEvent(event tracker.Event) {
	switch event.Type {
	case tracker.EventDisplay:
		main.lastClock = event.Clock
		main.refreshClock()
	case tracker.EventStatus:
		main.applyStatus(event.Status)
	case tracker.EventNotice:
		main.clockLabel.Text = event.Message
		main.clockLabel.Refresh()
	case tracker.EventGoalReached:
		main.clockLabel.Text = "goal!"
		main.clockLabel.Refresh()
	case tracker.EventMaxReached:
		main.clockLabel.Text = "max!"
		main.clockLabel.Refresh()
	}
}

func (main *Window) refreshClock() {
	if main.hideTime {
		main.clockLabel.Text = tracker.HiddenClock
	} else {
		main.clockLabel.Text = main.lastClock
	}
	main.clockLabel.Refresh()
}

func (main *Window) applyStatus(status tracker.Status) {
	main.window.SetTitle(string(status))
	if status == tracker.StatusWorking {
		main.background.FillColor = colorWorking
	} else {
		main.background.FillColor = colorNotWorking
	}
	canvas.Refresh(main.background)
}

func (main *Window) showMenu(anchor fyne.CanvasObject) {
	snapshot := main.snapshotFn()

	resumeItems := make([]*fyne.MenuItem, 0, len(snapshot.History))
	for _, seconds := range snapshot.History {
		entrySeconds := seconds
		label := tracker.FormatClock(time.Duration(entrySeconds) * time.Second)
		resumeItems = append(resumeItems, fyne.NewMenuItem(label, func() {
			if main.callbacks.OnResume != nil {
				main.callbacks.OnResume(entrySeconds)
			}
		}))
	}
	resumeItem := fyne.NewMenuItem("Resume previous time", nil)
	if len(resumeItems) > 0 {
		resumeItem.ChildMenu = fyne.NewMenu("", resumeItems...)
	} else {
		resumeItem.Disabled = true
	}

	soundState := "off"
	if snapshot.PlaySoundOnIdle {
		soundState = "on"
	}
	borderState := "off"
	if snapshot.ShowBorder {
		borderState = "on"
	}

	addHotkey, removeHotkey := "", ""
	if main.callbacks.HotkeyBindings != nil {
		addHotkey, removeHotkey = main.callbacks.HotkeyBindings()
	}

	menu := fyne.NewMenu("",
		fyne.NewMenuItem("Add program", main.callbacks.OnAddProgram),
		fyne.NewMenuItem("Remove program", main.callbacks.OnRemoveProgram),
		fyne.NewMenuItem("Add hotkey: "+addHotkey, func() {
			main.promptText("Hotkey Setting", "Add-program hotkey:", addHotkey, main.callbacks.OnSetAddHotkey)
		}),
		fyne.NewMenuItem("Remove hotkey: "+removeHotkey, func() {
			main.promptText("Hotkey Setting", "Remove-program hotkey:", removeHotkey, main.callbacks.OnSetRemoveHotkey)
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Timeout: "+strconv.Itoa(int(snapshot.IdleTimeout.Seconds())), func() {
			main.promptSeconds("Idle Setting", "New idle timeout (seconds):",
				int(snapshot.IdleTimeout.Seconds()), false, main.callbacks.OnSetIdleTimeout)
		}),
		fyne.NewMenuItem("Goal: "+tracker.FormatClock(snapshot.GoalTime), func() {
			main.promptSeconds("Goal Setting", "New goal time (seconds, 0 disables):",
				int(snapshot.GoalTime.Seconds()), true, main.callbacks.OnSetGoal)
		}),
		fyne.NewMenuItem("Idle indicator sound: "+soundState, main.callbacks.OnToggleSound),
		fyne.NewMenuItem("Idle indicator border: "+borderState, main.callbacks.OnToggleBorder),
		fyne.NewMenuItemSeparator(),
		resumeItem,
		fyne.NewMenuItem("Reset time", main.callbacks.OnReset),
	)

	position := main.app.Driver().AbsolutePositionForObject(anchor)
	popup := widget.NewPopUpMenu(menu, main.window.Canvas())
	popup.ShowAtPosition(position.Add(fyne.NewPos(0, anchor.Size().Height)))
}

// promptText opens a small entry window and submits the trimmed value.
func (main *Window) promptText(title, label, initial string, onSubmit func(string)) {
	prompt := main.app.NewWindow(title)

	entry := widget.NewEntry()
	entry.SetText(initial)

	saveButton := widget.NewButton("Save", func() {
		value := strings.TrimSpace(entry.Text)
		if value != "" && onSubmit != nil {
			onSubmit(value)
		}
		prompt.Close()
	})
	cancelButton := widget.NewButton("Cancel", func() {
		prompt.Close()
	})

	prompt.SetContent(container.NewVBox(
		widget.NewLabel(label),
		entry,
		container.NewHBox(saveButton, layout.NewSpacer(), cancelButton),
	))
	prompt.Resize(fyne.NewSize(300, 140))
	prompt.Show()
	prompt.Canvas().Focus(entry)
}

// promptSeconds opens a small entry window and submits the parsed value.
func (main *Window) promptSeconds(title, label string, initial int, allowZero bool, onSubmit func(int)) {
	prompt := main.app.NewWindow(title)

	entry := widget.NewEntry()
	entry.SetText(strconv.Itoa(initial))

	saveButton := widget.NewButton("Save", func() {
		parsed, err := strconv.Atoi(entry.Text)
		if err != nil || parsed < 0 || (parsed == 0 && !allowZero) {
			return
		}
		if onSubmit != nil {
			onSubmit(parsed)
		}
		prompt.Close()
	})
	cancelButton := widget.NewButton("Cancel", func() {
		prompt.Close()
	})

	form := container.NewVBox(
		widget.NewLabel(label),
		entry,
		container.NewHBox(saveButton, layout.NewSpacer(), cancelButton),
	)
	prompt.SetContent(form)
	prompt.Resize(fyne.NewSize(300, 140))
	prompt.Show()
	prompt.Canvas().Focus(entry)
}
