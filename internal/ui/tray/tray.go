package tray

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"

	"github.com/stefior/WORK-WORK/internal/core/tracker"
)

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnShowWindow      func()
	OnAddProgram      func()
	OnRemoveProgram   func()
	OnReset           func()
	OnToggleAutostart func() bool
	AutostartEnabled  func() bool
	OnQuit            func()
}

// Manager handles system tray state.
type Manager struct {
	app           desktop.App
	statusItem    *fyne.MenuItem
	autostartItem *fyne.MenuItem
	callbacks     Callbacks
	status        tracker.Status
	clock         string
}

// New creates a tray manager with the provided callbacks.
func New(app desktop.App, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:       app,
		callbacks: callbacks,
		status:    tracker.StatusStarting,
		clock:     "00:00:00",
	}

	manager.statusItem = fyne.NewMenuItem("Starting...", nil)
	manager.statusItem.Disabled = true

	manager.autostartItem = fyne.NewMenuItem("Start at login", func() {
		if manager.callbacks.OnToggleAutostart != nil {
			enabled := manager.callbacks.OnToggleAutostart()
			manager.setAutostartLabel(enabled)
			manager.refreshMenu()
		}
	})
	if manager.callbacks.AutostartEnabled != nil {
		manager.setAutostartLabel(manager.callbacks.AutostartEnabled())
	}

	manager.refreshMenu()

	return manager
}

// Apply updates the tray readout from an engine event.
func (manager *Manager) Apply(event tracker.Event) {
	changed := false
	switch event.Type {
	case tracker.EventDisplay:
		if event.Clock != manager.clock {
			manager.clock = event.Clock
			changed = true
		}
	case tracker.EventStatus:
		if event.Status != manager.status {
			manager.status = event.Status
			changed = true
		}
	}
	if changed {
		manager.statusItem.Label = fmt.Sprintf("%s  %s", manager.clock, manager.status)
		manager.refreshMenu()
	}
}

func (manager *Manager) setAutostartLabel(enabled bool) {
	if enabled {
		manager.autostartItem.Label = "Start at login: on"
	} else {
		manager.autostartItem.Label = "Start at login: off"
	}
}

func (manager *Manager) refreshMenu() {
	if manager.app == nil {
		return
	}
	manager.app.SetSystemTrayMenu(fyne.NewMenu("WORK WORK",
		manager.statusItem,
		fyne.NewMenuItem("Show timer", func() {
			if manager.callbacks.OnShowWindow != nil {
				manager.callbacks.OnShowWindow()
			}
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Add program", func() {
			if manager.callbacks.OnAddProgram != nil {
				manager.callbacks.OnAddProgram()
			}
		}),
		fyne.NewMenuItem("Remove program", func() {
			if manager.callbacks.OnRemoveProgram != nil {
				manager.callbacks.OnRemoveProgram()
			}
		}),
		fyne.NewMenuItem("Reset time", func() {
			if manager.callbacks.OnReset != nil {
				manager.callbacks.OnReset()
			}
		}),
		fyne.NewMenuItemSeparator(),
		manager.autostartItem,
		fyne.NewMenuItem("Quit", func() {
			if manager.callbacks.OnQuit != nil {
				manager.callbacks.OnQuit()
			}
		}),
	))
}
