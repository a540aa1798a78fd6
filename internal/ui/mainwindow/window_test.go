package mainwindow

import (
	"testing"

	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/theme"

	"github.com/stefior/WORK-WORK/internal/core/tracker"
)

func newTestWindow(t *testing.T) *Window {
	t.Helper()
	app := test.NewApp()
	// The default test theme has no bold+monospace font face, which makes
	// fyne's text measurement panic when laying out the clock label.
	app.Settings().SetTheme(theme.DefaultTheme())
	t.Cleanup(app.Quit)
	return New(app, func() tracker.Snapshot { return tracker.Snapshot{} }, Callbacks{})
}

func TestApplyEventDisplayUpdatesClock(t *testing.T) {
	main := newTestWindow(t)

	main.ApplyEvent(tracker.Event{Type: tracker.EventDisplay, Clock: "01:02:03"})

	if got := main.clockLabel.Text; got != "01:02:03" {
		t.Fatalf("clock text = %q, want %q", got, "01:02:03")
	}
}

func TestApplyEventLatchesShowMessages(t *testing.T) {
	tests := []struct {
		name  string
		event tracker.Event
		want  string
	}{
		{"goal", tracker.Event{Type: tracker.EventGoalReached}, "goal!"},
		{"max", tracker.Event{Type: tracker.EventMaxReached}, "max!"},
		{"notice", tracker.Event{Type: tracker.EventNotice, Message: "select a window"}, "select a window"},
	}
	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			main := newTestWindow(t)

			main.ApplyEvent(testCase.event)

			if got := main.clockLabel.Text; got != testCase.want {
				t.Fatalf("clock text = %q, want %q", got, testCase.want)
			}
		})
	}
}

func TestApplyEventStatusSetsTitleAndColor(t *testing.T) {
	main := newTestWindow(t)

	main.ApplyEvent(tracker.Event{Type: tracker.EventStatus, Status: tracker.StatusWorking})
	if got := main.window.Title(); got != string(tracker.StatusWorking) {
		t.Fatalf("title = %q, want %q", got, tracker.StatusWorking)
	}
	if main.background.FillColor != colorWorking {
		t.Fatalf("background = %v, want working color", main.background.FillColor)
	}

	main.ApplyEvent(tracker.Event{Type: tracker.EventStatus, Status: tracker.StatusNotWorking})
	if main.background.FillColor != colorNotWorking {
		t.Fatalf("background = %v, want not-working color", main.background.FillColor)
	}
}

func TestHideTimeMasksClock(t *testing.T) {
	main := newTestWindow(t)
	main.ApplyEvent(tracker.Event{Type: tracker.EventDisplay, Clock: "00:00:10"})

	main.hideTime = true
	main.refreshClock()
	if got := main.clockLabel.Text; got != tracker.HiddenClock {
		t.Fatalf("hidden clock text = %q, want %q", got, tracker.HiddenClock)
	}

	main.hideTime = false
	main.refreshClock()
	if got := main.clockLabel.Text; got != "00:00:10" {
		t.Fatalf("restored clock text = %q, want %q", got, "00:00:10")
	}
}
