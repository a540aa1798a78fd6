package tracker

import "time"

// Status represents the coarse working state shown in the window title.
type Status string

const (
	StatusStarting   Status = "WORK WORK"
	StatusWorking    Status = "KEEP WORKING"
	StatusNotWorking Status = "BACK TO WORK"
)

// EventType defines the type of tracker event.
type EventType string

const (
	EventDisplay     EventType = "display"
	EventStatus      EventType = "status"
	EventGoalReached EventType = "goal_reached"
	EventMaxReached  EventType = "max_reached"
	EventNotice      EventType = "notice"
	EventIdleError   EventType = "idle_error"
)

// Event represents a tracker update for observers.
type Event struct {
	Type     EventType
	Clock    string
	Total    time.Duration
	Counting bool
	Status   Status
	Message  string
	At       time.Time
}
