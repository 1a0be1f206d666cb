package input

import "github.com/junsooki/hudhook/internal/callback"

// EventType identifies which callback kind an event fires.
type EventType string

const (
	EventAction  EventType = "action"
	EventQuery   EventType = "query"
	EventKeyDown EventType = "key_down"
	EventKeyUp   EventType = "key_up"
)

// Event is the wire format for trigger events sent by remote sources.
// KeyCode is always encoded because 0 is a valid key code.
type Event struct {
	Type    EventType `json:"type"`
	Trigger string    `json:"trigger,omitempty"`
	KeyCode int       `json:"keyCode"`
}

// Result reports what routing an Event did. Value is only set for a query
// that reached a ReturnAction; Error is only set by transports that have no
// other way to report a failed event.
type Result struct {
	Trigger string `json:"trigger"`
	Fired   bool   `json:"fired"`
	Value   *bool  `json:"value,omitempty"`
	Error   string `json:"error,omitempty"`
}

// TriggerFor returns the trigger e fires, applying the per-type default
// when e.Trigger is empty.
func TriggerFor(e Event) callback.Trigger {
	if e.Trigger != "" {
		return callback.Trigger(e.Trigger)
	}
	switch e.Type {
	case EventAction:
		return callback.TriggerClick
	case EventQuery:
		return callback.TriggerValidate
	case EventKeyDown:
		return callback.TriggerKeyDown
	case EventKeyUp:
		return callback.TriggerKeyUp
	}
	return ""
}
