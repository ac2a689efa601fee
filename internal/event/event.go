// Package event defines the in-process lifecycle events fanned out to
// observers, plus their wire shape for cross-process exposure.
package event

import (
	"encoding/json"
	"time"

	"github.com/mfigueredo/vetsched/internal/model"
)

// Type is the symbolic lifecycle event name.
type Type string

const (
	TypeCreated      Type = "CREATED"
	TypeStateChanged Type = "STATE_CHANGED"
	TypeCancelled    Type = "CANCELLED"
)

func ParseType(name string) (Type, bool) {
	switch Type(name) {
	case TypeCreated, TypeStateChanged, TypeCancelled:
		return Type(name), true
	}
	return "", false
}

// Lifecycle is a transient notification delivered synchronously to registered
// observers. It is never persisted by the core itself.
type Lifecycle struct {
	AppointmentID string
	Type          Type
	At            time.Time
	PrevState     model.State // optional
	NewState      model.State // optional
	Reason        string      // optional
}

type wire struct {
	AppointmentID string `json:"appointmentId"`
	EventType     string `json:"eventType"`
	Timestamp     string `json:"timestamp"`
	PreviousState string `json:"previousState,omitempty"`
	NewState      string `json:"newState,omitempty"`
	Reason        string `json:"reason,omitempty"`
}

// WireJSON serializes the event for delivery across a process boundary.
func (e Lifecycle) WireJSON() ([]byte, error) {
	return json.Marshal(wire{
		AppointmentID: e.AppointmentID,
		EventType:     string(e.Type),
		Timestamp:     e.At.UTC().Format(time.RFC3339),
		PreviousState: string(e.PrevState),
		NewState:      string(e.NewState),
		Reason:        e.Reason,
	})
}
