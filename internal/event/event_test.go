package event

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/mfigueredo/vetsched/internal/model"
)

func TestWireJSON_OmitsEmptyFields(t *testing.T) {
	at := time.Date(2026, 3, 12, 10, 0, 0, 0, time.UTC)
	raw, err := Lifecycle{
		AppointmentID: "appt-1",
		Type:          TypeCreated,
		At:            at,
		NewState:      model.StateScheduled,
	}.WireJSON()
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var got map[string]any
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if got["appointmentId"] != "appt-1" || got["eventType"] != "CREATED" {
		t.Fatalf("unexpected payload: %v", got)
	}
	if got["timestamp"] != "2026-03-12T10:00:00Z" {
		t.Fatalf("unexpected timestamp: %v", got["timestamp"])
	}
	if _, ok := got["previousState"]; ok {
		t.Fatalf("empty previousState must be omitted")
	}
	if _, ok := got["reason"]; ok {
		t.Fatalf("empty reason must be omitted")
	}
	if got["newState"] != "SCHEDULED" {
		t.Fatalf("unexpected newState: %v", got["newState"])
	}
}

func TestParseType(t *testing.T) {
	for _, name := range []string{"CREATED", "STATE_CHANGED", "CANCELLED"} {
		if _, ok := ParseType(name); !ok {
			t.Fatalf("expected %s to parse", name)
		}
	}
	if _, ok := ParseType("REOPENED"); ok {
		t.Fatalf("unknown name must not parse")
	}
}
