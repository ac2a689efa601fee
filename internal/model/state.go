package model

// State is the appointment lifecycle state.
type State string

const (
	StateScheduled State = "SCHEDULED"
	StateConfirmed State = "CONFIRMED"
	StateAttended  State = "ATTENDED"
	StateCancelled State = "CANCELLED"
	StateNoShow    State = "NO_SHOW"
)

func (s State) Valid() bool {
	switch s {
	case StateScheduled, StateConfirmed, StateAttended, StateCancelled, StateNoShow:
		return true
	}
	return false
}

// Terminal states accept no further transitions.
func (s State) Terminal() bool {
	switch s {
	case StateAttended, StateCancelled, StateNoShow:
		return true
	}
	return false
}
