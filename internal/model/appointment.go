package model

import (
	"time"

	"github.com/mfigueredo/vetsched/internal/fault"
)

// Appointment is the scheduled unit of veterinary service for one patient
// with one practitioner. All lifecycle mutations go through the guarded
// methods below; callers pass the current time explicitly so the state
// machine stays deterministic under test.
type Appointment struct {
	ID             string
	PatientID      string
	PractitionerID string
	ServiceID      string

	StartsAt       time.Time
	DurationMin    int
	EstimatedEndAt time.Time

	State     State
	Reason    string
	Emergency bool
	HomeVisit bool

	PriceCents int64
	Paid       bool

	ConfirmedAt    *time.Time
	AttentionStart *time.Time
	AttentionEnd   *time.Time
	CancelledAt    *time.Time

	// RealDurationMin is only set once both attention timestamps exist.
	RealDurationMin *int

	CancelReason string
	CancelledBy  string

	Rating        *int
	RatingComment string

	CreatedAt time.Time
	UpdatedAt time.Time
}

func NewAppointment(patientID, practitionerID, serviceID string, startsAt time.Time, durationMin int, reason string, now time.Time) *Appointment {
	a := &Appointment{
		PatientID:      patientID,
		PractitionerID: practitionerID,
		ServiceID:      serviceID,
		State:          StateScheduled,
		Reason:         reason,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	a.Reschedule(startsAt, durationMin, now)
	return a
}

// Reschedule moves the appointment and recomputes the estimated end time.
// Estimated end is always start + duration.
func (a *Appointment) Reschedule(startsAt time.Time, durationMin int, now time.Time) {
	a.StartsAt = startsAt
	a.DurationMin = durationMin
	a.EstimatedEndAt = startsAt.Add(time.Duration(durationMin) * time.Minute)
	a.UpdatedAt = now
}

// Confirm is legal only from SCHEDULED.
func (a *Appointment) Confirm(now time.Time) error {
	if a.State != StateScheduled {
		return fault.StateConflict("cannot confirm appointment in state %s", a.State)
	}
	a.State = StateConfirmed
	a.ConfirmedAt = &now
	a.UpdatedAt = now
	return nil
}

// StartAttention records when the practitioner began attending. It does not
// change the lifecycle state.
func (a *Appointment) StartAttention(now time.Time) {
	a.AttentionStart = &now
	a.UpdatedAt = now
}

// FinishAttention records the attention end, computes the real duration and
// marks the appointment attended.
func (a *Appointment) FinishAttention(now time.Time) error {
	return a.MarkAttended(now)
}

// MarkAttended is legal from SCHEDULED or CONFIRMED. Calling it without a
// prior StartAttention is allowed and yields a zero real duration.
func (a *Appointment) MarkAttended(now time.Time) error {
	if a.State != StateScheduled && a.State != StateConfirmed {
		return fault.StateConflict("cannot mark appointment attended in state %s", a.State)
	}
	if a.AttentionStart == nil {
		a.AttentionStart = &now
	}
	a.AttentionEnd = &now
	a.recomputeRealDuration()
	a.State = StateAttended
	a.UpdatedAt = now
	return nil
}

// Cancel is illegal once the appointment was attended or already cancelled.
func (a *Appointment) Cancel(now time.Time, reason, actor string) error {
	if a.State == StateAttended {
		return fault.StateConflict("cannot cancel an attended appointment")
	}
	if a.State == StateCancelled {
		return fault.StateConflict("appointment is already cancelled")
	}
	a.State = StateCancelled
	a.CancelledAt = &now
	a.CancelReason = reason
	a.CancelledBy = actor
	a.UpdatedAt = now
	return nil
}

func (a *Appointment) MarkNoShow(now time.Time) error {
	if a.State != StateScheduled && a.State != StateConfirmed {
		return fault.StateConflict("cannot mark appointment no-show in state %s", a.State)
	}
	a.State = StateNoShow
	a.UpdatedAt = now
	return nil
}

// MarkPaid is independent of the lifecycle state.
func (a *Appointment) MarkPaid(now time.Time) {
	a.Paid = true
	a.UpdatedAt = now
}

// Rate is legal only after attendance; score must be in [1,5].
func (a *Appointment) Rate(score int, comment string, now time.Time) error {
	if score < 1 || score > 5 {
		return fault.Validation("rating", "score must be between 1 and 5")
	}
	if a.State != StateAttended {
		return fault.StateConflict("cannot rate appointment in state %s", a.State)
	}
	a.Rating = &score
	a.RatingComment = comment
	a.UpdatedAt = now
	return nil
}

func (a *Appointment) recomputeRealDuration() {
	if a.AttentionStart == nil || a.AttentionEnd == nil {
		a.RealDurationMin = nil
		return
	}
	min := int(a.AttentionEnd.Sub(*a.AttentionStart) / time.Minute)
	if min < 0 {
		min = 0
	}
	a.RealDurationMin = &min
}

func (a *Appointment) IsPending() bool {
	return a.State == StateScheduled || a.State == StateConfirmed
}

func (a *Appointment) CanCancel() bool {
	return a.State != StateAttended && a.State != StateCancelled
}

func (a *Appointment) CanReschedule() bool {
	return a.State == StateScheduled || a.State == StateConfirmed
}

func (a *Appointment) IsToday(now time.Time) bool {
	y1, m1, d1 := a.StartsAt.Date()
	y2, m2, d2 := now.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// HasPassed reports whether the scheduled start is in the past.
func (a *Appointment) HasPassed(now time.Time) bool {
	return a.StartsAt.Before(now)
}
