// Package validate runs the ordered pre-creation checks on a candidate
// appointment. The chain is an immutable list of named validator funcs
// evaluated with early exit: the first failure aborts the run and later
// validators never execute.
package validate

import (
	"strings"
	"time"

	"github.com/mfigueredo/vetsched/internal/fault"
	"github.com/mfigueredo/vetsched/internal/model"
)

const maxReasonLen = 500

// Result is the tagged outcome of one validator.
type Result struct {
	OK     bool
	Field  string
	Reason string
}

func Pass() Result { return Result{OK: true} }

func Fail(field, reason string) Result {
	return Result{Field: field, Reason: reason}
}

// Func checks one aspect of a candidate appointment. now is passed in so
// time-sensitive checks stay deterministic under test.
type Func func(now time.Time, appt *model.Appointment) Result

type Validator struct {
	Name  string
	Check Func
}

type Chain struct {
	validators []Validator
}

func NewChain(vs ...Validator) Chain {
	return Chain{validators: vs}
}

// Default is the production chain: completeness first, then availability.
func Default() Chain {
	return NewChain(Completeness(), Availability())
}

// Run evaluates validators in order and returns the first failure as a
// validation error naming the offending field.
func (c Chain) Run(now time.Time, appt *model.Appointment) error {
	for _, v := range c.validators {
		if res := v.Check(now, appt); !res.OK {
			return fault.Validation(res.Field, res.Reason)
		}
	}
	return nil
}

// Completeness requires patient, practitioner, service, start time and a
// non-blank bounded reason.
func Completeness() Validator {
	return Validator{
		Name: "completeness",
		Check: func(_ time.Time, appt *model.Appointment) Result {
			switch {
			case appt == nil:
				return Fail("appointment", "missing appointment")
			case appt.PatientID == "":
				return Fail("patient", "patient is required")
			case appt.PractitionerID == "":
				return Fail("practitioner", "practitioner is required")
			case appt.ServiceID == "":
				return Fail("service", "service is required")
			case appt.StartsAt.IsZero():
				return Fail("start_time", "date and time are required")
			case strings.TrimSpace(appt.Reason) == "":
				return Fail("reason", "reason is required")
			case len(appt.Reason) > maxReasonLen:
				return Fail("reason", "reason is too long")
			}
			return Pass()
		},
	}
}

// Availability rejects appointments scheduled in the past unless the
// emergency flag is set. It does not check for conflicting bookings against
// the practitioner's schedule.
func Availability() Validator {
	return Validator{
		Name: "availability",
		Check: func(now time.Time, appt *model.Appointment) Result {
			if appt.StartsAt.Before(now) && !appt.Emergency {
				return Fail("start_time", "appointment time is in the past")
			}
			return Pass()
		},
	}
}
