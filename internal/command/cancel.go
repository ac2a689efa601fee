package command

import (
	"context"
	"fmt"
	"time"

	"github.com/mfigueredo/vetsched/internal/fault"
	"github.com/mfigueredo/vetsched/internal/model"
)

// AppointmentStore is the slice of persistence the cancel command needs.
type AppointmentStore interface {
	Get(ctx context.Context, id string) (*model.Appointment, error)
	Update(ctx context.Context, appt *model.Appointment) error
}

type cancelSnapshot struct {
	state        model.State
	cancelledAt  *time.Time
	cancelReason string
	cancelledBy  string
}

// CancelAppointment cancels the target appointment on execute, capturing the
// pre-cancel state so undo can restore it.
type CancelAppointment struct {
	store  AppointmentStore
	id     string
	reason string
	actor  string
	clock  func() time.Time
	prev   *cancelSnapshot
}

func NewCancelAppointment(store AppointmentStore, id, reason, actor string) *CancelAppointment {
	return &CancelAppointment{
		store:  store,
		id:     id,
		reason: reason,
		actor:  actor,
		clock:  time.Now,
	}
}

// WithClock overrides the time source, for tests.
func (c *CancelAppointment) WithClock(clock func() time.Time) *CancelAppointment {
	c.clock = clock
	return c
}

func (c *CancelAppointment) Execute(ctx context.Context) error {
	appt, err := c.store.Get(ctx, c.id)
	if err != nil {
		return err
	}
	snap := cancelSnapshot{
		state:        appt.State,
		cancelledAt:  appt.CancelledAt,
		cancelReason: appt.CancelReason,
		cancelledBy:  appt.CancelledBy,
	}
	if err := appt.Cancel(c.clock(), c.reason, c.actor); err != nil {
		return err
	}
	if err := c.store.Update(ctx, appt); err != nil {
		return err
	}
	c.prev = &snap
	return nil
}

func (c *CancelAppointment) Undo(ctx context.Context) error {
	if c.prev == nil {
		return fault.Precondition("cancel appointment: nothing to undo")
	}
	appt, err := c.store.Get(ctx, c.id)
	if err != nil {
		return err
	}
	appt.State = c.prev.state
	appt.CancelledAt = c.prev.cancelledAt
	appt.CancelReason = c.prev.cancelReason
	appt.CancelledBy = c.prev.cancelledBy
	appt.UpdatedAt = c.clock()
	if err := c.store.Update(ctx, appt); err != nil {
		return err
	}
	c.prev = nil
	return nil
}

func (c *CancelAppointment) Describe() string {
	return fmt.Sprintf("cancel appointment %s", c.id)
}
