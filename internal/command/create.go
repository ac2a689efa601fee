package command

import (
	"context"
	"fmt"

	"github.com/mfigueredo/vetsched/internal/fault"
	"github.com/mfigueredo/vetsched/internal/model"
)

// AppointmentCreator is the slice of persistence the create command needs.
// The delete side is what makes the command reversible.
type AppointmentCreator interface {
	Create(ctx context.Context, appt *model.Appointment) (string, error)
	Delete(ctx context.Context, id string) error
}

// CreateAppointment persists a new appointment on execute and deletes the
// assigned identity on undo.
type CreateAppointment struct {
	store     AppointmentCreator
	appt      *model.Appointment
	createdID string
	executed  bool
}

func NewCreateAppointment(store AppointmentCreator, appt *model.Appointment) *CreateAppointment {
	return &CreateAppointment{store: store, appt: appt}
}

func (c *CreateAppointment) Execute(ctx context.Context) error {
	if c.appt == nil {
		return fault.Precondition("create appointment: no appointment supplied")
	}
	id, err := c.store.Create(ctx, c.appt)
	if err != nil {
		return err
	}
	c.createdID = id
	c.executed = true
	return nil
}

func (c *CreateAppointment) Undo(ctx context.Context) error {
	if !c.executed {
		return fault.Precondition("create appointment: nothing to undo")
	}
	if err := c.store.Delete(ctx, c.createdID); err != nil {
		return err
	}
	c.executed = false
	c.createdID = ""
	return nil
}

func (c *CreateAppointment) Describe() string {
	if c.createdID != "" {
		return fmt.Sprintf("create appointment %s", c.createdID)
	}
	return "create appointment"
}

// CreatedID returns the identity assigned by the last successful execute.
func (c *CreateAppointment) CreatedID() string {
	return c.createdID
}
