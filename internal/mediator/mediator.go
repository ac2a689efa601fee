// Package mediator couples appointment persistence to lifecycle event
// fan-out. It is the single place that both writes an appointment and tells
// the rest of the system about it.
package mediator

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/mfigueredo/vetsched/internal/event"
	"github.com/mfigueredo/vetsched/internal/fault"
	"github.com/mfigueredo/vetsched/internal/model"
	"github.com/mfigueredo/vetsched/internal/storage"
)

// Observer reacts to one lifecycle event. Errors are logged by the mediator
// and never abort the originating state change.
type Observer interface {
	OnEvent(ctx context.Context, evt event.Lifecycle) error
}

type Mediator struct {
	appts         storage.AppointmentRepo
	practitioners storage.PractitionerRepo
	services      storage.ServiceRepo
	observers     []Observer
	logger        *slog.Logger
	clock         func() time.Time
}

func New(appts storage.AppointmentRepo, practitioners storage.PractitionerRepo, services storage.ServiceRepo, logger *slog.Logger) *Mediator {
	return &Mediator{
		appts:         appts,
		practitioners: practitioners,
		services:      services,
		logger:        logger,
		clock:         time.Now,
	}
}

// WithClock overrides the time source, for tests.
func (m *Mediator) WithClock(clock func() time.Time) *Mediator {
	m.clock = clock
	return m
}

// Register appends an observer. Fan-out order is registration order.
func (m *Mediator) Register(obs Observer) {
	m.observers = append(m.observers, obs)
}

// CreateAppointment persists the appointment and emits a created event.
// Inactive practitioner or service aborts before any mutation.
func (m *Mediator) CreateAppointment(ctx context.Context, appt *model.Appointment) (string, error) {
	ctx, span := otel.Tracer("mediator").Start(ctx, "mediator.create_appointment")
	defer span.End()

	pract, err := m.practitioners.Get(ctx, appt.PractitionerID)
	if err != nil {
		return "", err
	}
	if !pract.Active {
		return "", fault.StateConflict("practitioner %s is inactive", pract.ID)
	}
	svc, err := m.services.Get(ctx, appt.ServiceID)
	if err != nil {
		return "", err
	}
	if !svc.Active {
		return "", fault.StateConflict("service %s is inactive", svc.ID)
	}

	id, err := m.appts.Create(ctx, appt)
	if err != nil {
		return "", err
	}
	span.SetAttributes(attribute.String("appointment.id", id))

	m.emit(ctx, event.Lifecycle{
		AppointmentID: id,
		Type:          event.TypeCreated,
		At:            m.clock(),
		NewState:      appt.State,
	})
	return id, nil
}

// ConfirmAppointment loads, confirms, persists and emits the state change.
func (m *Mediator) ConfirmAppointment(ctx context.Context, id string) error {
	ctx, span := otel.Tracer("mediator").Start(ctx, "mediator.confirm_appointment")
	defer span.End()

	appt, err := m.appts.Get(ctx, id)
	if err != nil {
		return err
	}
	prev := appt.State
	if err := appt.Confirm(m.clock()); err != nil {
		return err
	}
	if err := m.appts.Update(ctx, appt); err != nil {
		return err
	}

	m.emit(ctx, event.Lifecycle{
		AppointmentID: id,
		Type:          event.TypeStateChanged,
		At:            m.clock(),
		PrevState:     prev,
		NewState:      appt.State,
	})
	return nil
}

// CancelAppointment cancels on behalf of the system actor.
func (m *Mediator) CancelAppointment(ctx context.Context, id, reason string) error {
	ctx, span := otel.Tracer("mediator").Start(ctx, "mediator.cancel_appointment")
	defer span.End()

	appt, err := m.appts.Get(ctx, id)
	if err != nil {
		return err
	}
	prev := appt.State
	if err := appt.Cancel(m.clock(), reason, "system"); err != nil {
		return err
	}
	if err := m.appts.Update(ctx, appt); err != nil {
		return err
	}

	m.emit(ctx, event.Lifecycle{
		AppointmentID: id,
		Type:          event.TypeCancelled,
		At:            m.clock(),
		PrevState:     prev,
		NewState:      appt.State,
		Reason:        reason,
	})
	return nil
}

// NotifyChange re-dispatches an event for an already persisted change, by
// symbolic event name. Useful when the mutation happened outside the
// mediator (e.g. through a command) and observers still need to hear it.
func (m *Mediator) NotifyChange(ctx context.Context, id, eventName string) error {
	typ, ok := event.ParseType(eventName)
	if !ok {
		return fault.Validation("event", fmt.Sprintf("unknown event type %q", eventName))
	}
	appt, err := m.appts.Get(ctx, id)
	if err != nil {
		return err
	}

	evt := event.Lifecycle{
		AppointmentID: id,
		Type:          typ,
		At:            m.clock(),
		NewState:      appt.State,
	}
	if typ == event.TypeCancelled {
		evt.Reason = appt.CancelReason
	}
	m.emit(ctx, evt)
	return nil
}

// emit delivers the event to every observer in registration order. A failing
// or panicking observer is logged and isolated; the rest still run.
func (m *Mediator) emit(ctx context.Context, evt event.Lifecycle) {
	for _, obs := range m.observers {
		m.deliver(ctx, obs, evt)
	}
}

func (m *Mediator) deliver(ctx context.Context, obs Observer, evt event.Lifecycle) {
	defer func() {
		if r := recover(); r != nil {
			m.logger.Error("observer panicked",
				"event_type", string(evt.Type),
				"appointment_id", evt.AppointmentID,
				"panic", r)
		}
	}()
	if err := obs.OnEvent(ctx, evt); err != nil {
		m.logger.Error("observer failed",
			"event_type", string(evt.Type),
			"appointment_id", evt.AppointmentID,
			"err", err)
	}
}
