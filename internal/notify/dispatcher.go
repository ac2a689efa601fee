package notify

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mfigueredo/vetsched/internal/event"
	"github.com/mfigueredo/vetsched/internal/fault"
	"github.com/mfigueredo/vetsched/internal/model"
	"github.com/mfigueredo/vetsched/internal/storage"
)

// Dispatcher reacts to lifecycle events by composing a message for the
// patient's owner and queueing it for a background send. The originating
// state change never waits on the network: OnEvent only enqueues, and the
// Run worker drains the queue. Send failures are logged, never propagated.
type Dispatcher struct {
	appts    storage.AppointmentRepo
	patients storage.PatientRepo
	channel  Channel
	logger   *slog.Logger
	queue    chan Message
}

func NewDispatcher(appts storage.AppointmentRepo, patients storage.PatientRepo, channel Channel, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		appts:    appts,
		patients: patients,
		channel:  channel,
		logger:   logger,
		queue:    make(chan Message, 64),
	}
}

// OnEvent composes the outbound message and enqueues it. A full queue drops
// the message rather than blocking the caller.
func (d *Dispatcher) OnEvent(ctx context.Context, evt event.Lifecycle) error {
	if !d.channel.Available() {
		return fault.Delivery(d.channel.Name(), fmt.Errorf("channel unavailable"))
	}

	appt, err := d.appts.Get(ctx, evt.AppointmentID)
	if err != nil {
		return err
	}
	patient, err := d.patients.Get(ctx, appt.PatientID)
	if err != nil {
		return err
	}

	recipient := patient.OwnerEmail
	if recipient == "" {
		recipient = patient.OwnerPhone
	}
	if recipient == "" {
		return fault.Delivery(d.channel.Name(), fmt.Errorf("patient %s has no owner contact", patient.ID))
	}

	subject, body := compose(evt, appt, patient)
	msg := d.channel.CreateMessage(recipient, subject, body)

	select {
	case d.queue <- msg:
		return nil
	default:
		return fault.Delivery(d.channel.Name(), fmt.Errorf("send queue full"))
	}
}

// Run drains the send queue until the context is cancelled.
func (d *Dispatcher) Run(ctx context.Context) {
	sender := d.channel.CreateSender()
	for {
		select {
		case <-ctx.Done():
			return
		case msg := <-d.queue:
			if err := sender.Send(ctx, msg); err != nil {
				d.logger.Error("notification send failed",
					"channel", d.channel.Name(),
					"recipient", msg.Recipient,
					"err", err)
			}
		}
	}
}

// Pending reports queued, not yet sent messages.
func (d *Dispatcher) Pending() int {
	return len(d.queue)
}

func compose(evt event.Lifecycle, appt *model.Appointment, patient *model.Patient) (subject, body string) {
	when := appt.StartsAt.Format("Mon 2 Jan 15:04")
	switch evt.Type {
	case event.TypeCreated:
		return "Appointment scheduled",
			fmt.Sprintf("Hi %s, an appointment for %s has been scheduled for %s.", patient.OwnerName, patient.Name, when)
	case event.TypeCancelled:
		reason := evt.Reason
		if reason == "" {
			reason = appt.CancelReason
		}
		return "Appointment cancelled",
			fmt.Sprintf("Hi %s, the appointment for %s on %s was cancelled. Reason: %s.", patient.OwnerName, patient.Name, when, reason)
	case event.TypeStateChanged:
		if evt.NewState == model.StateConfirmed {
			return "Appointment confirmed",
				fmt.Sprintf("Hi %s, the appointment for %s on %s is confirmed. See you then!", patient.OwnerName, patient.Name, when)
		}
		return "Appointment update",
			fmt.Sprintf("Hi %s, the appointment for %s on %s is now %s.", patient.OwnerName, patient.Name, when, evt.NewState)
	default:
		return "Appointment update",
			fmt.Sprintf("Hi %s, there is an update on the appointment for %s (%s).", patient.OwnerName, patient.Name, evt.At.Format(time.RFC3339))
	}
}
