// Package scheduling is the entry point for appointment orchestration: it
// runs the validation chain, executes reversible commands against a
// per-session history, and routes persistence plus event fan-out through the
// mediator.
package scheduling

import (
	"context"
	"log/slog"
	"time"

	"github.com/mfigueredo/vetsched/internal/command"
	"github.com/mfigueredo/vetsched/internal/event"
	"github.com/mfigueredo/vetsched/internal/mediator"
	"github.com/mfigueredo/vetsched/internal/model"
	"github.com/mfigueredo/vetsched/internal/pricing"
	"github.com/mfigueredo/vetsched/internal/storage"
	"github.com/mfigueredo/vetsched/internal/validate"
)

type Service struct {
	chain     validate.Chain
	med       *mediator.Mediator
	appts     storage.AppointmentRepo
	services  storage.ServiceRepo
	inventory storage.InventoryRepo
	logger    *slog.Logger
	clock     func() time.Time
}

func NewService(chain validate.Chain, med *mediator.Mediator, appts storage.AppointmentRepo, services storage.ServiceRepo, inventory storage.InventoryRepo, logger *slog.Logger) *Service {
	return &Service{
		chain:     chain,
		med:       med,
		appts:     appts,
		services:  services,
		inventory: inventory,
		logger:    logger,
		clock:     time.Now,
	}
}

// WithClock overrides the time source, for tests.
func (s *Service) WithClock(clock func() time.Time) *Service {
	s.clock = clock
	return s
}

// NewSession returns a fresh undo history. One history per request or user
// session; histories are never shared process-wide.
func (s *Service) NewSession() *command.History {
	return command.NewHistory()
}

// mediatorStore lets the create command persist through the mediator (so the
// created event is emitted) while undo deletes directly from the repository.
type mediatorStore struct {
	med   *mediator.Mediator
	appts storage.AppointmentRepo
}

func (m mediatorStore) Create(ctx context.Context, appt *model.Appointment) (string, error) {
	return m.med.CreateAppointment(ctx, appt)
}

func (m mediatorStore) Delete(ctx context.Context, id string) error {
	return m.appts.Delete(ctx, id)
}

// Schedule validates the candidate appointment, prices it and creates it
// through an undoable command. Validation and the mediator's active-reference
// checks both run before any mutation.
func (s *Service) Schedule(ctx context.Context, hist *command.History, appt *model.Appointment) (string, error) {
	now := s.clock()

	if appt != nil && appt.ServiceID != "" {
		if svc, err := s.services.Get(ctx, appt.ServiceID); err == nil {
			if appt.DurationMin == 0 {
				appt.Reschedule(appt.StartsAt, svc.DurationMin, now)
			}
			if appt.PriceCents == 0 {
				appt.PriceCents = pricing.Quote(svc.BasePriceCents, pricing.Standard(appt.Emergency, appt.HomeVisit)...)
			}
		}
	}

	if err := s.chain.Run(now, appt); err != nil {
		return "", err
	}

	cmd := command.NewCreateAppointment(mediatorStore{med: s.med, appts: s.appts}, appt)
	if err := hist.Execute(ctx, cmd); err != nil {
		return "", err
	}
	return cmd.CreatedID(), nil
}

func (s *Service) Confirm(ctx context.Context, id string) error {
	return s.med.ConfirmAppointment(ctx, id)
}

// Cancel runs as an undoable command, then re-dispatches the cancelled event
// for the already persisted change. A failed re-dispatch never unwinds the
// cancellation.
func (s *Service) Cancel(ctx context.Context, hist *command.History, id, reason, actor string) error {
	cmd := command.NewCancelAppointment(s.appts, id, reason, actor).WithClock(s.clock)
	if err := hist.Execute(ctx, cmd); err != nil {
		return err
	}
	if err := s.med.NotifyChange(ctx, id, string(event.TypeCancelled)); err != nil {
		s.logger.Error("cancelled event dispatch failed", "appointment_id", id, "err", err)
	}
	return nil
}

func (s *Service) StartAttention(ctx context.Context, id string) error {
	appt, err := s.appts.Get(ctx, id)
	if err != nil {
		return err
	}
	appt.StartAttention(s.clock())
	return s.appts.Update(ctx, appt)
}

func (s *Service) FinishAttention(ctx context.Context, id string) error {
	appt, err := s.appts.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := appt.FinishAttention(s.clock()); err != nil {
		return err
	}
	if err := s.appts.Update(ctx, appt); err != nil {
		return err
	}
	if err := s.med.NotifyChange(ctx, id, string(event.TypeStateChanged)); err != nil {
		s.logger.Error("attended event dispatch failed", "appointment_id", id, "err", err)
	}
	return nil
}

func (s *Service) MarkNoShow(ctx context.Context, id string) error {
	appt, err := s.appts.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := appt.MarkNoShow(s.clock()); err != nil {
		return err
	}
	if err := s.appts.Update(ctx, appt); err != nil {
		return err
	}
	if err := s.med.NotifyChange(ctx, id, string(event.TypeStateChanged)); err != nil {
		s.logger.Error("no-show event dispatch failed", "appointment_id", id, "err", err)
	}
	return nil
}

func (s *Service) MarkPaid(ctx context.Context, id string) error {
	appt, err := s.appts.Get(ctx, id)
	if err != nil {
		return err
	}
	appt.MarkPaid(s.clock())
	return s.appts.Update(ctx, appt)
}

func (s *Service) Rate(ctx context.Context, id string, score int, comment string) error {
	appt, err := s.appts.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := appt.Rate(score, comment, s.clock()); err != nil {
		return err
	}
	return s.appts.Update(ctx, appt)
}

// AdjustStock sets an inventory quantity through an undoable command.
func (s *Service) AdjustStock(ctx context.Context, hist *command.History, itemID string, quantity int) error {
	cmd := command.NewUpdateStock(s.inventory, itemID, quantity).WithClock(s.clock)
	return hist.Execute(ctx, cmd)
}
