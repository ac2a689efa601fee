package mediator

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/mfigueredo/vetsched/internal/event"
	"github.com/mfigueredo/vetsched/internal/fault"
	"github.com/mfigueredo/vetsched/internal/model"
	"github.com/mfigueredo/vetsched/internal/storage/memstore"
)

var now = time.Date(2026, 3, 12, 10, 0, 0, 0, time.UTC)

type recordingObserver struct {
	name   string
	order  *[]string
	events []event.Lifecycle
	err    error
	panics bool
}

func (o *recordingObserver) OnEvent(_ context.Context, evt event.Lifecycle) error {
	*o.order = append(*o.order, o.name)
	o.events = append(o.events, evt)
	if o.panics {
		panic("observer blew up")
	}
	return o.err
}

type fixture struct {
	med   *Mediator
	appts *memstore.Appointments
}

func setup(t *testing.T) *fixture {
	t.Helper()
	appts := memstore.NewAppointments()
	practs := memstore.NewPractitioners()
	svcs := memstore.NewServices()
	ctx := context.Background()
	if err := practs.Save(ctx, &model.Practitioner{ID: "doc-1", Name: "Dr. Vega", Active: true}); err != nil {
		t.Fatalf("setup failed: %v", err)
	}
	if err := practs.Save(ctx, &model.Practitioner{ID: "doc-2", Name: "Dr. Roa", Active: false}); err != nil {
		t.Fatalf("setup failed: %v", err)
	}
	if err := svcs.Save(ctx, &model.Service{ID: "svc-1", Name: "consultation", Active: true}); err != nil {
		t.Fatalf("setup failed: %v", err)
	}
	if err := svcs.Save(ctx, &model.Service{ID: "svc-2", Name: "grooming", Active: false}); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	med := New(appts, practs, svcs, logger).WithClock(func() time.Time { return now })
	return &fixture{med: med, appts: appts}
}

func newAppt(practitionerID, serviceID string) *model.Appointment {
	return model.NewAppointment("pat-1", practitionerID, serviceID, now.Add(24*time.Hour), 30, "checkup", now)
}

func TestCreateAppointment_EmitsCreated(t *testing.T) {
	f := setup(t)
	var order []string
	obs := &recordingObserver{name: "a", order: &order}
	f.med.Register(obs)

	id, err := f.med.CreateAppointment(context.Background(), newAppt("doc-1", "svc-1"))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if id == "" {
		t.Fatalf("no id assigned")
	}
	if len(obs.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(obs.events))
	}
	evt := obs.events[0]
	if evt.Type != event.TypeCreated || evt.AppointmentID != id || evt.NewState != model.StateScheduled {
		t.Fatalf("unexpected event: %+v", evt)
	}
}

func TestCreateAppointment_InactiveRefsAbortBeforeMutation(t *testing.T) {
	f := setup(t)
	var order []string
	obs := &recordingObserver{name: "a", order: &order}
	f.med.Register(obs)
	ctx := context.Background()

	if _, err := f.med.CreateAppointment(ctx, newAppt("doc-2", "svc-1")); !fault.IsStateConflict(err) {
		t.Fatalf("expected state conflict for inactive practitioner, got %v", err)
	}
	if _, err := f.med.CreateAppointment(ctx, newAppt("doc-1", "svc-2")); !fault.IsStateConflict(err) {
		t.Fatalf("expected state conflict for inactive service, got %v", err)
	}
	if f.appts.Len() != 0 {
		t.Fatalf("aborted create must not persist anything")
	}
	if len(obs.events) != 0 {
		t.Fatalf("aborted create must not notify observers")
	}
}

func TestConfirmAppointment_EmitsStateChanged(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	id, err := f.med.CreateAppointment(ctx, newAppt("doc-1", "svc-1"))
	if err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	var order []string
	obs := &recordingObserver{name: "a", order: &order}
	f.med.Register(obs)

	if err := f.med.ConfirmAppointment(ctx, id); err != nil {
		t.Fatalf("confirm failed: %v", err)
	}
	got, _ := f.appts.Get(ctx, id)
	if got.State != model.StateConfirmed || got.ConfirmedAt == nil {
		t.Fatalf("confirm not persisted: %+v", got)
	}
	evt := obs.events[0]
	if evt.Type != event.TypeStateChanged || evt.PrevState != model.StateScheduled || evt.NewState != model.StateConfirmed {
		t.Fatalf("unexpected event: %+v", evt)
	}

	if err := f.med.ConfirmAppointment(ctx, id); !fault.IsStateConflict(err) {
		t.Fatalf("expected state conflict on second confirm, got %v", err)
	}
}

func TestCancelAppointment_SystemActor(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	id, err := f.med.CreateAppointment(ctx, newAppt("doc-1", "svc-1"))
	if err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	var order []string
	obs := &recordingObserver{name: "a", order: &order}
	f.med.Register(obs)

	if err := f.med.CancelAppointment(ctx, id, "practitioner unavailable"); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	got, _ := f.appts.Get(ctx, id)
	if got.State != model.StateCancelled || got.CancelledBy != "system" {
		t.Fatalf("cancel not persisted with system actor: %+v", got)
	}
	evt := obs.events[0]
	if evt.Type != event.TypeCancelled || evt.Reason != "practitioner unavailable" {
		t.Fatalf("unexpected event: %+v", evt)
	}
}

func TestCancelAppointment_MissingTarget(t *testing.T) {
	f := setup(t)
	if err := f.med.CancelAppointment(context.Background(), "nope", "r"); !fault.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestEmit_RegistrationOrderAndIsolation(t *testing.T) {
	f := setup(t)
	var order []string
	first := &recordingObserver{name: "first", order: &order, err: errors.New("boom")}
	second := &recordingObserver{name: "second", order: &order, panics: true}
	third := &recordingObserver{name: "third", order: &order}
	f.med.Register(first)
	f.med.Register(second)
	f.med.Register(third)

	id, err := f.med.CreateAppointment(context.Background(), newAppt("doc-1", "svc-1"))
	if err != nil {
		t.Fatalf("create must commit despite observer failures: %v", err)
	}
	if id == "" {
		t.Fatalf("no id assigned")
	}
	if len(order) != 3 || order[0] != "first" || order[1] != "second" || order[2] != "third" {
		t.Fatalf("expected all observers in registration order, got %v", order)
	}
}

func TestNotifyChange_RedispatchesPersistedChange(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	id, err := f.med.CreateAppointment(ctx, newAppt("doc-1", "svc-1"))
	if err != nil {
		t.Fatalf("setup failed: %v", err)
	}
	appt, _ := f.appts.Get(ctx, id)
	if err := appt.Cancel(now, "walked in instead", "reception"); err != nil {
		t.Fatalf("setup failed: %v", err)
	}
	if err := f.appts.Update(ctx, appt); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	var order []string
	obs := &recordingObserver{name: "a", order: &order}
	f.med.Register(obs)

	if err := f.med.NotifyChange(ctx, id, "CANCELLED"); err != nil {
		t.Fatalf("notify change failed: %v", err)
	}
	evt := obs.events[0]
	if evt.Type != event.TypeCancelled || evt.Reason != "walked in instead" || evt.NewState != model.StateCancelled {
		t.Fatalf("unexpected event: %+v", evt)
	}

	if err := f.med.NotifyChange(ctx, id, "EXPLODED"); !fault.IsValidation(err) {
		t.Fatalf("expected validation error for unknown event name, got %v", err)
	}
}
