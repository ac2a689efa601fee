package command

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mfigueredo/vetsched/internal/fault"
	"github.com/mfigueredo/vetsched/internal/model"
	"github.com/mfigueredo/vetsched/internal/storage/memstore"
)

var now = time.Date(2026, 3, 12, 10, 0, 0, 0, time.UTC)

func clock() time.Time { return now }

func newAppt() *model.Appointment {
	return model.NewAppointment("pat-1", "doc-1", "svc-1", now.Add(24*time.Hour), 30, "checkup", now)
}

func TestCreateAppointment_ExecuteThenUndo(t *testing.T) {
	ctx := context.Background()
	store := memstore.NewAppointments()

	cmd := NewCreateAppointment(store, newAppt())
	if err := cmd.Execute(ctx); err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	id := cmd.CreatedID()
	if id == "" {
		t.Fatalf("no identity recorded")
	}
	if _, err := store.Get(ctx, id); err != nil {
		t.Fatalf("created appointment not persisted: %v", err)
	}

	if err := cmd.Undo(ctx); err != nil {
		t.Fatalf("undo failed: %v", err)
	}
	if _, err := store.Get(ctx, id); !fault.IsNotFound(err) {
		t.Fatalf("expected appointment deleted, got %v", err)
	}

	if err := cmd.Undo(ctx); !fault.IsPrecondition(err) {
		t.Fatalf("expected precondition error on second undo, got %v", err)
	}
}

func TestCreateAppointment_UndoBeforeExecute(t *testing.T) {
	cmd := NewCreateAppointment(memstore.NewAppointments(), newAppt())
	if err := cmd.Undo(context.Background()); !fault.IsPrecondition(err) {
		t.Fatalf("expected precondition error, got %v", err)
	}
}

func TestCreateAppointment_NilAppointment(t *testing.T) {
	store := memstore.NewAppointments()
	cmd := NewCreateAppointment(store, nil)
	if err := cmd.Execute(context.Background()); !fault.IsPrecondition(err) {
		t.Fatalf("expected precondition error, got %v", err)
	}
	if store.Len() != 0 {
		t.Fatalf("failed execute must have no side effect")
	}
}

func TestCancelAppointment_ExecuteAndUndo(t *testing.T) {
	ctx := context.Background()
	store := memstore.NewAppointments()
	id, err := store.Create(ctx, newAppt())
	if err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	cmd := NewCancelAppointment(store, id, "owner sick", "reception").WithClock(clock)
	if err := cmd.Execute(ctx); err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	got, err := store.Get(ctx, id)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.State != model.StateCancelled || got.CancelReason != "owner sick" {
		t.Fatalf("cancel not applied: %s %q", got.State, got.CancelReason)
	}

	if err := cmd.Undo(ctx); err != nil {
		t.Fatalf("undo failed: %v", err)
	}
	got, err = store.Get(ctx, id)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.State != model.StateScheduled || got.CancelledAt != nil || got.CancelReason != "" {
		t.Fatalf("undo did not restore pre-cancel state: %+v", got)
	}
}

func TestCancelAppointment_MissingTarget(t *testing.T) {
	cmd := NewCancelAppointment(memstore.NewAppointments(), "nope", "r", "a")
	if err := cmd.Execute(context.Background()); !fault.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestUpdateStock_ExecuteAndUndo(t *testing.T) {
	ctx := context.Background()
	store := memstore.NewInventory()
	item := &model.InventoryItem{Name: "gauze", Quantity: 40, MinQuantity: 10}
	if err := store.Save(ctx, item); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	cmd := NewUpdateStock(store, item.ID, 15).WithClock(clock)
	if err := cmd.Execute(ctx); err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	got, _ := store.Get(ctx, item.ID)
	if got.Quantity != 15 {
		t.Fatalf("expected quantity 15, got %d", got.Quantity)
	}

	if err := cmd.Undo(ctx); err != nil {
		t.Fatalf("undo failed: %v", err)
	}
	got, _ = store.Get(ctx, item.ID)
	if got.Quantity != 40 {
		t.Fatalf("expected quantity restored to 40, got %d", got.Quantity)
	}

	if err := cmd.Undo(ctx); !fault.IsPrecondition(err) {
		t.Fatalf("expected precondition error, got %v", err)
	}
}

func TestHistory_LIFOAcrossCommandTypes(t *testing.T) {
	ctx := context.Background()
	appts := memstore.NewAppointments()
	inv := memstore.NewInventory()
	item := &model.InventoryItem{Name: "vaccine", Quantity: 20, MinQuantity: 5}
	if err := inv.Save(ctx, item); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	hist := NewHistory()

	create := NewCreateAppointment(appts, newAppt())
	if err := hist.Execute(ctx, create); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := hist.Execute(ctx, NewUpdateStock(inv, item.ID, 7).WithClock(clock)); err != nil {
		t.Fatalf("stock update failed: %v", err)
	}
	if hist.Len() != 2 {
		t.Fatalf("expected history size 2, got %d", hist.Len())
	}

	// LIFO: the stock update reverses first.
	if err := hist.UndoLast(ctx); err != nil {
		t.Fatalf("undo failed: %v", err)
	}
	got, _ := inv.Get(ctx, item.ID)
	if got.Quantity != 20 {
		t.Fatalf("expected stock undone first, quantity %d", got.Quantity)
	}
	if _, err := appts.Get(ctx, create.CreatedID()); err != nil {
		t.Fatalf("appointment should still exist: %v", err)
	}

	if err := hist.UndoLast(ctx); err != nil {
		t.Fatalf("undo failed: %v", err)
	}
	if appts.Len() != 0 {
		t.Fatalf("expected appointment deleted on second undo")
	}
	if hist.Len() != 0 {
		t.Fatalf("expected empty history, got %d", hist.Len())
	}
}

func TestHistory_EmptyUndoIsNoop(t *testing.T) {
	if err := NewHistory().UndoLast(context.Background()); err != nil {
		t.Fatalf("empty undo must be a no-op, got %v", err)
	}
}

type failingUndo struct {
	fail bool
}

func (f *failingUndo) Execute(context.Context) error { return nil }

func (f *failingUndo) Undo(context.Context) error {
	if f.fail {
		return errors.New("undo exploded")
	}
	return nil
}

func (f *failingUndo) Describe() string { return "failing undo" }

func TestHistory_FailedUndoKeepsEntry(t *testing.T) {
	ctx := context.Background()
	hist := NewHistory()
	cmd := &failingUndo{fail: true}
	if err := hist.Execute(ctx, cmd); err != nil {
		t.Fatalf("execute failed: %v", err)
	}

	if err := hist.UndoLast(ctx); err == nil {
		t.Fatalf("expected undo failure")
	}
	if hist.Len() != 1 {
		t.Fatalf("failed undo must keep the entry, history size %d", hist.Len())
	}

	cmd.fail = false
	if err := hist.UndoLast(ctx); err != nil {
		t.Fatalf("retry failed: %v", err)
	}
	if hist.Len() != 0 {
		t.Fatalf("expected entry popped after successful retry")
	}
}
