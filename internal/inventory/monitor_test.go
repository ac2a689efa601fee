package inventory

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/mfigueredo/vetsched/internal/event"
	"github.com/mfigueredo/vetsched/internal/model"
	"github.com/mfigueredo/vetsched/internal/notify"
	"github.com/mfigueredo/vetsched/internal/storage/memstore"
)

func TestClassify_Bands(t *testing.T) {
	cases := []struct {
		qty, min int
		want     Level
	}{
		{0, 10, LevelDepleted},
		{5, 10, LevelCritical},
		{10, 10, LevelLow},
		{11, 10, LevelOK},
		{6, 10, LevelLow},
		{1, 10, LevelCritical},
		// Odd threshold: 2 <= 5/2 exactly, 3 is above it.
		{2, 5, LevelCritical},
		{3, 5, LevelLow},
		{0, 0, LevelDepleted},
		{1, 0, LevelOK},
	}
	for _, tc := range cases {
		if got := Classify(tc.qty, tc.min); got != tc.want {
			t.Fatalf("Classify(%d, %d) = %s, want %s", tc.qty, tc.min, got, tc.want)
		}
	}
}

type captureChannel struct {
	mu       sync.Mutex
	sent     []notify.Message
	failWith error
}

func (c *captureChannel) CreateMessage(recipient, subject, body string) notify.Message {
	return notify.Message{Recipient: recipient, Subject: subject, Body: body}
}

func (c *captureChannel) CreateSender() notify.Sender { return c }

func (c *captureChannel) Send(_ context.Context, msg notify.Message) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failWith != nil {
		return c.failWith
	}
	c.sent = append(c.sent, msg)
	return nil
}

func (c *captureChannel) Name() string { return "capture" }

func (c *captureChannel) Available() bool { return true }

func (c *captureChannel) CostPerMessage() int64 { return 0 }

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func seedInventory(t *testing.T) *memstore.Inventory {
	t.Helper()
	store := memstore.NewInventory()
	ctx := context.Background()
	items := []*model.InventoryItem{
		{Name: "syringes", Quantity: 0, MinQuantity: 10},
		{Name: "gauze", Quantity: 5, MinQuantity: 10},
		{Name: "rabies vaccine", Quantity: 10, MinQuantity: 10},
		{Name: "antiseptic", Quantity: 50, MinQuantity: 10},
	}
	for _, item := range items {
		if err := store.Save(ctx, item); err != nil {
			t.Fatalf("seed failed: %v", err)
		}
	}
	return store
}

func TestScanOnce_AlertsPerNonOKItem(t *testing.T) {
	channel := &captureChannel{}
	monitor := NewMonitor(seedInventory(t), discard())
	scanner := NewScanner(monitor, channel, discard(), ScannerConfig{Recipient: "manager@clinic.test"})

	if err := scanner.ScanOnce(context.Background()); err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	if len(channel.sent) != 3 {
		t.Fatalf("expected 3 alerts, got %d", len(channel.sent))
	}
	for _, msg := range channel.sent {
		if msg.Recipient != "manager@clinic.test" {
			t.Fatalf("alert sent to %q", msg.Recipient)
		}
	}
}

func TestScanOnce_SendFailureIsBestEffort(t *testing.T) {
	channel := &captureChannel{failWith: errors.New("smtp down")}
	monitor := NewMonitor(seedInventory(t), discard())
	scanner := NewScanner(monitor, channel, discard(), ScannerConfig{Recipient: "manager@clinic.test"})

	if err := scanner.ScanOnce(context.Background()); err != nil {
		t.Fatalf("send failures must not fail the scan: %v", err)
	}
}

type deniedLock struct{}

func (deniedLock) TryAcquire(context.Context) (bool, error) { return false, nil }

func TestScanOnce_SkipsWhenLockHeld(t *testing.T) {
	channel := &captureChannel{}
	monitor := NewMonitor(seedInventory(t), discard())
	scanner := NewScanner(monitor, channel, discard(), ScannerConfig{
		Recipient: "manager@clinic.test",
		Locker:    deniedLock{},
	})

	if err := scanner.ScanOnce(context.Background()); err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	if len(channel.sent) != 0 {
		t.Fatalf("scan ran despite held lock")
	}
}

func TestMonitor_AttendedHookHasNoEffect(t *testing.T) {
	store := seedInventory(t)
	monitor := NewMonitor(store, discard())
	ctx := context.Background()

	before, _ := store.List(ctx)
	err := monitor.OnEvent(ctx, event.Lifecycle{
		AppointmentID: "appt-1",
		Type:          event.TypeStateChanged,
		NewState:      model.StateAttended,
	})
	if err != nil {
		t.Fatalf("hook failed: %v", err)
	}
	after, _ := store.List(ctx)
	if len(before) != len(after) {
		t.Fatalf("attended hook must not touch inventory")
	}
	for i := range after {
		for j := range before {
			if before[j].ID == after[i].ID && before[j].Quantity != after[i].Quantity {
				t.Fatalf("attended hook decremented stock for %s", after[i].Name)
			}
		}
	}
}
