// Package inventory watches consumable stock levels: an event hook on
// attended appointments and an independent periodic scan that alerts on low,
// critical and depleted items.
package inventory

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mfigueredo/vetsched/internal/event"
	"github.com/mfigueredo/vetsched/internal/model"
	"github.com/mfigueredo/vetsched/internal/notify"
	"github.com/mfigueredo/vetsched/internal/storage"
)

// Level classifies a stock quantity against its minimum threshold.
type Level string

const (
	LevelOK       Level = "ok"
	LevelLow      Level = "low"
	LevelCritical Level = "critical"
	LevelDepleted Level = "depleted"
)

// Classify bands quantity q against minimum m:
//
//	q == 0       -> depleted
//	0 < q <= m/2 -> critical
//	m/2 < q <= m -> low
//	q > m        -> ok
//
// The comparison doubles q instead of halving m so odd thresholds band
// exactly.
func Classify(qty, min int) Level {
	switch {
	case qty <= 0:
		return LevelDepleted
	case 2*qty <= min:
		return LevelCritical
	case qty <= min:
		return LevelLow
	default:
		return LevelOK
	}
}

// Monitor is the lifecycle observer side of stock watching.
type Monitor struct {
	items  storage.InventoryRepo
	logger *slog.Logger
}

func NewMonitor(items storage.InventoryRepo, logger *slog.Logger) *Monitor {
	return &Monitor{items: items, logger: logger}
}

// OnEvent is invoked for every lifecycle event. Recording consumable usage on
// transition into ATTENDED is intentionally not implemented: no stock
// decrement happens automatically.
func (m *Monitor) OnEvent(_ context.Context, evt event.Lifecycle) error {
	if evt.Type == event.TypeStateChanged && evt.NewState == model.StateAttended {
		m.logger.Debug("appointment attended, consumable usage not recorded",
			"appointment_id", evt.AppointmentID)
	}
	return nil
}

// Alert describes one non-ok inventory item found by a scan.
type Alert struct {
	Item  model.InventoryItem
	Level Level
}

// CheckAll reads the whole inventory and returns one alert per item at or
// below its threshold.
func (m *Monitor) CheckAll(ctx context.Context) ([]Alert, error) {
	items, err := m.items.List(ctx)
	if err != nil {
		return nil, err
	}
	var alerts []Alert
	for _, item := range items {
		if level := Classify(item.Quantity, item.MinQuantity); level != LevelOK {
			alerts = append(alerts, Alert{Item: *item, Level: level})
		}
	}
	return alerts, nil
}

func alertMessage(ch notify.Channel, recipient string, a Alert) notify.Message {
	subject := fmt.Sprintf("Stock %s: %s", a.Level, a.Item.Name)
	body := fmt.Sprintf("Inventory item %q is %s: %d left (minimum %d). Restock needed.",
		a.Item.Name, a.Level, a.Item.Quantity, a.Item.MinQuantity)
	return ch.CreateMessage(recipient, subject, body)
}
