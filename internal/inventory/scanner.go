package inventory

import (
	"context"
	"log/slog"
	"time"

	"github.com/mfigueredo/vetsched/internal/notify"
)

// Locker serializes scans across replicas. Nil means single-instance.
type Locker interface {
	TryAcquire(ctx context.Context) (bool, error)
}

// Scanner runs the periodic inventory check on its own timer, independent of
// the lifecycle event flow. A stale read against a concurrent stock update is
// accepted; the next tick sees the new quantity.
type Scanner struct {
	monitor   *Monitor
	channel   notify.Channel
	recipient string
	locker    Locker
	logger    *slog.Logger
	interval  time.Duration
}

type ScannerConfig struct {
	// Recipient receives stock alerts (typically the clinic manager).
	Recipient string
	Interval  time.Duration
	Locker    Locker
}

func NewScanner(monitor *Monitor, channel notify.Channel, logger *slog.Logger, cfg ScannerConfig) *Scanner {
	if cfg.Interval <= 0 {
		cfg.Interval = time.Hour
	}
	return &Scanner{
		monitor:   monitor,
		channel:   channel,
		recipient: cfg.Recipient,
		locker:    cfg.Locker,
		logger:    logger,
		interval:  cfg.Interval,
	}
}

func (s *Scanner) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.ScanOnce(ctx); err != nil {
				s.logger.Error("inventory scan failed", "err", err)
			}
		}
	}
}

// ScanOnce performs one scan and sends one alert per non-ok item. Alert
// delivery is best-effort: a failed send is logged and the scan continues.
func (s *Scanner) ScanOnce(ctx context.Context) error {
	if s.locker != nil {
		ok, err := s.locker.TryAcquire(ctx)
		if err != nil {
			return err
		}
		if !ok {
			s.logger.Debug("inventory scan held by another instance")
			return nil
		}
	}

	alerts, err := s.monitor.CheckAll(ctx)
	if err != nil {
		return err
	}
	if len(alerts) == 0 {
		return nil
	}

	sender := s.channel.CreateSender()
	for _, a := range alerts {
		msg := alertMessage(s.channel, s.recipient, a)
		if err := sender.Send(ctx, msg); err != nil {
			s.logger.Error("stock alert send failed",
				"channel", s.channel.Name(),
				"item", a.Item.Name,
				"level", string(a.Level),
				"err", err)
			continue
		}
		s.logger.Info("stock alert sent",
			"item", a.Item.Name,
			"level", string(a.Level),
			"quantity", a.Item.Quantity)
	}
	return nil
}
