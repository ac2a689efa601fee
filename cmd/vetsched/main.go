package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/mfigueredo/vetsched/internal/inventory"
	"github.com/mfigueredo/vetsched/internal/notify"
	"github.com/mfigueredo/vetsched/internal/outbox"
	"github.com/mfigueredo/vetsched/internal/storage"
	"github.com/mfigueredo/vetsched/libs/config"
	"github.com/mfigueredo/vetsched/libs/db"
	"github.com/mfigueredo/vetsched/libs/kafkax"
	"github.com/mfigueredo/vetsched/libs/otelx"
	"github.com/mfigueredo/vetsched/libs/runtime"
)

// vetsched runs the background side of appointment orchestration: the outbox
// publisher shipping lifecycle events to Kafka and the periodic inventory
// scan. The orchestration core (validation, commands, mediator) is a library
// embedded by callers.
func main() {
	service := config.String("SERVICE_NAME", "vetsched")
	port, err := config.Port("PORT", "8080")
	if err != nil {
		panic(err)
	}
	logger := runtime.NewLogger(service)

	ctx, stop := runtime.SignalContext()
	defer stop()

	otelShutdown, err := otelx.Setup(ctx, otelx.ConfigFromEnv(service))
	if err != nil {
		logger.Error("otel setup failed", "err", err)
	} else {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = otelShutdown(shutdownCtx)
		}()
	}

	dbURL, err := config.RequiredString("DATABASE_URL")
	if err != nil {
		panic(err)
	}
	pool, err := db.Open(ctx, dbURL)
	if err != nil {
		logger.Error("db connection failed", "err", err)
		panic(err)
	}
	defer pool.Close()

	checks := []runtime.ReadyCheck{
		{Name: "postgres", Check: db.ReadyCheck(pool)},
	}

	brokers := config.String("KAFKA_BROKERS", "")
	outboxRepo := outbox.NewRepository(pool)
	publisher := outbox.NewPublisher(pool, outboxRepo, logger, outbox.PublisherConfig{
		Brokers:   brokers,
		PollEvery: config.Duration("OUTBOX_POLL_EVERY", 2*time.Second),
		BatchSize: config.Int("OUTBOX_BATCH_SIZE", 50),
	})
	go publisher.Run(ctx)
	if brokers != "" {
		checks = append(checks, runtime.ReadyCheck{Name: "kafka", Check: kafkax.ReadyCheck(brokers)})
	}

	var locker inventory.Locker
	if redisAddr := config.String("REDIS_ADDR", ""); redisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: redisAddr})
		hostname, _ := os.Hostname()
		scanInterval := config.Duration("INVENTORY_SCAN_INTERVAL", time.Hour)
		locker = inventory.NewRedisLock(rdb, "vetsched:inventory:scan", hostname, scanInterval/2)
		checks = append(checks, runtime.ReadyCheck{Name: "redis", Check: func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		}})
	}

	channel := buildChannel(logger)
	monitor := inventory.NewMonitor(storage.NewPgInventory(pool), logger)
	scanner := inventory.NewScanner(monitor, channel, logger, inventory.ScannerConfig{
		Recipient: config.String("STOCK_ALERT_RECIPIENT", "inventory@vetsched.local"),
		Interval:  config.Duration("INVENTORY_SCAN_INTERVAL", time.Hour),
		Locker:    locker,
	})
	go scanner.Run(ctx)

	mux := runtime.NewBaseMuxWithReady(checks...)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           otelhttp.NewHandler(mux, "http.server"),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("vetsched listening", "port", port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("http server failed", "err", err)
	}
}

func buildChannel(logger *slog.Logger) notify.Channel {
	switch strings.ToLower(config.String("NOTIFY_CHANNEL", "noop")) {
	case "email", "smtp":
		return notify.NewEmailChannel(
			config.String("SMTP_HOST", "mailpit"),
			config.String("SMTP_PORT", "1025"),
			config.String("SMTP_FROM", ""))
	case "sms":
		return notify.NewSMSChannel(
			config.String("SMS_WEBHOOK_URL", ""),
			config.String("SMS_WEBHOOK_TOKEN", ""),
			int64(config.Int("SMS_COST_CENTS", 3)))
	default:
		logger.Info("notifications disabled (noop channel)")
		return notify.NewNoopChannel()
	}
}
