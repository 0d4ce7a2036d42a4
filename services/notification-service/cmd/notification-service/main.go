package main

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/md-rashed-zaman/fuelstation/libs/config"
	"github.com/md-rashed-zaman/fuelstation/libs/db"
	"github.com/md-rashed-zaman/fuelstation/libs/events"
	"github.com/md-rashed-zaman/fuelstation/libs/httpx"
	"github.com/md-rashed-zaman/fuelstation/libs/kafkax"
	otelx "github.com/md-rashed-zaman/fuelstation/libs/otel"
	"github.com/md-rashed-zaman/fuelstation/libs/runtime"
	"github.com/md-rashed-zaman/fuelstation/services/notification-service/internal/consumer"
	"github.com/md-rashed-zaman/fuelstation/services/notification-service/internal/dispatch"
	"github.com/md-rashed-zaman/fuelstation/services/notification-service/internal/email"
	"github.com/md-rashed-zaman/fuelstation/services/notification-service/internal/inbox"
	"github.com/md-rashed-zaman/fuelstation/services/notification-service/internal/storage"
	"github.com/md-rashed-zaman/fuelstation/services/notification-service/internal/telegram"
	"github.com/md-rashed-zaman/fuelstation/services/notification-service/migrations"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		panic(err)
	}
	service := config.String("SERVICE_NAME", "notification-service")
	port, err := config.Port("PORT", "8085")
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
	if config.Bool("RUN_MIGRATIONS", true) {
		if err := db.Migrate(dbURL, migrations.FS, ".", "notification_schema_migrations"); err != nil {
			logger.Error("migrations failed", "err", err)
			panic(err)
		}
	}

	pool, err := db.Open(ctx, dbURL)
	if err != nil {
		logger.Error("db connection failed", "err", err)
		panic(err)
	}
	defer pool.Close()

	metrics := httpx.NewMetrics("notification")
	dispatcher := dispatch.New(dispatch.Config{
		Station:    config.String("STATION_NAME", "Fuel Station"),
		Channels:   channels(logger),
		Store:      storage.NewRepository(pool),
		Logger:     logger,
		Registerer: metrics.Registry(),
	})

	brokers := config.String("KAFKA_BROKERS", "")
	if len(kafkax.SplitBrokers(brokers)) > 0 {
		eventConsumer := consumer.New(logger, inbox.NewRepository(pool), consumer.Config{
			Brokers: brokers,
			GroupID: config.String("KAFKA_GROUP_ID", "notification-service"),
			Topics:  events.Topics,
		}, dispatcher.Handle)
		go eventConsumer.Run(ctx)
	} else {
		logger.Warn("KAFKA_BROKERS not set; event consumer disabled")
	}

	mux := runtime.NewBaseMuxWithReady(
		runtime.ReadyCheck{Name: "db", Check: db.ReadyCheck(pool)},
		runtime.ReadyCheck{Name: "kafka", Check: kafkax.ReadyCheck(brokers)},
	)
	mux.Handle("/metrics", metrics.Handler())
	handler := httpx.Chain(mux,
		httpx.WithRequestID,
		httpx.WithAccessLog(logger),
		httpx.WithRecover(logger),
	)
	handler = otelhttp.NewHandler(handler, "notification")
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}
	runtime.ServeHTTP(ctx, srv, logger)
}

// channels builds the delivery channels that have complete configuration.
func channels(logger *slog.Logger) []dispatch.Channel {
	var out []dispatch.Channel

	if token := config.String("TELEGRAM_BOT_TOKEN", ""); token != "" {
		chatID, err := strconv.ParseInt(config.String("TELEGRAM_CHAT_ID", ""), 10, 64)
		if err != nil {
			logger.Error("invalid TELEGRAM_CHAT_ID; telegram disabled", "err", err)
		} else if sender, err := telegram.New(token, chatID); err != nil {
			logger.Error("telegram setup failed; telegram disabled", "err", err)
		} else {
			out = append(out, sender)
		}
	}

	if to := config.String("ALERT_EMAIL", ""); to != "" {
		sender, err := email.NewSMTPSender(
			config.String("SMTP_HOST", "mailpit"),
			config.String("SMTP_PORT", "1025"),
			config.String("SMTP_FROM", "no-reply@fuelstation.local"),
			to,
		)
		if err != nil {
			logger.Error("email setup failed; email disabled", "err", err)
		} else {
			out = append(out, sender)
		}
	}

	if len(out) == 0 {
		logger.Warn("no alert channels configured; notifications are recorded as skipped")
	}
	return out
}
