package main

import (
	"context"
	"net/http"
	"time"

	"github.com/md-rashed-zaman/fuelstation/libs/config"
	"github.com/md-rashed-zaman/fuelstation/libs/docstore"
	"github.com/md-rashed-zaman/fuelstation/libs/httpx"
	"github.com/md-rashed-zaman/fuelstation/libs/kafkax"
	otelx "github.com/md-rashed-zaman/fuelstation/libs/otel"
	"github.com/md-rashed-zaman/fuelstation/libs/runtime"
	"github.com/md-rashed-zaman/fuelstation/services/station-service/internal/handlers"
	"github.com/md-rashed-zaman/fuelstation/services/station-service/internal/outbox"
	"github.com/md-rashed-zaman/fuelstation/services/station-service/internal/settings"
	"github.com/md-rashed-zaman/fuelstation/services/station-service/internal/storage"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		panic(err)
	}
	service := config.String("SERVICE_NAME", "station-service")
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

	station, err := settings.Load(config.String("STATION_CONFIG", ""))
	if err != nil {
		panic(err)
	}

	backend, closeBackend, err := openBackend(ctx, logger)
	if err != nil {
		logger.Error("store connection failed", "err", err)
		panic(err)
	}
	defer closeBackend()

	stores, err := storage.Open(ctx, backend)
	if err != nil {
		panic(err)
	}

	brokers := config.String("KAFKA_BROKERS", "")
	var events handlers.Emitter
	if backend.Driver == docstore.DriverPostgres {
		outboxRepo := outbox.NewRepository(backend.Pool)
		events = outboxRepo
		publisher := outbox.NewPublisher(backend.Pool, outboxRepo, logger, outbox.PublisherConfig{
			Brokers:   brokers,
			PollEvery: config.Seconds("OUTBOX_POLL_SECONDS", 2*time.Second),
			BatchSize: config.Int("OUTBOX_BATCH_SIZE", 50),
		})
		go publisher.Run(ctx)
	} else {
		logger.Warn("station events disabled (outbox requires the postgres store)", "driver", backend.Driver)
	}

	secret := config.String("JWT_SECRET", "")
	if secret == "" {
		secret = "dev-secret"
		logger.Warn("JWT_SECRET not set; using development secret")
	}
	api := handlers.New(handlers.Config{
		Logger:   logger,
		Stores:   stores,
		Settings: station,
		Auth: handlers.AuthConfig{
			Secret:   secret,
			TTL:      time.Duration(config.Int("JWT_TTL_HOURS", 24)) * time.Hour,
			Required: config.Bool("AUTH_REQUIRED", false),
		},
		Events: events,
	})

	checks := []runtime.ReadyCheck{
		{Name: "store", Check: backend.ReadyCheck()},
		{Name: "kafka", Check: kafkax.ReadyCheck(brokers)},
	}

	metrics := httpx.NewMetrics("station")
	mux := runtime.NewBaseMuxWithReady(checks...)
	mux.Handle("/metrics", metrics.Handler())
	mux.Handle("/", api.Router(metrics.Middleware(handlers.RouteTemplate)))

	rateLimitMW, closeLimiter := rateLimiter(logger)
	defer closeLimiter()

	handler := httpx.Chain(mux,
		httpx.WithCORS(httpx.DefaultCORSPolicy(config.List("CORS_ALLOWED_ORIGINS", ""))),
		httpx.WithRequestID,
		httpx.WithAccessLog(logger),
		httpx.WithRecover(logger),
		httpx.WithBodyLimit(int64(config.Int("REQUEST_BODY_LIMIT_BYTES", 1<<20))),
		httpx.WithTimeout(config.Seconds("REQUEST_TIMEOUT_SECONDS", 10*time.Second)),
		rateLimitMW,
	)
	handler = otelhttp.NewHandler(handler, "station")

	if grpcPort := config.String("GRPC_PORT", "9090"); grpcPort != "0" {
		go serveHealth(ctx, service, grpcPort, logger, checks)
	}

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}
	runtime.ServeHTTP(ctx, srv, logger)
}
