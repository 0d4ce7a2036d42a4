// Package dispatch turns station events into recorded admin notifications.
package dispatch

import (
	"context"
	"errors"
	"log/slog"

	"github.com/md-rashed-zaman/fuelstation/libs/kafkax"
	"github.com/md-rashed-zaman/fuelstation/services/notification-service/internal/alerts"
	"github.com/md-rashed-zaman/fuelstation/services/notification-service/internal/storage"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/segmentio/kafka-go"
)

// Channel delivers an alert to one configured recipient.
type Channel interface {
	Name() string
	Recipient() string
	Send(ctx context.Context, alert alerts.Alert) error
}

type Recorder interface {
	Insert(ctx context.Context, n storage.Notification) error
}

type Config struct {
	Station    string
	Channels   []Channel
	Store      Recorder
	Logger     *slog.Logger
	Registerer prometheus.Registerer
}

type Dispatcher struct {
	station  string
	channels []Channel
	store    Recorder
	logger   *slog.Logger
	total    *prometheus.CounterVec
}

func New(cfg Config) *Dispatcher {
	total := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "notification",
		Name:      "deliveries_total",
		Help:      "Notifications recorded by channel and status.",
	}, []string{"channel", "status"})
	if cfg.Registerer != nil {
		cfg.Registerer.MustRegister(total)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		station:  cfg.Station,
		channels: cfg.Channels,
		store:    cfg.Store,
		logger:   logger,
		total:    total,
	}
}

// Handle renders the event and records one notification per channel.
// Undecodable or unknown events are logged and dropped.
func (d *Dispatcher) Handle(ctx context.Context, msg kafka.Message) error {
	meta := kafkax.ExtractEventMeta(msg)
	alert, err := alerts.Format(d.station, meta.EventType, msg.Value)
	if err != nil {
		if errors.Is(err, alerts.ErrUnknownEvent) {
			d.logger.Warn("unhandled event type", "event_type", meta.EventType, "event_id", meta.EventID)
		} else {
			d.logger.Error("invalid event payload", "err", err, "event_id", meta.EventID)
		}
		return nil
	}

	base := storage.Notification{
		EventID:     meta.EventID,
		EventType:   meta.EventType,
		AggregateID: meta.AggregateID,
		Subject:     alert.Subject,
		Body:        alert.Body,
	}

	if len(d.channels) == 0 {
		n := base
		n.Channel = "none"
		n.Status = storage.StatusSkipped
		return d.record(ctx, n)
	}

	var errs []error
	for _, ch := range d.channels {
		n := base
		n.Channel = ch.Name()
		n.Recipient = ch.Recipient()
		n.Status = storage.StatusSent
		if err := ch.Send(ctx, alert); err != nil {
			n.Status = storage.StatusFailed
			n.Error = err.Error()
			d.logger.Error("alert delivery failed", "err", err, "channel", n.Channel, "event_id", meta.EventID)
		}
		if err := d.record(ctx, n); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (d *Dispatcher) record(ctx context.Context, n storage.Notification) error {
	d.total.WithLabelValues(n.Channel, n.Status).Inc()
	if err := d.store.Insert(ctx, n); err != nil {
		d.logger.Error("failed to persist notification", "err", err, "event_id", n.EventID)
		return err
	}
	d.logger.Info("notification processed", "event_type", n.EventType, "channel", n.Channel, "status", n.Status)
	return nil
}
