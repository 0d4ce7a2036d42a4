package kafkax

import (
	"context"
	"testing"

	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

func TestEventMetaHeaders(t *testing.T) {
	meta := EventMeta{EventID: "evt-1", EventType: "station.sale.recorded.v1"}
	msg := kafka.Message{Topic: meta.EventType, Key: []byte("sale-1"), Headers: meta.Headers()}

	got := ExtractEventMeta(msg)
	if got.EventID != "evt-1" || got.EventType != meta.EventType || got.AggregateID != "sale-1" {
		t.Fatalf("unexpected meta %+v", got)
	}
}

func TestExtractEventMetaFallsBackToPosition(t *testing.T) {
	msg := kafka.Message{Topic: "t", Key: []byte("k"), Partition: 2, Offset: 9}
	got := ExtractEventMeta(msg)
	if got.EventID != "t/k/2/9" || got.EventType != "t" {
		t.Fatalf("unexpected meta %+v", got)
	}
}

func TestTraceHeadersRoundTrip(t *testing.T) {
	otel.SetTextMapPropagator(propagation.TraceContext{})
	traceID, _ := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	spanID, _ := trace.SpanIDFromHex("00f067aa0ba902b7")
	ctx := trace.ContextWithSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	}))

	headers := InjectTraceHeaders(ctx, EventMeta{EventID: "e", EventType: "t"}.Headers())
	if HeaderValue(headers, "traceparent") == "" {
		t.Fatalf("expected traceparent header, got %+v", headers)
	}
	restored := ExtractTraceContext(context.Background(), kafka.Message{Headers: headers})
	if got := trace.SpanContextFromContext(restored).TraceID(); got != traceID {
		t.Fatalf("expected trace id %s, got %s", traceID, got)
	}
}

func TestSplitBrokers(t *testing.T) {
	got := SplitBrokers(" a:9092, ,b:9092")
	if len(got) != 2 || got[0] != "a:9092" || got[1] != "b:9092" {
		t.Fatalf("unexpected brokers %v", got)
	}
	if err := ReadyCheck("")(context.Background()); err != nil {
		t.Fatalf("expected no-op check without brokers, got %v", err)
	}
}
