package consumer

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/md-rashed-zaman/fuelstation/libs/kafkax"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sliceReader struct {
	mu        sync.Mutex
	msgs      []kafka.Message
	committed []string
	closed    bool
}

func (r *sliceReader) FetchMessage(ctx context.Context) (kafka.Message, error) {
	r.mu.Lock()
	if len(r.msgs) > 0 {
		msg := r.msgs[0]
		r.msgs = r.msgs[1:]
		r.mu.Unlock()
		return msg, nil
	}
	r.mu.Unlock()
	<-ctx.Done()
	return kafka.Message{}, ctx.Err()
}

func (r *sliceReader) CommitMessages(_ context.Context, msgs ...kafka.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range msgs {
		r.committed = append(r.committed, kafkax.ExtractEventMeta(m).EventID)
	}
	return nil
}

func (r *sliceReader) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	return nil
}

func (r *sliceReader) commits() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.committed...)
}

type memoryInbox struct {
	mu        sync.Mutex
	seen      map[string]bool
	failFirst int
}

func (m *memoryInbox) Record(_ context.Context, eventID, _ string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failFirst > 0 {
		m.failFirst--
		return false, errors.New("db down")
	}
	if m.seen[eventID] {
		return false, nil
	}
	m.seen[eventID] = true
	return true, nil
}

func (m *memoryInbox) Forget(_ context.Context, eventID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.seen, eventID)
	return nil
}

func message(id string) kafka.Message {
	return kafka.Message{
		Topic:   "station.sale.recorded.v1",
		Value:   []byte(`{}`),
		Headers: kafkax.EventMeta{EventID: id, EventType: "station.sale.recorded.v1"}.Headers(),
	}
}

func start(t *testing.T, c *Consumer) (stop func()) {
	t.Helper()
	c.backoff = 5 * time.Millisecond
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		c.Run(ctx)
		close(done)
	}()
	return func() {
		cancel()
		<-done
	}
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestConsumerSkipsDuplicates(t *testing.T) {
	reader := &sliceReader{msgs: []kafka.Message{message("a"), message("a"), message("b")}}
	var mu sync.Mutex
	var handled []string
	c := NewWithReader(discard(), &memoryInbox{seen: map[string]bool{}}, reader,
		func(_ context.Context, msg kafka.Message) error {
			mu.Lock()
			defer mu.Unlock()
			handled = append(handled, kafkax.ExtractEventMeta(msg).EventID)
			return nil
		})

	stop := start(t, c)
	require.Eventually(t, func() bool { return len(reader.commits()) == 3 }, time.Second, 5*time.Millisecond)
	stop()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"a", "b"}, handled)
	assert.Equal(t, []string{"a", "a", "b"}, reader.commits())
	assert.True(t, reader.closed)
}

func TestConsumerRetriesFailedHandlerBeforeCommitting(t *testing.T) {
	reader := &sliceReader{msgs: []kafka.Message{message("a"), message("b")}}
	var mu sync.Mutex
	attempts := map[string]int{}
	c := NewWithReader(discard(), &memoryInbox{seen: map[string]bool{}}, reader,
		func(_ context.Context, msg kafka.Message) error {
			mu.Lock()
			defer mu.Unlock()
			id := kafkax.ExtractEventMeta(msg).EventID
			attempts[id]++
			if id == "a" && attempts[id] < 3 {
				return errors.New("store unavailable")
			}
			return nil
		})

	stop := start(t, c)
	require.Eventually(t, func() bool { return len(reader.commits()) == 2 }, time.Second, 5*time.Millisecond)
	stop()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 3, attempts["a"])
	assert.Equal(t, 1, attempts["b"])
	assert.Equal(t, []string{"a", "b"}, reader.commits())
}

func TestConsumerRetriesInboxErrors(t *testing.T) {
	reader := &sliceReader{msgs: []kafka.Message{message("a")}}
	var calls int
	var mu sync.Mutex
	c := NewWithReader(discard(), &memoryInbox{seen: map[string]bool{}, failFirst: 2}, reader,
		func(context.Context, kafka.Message) error {
			mu.Lock()
			defer mu.Unlock()
			calls++
			return nil
		})

	stop := start(t, c)
	require.Eventually(t, func() bool { return len(reader.commits()) == 1 }, time.Second, 5*time.Millisecond)
	stop()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, calls)
}

func TestConsumerLeavesFailingMessageUncommittedOnShutdown(t *testing.T) {
	reader := &sliceReader{msgs: []kafka.Message{message("a")}}
	inbox := &memoryInbox{seen: map[string]bool{}}
	handled := make(chan struct{}, 1)
	c := NewWithReader(discard(), inbox, reader, func(context.Context, kafka.Message) error {
		select {
		case handled <- struct{}{}:
		default:
		}
		return errors.New("store unavailable")
	})

	stop := start(t, c)
	<-handled
	stop()

	assert.Empty(t, reader.commits())
	inbox.mu.Lock()
	defer inbox.mu.Unlock()
	assert.False(t, inbox.seen["a"], "failed event must not stay recorded")
}
