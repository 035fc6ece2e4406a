package worker

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spec-kit/jobboard/internal/events"
)

type recordingNotifier struct {
	mu      sync.Mutex
	handled []events.Event
	block   chan struct{}
	fail    bool
}

func (n *recordingNotifier) EventTypes() []events.EventType {
	return []events.EventType{events.EventJobCreated, events.EventApplicationSubmitted}
}

func (n *recordingNotifier) Handle(_ context.Context, event events.Event) error {
	if n.block != nil {
		<-n.block
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	n.handled = append(n.handled, event)
	if n.fail {
		return errors.New("smtp unreachable")
	}
	return nil
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.handled)
}

func TestNotificationWorker_DeliversSubscribedEvents(t *testing.T) {
	notifier := &recordingNotifier{}
	dispatcher := events.NewInMemoryDispatcher()
	w := NewNotificationWorker(notifier, nil, 8)
	w.Subscribe(dispatcher)
	w.Start(context.Background())

	ctx := context.Background()
	require.NoError(t, dispatcher.Publish(ctx, events.Event{ID: "1", Type: events.EventJobCreated}))
	require.NoError(t, dispatcher.Publish(ctx, events.Event{ID: "2", Type: events.EventJobDeleted}))
	require.NoError(t, dispatcher.Publish(ctx, events.Event{ID: "3", Type: events.EventApplicationSubmitted}))

	w.Stop()
	require.Equal(t, 2, notifier.count())
	assert.Equal(t, "1", notifier.handled[0].ID)
	assert.Equal(t, "3", notifier.handled[1].ID)

	// publishing after Stop is a no-op
	require.NoError(t, dispatcher.Publish(ctx, events.Event{ID: "4", Type: events.EventJobCreated}))
	w.Stop()
	assert.Equal(t, 2, notifier.count())
}

func TestNotificationWorker_DropsWhenFull(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	notifier := &recordingNotifier{block: make(chan struct{})}
	w := NewNotificationWorker(notifier, zap.New(core), 1)

	// consumer not started yet, so the second event overflows
	require.NoError(t, w.enqueue(context.Background(), events.Event{ID: "1", Type: events.EventJobCreated}))
	require.NoError(t, w.enqueue(context.Background(), events.Event{ID: "2", Type: events.EventJobCreated}))
	assert.Equal(t, 1, logs.FilterMessage("notification queue full, dropping event").Len())

	w.Start(context.Background())
	close(notifier.block)
	w.Stop()
	assert.Equal(t, 1, notifier.count())
}

func TestNotificationWorker_LogsHandlerErrors(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	notifier := &recordingNotifier{fail: true}
	w := NewNotificationWorker(notifier, zap.New(core), 0)
	w.Start(context.Background())

	require.NoError(t, w.enqueue(context.Background(), events.Event{ID: "1", Type: events.EventJobCreated}))
	w.Stop()

	entries := logs.FilterMessage("notification failed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "smtp unreachable", entries[0].ContextMap()["error"])
}

func TestNotificationWorker_StopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	w := NewNotificationWorker(&recordingNotifier{}, nil, 1)
	w.Start(ctx)
	cancel()
	<-w.done
	w.Stop()
}
