package worker

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/spec-kit/jobboard/internal/events"
)

const defaultQueueSize = 64

// Notifier handles a single event off the queue.
type Notifier interface {
	EventTypes() []events.EventType
	Handle(ctx context.Context, event events.Event) error
}

// NotificationWorker moves notification delivery off the request path.
// Events are queued by dispatcher subscriptions and drained by one goroutine.
type NotificationWorker struct {
	notifier Notifier
	logger   *zap.Logger
	queue    chan events.Event

	mu      sync.RWMutex
	stopped bool
	done    chan struct{}
	once    sync.Once
}

// NewNotificationWorker creates a worker with a bounded queue.
func NewNotificationWorker(notifier Notifier, logger *zap.Logger, size int) *NotificationWorker {
	if logger == nil {
		logger = zap.NewNop()
	}
	if size <= 0 {
		size = defaultQueueSize
	}
	return &NotificationWorker{
		notifier: notifier,
		logger:   logger,
		queue:    make(chan events.Event, size),
		done:     make(chan struct{}),
	}
}

// Subscribe registers the worker for every event type the notifier handles.
func (w *NotificationWorker) Subscribe(dispatcher events.Dispatcher) {
	for _, eventType := range w.notifier.EventTypes() {
		dispatcher.Subscribe(eventType, w.enqueue)
	}
}

// enqueue never blocks the publisher. A full queue drops the event.
func (w *NotificationWorker) enqueue(_ context.Context, event events.Event) error {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.stopped {
		return nil
	}
	select {
	case w.queue <- event:
	default:
		w.logger.Warn("notification queue full, dropping event",
			zap.String("event_id", event.ID),
			zap.String("event_type", string(event.Type)))
	}
	return nil
}

// Start launches the consumer. It exits when ctx is done or after Stop has
// drained the queue.
func (w *NotificationWorker) Start(ctx context.Context) {
	go func() {
		defer close(w.done)
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-w.queue:
				if !ok {
					return
				}
				w.handle(ctx, event)
			}
		}
	}()
}

func (w *NotificationWorker) handle(ctx context.Context, event events.Event) {
	defer func() {
		if r := recover(); r != nil {
			w.logger.Error("notification handler panicked",
				zap.String("event_id", event.ID),
				zap.Any("panic", r))
		}
	}()
	if err := w.notifier.Handle(ctx, event); err != nil {
		w.logger.Warn("notification failed",
			zap.String("event_id", event.ID),
			zap.String("event_type", string(event.Type)),
			zap.Error(err))
	}
}

// Stop closes the queue and waits for the consumer to finish. Start must have
// been called.
func (w *NotificationWorker) Stop() {
	w.once.Do(func() {
		w.mu.Lock()
		w.stopped = true
		close(w.queue)
		w.mu.Unlock()
		<-w.done
	})
}
