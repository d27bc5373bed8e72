package worker

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/dreamhome-service/internal/events"
)

// Handler processes one queued event.
type Handler interface {
	Handle(ctx context.Context, event events.Event) error
}

// NotificationWorker moves notification delivery off the request path. The
// dispatcher hands events to a bounded queue; one goroutine drains it.
type NotificationWorker struct {
	handler Handler
	queue   chan events.Event
	logger  *zap.Logger
	done    chan struct{}
}

// NewNotificationWorker builds a worker with the given queue capacity.
func NewNotificationWorker(handler Handler, capacity int, logger *zap.Logger) *NotificationWorker {
	if capacity <= 0 {
		capacity = 64
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationWorker{
		handler: handler,
		queue:   make(chan events.Event, capacity),
		logger:  logger,
		done:    make(chan struct{}),
	}
}

// Subscribe registers the worker for the given event types.
func (w *NotificationWorker) Subscribe(dispatcher events.Dispatcher, types ...events.EventType) {
	for _, t := range types {
		dispatcher.Subscribe(t, w.enqueue)
	}
}

// enqueue never blocks the publisher; a full queue drops the event.
func (w *NotificationWorker) enqueue(_ context.Context, event events.Event) error {
	select {
	case w.queue <- event:
	default:
		w.logger.Warn("notification queue full, dropping event",
			zap.String("event_type", string(event.Type)),
			zap.String("entity_id", event.EntityID))
	}
	return nil
}

// Start consumes the queue until ctx is cancelled, then drains what is left.
func (w *NotificationWorker) Start(ctx context.Context) {
	go func() {
		defer close(w.done)
		for {
			select {
			case event := <-w.queue:
				w.deliver(ctx, event)
			case <-ctx.Done():
				w.drain()
				return
			}
		}
	}()
}

// Done is closed once the worker has stopped.
func (w *NotificationWorker) Done() <-chan struct{} {
	return w.done
}

func (w *NotificationWorker) drain() {
	for {
		select {
		case event := <-w.queue:
			w.deliver(context.Background(), event)
		default:
			return
		}
	}
}

func (w *NotificationWorker) deliver(ctx context.Context, event events.Event) {
	if err := w.handler.Handle(ctx, event); err != nil {
		w.logger.Warn("notification failed",
			zap.String("event_id", event.ID),
			zap.String("event_type", string(event.Type)),
			zap.Error(err))
	}
}
