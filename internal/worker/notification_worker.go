package worker

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/hjalloh/campsite/internal/events"
	"github.com/hjalloh/campsite/internal/service"
)

const defaultQueueSize = 64

// NotificationWorker drains booking events onto a background goroutine and
// hands them to the notification service, keeping delivery off the request
// path. Events are dropped with a warning when the queue is full.
type NotificationWorker struct {
	notifications *service.NotificationService
	logger        *zap.Logger

	queue chan events.Event
	wg    sync.WaitGroup
	once  sync.Once

	// mu guards closed against the queue close in Stop. enqueue holds the
	// read side across the send, so Stop cannot close the channel between the
	// closed check and the send.
	mu     sync.RWMutex
	closed bool
}

// NewNotificationWorker creates a stopped worker.
func NewNotificationWorker(notifications *service.NotificationService, logger *zap.Logger) *NotificationWorker {
	return &NotificationWorker{
		notifications: notifications,
		logger:        logger,
		queue:         make(chan events.Event, defaultQueueSize),
	}
}

// Start subscribes the worker to booking events and launches the delivery
// goroutine. ctx cancellation stops delivery of queued events.
func (w *NotificationWorker) Start(ctx context.Context, dispatcher events.Dispatcher) {
	if dispatcher == nil {
		return
	}
	for _, eventType := range []events.EventType{
		events.EventBookingCreated,
		events.EventBookingModified,
		events.EventBookingCancelled,
	} {
		dispatcher.Subscribe(eventType, w.enqueue)
	}

	w.wg.Add(1)
	go w.run(ctx)
}

// Stop closes the queue and waits for in-flight deliveries to finish.
func (w *NotificationWorker) Stop() {
	w.once.Do(func() {
		w.mu.Lock()
		w.closed = true
		close(w.queue)
		w.mu.Unlock()
	})
	w.wg.Wait()
}

func (w *NotificationWorker) enqueue(_ context.Context, event events.Event) error {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.closed {
		return nil
	}
	select {
	case w.queue <- event:
	default:
		w.logger.Warn("notification queue full; dropping event",
			zap.String("event_id", event.ID),
			zap.String("event_type", string(event.Type)))
	}
	return nil
}

func (w *NotificationWorker) run(ctx context.Context) {
	defer w.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.queue:
			if !ok {
				return
			}
			if err := w.notifications.Notify(ctx, event); err != nil {
				w.logger.Warn("notification delivery failed",
					zap.String("event_id", event.ID),
					zap.Error(err))
			}
		}
	}
}
