package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/teka-store/api/internal/domain"
	"github.com/teka-store/api/internal/platform/jobs"
)

// Order lifecycle event names mirrored to the event publisher.
const (
	orderEventCreated       = "order.created"
	orderEventStatusChanged = "order.status_changed"
)

// OrderEventPublisher mirrors order lifecycle events to an external topic.
type OrderEventPublisher interface {
	PublishOrderEvent(ctx context.Context, message jobs.OrderEventMessage) (string, error)
}

// NotificationTask is one unit of work queued for background dispatch.
// Notify controls customer-facing delivery; the lifecycle event is mirrored
// either way.
type NotificationTask struct {
	Order      domain.Order
	Status     domain.OrderStatus
	PrevStatus domain.OrderStatus
	CustomText string
	Event      string
	Notify     bool
}

// NotificationWorker drains queued notification tasks off the status-commit
// path. Dispatch never blocks the caller: when the queue is full the task is
// dropped with a warning, matching the best-effort delivery contract.
type NotificationWorker struct {
	notifier  NotificationService
	publisher OrderEventPublisher
	logger    *zap.Logger
	clock     func() time.Time

	queue   chan NotificationTask
	wg      sync.WaitGroup
	startMu sync.Mutex
	started bool
}

// NotificationWorkerDeps bundles collaborators required to construct the
// worker.
type NotificationWorkerDeps struct {
	Notifier  NotificationService
	Publisher OrderEventPublisher
	Logger    *zap.Logger
	Clock     func() time.Time
	QueueSize int
	Workers   int
}

// NewNotificationWorker constructs the background dispatch worker.
func NewNotificationWorker(deps NotificationWorkerDeps) (*NotificationWorker, error) {
	if deps.Notifier == nil {
		return nil, errors.New("notification worker: notifier is required")
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	clock := deps.Clock
	if clock == nil {
		clock = time.Now
	}
	queueSize := deps.QueueSize
	if queueSize <= 0 {
		queueSize = 64
	}
	return &NotificationWorker{
		notifier:  deps.Notifier,
		publisher: deps.Publisher,
		logger:    logger,
		clock:     clock,
		queue:     make(chan NotificationTask, queueSize),
	}, nil
}

// Start launches the worker goroutines. They drain the queue until ctx is
// cancelled, then finish the tasks already dequeued.
func (w *NotificationWorker) Start(ctx context.Context, workers int) {
	w.startMu.Lock()
	defer w.startMu.Unlock()
	if w.started {
		return
	}
	w.started = true
	if workers <= 0 {
		workers = 1
	}
	for i := 0; i < workers; i++ {
		w.wg.Add(1)
		go w.run(ctx)
	}
}

func (w *NotificationWorker) run(ctx context.Context) {
	defer w.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case task := <-w.queue:
			w.process(ctx, task)
		}
	}
}

// Enqueue hands a task to the worker without blocking. It reports whether
// the task was accepted; a full queue drops the task.
func (w *NotificationWorker) Enqueue(task NotificationTask) bool {
	select {
	case w.queue <- task:
		return true
	default:
		w.logger.Warn("notification queue full, dropping task",
			zap.String("order_id", task.Order.ID),
			zap.String("status", string(task.Status)),
		)
		return false
	}
}

// Wait blocks until all worker goroutines have exited. Tasks still buffered
// at that point are abandoned and reported, matching the drop-on-full path.
func (w *NotificationWorker) Wait() {
	w.wg.Wait()
	if dropped := len(w.queue); dropped > 0 {
		w.logger.Warn("notification queue abandoned tasks at shutdown",
			zap.Int("dropped", dropped),
		)
	}
}

func (w *NotificationWorker) process(ctx context.Context, task NotificationTask) {
	if task.Notify || task.CustomText != "" {
		var attempts []domain.NotificationAttempt
		if task.CustomText != "" {
			attempts = w.notifier.DispatchCustom(ctx, task.Order, task.CustomText)
		} else {
			attempts = w.notifier.Dispatch(ctx, task.Order, task.Status)
		}

		sent := 0
		for _, attempt := range attempts {
			if attempt.Status == domain.AttemptSent {
				sent++
			}
		}
		w.logger.Info("notification dispatched",
			zap.String("order_id", task.Order.ID),
			zap.String("status", string(task.Status)),
			zap.Int("channels", len(attempts)),
			zap.Int("sent", sent),
		)
	}

	w.publishEvent(ctx, task)
}

// publishEvent mirrors the lifecycle event to the configured topic. A
// publish failure is logged and swallowed; the committed state change stands.
func (w *NotificationWorker) publishEvent(ctx context.Context, task NotificationTask) {
	if w.publisher == nil || task.Event == "" {
		return
	}
	msg := jobs.OrderEventMessage{
		Event:      task.Event,
		OrderID:    task.Order.ID,
		Status:     string(task.Status),
		PrevStatus: string(task.PrevStatus),
		Phone:      task.Order.Phone,
		TotalPrice: task.Order.TotalPrice,
		OccurredAt: w.clock().UTC().Format(time.RFC3339Nano),
	}
	if _, err := w.publisher.PublishOrderEvent(ctx, msg); err != nil {
		w.logger.Warn("publish order event failed",
			zap.String("order_id", task.Order.ID),
			zap.String("event", task.Event),
			zap.Error(err),
		)
	}
}
