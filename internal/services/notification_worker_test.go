package services

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/teka-store/api/internal/domain"
	"github.com/teka-store/api/internal/platform/jobs"
)

type stubNotifier struct {
	dispatched chan NotificationTask
}

func (s *stubNotifier) Dispatch(ctx context.Context, order domain.Order, status domain.OrderStatus) []domain.NotificationAttempt {
	s.dispatched <- NotificationTask{Order: order, Status: status}
	return []domain.NotificationAttempt{{OrderID: order.ID, Channel: "stub", Status: domain.AttemptSent}}
}

func (s *stubNotifier) DispatchCustom(ctx context.Context, order domain.Order, text string) []domain.NotificationAttempt {
	s.dispatched <- NotificationTask{Order: order, CustomText: text}
	return []domain.NotificationAttempt{{OrderID: order.ID, Channel: "stub", Status: domain.AttemptSent}}
}

type stubPublisher struct {
	published chan jobs.OrderEventMessage
}

func (s *stubPublisher) PublishOrderEvent(ctx context.Context, message jobs.OrderEventMessage) (string, error) {
	s.published <- message
	return "msg-1", nil
}

func TestWorkerDispatchesQueuedTasks(t *testing.T) {
	notifier := &stubNotifier{dispatched: make(chan NotificationTask, 4)}
	publisher := &stubPublisher{published: make(chan jobs.OrderEventMessage, 4)}
	worker, err := NewNotificationWorker(NotificationWorkerDeps{
		Notifier:  notifier,
		Publisher: publisher,
		QueueSize: 4,
	})
	if err != nil {
		t.Fatalf("NewNotificationWorker returned error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	worker.Start(ctx, 1)

	order := domain.Order{ID: "104", Phone: "0912345678"}
	if ok := worker.Enqueue(NotificationTask{
		Order:  order,
		Status: domain.StatusShipping,
		Event:  "order.status_changed",
		Notify: true,
	}); !ok {
		t.Fatal("Enqueue rejected a task with queue capacity available")
	}

	select {
	case got := <-notifier.dispatched:
		if got.Order.ID != "104" || got.Status != domain.StatusShipping {
			t.Fatalf("dispatched task = %+v", got)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("worker never dispatched the task")
	}

	select {
	case msg := <-publisher.published:
		if msg.Event != "order.status_changed" || msg.OrderID != "104" {
			t.Fatalf("published event = %+v", msg)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("worker never published the event")
	}
}

func TestWorkerSkipsCustomerNotifyWhenFlagged(t *testing.T) {
	notifier := &stubNotifier{dispatched: make(chan NotificationTask, 1)}
	publisher := &stubPublisher{published: make(chan jobs.OrderEventMessage, 1)}
	worker, err := NewNotificationWorker(NotificationWorkerDeps{
		Notifier:  notifier,
		Publisher: publisher,
		QueueSize: 1,
	})
	if err != nil {
		t.Fatalf("NewNotificationWorker returned error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	worker.Start(ctx, 1)

	worker.Enqueue(NotificationTask{
		Order: domain.Order{ID: "100"},
		Event: "order.created",
	})

	select {
	case msg := <-publisher.published:
		if msg.Event != "order.created" {
			t.Fatalf("published event = %+v", msg)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("worker never published the event")
	}

	select {
	case got := <-notifier.dispatched:
		t.Fatalf("non-notifying task was dispatched: %+v", got)
	default:
	}
}

func TestWorkerEnqueueDropsWhenFull(t *testing.T) {
	notifier := &stubNotifier{dispatched: make(chan NotificationTask)}
	worker, err := NewNotificationWorker(NotificationWorkerDeps{
		Notifier:  notifier,
		QueueSize: 1,
	})
	if err != nil {
		t.Fatalf("NewNotificationWorker returned error: %v", err)
	}

	// Worker never started, so the queue fills.
	if ok := worker.Enqueue(NotificationTask{Order: domain.Order{ID: "100"}}); !ok {
		t.Fatal("first Enqueue should succeed")
	}
	if ok := worker.Enqueue(NotificationTask{Order: domain.Order{ID: "101"}}); ok {
		t.Fatal("second Enqueue should drop when the queue is full")
	}
}

func TestWorkerWaitReportsAbandonedTasks(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	notifier := &stubNotifier{dispatched: make(chan NotificationTask)}
	worker, err := NewNotificationWorker(NotificationWorkerDeps{
		Notifier:  notifier,
		Logger:    zap.New(core),
		QueueSize: 4,
	})
	if err != nil {
		t.Fatalf("NewNotificationWorker returned error: %v", err)
	}

	worker.Enqueue(NotificationTask{Order: domain.Order{ID: "100"}})
	worker.Enqueue(NotificationTask{Order: domain.Order{ID: "101"}})

	// No workers were started, so both tasks are still buffered at shutdown.
	worker.Wait()

	entries := logs.FilterMessage("notification queue abandoned tasks at shutdown").All()
	if len(entries) != 1 {
		t.Fatalf("abandoned-task warnings = %d, want 1", len(entries))
	}
	if dropped, ok := entries[0].ContextMap()["dropped"].(int64); !ok || dropped != 2 {
		t.Fatalf("dropped = %v, want 2", entries[0].ContextMap()["dropped"])
	}
}
