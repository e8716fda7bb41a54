package worker

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/wb-go/wbf/retry"

	mocks "github.com/hihu/gita-notifier/internal/mocks/worker"
	"github.com/hihu/gita-notifier/internal/rabbitmq/queue"
)

func TestReconciler_Run_HandlesMessage(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockQueue := mocks.NewMockretryQueue(ctrl)
	mockHandler := mocks.NewMockretryHandler(ctrl)
	mockStatus := mocks.NewMockstatusReader(ctrl)

	r := NewReconciler(mockQueue, mockHandler, mockStatus)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	strategy := retry.Strategy{}
	msg := queue.RetryMessage{
		NotificationID: uuid.New(),
		UserID:         uuid.New(),
		LastError:      "fcm unavailable",
	}

	handled := make(chan struct{})

	mockQueue.EXPECT().
		Consume(gomock.Any(), gomock.Any(), strategy).
		DoAndReturn(func(_ context.Context, out chan<- queue.RetryMessage, _ retry.Strategy) error {
			out <- msg
			return nil
		})

	mockStatus.EXPECT().
		DeliveryStatus(gomock.Any(), strategy, msg.NotificationID).
		Return("failed", nil)

	mockHandler.EXPECT().
		HandleRetry(gomock.Any(), msg, strategy).
		Do(func(context.Context, queue.RetryMessage, retry.Strategy) {
			close(handled)
		})

	go r.Run(ctx, strategy, 2)

	select {
	case <-handled:
	case <-time.After(2 * time.Second):
		t.Fatal("message was never handled")
	}

	cancel()
}

func TestReconciler_Run_SkipsAlreadySent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockQueue := mocks.NewMockretryQueue(ctrl)
	mockHandler := mocks.NewMockretryHandler(ctrl)
	mockStatus := mocks.NewMockstatusReader(ctrl)

	r := NewReconciler(mockQueue, mockHandler, mockStatus)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	strategy := retry.Strategy{}
	msg := queue.RetryMessage{NotificationID: uuid.New()}

	checked := make(chan struct{})

	mockQueue.EXPECT().
		Consume(gomock.Any(), gomock.Any(), strategy).
		DoAndReturn(func(_ context.Context, out chan<- queue.RetryMessage, _ retry.Strategy) error {
			out <- msg
			return nil
		})

	// Status says sent: the handler must not be invoked.
	mockStatus.EXPECT().
		DeliveryStatus(gomock.Any(), strategy, msg.NotificationID).
		DoAndReturn(func(context.Context, retry.Strategy, uuid.UUID) (string, error) {
			defer close(checked)
			return "sent", nil
		})

	go r.Run(ctx, strategy, 1)

	select {
	case <-checked:
	case <-time.After(2 * time.Second):
		t.Fatal("status was never checked")
	}

	// Give a stray HandleRetry call a chance to fire before Finish.
	time.Sleep(50 * time.Millisecond)
	cancel()
}

func TestReconciler_Run_StopsOnContextCancel(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockQueue := mocks.NewMockretryQueue(ctrl)
	mockHandler := mocks.NewMockretryHandler(ctrl)
	mockStatus := mocks.NewMockstatusReader(ctrl)

	r := NewReconciler(mockQueue, mockHandler, mockStatus)

	ctx, cancel := context.WithCancel(context.Background())

	mockQueue.EXPECT().
		Consume(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ chan<- queue.RetryMessage, _ retry.Strategy) error {
			<-ctx.Done()
			return ctx.Err()
		})

	done := make(chan struct{})
	go func() {
		r.Run(ctx, retry.Strategy{}, 2)
		close(done)
	}()

	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("reconciler did not stop after cancel")
	}
}
