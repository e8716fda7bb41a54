package worker

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"

	"github.com/hihu/gita-notifier/internal/rabbitmq/queue"
)

//go:generate mockgen -source=reconciler.go -destination=../mocks/worker/mock.go -package=mocks

type retryQueue interface {
	Consume(ctx context.Context, out chan<- queue.RetryMessage, strategy retry.Strategy) error
}

type retryHandler interface {
	HandleRetry(ctx context.Context, msg queue.RetryMessage, strategy retry.Strategy)
}

type statusReader interface {
	DeliveryStatus(ctx context.Context, strategy retry.Strategy, id uuid.UUID) (string, error)
}

// Reconciler consumes the delivery-retry queue with a bounded worker
// pool, re-attempting failed notification records out of band from the
// batch loop.
type Reconciler struct {
	queue   retryQueue
	handler retryHandler
	status  statusReader
}

func NewReconciler(q retryQueue, h retryHandler, s statusReader) *Reconciler {
	return &Reconciler{
		queue:   q,
		handler: h,
		status:  s,
	}
}

// Run consumes until ctx is cancelled, fanning messages out to
// workerCount workers. Messages whose record is already sent are
// dropped without a delivery attempt.
func (r *Reconciler) Run(ctx context.Context, strategy retry.Strategy, workerCount int) {
	var wg sync.WaitGroup
	msgChan := make(chan queue.RetryMessage, workerCount*10)

	go func() {
		if err := r.queue.Consume(ctx, msgChan, strategy); err != nil {
			zlog.Logger.Error().Err(err).Msg("failed to consume retry messages")
		}
	}()

	wg.Add(workerCount)
	for i := 0; i < workerCount; i++ {
		go func(id int) {
			defer wg.Done()

			zlog.Logger.Printf("reconciler worker-%d started", id)

			for {
				select {
				case <-ctx.Done():
					zlog.Logger.Printf("reconciler worker-%d shutting down", id)
					return
				case msg, ok := <-msgChan:
					if !ok {
						zlog.Logger.Printf("reconciler worker-%d channel closed, shutting down", id)
						return
					}

					status, err := r.status.DeliveryStatus(ctx, strategy, msg.NotificationID)
					if err != nil {
						zlog.Logger.Printf("failed to get status for %s: %v", msg.NotificationID, err)
						continue
					}

					if status == "sent" {
						zlog.Logger.Printf("notification %s already sent, skipping", msg.NotificationID)
						continue
					}

					r.handler.HandleRetry(ctx, msg, strategy)
				}
			}
		}(i)
	}

	<-ctx.Done()
	wg.Wait()
	zlog.Logger.Print("reconciler stopped")
}
