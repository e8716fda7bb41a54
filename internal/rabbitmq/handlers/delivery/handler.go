package delivery

import (
	"context"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"

	"github.com/hihu/gita-notifier/internal/rabbitmq/queue"
)

//go:generate mockgen -source=handler.go -destination=../../../mocks/worker/handler_mock.go -package=mocks
type dispatchService interface {
	RetryDelivery(ctx context.Context, strategy retry.Strategy, notificationID uuid.UUID) error
}

// Handler re-attempts one failed delivery per queue message.
type Handler struct {
	service dispatchService
}

func NewHandler(svc dispatchService) *Handler {
	return &Handler{
		service: svc,
	}
}

// HandleRetry drives one reconciliation attempt, retrying transient
// store errors per the strategy. Gateway failures inside the attempt
// are recorded on the notification record by the dispatch service and
// re-queued there, so they do not surface here.
func (h *Handler) HandleRetry(ctx context.Context, msg queue.RetryMessage, strategy retry.Strategy) {
	zlog.Logger.Info().
		Str("notification_id", msg.NotificationID.String()).
		Str("last_error", msg.LastError).
		Msg("reconciling failed delivery")

	err := retry.Do(func() error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
			return h.service.RetryDelivery(ctx, strategy, msg.NotificationID)
		}
	}, strategy)

	if err != nil {
		zlog.Logger.Error().Err(err).
			Str("notification_id", msg.NotificationID.String()).
			Msg("reconciliation attempt failed")
		return
	}

	zlog.Logger.Info().Str("notification_id", msg.NotificationID.String()).Msg("reconciliation attempt finished")
}
