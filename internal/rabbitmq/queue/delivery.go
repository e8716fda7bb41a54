// Package queue wires the delivery-retry topology: failed dispatches
// are published here and re-attempted out of band by the
// reconciliation workers. The retry queue dead-letters back into the
// main queue after a TTL pause, and messages the main queue rejects
// land in the DLQ.
package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/rabbitmq"
	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"

	"github.com/hihu/gita-notifier/internal/config"
)

// RetryMessage identifies one failed delivery to re-attempt.
type RetryMessage struct {
	NotificationID uuid.UUID `json:"notification_id"`
	UserID         uuid.UUID `json:"user_id"`
	Attempts       int       `json:"attempts"`   // attempts recorded at publish time
	LastError      string    `json:"last_error"` // gateway error that caused the failure
}

// DeliveryQueue publishes and consumes delivery-retry messages.
type DeliveryQueue struct {
	Publisher *rabbitmq.Publisher
	Consumer  *rabbitmq.Consumer
}

// NewDeliveryQueue declares the exchange and the main/retry/DLQ queues
// on the given channel.
func NewDeliveryQueue(ch *rabbitmq.Channel, cfg *config.Config) (*DeliveryQueue, error) {
	exchange := rabbitmq.NewExchange(cfg.RabbitMQ.Exchange, "direct")
	if err := exchange.BindToChannel(ch); err != nil {
		return nil, fmt.Errorf("failed to bind to exchange: %w", err)
	}

	qm := rabbitmq.NewQueueManager(ch)

	_, err := qm.DeclareQueue(cfg.RabbitMQ.DLQ, rabbitmq.QueueConfig{Durable: true})
	if err != nil {
		return nil, fmt.Errorf("failed to declare DLQ queue: %w", err)
	}

	retryArgs := map[string]interface{}{
		"x-dead-letter-exchange":    "",
		"x-dead-letter-routing-key": cfg.RabbitMQ.Queue,
		"x-message-ttl":             int32(cfg.RabbitMQ.RetryPause.Milliseconds()),
	}

	_, err = qm.DeclareQueue(cfg.RabbitMQ.RetryQueue, rabbitmq.QueueConfig{
		Durable: true,
		Args:    retryArgs,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to declare retry queue: %w", err)
	}

	mainArgs := map[string]interface{}{
		"x-dead-letter-exchange":    "",
		"x-dead-letter-routing-key": cfg.RabbitMQ.DLQ,
	}

	mainQ, err := qm.DeclareQueue(cfg.RabbitMQ.Queue, rabbitmq.QueueConfig{
		Durable: true,
		Args:    mainArgs,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to declare main queue: %w", err)
	}

	if err := ch.QueueBind(mainQ.Name, cfg.RabbitMQ.RoutingKey, exchange.Name(), false, nil); err != nil {
		return nil, fmt.Errorf("failed to bind the exchange to the main queue: %w", err)
	}

	pub := rabbitmq.NewPublisher(ch, exchange.Name())
	cons := rabbitmq.NewConsumer(ch, rabbitmq.NewConsumerConfig(mainQ.Name))

	return &DeliveryQueue{Publisher: pub, Consumer: cons}, nil
}

// Publish enqueues one retry message.
func (q *DeliveryQueue) Publish(msg RetryMessage, routingKey string, strategy retry.Strategy) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	return q.Publisher.PublishWithRetry(body, routingKey, "application/json", strategy)
}

// Consume decodes retry messages into out until the channel closes or
// ctx is cancelled.
func (q *DeliveryQueue) Consume(ctx context.Context, out chan<- RetryMessage, strategy retry.Strategy) error {
	msgChan := make(chan []byte)

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case m, ok := <-msgChan:
				if !ok {
					return
				}

				var msg RetryMessage
				if err := json.Unmarshal(m, &msg); err != nil {
					zlog.Logger.Error().Err(err).Msg("failed to unmarshal retry message")
					continue
				}

				out <- msg
			}
		}
	}()

	return q.Consumer.ConsumeWithRetry(msgChan, strategy)
}
