package outbox

import (
	"encoding/json"
	"fmt"
	"time"
)

// Order lifecycle event queues.
const (
	QueueOrderCreated       = "commerce.order.created"
	QueueOrderStatusChanged = "commerce.order.status_changed"
	QueueOrderDeleted       = "commerce.order.deleted"
)

const defaultMaxRetries = 10

// Message is a pending event awaiting publication to RabbitMQ. Messages are
// written in the same transaction as the state change they describe and
// published asynchronously by the outbox worker.
type Message struct {
	ID           int64
	QueueName    string
	ExchangeName string
	RoutingKey   string
	Payload      []byte
	ContentType  string
	RetryCount   int
	MaxRetries   int
	LastError    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	NextRetryAt  time.Time
}

// NewMessage builds a JSON message for the given queue, ready for immediate
// pickup by the worker.
func NewMessage(queue string, payload any) (Message, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return Message{}, fmt.Errorf("failed to marshal outbox payload: %w", err)
	}

	now := time.Now()

	return Message{
		QueueName:   queue,
		RoutingKey:  queue,
		Payload:     body,
		ContentType: "application/json",
		MaxRetries:  defaultMaxRetries,
		CreatedAt:   now,
		UpdatedAt:   now,
		NextRetryAt: now,
	}, nil
}
