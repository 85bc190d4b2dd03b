package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"bakeshop/internal/logger"
)

// OrderPlaced is the notification emitted after an order is persisted.
type OrderPlaced struct {
	OrderID    string `json:"order_id"`
	Collection string `json:"collection"`
	Name       string `json:"name"`
	OrderTime  string `json:"order_time"`
}

// Publisher publishes notifications to RabbitMQ.
type Publisher struct {
	conn   *Connection
	logger *logger.Logger
}

// NewPublisher creates a new notification publisher.
func NewPublisher(conn *Connection, log *logger.Logger) *Publisher {
	return &Publisher{
		conn:   conn,
		logger: log,
	}
}

// PublishOrderPlaced fans an order-placed notification out to listeners.
// Callers treat publish failures as log-only events: notifications are best
// effort and never fail a submission.
func (p *Publisher) PublishOrderPlaced(ctx context.Context, notification OrderPlaced) error {
	if p.conn.IsClosed() {
		if err := p.conn.Reconnect(); err != nil {
			return fmt.Errorf("failed to reconnect: %w", err)
		}
	}

	body, err := json.Marshal(notification)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	err = p.conn.Channel().PublishWithContext(
		ctx,
		NotificationsExchange,
		"",    // routing key (fanout)
		false, // mandatory
		false, // immediate
		amqp091.Publishing{
			ContentType: "application/json",
			Body:        body,
			Timestamp:   time.Now(),
		},
	)
	if err != nil {
		p.logger.Error("notification_publish_failed",
			fmt.Sprintf("Failed to publish notification for order %s", notification.OrderID),
			"", err, map[string]interface{}{
				"collection": notification.Collection,
			})
		return fmt.Errorf("failed to publish notification: %w", err)
	}

	p.logger.Debug("notification_published",
		fmt.Sprintf("Published order-placed notification for %s", notification.OrderID),
		"", map[string]interface{}{
			"collection": notification.Collection,
		})
	return nil
}
