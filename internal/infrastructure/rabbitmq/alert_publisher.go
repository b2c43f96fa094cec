// Package rabbitmq publica las alertas de stock bajo en una cola durable de RabbitMQ.
package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/jhoicas/inventario-cocina/internal/application/notification"
	"github.com/jhoicas/inventario-cocina/internal/domain"
)

var _ notification.Publisher = (*AlertPublisher)(nil)

// AlertPublisher publica eventos de stock bajo como JSON en la cola configurada.
type AlertPublisher struct {
	conn  *amqp.Connection
	ch    *amqp.Channel
	queue string
	mu    sync.Mutex // un amqp.Channel no admite publicaciones concurrentes
}

// NewAlertPublisher conecta al broker y declara la cola (durable).
func NewAlertPublisher(url, queue string) (*AlertPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("rabbitmq dial: %w: %w", domain.ErrDependency, err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("rabbitmq channel: %w: %w", domain.ErrDependency, err)
	}
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("rabbitmq declare %s: %w: %w", queue, domain.ErrDependency, err)
	}
	return &AlertPublisher{conn: conn, ch: ch, queue: queue}, nil
}

// PublishLowStock implementa notification.Publisher.
func (p *AlertPublisher) PublishLowStock(ctx context.Context, ev notification.LowStockEvent) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal evento: %w", err)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	err = p.ch.PublishWithContext(ctx, "", p.queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    ev.NotificationID,
		Type:         "stock.low",
		Timestamp:    time.Now(),
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("rabbitmq publish: %w: %w", domain.ErrDependency, err)
	}
	return nil
}

// Close cierra canal y conexión.
func (p *AlertPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.ch.Close(); err != nil {
		_ = p.conn.Close()
		return err
	}
	return p.conn.Close()
}
