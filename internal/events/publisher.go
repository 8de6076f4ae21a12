// Package events публикует доменные события сервиса в RabbitMQ.
// Ошибки публикации логируются и возвращаются вызывающей стороне,
// которая может их игнорировать, не прерывая основной поток запроса.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// QueueBookingStatusChanged имя очереди событий смены статуса
const QueueBookingStatusChanged = "booking.status_changed"

// BookingStatusChangedEvent событие успешного перехода статуса бронирования
type BookingStatusChangedEvent struct {
	BookingID int64                `json:"bookingId"`
	PointID   int64                `json:"pointId"`
	ClientID  int64                `json:"clientId"`
	OldStatus domain.BookingStatus `json:"oldStatus"`
	NewStatus domain.BookingStatus `json:"newStatus"`
	Reason    *string              `json:"reason,omitempty"`
	ChangedAt time.Time            `json:"changedAt"`
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Publisher публикует события смены статуса бронирований
type Publisher interface {
	PublishStatusChanged(ctx context.Context, event BookingStatusChangedEvent) error
}

// AMQPPublisher публикует события в RabbitMQ. Соединение открывается на
// каждую публикацию: события редкие, а короткоживущее соединение
// переживает рестарты брокера без логики переподключения.
type AMQPPublisher struct {
	url string
	log Logger
}

// NewAMQPPublisher создает издателя событий
func NewAMQPPublisher(url string, log Logger) *AMQPPublisher {
	return &AMQPPublisher{url: url, log: log}
}

// PublishStatusChanged публикует событие в durable-очередь
func (p *AMQPPublisher) PublishStatusChanged(ctx context.Context, event BookingStatusChangedEvent) error {
	conn, err := amqp.Dial(p.url)
	if err != nil {
		p.log.Error("events: rabbitmq dial failed: %v", err)
		return fmt.Errorf("events: dial: %w", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		p.log.Error("events: rabbitmq channel open failed: %v", err)
		return fmt.Errorf("events: channel: %w", err)
	}
	defer func() { _ = ch.Close() }()

	// Декларация идемпотентна; durable, чтобы события переживали рестарт брокера
	if _, err := ch.QueueDeclare(
		QueueBookingStatusChanged,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	); err != nil {
		p.log.Error("events: queue declare failed: %v", err)
		return fmt.Errorf("events: queue declare: %w", err)
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("events: marshal event: %w", err)
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	if err := ch.PublishWithContext(ctx,
		"", // default exchange
		QueueBookingStatusChanged,
		false, // mandatory
		false, // immediate
		pub,
	); err != nil {
		p.log.Error("events: publish failed: %v", err)
		return fmt.Errorf("events: publish: %w", err)
	}

	p.log.Info("events: published %s booking=%d %s -> %s",
		QueueBookingStatusChanged, event.BookingID, event.OldStatus, event.NewStatus)
	return nil
}

// NopPublisher используется, когда публикация событий выключена в конфиге
type NopPublisher struct{}

// PublishStatusChanged ничего не делает
func (NopPublisher) PublishStatusChanged(context.Context, BookingStatusChangedEvent) error {
	return nil
}
