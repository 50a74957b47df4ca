package notifications

import (
	"context"
	"fmt"
	"sync"

	"medilink-service/internal/app/contracts"
	"medilink-service/internal/pkg/constvars"
	"medilink-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// QueueService owns the channel for the appointment.paid queue pair. It is
// both the publisher side used by the payment usecase and the delivery source
// for the fan-out worker.
type QueueService struct {
	ch       *amqp.Channel
	log      *zap.Logger
	confirms chan amqp.Confirmation
	mu       sync.Mutex
}

// NewQueueService declares the durable queue and its dead-letter companion,
// enables publisher confirms, and sets QoS.
func NewQueueService(conn *amqp.Connection, log *zap.Logger, prefetch int) (*QueueService, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}

	_, err = ch.QueueDeclare(
		constvars.QueueAppointmentPaid,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	)
	if err != nil {
		return nil, err
	}

	_, err = ch.QueueDeclare(
		constvars.QueueAppointmentPaidDeadLetter,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return nil, err
	}

	if prefetch <= 0 {
		prefetch = 1
	}
	if err := ch.Qos(prefetch, 0, false); err != nil {
		return nil, err
	}

	if err := ch.Confirm(false); err != nil {
		return nil, err
	}

	svc := &QueueService{
		ch:       ch,
		log:      log,
		confirms: ch.NotifyPublish(make(chan amqp.Confirmation, 1)),
	}
	return svc, nil
}

// PublishAppointmentPaid publishes the event with persistence and waits for
// the broker confirm.
func (s *QueueService) PublishAppointmentPaid(ctx context.Context, event *contracts.AppointmentPaidEvent) error {
	return s.publish(ctx, constvars.QueueAppointmentPaid, event, 0)
}

// Requeue puts a failed delivery back on the tail of the queue with a bumped
// retry counter.
func (s *QueueService) Requeue(ctx context.Context, event *contracts.AppointmentPaidEvent, retryCount int) error {
	return s.publish(ctx, constvars.QueueAppointmentPaid, event, retryCount)
}

// PublishToDeadLetter parks an exhausted event on the DLQ for manual repair.
func (s *QueueService) PublishToDeadLetter(ctx context.Context, event *contracts.AppointmentPaidEvent, retryCount int) error {
	return s.publish(ctx, constvars.QueueAppointmentPaidDeadLetter, event, retryCount)
}

func (s *QueueService) publish(ctx context.Context, queueName string, event *contracts.AppointmentPaidEvent, retryCount int) error {
	body, err := json.Marshal(event)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	msg := amqp.Publishing{
		ContentType:  constvars.MIMEApplicationJSON,
		Body:         body,
		DeliveryMode: amqp.Persistent,
		Headers: amqp.Table{
			constvars.HeaderRetryCount: int32(retryCount),
		},
	}

	if err := s.ch.PublishWithContext(ctx, "", queueName, false, false, msg); err != nil {
		return exceptions.ErrRabbitMQPublishMessage(err, queueName)
	}

	select {
	case confirmed := <-s.confirms:
		if !confirmed.Ack {
			return exceptions.ErrRabbitMQPublishMessage(fmt.Errorf("message not confirmed"), queueName)
		}
	case <-ctx.Done():
		return exceptions.ErrRabbitMQPublishMessage(ctx.Err(), queueName)
	}

	s.log.Info("notifications.QueueService published event",
		zap.String(constvars.LoggingQueueKey, queueName),
		zap.String(constvars.LoggingAppointmentIDKey, event.AppointmentID),
		zap.Int(constvars.LoggingRetryCountKey, retryCount),
	)
	return nil
}

// Consume registers a consumer on the appointment.paid queue. Deliveries must
// be acked or nacked by the caller.
func (s *QueueService) Consume() (<-chan amqp.Delivery, error) {
	return s.ch.Consume(
		constvars.QueueAppointmentPaid,
		"",    // consumer tag
		false, // autoAck
		false, // exclusive
		false, // noLocal
		false, // noWait
		nil,
	)
}

// RetryCountOf reads the bumped retry counter from a delivery, zero when the
// header is absent.
func RetryCountOf(delivery amqp.Delivery) int {
	raw, ok := delivery.Headers[constvars.HeaderRetryCount]
	if !ok {
		return 0
	}
	switch v := raw.(type) {
	case int32:
		return int(v)
	case int64:
		return int(v)
	case int:
		return v
	default:
		return 0
	}
}
