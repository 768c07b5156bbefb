package notifications

import (
	"context"
	"fmt"
	"time"

	"audease/internal/shared/config"
	"audease/pkg/logger"

	"github.com/IBM/sarama"
)

// NotificationProducer publishes booking notifications to Kafka.
type NotificationProducer interface {
	Publish(ctx context.Context, notification *EmailNotification) error
	HealthCheck() error
	Close() error
}

type kafkaNotificationProducer struct {
	producer sarama.SyncProducer
	topic    string
	log      *logger.Logger
}

// NewKafkaProducer creates a synchronous producer with idempotent,
// ordered delivery per recipient.
func NewKafkaProducer(cfg config.KafkaConfig, log *logger.Logger) (NotificationProducer, error) {
	saramaConfig := sarama.NewConfig()

	saramaConfig.Producer.Return.Successes = true
	saramaConfig.Producer.Return.Errors = true
	saramaConfig.Producer.RequiredAcks = sarama.WaitForAll
	saramaConfig.Producer.Retry.Max = 3
	saramaConfig.Producer.Retry.Backoff = 100 * time.Millisecond
	saramaConfig.Producer.Compression = sarama.CompressionSnappy

	// Idempotent writes require a single in-flight request.
	saramaConfig.Producer.Idempotent = true
	saramaConfig.Net.MaxOpenRequests = 1

	// Hash partitioning keeps each recipient's notifications ordered.
	saramaConfig.Producer.Partitioner = sarama.NewHashPartitioner

	saramaConfig.Producer.Flush.Frequency = 10 * time.Millisecond
	saramaConfig.Producer.Flush.Messages = 100

	producer, err := sarama.NewSyncProducer(cfg.Brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka producer: %w", err)
	}

	return &kafkaNotificationProducer{
		producer: producer,
		topic:    cfg.Topic,
		log:      log,
	}, nil
}

func (p *kafkaNotificationProducer) Publish(ctx context.Context, notification *EmailNotification) error {
	payload, err := notification.ToJSON()
	if err != nil {
		return fmt.Errorf("failed to serialize notification: %w", err)
	}

	message := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(notification.GetPartitionKey()),
		Value: sarama.ByteEncoder(payload),
		Headers: []sarama.RecordHeader{
			{Key: []byte("notification_type"), Value: []byte(notification.Type)},
			{Key: []byte("priority"), Value: []byte(notification.Priority)},
			{Key: []byte("created_at"), Value: []byte(notification.CreatedAt.Format(time.RFC3339))},
		},
		Timestamp: time.Now(),
	}

	partition, offset, err := p.producer.SendMessage(message)
	if err != nil {
		notification.MarkFailed(err)
		p.log.ErrorWithContext(ctx, "Failed to publish notification", err, map[string]interface{}{
			"notification_id": notification.ID.String(),
			"type":            string(notification.Type),
			"booking_id":      notification.BookingID,
		})
		return fmt.Errorf("failed to publish notification: %w", err)
	}

	notification.Status = NotificationStatusQueued
	notification.UpdatedAt = time.Now()

	p.log.DebugWithContext(ctx, "Notification published", map[string]interface{}{
		"notification_id": notification.ID.String(),
		"type":            string(notification.Type),
		"partition":       partition,
		"offset":          offset,
	})
	return nil
}

// HealthCheck verifies the producer end to end with a probe message.
func (p *kafkaNotificationProducer) HealthCheck() error {
	probe := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder("health-check"),
		Value: sarama.StringEncoder(fmt.Sprintf(`{"type":"health_check","timestamp":"%s"}`, time.Now().Format(time.RFC3339))),
		Headers: []sarama.RecordHeader{
			{Key: []byte("notification_type"), Value: []byte("health_check")},
		},
	}
	if _, _, err := p.producer.SendMessage(probe); err != nil {
		return fmt.Errorf("kafka producer health check failed: %w", err)
	}
	return nil
}

func (p *kafkaNotificationProducer) Close() error {
	if err := p.producer.Close(); err != nil {
		return fmt.Errorf("failed to close kafka producer: %w", err)
	}
	return nil
}
