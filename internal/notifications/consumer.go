package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"audease/internal/shared/config"
	"audease/pkg/logger"

	"github.com/IBM/sarama"
)

// NotificationConsumer drains the notification topic and delivers emails.
type NotificationConsumer interface {
	Start(ctx context.Context) error
	Stop() error
}

type kafkaNotificationConsumer struct {
	consumerGroup sarama.ConsumerGroup
	topic         string
	emailService  EmailService
	log           *logger.Logger

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewKafkaConsumer joins the notification consumer group.
func NewKafkaConsumer(cfg config.KafkaConfig, emailService EmailService, log *logger.Logger) (NotificationConsumer, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Consumer.Group.Rebalance.GroupStrategies = []sarama.BalanceStrategy{sarama.NewBalanceStrategyRoundRobin()}
	saramaConfig.Consumer.Offsets.Initial = sarama.OffsetOldest
	saramaConfig.Consumer.Return.Errors = true

	group, err := sarama.NewConsumerGroup(cfg.Brokers, "audease-notification-workers", saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create consumer group: %w", err)
	}

	return &kafkaNotificationConsumer{
		consumerGroup: group,
		topic:         cfg.Topic,
		emailService:  emailService,
		log:           log,
	}, nil
}

func (c *kafkaNotificationConsumer) Start(ctx context.Context) error {
	ctx, c.cancel = context.WithCancel(ctx)

	handler := &notificationGroupHandler{
		emailService: c.emailService,
		log:          c.log,
	}

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		for {
			if err := c.consumerGroup.Consume(ctx, []string{c.topic}, handler); err != nil {
				c.log.ErrorWithContext(ctx, "Consumer group session ended", err, nil)
			}
			if ctx.Err() != nil {
				return
			}
		}
	}()

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		for err := range c.consumerGroup.Errors() {
			c.log.ErrorWithContext(ctx, "Consumer group error", err, nil)
		}
	}()

	c.log.InfoWithContext(ctx, "Notification consumer started", map[string]interface{}{
		"topic": c.topic,
	})
	return nil
}

func (c *kafkaNotificationConsumer) Stop() error {
	if c.cancel != nil {
		c.cancel()
	}
	err := c.consumerGroup.Close()
	c.wg.Wait()
	return err
}

// notificationGroupHandler implements sarama.ConsumerGroupHandler.
type notificationGroupHandler struct {
	emailService EmailService
	log          *logger.Logger
}

func (h *notificationGroupHandler) Setup(sarama.ConsumerGroupSession) error   { return nil }
func (h *notificationGroupHandler) Cleanup(sarama.ConsumerGroupSession) error { return nil }

func (h *notificationGroupHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for message := range claim.Messages() {
		h.processMessage(session.Context(), message)
		session.MarkMessage(message, "")
	}
	return nil
}

func (h *notificationGroupHandler) processMessage(ctx context.Context, message *sarama.ConsumerMessage) {
	var notification EmailNotification
	if err := json.Unmarshal(message.Value, &notification); err != nil {
		// Poison message, skip it. The health-check probe lands here too.
		h.log.DebugWithContext(ctx, "Skipping unparseable message", map[string]interface{}{
			"partition": message.Partition,
			"offset":    message.Offset,
		})
		return
	}
	if notification.RecipientEmail == "" {
		return
	}

	if err := h.deliverWithRetry(ctx, &notification); err != nil {
		h.log.ErrorWithContext(ctx, "Notification delivery exhausted retries", err, map[string]interface{}{
			"notification_id": notification.ID.String(),
			"type":            string(notification.Type),
			"recipient":       notification.RecipientEmail,
		})
		return
	}

	h.log.InfoWithContext(ctx, "Notification delivered", map[string]interface{}{
		"notification_id": notification.ID.String(),
		"type":            string(notification.Type),
	})
}

func (h *notificationGroupHandler) deliverWithRetry(ctx context.Context, notification *EmailNotification) error {
	backoff := time.Second

	for {
		err := h.emailService.SendNotification(ctx, notification)
		if err == nil {
			notification.MarkSent()
			return nil
		}

		notification.MarkFailed(err)
		notification.IncrementRetry()
		if notification.Status == NotificationStatusExpired {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
	}
}
