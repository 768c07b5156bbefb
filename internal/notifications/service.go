package notifications

import (
	"context"

	"audease/internal/bookings"
	"audease/pkg/logger"
)

// Service bridges booking lifecycle events onto the Kafka topic. It
// satisfies bookings.Notifier.
type Service struct {
	producer NotificationProducer
	log      *logger.Logger
}

func NewService(producer NotificationProducer, log *logger.Logger) *Service {
	return &Service{
		producer: producer,
		log:      log,
	}
}

func (s *Service) NotifyBookingEvent(ctx context.Context, event bookings.NotificationEvent) error {
	notification, err := FromBookingEvent(event)
	if err != nil {
		return err
	}
	return s.producer.Publish(ctx, notification)
}

var _ bookings.Notifier = (*Service)(nil)
