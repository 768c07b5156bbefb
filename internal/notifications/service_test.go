package notifications

import (
	"context"
	"testing"

	"audease/internal/bookings"
	"audease/pkg/logger"

	"github.com/stretchr/testify/require"
)

type capturingProducer struct {
	published []*EmailNotification
}

func (p *capturingProducer) Publish(_ context.Context, n *EmailNotification) error {
	p.published = append(p.published, n)
	return nil
}

func (p *capturingProducer) HealthCheck() error { return nil }
func (p *capturingProducer) Close() error       { return nil }

func sampleEvent(eventType string) bookings.NotificationEvent {
	return bookings.NotificationEvent{
		Type:       eventType,
		BookingID:  "b-1",
		UserID:     "u-1",
		UserEmail:  "student@example.edu",
		VenueName:  "Main Auditorium",
		Date:       "2026-04-10",
		StartTime:  "14:00",
		EndTime:    "16:00",
		EventTitle: "Tech Symposium",
	}
}

func TestFromBookingEvent(t *testing.T) {
	n, err := FromBookingEvent(sampleEvent(bookings.EventBookingApproved))
	require.NoError(t, err)

	require.Equal(t, NotificationTypeBookingApproved, n.Type)
	require.Equal(t, NotificationPriorityHigh, n.Priority)
	require.Equal(t, "student@example.edu", n.RecipientEmail)
	require.Equal(t, "Booking approved: Tech Symposium", n.Subject)
	require.Equal(t, "u-1", n.GetPartitionKey())
	require.Equal(t, NotificationStatusPending, n.Status)
}

func TestFromBookingEventUnknownType(t *testing.T) {
	_, err := FromBookingEvent(sampleEvent("booking.exploded"))
	require.Error(t, err)
}

func TestServicePublishesLifecycleEvents(t *testing.T) {
	producer := &capturingProducer{}
	svc := NewService(producer, logger.GetDefault())

	for _, eventType := range []string{
		bookings.EventBookingSubmitted,
		bookings.EventBookingApproved,
		bookings.EventBookingRejected,
		bookings.EventBookingCancelled,
	} {
		require.NoError(t, svc.NotifyBookingEvent(context.Background(), sampleEvent(eventType)))
	}

	require.Len(t, producer.published, 4)
	require.Equal(t, NotificationTypeBookingSubmitted, producer.published[0].Type)
	require.Equal(t, NotificationTypeBookingCancelled, producer.published[3].Type)
}

func TestRetryBookkeeping(t *testing.T) {
	n, err := FromBookingEvent(sampleEvent(bookings.EventBookingRejected))
	require.NoError(t, err)

	for i := 0; i < n.MaxRetries; i++ {
		n.MarkFailed(context.DeadlineExceeded)
		n.IncrementRetry()
	}
	require.Equal(t, NotificationStatusExpired, n.Status)
	require.False(t, n.ShouldRetry())
}

func TestRenderBodyIncludesAdminNote(t *testing.T) {
	event := sampleEvent(bookings.EventBookingRejected)
	event.AdminNote = "Venue under maintenance that week"

	n, err := FromBookingEvent(event)
	require.NoError(t, err)

	body := renderBody(n)
	require.Contains(t, body, "was not approved")
	require.Contains(t, body, "Main Auditorium")
	require.Contains(t, body, "Venue under maintenance that week")
}
