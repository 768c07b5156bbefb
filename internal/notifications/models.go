package notifications

import (
	"encoding/json"
	"fmt"
	"time"

	"audease/internal/bookings"

	"github.com/google/uuid"
)

type NotificationType string

const (
	NotificationTypeBookingSubmitted NotificationType = "BOOKING_SUBMITTED"
	NotificationTypeBookingApproved  NotificationType = "BOOKING_APPROVED"
	NotificationTypeBookingRejected  NotificationType = "BOOKING_REJECTED"
	NotificationTypeBookingCancelled NotificationType = "BOOKING_CANCELLED"
)

type NotificationPriority string

const (
	NotificationPriorityLow    NotificationPriority = "LOW"
	NotificationPriorityMedium NotificationPriority = "MEDIUM"
	NotificationPriorityHigh   NotificationPriority = "HIGH"
)

type NotificationStatus string

const (
	NotificationStatusPending  NotificationStatus = "PENDING"
	NotificationStatusQueued   NotificationStatus = "QUEUED"
	NotificationStatusSent     NotificationStatus = "SENT"
	NotificationStatusFailed   NotificationStatus = "FAILED"
	NotificationStatusRetrying NotificationStatus = "RETRYING"
	NotificationStatusExpired  NotificationStatus = "EXPIRED"
)

// EmailNotification is the message flowing through the Kafka topic.
type EmailNotification struct {
	ID       uuid.UUID            `json:"id"`
	Type     NotificationType     `json:"type"`
	Priority NotificationPriority `json:"priority"`

	RecipientID    string `json:"recipient_id"`
	RecipientEmail string `json:"recipient_email"`

	Subject      string                 `json:"subject"`
	TemplateData map[string]interface{} `json:"template_data"`

	BookingID string `json:"booking_id,omitempty"`

	Status     NotificationStatus `json:"status"`
	RetryCount int                `json:"retry_count"`
	MaxRetries int                `json:"max_retries"`
	LastError  *string            `json:"last_error,omitempty"`
	CreatedAt  time.Time          `json:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at"`
	SentAt     *time.Time         `json:"sent_at,omitempty"`
}

// FromBookingEvent maps a booking lifecycle event onto an email
// notification ready for publishing.
func FromBookingEvent(event bookings.NotificationEvent) (*EmailNotification, error) {
	notType, ok := typeForEvent(event.Type)
	if !ok {
		return nil, fmt.Errorf("unknown booking event type %q", event.Type)
	}

	return &EmailNotification{
		ID:             uuid.New(),
		Type:           notType,
		Priority:       defaultPriority(notType),
		RecipientID:    event.UserID,
		RecipientEmail: event.UserEmail,
		Subject:        subjectFor(notType, event),
		TemplateData: map[string]interface{}{
			"event_title": event.EventTitle,
			"venue_name":  event.VenueName,
			"date":        event.Date,
			"start_time":  event.StartTime,
			"end_time":    event.EndTime,
			"admin_note":  event.AdminNote,
		},
		BookingID:  event.BookingID,
		Status:     NotificationStatusPending,
		MaxRetries: 3,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}, nil
}

func typeForEvent(eventType string) (NotificationType, bool) {
	switch eventType {
	case bookings.EventBookingSubmitted:
		return NotificationTypeBookingSubmitted, true
	case bookings.EventBookingApproved:
		return NotificationTypeBookingApproved, true
	case bookings.EventBookingRejected:
		return NotificationTypeBookingRejected, true
	case bookings.EventBookingCancelled:
		return NotificationTypeBookingCancelled, true
	}
	return "", false
}

func defaultPriority(notType NotificationType) NotificationPriority {
	switch notType {
	case NotificationTypeBookingApproved, NotificationTypeBookingRejected:
		return NotificationPriorityHigh
	case NotificationTypeBookingSubmitted:
		return NotificationPriorityMedium
	default:
		return NotificationPriorityLow
	}
}

func subjectFor(notType NotificationType, event bookings.NotificationEvent) string {
	switch notType {
	case NotificationTypeBookingSubmitted:
		return fmt.Sprintf("Booking request received: %s", event.EventTitle)
	case NotificationTypeBookingApproved:
		return fmt.Sprintf("Booking approved: %s", event.EventTitle)
	case NotificationTypeBookingRejected:
		return fmt.Sprintf("Booking rejected: %s", event.EventTitle)
	case NotificationTypeBookingCancelled:
		return fmt.Sprintf("Booking cancelled: %s", event.EventTitle)
	default:
		return "Booking update"
	}
}

// GetPartitionKey routes all of a user's notifications to one partition
// so they are delivered in order.
func (en *EmailNotification) GetPartitionKey() string {
	return en.RecipientID
}

func (en *EmailNotification) ToJSON() ([]byte, error) {
	return json.Marshal(en)
}

func (en *EmailNotification) ShouldRetry() bool {
	return en.RetryCount < en.MaxRetries && en.Status == NotificationStatusFailed
}

func (en *EmailNotification) MarkSent() {
	now := time.Now()
	en.Status = NotificationStatusSent
	en.SentAt = &now
	en.UpdatedAt = now
}

func (en *EmailNotification) MarkFailed(err error) {
	en.Status = NotificationStatusFailed
	en.UpdatedAt = time.Now()

	errorStr := err.Error()
	en.LastError = &errorStr
}

func (en *EmailNotification) IncrementRetry() {
	en.RetryCount++
	en.UpdatedAt = time.Now()
	if en.ShouldRetry() {
		en.Status = NotificationStatusRetrying
	} else {
		en.Status = NotificationStatusExpired
	}
}
