package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"audease/internal/scheduling"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SlotConflictError is returned when the requested interval overlaps at
// least one live booking. Conflicts keep the stored order.
type SlotConflictError struct {
	Conflicts []scheduling.Conflict
}

func (e *SlotConflictError) Error() string {
	return fmt.Sprintf("requested slot conflicts with %d existing booking(s)", len(e.Conflicts))
}

// ListQuery filters admin booking listings.
type ListQuery struct {
	Status  string `form:"status" binding:"omitempty,oneof=PENDING APPROVED REJECTED CANCELLED"`
	VenueID string `form:"venue_id" binding:"omitempty,uuid"`
	Date    string `form:"date"`
	Page    int    `form:"page" binding:"omitempty,min=1"`
	Limit   int    `form:"limit" binding:"omitempty,min=1,max=100"`
}

// Repository interface for booking operations
type Repository interface {
	// ListForVenueDate returns the live reservations for one venue on one
	// date, ordered by start time.
	ListForVenueDate(ctx context.Context, venueID uuid.UUID, date string) ([]Booking, error)
	// CreateWithAvailabilityCheck re-validates the slot and inserts the
	// booking in one transaction. Concurrent submissions for the same
	// venue and date are serialized, so only one of two racing requests
	// for an overlapping slot can win.
	CreateWithAvailabilityCheck(ctx context.Context, booking *Booking) error
	GetByID(ctx context.Context, id uuid.UUID) (*Booking, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]Booking, int64, error)
	List(ctx context.Context, query ListQuery) ([]Booking, int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status BookingStatus, adminNote string, decidedBy *uuid.UUID) error
	// ApprovedByUser returns the user's most recent approved bookings,
	// newest first. This feeds preference ranking and the assistant.
	ApprovedByUser(ctx context.Context, userID uuid.UUID, limit int) ([]Booking, error)
	// ExpirePendingBefore rejects pending bookings whose date has passed
	// without a decision. Returns the number of rows touched.
	ExpirePendingBefore(ctx context.Context, date string) (int64, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository creates a new booking repository
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ListForVenueDate(ctx context.Context, venueID uuid.UUID, date string) ([]Booking, error) {
	var rows []Booking
	err := r.db.WithContext(ctx).
		Where("venue_id = ? AND date = ?", venueID, date).
		Where("status IN ?", LiveStatuses()).
		Order("start_time ASC, created_at ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) CreateWithAvailabilityCheck(ctx context.Context, booking *Booking) error {
	proposed, err := booking.Interval()
	if err != nil {
		return err
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 1. Serialize writers on the same venue and date. An advisory
		// xact lock is released automatically at commit or rollback.
		lockKey := booking.VenueID.String() + ":" + booking.Date
		if err := tx.Exec("SELECT pg_advisory_xact_lock(hashtext(?))", lockKey).Error; err != nil {
			return fmt.Errorf("failed to acquire booking lock: %w", err)
		}

		// 2. Re-read the live reservations under the lock.
		var existing []Booking
		err := tx.
			Where("venue_id = ? AND date = ?", booking.VenueID, booking.Date).
			Where("status IN ?", LiveStatuses()).
			Order("start_time ASC, created_at ASC").
			Find(&existing).Error
		if err != nil {
			return fmt.Errorf("failed to load existing bookings: %w", err)
		}

		reservations, err := toReservations(existing)
		if err != nil {
			return fmt.Errorf("stored booking has invalid time data: %w", err)
		}

		// 3. Check the slot against the fresh snapshot.
		result, err := scheduling.CheckAvailability(reservations, proposed)
		if err != nil {
			return err
		}
		if !result.Available {
			return &SlotConflictError{Conflicts: result.Conflicts}
		}

		// 4. Insert the booking.
		if err := tx.Create(booking).Error; err != nil {
			return fmt.Errorf("failed to create booking: %w", err)
		}

		return nil
	})
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	var booking Booking
	err := r.db.WithContext(ctx).Preload("Venue").First(&booking, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *repository) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]Booking, int64, error) {
	var rows []Booking
	var total int64

	query := r.db.WithContext(ctx).Model(&Booking{}).Where("created_by = ?", userID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Preload("Venue").
		Order("date DESC, start_time DESC").
		Offset(offset).
		Limit(limit).
		Find(&rows).Error

	return rows, total, err
}

func (r *repository) List(ctx context.Context, query ListQuery) ([]Booking, int64, error) {
	var rows []Booking
	var total int64

	q := r.db.WithContext(ctx).Model(&Booking{})

	if query.Status != "" {
		q = q.Where("status = ?", query.Status)
	}
	if query.VenueID != "" {
		q = q.Where("venue_id = ?", query.VenueID)
	}
	if query.Date != "" {
		q = q.Where("date = ?", query.Date)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (query.Page - 1) * query.Limit
	err := q.
		Preload("Venue").
		Order("created_at DESC").
		Offset(offset).
		Limit(query.Limit).
		Find(&rows).Error

	return rows, total, err
}

func (r *repository) UpdateStatus(ctx context.Context, id uuid.UUID, status BookingStatus, adminNote string, decidedBy *uuid.UUID) error {
	updates := map[string]interface{}{
		"status": status,
	}
	if adminNote != "" {
		updates["admin_note"] = adminNote
	}
	if decidedBy != nil {
		now := time.Now().UTC()
		updates["decided_by"] = *decidedBy
		updates["decided_at"] = &now
	}

	result := r.db.WithContext(ctx).Model(&Booking{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.New("booking not found")
	}
	return nil
}

func (r *repository) ApprovedByUser(ctx context.Context, userID uuid.UUID, limit int) ([]Booking, error) {
	var rows []Booking
	err := r.db.WithContext(ctx).
		Where("created_by = ? AND status = ?", userID, StatusApproved).
		Order("date DESC, start_time DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

func (r *repository) ExpirePendingBefore(ctx context.Context, date string) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&Booking{}).
		Where("status = ? AND date < ?", StatusPending, date).
		Updates(map[string]interface{}{
			"status":     StatusRejected,
			"admin_note": "Expired: event date passed without a decision",
		})
	return result.RowsAffected, result.Error
}
