package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"audease/internal/scheduling"
	"audease/internal/shared/constants"
	"audease/internal/users"
	"audease/internal/venues"
	"audease/pkg/cache"
	"audease/pkg/logger"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrBookingNotFound = errors.New("booking not found")
	ErrNotOwner        = errors.New("booking belongs to another user")
	ErrNotCancellable  = errors.New("booking can no longer be cancelled")
	ErrAlreadyDecided  = errors.New("booking has already been decided")
	ErrPastDate        = errors.New("date is in the past")
	ErrInvalidAction   = errors.New("invalid decision action")
)

// Notification event types published on the booking lifecycle.
const (
	EventBookingSubmitted = "booking.submitted"
	EventBookingApproved  = "booking.approved"
	EventBookingRejected  = "booking.rejected"
	EventBookingCancelled = "booking.cancelled"
)

// NotificationEvent is the payload handed to the notification pipeline.
type NotificationEvent struct {
	Type       string `json:"type"`
	BookingID  string `json:"booking_id"`
	UserID     string `json:"user_id"`
	UserEmail  string `json:"user_email"`
	VenueName  string `json:"venue_name"`
	Date       string `json:"date"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	EventTitle string `json:"event_title"`
	AdminNote  string `json:"admin_note,omitempty"`
}

// Notifier publishes booking lifecycle events. Implementations must not
// block the request path on broker availability.
type Notifier interface {
	NotifyBookingEvent(ctx context.Context, event NotificationEvent) error
}

// UserDirectory resolves booking owners to notification recipients.
// Satisfied by the auth repository.
type UserDirectory interface {
	GetUserByID(ctx context.Context, id string) (*users.User, error)
}

// Service interface for booking operations
type Service interface {
	// CheckAvailability answers whether the requested slot is free and
	// proposes alternatives of the same duration, best-ranked first when
	// the caller has booking history.
	CheckAvailability(ctx context.Context, userID *uuid.UUID, query AvailabilityQuery) (*AvailabilityResponse, error)
	// FreeSlots lists bookable slots of the given duration for one venue
	// and date, best-ranked first when the caller has booking history.
	FreeSlots(ctx context.Context, userID *uuid.UUID, venueID uuid.UUID, date string, durationMinutes int) ([]SlotResponse, error)
	CreateBooking(ctx context.Context, userID uuid.UUID, userEmail string, req CreateBookingRequest) (*BookingResponse, error)
	GetBooking(ctx context.Context, bookingID, requesterID uuid.UUID, isAdmin bool) (*BookingResponse, error)
	GetUserBookings(ctx context.Context, userID uuid.UUID, query HistoryQuery) (*PaginatedBookings, error)
	CancelBooking(ctx context.Context, bookingID, userID uuid.UUID) error
	ListBookings(ctx context.Context, query ListQuery) (*PaginatedBookings, error)
	DecideBooking(ctx context.Context, bookingID, adminID uuid.UUID, req DecisionRequest) (*BookingResponse, error)

	// PreferredStartTimes returns the start times of the user's recent
	// approved bookings, for preference ranking.
	PreferredStartTimes(ctx context.Context, userID uuid.UUID) ([]scheduling.TimeOfDay, error)
	// ApprovedHistory exposes the raw approved-booking feed for the
	// assistant's pattern analysis.
	ApprovedHistory(ctx context.Context, userID uuid.UUID, limit int) ([]Booking, error)
	// ExpireStalePending rejects pending bookings whose date has passed.
	ExpireStalePending(ctx context.Context) (int64, error)

	SetCacheService(cacheService cache.Service)
	SetNotifier(notifier Notifier)
	SetUserDirectory(directory UserDirectory)
}

type service struct {
	repo           Repository
	venueRepo      venues.Repository
	workingWindows []scheduling.Interval
	log            *logger.Logger
	cacheService   cache.Service
	notifier       Notifier
	userDirectory  UserDirectory
	now            func() time.Time
}

// NewService creates a new booking service. workingWindows come from
// configuration and apply uniformly to every venue.
func NewService(repo Repository, venueRepo venues.Repository, workingWindows []scheduling.Interval, log *logger.Logger) Service {
	return &service{
		repo:           repo,
		venueRepo:      venueRepo,
		workingWindows: workingWindows,
		log:            log,
		now:            time.Now,
	}
}

func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

func (s *service) SetNotifier(notifier Notifier) {
	s.notifier = notifier
}

func (s *service) SetUserDirectory(directory UserDirectory) {
	s.userDirectory = directory
}

// Cache helper methods
func (s *service) getCache(ctx context.Context, key string, dest interface{}) error {
	if s.cacheService == nil {
		return fmt.Errorf("cache service not available")
	}
	return s.cacheService.Get(ctx, key, dest)
}

func (s *service) setCache(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	if s.cacheService == nil {
		return
	}
	if err := s.cacheService.Set(ctx, key, value, ttl); err != nil {
		fmt.Printf("Warning: failed to cache day availability: %v\n", err)
	}
}

func (s *service) invalidateDayCache(ctx context.Context, venueID uuid.UUID, date string) {
	if s.cacheService == nil {
		return
	}
	key := constants.BuildDayAvailabilityKey(venueID.String(), date)
	if err := s.cacheService.Delete(ctx, key); err != nil {
		fmt.Printf("Warning: failed to invalidate day availability cache: %v\n", err)
	}
}

func (s *service) notify(ctx context.Context, event NotificationEvent) {
	if s.notifier == nil {
		return
	}
	// Admin decisions and cancels know only the owner's id.
	if event.UserEmail == "" && s.userDirectory != nil {
		if owner, err := s.userDirectory.GetUserByID(ctx, event.UserID); err == nil {
			event.UserEmail = owner.Email
		}
	}
	if err := s.notifier.NotifyBookingEvent(ctx, event); err != nil {
		s.log.ErrorWithContext(ctx, "Failed to publish booking notification", err, map[string]interface{}{
			"booking_id": event.BookingID,
			"type":       event.Type,
		})
	}
}

// dayReservations loads the live reservation snapshot for one venue and
// date, through a short-TTL cache.
func (s *service) dayReservations(ctx context.Context, venueID uuid.UUID, date string) ([]scheduling.Reservation, error) {
	cacheKey := constants.BuildDayAvailabilityKey(venueID.String(), date)

	var cached []scheduling.Reservation
	if err := s.getCache(ctx, cacheKey, &cached); err == nil {
		return cached, nil
	}

	rows, err := s.repo.ListForVenueDate(ctx, venueID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to load bookings: %w", err)
	}

	reservations, err := toReservations(rows)
	if err != nil {
		return nil, fmt.Errorf("stored booking has invalid time data: %w", err)
	}

	s.setCache(ctx, cacheKey, reservations, constants.TTL_DAY_AVAILABILITY)
	return reservations, nil
}

func (s *service) CheckAvailability(ctx context.Context, userID *uuid.UUID, query AvailabilityQuery) (*AvailabilityResponse, error) {
	venueID, err := uuid.Parse(query.VenueID)
	if err != nil {
		return nil, errors.New("invalid venue id")
	}

	if _, err := scheduling.ParseDateStamp(query.Date); err != nil {
		return nil, err
	}
	proposed, err := scheduling.ParseInterval(query.StartTime, query.EndTime)
	if err != nil {
		return nil, err
	}

	if _, err := s.venueRepo.GetByID(ctx, venueID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, venues.ErrVenueNotFound
		}
		return nil, fmt.Errorf("failed to get venue: %w", err)
	}

	reservations, err := s.dayReservations(ctx, venueID, query.Date)
	if err != nil {
		return nil, err
	}

	result, err := scheduling.CheckAvailability(reservations, proposed)
	if err != nil {
		return nil, err
	}

	slots, err := scheduling.FindFreeSlots(reservations, proposed.DurationMinutes(), s.workingWindows)
	if err != nil {
		return nil, err
	}

	if userID != nil {
		preferred, err := s.PreferredStartTimes(ctx, *userID)
		if err == nil {
			slots = scheduling.RankByPreference(slots, preferred)
		}
	}

	return &AvailabilityResponse{
		Available:    result.Available,
		Conflicts:    result.Conflicts,
		Alternatives: toSlotResponses(slots),
	}, nil
}

func (s *service) FreeSlots(ctx context.Context, userID *uuid.UUID, venueID uuid.UUID, date string, durationMinutes int) ([]SlotResponse, error) {
	if _, err := scheduling.ParseDateStamp(date); err != nil {
		return nil, err
	}

	if _, err := s.venueRepo.GetByID(ctx, venueID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, venues.ErrVenueNotFound
		}
		return nil, fmt.Errorf("failed to get venue: %w", err)
	}

	reservations, err := s.dayReservations(ctx, venueID, date)
	if err != nil {
		return nil, err
	}

	slots, err := scheduling.FindFreeSlots(reservations, durationMinutes, s.workingWindows)
	if err != nil {
		return nil, err
	}

	if userID != nil {
		preferred, err := s.PreferredStartTimes(ctx, *userID)
		if err == nil {
			slots = scheduling.RankByPreference(slots, preferred)
		}
	}

	return toSlotResponses(slots), nil
}

func (s *service) CreateBooking(ctx context.Context, userID uuid.UUID, userEmail string, req CreateBookingRequest) (*BookingResponse, error) {
	venueID, err := uuid.Parse(req.VenueID)
	if err != nil {
		return nil, errors.New("invalid venue id")
	}

	date, err := scheduling.ParseDateStamp(req.Date)
	if err != nil {
		return nil, err
	}
	if s.isPastDate(date) {
		return nil, ErrPastDate
	}

	proposed, err := scheduling.ParseInterval(req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}
	if !s.insideWorkingHours(proposed) {
		return nil, errors.New("requested slot is outside working hours")
	}

	if !IsValidEventType(req.EventType) {
		return nil, fmt.Errorf("unknown event type %q", req.EventType)
	}

	venue, err := s.venueRepo.GetByID(ctx, venueID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, venues.ErrVenueNotFound
		}
		return nil, fmt.Errorf("failed to get venue: %w", err)
	}
	if !venue.IsActive {
		return nil, venues.ErrVenueNotFound
	}
	if req.ExpectedAudience > venue.Capacity {
		return nil, fmt.Errorf("expected audience %d exceeds venue capacity %d", req.ExpectedAudience, venue.Capacity)
	}

	booking := &Booking{
		VenueID:          venueID,
		Date:             req.Date,
		StartTime:        proposed.Start.String(),
		EndTime:          proposed.End.String(),
		EventTitle:       req.EventTitle,
		EventType:        req.EventType,
		Description:      req.Description,
		ExpectedAudience: req.ExpectedAudience,
		CreatedBy:        userID,
		Status:           StatusPending,
	}

	if err := s.repo.CreateWithAvailabilityCheck(ctx, booking); err != nil {
		return nil, err
	}

	s.invalidateDayCache(ctx, venueID, req.Date)
	s.log.LogBookingSubmitted(ctx, booking.ID.String(), venueID.String(), userID.String())
	s.notify(ctx, NotificationEvent{
		Type:       EventBookingSubmitted,
		BookingID:  booking.ID.String(),
		UserID:     userID.String(),
		UserEmail:  userEmail,
		VenueName:  venue.Name,
		Date:       booking.Date,
		StartTime:  booking.StartTime,
		EndTime:    booking.EndTime,
		EventTitle: booking.EventTitle,
	})

	booking.Venue = *venue
	response := toBookingResponse(*booking)
	return &response, nil
}

func (s *service) GetBooking(ctx context.Context, bookingID, requesterID uuid.UUID, isAdmin bool) (*BookingResponse, error) {
	booking, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}

	if !isAdmin && booking.CreatedBy != requesterID {
		return nil, ErrNotOwner
	}

	response := toBookingResponse(*booking)
	return &response, nil
}

func (s *service) GetUserBookings(ctx context.Context, userID uuid.UUID, query HistoryQuery) (*PaginatedBookings, error) {
	page := query.Page
	if page < 1 {
		page = 1
	}
	limit := query.Limit
	if limit < 1 {
		limit = 20
	}

	rows, total, err := s.repo.ListByUser(ctx, userID, limit, (page-1)*limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}

	return &PaginatedBookings{
		Bookings:   toBookingResponses(rows),
		TotalCount: total,
		Page:       page,
		Limit:      limit,
		TotalPages: int((total + int64(limit) - 1) / int64(limit)),
	}, nil
}

func (s *service) CancelBooking(ctx context.Context, bookingID, userID uuid.UUID) error {
	booking, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBookingNotFound
		}
		return fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.CreatedBy != userID {
		return ErrNotOwner
	}
	if !booking.Status.CanBeCancelled() {
		return ErrNotCancellable
	}

	date, err := scheduling.ParseDateStamp(booking.Date)
	if err == nil && s.isPastDate(date) {
		return ErrNotCancellable
	}

	if err := s.repo.UpdateStatus(ctx, bookingID, StatusCancelled, "", nil); err != nil {
		return fmt.Errorf("failed to cancel booking: %w", err)
	}

	s.invalidateDayCache(ctx, booking.VenueID, booking.Date)
	s.log.LogBookingCancelled(ctx, bookingID.String(), booking.VenueID.String(), userID.String())
	s.notify(ctx, NotificationEvent{
		Type:       EventBookingCancelled,
		BookingID:  bookingID.String(),
		UserID:     userID.String(),
		VenueName:  booking.Venue.Name,
		Date:       booking.Date,
		StartTime:  booking.StartTime,
		EndTime:    booking.EndTime,
		EventTitle: booking.EventTitle,
	})

	return nil
}

func (s *service) ListBookings(ctx context.Context, query ListQuery) (*PaginatedBookings, error) {
	if query.Page < 1 {
		query.Page = 1
	}
	if query.Limit < 1 {
		query.Limit = 20
	}

	rows, total, err := s.repo.List(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}

	return &PaginatedBookings{
		Bookings:   toBookingResponses(rows),
		TotalCount: total,
		Page:       query.Page,
		Limit:      query.Limit,
		TotalPages: int((total + int64(query.Limit) - 1) / int64(query.Limit)),
	}, nil
}

func (s *service) DecideBooking(ctx context.Context, bookingID, adminID uuid.UUID, req DecisionRequest) (*BookingResponse, error) {
	booking, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}

	if !booking.Status.CanBeDecided() {
		return nil, ErrAlreadyDecided
	}

	var newStatus BookingStatus
	var eventType string
	switch req.Action {
	case string(StatusApproved):
		newStatus = StatusApproved
		eventType = EventBookingApproved
	case string(StatusRejected):
		newStatus = StatusRejected
		eventType = EventBookingRejected
	default:
		return nil, ErrInvalidAction
	}

	if err := s.repo.UpdateStatus(ctx, bookingID, newStatus, req.AdminNote, &adminID); err != nil {
		return nil, fmt.Errorf("failed to update booking status: %w", err)
	}

	// A rejection frees the slot; an approval keeps it occupied but the
	// snapshot rows change status either way.
	s.invalidateDayCache(ctx, booking.VenueID, booking.Date)
	s.log.LogBookingDecision(ctx, bookingID.String(), string(newStatus), adminID.String())
	s.notify(ctx, NotificationEvent{
		Type:       eventType,
		BookingID:  bookingID.String(),
		UserID:     booking.CreatedBy.String(),
		VenueName:  booking.Venue.Name,
		Date:       booking.Date,
		StartTime:  booking.StartTime,
		EndTime:    booking.EndTime,
		EventTitle: booking.EventTitle,
		AdminNote:  req.AdminNote,
	})

	updated, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload booking: %w", err)
	}

	response := toBookingResponse(*updated)
	return &response, nil
}

// preferredHistoryLimit caps how much approved history feeds ranking.
const preferredHistoryLimit = 50

func (s *service) PreferredStartTimes(ctx context.Context, userID uuid.UUID) ([]scheduling.TimeOfDay, error) {
	rows, err := s.repo.ApprovedByUser(ctx, userID, preferredHistoryLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load booking history: %w", err)
	}

	times := make([]scheduling.TimeOfDay, 0, len(rows))
	for _, b := range rows {
		t, err := scheduling.ParseTimeOfDay(b.StartTime)
		if err != nil {
			continue
		}
		times = append(times, t)
	}
	return times, nil
}

func (s *service) ApprovedHistory(ctx context.Context, userID uuid.UUID, limit int) ([]Booking, error) {
	if limit < 1 {
		limit = preferredHistoryLimit
	}
	return s.repo.ApprovedByUser(ctx, userID, limit)
}

func (s *service) ExpireStalePending(ctx context.Context) (int64, error) {
	today := s.now().UTC().Format(time.DateOnly)
	expired, err := s.repo.ExpirePendingBefore(ctx, today)
	if err != nil {
		return 0, fmt.Errorf("failed to expire stale bookings: %w", err)
	}
	if expired > 0 {
		s.log.InfoWithContext(ctx, "Expired stale pending bookings", map[string]interface{}{
			"count": expired,
		})
	}
	return expired, nil
}

func (s *service) isPastDate(date scheduling.DateStamp) bool {
	today := s.now().UTC().Format(time.DateOnly)
	return date.String() < today
}

func (s *service) insideWorkingHours(proposed scheduling.Interval) bool {
	for _, w := range s.workingWindows {
		if !proposed.Start.Before(w.Start) && !w.End.Before(proposed.End) {
			return true
		}
	}
	return false
}
