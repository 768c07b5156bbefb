package bookings

import (
	"time"

	"audease/internal/scheduling"
	"audease/internal/venues"

	"github.com/google/uuid"
)

// Booking is one auditorium reservation request. Date and the two time
// columns are stored as text in the wire format ("YYYY-MM-DD",
// "HH:MM"); the scheduling core parses them on the way in.
type Booking struct {
	ID               uuid.UUID    `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	VenueID          uuid.UUID    `gorm:"type:uuid;not null;index"`
	Venue            venues.Venue `gorm:"foreignKey:VenueID"`
	Date             string       `gorm:"type:varchar(10);not null"`
	StartTime        string       `gorm:"type:varchar(5);not null"`
	EndTime          string       `gorm:"type:varchar(5);not null"`
	EventTitle       string       `gorm:"not null"`
	EventType        string       `gorm:"not null"`
	Description      string
	ExpectedAudience int
	CreatedBy        uuid.UUID     `gorm:"type:uuid;not null;index"`
	Status           BookingStatus `gorm:"type:varchar(20);not null;default:'PENDING'"`
	AdminNote        string
	DecidedBy        *uuid.UUID `gorm:"type:uuid"`
	DecidedAt        *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Interval parses the stored time columns. Stored rows are validated on
// the way in, so a parse failure here means corrupted data.
func (b Booking) Interval() (scheduling.Interval, error) {
	return scheduling.ParseInterval(b.StartTime, b.EndTime)
}

// ToReservation converts a stored booking into the read-only snapshot
// row the scheduling core works on.
func (b Booking) ToReservation() (scheduling.Reservation, error) {
	interval, err := b.Interval()
	if err != nil {
		return scheduling.Reservation{}, err
	}
	return scheduling.Reservation{
		ID:       b.ID.String(),
		Title:    b.EventTitle,
		Interval: interval,
	}, nil
}

func toReservations(rows []Booking) ([]scheduling.Reservation, error) {
	reservations := make([]scheduling.Reservation, 0, len(rows))
	for _, b := range rows {
		r, err := b.ToReservation()
		if err != nil {
			return nil, err
		}
		reservations = append(reservations, r)
	}
	return reservations, nil
}
