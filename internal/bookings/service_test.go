package bookings

import (
	"context"
	"errors"
	"testing"
	"time"

	"audease/internal/scheduling"
	"audease/internal/venues"
	"audease/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeRepo struct {
	bookings map[uuid.UUID]*Booking
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{bookings: make(map[uuid.UUID]*Booking)}
}

func (f *fakeRepo) ListForVenueDate(_ context.Context, venueID uuid.UUID, date string) ([]Booking, error) {
	var rows []Booking
	for _, b := range f.bookings {
		if b.VenueID == venueID && b.Date == date && b.Status.IsLive() {
			rows = append(rows, *b)
		}
	}
	return rows, nil
}

func (f *fakeRepo) CreateWithAvailabilityCheck(ctx context.Context, booking *Booking) error {
	proposed, err := booking.Interval()
	if err != nil {
		return err
	}
	existing, err := f.ListForVenueDate(ctx, booking.VenueID, booking.Date)
	if err != nil {
		return err
	}
	reservations, err := toReservations(existing)
	if err != nil {
		return err
	}
	result, err := scheduling.CheckAvailability(reservations, proposed)
	if err != nil {
		return err
	}
	if !result.Available {
		return &SlotConflictError{Conflicts: result.Conflicts}
	}
	booking.ID = uuid.New()
	booking.CreatedAt = time.Now()
	f.bookings[booking.ID] = booking
	return nil
}

func (f *fakeRepo) GetByID(_ context.Context, id uuid.UUID) (*Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *b
	return &clone, nil
}

func (f *fakeRepo) ListByUser(_ context.Context, userID uuid.UUID, limit, offset int) ([]Booking, int64, error) {
	var rows []Booking
	for _, b := range f.bookings {
		if b.CreatedBy == userID {
			rows = append(rows, *b)
		}
	}
	return rows, int64(len(rows)), nil
}

func (f *fakeRepo) List(_ context.Context, query ListQuery) ([]Booking, int64, error) {
	var rows []Booking
	for _, b := range f.bookings {
		if query.Status != "" && string(b.Status) != query.Status {
			continue
		}
		rows = append(rows, *b)
	}
	return rows, int64(len(rows)), nil
}

func (f *fakeRepo) UpdateStatus(_ context.Context, id uuid.UUID, status BookingStatus, adminNote string, decidedBy *uuid.UUID) error {
	b, ok := f.bookings[id]
	if !ok {
		return errors.New("booking not found")
	}
	b.Status = status
	if adminNote != "" {
		b.AdminNote = adminNote
	}
	if decidedBy != nil {
		now := time.Now()
		b.DecidedBy = decidedBy
		b.DecidedAt = &now
	}
	return nil
}

func (f *fakeRepo) ApprovedByUser(_ context.Context, userID uuid.UUID, limit int) ([]Booking, error) {
	var rows []Booking
	for _, b := range f.bookings {
		if b.CreatedBy == userID && b.Status == StatusApproved {
			rows = append(rows, *b)
		}
	}
	return rows, nil
}

func (f *fakeRepo) ExpirePendingBefore(_ context.Context, date string) (int64, error) {
	var n int64
	for _, b := range f.bookings {
		if b.Status == StatusPending && b.Date < date {
			b.Status = StatusRejected
			b.AdminNote = "Expired: event date passed without a decision"
			n++
		}
	}
	return n, nil
}

type fakeVenueRepo struct {
	venues map[uuid.UUID]*venues.Venue
}

func newFakeVenueRepo(list ...venues.Venue) *fakeVenueRepo {
	f := &fakeVenueRepo{venues: make(map[uuid.UUID]*venues.Venue)}
	for i := range list {
		v := list[i]
		f.venues[v.ID] = &v
	}
	return f
}

func (f *fakeVenueRepo) Create(_ context.Context, v *venues.Venue) error {
	f.venues[v.ID] = v
	return nil
}

func (f *fakeVenueRepo) GetByID(_ context.Context, id uuid.UUID) (*venues.Venue, error) {
	v, ok := f.venues[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return v, nil
}

func (f *fakeVenueRepo) GetByName(_ context.Context, name string) (*venues.Venue, error) {
	for _, v := range f.venues {
		if v.Name == name {
			return v, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeVenueRepo) ListActive(_ context.Context) ([]venues.Venue, error) {
	var list []venues.Venue
	for _, v := range f.venues {
		if v.IsActive {
			list = append(list, *v)
		}
	}
	return list, nil
}

func (f *fakeVenueRepo) Update(_ context.Context, id uuid.UUID, updates map[string]interface{}) error {
	return nil
}

func (f *fakeVenueRepo) Deactivate(_ context.Context, id uuid.UUID) error {
	if v, ok := f.venues[id]; ok {
		v.IsActive = false
	}
	return nil
}

func testWindows(t *testing.T) []scheduling.Interval {
	t.Helper()
	windows, err := scheduling.ParseWindows([]string{"08:00-20:00"})
	require.NoError(t, err)
	return windows
}

func newTestService(t *testing.T, repo Repository, venueRepo venues.Repository) *service {
	t.Helper()
	svc := NewService(repo, venueRepo, testWindows(t), logger.New()).(*service)
	svc.now = func() time.Time {
		return time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	}
	return svc
}

func seminarHall() venues.Venue {
	return venues.Venue{
		ID:       uuid.New(),
		Name:     "Seminar Hall A",
		Capacity: 150,
		IsActive: true,
	}
}

func validRequest(venueID uuid.UUID) CreateBookingRequest {
	return CreateBookingRequest{
		VenueID:          venueID.String(),
		Date:             "2026-03-10",
		StartTime:        "10:00",
		EndTime:          "11:00",
		EventTitle:       "Distributed Systems Guest Lecture",
		EventType:        "Lecture",
		ExpectedAudience: 120,
	}
}

func TestCreateBookingSuccess(t *testing.T) {
	venue := seminarHall()
	repo := newFakeRepo()
	svc := newTestService(t, repo, newFakeVenueRepo(venue))
	userID := uuid.New()

	resp, err := svc.CreateBooking(context.Background(), userID, "student@campus.edu", validRequest(venue.ID))
	require.NoError(t, err)
	assert.Equal(t, string(StatusPending), resp.Status)
	assert.Equal(t, "10:00", resp.StartTime)
	assert.Equal(t, "11:00", resp.EndTime)
	assert.Equal(t, userID.String(), resp.CreatedBy)
}

func TestCreateBookingSlotConflict(t *testing.T) {
	venue := seminarHall()
	repo := newFakeRepo()
	svc := newTestService(t, repo, newFakeVenueRepo(venue))

	_, err := svc.CreateBooking(context.Background(), uuid.New(), "", validRequest(venue.ID))
	require.NoError(t, err)

	// Overlapping request loses.
	req := validRequest(venue.ID)
	req.StartTime = "10:30"
	req.EndTime = "11:30"
	_, err = svc.CreateBooking(context.Background(), uuid.New(), "", req)

	var conflictErr *SlotConflictError
	require.ErrorAs(t, err, &conflictErr)
	require.Len(t, conflictErr.Conflicts, 1)
	assert.Equal(t, "Distributed Systems Guest Lecture", conflictErr.Conflicts[0].Title)

	// Back-to-back request wins.
	req = validRequest(venue.ID)
	req.StartTime = "11:00"
	req.EndTime = "12:00"
	_, err = svc.CreateBooking(context.Background(), uuid.New(), "", req)
	require.NoError(t, err)
}

func TestCreateBookingValidation(t *testing.T) {
	venue := seminarHall()
	svc := newTestService(t, newFakeRepo(), newFakeVenueRepo(venue))
	ctx := context.Background()
	userID := uuid.New()

	req := validRequest(venue.ID)
	req.Date = "2026-02-01"
	_, err := svc.CreateBooking(ctx, userID, "", req)
	assert.ErrorIs(t, err, ErrPastDate)

	req = validRequest(venue.ID)
	req.StartTime = "07:00"
	req.EndTime = "08:30"
	_, err = svc.CreateBooking(ctx, userID, "", req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "working hours")

	req = validRequest(venue.ID)
	req.EventType = "Rave"
	_, err = svc.CreateBooking(ctx, userID, "", req)
	require.Error(t, err)

	req = validRequest(venue.ID)
	req.ExpectedAudience = 500
	_, err = svc.CreateBooking(ctx, userID, "", req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "capacity")

	req = validRequest(venue.ID)
	req.StartTime = "11:00"
	req.EndTime = "10:00"
	_, err = svc.CreateBooking(ctx, userID, "", req)
	var verr *scheduling.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestCheckAvailabilityConflictsAndAlternatives(t *testing.T) {
	venue := seminarHall()
	repo := newFakeRepo()
	svc := newTestService(t, repo, newFakeVenueRepo(venue))
	ctx := context.Background()

	_, err := svc.CreateBooking(ctx, uuid.New(), "", validRequest(venue.ID))
	require.NoError(t, err)

	resp, err := svc.CheckAvailability(ctx, nil, AvailabilityQuery{
		VenueID:   venue.ID.String(),
		Date:      "2026-03-10",
		StartTime: "10:30",
		EndTime:   "11:30",
	})
	require.NoError(t, err)
	assert.False(t, resp.Available)
	require.Len(t, resp.Conflicts, 1)
	require.NotEmpty(t, resp.Alternatives)
	// Earliest gap in the 08:00-20:00 window comes first.
	assert.Equal(t, "08:00", resp.Alternatives[0].StartTime)
	assert.Equal(t, "09:00", resp.Alternatives[0].EndTime)

	free, err := svc.CheckAvailability(ctx, nil, AvailabilityQuery{
		VenueID:   venue.ID.String(),
		Date:      "2026-03-10",
		StartTime: "11:00",
		EndTime:   "12:00",
	})
	require.NoError(t, err)
	assert.True(t, free.Available)
	assert.Empty(t, free.Conflicts)
}

func TestCheckAvailabilityRanksByPreference(t *testing.T) {
	venue := seminarHall()
	repo := newFakeRepo()
	svc := newTestService(t, repo, newFakeVenueRepo(venue))
	ctx := context.Background()
	userID := uuid.New()

	// Two approved 14:00 bookings on other days build the preference.
	for _, date := range []string{"2026-03-02", "2026-03-03"} {
		req := validRequest(venue.ID)
		req.Date = date
		req.StartTime = "14:00"
		req.EndTime = "15:00"
		resp, err := svc.CreateBooking(ctx, userID, "", req)
		require.NoError(t, err)
		id, err := uuid.Parse(resp.ID)
		require.NoError(t, err)
		require.NoError(t, repo.UpdateStatus(ctx, id, StatusApproved, "", nil))
	}

	// Another user's booking splits the target day so a 14:00 gap exists.
	other := validRequest(venue.ID)
	other.StartTime = "13:00"
	other.EndTime = "14:00"
	_, err := svc.CreateBooking(ctx, uuid.New(), "", other)
	require.NoError(t, err)

	resp, err := svc.CheckAvailability(ctx, &userID, AvailabilityQuery{
		VenueID:   venue.ID.String(),
		Date:      "2026-03-10",
		StartTime: "10:00",
		EndTime:   "11:00",
	})
	require.NoError(t, err)
	require.Len(t, resp.Alternatives, 2)
	// 14:00 outranks the earlier 08:00 slot because of history.
	assert.Equal(t, "14:00", resp.Alternatives[0].StartTime)
	assert.Equal(t, "08:00", resp.Alternatives[1].StartTime)
}

func TestCancelBooking(t *testing.T) {
	venue := seminarHall()
	repo := newFakeRepo()
	svc := newTestService(t, repo, newFakeVenueRepo(venue))
	ctx := context.Background()
	owner := uuid.New()

	resp, err := svc.CreateBooking(ctx, owner, "", validRequest(venue.ID))
	require.NoError(t, err)
	bookingID, err := uuid.Parse(resp.ID)
	require.NoError(t, err)

	err = svc.CancelBooking(ctx, bookingID, uuid.New())
	assert.ErrorIs(t, err, ErrNotOwner)

	require.NoError(t, svc.CancelBooking(ctx, bookingID, owner))

	stored, err := repo.GetByID(ctx, bookingID)
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, stored.Status)

	err = svc.CancelBooking(ctx, bookingID, owner)
	assert.ErrorIs(t, err, ErrNotCancellable)

	err = svc.CancelBooking(ctx, uuid.New(), owner)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestCancelledBookingFreesSlot(t *testing.T) {
	venue := seminarHall()
	repo := newFakeRepo()
	svc := newTestService(t, repo, newFakeVenueRepo(venue))
	ctx := context.Background()
	owner := uuid.New()

	resp, err := svc.CreateBooking(ctx, owner, "", validRequest(venue.ID))
	require.NoError(t, err)
	bookingID, err := uuid.Parse(resp.ID)
	require.NoError(t, err)
	require.NoError(t, svc.CancelBooking(ctx, bookingID, owner))

	// The same slot is bookable again.
	_, err = svc.CreateBooking(ctx, uuid.New(), "", validRequest(venue.ID))
	require.NoError(t, err)
}

func TestDecideBooking(t *testing.T) {
	venue := seminarHall()
	repo := newFakeRepo()
	svc := newTestService(t, repo, newFakeVenueRepo(venue))
	ctx := context.Background()
	adminID := uuid.New()

	resp, err := svc.CreateBooking(ctx, uuid.New(), "", validRequest(venue.ID))
	require.NoError(t, err)
	bookingID, err := uuid.Parse(resp.ID)
	require.NoError(t, err)

	decided, err := svc.DecideBooking(ctx, bookingID, adminID, DecisionRequest{
		Action:    "APPROVED",
		AdminNote: "Approved for the CS department",
	})
	require.NoError(t, err)
	assert.Equal(t, string(StatusApproved), decided.Status)
	assert.Equal(t, "Approved for the CS department", decided.AdminNote)
	require.NotNil(t, decided.DecidedAt)

	_, err = svc.DecideBooking(ctx, bookingID, adminID, DecisionRequest{Action: "REJECTED"})
	assert.ErrorIs(t, err, ErrAlreadyDecided)
}

func TestRejectedBookingFreesSlot(t *testing.T) {
	venue := seminarHall()
	repo := newFakeRepo()
	svc := newTestService(t, repo, newFakeVenueRepo(venue))
	ctx := context.Background()

	resp, err := svc.CreateBooking(ctx, uuid.New(), "", validRequest(venue.ID))
	require.NoError(t, err)
	bookingID, err := uuid.Parse(resp.ID)
	require.NoError(t, err)

	_, err = svc.DecideBooking(ctx, bookingID, uuid.New(), DecisionRequest{
		Action:    "REJECTED",
		AdminNote: "Venue reserved for exams",
	})
	require.NoError(t, err)

	_, err = svc.CreateBooking(ctx, uuid.New(), "", validRequest(venue.ID))
	require.NoError(t, err)
}

func TestExpireStalePending(t *testing.T) {
	venue := seminarHall()
	repo := newFakeRepo()
	svc := newTestService(t, repo, newFakeVenueRepo(venue))
	ctx := context.Background()

	stale := &Booking{
		VenueID:    venue.ID,
		Date:       "2026-02-20",
		StartTime:  "10:00",
		EndTime:    "11:00",
		EventTitle: "Old Workshop",
		EventType:  "Workshop",
		CreatedBy:  uuid.New(),
		Status:     StatusPending,
	}
	require.NoError(t, repo.CreateWithAvailabilityCheck(ctx, stale))

	_, err := svc.CreateBooking(ctx, uuid.New(), "", validRequest(venue.ID))
	require.NoError(t, err)

	expired, err := svc.ExpireStalePending(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), expired)

	stored, err := repo.GetByID(ctx, stale.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusRejected, stored.Status)
}

func TestPreferredStartTimes(t *testing.T) {
	venue := seminarHall()
	repo := newFakeRepo()
	svc := newTestService(t, repo, newFakeVenueRepo(venue))
	ctx := context.Background()
	userID := uuid.New()

	req := validRequest(venue.ID)
	req.StartTime = "14:00"
	req.EndTime = "15:00"
	resp, err := svc.CreateBooking(ctx, userID, "", req)
	require.NoError(t, err)
	id, err := uuid.Parse(resp.ID)
	require.NoError(t, err)
	require.NoError(t, repo.UpdateStatus(ctx, id, StatusApproved, "", nil))

	times, err := svc.PreferredStartTimes(ctx, userID)
	require.NoError(t, err)
	require.Len(t, times, 1)
	assert.Equal(t, "14:00", times[0].String())

	// Pending bookings do not count.
	times, err = svc.PreferredStartTimes(ctx, uuid.New())
	require.NoError(t, err)
	assert.Empty(t, times)
}
