package assistant

import (
	"context"
	"testing"
	"time"

	"audease/internal/bookings"
	"audease/internal/scheduling"
	"audease/internal/venues"
	"audease/pkg/cache"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryStore struct {
	sessions map[string]*ChatSession
}

func newMemoryStore() *memoryStore {
	return &memoryStore{sessions: make(map[string]*ChatSession)}
}

func (m *memoryStore) Load(_ context.Context, userID string) (*ChatSession, error) {
	s, ok := m.sessions[userID]
	if !ok {
		return nil, nil
	}
	clone := *s
	return &clone, nil
}

func (m *memoryStore) Save(_ context.Context, userID string, session *ChatSession) error {
	clone := *session
	m.sessions[userID] = &clone
	return nil
}

func (m *memoryStore) Clear(_ context.Context, userID string) error {
	delete(m.sessions, userID)
	return nil
}

type fakeBookingService struct {
	history      []bookings.Booking
	available    bool
	alternatives []bookings.SlotResponse
	created      *bookings.CreateBookingRequest
	slots        []bookings.SlotResponse
}

func (f *fakeBookingService) CheckAvailability(_ context.Context, _ *uuid.UUID, _ bookings.AvailabilityQuery) (*bookings.AvailabilityResponse, error) {
	return &bookings.AvailabilityResponse{
		Available:    f.available,
		Alternatives: f.alternatives,
	}, nil
}

func (f *fakeBookingService) FreeSlots(_ context.Context, _ *uuid.UUID, _ uuid.UUID, _ string, _ int) ([]bookings.SlotResponse, error) {
	return f.slots, nil
}

func (f *fakeBookingService) CreateBooking(_ context.Context, userID uuid.UUID, _ string, req bookings.CreateBookingRequest) (*bookings.BookingResponse, error) {
	f.created = &req
	return &bookings.BookingResponse{
		ID:         uuid.New().String(),
		VenueID:    req.VenueID,
		Date:       req.Date,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		EventTitle: req.EventTitle,
		EventType:  req.EventType,
		Status:     string(bookings.StatusPending),
		CreatedBy:  userID.String(),
	}, nil
}

func (f *fakeBookingService) GetBooking(_ context.Context, _, _ uuid.UUID, _ bool) (*bookings.BookingResponse, error) {
	return nil, bookings.ErrBookingNotFound
}

func (f *fakeBookingService) GetUserBookings(_ context.Context, _ uuid.UUID, _ bookings.HistoryQuery) (*bookings.PaginatedBookings, error) {
	return &bookings.PaginatedBookings{}, nil
}

func (f *fakeBookingService) CancelBooking(_ context.Context, _, _ uuid.UUID) error { return nil }

func (f *fakeBookingService) ListBookings(_ context.Context, _ bookings.ListQuery) (*bookings.PaginatedBookings, error) {
	return &bookings.PaginatedBookings{}, nil
}

func (f *fakeBookingService) DecideBooking(_ context.Context, _, _ uuid.UUID, _ bookings.DecisionRequest) (*bookings.BookingResponse, error) {
	return nil, bookings.ErrBookingNotFound
}

func (f *fakeBookingService) PreferredStartTimes(_ context.Context, _ uuid.UUID) ([]scheduling.TimeOfDay, error) {
	return nil, nil
}

func (f *fakeBookingService) ApprovedHistory(_ context.Context, _ uuid.UUID, _ int) ([]bookings.Booking, error) {
	return f.history, nil
}

func (f *fakeBookingService) ExpireStalePending(_ context.Context) (int64, error) { return 0, nil }

func (f *fakeBookingService) SetCacheService(_ cache.Service) {}

func (f *fakeBookingService) SetNotifier(_ bookings.Notifier) {}

func (f *fakeBookingService) SetUserDirectory(_ bookings.UserDirectory) {}

type fakeVenueService struct {
	catalog []venues.VenueResponse
}

func (f *fakeVenueService) ListVenues(_ context.Context) ([]venues.VenueResponse, error) {
	return f.catalog, nil
}

func (f *fakeVenueService) GetVenue(_ context.Context, id uuid.UUID) (*venues.VenueResponse, error) {
	for _, v := range f.catalog {
		if v.ID == id.String() {
			clone := v
			return &clone, nil
		}
	}
	return nil, venues.ErrVenueNotFound
}

func (f *fakeVenueService) RecommendVenue(_ context.Context, expectedAttendance int) (*venues.RecommendationResponse, error) {
	entries := make([]scheduling.Venue, len(f.catalog))
	for i, v := range f.catalog {
		entries[i] = scheduling.Venue{ID: v.ID, Name: v.Name, Capacity: v.Capacity}
	}
	picked, err := scheduling.RecommendVenue(expectedAttendance, entries)
	if err != nil {
		return nil, err
	}
	return &venues.RecommendationResponse{
		Venue:                venues.VenueResponse{ID: picked.ID, Name: picked.Name, Capacity: picked.Capacity},
		ExpectedAttendance:   expectedAttendance,
		InsufficientCapacity: picked.Capacity < expectedAttendance,
	}, nil
}

func (f *fakeVenueService) CreateVenue(_ context.Context, _ venues.CreateVenueRequest) (*venues.VenueResponse, error) {
	return nil, nil
}

func (f *fakeVenueService) UpdateVenue(_ context.Context, _ uuid.UUID, _ venues.UpdateVenueRequest) (*venues.VenueResponse, error) {
	return nil, nil
}

func (f *fakeVenueService) DeactivateVenue(_ context.Context, _ uuid.UUID) error { return nil }

func (f *fakeVenueService) SetCacheService(_ cache.Service) {}

func testCatalog() []venues.VenueResponse {
	return []venues.VenueResponse{
		{ID: uuid.New().String(), Name: "Conference Room", Capacity: 50},
		{ID: uuid.New().String(), Name: "Seminar Hall B", Capacity: 100},
		{ID: uuid.New().String(), Name: "Seminar Hall A", Capacity: 150},
		{ID: uuid.New().String(), Name: "Main Auditorium", Capacity: 500},
	}
}

func newTestService(booking *fakeBookingService, venue *fakeVenueService) *service {
	return &service{
		bookingService: booking,
		venueService:   venue,
		sessions:       newMemoryStore(),
	}
}

func approvedBooking(venueID uuid.UUID, date, start, end, eventType string) bookings.Booking {
	return bookings.Booking{
		ID:         uuid.New(),
		VenueID:    venueID,
		Date:       date,
		StartTime:  start,
		EndTime:    end,
		EventTitle: "History Entry",
		EventType:  eventType,
		Status:     bookings.StatusApproved,
	}
}

func TestGetSuggestionsNoHistory(t *testing.T) {
	svc := newTestService(&fakeBookingService{}, &fakeVenueService{catalog: testCatalog()})

	resp, err := svc.GetSuggestions(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Empty(t, resp.Suggestions)
	assert.Contains(t, resp.Message, "No booking history")
}

func TestGetSuggestionsPatterns(t *testing.T) {
	catalog := testCatalog()
	hallA, err := uuid.Parse(catalog[2].ID)
	require.NoError(t, err)
	other, err := uuid.Parse(catalog[0].ID)
	require.NoError(t, err)

	// Two Monday seminars at 14:00 in Hall A, one Tuesday workshop elsewhere.
	booking := &fakeBookingService{history: []bookings.Booking{
		approvedBooking(hallA, "2026-03-02", "14:00", "16:00", "Seminar"),
		approvedBooking(hallA, "2026-03-09", "14:00", "16:00", "Seminar"),
		approvedBooking(other, "2026-03-03", "09:00", "10:00", "Workshop"),
	}}
	svc := newTestService(booking, &fakeVenueService{catalog: catalog})

	resp, err := svc.GetSuggestions(context.Background(), uuid.New())
	require.NoError(t, err)
	require.NotNil(t, resp.Patterns)

	assert.Equal(t, catalog[2].ID, resp.Patterns.FavoriteVenueID)
	assert.Equal(t, "Seminar Hall A", resp.Patterns.FavoriteVenueName)
	assert.Equal(t, "Seminar", resp.Patterns.FavoriteEventType)
	assert.Equal(t, "Monday", resp.Patterns.PreferredDays[0])
	assert.Equal(t, "Afternoon", resp.Patterns.PreferredTimeSlots[0])
	// (120 + 120 + 60) / 3
	assert.Equal(t, 100, resp.Patterns.AverageDurationMinutes)
	assert.Equal(t, 3, resp.Patterns.TotalBookings)

	require.Len(t, resp.Suggestions, 4)
	assert.Equal(t, "venue", resp.Suggestions[0].Type)
	assert.Equal(t, "high", resp.Suggestions[0].Priority)
	assert.Equal(t, "time", resp.Suggestions[1].Type)
	assert.Equal(t, "day", resp.Suggestions[2].Type)
	assert.Equal(t, "event_type", resp.Suggestions[3].Type)
}

func TestFindOptimalTime(t *testing.T) {
	booking := &fakeBookingService{slots: []bookings.SlotResponse{
		{StartTime: "14:00", EndTime: "15:00"},
		{StartTime: "08:00", EndTime: "09:00"},
	}}
	svc := newTestService(booking, &fakeVenueService{catalog: testCatalog()})

	resp, err := svc.FindOptimalTime(context.Background(), uuid.New(), OptimalTimeRequest{
		VenueID:         uuid.New().String(),
		Date:            "2026-03-10",
		DurationMinutes: 60,
	})
	require.NoError(t, err)
	require.NotNil(t, resp.OptimalSlot)
	assert.Equal(t, "14:00", resp.OptimalSlot.StartTime)
	assert.Len(t, resp.AvailableSlots, 2)
}

func TestFindOptimalTimeNoSlots(t *testing.T) {
	svc := newTestService(&fakeBookingService{}, &fakeVenueService{catalog: testCatalog()})

	resp, err := svc.FindOptimalTime(context.Background(), uuid.New(), OptimalTimeRequest{
		VenueID:         uuid.New().String(),
		Date:            "2026-03-10",
		DurationMinutes: 60,
	})
	require.NoError(t, err)
	assert.Nil(t, resp.OptimalSlot)
	assert.Contains(t, resp.Message, "No available slots")
}

func TestChatFullFlow(t *testing.T) {
	booking := &fakeBookingService{available: true}
	svc := newTestService(booking, &fakeVenueService{catalog: testCatalog()})
	ctx := context.Background()
	userID := uuid.New()
	futureDate := time.Now().UTC().AddDate(0, 1, 0).Format(time.DateOnly)

	say := func(msg string) *ChatResponse {
		resp, err := svc.Chat(ctx, userID, "student@campus.edu", msg)
		require.NoError(t, err)
		return resp
	}

	resp := say("hi")
	assert.Equal(t, StepEventType, resp.Step)
	assert.NotEmpty(t, resp.Options)

	resp = say("Seminar")
	assert.Equal(t, StepEventTitle, resp.Step)

	resp = say("Compilers Crash Course")
	assert.Equal(t, StepAudienceSize, resp.Step)

	resp = say("120")
	assert.Equal(t, StepConfirmVenue, resp.Step)
	// 120 attendees fit in the 150-seat hall.
	assert.Contains(t, resp.Reply, "Seminar Hall A")

	resp = say("Yes")
	assert.Equal(t, StepDate, resp.Step)

	resp = say(futureDate)
	assert.Equal(t, StepStartTime, resp.Step)

	resp = say("10:00")
	assert.Equal(t, StepEndTime, resp.Step)

	resp = say("12:00")
	assert.Equal(t, StepSummary, resp.Step)
	assert.Contains(t, resp.Reply, "Compilers Crash Course")

	resp = say("Confirm")
	assert.Equal(t, StepComplete, resp.Step)
	require.NotNil(t, resp.Booking)
	assert.Equal(t, "Seminar", resp.Booking.EventType)
	require.NotNil(t, booking.created)
	assert.Equal(t, 120, booking.created.ExpectedAudience)

	// The next message starts a fresh session.
	resp = say("hello again")
	assert.Equal(t, StepEventType, resp.Step)
}

func TestChatValidationRetries(t *testing.T) {
	svc := newTestService(&fakeBookingService{available: true}, &fakeVenueService{catalog: testCatalog()})
	ctx := context.Background()
	userID := uuid.New()

	say := func(msg string) *ChatResponse {
		resp, err := svc.Chat(ctx, userID, "", msg)
		require.NoError(t, err)
		return resp
	}

	say("hi")
	resp := say("Rave")
	assert.Equal(t, StepEventType, resp.Step) // unknown type re-asks

	say("Workshop")
	resp = say("ab")
	assert.Equal(t, StepEventTitle, resp.Step) // too-short title re-asks

	say("Robotics Workshop")
	resp = say("not-a-number")
	assert.Equal(t, StepAudienceSize, resp.Step)

	resp = say("40")
	assert.Equal(t, StepConfirmVenue, resp.Step)
	assert.Contains(t, resp.Reply, "Conference Room")

	resp = say("Choose another venue")
	assert.Equal(t, StepChooseVenue, resp.Step)
	assert.Len(t, resp.Options, 4)

	resp = say("Main Auditorium")
	assert.Equal(t, StepDate, resp.Step)

	resp = say("yesterday")
	assert.Equal(t, StepDate, resp.Step)

	resp = say("2020-01-01")
	assert.Equal(t, StepDate, resp.Step) // past date re-asks
}

func TestChatBusySlotFallsBackToTime(t *testing.T) {
	booking := &fakeBookingService{
		available: false,
		alternatives: []bookings.SlotResponse{
			{StartTime: "15:00", EndTime: "16:00"},
		},
	}
	svc := newTestService(booking, &fakeVenueService{catalog: testCatalog()})
	ctx := context.Background()
	userID := uuid.New()
	futureDate := time.Now().UTC().AddDate(0, 1, 0).Format(time.DateOnly)

	say := func(msg string) *ChatResponse {
		resp, err := svc.Chat(ctx, userID, "", msg)
		require.NoError(t, err)
		return resp
	}

	say("hi")
	say("Lecture")
	say("Algorithms Lecture")
	say("80")
	say("Yes")
	say(futureDate)
	say("14:00")
	resp := say("15:00")

	assert.Equal(t, StepStartTime, resp.Step)
	assert.Contains(t, resp.Reply, "15:00-16:00")
	assert.Empty(t, resp.Draft.StartTime)
}
