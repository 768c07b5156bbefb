package assistant

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"audease/internal/bookings"
	"audease/internal/scheduling"
	"audease/internal/shared/constants"
	"audease/pkg/cache"

	"github.com/google/uuid"
)

// sessionStore persists wizard sessions between chat turns.
type sessionStore interface {
	Load(ctx context.Context, userID string) (*ChatSession, error)
	Save(ctx context.Context, userID string, session *ChatSession) error
	Clear(ctx context.Context, userID string) error
}

type redisSessionStore struct {
	cache cache.Service
	ttl   time.Duration
}

func (r *redisSessionStore) Load(ctx context.Context, userID string) (*ChatSession, error) {
	if r.cache == nil {
		return nil, errors.New("session store not available")
	}
	var session ChatSession
	err := r.cache.Get(ctx, constants.BuildChatSessionKey(userID), &session)
	if err != nil {
		if errors.Is(err, cache.ErrCacheMiss) {
			return nil, nil
		}
		return nil, err
	}
	return &session, nil
}

func (r *redisSessionStore) Save(ctx context.Context, userID string, session *ChatSession) error {
	if r.cache == nil {
		return errors.New("session store not available")
	}
	session.UpdatedAt = time.Now().UTC()
	return r.cache.Set(ctx, constants.BuildChatSessionKey(userID), session, r.ttl)
}

func (r *redisSessionStore) Clear(ctx context.Context, userID string) error {
	if r.cache == nil {
		return nil
	}
	return r.cache.Delete(ctx, constants.BuildChatSessionKey(userID))
}

func (s *service) ResetChat(ctx context.Context, userID uuid.UUID) error {
	return s.sessions.Clear(ctx, userID.String())
}

// Chat is a server-side finite-state wizard: each user message advances
// one step, and the reply tells the client what to ask next.
func (s *service) Chat(ctx context.Context, userID uuid.UUID, userEmail, message string) (*ChatResponse, error) {
	message = strings.TrimSpace(message)

	session, err := s.sessions.Load(ctx, userID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to load chat session: %w", err)
	}

	if session == nil || session.Step == StepComplete {
		session = &ChatSession{Step: StepEventType}
		if err := s.sessions.Save(ctx, userID.String(), session); err != nil {
			return nil, fmt.Errorf("failed to save chat session: %w", err)
		}
		return &ChatResponse{
			Reply:   "Hi there! I'm your booking assistant. What type of event are you planning?",
			Step:    StepEventType,
			Options: bookings.EventTypes(),
		}, nil
	}

	response, err := s.advance(ctx, userID, userEmail, session, message)
	if err != nil {
		return nil, err
	}

	if session.Step == StepComplete {
		if err := s.sessions.Clear(ctx, userID.String()); err != nil {
			fmt.Printf("Warning: failed to clear chat session: %v\n", err)
		}
	} else if err := s.sessions.Save(ctx, userID.String(), session); err != nil {
		return nil, fmt.Errorf("failed to save chat session: %w", err)
	}

	response.Draft = &session.Draft
	return response, nil
}

func (s *service) advance(ctx context.Context, userID uuid.UUID, userEmail string, session *ChatSession, message string) (*ChatResponse, error) {
	switch session.Step {
	case StepEventType:
		return s.handleEventType(session, message)
	case StepEventTitle:
		return s.handleEventTitle(session, message)
	case StepAudienceSize:
		return s.handleAudienceSize(ctx, session, message)
	case StepConfirmVenue:
		return s.handleConfirmVenue(ctx, session, message)
	case StepChooseVenue:
		return s.handleChooseVenue(ctx, session, message)
	case StepDate:
		return s.handleDate(session, message)
	case StepStartTime:
		return s.handleStartTime(session, message)
	case StepEndTime:
		return s.handleEndTime(ctx, userID, session, message)
	case StepSummary:
		return s.handleSummary(ctx, userID, userEmail, session, message)
	default:
		session.Step = StepEventType
		return &ChatResponse{
			Reply:   "Let's start over. What type of event are you planning?",
			Step:    StepEventType,
			Options: bookings.EventTypes(),
		}, nil
	}
}

func (s *service) handleEventType(session *ChatSession, message string) (*ChatResponse, error) {
	for _, t := range bookings.EventTypes() {
		if strings.EqualFold(t, message) {
			session.Draft.EventType = t
			session.Step = StepEventTitle
			return &ChatResponse{
				Reply: "Great! What should we call your event?",
				Step:  StepEventTitle,
			}, nil
		}
	}
	return &ChatResponse{
		Reply:   "Please pick one of the listed event types.",
		Step:    StepEventType,
		Options: bookings.EventTypes(),
	}, nil
}

func (s *service) handleEventTitle(session *ChatSession, message string) (*ChatResponse, error) {
	if len(message) < 3 {
		return &ChatResponse{
			Reply: "That title is a bit short. What should we call your event?",
			Step:  StepEventTitle,
		}, nil
	}
	session.Draft.EventTitle = message
	session.Step = StepAudienceSize
	return &ChatResponse{
		Reply: "How many people are expected to attend?",
		Step:  StepAudienceSize,
	}, nil
}

func (s *service) handleAudienceSize(ctx context.Context, session *ChatSession, message string) (*ChatResponse, error) {
	size, err := strconv.Atoi(message)
	if err != nil || size < 1 {
		return &ChatResponse{
			Reply: "Please enter a valid number of attendees.",
			Step:  StepAudienceSize,
		}, nil
	}
	session.Draft.ExpectedAudience = size

	recommendation, err := s.venueService.RecommendVenue(ctx, size)
	if err != nil {
		return nil, fmt.Errorf("failed to recommend venue: %w", err)
	}

	session.Draft.VenueID = recommendation.Venue.ID
	session.Draft.VenueName = recommendation.Venue.Name
	session.Step = StepConfirmVenue

	reply := fmt.Sprintf("For %d attendees I recommend %s (seats %d). Shall I book that for you?",
		size, recommendation.Venue.Name, recommendation.Venue.Capacity)
	if recommendation.InsufficientCapacity {
		reply = fmt.Sprintf("Our largest venue, %s, seats %d which is below your %d attendees. Use it anyway?",
			recommendation.Venue.Name, recommendation.Venue.Capacity, size)
	}

	return &ChatResponse{
		Reply:   reply,
		Step:    StepConfirmVenue,
		Options: []string{"Yes", "Choose another venue"},
	}, nil
}

func (s *service) handleConfirmVenue(ctx context.Context, session *ChatSession, message string) (*ChatResponse, error) {
	if strings.EqualFold(message, "yes") {
		session.Step = StepDate
		return &ChatResponse{
			Reply: "On which date would you like to host your event? (YYYY-MM-DD)",
			Step:  StepDate,
		}, nil
	}

	catalog, err := s.venueService.ListVenues(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list venues: %w", err)
	}

	options := make([]string, len(catalog))
	for i, v := range catalog {
		options[i] = fmt.Sprintf("%s (seats %d)", v.Name, v.Capacity)
	}

	session.Step = StepChooseVenue
	return &ChatResponse{
		Reply:   "No problem. Which venue would you prefer?",
		Step:    StepChooseVenue,
		Options: options,
	}, nil
}

func (s *service) handleChooseVenue(ctx context.Context, session *ChatSession, message string) (*ChatResponse, error) {
	catalog, err := s.venueService.ListVenues(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list venues: %w", err)
	}

	lowered := strings.ToLower(message)
	for _, v := range catalog {
		if strings.Contains(lowered, strings.ToLower(v.Name)) || strings.EqualFold(message, v.Name) {
			session.Draft.VenueID = v.ID
			session.Draft.VenueName = v.Name
			session.Step = StepDate
			return &ChatResponse{
				Reply: fmt.Sprintf("%s it is. On which date would you like to host your event? (YYYY-MM-DD)", v.Name),
				Step:  StepDate,
			}, nil
		}
	}

	return &ChatResponse{
		Reply: "I couldn't match that venue. Please pick one from the list.",
		Step:  StepChooseVenue,
	}, nil
}

func (s *service) handleDate(session *ChatSession, message string) (*ChatResponse, error) {
	date, err := scheduling.ParseDateStamp(message)
	if err != nil {
		return &ChatResponse{
			Reply: "Please enter a valid date in YYYY-MM-DD format (e.g., 2026-11-25).",
			Step:  StepDate,
		}, nil
	}
	if date.String() < time.Now().UTC().Format(time.DateOnly) {
		return &ChatResponse{
			Reply: "That date has already passed. Please pick a future date (YYYY-MM-DD).",
			Step:  StepDate,
		}, nil
	}

	session.Draft.Date = date.String()
	session.Step = StepStartTime
	return &ChatResponse{
		Reply: "What time should the event start? (24-hour format, e.g., 09:00 or 14:30)",
		Step:  StepStartTime,
	}, nil
}

func (s *service) handleStartTime(session *ChatSession, message string) (*ChatResponse, error) {
	start, err := scheduling.ParseTimeOfDay(message)
	if err != nil {
		return &ChatResponse{
			Reply: "Please enter a valid time in 24-hour format (HH:MM). Examples: 09:00, 14:30, 18:45",
			Step:  StepStartTime,
		}, nil
	}

	session.Draft.StartTime = start.String()
	session.Step = StepEndTime
	return &ChatResponse{
		Reply: "And what time will it end? (24-hour format, HH:MM)",
		Step:  StepEndTime,
	}, nil
}

func (s *service) handleEndTime(ctx context.Context, userID uuid.UUID, session *ChatSession, message string) (*ChatResponse, error) {
	end, err := scheduling.ParseTimeOfDay(message)
	if err != nil {
		return &ChatResponse{
			Reply: "Please enter a valid time in 24-hour format (HH:MM). Examples: 09:00, 14:30, 18:45",
			Step:  StepEndTime,
		}, nil
	}

	start := scheduling.MustTimeOfDay(session.Draft.StartTime)
	if !start.Before(end) {
		return &ChatResponse{
			Reply: "End time must be after start time. Please enter a valid end time.",
			Step:  StepEndTime,
		}, nil
	}

	session.Draft.EndTime = end.String()

	availability, err := s.bookingService.CheckAvailability(ctx, &userID, bookings.AvailabilityQuery{
		VenueID:   session.Draft.VenueID,
		Date:      session.Draft.Date,
		StartTime: session.Draft.StartTime,
		EndTime:   session.Draft.EndTime,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to check availability: %w", err)
	}

	if !availability.Available {
		session.Draft.StartTime = ""
		session.Draft.EndTime = ""
		session.Step = StepStartTime

		reply := "Sorry, that time slot is already booked."
		if len(availability.Alternatives) > 0 {
			alt := availability.Alternatives[0]
			reply = fmt.Sprintf("Sorry, that slot is taken. %s-%s is free. What time should the event start?", alt.StartTime, alt.EndTime)
		} else {
			reply += " What time should the event start?"
		}
		return &ChatResponse{
			Reply: reply,
			Step:  StepStartTime,
		}, nil
	}

	session.Step = StepSummary
	return &ChatResponse{
		Reply: fmt.Sprintf("The venue is free! Here's your summary: %s (%s) at %s on %s, %s-%s, %d attendees. Confirm this booking?",
			session.Draft.EventTitle, session.Draft.EventType, session.Draft.VenueName,
			session.Draft.Date, session.Draft.StartTime, session.Draft.EndTime, session.Draft.ExpectedAudience),
		Step:    StepSummary,
		Options: []string{"Confirm", "Start over"},
	}, nil
}

func (s *service) handleSummary(ctx context.Context, userID uuid.UUID, userEmail string, session *ChatSession, message string) (*ChatResponse, error) {
	if !strings.EqualFold(message, "confirm") {
		session.Step = StepEventType
		session.Draft = BookingDraft{}
		return &ChatResponse{
			Reply:   "Okay, let's start over. What type of event are you planning?",
			Step:    StepEventType,
			Options: bookings.EventTypes(),
		}, nil
	}

	booking, err := s.bookingService.CreateBooking(ctx, userID, userEmail, bookings.CreateBookingRequest{
		VenueID:          session.Draft.VenueID,
		Date:             session.Draft.Date,
		StartTime:        session.Draft.StartTime,
		EndTime:          session.Draft.EndTime,
		EventTitle:       session.Draft.EventTitle,
		EventType:        session.Draft.EventType,
		Description:      "Booked via assistant",
		ExpectedAudience: session.Draft.ExpectedAudience,
	})
	if err != nil {
		var conflictErr *bookings.SlotConflictError
		if errors.As(err, &conflictErr) {
			// Someone grabbed the slot between the check and the confirm.
			session.Draft.StartTime = ""
			session.Draft.EndTime = ""
			session.Step = StepStartTime
			return &ChatResponse{
				Reply: "That slot was just taken by someone else. What time should the event start?",
				Step:  StepStartTime,
			}, nil
		}
		return nil, err
	}

	session.Step = StepComplete
	return &ChatResponse{
		Reply:   "Success! Your booking request has been submitted for approval. You'll receive a notification once an admin reviews it.",
		Step:    StepComplete,
		Booking: booking,
	}, nil
}
