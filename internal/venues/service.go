package venues

import (
	"context"
	"errors"
	"fmt"
	"time"

	"audease/internal/scheduling"
	"audease/internal/shared/constants"
	"audease/pkg/cache"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrVenueNotFound = errors.New("venue not found")

// Service interface for venue operations
type Service interface {
	ListVenues(ctx context.Context) ([]VenueResponse, error)
	GetVenue(ctx context.Context, id uuid.UUID) (*VenueResponse, error)
	// RecommendVenue picks the smallest active venue whose capacity covers
	// the expected attendance, falling back to the largest one.
	RecommendVenue(ctx context.Context, expectedAttendance int) (*RecommendationResponse, error)

	CreateVenue(ctx context.Context, req CreateVenueRequest) (*VenueResponse, error)
	UpdateVenue(ctx context.Context, id uuid.UUID, req UpdateVenueRequest) (*VenueResponse, error)
	DeactivateVenue(ctx context.Context, id uuid.UUID) error

	SetCacheService(cacheService cache.Service)
}

type service struct {
	repo         Repository
	cacheService cache.Service
}

// NewService creates a new venue service
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

// Cache helper methods
func (s *service) setCache(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if s.cacheService == nil {
		return nil // Skip caching if cache service is not available
	}
	return s.cacheService.Set(ctx, key, value, ttl)
}

func (s *service) getCache(ctx context.Context, key string, dest interface{}) error {
	if s.cacheService == nil {
		return fmt.Errorf("cache service not available")
	}
	return s.cacheService.Get(ctx, key, dest)
}

func (s *service) invalidateCatalogCache(ctx context.Context, venueID *uuid.UUID) {
	if s.cacheService == nil {
		return
	}

	keys := []string{constants.CACHE_KEY_VENUE_CATALOG}
	if venueID != nil {
		keys = append(keys, constants.CACHE_KEY_VENUE_DETAIL+venueID.String())
	}

	for _, key := range keys {
		if err := s.cacheService.Delete(ctx, key); err != nil {
			fmt.Printf("Warning: failed to invalidate venue cache: %v\n", err)
		}
	}
}

func (s *service) ListVenues(ctx context.Context) ([]VenueResponse, error) {
	var cached []VenueResponse
	if err := s.getCache(ctx, constants.CACHE_KEY_VENUE_CATALOG, &cached); err == nil {
		return cached, nil
	}

	catalog, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list venues: %w", err)
	}

	responses := toResponses(catalog)

	if err := s.setCache(ctx, constants.CACHE_KEY_VENUE_CATALOG, responses, constants.TTL_VENUE_CATALOG); err != nil {
		fmt.Printf("Warning: failed to cache venue catalog: %v\n", err)
	}

	return responses, nil
}

func (s *service) GetVenue(ctx context.Context, id uuid.UUID) (*VenueResponse, error) {
	cacheKey := constants.CACHE_KEY_VENUE_DETAIL + id.String()

	var cached VenueResponse
	if err := s.getCache(ctx, cacheKey, &cached); err == nil {
		return &cached, nil
	}

	venue, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVenueNotFound
		}
		return nil, fmt.Errorf("failed to get venue: %w", err)
	}

	response := toResponse(*venue)

	if err := s.setCache(ctx, cacheKey, response, constants.TTL_VENUE_DETAIL); err != nil {
		fmt.Printf("Warning: failed to cache venue detail: %v\n", err)
	}

	return &response, nil
}

func (s *service) RecommendVenue(ctx context.Context, expectedAttendance int) (*RecommendationResponse, error) {
	catalog, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load venue catalog: %w", err)
	}

	picked, err := scheduling.RecommendVenue(expectedAttendance, toSchedulingCatalog(catalog))
	if err != nil {
		return nil, err
	}

	pickedID, err := uuid.Parse(picked.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid venue id in catalog: %w", err)
	}

	return &RecommendationResponse{
		Venue: VenueResponse{
			ID:          picked.ID,
			Name:        picked.Name,
			Capacity:    picked.Capacity,
			Description: picked.Description,
			Location:    locationFor(catalog, pickedID),
		},
		ExpectedAttendance:   expectedAttendance,
		InsufficientCapacity: picked.Capacity < expectedAttendance,
	}, nil
}

func locationFor(catalog []Venue, id uuid.UUID) string {
	for _, v := range catalog {
		if v.ID == id {
			return v.Location
		}
	}
	return ""
}

func (s *service) CreateVenue(ctx context.Context, req CreateVenueRequest) (*VenueResponse, error) {
	if _, err := s.repo.GetByName(ctx, req.Name); err == nil {
		return nil, errors.New("venue with this name already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check venue name: %w", err)
	}

	venue := &Venue{
		Name:        req.Name,
		Capacity:    req.Capacity,
		Description: req.Description,
		Location:    req.Location,
		IsActive:    true,
	}

	if err := s.repo.Create(ctx, venue); err != nil {
		return nil, fmt.Errorf("failed to create venue: %w", err)
	}

	s.invalidateCatalogCache(ctx, nil)

	response := toResponse(*venue)
	return &response, nil
}

func (s *service) UpdateVenue(ctx context.Context, id uuid.UUID, req UpdateVenueRequest) (*VenueResponse, error) {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVenueNotFound
		}
		return nil, fmt.Errorf("failed to get venue: %w", err)
	}

	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Capacity != nil {
		updates["capacity"] = *req.Capacity
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Location != nil {
		updates["location"] = *req.Location
	}

	if len(updates) > 0 {
		if err := s.repo.Update(ctx, id, updates); err != nil {
			return nil, fmt.Errorf("failed to update venue: %w", err)
		}
	}

	s.invalidateCatalogCache(ctx, &id)

	updated, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to reload venue: %w", err)
	}

	response := toResponse(*updated)
	return &response, nil
}

func (s *service) DeactivateVenue(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrVenueNotFound
		}
		return fmt.Errorf("failed to get venue: %w", err)
	}

	if err := s.repo.Deactivate(ctx, id); err != nil {
		return fmt.Errorf("failed to deactivate venue: %w", err)
	}

	s.invalidateCatalogCache(ctx, &id)
	return nil
}
