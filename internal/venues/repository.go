package venues

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository interface for venue operations
type Repository interface {
	Create(ctx context.Context, venue *Venue) error
	GetByID(ctx context.Context, id uuid.UUID) (*Venue, error)
	GetByName(ctx context.Context, name string) (*Venue, error)
	// ListActive returns the active catalog ordered by ascending capacity,
	// the order the recommendation ladder walks.
	ListActive(ctx context.Context) ([]Venue, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
	Deactivate(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository creates a new venue repository
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, venue *Venue) error {
	return r.db.WithContext(ctx).Create(venue).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Venue, error) {
	var venue Venue
	err := r.db.WithContext(ctx).First(&venue, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &venue, nil
}

func (r *repository) GetByName(ctx context.Context, name string) (*Venue, error) {
	var venue Venue
	err := r.db.WithContext(ctx).First(&venue, "name = ?", name).Error
	if err != nil {
		return nil, err
	}
	return &venue, nil
}

func (r *repository) ListActive(ctx context.Context) ([]Venue, error) {
	var catalog []Venue
	err := r.db.WithContext(ctx).
		Where("is_active = true").
		Order("capacity ASC, name ASC").
		Find(&catalog).Error
	return catalog, err
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&Venue{}).Where("id = ?", id).Updates(updates).Error
}

func (r *repository) Deactivate(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&Venue{}).Where("id = ?", id).Update("is_active", false).Error
}
