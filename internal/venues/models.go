package venues

import (
	"time"

	"github.com/google/uuid"
)

// Venue is one bookable auditorium or hall. The catalog is small and
// mostly static; capacity drives the recommendation ladder.
type Venue struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Name        string    `gorm:"uniqueIndex;not null"`
	Capacity    int       `gorm:"not null"`
	Description string
	Location    string
	IsActive    bool `gorm:"default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
