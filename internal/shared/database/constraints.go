package database

import (
	"gorm.io/gorm"
)

// MigrateConstraints adds indexes the availability queries depend on.
func MigrateConstraints(db *gorm.DB) error {
	// Availability checks always filter on (venue, date, status).
	err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_bookings_venue_date_status
		ON bookings (venue_id, date, status);
	`).Error
	if err != nil {
		return err
	}

	// User history listings and the preference feed.
	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_bookings_created_by_status
		ON bookings (created_by, status);
	`).Error
	if err != nil {
		return err
	}

	return nil
}
