package main

import (
	"fmt"
	"log"
	"os"

	"audease/internal/shared/config"
	"audease/internal/shared/database"
	"audease/internal/users"
	"audease/internal/venues"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Seeder struct {
	db *gorm.DB
}

func main() {
	fmt.Println("Starting AudEase database seeder...")

	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found, using system environment variables")
	}

	cfg := config.Load()

	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	seeder := &Seeder{db: db.GetPostgreSQL()}

	if err := seeder.SeedVenues(); err != nil {
		log.Fatalf("Failed to seed venues: %v", err)
	}
	if err := seeder.SeedAdmin(); err != nil {
		log.Fatalf("Failed to seed admin user: %v", err)
	}

	fmt.Println("Seeding complete")
}

// SeedVenues upserts the campus venue catalog. Re-running the seeder
// refreshes capacity and location but keeps existing bookings intact.
func (s *Seeder) SeedVenues() error {
	catalog := []venues.Venue{
		{
			Name:        "Main Auditorium",
			Capacity:    500,
			Description: "Full-stage auditorium for conferences and cultural events",
			Location:    "Building A, Ground Floor",
			IsActive:    true,
		},
		{
			Name:        "Seminar Hall A",
			Capacity:    150,
			Description: "Tiered seminar hall with projection and recording",
			Location:    "Building B, 2nd Floor",
			IsActive:    true,
		},
		{
			Name:        "Seminar Hall B",
			Capacity:    100,
			Description: "Flat-floor seminar hall suitable for workshops",
			Location:    "Building B, 3rd Floor",
			IsActive:    true,
		},
		{
			Name:        "Conference Room",
			Capacity:    50,
			Description: "Boardroom-style meeting space",
			Location:    "Admin Block, 1st Floor",
			IsActive:    true,
		},
	}

	for _, venue := range catalog {
		err := s.db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoUpdates: clause.AssignmentColumns([]string{"capacity", "description", "location", "is_active"}),
		}).Create(&venue).Error
		if err != nil {
			return fmt.Errorf("failed to seed venue %q: %w", venue.Name, err)
		}
		fmt.Printf("  venue: %s (capacity %d)\n", venue.Name, venue.Capacity)
	}
	return nil
}

// SeedAdmin creates the initial admin account if no admin exists yet.
func (s *Seeder) SeedAdmin() error {
	var count int64
	if err := s.db.Model(&users.User{}).Where("role = ?", users.RoleAdmin).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		fmt.Println("  admin user already present, skipping")
		return nil
	}

	password := getEnv("SEED_ADMIN_PASSWORD", "admin123")
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := users.User{
		FirstName: "Campus",
		LastName:  "Admin",
		Email:     getEnv("SEED_ADMIN_EMAIL", "admin@audease.edu"),
		Password:  string(hashed),
		Role:      users.RoleAdmin,
	}
	if err := s.db.Create(&admin).Error; err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	fmt.Printf("  admin user: %s\n", admin.Email)
	return nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
