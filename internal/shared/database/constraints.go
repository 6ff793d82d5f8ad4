package database

import (
	"gorm.io/gorm"
)

// MigrateConstraints adds database constraints that back the seat counter
// invariants independently of application code
func MigrateConstraints(db *gorm.DB) error {
	// Seat counter can never go negative or exceed capacity
	err := db.Exec(`
		ALTER TABLE screenings
		ADD CONSTRAINT IF NOT EXISTS chk_available_seats_range
		CHECK (available_seats >= 0 AND available_seats <= total_seats);
	`).Error
	if err != nil {
		return err
	}

	// Index for the expiry sweep over stale pending bookings
	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_bookings_status_created_at
		ON bookings (status, created_at);
	`).Error
	if err != nil {
		return err
	}

	// Index for booking lookups by requester
	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_bookings_user_email
		ON bookings (user_email);
	`).Error
	if err != nil {
		return err
	}

	return nil
}
