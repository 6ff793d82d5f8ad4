package screenings

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, screening *Screening) error
	GetByID(ctx context.Context, id uuid.UUID) (*Screening, error)
	ListAvailable(ctx context.Context, now time.Time) ([]Screening, error)
	ListBetween(ctx context.Context, from, to time.Time) ([]Screening, error)
	ListByMovie(ctx context.Context, movieID uuid.UUID) ([]Screening, error)

	// Ledger operations. These are the only write paths for available_seats;
	// both are single conditional UPDATE statements, never read-modify-write.
	ReserveSeats(ctx context.Context, id uuid.UUID, seats int) (bool, error)
	ReleaseSeats(ctx context.Context, id uuid.UUID, seats int) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, screening *Screening) error {
	return r.db.WithContext(ctx).Create(screening).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Screening, error) {
	var screening Screening
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&screening).Error
	if err != nil {
		return nil, err
	}
	return &screening, nil
}

func (r *repository) ListAvailable(ctx context.Context, now time.Time) ([]Screening, error) {
	var screenings []Screening
	err := r.db.WithContext(ctx).
		Where("start_time > ?", now).
		Where("available_seats > 0").
		Order("start_time").
		Find(&screenings).Error
	return screenings, err
}

func (r *repository) ListBetween(ctx context.Context, from, to time.Time) ([]Screening, error) {
	var screenings []Screening
	err := r.db.WithContext(ctx).
		Where("start_time >= ? AND start_time < ?", from, to).
		Where("available_seats > 0").
		Order("start_time").
		Find(&screenings).Error
	return screenings, err
}

func (r *repository) ListByMovie(ctx context.Context, movieID uuid.UUID) ([]Screening, error) {
	var screenings []Screening
	err := r.db.WithContext(ctx).
		Where("movie_id = ?", movieID).
		Order("start_time").
		Find(&screenings).Error
	return screenings, err
}

// ReserveSeats decrements available_seats by seats only while enough remain.
// The guard lives in the WHERE clause so the read-compare-write is a single
// indivisible statement; it stays correct even without the screening lock.
// Returning false means insufficient capacity, not an error.
func (r *repository) ReserveSeats(ctx context.Context, id uuid.UUID, seats int) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&Screening{}).
		Where("id = ? AND available_seats >= ?", id, seats).
		UpdateColumn("available_seats", gorm.Expr("available_seats - ?", seats))

	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// ReleaseSeats increments available_seats by seats, clamped at total_seats so
// a double release can never silently overbook capacity.
func (r *repository) ReleaseSeats(ctx context.Context, id uuid.UUID, seats int) error {
	return r.db.WithContext(ctx).
		Model(&Screening{}).
		Where("id = ?", id).
		UpdateColumn("available_seats", gorm.Expr(
			"CASE WHEN available_seats + ? > total_seats THEN total_seats ELSE available_seats + ? END",
			seats, seats,
		)).Error
}
