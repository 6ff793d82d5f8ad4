package bookings

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, booking *Booking) error
	GetByID(ctx context.Context, id uuid.UUID) (*Booking, error)
	GetByUserEmail(ctx context.Context, email string) ([]Booking, error)
	// UpdateStatusFrom writes the booking's status and transition timestamps
	// only while the stored row is still in one of the from statuses. It
	// reports false when another transition won the race, in the same way
	// the screening ledger reports a lost reserve.
	UpdateStatusFrom(ctx context.Context, booking *Booking, from ...Status) (bool, error)

	// FindExpiredPending lists PENDING bookings created before cutoff. The
	// sweep that drives them to EXPIRED is external orchestration; this
	// repository only exposes the query.
	FindExpiredPending(ctx context.Context, cutoff time.Time, limit int) ([]Booking, error)

	// CountActiveSeats sums seats over PENDING and CONFIRMED bookings for a
	// screening; an audit query for the capacity invariant.
	CountActiveSeats(ctx context.Context, screeningID uuid.UUID) (int, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, booking *Booking) error {
	return r.db.WithContext(ctx).Create(booking).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	var booking Booking
	err := r.db.WithContext(ctx).
		Preload("Screening").
		Where("id = ?", id).
		First(&booking).Error
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *repository) GetByUserEmail(ctx context.Context, email string) ([]Booking, error) {
	var bookings []Booking
	err := r.db.WithContext(ctx).
		Preload("Screening").
		Where("user_email = ?", email).
		Order("created_at DESC").
		Find(&bookings).Error
	return bookings, err
}

func (r *repository) UpdateStatusFrom(ctx context.Context, booking *Booking, from ...Status) (bool, error) {
	updates := map[string]interface{}{
		"status": booking.Status,
	}
	if booking.ConfirmedAt != nil {
		updates["confirmed_at"] = *booking.ConfirmedAt
	}
	if booking.CancelledAt != nil {
		updates["cancelled_at"] = *booking.CancelledAt
	}

	result := r.db.WithContext(ctx).
		Model(&Booking{}).
		Where("id = ?", booking.ID).
		Where("status IN ?", from).
		Updates(updates)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *repository) FindExpiredPending(ctx context.Context, cutoff time.Time, limit int) ([]Booking, error) {
	if limit <= 0 {
		limit = 100
	}

	var bookings []Booking
	err := r.db.WithContext(ctx).
		Where("status = ?", StatusPending).
		Where("created_at < ?", cutoff).
		Order("created_at").
		Limit(limit).
		Find(&bookings).Error
	return bookings, err
}

func (r *repository) CountActiveSeats(ctx context.Context, screeningID uuid.UUID) (int, error) {
	var total int
	err := r.db.WithContext(ctx).
		Model(&Booking{}).
		Where("screening_id = ?", screeningID).
		Where("status IN ?", []Status{StatusPending, StatusConfirmed}).
		Select("COALESCE(SUM(seats), 0)").
		Scan(&total).Error
	return total, err
}
