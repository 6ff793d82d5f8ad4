package bookings

import (
	"time"

	"cinebook/internal/screenings"
	"cinebook/pkg/apperrors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Booking design constants. These are fixed design decisions, not runtime
// configuration.
const (
	// MinSeats and MaxSeats bound a single booking request.
	MinSeats = 1
	MaxSeats = 10

	// BookingCutoff closes admissions this long before the screening starts.
	BookingCutoff = 30 * time.Minute

	// PendingExpiry is how long a booking may stay PENDING before the
	// external sweep may drive it to EXPIRED.
	PendingExpiry = 15 * time.Minute
)

// Booking defines a seat reservation against a screening. TotalPrice is fixed
// at creation and never recomputed; Status only moves forward through the
// lifecycle graph.
type Booking struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	ScreeningID uuid.UUID       `gorm:"type:uuid;index;not null" json:"screening_id"`
	UserEmail   string          `gorm:"not null;size:255;index" json:"user_email"`
	Seats       int             `gorm:"not null;check:seats >= 1" json:"seats"`
	TotalPrice  decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total_price"`
	Status      Status          `gorm:"type:varchar(20);not null;default:'PENDING'" json:"status"`
	CreatedAt   time.Time       `gorm:"not null;index" json:"created_at"`
	ConfirmedAt *time.Time      `json:"confirmed_at,omitempty"`
	CancelledAt *time.Time      `json:"cancelled_at,omitempty"`

	// Non-owning reference to the screening.
	Screening *screenings.Screening `json:"screening,omitempty" gorm:"foreignKey:ScreeningID;constraint:OnDelete:RESTRICT;"`
}

// TableName sets the table name for Booking
func (Booking) TableName() string {
	return "bookings"
}

func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	if b.Status == "" {
		b.Status = StatusPending
	}
	return nil
}

// Confirm moves the booking PENDING->CONFIRMED and stamps ConfirmedAt.
func (b *Booking) Confirm(now time.Time) error {
	if !b.Status.CanConfirm() {
		return apperrors.StateConflict("confirm", b.Status.String())
	}
	b.Status = StatusConfirmed
	b.ConfirmedAt = &now
	return nil
}

// Cancel moves the booking PENDING|CONFIRMED->CANCELLED and stamps
// CancelledAt. Releasing the reserved seats is the caller's step.
func (b *Booking) Cancel(now time.Time) error {
	if !b.Status.CanBeCancelled() {
		return apperrors.StateConflict("cancel", b.Status.String())
	}
	b.Status = StatusCancelled
	b.CancelledAt = &now
	return nil
}

// Expire moves the booking PENDING->EXPIRED once it has been pending longer
// than PendingExpiry. It does not release seats: that is an explicit
// operational decision of the external sweep, not part of the transition.
func (b *Booking) Expire(now time.Time) error {
	if !b.Status.CanExpire() {
		return apperrors.StateConflict("expire", b.Status.String())
	}
	if now.Sub(b.CreatedAt) <= PendingExpiry {
		return apperrors.StateConflict("expire", b.Status.String())
	}
	b.Status = StatusExpired
	return nil
}

// IsExpired reports whether a PENDING booking has outlived its expiry window.
func (b *Booking) IsExpired(now time.Time) bool {
	return b.Status == StatusPending && now.Sub(b.CreatedAt) > PendingExpiry
}

// IsOwnedBy compares the requester identity against the booking owner.
// Identities are stored normalized, so the caller must normalize first.
func (b *Booking) IsOwnedBy(normalizedEmail string) bool {
	return b.UserEmail == normalizedEmail
}

// CreateBookingRequest represents a booking creation request
type CreateBookingRequest struct {
	ScreeningID string `json:"screening_id" binding:"required,uuid"`
	UserEmail   string `json:"user_email" binding:"required,email"`
	Seats       int    `json:"seats" binding:"required,min=1,max=10"`
}

// CancelBookingRequest identifies the requester asking for a cancellation.
type CancelBookingRequest struct {
	UserEmail string `json:"user_email" binding:"required,email"`
}

// BookingResponse represents a booking in API responses
type BookingResponse struct {
	ID          string          `json:"id"`
	ScreeningID string          `json:"screening_id"`
	UserEmail   string          `json:"user_email"`
	Seats       int             `json:"seats"`
	TotalPrice  decimal.Decimal `json:"total_price"`
	Status      Status          `json:"status"`
	Message     string          `json:"message"`
	CreatedAt   time.Time       `json:"created_at"`
	ConfirmedAt *time.Time      `json:"confirmed_at,omitempty"`
	CancelledAt *time.Time      `json:"cancelled_at,omitempty"`
}

// ToResponse converts a Booking to its API representation.
func (b *Booking) ToResponse() BookingResponse {
	return BookingResponse{
		ID:          b.ID.String(),
		ScreeningID: b.ScreeningID.String(),
		UserEmail:   b.UserEmail,
		Seats:       b.Seats,
		TotalPrice:  b.TotalPrice,
		Status:      b.Status,
		Message:     b.Status.Message(),
		CreatedAt:   b.CreatedAt,
		ConfirmedAt: b.ConfirmedAt,
		CancelledAt: b.CancelledAt,
	}
}
