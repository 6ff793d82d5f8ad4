package bookings

import (
	"errors"
	"strings"
	"time"

	"cinebook/internal/screenings"
	"cinebook/pkg/apperrors"
)

// ErrInvalidSeatCount guards the service against callers that bypass request
// binding; the HTTP layer rejects out-of-range seat counts before this.
var ErrInvalidSeatCount = errors.New("seats must be between 1 and 10")

// Validator holds the admissibility rules checked before a reservation is
// attempted. The availability check here is advisory (it produces the precise
// failure reason); the ledger's conditional update is what actually enforces
// capacity.
type Validator struct{}

func NewValidator() *Validator {
	return &Validator{}
}

// NormalizeEmail canonicalizes a requester identity for case-insensitive
// comparison.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateSeats bounds the requested unit count.
func (v *Validator) ValidateSeats(seats int) error {
	if seats < MinSeats || seats > MaxSeats {
		return ErrInvalidSeatCount
	}
	return nil
}

// ValidateTiming rejects screenings that already started and screenings
// inside the cutoff window, as distinct failure reasons.
func (v *Validator) ValidateTiming(screening *screenings.Screening, now time.Time) error {
	if screening.HasStarted(now) {
		return apperrors.AlreadyStarted()
	}
	if now.After(screening.StartTime.Add(-BookingCutoff)) {
		return apperrors.CutoffClosed(BookingCutoff.String())
	}
	return nil
}

// ValidateAvailability distinguishes sold out from a partial shortfall.
func (v *Validator) ValidateAvailability(screening *screenings.Screening, requestedSeats int) error {
	switch {
	case screening.AvailableSeats == 0:
		return apperrors.SoldOut()
	case screening.AvailableSeats < requestedSeats:
		return apperrors.InsufficientSeats(screening.AvailableSeats)
	}
	return nil
}

// ValidateCancellation checks ownership before the lifecycle guard so an
// authorization failure is never reported as a state conflict.
func (v *Validator) ValidateCancellation(booking *Booking, normalizedEmail string) error {
	if !booking.IsOwnedBy(normalizedEmail) {
		return apperrors.Unauthorized("booking belongs to a different user")
	}
	if !booking.Status.CanBeCancelled() {
		return apperrors.StateConflict("cancel", booking.Status.String())
	}
	return nil
}
