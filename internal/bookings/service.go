package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cinebook/internal/locks"
	"cinebook/internal/notifications"
	"cinebook/internal/screenings"
	"cinebook/pkg/apperrors"
	"cinebook/pkg/logger"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// lockKeyPrefix namespaces the per-screening lock keys in the coordinator's
// backing store.
const lockKeyPrefix = "booking:lock:screening:"

// ScreeningStore is the slice of the screening service the admission pipeline
// needs (declared here to keep the dependency direction one-way).
type ScreeningStore interface {
	GetScreening(ctx context.Context, id uuid.UUID) (*screenings.Screening, error)
	ReserveSeats(ctx context.Context, id uuid.UUID, seats int) (bool, error)
	ReleaseSeats(ctx context.Context, id uuid.UUID, seats int) error
}

// EventPublisher publishes booking lifecycle events. Publishing is
// best-effort: failures are logged and never fail the booking.
type EventPublisher interface {
	PublishBookingEvent(ctx context.Context, event *notifications.BookingEvent) error
}

// Service interface defines the contract for booking business logic
type Service interface {
	CreateBooking(ctx context.Context, req CreateBookingRequest) (*BookingResponse, error)
	GetBooking(ctx context.Context, id uuid.UUID) (*BookingResponse, error)
	GetUserBookings(ctx context.Context, email string) ([]BookingResponse, error)
	CancelBooking(ctx context.Context, id uuid.UUID, email string) (*BookingResponse, error)
	ExpirePendingBookings(ctx context.Context) (int, error)
}

type service struct {
	repo       Repository
	screenings ScreeningStore
	locker     locks.Coordinator
	publisher  EventPublisher
	validator  *Validator
	log        *logger.Logger
	now        func() time.Time
}

// NewService creates a new booking service instance. publisher may be nil
// when event publishing is disabled.
func NewService(repo Repository, screeningStore ScreeningStore, locker locks.Coordinator, publisher EventPublisher, log *logger.Logger) Service {
	return &service{
		repo:       repo,
		screenings: screeningStore,
		locker:     locker,
		publisher:  publisher,
		validator:  NewValidator(),
		log:        log,
		now:        time.Now,
	}
}

// CreateBooking runs the admission pipeline: admissibility gates, the
// per-screening lock, the ledger's atomic reserve, and booking construction.
// The lock serializes the whole check-then-commit decision per screening;
// the conditional update keeps the counter safe even without it.
func (s *service) CreateBooking(ctx context.Context, req CreateBookingRequest) (*BookingResponse, error) {
	screeningID, err := uuid.Parse(req.ScreeningID)
	if err != nil {
		return nil, fmt.Errorf("invalid screening id: %w", err)
	}
	if err := s.validator.ValidateSeats(req.Seats); err != nil {
		return nil, err
	}
	email := NormalizeEmail(req.UserEmail)

	screening, err := s.screenings.GetScreening(ctx, screeningID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if err := s.validator.ValidateTiming(screening, now); err != nil {
		return nil, err
	}
	if err := s.validator.ValidateAvailability(screening, req.Seats); err != nil {
		return nil, err
	}

	lockKey := lockKeyPrefix + screeningID.String()
	token, err := s.locker.Acquire(ctx, lockKey, locks.DefaultLease)
	if err != nil {
		if errors.Is(err, locks.ErrNotAcquired) {
			s.log.LogLockRefused(ctx, lockKey)
			return nil, apperrors.Busy()
		}
		return nil, fmt.Errorf("failed to acquire screening lock: %w", err)
	}
	defer func() {
		// The release must run even when the request context is already
		// cancelled, or the screening stays locked for the full lease.
		releaseCtx := context.WithoutCancel(ctx)
		if _, releaseErr := s.locker.Release(releaseCtx, lockKey, token); releaseErr != nil {
			s.log.ErrorWithContext(releaseCtx, "failed to release screening lock", releaseErr, map[string]interface{}{
				"lock_key": lockKey,
			})
		}
	}()

	reserved, err := s.screenings.ReserveSeats(ctx, screeningID, req.Seats)
	if err != nil {
		return nil, fmt.Errorf("failed to reserve seats: %w", err)
	}
	if !reserved {
		// Lost the race against a path that claimed the seats after the
		// availability check.
		return nil, apperrors.ReserveLost()
	}

	booking := &Booking{
		ScreeningID: screeningID,
		UserEmail:   email,
		Seats:       req.Seats,
		TotalPrice:  screening.Price.Mul(decimal.NewFromInt(int64(req.Seats))),
		Status:      StatusPending,
		CreatedAt:   now,
	}

	// No payment step exists, so the PENDING state collapses into CONFIRMED
	// synchronously.
	if err := booking.Confirm(now); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, booking); err != nil {
		// The process is still alive after a failed persist, so hand the
		// reserved seats back instead of stranding them.
		if releaseErr := s.screenings.ReleaseSeats(ctx, screeningID, req.Seats); releaseErr != nil {
			s.log.ErrorWithContext(ctx, "failed to release seats after persist failure", releaseErr, map[string]interface{}{
				"screening_id": screeningID.String(),
				"seats":        req.Seats,
			})
		}
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	s.publishEvent(ctx, notifications.EventBookingConfirmed, booking)
	s.log.LogBookingCreated(ctx, booking.ID.String(), screeningID.String(), email, req.Seats)

	resp := booking.ToResponse()
	return &resp, nil
}

// GetBooking retrieves a booking by ID
func (s *service) GetBooking(ctx context.Context, id uuid.UUID) (*BookingResponse, error) {
	booking, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("booking")
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}

	resp := booking.ToResponse()
	return &resp, nil
}

// GetUserBookings retrieves bookings for a requester identity, newest first.
func (s *service) GetUserBookings(ctx context.Context, email string) ([]BookingResponse, error) {
	bookings, err := s.repo.GetByUserEmail(ctx, NormalizeEmail(email))
	if err != nil {
		return nil, fmt.Errorf("failed to get user bookings: %w", err)
	}

	responses := make([]BookingResponse, 0, len(bookings))
	for i := range bookings {
		responses = append(responses, bookings[i].ToResponse())
	}
	return responses, nil
}

// CancelBooking cancels a booking and releases its seats. No lock is taken:
// the clamped release is monotonic-safe, so cancellations may run concurrently
// with admissions for the same screening.
func (s *service) CancelBooking(ctx context.Context, id uuid.UUID, email string) (*BookingResponse, error) {
	booking, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("booking")
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}

	normalized := NormalizeEmail(email)
	if err := s.validator.ValidateCancellation(booking, normalized); err != nil {
		return nil, err
	}

	now := s.now()
	if err := booking.Cancel(now); err != nil {
		return nil, err
	}

	// The read above and this write race with other transitions on the same
	// booking, so the write re-checks the guard. Seats are released only by
	// the transition that won; the loser reports the conflict instead of
	// double-releasing.
	won, err := s.repo.UpdateStatusFrom(ctx, booking, StatusPending, StatusConfirmed)
	if err != nil {
		return nil, fmt.Errorf("failed to cancel booking: %w", err)
	}
	if !won {
		current := booking.Status
		if fresh, ferr := s.repo.GetByID(ctx, id); ferr == nil {
			current = fresh.Status
		}
		return nil, apperrors.StateConflict("cancel", current.String())
	}

	if err := s.screenings.ReleaseSeats(ctx, booking.ScreeningID, booking.Seats); err != nil {
		// The cancellation is committed; a failed release leaves seats
		// under-utilized until reconciliation, never oversold.
		s.log.ErrorWithContext(ctx, "failed to release seats for cancelled booking", err, map[string]interface{}{
			"booking_id":   booking.ID.String(),
			"screening_id": booking.ScreeningID.String(),
			"seats":        booking.Seats,
		})
	}

	s.publishEvent(ctx, notifications.EventBookingCancelled, booking)
	s.log.LogBookingCancelled(ctx, booking.ID.String(), booking.ScreeningID.String(), booking.Seats)

	resp := booking.ToResponse()
	return &resp, nil
}

// ExpirePendingBookings drives PENDING bookings older than PendingExpiry to
// EXPIRED. The caller (an external sweep) decides when to run it; seats are
// not released by the transition.
func (s *service) ExpirePendingBookings(ctx context.Context) (int, error) {
	now := s.now()
	cutoff := now.Add(-PendingExpiry)

	stale, err := s.repo.FindExpiredPending(ctx, cutoff, 100)
	if err != nil {
		return 0, fmt.Errorf("failed to list expired pending bookings: %w", err)
	}

	expired := 0
	for i := range stale {
		booking := &stale[i]
		if err := booking.Expire(now); err != nil {
			continue
		}
		won, err := s.repo.UpdateStatusFrom(ctx, booking, StatusPending)
		if err != nil {
			s.log.ErrorWithContext(ctx, "failed to mark booking expired", err, map[string]interface{}{
				"booking_id": booking.ID.String(),
			})
			continue
		}
		if !won {
			// Confirmed or cancelled since the sweep listed it.
			continue
		}
		expired++
	}

	if expired > 0 {
		s.log.LogExpiredSweep(ctx, expired)
	}
	return expired, nil
}

func (s *service) publishEvent(ctx context.Context, eventType notifications.EventType, booking *Booking) {
	if s.publisher == nil {
		return
	}

	event := notifications.NewBookingEvent(eventType, booking.ID, booking.ScreeningID, booking.UserEmail, booking.Seats, booking.TotalPrice.String())
	if err := s.publisher.PublishBookingEvent(ctx, event); err != nil {
		s.log.ErrorWithContext(ctx, "failed to publish booking event", err, map[string]interface{}{
			"event_type": string(eventType),
			"booking_id": booking.ID.String(),
		})
	}
}
