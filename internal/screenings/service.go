package screenings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cinebook/pkg/apperrors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Service interface defines the contract for screening business logic
type Service interface {
	CreateScreening(ctx context.Context, req CreateScreeningRequest) (*ScreeningResponse, error)
	GetScreening(ctx context.Context, id uuid.UUID) (*Screening, error)
	ListAvailableScreenings(ctx context.Context) ([]ScreeningResponse, error)
	ListTodayScreenings(ctx context.Context) ([]ScreeningResponse, error)
	ListScreeningsByMovie(ctx context.Context, movieID uuid.UUID) ([]ScreeningResponse, error)

	// Ledger pass-throughs used by the admission pipeline.
	ReserveSeats(ctx context.Context, id uuid.UUID, seats int) (bool, error)
	ReleaseSeats(ctx context.Context, id uuid.UUID, seats int) error
}

type service struct {
	repo Repository
	now  func() time.Time
}

// NewService creates a new screening service instance
func NewService(repo Repository) Service {
	return &service{
		repo: repo,
		now:  time.Now,
	}
}

func (s *service) CreateScreening(ctx context.Context, req CreateScreeningRequest) (*ScreeningResponse, error) {
	movieID, err := uuid.Parse(req.MovieID)
	if err != nil {
		return nil, fmt.Errorf("invalid movie id: %w", err)
	}

	screening := &Screening{
		MovieID:        movieID,
		StartTime:      req.StartTime,
		TotalSeats:     req.TotalSeats,
		AvailableSeats: req.TotalSeats,
		Price:          decimal.NewFromFloat(req.Price).Round(2),
	}

	if err := s.repo.Create(ctx, screening); err != nil {
		return nil, fmt.Errorf("failed to create screening: %w", err)
	}

	resp := screening.ToResponse()
	return &resp, nil
}

func (s *service) GetScreening(ctx context.Context, id uuid.UUID) (*Screening, error) {
	screening, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("screening")
		}
		return nil, fmt.Errorf("failed to get screening: %w", err)
	}
	return screening, nil
}

func (s *service) ListAvailableScreenings(ctx context.Context) ([]ScreeningResponse, error) {
	screenings, err := s.repo.ListAvailable(ctx, s.now())
	if err != nil {
		return nil, fmt.Errorf("failed to list available screenings: %w", err)
	}
	return toResponses(screenings), nil
}

func (s *service) ListTodayScreenings(ctx context.Context) ([]ScreeningResponse, error) {
	now := s.now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	endOfDay := startOfDay.AddDate(0, 0, 1)

	screenings, err := s.repo.ListBetween(ctx, startOfDay, endOfDay)
	if err != nil {
		return nil, fmt.Errorf("failed to list today's screenings: %w", err)
	}
	return toResponses(screenings), nil
}

func (s *service) ListScreeningsByMovie(ctx context.Context, movieID uuid.UUID) ([]ScreeningResponse, error) {
	screenings, err := s.repo.ListByMovie(ctx, movieID)
	if err != nil {
		return nil, fmt.Errorf("failed to list screenings for movie: %w", err)
	}
	return toResponses(screenings), nil
}

func (s *service) ReserveSeats(ctx context.Context, id uuid.UUID, seats int) (bool, error) {
	return s.repo.ReserveSeats(ctx, id, seats)
}

func (s *service) ReleaseSeats(ctx context.Context, id uuid.UUID, seats int) error {
	return s.repo.ReleaseSeats(ctx, id, seats)
}

func toResponses(screenings []Screening) []ScreeningResponse {
	responses := make([]ScreeningResponse, 0, len(screenings))
	for i := range screenings {
		responses = append(responses, screenings[i].ToResponse())
	}
	return responses
}
