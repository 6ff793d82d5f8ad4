package screenings

import (
	"context"
	"testing"
	"time"

	"cinebook/pkg/apperrors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// mockRepo is an in-memory Repository for service tests
type mockRepo struct {
	screenings map[uuid.UUID]*Screening
}

func newMockRepo() *mockRepo {
	return &mockRepo{screenings: make(map[uuid.UUID]*Screening)}
}

func (m *mockRepo) Create(ctx context.Context, screening *Screening) error {
	if screening.ID == uuid.Nil {
		screening.ID = uuid.New()
	}
	stored := *screening
	m.screenings[screening.ID] = &stored
	return nil
}

func (m *mockRepo) GetByID(ctx context.Context, id uuid.UUID) (*Screening, error) {
	s, ok := m.screenings[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *s
	return &copied, nil
}

func (m *mockRepo) ListAvailable(ctx context.Context, now time.Time) ([]Screening, error) {
	var result []Screening
	for _, s := range m.screenings {
		if s.StartTime.After(now) && s.AvailableSeats > 0 {
			result = append(result, *s)
		}
	}
	return result, nil
}

func (m *mockRepo) ListBetween(ctx context.Context, from, to time.Time) ([]Screening, error) {
	var result []Screening
	for _, s := range m.screenings {
		if !s.StartTime.Before(from) && s.StartTime.Before(to) && s.AvailableSeats > 0 {
			result = append(result, *s)
		}
	}
	return result, nil
}

func (m *mockRepo) ListByMovie(ctx context.Context, movieID uuid.UUID) ([]Screening, error) {
	var result []Screening
	for _, s := range m.screenings {
		if s.MovieID == movieID {
			result = append(result, *s)
		}
	}
	return result, nil
}

func (m *mockRepo) ReserveSeats(ctx context.Context, id uuid.UUID, seats int) (bool, error) {
	s, ok := m.screenings[id]
	if !ok || s.AvailableSeats < seats {
		return false, nil
	}
	s.AvailableSeats -= seats
	return true, nil
}

func (m *mockRepo) ReleaseSeats(ctx context.Context, id uuid.UUID, seats int) error {
	s, ok := m.screenings[id]
	if !ok {
		return nil
	}
	s.AvailableSeats += seats
	if s.AvailableSeats > s.TotalSeats {
		s.AvailableSeats = s.TotalSeats
	}
	return nil
}

func TestService_CreateScreening(t *testing.T) {
	svc := NewService(newMockRepo())

	resp, err := svc.CreateScreening(context.Background(), CreateScreeningRequest{
		MovieID:    uuid.NewString(),
		StartTime:  time.Now().Add(24 * time.Hour),
		TotalSeats: 120,
		Price:      12.505,
	})
	require.NoError(t, err)

	assert.Equal(t, 120, resp.TotalSeats)
	assert.Equal(t, 120, resp.AvailableSeats)
	// Price is rounded to cents at creation
	assert.True(t, decimal.NewFromFloat(12.51).Equal(resp.Price) || decimal.NewFromFloat(12.50).Equal(resp.Price))
}

func TestService_CreateScreening_BadMovieID(t *testing.T) {
	svc := NewService(newMockRepo())

	_, err := svc.CreateScreening(context.Background(), CreateScreeningRequest{
		MovieID:    "garbage",
		StartTime:  time.Now().Add(24 * time.Hour),
		TotalSeats: 120,
		Price:      10,
	})
	assert.Error(t, err)
}

func TestService_GetScreening_NotFound(t *testing.T) {
	svc := NewService(newMockRepo())

	_, err := svc.GetScreening(context.Background(), uuid.New())
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}

func TestService_ListTodayScreenings(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo).(*service)

	// Fixed clock keeps the day window deterministic
	fixed := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	today := &Screening{
		MovieID:        uuid.New(),
		StartTime:      fixed.Add(8 * time.Hour),
		TotalSeats:     10,
		AvailableSeats: 10,
		Price:          decimal.NewFromFloat(10.00),
	}
	tomorrow := &Screening{
		MovieID:        uuid.New(),
		StartTime:      fixed.Add(30 * time.Hour),
		TotalSeats:     10,
		AvailableSeats: 10,
		Price:          decimal.NewFromFloat(10.00),
	}
	require.NoError(t, repo.Create(context.Background(), today))
	require.NoError(t, repo.Create(context.Background(), tomorrow))

	listed, err := svc.ListTodayScreenings(context.Background())
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, today.ID.String(), listed[0].ID)
}
