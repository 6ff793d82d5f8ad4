package movies

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cinebook/pkg/apperrors"
	"cinebook/pkg/cache"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	catalogCacheKey = "cinebook:movies:catalog"
	catalogCacheTTL = 5 * time.Minute
)

// Service interface defines the contract for movie catalog logic
type Service interface {
	CreateMovie(ctx context.Context, req CreateMovieRequest) (*MovieResponse, error)
	GetMovie(ctx context.Context, id uuid.UUID) (*MovieResponse, error)
	ListMovies(ctx context.Context) ([]MovieResponse, error)
	SearchMovies(ctx context.Context, query MovieSearchQuery) ([]MovieResponse, error)
	ListMoviesWithAvailableScreenings(ctx context.Context) ([]MovieResponse, error)
}

type service struct {
	repo  Repository
	cache cache.Service
	now   func() time.Time
}

// NewService creates a new movie service instance. cacheService may be nil,
// in which case every read goes to the database.
func NewService(repo Repository, cacheService cache.Service) Service {
	return &service{
		repo:  repo,
		cache: cacheService,
		now:   time.Now,
	}
}

func (s *service) CreateMovie(ctx context.Context, req CreateMovieRequest) (*MovieResponse, error) {
	movie := &Movie{
		Title:           req.Title,
		Genre:           req.Genre,
		DurationMinutes: req.DurationMinutes,
		Description:     req.Description,
	}

	if err := s.repo.Create(ctx, movie); err != nil {
		return nil, fmt.Errorf("failed to create movie: %w", err)
	}

	if s.cache != nil {
		_ = s.cache.Delete(ctx, catalogCacheKey)
	}

	resp := movie.ToResponse()
	return &resp, nil
}

func (s *service) GetMovie(ctx context.Context, id uuid.UUID) (*MovieResponse, error) {
	movie, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("movie")
		}
		return nil, fmt.Errorf("failed to get movie: %w", err)
	}

	resp := movie.ToResponse()
	return &resp, nil
}

func (s *service) ListMovies(ctx context.Context) ([]MovieResponse, error) {
	if s.cache != nil {
		var cached []MovieResponse
		err := s.cache.GetOrSet(ctx, catalogCacheKey, catalogCacheTTL, func() (interface{}, error) {
			movies, err := s.repo.List(ctx)
			if err != nil {
				return nil, err
			}
			return toResponses(movies), nil
		}, &cached)
		if err == nil {
			return cached, nil
		}
		// Fall through to the database on cache trouble
	}

	movies, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list movies: %w", err)
	}
	return toResponses(movies), nil
}

func (s *service) SearchMovies(ctx context.Context, query MovieSearchQuery) ([]MovieResponse, error) {
	movies, err := s.repo.Search(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to search movies: %w", err)
	}
	return toResponses(movies), nil
}

func (s *service) ListMoviesWithAvailableScreenings(ctx context.Context) ([]MovieResponse, error) {
	movies, err := s.repo.ListWithAvailableScreenings(ctx, s.now())
	if err != nil {
		return nil, fmt.Errorf("failed to list movies with available screenings: %w", err)
	}
	return toResponses(movies), nil
}

func toResponses(movies []Movie) []MovieResponse {
	responses := make([]MovieResponse, 0, len(movies))
	for i := range movies {
		responses = append(responses, movies[i].ToResponse())
	}
	return responses
}
