package movies

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, movie *Movie) error
	GetByID(ctx context.Context, id uuid.UUID) (*Movie, error)
	List(ctx context.Context) ([]Movie, error)
	Search(ctx context.Context, query MovieSearchQuery) ([]Movie, error)
	ListWithAvailableScreenings(ctx context.Context, now time.Time) ([]Movie, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, movie *Movie) error {
	return r.db.WithContext(ctx).Create(movie).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Movie, error) {
	var movie Movie
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&movie).Error
	if err != nil {
		return nil, err
	}
	return &movie, nil
}

func (r *repository) List(ctx context.Context) ([]Movie, error) {
	var movies []Movie
	err := r.db.WithContext(ctx).Order("title").Find(&movies).Error
	return movies, err
}

func (r *repository) Search(ctx context.Context, query MovieSearchQuery) ([]Movie, error) {
	q := r.db.WithContext(ctx).Model(&Movie{})

	if query.Genre != "" {
		q = q.Where("LOWER(genre) = LOWER(?)", query.Genre)
	}
	if query.Title != "" {
		q = q.Where("LOWER(title) LIKE LOWER(?)", "%"+query.Title+"%")
	}

	var movies []Movie
	err := q.Order("title").Find(&movies).Error
	return movies, err
}

func (r *repository) ListWithAvailableScreenings(ctx context.Context, now time.Time) ([]Movie, error) {
	var movies []Movie
	err := r.db.WithContext(ctx).
		Where("EXISTS (SELECT 1 FROM screenings WHERE screenings.movie_id = movies.id AND screenings.start_time > ? AND screenings.available_seats > 0)", now).
		Order("title").
		Find(&movies).Error
	return movies, err
}
