package movies

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Movie defines a catalog entry. Screenings reference movies by id; the
// catalog itself is plain CRUD around the booking core.
type Movie struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title           string    `gorm:"not null;size:255;index" json:"title"`
	Genre           string    `gorm:"size:100;index" json:"genre"`
	DurationMinutes int       `gorm:"not null;check:duration_minutes > 0" json:"duration_minutes"`
	Description     string    `gorm:"type:text" json:"description"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// TableName sets the table name for Movie
func (Movie) TableName() string {
	return "movies"
}

func (m *Movie) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// CreateMovieRequest represents a movie creation request
type CreateMovieRequest struct {
	Title           string `json:"title" binding:"required,min=1,max=255"`
	Genre           string `json:"genre" binding:"max=100"`
	DurationMinutes int    `json:"duration_minutes" binding:"required,min=1,max=600"`
	Description     string `json:"description" binding:"max=2000"`
}

// MovieResponse represents a movie in API responses
type MovieResponse struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Genre           string    `json:"genre"`
	DurationMinutes int       `json:"duration_minutes"`
	Description     string    `json:"description"`
	CreatedAt       time.Time `json:"created_at"`
}

// MovieSearchQuery holds catalog search parameters
type MovieSearchQuery struct {
	Genre string `form:"genre"`
	Title string `form:"title"`
}

// ToResponse converts a Movie to its API representation.
func (m *Movie) ToResponse() MovieResponse {
	return MovieResponse{
		ID:              m.ID.String(),
		Title:           m.Title,
		Genre:           m.Genre,
		DurationMinutes: m.DurationMinutes,
		Description:     m.Description,
		CreatedAt:       m.CreatedAt,
	}
}
