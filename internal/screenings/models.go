package screenings

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Screening defines a single showing of a movie. TotalSeats is fixed at
// creation; AvailableSeats is only ever written by the ledger operations in
// the repository (conditional reserve and clamped release).
type Screening struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	MovieID        uuid.UUID       `gorm:"type:uuid;index;not null" json:"movie_id"`
	StartTime      time.Time       `gorm:"not null;index" json:"start_time"`
	TotalSeats     int             `gorm:"not null;check:total_seats > 0" json:"total_seats"`
	AvailableSeats int             `gorm:"not null;check:available_seats >= 0" json:"available_seats"`
	Price          decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// TableName sets the table name for Screening
func (Screening) TableName() string {
	return "screenings"
}

func (s *Screening) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	if s.AvailableSeats == 0 {
		s.AvailableSeats = s.TotalSeats
	}
	return nil
}

// IsSoldOut reports whether no seats remain.
func (s *Screening) IsSoldOut() bool {
	return s.AvailableSeats == 0
}

// HasStarted reports whether the screening start time has passed.
func (s *Screening) HasStarted(now time.Time) bool {
	return s.StartTime.Before(now)
}

// CreateScreeningRequest represents a screening creation request
type CreateScreeningRequest struct {
	MovieID    string    `json:"movie_id" binding:"required,uuid"`
	StartTime  time.Time `json:"start_time" binding:"required"`
	TotalSeats int       `json:"total_seats" binding:"required,min=1,max=1000"`
	Price      float64   `json:"price" binding:"required,gt=0"`
}

// ScreeningResponse represents a screening in API responses
type ScreeningResponse struct {
	ID             string          `json:"id"`
	MovieID        string          `json:"movie_id"`
	StartTime      time.Time       `json:"start_time"`
	TotalSeats     int             `json:"total_seats"`
	AvailableSeats int             `json:"available_seats"`
	Price          decimal.Decimal `json:"price"`
	CreatedAt      time.Time       `json:"created_at"`
}

// ToResponse converts a Screening to its API representation.
func (s *Screening) ToResponse() ScreeningResponse {
	return ScreeningResponse{
		ID:             s.ID.String(),
		MovieID:        s.MovieID.String(),
		StartTime:      s.StartTime,
		TotalSeats:     s.TotalSeats,
		AvailableSeats: s.AvailableSeats,
		Price:          s.Price,
		CreatedAt:      s.CreatedAt,
	}
}
