package notifications

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// EventType identifies the kind of booking lifecycle event
type EventType string

const (
	EventBookingConfirmed EventType = "BOOKING_CONFIRMED"
	EventBookingCancelled EventType = "BOOKING_CANCELLED"
	EventBookingExpired   EventType = "BOOKING_EXPIRED"
)

// BookingEvent is the message published for each booking lifecycle transition
type BookingEvent struct {
	ID          uuid.UUID `json:"id"`
	Type        EventType `json:"type"`
	BookingID   uuid.UUID `json:"booking_id"`
	ScreeningID uuid.UUID `json:"screening_id"`
	UserEmail   string    `json:"user_email"`
	Seats       int       `json:"seats"`
	TotalPrice  string    `json:"total_price"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// NewBookingEvent creates a booking event ready for publishing
func NewBookingEvent(eventType EventType, bookingID, screeningID uuid.UUID, userEmail string, seats int, totalPrice string) *BookingEvent {
	return &BookingEvent{
		ID:          uuid.New(),
		Type:        eventType,
		BookingID:   bookingID,
		ScreeningID: screeningID,
		UserEmail:   userEmail,
		Seats:       seats,
		TotalPrice:  totalPrice,
		OccurredAt:  time.Now(),
	}
}

// ToJSON serializes the event for the message payload
func (e *BookingEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// GetPartitionKey returns the partition key. Events for the same screening
// land on the same partition so consumers see them in order.
func (e *BookingEvent) GetPartitionKey() string {
	return e.ScreeningID.String()
}
