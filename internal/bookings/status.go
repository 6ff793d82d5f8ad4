package bookings

// Status is the booking lifecycle state. PENDING is the only non-terminal
// source state: bookings move PENDING->CONFIRMED, PENDING|CONFIRMED->CANCELLED
// or PENDING->EXPIRED, and never re-enter a prior state.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusCancelled Status = "CANCELLED"
	StatusExpired   Status = "EXPIRED"
)

// IsValid checks if the booking status is valid
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusExpired:
		return true
	}
	return false
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// IsTerminal reports whether no further transition is permitted.
func (s Status) IsTerminal() bool {
	return s == StatusCancelled || s == StatusExpired
}

// CanConfirm reports whether the confirm guard holds.
func (s Status) CanConfirm() bool {
	return s == StatusPending
}

// CanBeCancelled reports whether the cancel guard holds.
func (s Status) CanBeCancelled() bool {
	return s == StatusPending || s == StatusConfirmed
}

// CanExpire reports whether the expiry guard holds (age checked separately).
func (s Status) CanExpire() bool {
	return s == StatusPending
}

// Message returns the human-readable description for the status.
func (s Status) Message() string {
	switch s {
	case StatusPending:
		return "booking in progress"
	case StatusConfirmed:
		return "booking confirmed"
	case StatusCancelled:
		return "booking cancelled"
	case StatusExpired:
		return "booking expired"
	default:
		return "unknown status"
	}
}
