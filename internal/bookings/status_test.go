package bookings

import (
	"testing"
	"time"

	"cinebook/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Guards(t *testing.T) {
	tests := []struct {
		status      Status
		canConfirm  bool
		canCancel   bool
		canExpire   bool
		terminal    bool
	}{
		{StatusPending, true, true, true, false},
		{StatusConfirmed, false, true, false, false},
		{StatusCancelled, false, false, false, true},
		{StatusExpired, false, false, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.status.String(), func(t *testing.T) {
			assert.Equal(t, tt.canConfirm, tt.status.CanConfirm())
			assert.Equal(t, tt.canCancel, tt.status.CanBeCancelled())
			assert.Equal(t, tt.canExpire, tt.status.CanExpire())
			assert.Equal(t, tt.terminal, tt.status.IsTerminal())
		})
	}
}

func TestStatus_IsValid(t *testing.T) {
	assert.True(t, StatusPending.IsValid())
	assert.True(t, StatusExpired.IsValid())
	assert.False(t, Status("HELD").IsValid())
	assert.False(t, Status("").IsValid())
}

func TestBooking_Confirm(t *testing.T) {
	now := time.Now()
	booking := &Booking{Status: StatusPending}

	require.NoError(t, booking.Confirm(now))
	assert.Equal(t, StatusConfirmed, booking.Status)
	require.NotNil(t, booking.ConfirmedAt)
	assert.Equal(t, now, *booking.ConfirmedAt)

	// Confirming twice violates the guard
	err := booking.Confirm(now)
	assert.Equal(t, apperrors.KindStateConflict, apperrors.KindOf(err))
}

func TestBooking_Cancel(t *testing.T) {
	now := time.Now()

	t.Run("from pending", func(t *testing.T) {
		booking := &Booking{Status: StatusPending}
		require.NoError(t, booking.Cancel(now))
		assert.Equal(t, StatusCancelled, booking.Status)
		require.NotNil(t, booking.CancelledAt)
	})

	t.Run("from confirmed", func(t *testing.T) {
		booking := &Booking{Status: StatusConfirmed}
		require.NoError(t, booking.Cancel(now))
		assert.Equal(t, StatusCancelled, booking.Status)
	})

	t.Run("terminal states refuse", func(t *testing.T) {
		for _, status := range []Status{StatusCancelled, StatusExpired} {
			booking := &Booking{Status: status}
			err := booking.Cancel(now)
			assert.Equal(t, apperrors.KindStateConflict, apperrors.KindOf(err))
			assert.Equal(t, status, booking.Status)
		}
	})
}

func TestBooking_Expire(t *testing.T) {
	now := time.Now()

	t.Run("stale pending expires", func(t *testing.T) {
		booking := &Booking{Status: StatusPending, CreatedAt: now.Add(-PendingExpiry - time.Second)}
		require.NoError(t, booking.Expire(now))
		assert.Equal(t, StatusExpired, booking.Status)
	})

	t.Run("fresh pending refuses", func(t *testing.T) {
		booking := &Booking{Status: StatusPending, CreatedAt: now.Add(-PendingExpiry + time.Minute)}
		err := booking.Expire(now)
		assert.Equal(t, apperrors.KindStateConflict, apperrors.KindOf(err))
		assert.Equal(t, StatusPending, booking.Status)
	})

	t.Run("exactly at the boundary refuses", func(t *testing.T) {
		booking := &Booking{Status: StatusPending, CreatedAt: now.Add(-PendingExpiry)}
		err := booking.Expire(now)
		assert.Error(t, err)
	})

	t.Run("confirmed never expires", func(t *testing.T) {
		booking := &Booking{Status: StatusConfirmed, CreatedAt: now.Add(-time.Hour)}
		err := booking.Expire(now)
		assert.Equal(t, apperrors.KindStateConflict, apperrors.KindOf(err))
	})
}

func TestBooking_IsExpired(t *testing.T) {
	now := time.Now()

	stale := &Booking{Status: StatusPending, CreatedAt: now.Add(-16 * time.Minute)}
	assert.True(t, stale.IsExpired(now))

	fresh := &Booking{Status: StatusPending, CreatedAt: now.Add(-14 * time.Minute)}
	assert.False(t, fresh.IsExpired(now))

	confirmed := &Booking{Status: StatusConfirmed, CreatedAt: now.Add(-16 * time.Minute)}
	assert.False(t, confirmed.IsExpired(now))
}
