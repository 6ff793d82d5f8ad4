package bookings

import (
	"context"
	"testing"
	"time"

	"cinebook/internal/screenings"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&screenings.Screening{}, &Booking{}))
	return db
}

func seedBooking(t *testing.T, db *gorm.DB, status Status, createdAt time.Time) *Booking {
	t.Helper()

	screening := &screenings.Screening{
		MovieID:    uuid.New(),
		StartTime:  time.Now().Add(4 * time.Hour),
		TotalSeats: 100,
		Price:      decimal.NewFromFloat(10.00),
	}
	require.NoError(t, db.Create(screening).Error)

	booking := &Booking{
		ScreeningID: screening.ID,
		UserEmail:   "alice@example.com",
		Seats:       2,
		TotalPrice:  decimal.NewFromFloat(20.00),
		Status:      status,
		CreatedAt:   createdAt,
	}
	require.NoError(t, db.Create(booking).Error)
	return booking
}

func TestRepository_CreateAndGet(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	created := seedBooking(t, db, StatusConfirmed, time.Now())

	stored, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, stored.ID)
	assert.Equal(t, StatusConfirmed, stored.Status)
	require.NotNil(t, stored.Screening)
	assert.Equal(t, created.ScreeningID, stored.Screening.ID)
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	repo := NewRepository(newTestDB(t))

	_, err := repo.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepository_GetByUserEmail_NewestFirst(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	older := seedBooking(t, db, StatusConfirmed, time.Now().Add(-time.Hour))
	newer := seedBooking(t, db, StatusConfirmed, time.Now())

	listed, err := repo.GetByUserEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, newer.ID, listed[0].ID)
	assert.Equal(t, older.ID, listed[1].ID)

	empty, err := repo.GetByUserEmail(ctx, "bob@example.com")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestRepository_UpdateStatusFrom(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	booking := seedBooking(t, db, StatusPending, time.Now())

	now := time.Now()
	require.NoError(t, booking.Confirm(now))

	won, err := repo.UpdateStatusFrom(ctx, booking, StatusPending)
	require.NoError(t, err)
	assert.True(t, won)

	stored, err := repo.GetByID(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, stored.Status)
	assert.NotNil(t, stored.ConfirmedAt)
}

func TestRepository_UpdateStatusFrom_LostRace(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	now := time.Now()
	booking := seedBooking(t, db, StatusConfirmed, now)

	// A stale writer still holding the pre-cancel snapshot must not
	// overwrite the row once it has left the cancellable statuses.
	first := *booking
	require.NoError(t, first.Cancel(now))
	won, err := repo.UpdateStatusFrom(ctx, &first, StatusPending, StatusConfirmed)
	require.NoError(t, err)
	require.True(t, won)

	second := *booking
	require.NoError(t, second.Cancel(now))
	won, err = repo.UpdateStatusFrom(ctx, &second, StatusPending, StatusConfirmed)
	require.NoError(t, err)
	assert.False(t, won)

	stored, err := repo.GetByID(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, stored.Status)
}

func TestRepository_UpdateStatusFrom_UnknownBooking(t *testing.T) {
	repo := NewRepository(newTestDB(t))

	booking := &Booking{ID: uuid.New(), Status: StatusCancelled}
	won, err := repo.UpdateStatusFrom(context.Background(), booking, StatusPending, StatusConfirmed)
	require.NoError(t, err)
	assert.False(t, won)
}

func TestRepository_FindExpiredPending(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	now := time.Now()

	stale := seedBooking(t, db, StatusPending, now.Add(-20*time.Minute))
	seedBooking(t, db, StatusPending, now.Add(-5*time.Minute))
	seedBooking(t, db, StatusConfirmed, now.Add(-20*time.Minute))
	seedBooking(t, db, StatusExpired, now.Add(-20*time.Minute))

	cutoff := now.Add(-PendingExpiry)
	listed, err := repo.FindExpiredPending(ctx, cutoff, 0)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, stale.ID, listed[0].ID)
}

func TestRepository_FindExpiredPending_Limit(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	now := time.Now()

	for i := 0; i < 5; i++ {
		seedBooking(t, db, StatusPending, now.Add(-30*time.Minute))
	}

	listed, err := repo.FindExpiredPending(ctx, now.Add(-PendingExpiry), 3)
	require.NoError(t, err)
	assert.Len(t, listed, 3)
}

func TestRepository_CountActiveSeats(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	anchor := seedBooking(t, db, StatusPending, time.Now())

	// More bookings on the same screening in each status
	for _, status := range []Status{StatusConfirmed, StatusCancelled, StatusExpired} {
		booking := &Booking{
			ScreeningID: anchor.ScreeningID,
			UserEmail:   "bob@example.com",
			Seats:       3,
			TotalPrice:  decimal.NewFromFloat(30.00),
			Status:      status,
			CreatedAt:   time.Now(),
		}
		require.NoError(t, db.Create(booking).Error)
	}

	// Only PENDING (2) and CONFIRMED (3) count
	total, err := repo.CountActiveSeats(ctx, anchor.ScreeningID)
	require.NoError(t, err)
	assert.Equal(t, 5, total)

	none, err := repo.CountActiveSeats(ctx, uuid.New())
	require.NoError(t, err)
	assert.Zero(t, none)
}
