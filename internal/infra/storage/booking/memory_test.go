package booking

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
)

func newBooking(userID, serviceID, price string) *domain.Booking {
	return &domain.Booking{
		UserID:          userID,
		ServiceID:       serviceID,
		FullName:        "Jane Doe",
		PhoneNumber:     "702-555-0100",
		CarType:         "Sedan",
		LicensePlate:    "ABC123",
		Location:        "Downtown",
		AppointmentDate: time.Now().Add(24 * time.Hour),
		Status:          domain.StatusPending,
		TotalPrice:      decimal.RequireFromString(price),
	}
}

func TestMemoryRepository_ListByUserNewestFirst(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	first, err := repo.Create(ctx, newBooking("u1", "s1", "15.99"))
	require.NoError(t, err)
	_, err = repo.Create(ctx, newBooking("u2", "s1", "15.99"))
	require.NoError(t, err)
	second, err := repo.Create(ctx, newBooking("u1", "s2", "24.99"))
	require.NoError(t, err)

	list, err := repo.ListByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestMemoryRepository_DeleteTwice(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	b, err := repo.Create(ctx, newBooking("u1", "s1", "15.99"))
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, b.ID))
	assert.ErrorIs(t, repo.Delete(ctx, b.ID), ErrBookingNotFound)

	_, err = repo.GetByID(ctx, b.ID)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestMemoryRepository_Aggregates(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()
	since := time.Now().Add(-time.Minute)

	a, err := repo.Create(ctx, newBooking("u1", "s1", "15.99"))
	require.NoError(t, err)
	b, err := repo.Create(ctx, newBooking("u1", "s1", "15.99"))
	require.NoError(t, err)
	_, err = repo.Create(ctx, newBooking("u2", "s2", "24.99"))
	require.NoError(t, err)

	_, err = repo.UpdateStatus(ctx, a.ID, domain.StatusCompleted)
	require.NoError(t, err)
	_, err = repo.UpdateStatus(ctx, b.ID, domain.StatusCancelled)
	require.NoError(t, err)

	byStatus, err := repo.CountByStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[domain.BookingStatus]int64{
		domain.StatusCompleted: 1,
		domain.StatusCancelled: 1,
		domain.StatusPending:   1,
	}, byStatus)

	revenue, err := repo.CompletedRevenue(ctx)
	require.NoError(t, err)
	assert.Equal(t, "15.99", revenue.StringFixed(2))

	today, err := repo.CountCreatedSince(ctx, since)
	require.NoError(t, err)
	assert.Equal(t, int64(3), today)

	future, err := repo.CountCreatedSince(ctx, time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.Zero(t, future)

	perService, err := repo.AggregateByService(ctx)
	require.NoError(t, err)
	require.Len(t, perService, 2)
	assert.Equal(t, "s1", perService[0].ServiceID)
	assert.Equal(t, int64(2), perService[0].BookingCount)
	assert.Equal(t, "15.99", perService[0].CompletedRevenue.StringFixed(2))
	assert.True(t, perService[1].CompletedRevenue.IsZero())
}
