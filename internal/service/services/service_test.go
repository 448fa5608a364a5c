package services

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
	serviceRepo "github.com/m04kA/SMC-CarWashService/internal/infra/storage/service"
	"github.com/m04kA/SMC-CarWashService/internal/service/services/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeAggregator struct {
	AggregateByServiceFunc func(ctx context.Context) ([]domain.ServiceBookingAggregate, error)
}

func (f *fakeAggregator) AggregateByService(ctx context.Context) ([]domain.ServiceBookingAggregate, error) {
	if f.AggregateByServiceFunc != nil {
		return f.AggregateByServiceFunc(ctx)
	}
	return nil, nil
}

func basicWash() *models.ServiceRequest {
	price := decimal.RequireFromString("15.99")
	return &models.ServiceRequest{
		Name:     "Basic Wash",
		Price:    &price,
		Features: []string{"Exterior Wash"},
	}
}

func TestService_CreateGetAndPopular(t *testing.T) {
	ctx := context.Background()
	svc := NewService(serviceRepo.NewMemoryRepository(), &fakeAggregator{}, nopLogger{})

	created, err := svc.Create(ctx, basicWash())
	require.NoError(t, err)
	assert.False(t, created.Popular)

	got, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Basic Wash", list[0].Name)

	popular, err := svc.SetPopular(ctx, created.ID, true)
	require.NoError(t, err)
	assert.True(t, popular.Popular)

	got, err = svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, got.Popular)
}

func TestService_Create_Validation(t *testing.T) {
	svc := NewService(serviceRepo.NewMemoryRepository(), &fakeAggregator{}, nopLogger{})
	negative := decimal.RequireFromString("-1")
	fractional := decimal.RequireFromString("15.999")
	huge := decimal.RequireFromString("123456789012345")

	tests := []struct {
		name   string
		modify func(r *models.ServiceRequest)
		field  string
	}{
		{"negative price", func(r *models.ServiceRequest) { r.Price = &negative }, "price"},
		{"three decimal places", func(r *models.ServiceRequest) { r.Price = &fractional }, "price"},
		{"price too large", func(r *models.ServiceRequest) { r.Price = &huge }, "price"},
		{"missing price", func(r *models.ServiceRequest) { r.Price = nil }, "price"},
		{"no features", func(r *models.ServiceRequest) { r.Features = nil }, "features"},
		{"empty feature", func(r *models.ServiceRequest) { r.Features = []string{"Wax", ""} }, "features[1]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := basicWash()
			tt.modify(req)

			_, err := svc.Create(context.Background(), req)
			require.ErrorIs(t, err, ErrInvalidInput)

			var verr *domain.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.field, verr.Fields[0].Field)
		})
	}
}

func TestService_ZeroPriceAllowed(t *testing.T) {
	svc := NewService(serviceRepo.NewMemoryRepository(), &fakeAggregator{}, nopLogger{})
	req := basicWash()
	zero := decimal.Zero
	req.Price = &zero

	created, err := svc.Create(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, created.Price.IsZero())
}

func TestService_NotFound(t *testing.T) {
	svc := NewService(serviceRepo.NewMemoryRepository(), &fakeAggregator{}, nopLogger{})

	_, err := svc.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrServiceNotFound)

	_, err = svc.SetPopular(context.Background(), "missing", true)
	assert.ErrorIs(t, err, ErrServiceNotFound)

	_, err = svc.Update(context.Background(), "missing", basicWash())
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestService_GetStats(t *testing.T) {
	ctx := context.Background()
	repo := serviceRepo.NewMemoryRepository()

	basic, err := repo.Create(ctx, basicWash().ToDomain())
	require.NoError(t, err)
	premium, err := repo.Create(ctx, &domain.Service{Name: "Premium Wash", Price: decimal.RequireFromString("24.99"), Features: []string{"Wax"}})
	require.NoError(t, err)

	agg := &fakeAggregator{
		AggregateByServiceFunc: func(context.Context) ([]domain.ServiceBookingAggregate, error) {
			return []domain.ServiceBookingAggregate{
				{ServiceID: premium.ID, BookingCount: 3, CompletedRevenue: decimal.RequireFromString("49.98")},
				{ServiceID: "deleted-service", BookingCount: 1, CompletedRevenue: decimal.Zero},
			}, nil
		},
	}

	stats, err := NewService(repo, agg, nopLogger{}).GetStats(ctx)
	require.NoError(t, err)
	require.Len(t, stats, 2)

	assert.Equal(t, basic.ID, stats[0].ServiceID)
	assert.Zero(t, stats[0].BookingCount)
	assert.True(t, stats[0].CompletedRevenue.IsZero())

	assert.Equal(t, "Premium Wash", stats[1].ServiceName)
	assert.Equal(t, int64(3), stats[1].BookingCount)
	assert.Equal(t, "49.98", stats[1].CompletedRevenue.StringFixed(2))
}

func TestService_GetStats_AggregatorError(t *testing.T) {
	agg := &fakeAggregator{
		AggregateByServiceFunc: func(context.Context) ([]domain.ServiceBookingAggregate, error) {
			return nil, errors.New("connection refused")
		},
	}

	_, err := NewService(serviceRepo.NewMemoryRepository(), agg, nopLogger{}).GetStats(context.Background())
	assert.ErrorIs(t, err, ErrInternal)
}
