package create_booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-CarWashService/internal/infra/storage/booking"
	companyRepo "github.com/m04kA/SMC-CarWashService/internal/infra/storage/company"
	serviceRepo "github.com/m04kA/SMC-CarWashService/internal/infra/storage/service"
	"github.com/m04kA/SMC-CarWashService/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type eventRecorder struct{ events []string }

func (r *eventRecorder) IncBookingEvent(event string) { r.events = append(r.events, event) }

type failingBookingRepo struct{}

func (failingBookingRepo) Create(context.Context, *domain.Booking) (*domain.Booking, error) {
	return nil, bookingRepo.ErrExecQuery
}

var now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type fixture struct {
	uc        *UseCase
	bookings  *bookingRepo.MemoryRepository
	services  *serviceRepo.MemoryRepository
	companies *companyRepo.MemoryRepository
	events    *eventRecorder

	basic    *domain.Service
	official *domain.Service
	verified *domain.Company
	pending  *domain.Company
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	f := &fixture{
		bookings:  bookingRepo.NewMemoryRepository(),
		services:  serviceRepo.NewMemoryRepository(),
		companies: companyRepo.NewMemoryRepository(),
		events:    &eventRecorder{},
	}
	f.uc = NewUseCase(f.bookings, f.services, f.companies, f.events, nopLogger{})
	f.uc.timeProvider = fixedTime{now: now}

	var err error
	f.basic, err = f.services.Create(ctx, &domain.Service{
		Name:     "Basic Wash",
		Price:    decimal.RequireFromString("15.99"),
		Features: []string{"Exterior Wash"},
	})
	require.NoError(t, err)

	f.official, err = f.services.Create(ctx, &domain.Service{
		Name:                        "Public Servant Wash",
		Price:                       decimal.RequireFromString("9.99"),
		Features:                    []string{"Exterior Wash"},
		IsPublicServant:             true,
		RequiredCompanyVerification: true,
	})
	require.NoError(t, err)

	f.verified, err = f.companies.Create(ctx, &domain.Company{
		Name: "City Police", RegistrationNumber: "REG-1", Email: "police@example.com", IsVerified: true,
	})
	require.NoError(t, err)

	f.pending, err = f.companies.Create(ctx, &domain.Company{
		Name: "Unknown LLC", RegistrationNumber: "REG-2", Email: "llc@example.com",
	})
	require.NoError(t, err)

	return f
}

func (f *fixture) request(serviceID string) *Request {
	return &Request{
		UserID:          "u1",
		ServiceID:       serviceID,
		FullName:        "Ivan Petrov",
		PhoneNumber:     "+79990000000",
		CarType:         "sedan",
		LicensePlate:    "A123BC",
		Location:        "Moscow",
		AppointmentDate: now.Add(24 * time.Hour),
	}
}

func requireFieldError(t *testing.T, err error, field string) {
	t.Helper()
	require.ErrorIs(t, err, ErrInvalidInput)
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	require.NotEmpty(t, verr.Fields)
	assert.Equal(t, field, verr.Fields[0].Field)
}

func TestExecute_SnapshotsPriceAndForcesPending(t *testing.T) {
	f := newFixture(t)

	resp, err := f.uc.Execute(context.Background(), f.request(f.basic.ID))
	require.NoError(t, err)

	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, "u1", resp.UserID)
	assert.Equal(t, f.basic.ID, resp.ServiceID.ID)
	assert.True(t, decimal.RequireFromString("15.99").Equal(resp.TotalPrice))
	assert.False(t, resp.IsPublicServant)
	assert.Nil(t, resp.CompanyID)
	assert.Equal(t, []string{"created"}, f.events.events)

	stored, err := f.bookings.GetByID(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, stored.Status)
}

func TestExecute_PriceCrossCheck(t *testing.T) {
	f := newFixture(t)

	req := f.request(f.basic.ID)
	req.TotalPrice = ptr.Ptr(decimal.RequireFromString("15.990"))
	_, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	req.TotalPrice = ptr.Ptr(decimal.RequireFromString("1"))
	_, err = f.uc.Execute(context.Background(), req)
	requireFieldError(t, err, "totalPrice")
}

func TestExecute_PublicServant(t *testing.T) {
	tests := []struct {
		name      string
		service   func(f *fixture) string
		declared  bool
		companyID func(f *fixture) *string
		wantField string
	}{
		{
			name:      "service flag requires company",
			service:   func(f *fixture) string { return f.official.ID },
			companyID: func(*fixture) *string { return nil },
			wantField: "companyId",
		},
		{
			name:      "declared flag requires company",
			service:   func(f *fixture) string { return f.basic.ID },
			declared:  true,
			companyID: func(*fixture) *string { return nil },
			wantField: "companyId",
		},
		{
			name:      "unverified company rejected",
			service:   func(f *fixture) string { return f.official.ID },
			companyID: func(f *fixture) *string { return ptr.Ptr(f.pending.ID) },
			wantField: "companyId",
		},
		{
			name:      "unknown company rejected",
			service:   func(f *fixture) string { return f.official.ID },
			companyID: func(*fixture) *string { return ptr.Ptr("missing") },
			wantField: "companyId",
		},
		{
			name:      "verified company accepted",
			service:   func(f *fixture) string { return f.official.ID },
			companyID: func(f *fixture) *string { return ptr.Ptr(f.verified.ID) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			req := f.request(tt.service(f))
			req.IsPublicServant = tt.declared
			req.CompanyID = tt.companyID(f)

			resp, err := f.uc.Execute(context.Background(), req)
			if tt.wantField != "" {
				requireFieldError(t, err, tt.wantField)
				assert.Empty(t, f.events.events)
				return
			}

			require.NoError(t, err)
			assert.True(t, resp.IsPublicServant)
			require.NotNil(t, resp.CompanyID)
			assert.Equal(t, f.verified.ID, resp.CompanyID.ID)
		})
	}
}

func TestExecute_OptionalCompanyOnRegularBooking(t *testing.T) {
	f := newFixture(t)

	// для обычной услуги проверка компании не требуется, но ссылка сохраняется
	req := f.request(f.basic.ID)
	req.CompanyID = ptr.Ptr(f.pending.ID)
	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, resp.CompanyID)
	assert.Equal(t, f.pending.ID, resp.CompanyID.ID)
	assert.False(t, resp.IsPublicServant)

	req = f.request(f.basic.ID)
	req.CompanyID = ptr.Ptr("missing")
	_, err = f.uc.Execute(context.Background(), req)
	requireFieldError(t, err, "companyId")

	req = f.request(f.basic.ID)
	req.CompanyID = ptr.Ptr("")
	resp, err = f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Nil(t, resp.CompanyID)
}

func TestExecute_Validation(t *testing.T) {
	f := newFixture(t)

	req := f.request(f.basic.ID)
	req.AppointmentDate = now.Add(-time.Minute)
	_, err := f.uc.Execute(context.Background(), req)
	requireFieldError(t, err, "appointmentDate")

	req = f.request("")
	_, err = f.uc.Execute(context.Background(), req)
	requireFieldError(t, err, "serviceId")

	req = f.request("missing")
	_, err = f.uc.Execute(context.Background(), req)
	requireFieldError(t, err, "serviceId")

	req = f.request(f.basic.ID)
	req.TotalPrice = ptr.Ptr(decimal.RequireFromString("15.999"))
	_, err = f.uc.Execute(context.Background(), req)
	requireFieldError(t, err, "totalPrice")

	req = f.request(f.basic.ID)
	req.TotalPrice = ptr.Ptr(decimal.RequireFromString("123456789012345"))
	_, err = f.uc.Execute(context.Background(), req)
	requireFieldError(t, err, "totalPrice")
}

func TestExecute_RepositoryError(t *testing.T) {
	f := newFixture(t)
	f.uc.bookingRepo = failingBookingRepo{}

	_, err := f.uc.Execute(context.Background(), f.request(f.basic.ID))
	assert.ErrorIs(t, err, ErrInternal)
	assert.Empty(t, f.events.events)
}
