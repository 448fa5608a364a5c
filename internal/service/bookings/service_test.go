package bookings

import (
	"context"
	"encoding/json"
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
	"github.com/m04kA/SMC-CarWashService/internal/service/bookings/models"
	serviceModels "github.com/m04kA/SMC-CarWashService/internal/service/services/models"
	"github.com/m04kA/SMC-CarWashService/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type eventRecorder struct {
	events []string
}

func (r *eventRecorder) IncBookingEvent(event string) {
	r.events = append(r.events, event)
}

type fixture struct {
	svc       *Service
	bookings  *bookingRepo.MemoryRepository
	services  *serviceRepo.MemoryRepository
	companies *companyRepo.MemoryRepository
	events    *eventRecorder
}

func newFixture() *fixture {
	f := &fixture{
		bookings:  bookingRepo.NewMemoryRepository(),
		services:  serviceRepo.NewMemoryRepository(),
		companies: companyRepo.NewMemoryRepository(),
		events:    &eventRecorder{},
	}
	f.svc = NewService(f.bookings, f.services, f.companies, f.events, nopLogger{})
	return f
}

func (f *fixture) seedBooking(t *testing.T, userID string, status domain.BookingStatus, price string) *domain.Booking {
	t.Helper()
	ctx := context.Background()

	svc, err := f.services.Create(ctx, &domain.Service{
		Name:     "Basic Wash",
		Price:    decimal.RequireFromString(price),
		Features: []string{"Exterior Wash"},
	})
	require.NoError(t, err)

	b, err := f.bookings.Create(ctx, &domain.Booking{
		UserID:          userID,
		ServiceID:       svc.ID,
		FullName:        "Ivan Petrov",
		PhoneNumber:     "+79990000000",
		CarType:         "sedan",
		LicensePlate:    "A123BC",
		Location:        "Moscow",
		AppointmentDate: time.Now().Add(24 * time.Hour),
		Status:          status,
		TotalPrice:      decimal.RequireFromString(price),
	})
	require.NoError(t, err)
	return b
}

var (
	owner    = &domain.Identity{UID: "u1", Email: "u1@example.com"}
	stranger = &domain.Identity{UID: "u2", Email: "u2@example.com"}
	admin    = &domain.Identity{UID: "a1", Email: "admin@example.com", Admin: true}
)

func TestService_GetByID_ExpandsService(t *testing.T) {
	f := newFixture()
	b := f.seedBooking(t, "u1", domain.StatusPending, "15.99")

	got, err := f.svc.GetByID(context.Background(), b.ID, owner)
	require.NoError(t, err)
	require.True(t, got.ServiceID.IsExpanded())
	assert.Equal(t, b.ServiceID, got.ServiceID.ID)
	assert.Equal(t, "Basic Wash", got.ServiceID.Expanded.Name)
	assert.Nil(t, got.CompanyID)
}

func TestService_GetByID_Access(t *testing.T) {
	f := newFixture()
	b := f.seedBooking(t, "u1", domain.StatusPending, "10")

	_, err := f.svc.GetByID(context.Background(), b.ID, stranger)
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = f.svc.GetByID(context.Background(), b.ID, admin)
	assert.NoError(t, err)

	_, err = f.svc.GetByID(context.Background(), "missing", admin)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestService_ExpandCompanyAndDanglingService(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	company, err := f.companies.Create(ctx, &domain.Company{
		Name:               "City Police",
		RegistrationNumber: "REG-1",
		Email:              "police@example.com",
		IsVerified:         true,
	})
	require.NoError(t, err)

	b, err := f.bookings.Create(ctx, &domain.Booking{
		UserID:          "u1",
		ServiceID:       "deleted-service",
		CompanyID:       ptr.Ptr(company.ID),
		AppointmentDate: time.Now().Add(time.Hour),
		Status:          domain.StatusPending,
		IsPublicServant: true,
	})
	require.NoError(t, err)

	got, err := f.svc.GetByID(ctx, b.ID, owner)
	require.NoError(t, err)
	assert.False(t, got.ServiceID.IsExpanded())
	assert.Equal(t, "deleted-service", got.ServiceID.ID)
	require.NotNil(t, got.CompanyID)
	require.True(t, got.CompanyID.IsExpanded())
	assert.Equal(t, "City Police", got.CompanyID.Expanded.Name)
}

func TestService_ListUserBookings(t *testing.T) {
	f := newFixture()
	first := f.seedBooking(t, "u1", domain.StatusPending, "10")
	second := f.seedBooking(t, "u1", domain.StatusPending, "20")
	f.seedBooking(t, "u2", domain.StatusPending, "30")

	list, err := f.svc.ListUserBookings(context.Background(), "u1", owner)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)

	_, err = f.svc.ListUserBookings(context.Background(), "u1", stranger)
	assert.ErrorIs(t, err, ErrAccessDenied)

	list, err = f.svc.ListUserBookings(context.Background(), "u1", admin)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestService_UpdateStatus(t *testing.T) {
	f := newFixture()
	b := f.seedBooking(t, "u1", domain.StatusPending, "10")

	updated, err := f.svc.UpdateStatus(context.Background(), b.ID, "confirmed", owner)
	require.NoError(t, err)
	assert.Equal(t, "confirmed", updated.Status)

	_, err = f.svc.UpdateStatus(context.Background(), b.ID, "done", owner)
	require.ErrorIs(t, err, ErrInvalidStatus)
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "status", verr.Fields[0].Field)

	_, err = f.svc.UpdateStatus(context.Background(), b.ID, "cancelled", stranger)
	assert.ErrorIs(t, err, ErrAccessDenied)

	// terminal статусы не блокируют переходы
	_, err = f.svc.AdminUpdateStatus(context.Background(), b.ID, "completed")
	require.NoError(t, err)
	again, err := f.svc.AdminUpdateStatus(context.Background(), b.ID, "pending")
	require.NoError(t, err)
	assert.Equal(t, "pending", again.Status)

	_, err = f.svc.AdminUpdateStatus(context.Background(), "missing", "pending")
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestService_Cancel(t *testing.T) {
	f := newFixture()
	b := f.seedBooking(t, "u1", domain.StatusPending, "10")

	err := f.svc.Cancel(context.Background(), b.ID, stranger)
	assert.ErrorIs(t, err, ErrAccessDenied)

	require.NoError(t, f.svc.Cancel(context.Background(), b.ID, owner))
	assert.Equal(t, []string{"cancelled"}, f.events.events)

	err = f.svc.Cancel(context.Background(), b.ID, owner)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestService_GetStats(t *testing.T) {
	f := newFixture()
	f.seedBooking(t, "u1", domain.StatusCompleted, "15.99")
	f.seedBooking(t, "u1", domain.StatusCompleted, "10.01")
	f.seedBooking(t, "u2", domain.StatusPending, "50")

	stats, err := f.svc.GetStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.TotalBookings)
	assert.Equal(t, int64(2), stats.StatusBreakdown["completed"])
	assert.Equal(t, int64(1), stats.StatusBreakdown["pending"])
	assert.Equal(t, int64(0), stats.StatusBreakdown["cancelled"])
	assert.Len(t, stats.StatusBreakdown, 4)
	assert.True(t, decimal.RequireFromString("26").Equal(stats.CompletedRevenue))
	assert.Equal(t, int64(3), stats.TodayBookings)

	f.svc.now = func() time.Time { return time.Now().Add(48 * time.Hour) }
	stats, err = f.svc.GetStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), stats.TodayBookings)
}

func TestStartOfDay(t *testing.T) {
	at := time.Date(2024, 5, 10, 17, 45, 0, 0, time.Local)
	assert.Equal(t, time.Date(2024, 5, 10, 0, 0, 0, 0, time.Local), startOfDay(at))
}

func TestRef_JSON(t *testing.T) {
	ref := models.ServiceRef{ID: "abc"}
	data, err := json.Marshal(ref)
	require.NoError(t, err)
	assert.JSONEq(t, `"abc"`, string(data))

	assert.False(t, ref.IsExpanded())

	expanded := models.ServiceRef{ID: "xyz", Expanded: &serviceModels.ServiceResponse{ID: "xyz", Name: "Deluxe"}}
	data, err = json.Marshal(expanded)
	require.NoError(t, err)

	var obj map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &obj))
	assert.Equal(t, "xyz", obj["_id"])
	assert.Equal(t, "Deluxe", obj["name"])
}
