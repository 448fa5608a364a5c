package companies

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
	companyRepo "github.com/m04kA/SMC-CarWashService/internal/infra/storage/company"
	"github.com/m04kA/SMC-CarWashService/internal/service/companies/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func request(name, reg, email string, verified bool) *models.CreateCompanyRequest {
	return &models.CreateCompanyRequest{
		Name:               name,
		RegistrationNumber: reg,
		ContactNumber:      "702-555-0100",
		Email:              email,
		Address:            "400 S Martin L King Blvd, Las Vegas",
		IsVerified:         verified,
	}
}

func TestService_Search_VerifiedOnly(t *testing.T) {
	ctx := context.Background()
	svc := NewService(companyRepo.NewMemoryRepository(), nopLogger{})

	_, err := svc.Create(ctx, request("Las Vegas Police Department", "LVPD001", "contact@lvpd.example", true), true)
	require.NoError(t, err)
	_, err = svc.Create(ctx, request("Speedy PD Couriers", "SPD001", "hi@spd.example", false), true)
	require.NoError(t, err)

	found, err := svc.Search(ctx, "pd")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Las Vegas Police Department", found[0].Name)
	assert.Equal(t, "LVPD001", found[0].RegistrationNumber)
}

func TestService_Search_Validation(t *testing.T) {
	svc := NewService(companyRepo.NewMemoryRepository(), nopLogger{})

	_, err := svc.Search(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Search(context.Background(), strings.Repeat("a", domain.MaxSearchQueryLength+1))
	assert.ErrorIs(t, err, ErrInvalidInput)

	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "query", verr.Fields[0].Field)
}

func TestService_Create_NonAdminCannotVerify(t *testing.T) {
	svc := NewService(companyRepo.NewMemoryRepository(), nopLogger{})

	created, err := svc.Create(context.Background(), request("Clark County Fire", "CCFD001", "fire@ccfd.example", true), false)
	require.NoError(t, err)
	assert.False(t, created.IsVerified)

	list, err := svc.ListVerified(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestService_Create_Duplicate(t *testing.T) {
	ctx := context.Background()
	svc := NewService(companyRepo.NewMemoryRepository(), nopLogger{})

	_, err := svc.Create(ctx, request("Nevada Highway Patrol", "NHP001", "info@nhp.example", true), true)
	require.NoError(t, err)

	_, err = svc.Create(ctx, request("NHP Duplicate", "NHP001", "other@nhp.example", true), true)
	assert.ErrorIs(t, err, ErrCompanyExists)
}

func TestService_SetVerified(t *testing.T) {
	ctx := context.Background()
	svc := NewService(companyRepo.NewMemoryRepository(), nopLogger{})

	created, err := svc.Create(ctx, request("Clark County Fire", "CCFD001", "fire@ccfd.example", false), true)
	require.NoError(t, err)

	verified, err := svc.SetVerified(ctx, created.ID, true)
	require.NoError(t, err)
	assert.True(t, verified.IsVerified)

	_, err = svc.SetVerified(ctx, "missing", true)
	assert.ErrorIs(t, err, ErrCompanyNotFound)

	_, err = svc.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, ErrCompanyNotFound)
}

func TestCreateCompanyRequest_Normalize(t *testing.T) {
	req := request("  LVPD  ", " LVPD001 ", "  Contact@LVPD.Example ", false)
	req.Normalize()

	assert.Equal(t, "LVPD", req.Name)
	assert.Equal(t, "LVPD001", req.RegistrationNumber)
	assert.Equal(t, "contact@lvpd.example", req.Email)
}
