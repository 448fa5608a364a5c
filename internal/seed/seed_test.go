package seed

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
	companyRepo "github.com/m04kA/SMC-CarWashService/internal/infra/storage/company"
	serviceRepo "github.com/m04kA/SMC-CarWashService/internal/infra/storage/service"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{}) {}

func TestRun_FreshStorage(t *testing.T) {
	ctx := context.Background()
	services := serviceRepo.NewMemoryRepository()
	companies := companyRepo.NewMemoryRepository()

	res, err := Run(ctx, services, companies, nopLogger{})
	require.NoError(t, err)
	assert.Equal(t, len(DefaultServices()), res.ServicesCreated)
	assert.Equal(t, len(DefaultCompanies()), res.CompaniesCreated)
	assert.Zero(t, res.CompaniesUpdated)

	list, err := services.List(ctx, domain.OldestFirst)
	require.NoError(t, err)
	require.Len(t, list, 4)
	assert.Equal(t, "Standard Package", list[0].Name)
	assert.True(t, list[3].IsPublicServant)
	assert.True(t, list[3].RequiresCompany())

	verified, err := companies.ListVerified(ctx)
	require.NoError(t, err)
	assert.Len(t, verified, 3)
}

func TestRun_Idempotent(t *testing.T) {
	ctx := context.Background()
	services := serviceRepo.NewMemoryRepository()
	companies := companyRepo.NewMemoryRepository()

	_, err := Run(ctx, services, companies, nopLogger{})
	require.NoError(t, err)

	res, err := Run(ctx, services, companies, nopLogger{})
	require.NoError(t, err)
	assert.Equal(t, Result{}, res)

	list, err := services.List(ctx, domain.OldestFirst)
	require.NoError(t, err)
	assert.Len(t, list, 4)
}

func TestRun_VerifiesExistingCompany(t *testing.T) {
	ctx := context.Background()
	companies := companyRepo.NewMemoryRepository()

	lvpd := DefaultCompanies()[0]
	lvpd.IsVerified = false
	created, err := companies.Create(ctx, &lvpd)
	require.NoError(t, err)

	res, err := Run(ctx, serviceRepo.NewMemoryRepository(), companies, nopLogger{})
	require.NoError(t, err)
	assert.Equal(t, 1, res.CompaniesUpdated)
	assert.Equal(t, 2, res.CompaniesCreated)

	got, err := companies.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, got.IsVerified)
}

type failingCompanies struct {
	*companyRepo.MemoryRepository
}

func (failingCompanies) GetByName(context.Context, string) (*domain.Company, error) {
	return nil, errors.New("connection reset")
}

func TestRun_LookupError(t *testing.T) {
	_, err := Run(context.Background(), serviceRepo.NewMemoryRepository(),
		failingCompanies{companyRepo.NewMemoryRepository()}, nopLogger{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSeed)
}
