package company

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
)

func newMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPostgresRepository(sqlx.NewDb(db, "postgres")), mock
}

func TestPostgresRepository_Create_Duplicate(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(`INSERT INTO companies`).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "companies_email_key"})

	_, err := repo.Create(context.Background(), newCompany("LVPD", "LVPD001", true))
	assert.ErrorIs(t, err, ErrDuplicateCompany)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_SearchVerified_EscapesPattern(t *testing.T) {
	repo, mock := newMock(t)
	now := time.Now().UTC()
	id := uuid.NewString()

	mock.ExpectQuery(`SELECT .+ FROM companies WHERE is_verified = \$1 AND name ILIKE \$2 ORDER BY name COLLATE "C" ASC LIMIT 10`).
		WithArgs(true, `%50\%\_off%`).
		WillReturnRows(sqlmock.NewRows(companyColumns).
			AddRow(id, "50%_off Wash Club", "W1", "1", "w@example.org", "addr", true, now, now))

	found, err := repo.SearchVerified(context.Background(), "50%_off", domain.MaxCompanySearchResults)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, id, found[0].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_ListVerified_ByteOrder(t *testing.T) {
	repo, mock := newMock(t)
	now := time.Now().UTC()

	mock.ExpectQuery(`SELECT .+ FROM companies WHERE is_verified = \$1 ORDER BY name COLLATE "C" ASC`).
		WithArgs(true).
		WillReturnRows(sqlmock.NewRows(companyColumns).
			AddRow(uuid.NewString(), "Bravo", "B1", "1", "b@example.org", "addr", true, now, now).
			AddRow(uuid.NewString(), "alpha", "A1", "1", "a@example.org", "addr", true, now, now))

	found, err := repo.ListVerified(context.Background())
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, "Bravo", found[0].Name)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_SetVerified_NotFound(t *testing.T) {
	repo, mock := newMock(t)
	id := uuid.NewString()

	mock.ExpectQuery(`UPDATE companies SET is_verified = \$1, updated_at = \$2 WHERE id = \$3 RETURNING`).
		WithArgs(true, sqlmock.AnyArg(), id).
		WillReturnRows(sqlmock.NewRows(companyColumns))

	_, err := repo.SetVerified(context.Background(), id, true)
	assert.ErrorIs(t, err, ErrCompanyNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
