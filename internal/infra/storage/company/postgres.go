package company

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
	"github.com/m04kA/SMC-CarWashService/internal/infra/storage/postgres"
	"github.com/m04kA/SMC-CarWashService/pkg/psqlbuilder"
)

// Побайтовое сравнение имен, как у Mongo и драйвера в памяти
const orderByName = `name COLLATE "C" ASC`

var companyColumns = []string{
	"id",
	"name",
	"registration_number",
	"contact_number",
	"email",
	"address",
	"is_verified",
	"created_at",
	"updated_at",
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

type companyRow struct {
	ID                 string    `db:"id"`
	Name               string    `db:"name"`
	RegistrationNumber string    `db:"registration_number"`
	ContactNumber      string    `db:"contact_number"`
	Email              string    `db:"email"`
	Address            string    `db:"address"`
	IsVerified         bool      `db:"is_verified"`
	CreatedAt          time.Time `db:"created_at"`
	UpdatedAt          time.Time `db:"updated_at"`
}

func (r *companyRow) toDomain() *domain.Company {
	return &domain.Company{
		ID:                 r.ID,
		Name:               r.Name,
		RegistrationNumber: r.RegistrationNumber,
		ContactNumber:      r.ContactNumber,
		Email:              r.Email,
		Address:            r.Address,
		IsVerified:         r.IsVerified,
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
	}
}

// PostgresRepository репозиторий компаний в таблице companies
type PostgresRepository struct {
	db DB
}

// NewPostgresRepository создает новый экземпляр репозитория компаний
func NewPostgresRepository(db DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create сохраняет новую компанию
func (r *PostgresRepository) Create(ctx context.Context, c *domain.Company) (*domain.Company, error) {
	now := time.Now().UTC()

	query, args, err := psqlbuilder.Insert(domain.CollectionCompanies).
		Columns(companyColumns...).
		Values(
			uuid.NewString(),
			c.Name,
			c.RegistrationNumber,
			c.ContactNumber,
			c.Email,
			c.Address,
			c.IsVerified,
			now,
			now,
		).
		Suffix("RETURNING " + strings.Join(companyColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var row companyRow
	if err := sqlx.GetContext(ctx, r.db, &row, query, args...); err != nil {
		if postgres.IsUniqueViolation(err) {
			return nil, ErrDuplicateCompany
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return row.toDomain(), nil
}

// GetByID получает компанию по ID
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*domain.Company, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrCompanyNotFound
	}
	return r.getOne(ctx, "GetByID", squirrel.Eq{"id": id})
}

// GetByName получает компанию по точному имени
func (r *PostgresRepository) GetByName(ctx context.Context, name string) (*domain.Company, error) {
	return r.getOne(ctx, "GetByName", squirrel.Eq{"name": name})
}

// GetByIDs получает компании по списку ID, отсутствующие пропускаются
func (r *PostgresRepository) GetByIDs(ctx context.Context, ids []string) ([]*domain.Company, error) {
	valid := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, err := uuid.Parse(id); err == nil {
			valid = append(valid, id)
		}
	}
	if len(valid) == 0 {
		return []*domain.Company{}, nil
	}

	return r.selectMany(ctx, "GetByIDs", psqlbuilder.Select(companyColumns...).
		From(domain.CollectionCompanies).
		Where(squirrel.Eq{"id": valid}))
}

// ListVerified возвращает проверенные компании, отсортированные по имени
func (r *PostgresRepository) ListVerified(ctx context.Context) ([]*domain.Company, error) {
	return r.selectMany(ctx, "ListVerified", psqlbuilder.Select(companyColumns...).
		From(domain.CollectionCompanies).
		Where(squirrel.Eq{"is_verified": true}).
		OrderBy(orderByName))
}

// SearchVerified ищет проверенные компании по подстроке имени без учета регистра.
// Символы шаблона LIKE в запросе экранируются.
func (r *PostgresRepository) SearchVerified(ctx context.Context, query string, limit int) ([]*domain.Company, error) {
	return r.selectMany(ctx, "SearchVerified", psqlbuilder.Select(companyColumns...).
		From(domain.CollectionCompanies).
		Where(squirrel.Eq{"is_verified": true}).
		Where(squirrel.ILike{"name": "%" + likeEscaper.Replace(query) + "%"}).
		OrderBy(orderByName).
		Limit(uint64(limit)))
}

// ListAll возвращает все компании, новые первыми
func (r *PostgresRepository) ListAll(ctx context.Context) ([]*domain.Company, error) {
	return r.selectMany(ctx, "ListAll", psqlbuilder.Select(companyColumns...).
		From(domain.CollectionCompanies).
		OrderBy("created_at DESC, id DESC"))
}

// SetVerified устанавливает флаг проверки компании
func (r *PostgresRepository) SetVerified(ctx context.Context, id string, verified bool) (*domain.Company, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrCompanyNotFound
	}

	query, args, err := psqlbuilder.Update(domain.CollectionCompanies).
		Set("is_verified", verified).
		Set("updated_at", time.Now().UTC()).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + strings.Join(companyColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: SetVerified - build update query: %v", ErrBuildQuery, err)
	}

	var row companyRow
	err = sqlx.GetContext(ctx, r.db, &row, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCompanyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: SetVerified - execute update: %v", ErrExecQuery, err)
	}

	return row.toDomain(), nil
}

func (r *PostgresRepository) getOne(ctx context.Context, op string, where squirrel.Sqlizer) (*domain.Company, error) {
	query, args, err := psqlbuilder.Select(companyColumns...).
		From(domain.CollectionCompanies).
		Where(where).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	var row companyRow
	err = sqlx.GetContext(ctx, r.db, &row, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCompanyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan company: %v", ErrScanRow, op, err)
	}

	return row.toDomain(), nil
}

func (r *PostgresRepository) selectMany(ctx context.Context, op string, builder squirrel.SelectBuilder) ([]*domain.Company, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	var rows []companyRow
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("%w: %s - select companies: %v", ErrExecQuery, op, err)
	}

	result := make([]*domain.Company, 0, len(rows))
	for i := range rows {
		result = append(result, rows[i].toDomain())
	}
	return result, nil
}
