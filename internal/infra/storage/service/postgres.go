package service

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
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
	"github.com/m04kA/SMC-CarWashService/pkg/psqlbuilder"
)

var serviceColumns = []string{
	"id",
	"name",
	"price",
	"features",
	"popular",
	"is_public_servant",
	"required_company_verification",
	"created_at",
	"updated_at",
}

type serviceRow struct {
	ID                          string          `db:"id"`
	Name                        string          `db:"name"`
	Price                       decimal.Decimal `db:"price"`
	Features                    pq.StringArray  `db:"features"`
	Popular                     bool            `db:"popular"`
	IsPublicServant             bool            `db:"is_public_servant"`
	RequiredCompanyVerification bool            `db:"required_company_verification"`
	CreatedAt                   time.Time       `db:"created_at"`
	UpdatedAt                   time.Time       `db:"updated_at"`
}

func (r *serviceRow) toDomain() *domain.Service {
	return &domain.Service{
		ID:                          r.ID,
		Name:                        r.Name,
		Price:                       r.Price,
		Features:                    []string(r.Features),
		Popular:                     r.Popular,
		IsPublicServant:             r.IsPublicServant,
		RequiredCompanyVerification: r.RequiredCompanyVerification,
		CreatedAt:                   r.CreatedAt,
		UpdatedAt:                   r.UpdatedAt,
	}
}

// PostgresRepository репозиторий услуг в таблице services
type PostgresRepository struct {
	db DB
}

// NewPostgresRepository создает новый экземпляр репозитория услуг
func NewPostgresRepository(db DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create сохраняет новую услугу
func (r *PostgresRepository) Create(ctx context.Context, svc *domain.Service) (*domain.Service, error) {
	now := time.Now().UTC()

	query, args, err := psqlbuilder.Insert(domain.CollectionServices).
		Columns(serviceColumns...).
		Values(
			uuid.NewString(),
			svc.Name,
			svc.Price,
			pq.StringArray(svc.Features),
			svc.Popular,
			svc.IsPublicServant,
			svc.RequiredCompanyVerification,
			now,
			now,
		).
		Suffix("RETURNING " + strings.Join(serviceColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var row serviceRow
	if err := sqlx.GetContext(ctx, r.db, &row, query, args...); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return row.toDomain(), nil
}

// GetByID получает услугу по ID
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*domain.Service, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrServiceNotFound
	}

	query, args, err := psqlbuilder.Select(serviceColumns...).
		From(domain.CollectionServices).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var row serviceRow
	err = sqlx.GetContext(ctx, r.db, &row, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan service: %v", ErrScanRow, err)
	}

	return row.toDomain(), nil
}

// GetByIDs получает услуги по списку ID, отсутствующие пропускаются
func (r *PostgresRepository) GetByIDs(ctx context.Context, ids []string) ([]*domain.Service, error) {
	valid := validUUIDs(ids)
	if len(valid) == 0 {
		return []*domain.Service{}, nil
	}

	return r.selectMany(ctx, "GetByIDs", psqlbuilder.Select(serviceColumns...).
		From(domain.CollectionServices).
		Where(squirrel.Eq{"id": valid}))
}

// List возвращает все услуги в заданном порядке
func (r *PostgresRepository) List(ctx context.Context, order domain.SortOrder) ([]*domain.Service, error) {
	orderBy := "created_at ASC, id ASC"
	if order == domain.NewestFirst {
		orderBy = "created_at DESC, id DESC"
	}

	return r.selectMany(ctx, "List", psqlbuilder.Select(serviceColumns...).
		From(domain.CollectionServices).
		OrderBy(orderBy))
}

// Update заменяет редактируемые поля услуги
func (r *PostgresRepository) Update(ctx context.Context, svc *domain.Service) (*domain.Service, error) {
	return r.updateReturning(ctx, "Update", svc.ID, map[string]interface{}{
		"name":                          svc.Name,
		"price":                         svc.Price,
		"features":                      pq.StringArray(svc.Features),
		"popular":                       svc.Popular,
		"is_public_servant":             svc.IsPublicServant,
		"required_company_verification": svc.RequiredCompanyVerification,
	})
}

// SetPopular устанавливает флаг популярности
func (r *PostgresRepository) SetPopular(ctx context.Context, id string, popular bool) (*domain.Service, error) {
	return r.updateReturning(ctx, "SetPopular", id, map[string]interface{}{"popular": popular})
}

func (r *PostgresRepository) updateReturning(ctx context.Context, op, id string, set map[string]interface{}) (*domain.Service, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrServiceNotFound
	}

	set["updated_at"] = time.Now().UTC()

	query, args, err := psqlbuilder.Update(domain.CollectionServices).
		SetMap(set).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + strings.Join(serviceColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build update query: %v", ErrBuildQuery, op, err)
	}

	var row serviceRow
	err = sqlx.GetContext(ctx, r.db, &row, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	return row.toDomain(), nil
}

func (r *PostgresRepository) selectMany(ctx context.Context, op string, builder squirrel.SelectBuilder) ([]*domain.Service, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	var rows []serviceRow
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("%w: %s - select services: %v", ErrExecQuery, op, err)
	}

	result := make([]*domain.Service, 0, len(rows))
	for i := range rows {
		result = append(result, rows[i].toDomain())
	}
	return result, nil
}

func validUUIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, err := uuid.Parse(id); err == nil {
			out = append(out, id)
		}
	}
	return out
}
