package order

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
	"github.com/m04kA/SMC-CarWashService/pkg/psqlbuilder"
)

var orderColumns = []string{
	"id",
	"full_name",
	"car_plate",
	"phone_number",
	"location",
	"service_type",
	"package_type",
	"price",
	"status",
	"created_at",
	"updated_at",
}

type orderRow struct {
	ID          string    `db:"id"`
	FullName    string    `db:"full_name"`
	CarPlate    string    `db:"car_plate"`
	PhoneNumber string    `db:"phone_number"`
	Location    string    `db:"location"`
	ServiceType string    `db:"service_type"`
	PackageType *string   `db:"package_type"`
	Price       string    `db:"price"`
	Status      string    `db:"status"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

func (r *orderRow) toDomain() *domain.Order {
	o := &domain.Order{
		ID:          r.ID,
		FullName:    r.FullName,
		CarPlate:    r.CarPlate,
		PhoneNumber: r.PhoneNumber,
		Location:    r.Location,
		ServiceType: r.ServiceType,
		Price:       r.Price,
		Status:      domain.OrderStatus(r.Status),
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
	if r.PackageType != nil {
		p := domain.PackageType(*r.PackageType)
		o.PackageType = &p
	}
	return o
}

// PostgresRepository репозиторий заказов в таблице orders
type PostgresRepository struct {
	db DB
}

// NewPostgresRepository создает новый экземпляр репозитория заказов
func NewPostgresRepository(db DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create сохраняет новый заказ
func (r *PostgresRepository) Create(ctx context.Context, o *domain.Order) (*domain.Order, error) {
	now := time.Now().UTC()

	var packageType *string
	if o.PackageType != nil {
		p := string(*o.PackageType)
		packageType = &p
	}

	query, args, err := psqlbuilder.Insert(domain.CollectionOrders).
		Columns(orderColumns...).
		Values(
			uuid.NewString(),
			o.FullName,
			o.CarPlate,
			o.PhoneNumber,
			o.Location,
			o.ServiceType,
			packageType,
			o.Price,
			string(o.Status),
			now,
			now,
		).
		Suffix("RETURNING " + strings.Join(orderColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var row orderRow
	if err := sqlx.GetContext(ctx, r.db, &row, query, args...); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return row.toDomain(), nil
}

// GetByID получает заказ по ID
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrOrderNotFound
	}

	query, args, err := psqlbuilder.Select(orderColumns...).
		From(domain.CollectionOrders).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var row orderRow
	err = sqlx.GetContext(ctx, r.db, &row, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan order: %v", ErrScanRow, err)
	}

	return row.toDomain(), nil
}

// List возвращает все заказы, новые первыми
func (r *PostgresRepository) List(ctx context.Context) ([]*domain.Order, error) {
	query, args, err := psqlbuilder.Select(orderColumns...).
		From(domain.CollectionOrders).
		OrderBy("created_at DESC, id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	var rows []orderRow
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("%w: List - select orders: %v", ErrExecQuery, err)
	}

	result := make([]*domain.Order, 0, len(rows))
	for i := range rows {
		result = append(result, rows[i].toDomain())
	}
	return result, nil
}

// UpdateStatus меняет статус заказа
func (r *PostgresRepository) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrOrderNotFound
	}

	query, args, err := psqlbuilder.Update(domain.CollectionOrders).
		Set("status", string(status)).
		Set("updated_at", time.Now().UTC()).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + strings.Join(orderColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	var row orderRow
	err = sqlx.GetContext(ctx, r.db, &row, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	return row.toDomain(), nil
}
