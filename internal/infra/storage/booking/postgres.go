package booking

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
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
	"github.com/m04kA/SMC-CarWashService/pkg/psqlbuilder"
)

var bookingColumns = []string{
	"id",
	"user_id",
	"service_id",
	"company_id",
	"full_name",
	"phone_number",
	"car_type",
	"license_plate",
	"location",
	"appointment_date",
	"status",
	"is_public_servant",
	"total_price",
	"created_at",
	"updated_at",
}

type bookingRow struct {
	ID              string          `db:"id"`
	UserID          string          `db:"user_id"`
	ServiceID       string          `db:"service_id"`
	CompanyID       *string         `db:"company_id"`
	FullName        string          `db:"full_name"`
	PhoneNumber     string          `db:"phone_number"`
	CarType         string          `db:"car_type"`
	LicensePlate    string          `db:"license_plate"`
	Location        string          `db:"location"`
	AppointmentDate time.Time       `db:"appointment_date"`
	Status          string          `db:"status"`
	IsPublicServant bool            `db:"is_public_servant"`
	TotalPrice      decimal.Decimal `db:"total_price"`
	CreatedAt       time.Time       `db:"created_at"`
	UpdatedAt       time.Time       `db:"updated_at"`
}

func (r *bookingRow) toDomain() *domain.Booking {
	return &domain.Booking{
		ID:              r.ID,
		UserID:          r.UserID,
		ServiceID:       r.ServiceID,
		CompanyID:       r.CompanyID,
		FullName:        r.FullName,
		PhoneNumber:     r.PhoneNumber,
		CarType:         r.CarType,
		LicensePlate:    r.LicensePlate,
		Location:        r.Location,
		AppointmentDate: r.AppointmentDate,
		Status:          domain.BookingStatus(r.Status),
		IsPublicServant: r.IsPublicServant,
		TotalPrice:      r.TotalPrice,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

// PostgresRepository репозиторий бронирований в таблице bookings
type PostgresRepository struct {
	db DB
}

// NewPostgresRepository создает новый экземпляр репозитория бронирований
func NewPostgresRepository(db DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create сохраняет новое бронирование
func (r *PostgresRepository) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	if _, err := uuid.Parse(b.ServiceID); err != nil {
		return nil, fmt.Errorf("%w: Create - serviceId=%s", ErrInvalidReference, b.ServiceID)
	}
	if b.CompanyID != nil {
		if _, err := uuid.Parse(*b.CompanyID); err != nil {
			return nil, fmt.Errorf("%w: Create - companyId=%s", ErrInvalidReference, *b.CompanyID)
		}
	}

	now := time.Now().UTC()

	query, args, err := psqlbuilder.Insert(domain.CollectionBookings).
		Columns(bookingColumns...).
		Values(
			uuid.NewString(),
			b.UserID,
			b.ServiceID,
			b.CompanyID,
			b.FullName,
			b.PhoneNumber,
			b.CarType,
			b.LicensePlate,
			b.Location,
			b.AppointmentDate.UTC(),
			string(b.Status),
			b.IsPublicServant,
			b.TotalPrice,
			now,
			now,
		).
		Suffix("RETURNING " + strings.Join(bookingColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var row bookingRow
	if err := sqlx.GetContext(ctx, r.db, &row, query, args...); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return row.toDomain(), nil
}

// GetByID получает бронирование по ID
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrBookingNotFound
	}

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From(domain.CollectionBookings).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var row bookingRow
	err = sqlx.GetContext(ctx, r.db, &row, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return row.toDomain(), nil
}

// ListByUser возвращает бронирования пользователя, новые первыми
func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Booking, error) {
	return r.selectMany(ctx, "ListByUser", psqlbuilder.Select(bookingColumns...).
		From(domain.CollectionBookings).
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC, id DESC"))
}

// ListAll возвращает все бронирования, новые первыми
func (r *PostgresRepository) ListAll(ctx context.Context) ([]*domain.Booking, error) {
	return r.selectMany(ctx, "ListAll", psqlbuilder.Select(bookingColumns...).
		From(domain.CollectionBookings).
		OrderBy("created_at DESC, id DESC"))
}

// UpdateStatus меняет статус бронирования
func (r *PostgresRepository) UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) (*domain.Booking, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrBookingNotFound
	}

	query, args, err := psqlbuilder.Update(domain.CollectionBookings).
		Set("status", string(status)).
		Set("updated_at", time.Now().UTC()).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + strings.Join(bookingColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	var row bookingRow
	err = sqlx.GetContext(ctx, r.db, &row, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	return row.toDomain(), nil
}

// Delete удаляет бронирование
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrBookingNotFound
	}

	query, args, err := psqlbuilder.Delete(domain.CollectionBookings).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrBookingNotFound
	}
	return nil
}

// CountByStatus возвращает количество бронирований по статусам
func (r *PostgresRepository) CountByStatus(ctx context.Context) (map[domain.BookingStatus]int64, error) {
	query, args, err := psqlbuilder.Select("status", "COUNT(*) AS count").
		From(domain.CollectionBookings).
		GroupBy("status").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CountByStatus - build query: %v", ErrBuildQuery, err)
	}

	var rows []struct {
		Status string `db:"status"`
		Count  int64  `db:"count"`
	}
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("%w: CountByStatus - select: %v", ErrExecQuery, err)
	}

	result := make(map[domain.BookingStatus]int64, len(rows))
	for _, row := range rows {
		result[domain.BookingStatus(row.Status)] = row.Count
	}
	return result, nil
}

// CompletedRevenue возвращает сумму totalPrice завершенных бронирований
func (r *PostgresRepository) CompletedRevenue(ctx context.Context) (decimal.Decimal, error) {
	query, args, err := psqlbuilder.Select("COALESCE(SUM(total_price), 0)").
		From(domain.CollectionBookings).
		Where(squirrel.Eq{"status": string(domain.StatusCompleted)}).
		ToSql()
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: CompletedRevenue - build query: %v", ErrBuildQuery, err)
	}

	var total decimal.Decimal
	if err := sqlx.GetContext(ctx, r.db, &total, query, args...); err != nil {
		return decimal.Zero, fmt.Errorf("%w: CompletedRevenue - select: %v", ErrExecQuery, err)
	}
	return total, nil
}

// CountCreatedSince возвращает количество бронирований, созданных не раньше since
func (r *PostgresRepository) CountCreatedSince(ctx context.Context, since time.Time) (int64, error) {
	query, args, err := psqlbuilder.Select("COUNT(*)").
		From(domain.CollectionBookings).
		Where(squirrel.GtOrEq{"created_at": since.UTC()}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountCreatedSince - build query: %v", ErrBuildQuery, err)
	}

	var count int64
	if err := sqlx.GetContext(ctx, r.db, &count, query, args...); err != nil {
		return 0, fmt.Errorf("%w: CountCreatedSince - select: %v", ErrExecQuery, err)
	}
	return count, nil
}

// AggregateByService возвращает количество бронирований и выручку по каждой услуге
func (r *PostgresRepository) AggregateByService(ctx context.Context) ([]domain.ServiceBookingAggregate, error) {
	query, args, err := psqlbuilder.Select(
		"service_id",
		"COUNT(*) AS booking_count",
		"COALESCE(SUM(total_price) FILTER (WHERE status = 'completed'), 0) AS completed_revenue",
	).
		From(domain.CollectionBookings).
		GroupBy("service_id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: AggregateByService - build query: %v", ErrBuildQuery, err)
	}

	var rows []struct {
		ServiceID        string          `db:"service_id"`
		BookingCount     int64           `db:"booking_count"`
		CompletedRevenue decimal.Decimal `db:"completed_revenue"`
	}
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("%w: AggregateByService - select: %v", ErrExecQuery, err)
	}

	result := make([]domain.ServiceBookingAggregate, 0, len(rows))
	for _, row := range rows {
		result = append(result, domain.ServiceBookingAggregate{
			ServiceID:        row.ServiceID,
			BookingCount:     row.BookingCount,
			CompletedRevenue: row.CompletedRevenue,
		})
	}
	return result, nil
}

func (r *PostgresRepository) selectMany(ctx context.Context, op string, builder squirrel.SelectBuilder) ([]*domain.Booking, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	var rows []bookingRow
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("%w: %s - select bookings: %v", ErrExecQuery, op, err)
	}

	result := make([]*domain.Booking, 0, len(rows))
	for i := range rows {
		result = append(result, rows[i].toDomain())
	}
	return result, nil
}
