package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
	"github.com/m04kA/SMC-CarWashService/internal/infra/storage/mongodb"
)

type bookingDocument struct {
	ID              primitive.ObjectID   `bson:"_id,omitempty"`
	UserID          string               `bson:"userId"`
	ServiceID       primitive.ObjectID   `bson:"serviceId"`
	CompanyID       *primitive.ObjectID  `bson:"companyId,omitempty"`
	FullName        string               `bson:"fullName"`
	PhoneNumber     string               `bson:"phoneNumber"`
	CarType         string               `bson:"carType"`
	LicensePlate    string               `bson:"licensePlate"`
	Location        string               `bson:"location"`
	AppointmentDate time.Time            `bson:"appointmentDate"`
	Status          string               `bson:"status"`
	IsPublicServant bool                 `bson:"isPublicServant"`
	TotalPrice      primitive.Decimal128 `bson:"totalPrice"`
	CreatedAt       time.Time            `bson:"createdAt"`
	UpdatedAt       time.Time            `bson:"updatedAt"`
}

func (d *bookingDocument) toDomain() (*domain.Booking, error) {
	price, err := mongodb.FromDecimal128(d.TotalPrice)
	if err != nil {
		return nil, err
	}

	b := &domain.Booking{
		ID:              d.ID.Hex(),
		UserID:          d.UserID,
		ServiceID:       d.ServiceID.Hex(),
		FullName:        d.FullName,
		PhoneNumber:     d.PhoneNumber,
		CarType:         d.CarType,
		LicensePlate:    d.LicensePlate,
		Location:        d.Location,
		AppointmentDate: d.AppointmentDate,
		Status:          domain.BookingStatus(d.Status),
		IsPublicServant: d.IsPublicServant,
		TotalPrice:      price,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}
	if d.CompanyID != nil {
		companyID := d.CompanyID.Hex()
		b.CompanyID = &companyID
	}
	return b, nil
}

// MongoRepository репозиторий бронирований в коллекции bookings
type MongoRepository struct {
	coll    *mongo.Collection
	timeout time.Duration
}

// NewMongoRepository создает репозиторий поверх базы db
func NewMongoRepository(db *mongo.Database, timeout time.Duration) *MongoRepository {
	return &MongoRepository{
		coll:    db.Collection(domain.CollectionBookings),
		timeout: timeout,
	}
}

// EnsureIndexes создает индексы коллекции
func (r *MongoRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "serviceId", Value: 1}}},
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("%w: EnsureIndexes: %v", ErrExecQuery, err)
	}
	return nil
}

// Create сохраняет новое бронирование
func (r *MongoRepository) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	serviceID, err := primitive.ObjectIDFromHex(b.ServiceID)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - serviceId=%s", ErrInvalidReference, b.ServiceID)
	}

	var companyID *primitive.ObjectID
	if b.CompanyID != nil {
		oid, err := primitive.ObjectIDFromHex(*b.CompanyID)
		if err != nil {
			return nil, fmt.Errorf("%w: Create - companyId=%s", ErrInvalidReference, *b.CompanyID)
		}
		companyID = &oid
	}

	price, err := mongodb.ToDecimal128(b.TotalPrice)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - totalPrice: %v", ErrBuildQuery, err)
	}

	ctx, cancel := mongodb.WithTimeout(ctx, r.timeout)
	defer cancel()

	now := time.Now().UTC().Truncate(time.Millisecond)
	doc := bookingDocument{
		ID:              primitive.NewObjectID(),
		UserID:          b.UserID,
		ServiceID:       serviceID,
		CompanyID:       companyID,
		FullName:        b.FullName,
		PhoneNumber:     b.PhoneNumber,
		CarType:         b.CarType,
		LicensePlate:    b.LicensePlate,
		Location:        b.Location,
		AppointmentDate: b.AppointmentDate.UTC(),
		Status:          string(b.Status),
		IsPublicServant: b.IsPublicServant,
		TotalPrice:      price,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("%w: Create - insert: %v", ErrExecQuery, err)
	}

	return doc.toDomain()
}

// GetByID получает бронирование по ID
func (r *MongoRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrBookingNotFound
	}

	ctx, cancel := mongodb.WithTimeout(ctx, r.timeout)
	defer cancel()

	var doc bookingDocument
	err = r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - find: %v", ErrExecQuery, err)
	}

	b, err := doc.toDomain()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - decode: %v", ErrScanRow, err)
	}
	return b, nil
}

// ListByUser возвращает бронирования пользователя, новые первыми
func (r *MongoRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Booking, error) {
	return r.find(ctx, "ListByUser", bson.M{"userId": userID})
}

// ListAll возвращает все бронирования, новые первыми
func (r *MongoRepository) ListAll(ctx context.Context) ([]*domain.Booking, error) {
	return r.find(ctx, "ListAll", bson.M{})
}

// UpdateStatus меняет статус бронирования одной атомарной операцией
func (r *MongoRepository) UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) (*domain.Booking, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrBookingNotFound
	}

	ctx, cancel := mongodb.WithTimeout(ctx, r.timeout)
	defer cancel()

	var doc bookingDocument
	err = r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{
			"status":    string(status),
			"updatedAt": time.Now().UTC().Truncate(time.Millisecond),
		}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateStatus - update: %v", ErrExecQuery, err)
	}

	b, err := doc.toDomain()
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateStatus - decode: %v", ErrScanRow, err)
	}
	return b, nil
}

// Delete удаляет бронирование
func (r *MongoRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrBookingNotFound
	}

	ctx, cancel := mongodb.WithTimeout(ctx, r.timeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("%w: Delete - delete: %v", ErrExecQuery, err)
	}
	if res.DeletedCount == 0 {
		return ErrBookingNotFound
	}
	return nil
}

// CountByStatus возвращает количество бронирований по статусам
func (r *MongoRepository) CountByStatus(ctx context.Context) (map[domain.BookingStatus]int64, error) {
	var rows []struct {
		Status string `bson:"_id"`
		Count  int64  `bson:"count"`
	}
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$status"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}
	if err := r.aggregate(ctx, "CountByStatus", pipeline, &rows); err != nil {
		return nil, err
	}

	result := make(map[domain.BookingStatus]int64, len(rows))
	for _, row := range rows {
		result[domain.BookingStatus(row.Status)] = row.Count
	}
	return result, nil
}

// CompletedRevenue возвращает сумму totalPrice завершенных бронирований
func (r *MongoRepository) CompletedRevenue(ctx context.Context) (decimal.Decimal, error) {
	var rows []struct {
		Total primitive.Decimal128 `bson:"total"`
	}
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "status", Value: string(domain.StatusCompleted)}}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "total", Value: bson.D{{Key: "$sum", Value: "$totalPrice"}}},
		}}},
	}
	if err := r.aggregate(ctx, "CompletedRevenue", pipeline, &rows); err != nil {
		return decimal.Zero, err
	}
	if len(rows) == 0 {
		return decimal.Zero, nil
	}

	total, err := mongodb.FromDecimal128(rows[0].Total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: CompletedRevenue - decode: %v", ErrScanRow, err)
	}
	return total, nil
}

// CountCreatedSince возвращает количество бронирований, созданных не раньше since
func (r *MongoRepository) CountCreatedSince(ctx context.Context, since time.Time) (int64, error) {
	ctx, cancel := mongodb.WithTimeout(ctx, r.timeout)
	defer cancel()

	count, err := r.coll.CountDocuments(ctx, bson.M{"createdAt": bson.M{"$gte": since.UTC()}})
	if err != nil {
		return 0, fmt.Errorf("%w: CountCreatedSince - count: %v", ErrExecQuery, err)
	}
	return count, nil
}

// AggregateByService возвращает количество бронирований и выручку по каждой услуге
func (r *MongoRepository) AggregateByService(ctx context.Context) ([]domain.ServiceBookingAggregate, error) {
	var rows []struct {
		ServiceID primitive.ObjectID   `bson:"_id"`
		Count     int64                `bson:"count"`
		Revenue   primitive.Decimal128 `bson:"revenue"`
	}

	completedPrice := bson.D{{Key: "$cond", Value: bson.A{
		bson.D{{Key: "$eq", Value: bson.A{"$status", string(domain.StatusCompleted)}}},
		"$totalPrice",
		bson.D{{Key: "$toDecimal", Value: 0}},
	}}}

	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$serviceId"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "revenue", Value: bson.D{{Key: "$sum", Value: completedPrice}}},
		}}},
	}
	if err := r.aggregate(ctx, "AggregateByService", pipeline, &rows); err != nil {
		return nil, err
	}

	result := make([]domain.ServiceBookingAggregate, 0, len(rows))
	for _, row := range rows {
		revenue, err := mongodb.FromDecimal128(row.Revenue)
		if err != nil {
			return nil, fmt.Errorf("%w: AggregateByService - decode: %v", ErrScanRow, err)
		}
		result = append(result, domain.ServiceBookingAggregate{
			ServiceID:        row.ServiceID.Hex(),
			BookingCount:     row.Count,
			CompletedRevenue: revenue,
		})
	}
	return result, nil
}

func (r *MongoRepository) aggregate(ctx context.Context, op string, pipeline mongo.Pipeline, out interface{}) error {
	ctx, cancel := mongodb.WithTimeout(ctx, r.timeout)
	defer cancel()

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return fmt.Errorf("%w: %s - aggregate: %v", ErrExecQuery, op, err)
	}
	if err := cursor.All(ctx, out); err != nil {
		return fmt.Errorf("%w: %s - decode: %v", ErrScanRow, op, err)
	}
	return nil
}

func (r *MongoRepository) find(ctx context.Context, op string, filter bson.M) ([]*domain.Booking, error) {
	ctx, cancel := mongodb.WithTimeout(ctx, r.timeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - find: %v", ErrExecQuery, op, err)
	}

	var docs []bookingDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("%w: %s - decode: %v", ErrScanRow, op, err)
	}

	result := make([]*domain.Booking, 0, len(docs))
	for i := range docs {
		b, err := docs[i].toDomain()
		if err != nil {
			return nil, fmt.Errorf("%w: %s - decode: %v", ErrScanRow, op, err)
		}
		result = append(result, b)
	}
	return result, nil
}
