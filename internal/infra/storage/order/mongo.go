package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
	"github.com/m04kA/SMC-CarWashService/internal/infra/storage/mongodb"
)

type orderDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	FullName    string             `bson:"fullName"`
	CarPlate    string             `bson:"carPlate"`
	PhoneNumber string             `bson:"phoneNumber"`
	Location    string             `bson:"location"`
	ServiceType string             `bson:"serviceType"`
	PackageType *string            `bson:"packageType,omitempty"`
	Price       string             `bson:"price"`
	Status      string             `bson:"status"`
	CreatedAt   time.Time          `bson:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
}

func (d *orderDocument) toDomain() *domain.Order {
	o := &domain.Order{
		ID:          d.ID.Hex(),
		FullName:    d.FullName,
		CarPlate:    d.CarPlate,
		PhoneNumber: d.PhoneNumber,
		Location:    d.Location,
		ServiceType: d.ServiceType,
		Price:       d.Price,
		Status:      domain.OrderStatus(d.Status),
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
	if d.PackageType != nil {
		p := domain.PackageType(*d.PackageType)
		o.PackageType = &p
	}
	return o
}

// MongoRepository репозиторий заказов в коллекции orders
type MongoRepository struct {
	coll    *mongo.Collection
	timeout time.Duration
}

// NewMongoRepository создает репозиторий поверх базы db
func NewMongoRepository(db *mongo.Database, timeout time.Duration) *MongoRepository {
	return &MongoRepository{
		coll:    db.Collection(domain.CollectionOrders),
		timeout: timeout,
	}
}

// EnsureIndexes создает индексы коллекции
func (r *MongoRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "createdAt", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("%w: EnsureIndexes: %v", ErrExecQuery, err)
	}
	return nil
}

// Create сохраняет новый заказ
func (r *MongoRepository) Create(ctx context.Context, o *domain.Order) (*domain.Order, error) {
	ctx, cancel := mongodb.WithTimeout(ctx, r.timeout)
	defer cancel()

	now := time.Now().UTC().Truncate(time.Millisecond)
	doc := orderDocument{
		ID:          primitive.NewObjectID(),
		FullName:    o.FullName,
		CarPlate:    o.CarPlate,
		PhoneNumber: o.PhoneNumber,
		Location:    o.Location,
		ServiceType: o.ServiceType,
		Price:       o.Price,
		Status:      string(o.Status),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if o.PackageType != nil {
		p := string(*o.PackageType)
		doc.PackageType = &p
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("%w: Create - insert: %v", ErrExecQuery, err)
	}

	return doc.toDomain(), nil
}

// GetByID получает заказ по ID
func (r *MongoRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrOrderNotFound
	}

	ctx, cancel := mongodb.WithTimeout(ctx, r.timeout)
	defer cancel()

	var doc orderDocument
	err = r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - find: %v", ErrExecQuery, err)
	}
	return doc.toDomain(), nil
}

// List возвращает все заказы, новые первыми
func (r *MongoRepository) List(ctx context.Context) ([]*domain.Order, error) {
	ctx, cancel := mongodb.WithTimeout(ctx, r.timeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: List - find: %v", ErrExecQuery, err)
	}

	var docs []orderDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("%w: List - decode: %v", ErrScanRow, err)
	}

	result := make([]*domain.Order, 0, len(docs))
	for i := range docs {
		result = append(result, docs[i].toDomain())
	}
	return result, nil
}

// UpdateStatus меняет статус заказа
func (r *MongoRepository) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrOrderNotFound
	}

	ctx, cancel := mongodb.WithTimeout(ctx, r.timeout)
	defer cancel()

	var doc orderDocument
	err = r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{
			"status":    string(status),
			"updatedAt": time.Now().UTC().Truncate(time.Millisecond),
		}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateStatus - update: %v", ErrExecQuery, err)
	}
	return doc.toDomain(), nil
}
