package service

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

type serviceDocument struct {
	ID                          primitive.ObjectID   `bson:"_id,omitempty"`
	Name                        string               `bson:"name"`
	Price                       primitive.Decimal128 `bson:"price"`
	Features                    []string             `bson:"features"`
	Popular                     bool                 `bson:"popular"`
	IsPublicServant             bool                 `bson:"isPublicServant"`
	RequiredCompanyVerification bool                 `bson:"requiredCompanyVerification"`
	CreatedAt                   time.Time            `bson:"createdAt"`
	UpdatedAt                   time.Time            `bson:"updatedAt"`
}

func (d *serviceDocument) toDomain() (*domain.Service, error) {
	price, err := mongodb.FromDecimal128(d.Price)
	if err != nil {
		return nil, err
	}
	return &domain.Service{
		ID:                          d.ID.Hex(),
		Name:                        d.Name,
		Price:                       price,
		Features:                    d.Features,
		Popular:                     d.Popular,
		IsPublicServant:             d.IsPublicServant,
		RequiredCompanyVerification: d.RequiredCompanyVerification,
		CreatedAt:                   d.CreatedAt,
		UpdatedAt:                   d.UpdatedAt,
	}, nil
}

// MongoRepository репозиторий услуг в коллекции services
type MongoRepository struct {
	coll    *mongo.Collection
	timeout time.Duration
}

// NewMongoRepository создает репозиторий поверх базы db
func NewMongoRepository(db *mongo.Database, timeout time.Duration) *MongoRepository {
	return &MongoRepository{
		coll:    db.Collection(domain.CollectionServices),
		timeout: timeout,
	}
}

// EnsureIndexes создает индексы коллекции
func (r *MongoRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "createdAt", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("%w: EnsureIndexes: %v", ErrExecQuery, err)
	}
	return nil
}

// Create сохраняет новую услугу
func (r *MongoRepository) Create(ctx context.Context, svc *domain.Service) (*domain.Service, error) {
	ctx, cancel := mongodb.WithTimeout(ctx, r.timeout)
	defer cancel()

	price, err := mongodb.ToDecimal128(svc.Price)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - price: %v", ErrBuildQuery, err)
	}

	now := time.Now().UTC().Truncate(time.Millisecond)
	doc := serviceDocument{
		ID:                          primitive.NewObjectID(),
		Name:                        svc.Name,
		Price:                       price,
		Features:                    svc.Features,
		Popular:                     svc.Popular,
		IsPublicServant:             svc.IsPublicServant,
		RequiredCompanyVerification: svc.RequiredCompanyVerification,
		CreatedAt:                   now,
		UpdatedAt:                   now,
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("%w: Create - insert: %v", ErrExecQuery, err)
	}

	return doc.toDomain()
}

// GetByID получает услугу по ID
func (r *MongoRepository) GetByID(ctx context.Context, id string) (*domain.Service, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrServiceNotFound
	}

	ctx, cancel := mongodb.WithTimeout(ctx, r.timeout)
	defer cancel()

	var doc serviceDocument
	err = r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - find: %v", ErrExecQuery, err)
	}

	svc, err := doc.toDomain()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - decode: %v", ErrScanRow, err)
	}
	return svc, nil
}

// GetByIDs получает услуги по списку ID, отсутствующие пропускаются
func (r *MongoRepository) GetByIDs(ctx context.Context, ids []string) ([]*domain.Service, error) {
	oids := mongodb.ParseIDs(ids)
	if len(oids) == 0 {
		return []*domain.Service{}, nil
	}
	return r.find(ctx, "GetByIDs", bson.M{"_id": bson.M{"$in": oids}}, options.Find())
}

// List возвращает все услуги в заданном порядке
func (r *MongoRepository) List(ctx context.Context, order domain.SortOrder) ([]*domain.Service, error) {
	dir := 1
	if order == domain.NewestFirst {
		dir = -1
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: dir}, {Key: "_id", Value: dir}})
	return r.find(ctx, "List", bson.M{}, opts)
}

// Update заменяет редактируемые поля услуги
func (r *MongoRepository) Update(ctx context.Context, svc *domain.Service) (*domain.Service, error) {
	price, err := mongodb.ToDecimal128(svc.Price)
	if err != nil {
		return nil, fmt.Errorf("%w: Update - price: %v", ErrBuildQuery, err)
	}

	return r.findOneAndSet(ctx, "Update", svc.ID, bson.M{
		"name":                        svc.Name,
		"price":                       price,
		"features":                    svc.Features,
		"popular":                     svc.Popular,
		"isPublicServant":             svc.IsPublicServant,
		"requiredCompanyVerification": svc.RequiredCompanyVerification,
	})
}

// SetPopular устанавливает флаг популярности
func (r *MongoRepository) SetPopular(ctx context.Context, id string, popular bool) (*domain.Service, error) {
	return r.findOneAndSet(ctx, "SetPopular", id, bson.M{"popular": popular})
}

func (r *MongoRepository) findOneAndSet(ctx context.Context, op, id string, set bson.M) (*domain.Service, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrServiceNotFound
	}

	ctx, cancel := mongodb.WithTimeout(ctx, r.timeout)
	defer cancel()

	set["updatedAt"] = time.Now().UTC().Truncate(time.Millisecond)

	var doc serviceDocument
	err = r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - update: %v", ErrExecQuery, op, err)
	}

	svc, err := doc.toDomain()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - decode: %v", ErrScanRow, op, err)
	}
	return svc, nil
}

func (r *MongoRepository) find(ctx context.Context, op string, filter bson.M, opts *options.FindOptions) ([]*domain.Service, error) {
	ctx, cancel := mongodb.WithTimeout(ctx, r.timeout)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - find: %v", ErrExecQuery, op, err)
	}

	var docs []serviceDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("%w: %s - decode: %v", ErrScanRow, op, err)
	}

	result := make([]*domain.Service, 0, len(docs))
	for i := range docs {
		svc, err := docs[i].toDomain()
		if err != nil {
			return nil, fmt.Errorf("%w: %s - decode: %v", ErrScanRow, op, err)
		}
		result = append(result, svc)
	}
	return result, nil
}
