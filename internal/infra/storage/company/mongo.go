package company

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
	"github.com/m04kA/SMC-CarWashService/internal/infra/storage/mongodb"
)

type companyDocument struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty"`
	Name               string             `bson:"name"`
	RegistrationNumber string             `bson:"registrationNumber"`
	ContactNumber      string             `bson:"contactNumber"`
	Email              string             `bson:"email"`
	Address            string             `bson:"address"`
	IsVerified         bool               `bson:"isVerified"`
	CreatedAt          time.Time          `bson:"createdAt"`
	UpdatedAt          time.Time          `bson:"updatedAt"`
}

func (d *companyDocument) toDomain() *domain.Company {
	return &domain.Company{
		ID:                 d.ID.Hex(),
		Name:               d.Name,
		RegistrationNumber: d.RegistrationNumber,
		ContactNumber:      d.ContactNumber,
		Email:              d.Email,
		Address:            d.Address,
		IsVerified:         d.IsVerified,
		CreatedAt:          d.CreatedAt,
		UpdatedAt:          d.UpdatedAt,
	}
}

// MongoRepository репозиторий компаний в коллекции companies
type MongoRepository struct {
	coll    *mongo.Collection
	timeout time.Duration
}

// NewMongoRepository создает репозиторий поверх базы db
func NewMongoRepository(db *mongo.Database, timeout time.Duration) *MongoRepository {
	return &MongoRepository{
		coll:    db.Collection(domain.CollectionCompanies),
		timeout: timeout,
	}
}

// EnsureIndexes создает уникальные индексы name, registrationNumber и email
func (r *MongoRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "registrationNumber", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "isVerified", Value: 1}, {Key: "name", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("%w: EnsureIndexes: %v", ErrExecQuery, err)
	}
	return nil
}

// Create сохраняет новую компанию
func (r *MongoRepository) Create(ctx context.Context, c *domain.Company) (*domain.Company, error) {
	ctx, cancel := mongodb.WithTimeout(ctx, r.timeout)
	defer cancel()

	now := time.Now().UTC().Truncate(time.Millisecond)
	doc := companyDocument{
		ID:                 primitive.NewObjectID(),
		Name:               c.Name,
		RegistrationNumber: c.RegistrationNumber,
		ContactNumber:      c.ContactNumber,
		Email:              c.Email,
		Address:            c.Address,
		IsVerified:         c.IsVerified,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicateCompany
		}
		return nil, fmt.Errorf("%w: Create - insert: %v", ErrExecQuery, err)
	}

	return doc.toDomain(), nil
}

// GetByID получает компанию по ID
func (r *MongoRepository) GetByID(ctx context.Context, id string) (*domain.Company, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrCompanyNotFound
	}
	return r.findOne(ctx, "GetByID", bson.M{"_id": oid})
}

// GetByName получает компанию по точному имени
func (r *MongoRepository) GetByName(ctx context.Context, name string) (*domain.Company, error) {
	return r.findOne(ctx, "GetByName", bson.M{"name": name})
}

// GetByIDs получает компании по списку ID, отсутствующие пропускаются
func (r *MongoRepository) GetByIDs(ctx context.Context, ids []string) ([]*domain.Company, error) {
	oids := mongodb.ParseIDs(ids)
	if len(oids) == 0 {
		return []*domain.Company{}, nil
	}
	return r.find(ctx, "GetByIDs", bson.M{"_id": bson.M{"$in": oids}}, options.Find())
}

// ListVerified возвращает проверенные компании, отсортированные по имени
func (r *MongoRepository) ListVerified(ctx context.Context) ([]*domain.Company, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	return r.find(ctx, "ListVerified", bson.M{"isVerified": true}, opts)
}

// SearchVerified ищет проверенные компании по подстроке имени без учета регистра.
// Запрос экранируется и не интерпретируется как регулярное выражение.
func (r *MongoRepository) SearchVerified(ctx context.Context, query string, limit int) ([]*domain.Company, error) {
	filter := bson.M{
		"isVerified": true,
		"name": primitive.Regex{
			Pattern: regexp.QuoteMeta(query),
			Options: "i",
		},
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "name", Value: 1}}).
		SetLimit(int64(limit))
	return r.find(ctx, "SearchVerified", filter, opts)
}

// ListAll возвращает все компании, новые первыми
func (r *MongoRepository) ListAll(ctx context.Context) ([]*domain.Company, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})
	return r.find(ctx, "ListAll", bson.M{}, opts)
}

// SetVerified устанавливает флаг проверки компании
func (r *MongoRepository) SetVerified(ctx context.Context, id string, verified bool) (*domain.Company, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrCompanyNotFound
	}

	ctx, cancel := mongodb.WithTimeout(ctx, r.timeout)
	defer cancel()

	var doc companyDocument
	err = r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{
			"isVerified": verified,
			"updatedAt":  time.Now().UTC().Truncate(time.Millisecond),
		}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrCompanyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: SetVerified - update: %v", ErrExecQuery, err)
	}

	return doc.toDomain(), nil
}

func (r *MongoRepository) findOne(ctx context.Context, op string, filter bson.M) (*domain.Company, error) {
	ctx, cancel := mongodb.WithTimeout(ctx, r.timeout)
	defer cancel()

	var doc companyDocument
	err := r.coll.FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrCompanyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - find: %v", ErrExecQuery, op, err)
	}
	return doc.toDomain(), nil
}

func (r *MongoRepository) find(ctx context.Context, op string, filter bson.M, opts *options.FindOptions) ([]*domain.Company, error) {
	ctx, cancel := mongodb.WithTimeout(ctx, r.timeout)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - find: %v", ErrExecQuery, op, err)
	}

	var docs []companyDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("%w: %s - decode: %v", ErrScanRow, op, err)
	}

	result := make([]*domain.Company, 0, len(docs))
	for i := range docs {
		result = append(result, docs[i].toDomain())
	}
	return result, nil
}
