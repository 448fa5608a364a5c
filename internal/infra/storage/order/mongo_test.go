package order

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
)

const ordersNS = "carwash." + domain.CollectionOrders

func orderDoc(id primitive.ObjectID, status string) bson.D {
	created := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "fullName", Value: "John Smith"},
		{Key: "carPlate", Value: "NV-1234"},
		{Key: "phoneNumber", Value: "702-555-0199"},
		{Key: "location", Value: "Henderson"},
		{Key: "serviceType", Value: "Full wash"},
		{Key: "packageType", Value: "luxury"},
		{Key: "price", Value: "$32"},
		{Key: "status", Value: status},
		{Key: "createdAt", Value: created},
		{Key: "updatedAt", Value: created},
	}
}

func TestMongoRepository_Create(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("omits empty package type", func(mt *mtest.T) {
		repo := NewMongoRepository(mt.DB, time.Second)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		created, err := repo.Create(context.Background(), &domain.Order{
			FullName:    "John Smith",
			CarPlate:    "NV-1234",
			PhoneNumber: "702-555-0199",
			Location:    "Henderson",
			ServiceType: "Full wash",
			Price:       "$22",
			Status:      domain.OrderStatusPending,
		})
		require.NoError(mt, err)
		assert.Len(mt, created.ID, 24)
		assert.Nil(mt, created.PackageType)

		evt := mt.GetStartedEvent()
		require.NotNil(mt, evt)
		doc := evt.Command.Lookup("documents").Array().Index(0).Value().Document()
		_, err = doc.LookupErr("packageType")
		assert.Error(mt, err)
		assert.Equal(mt, "$22", doc.Lookup("price").StringValue())
	})
}

func TestMongoRepository_GetByID(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("found", func(mt *mtest.T) {
		repo := NewMongoRepository(mt.DB, time.Second)
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ordersNS, mtest.FirstBatch, orderDoc(id, "pending")))

		got, err := repo.GetByID(context.Background(), id.Hex())
		require.NoError(mt, err)
		assert.Equal(mt, id.Hex(), got.ID)
		require.NotNil(mt, got.PackageType)
		assert.Equal(mt, domain.PackageLuxury, *got.PackageType)
		assert.Equal(mt, domain.OrderStatusPending, got.Status)
	})

	mt.Run("malformed id", func(mt *mtest.T) {
		repo := NewMongoRepository(mt.DB, time.Second)

		_, err := repo.GetByID(context.Background(), "order-1")
		assert.ErrorIs(mt, err, ErrOrderNotFound)
		assert.Nil(mt, mt.GetStartedEvent())
	})
}

func TestMongoRepository_UpdateStatus(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("completed", func(mt *mtest.T) {
		repo := NewMongoRepository(mt.DB, time.Second)
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: orderDoc(id, "completed")}))

		got, err := repo.UpdateStatus(context.Background(), id.Hex(), domain.OrderStatusCompleted)
		require.NoError(mt, err)
		assert.Equal(mt, domain.OrderStatusCompleted, got.Status)
	})

	mt.Run("not found", func(mt *mtest.T) {
		repo := NewMongoRepository(mt.DB, time.Second)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil}))

		_, err := repo.UpdateStatus(context.Background(), primitive.NewObjectID().Hex(), domain.OrderStatusCancelled)
		assert.ErrorIs(mt, err, ErrOrderNotFound)
	})
}
