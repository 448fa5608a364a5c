// Package mongodb создает клиент MongoDB и подключает мониторинг команд к метрикам.
package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/event"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

var (
	// ErrConnect возвращается, когда не удалось подключиться к MongoDB
	ErrConnect = errors.New("mongodb: failed to connect")

	// ErrInvalidDecimal возвращается при невозможности конвертировать Decimal128
	ErrInvalidDecimal = errors.New("mongodb: invalid decimal value")
)

// OperationObserver получает длительность каждой команды драйвера
type OperationObserver interface {
	ObserveDBOperation(store, operation string, success bool, duration time.Duration)
}

// Options параметры подключения
type Options struct {
	URI            string
	Database       string
	ConnectTimeout time.Duration
	MaxPoolSize    uint64
}

// Connect открывает соединение и проверяет его через ping.
// observer может быть nil.
func Connect(ctx context.Context, opts Options, observer OperationObserver) (*mongo.Client, *mongo.Database, error) {
	clientOpts := options.Client().
		ApplyURI(opts.URI).
		SetConnectTimeout(opts.ConnectTimeout)

	if opts.MaxPoolSize > 0 {
		clientOpts.SetMaxPoolSize(opts.MaxPoolSize)
	}
	if observer != nil {
		clientOpts.SetMonitor(NewCommandMonitor(observer))
	}

	connectCtx, cancel := context.WithTimeout(ctx, opts.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, clientOpts)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrConnect, err)
	}

	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("%w: ping: %v", ErrConnect, err)
	}

	return client, client.Database(opts.Database), nil
}

// NewCommandMonitor передает длительность завершенных команд в observer
func NewCommandMonitor(observer OperationObserver) *event.CommandMonitor {
	return &event.CommandMonitor{
		Succeeded: func(_ context.Context, e *event.CommandSucceededEvent) {
			observer.ObserveDBOperation("mongo", e.CommandName, true, e.Duration)
		},
		Failed: func(_ context.Context, e *event.CommandFailedEvent) {
			observer.ObserveDBOperation("mongo", e.CommandName, false, e.Duration)
		},
	}
}

// ToDecimal128 конвертирует денежное значение для хранения
func ToDecimal128(d decimal.Decimal) (primitive.Decimal128, error) {
	v, err := primitive.ParseDecimal128(d.String())
	if err != nil {
		return primitive.Decimal128{}, fmt.Errorf("%w: %s: %v", ErrInvalidDecimal, d.String(), err)
	}
	return v, nil
}

// FromDecimal128 конвертирует хранимое значение обратно
func FromDecimal128(v primitive.Decimal128) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(v.String())
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s: %v", ErrInvalidDecimal, v.String(), err)
	}
	return d, nil
}

// ParseIDs конвертирует hex строки в ObjectID, пропуская некорректные
func ParseIDs(ids []string) []primitive.ObjectID {
	out := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			out = append(out, oid)
		}
	}
	return out
}

// WithTimeout ограничивает операцию таймаутом, если он задан
func WithTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}
