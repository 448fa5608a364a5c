package order

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
)

// MemoryRepository хранит заказы в памяти процесса
type MemoryRepository struct {
	mu    sync.RWMutex
	items map[string]*domain.Order
	order []string
}

// NewMemoryRepository создает пустой репозиторий
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{items: make(map[string]*domain.Order)}
}

// Create сохраняет новый заказ
func (r *MemoryRepository) Create(_ context.Context, o *domain.Order) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	stored := clone(o)
	stored.ID = primitive.NewObjectID().Hex()
	stored.CreatedAt = now
	stored.UpdatedAt = now

	r.items[stored.ID] = stored
	r.order = append(r.order, stored.ID)

	return clone(stored), nil
}

// GetByID получает заказ по ID
func (r *MemoryRepository) GetByID(_ context.Context, id string) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	o, ok := r.items[id]
	if !ok {
		return nil, ErrOrderNotFound
	}
	return clone(o), nil
}

// List возвращает все заказы, новые первыми
func (r *MemoryRepository) List(_ context.Context) ([]*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*domain.Order, 0, len(r.order))
	for i := len(r.order) - 1; i >= 0; i-- {
		result = append(result, clone(r.items[r.order[i]]))
	}
	return result, nil
}

// UpdateStatus меняет статус заказа
func (r *MemoryRepository) UpdateStatus(_ context.Context, id string, status domain.OrderStatus) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	o, ok := r.items[id]
	if !ok {
		return nil, ErrOrderNotFound
	}
	o.Status = status
	o.UpdatedAt = time.Now().UTC()

	return clone(o), nil
}

func clone(o *domain.Order) *domain.Order {
	c := *o
	if o.PackageType != nil {
		p := *o.PackageType
		c.PackageType = &p
	}
	return &c
}
