package service

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
)

// MemoryRepository хранит услуги в памяти процесса (локальная разработка и тесты)
type MemoryRepository struct {
	mu    sync.RWMutex
	items map[string]*domain.Service
	order []string
}

// NewMemoryRepository создает пустой репозиторий
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{items: make(map[string]*domain.Service)}
}

// Create сохраняет новую услугу
func (r *MemoryRepository) Create(_ context.Context, svc *domain.Service) (*domain.Service, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	stored := clone(svc)
	stored.ID = primitive.NewObjectID().Hex()
	stored.CreatedAt = now
	stored.UpdatedAt = now

	r.items[stored.ID] = stored
	r.order = append(r.order, stored.ID)

	return clone(stored), nil
}

// GetByID получает услугу по ID
func (r *MemoryRepository) GetByID(_ context.Context, id string) (*domain.Service, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	svc, ok := r.items[id]
	if !ok {
		return nil, ErrServiceNotFound
	}
	return clone(svc), nil
}

// GetByIDs получает услуги по списку ID, отсутствующие пропускаются
func (r *MemoryRepository) GetByIDs(_ context.Context, ids []string) ([]*domain.Service, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*domain.Service, 0, len(ids))
	for _, id := range ids {
		if svc, ok := r.items[id]; ok {
			result = append(result, clone(svc))
		}
	}
	return result, nil
}

// List возвращает все услуги в заданном порядке
func (r *MemoryRepository) List(_ context.Context, order domain.SortOrder) ([]*domain.Service, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*domain.Service, 0, len(r.order))
	for i := range r.order {
		idx := i
		if order == domain.NewestFirst {
			idx = len(r.order) - 1 - i
		}
		result = append(result, clone(r.items[r.order[idx]]))
	}
	return result, nil
}

// Update заменяет редактируемые поля услуги
func (r *MemoryRepository) Update(_ context.Context, svc *domain.Service) (*domain.Service, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.items[svc.ID]
	if !ok {
		return nil, ErrServiceNotFound
	}

	updated := clone(svc)
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()
	r.items[svc.ID] = updated

	return clone(updated), nil
}

// SetPopular устанавливает флаг популярности
func (r *MemoryRepository) SetPopular(_ context.Context, id string, popular bool) (*domain.Service, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	svc, ok := r.items[id]
	if !ok {
		return nil, ErrServiceNotFound
	}

	svc.Popular = popular
	svc.UpdatedAt = time.Now().UTC()

	return clone(svc), nil
}

func clone(svc *domain.Service) *domain.Service {
	c := *svc
	c.Features = append([]string(nil), svc.Features...)
	return &c
}
