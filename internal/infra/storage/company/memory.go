package company

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
)

// MemoryRepository хранит компании в памяти процесса
type MemoryRepository struct {
	mu    sync.RWMutex
	items map[string]*domain.Company
	order []string
}

// NewMemoryRepository создает пустой репозиторий
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{items: make(map[string]*domain.Company)}
}

// Create сохраняет новую компанию, проверяя уникальность
func (r *MemoryRepository) Create(_ context.Context, c *domain.Company) (*domain.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.items {
		if existing.Name == c.Name ||
			existing.RegistrationNumber == c.RegistrationNumber ||
			existing.Email == c.Email {
			return nil, ErrDuplicateCompany
		}
	}

	now := time.Now().UTC()
	stored := *c
	stored.ID = primitive.NewObjectID().Hex()
	stored.CreatedAt = now
	stored.UpdatedAt = now

	r.items[stored.ID] = &stored
	r.order = append(r.order, stored.ID)

	result := stored
	return &result, nil
}

// GetByID получает компанию по ID
func (r *MemoryRepository) GetByID(_ context.Context, id string) (*domain.Company, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.items[id]
	if !ok {
		return nil, ErrCompanyNotFound
	}
	result := *c
	return &result, nil
}

// GetByName получает компанию по точному имени
func (r *MemoryRepository) GetByName(_ context.Context, name string) (*domain.Company, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.items {
		if c.Name == name {
			result := *c
			return &result, nil
		}
	}
	return nil, ErrCompanyNotFound
}

// GetByIDs получает компании по списку ID, отсутствующие пропускаются
func (r *MemoryRepository) GetByIDs(_ context.Context, ids []string) ([]*domain.Company, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*domain.Company, 0, len(ids))
	for _, id := range ids {
		if c, ok := r.items[id]; ok {
			cp := *c
			result = append(result, &cp)
		}
	}
	return result, nil
}

// ListVerified возвращает проверенные компании, отсортированные по имени
func (r *MemoryRepository) ListVerified(_ context.Context) ([]*domain.Company, error) {
	return r.filterVerified(func(*domain.Company) bool { return true }, 0), nil
}

// SearchVerified ищет проверенные компании по подстроке имени без учета регистра
func (r *MemoryRepository) SearchVerified(_ context.Context, query string, limit int) ([]*domain.Company, error) {
	needle := strings.ToLower(query)
	return r.filterVerified(func(c *domain.Company) bool {
		return strings.Contains(strings.ToLower(c.Name), needle)
	}, limit), nil
}

// ListAll возвращает все компании, новые первыми
func (r *MemoryRepository) ListAll(_ context.Context) ([]*domain.Company, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*domain.Company, 0, len(r.order))
	for i := len(r.order) - 1; i >= 0; i-- {
		c := *r.items[r.order[i]]
		result = append(result, &c)
	}
	return result, nil
}

// SetVerified устанавливает флаг проверки компании
func (r *MemoryRepository) SetVerified(_ context.Context, id string, verified bool) (*domain.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.items[id]
	if !ok {
		return nil, ErrCompanyNotFound
	}
	c.IsVerified = verified
	c.UpdatedAt = time.Now().UTC()

	result := *c
	return &result, nil
}

func (r *MemoryRepository) filterVerified(match func(*domain.Company) bool, limit int) []*domain.Company {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*domain.Company, 0)
	for _, id := range r.order {
		c := r.items[id]
		if c.IsVerified && match(c) {
			cp := *c
			result = append(result, &cp)
		}
	}

	sort.SliceStable(result, func(i, j int) bool { return result[i].Name < result[j].Name })

	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result
}
