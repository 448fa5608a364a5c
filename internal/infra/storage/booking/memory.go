package booking

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
)

// MemoryRepository хранит бронирования в памяти процесса
type MemoryRepository struct {
	mu    sync.RWMutex
	items map[string]*domain.Booking
	order []string
}

// NewMemoryRepository создает пустой репозиторий
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{items: make(map[string]*domain.Booking)}
}

// Create сохраняет новое бронирование
func (r *MemoryRepository) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	stored := clone(b)
	stored.ID = primitive.NewObjectID().Hex()
	stored.CreatedAt = now
	stored.UpdatedAt = now

	r.items[stored.ID] = stored
	r.order = append(r.order, stored.ID)

	return clone(stored), nil
}

// GetByID получает бронирование по ID
func (r *MemoryRepository) GetByID(_ context.Context, id string) (*domain.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.items[id]
	if !ok {
		return nil, ErrBookingNotFound
	}
	return clone(b), nil
}

// ListByUser возвращает бронирования пользователя, новые первыми
func (r *MemoryRepository) ListByUser(_ context.Context, userID string) ([]*domain.Booking, error) {
	return r.newestFirst(func(b *domain.Booking) bool { return b.UserID == userID }), nil
}

// ListAll возвращает все бронирования, новые первыми
func (r *MemoryRepository) ListAll(_ context.Context) ([]*domain.Booking, error) {
	return r.newestFirst(func(*domain.Booking) bool { return true }), nil
}

// UpdateStatus меняет статус бронирования
func (r *MemoryRepository) UpdateStatus(_ context.Context, id string, status domain.BookingStatus) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.items[id]
	if !ok {
		return nil, ErrBookingNotFound
	}
	b.Status = status
	b.UpdatedAt = time.Now().UTC()

	return clone(b), nil
}

// Delete удаляет бронирование
func (r *MemoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return ErrBookingNotFound
	}
	delete(r.items, id)

	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// CountByStatus возвращает количество бронирований по статусам
func (r *MemoryRepository) CountByStatus(_ context.Context) (map[domain.BookingStatus]int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make(map[domain.BookingStatus]int64)
	for _, b := range r.items {
		result[b.Status]++
	}
	return result, nil
}

// CompletedRevenue возвращает сумму totalPrice завершенных бронирований
func (r *MemoryRepository) CompletedRevenue(_ context.Context) (decimal.Decimal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	total := decimal.Zero
	for _, b := range r.items {
		if b.Status == domain.StatusCompleted {
			total = total.Add(b.TotalPrice)
		}
	}
	return total, nil
}

// CountCreatedSince возвращает количество бронирований, созданных не раньше since
func (r *MemoryRepository) CountCreatedSince(_ context.Context, since time.Time) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var count int64
	for _, b := range r.items {
		if !b.CreatedAt.Before(since) {
			count++
		}
	}
	return count, nil
}

// AggregateByService возвращает количество бронирований и выручку по каждой услуге
func (r *MemoryRepository) AggregateByService(_ context.Context) ([]domain.ServiceBookingAggregate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	index := make(map[string]int)
	result := make([]domain.ServiceBookingAggregate, 0)
	for _, id := range r.order {
		b := r.items[id]
		i, ok := index[b.ServiceID]
		if !ok {
			i = len(result)
			index[b.ServiceID] = i
			result = append(result, domain.ServiceBookingAggregate{
				ServiceID:        b.ServiceID,
				CompletedRevenue: decimal.Zero,
			})
		}
		result[i].BookingCount++
		if b.Status == domain.StatusCompleted {
			result[i].CompletedRevenue = result[i].CompletedRevenue.Add(b.TotalPrice)
		}
	}
	return result, nil
}

func (r *MemoryRepository) newestFirst(match func(*domain.Booking) bool) []*domain.Booking {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*domain.Booking, 0)
	for i := len(r.order) - 1; i >= 0; i-- {
		if b := r.items[r.order[i]]; match(b) {
			result = append(result, clone(b))
		}
	}
	return result
}

func clone(b *domain.Booking) *domain.Booking {
	c := *b
	if b.CompanyID != nil {
		id := *b.CompanyID
		c.CompanyID = &id
	}
	return &c
}
