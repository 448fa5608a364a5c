package services

import (
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
)

// buildStats сопоставляет агрегаты бронирований со списком услуг.
// Агрегаты по удаленным услугам отбрасываются.
func buildStats(list []*domain.Service, aggregates []domain.ServiceBookingAggregate) []domain.ServiceStats {
	byService := make(map[string]domain.ServiceBookingAggregate, len(aggregates))
	for _, a := range aggregates {
		byService[a.ServiceID] = a
	}

	stats := make([]domain.ServiceStats, 0, len(list))
	for _, svc := range list {
		st := domain.ServiceStats{
			ServiceID:        svc.ID,
			ServiceName:      svc.Name,
			CompletedRevenue: decimal.Zero,
		}
		if a, ok := byService[svc.ID]; ok {
			st.BookingCount = a.BookingCount
			st.CompletedRevenue = a.CompletedRevenue
		}
		stats = append(stats, st)
	}
	return stats
}
