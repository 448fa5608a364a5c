package bookings

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
	"github.com/m04kA/SMC-CarWashService/internal/service/bookings/models"
)

// GetStats собирает сводку по бронированиям. Запросы выполняются параллельно.
// todayBookings считает бронирования, созданные с начала текущих суток по локальному времени сервера.
func (s *Service) GetStats(ctx context.Context) (*models.BookingStatsResponse, error) {
	var (
		byStatus map[domain.BookingStatus]int64
		revenue  decimal.Decimal
		today    int64
	)

	since := startOfDay(s.now())

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		byStatus, err = s.bookingRepo.CountByStatus(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		revenue, err = s.bookingRepo.CompletedRevenue(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		today, err = s.bookingRepo.CountCreatedSince(gctx, since)
		return err
	})
	if err := g.Wait(); err != nil {
		s.logger.Error("GetStats: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetStats - repository error: %v", ErrInternal, err)
	}

	stats := &domain.BookingStats{
		StatusBreakdown:  byStatus,
		CompletedRevenue: revenue,
		TodayBookings:    today,
	}
	for _, count := range byStatus {
		stats.TotalBookings += count
	}

	return models.FromDomainStats(stats), nil
}

func startOfDay(t time.Time) time.Time {
	local := t.Local()
	y, m, d := local.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}
