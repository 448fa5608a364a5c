package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Service represents a purchasable wash package
type Service struct {
	ID                          string
	Name                        string
	Price                       decimal.Decimal
	Features                    []string
	Popular                     bool
	IsPublicServant             bool
	RequiredCompanyVerification bool
	CreatedAt                   time.Time
	UpdatedAt                   time.Time
}

// Price limits match the NUMERIC(12,2) storage columns
const MaxPriceScale = 2

// MaxPrice exclusive upper bound for prices and revenue snapshots
var MaxPrice = decimal.New(1, 10)

// CheckPrice returns a validation message for an unacceptable price or "" when it is fine
func CheckPrice(p decimal.Decimal) string {
	switch {
	case p.IsNegative():
		return "must be non-negative"
	case p.Exponent() < -MaxPriceScale && !p.Equal(p.Round(MaxPriceScale)):
		return "must have at most 2 decimal places"
	case p.GreaterThanOrEqual(MaxPrice):
		return "must be less than " + MaxPrice.String()
	}
	return ""
}

// RequiresCompany returns true if bookings of this package must reference a verified company
func (s *Service) RequiresCompany() bool {
	return s.IsPublicServant || s.RequiredCompanyVerification
}

// ServiceBookingAggregate is the per-service booking aggregate computed by storage
type ServiceBookingAggregate struct {
	ServiceID        string
	BookingCount     int64
	CompletedRevenue decimal.Decimal
}

// ServiceStats is the admin report line for one service
type ServiceStats struct {
	ServiceID        string
	ServiceName      string
	BookingCount     int64
	CompletedRevenue decimal.Decimal
}
