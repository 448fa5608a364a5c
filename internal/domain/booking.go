package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
)

// BookingStatuses список всех допустимых статусов в порядке жизненного цикла
var BookingStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusCompleted,
	StatusCancelled,
}

// IsValid returns true if the status is one of the known booking statuses
func (s BookingStatus) IsValid() bool {
	for _, valid := range BookingStatuses {
		if s == valid {
			return true
		}
	}
	return false
}

// Booking represents a scheduled wash appointment
type Booking struct {
	ID              string
	UserID          string
	ServiceID       string
	CompanyID       *string
	FullName        string
	PhoneNumber     string
	CarType         string
	LicensePlate    string
	Location        string
	AppointmentDate time.Time
	Status          BookingStatus
	IsPublicServant bool

	// Snapshot of the service price at booking time, never re-derived
	TotalPrice decimal.Decimal

	CreatedAt time.Time
	UpdatedAt time.Time
}

// BookingStats is the admin dashboard aggregate
type BookingStats struct {
	TotalBookings    int64
	StatusBreakdown  map[BookingStatus]int64
	CompletedRevenue decimal.Decimal
	TodayBookings    int64
}
