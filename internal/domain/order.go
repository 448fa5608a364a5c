package domain

import "time"

// OrderStatus represents the status of a legacy order
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// IsValid returns true if the status is one of the known order statuses
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusCompleted, OrderStatusCancelled:
		return true
	default:
		return false
	}
}

// PackageType is the optional package tier of an order
type PackageType string

const (
	PackageNormal PackageType = "normal"
	PackageLuxury PackageType = "luxury"
)

// IsValid returns true if the package type is known
func (p PackageType) IsValid() bool {
	return p == PackageNormal || p == PackageLuxury
}

// Order is a one-off wash request from the legacy order form.
// It has no relation to Service or Company.
type Order struct {
	ID          string
	FullName    string
	CarPlate    string
	PhoneNumber string
	Location    string
	ServiceType string
	PackageType *PackageType
	Price       string
	Status      OrderStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
