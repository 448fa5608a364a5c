package models

import (
	"strings"
	"time"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
	"github.com/m04kA/SMC-CarWashService/pkg/ptr"
)

// CreateOrderRequest тело заказа из старой формы
type CreateOrderRequest struct {
	FullName    string  `json:"fullName" validate:"required,max=200"`
	CarPlate    string  `json:"carPlate" validate:"required,max=20"`
	PhoneNumber string  `json:"phoneNumber" validate:"required,max=50"`
	Location    string  `json:"location" validate:"required,max=500"`
	ServiceType string  `json:"serviceType" validate:"required,max=200"`
	PackageType *string `json:"packageType,omitempty" validate:"omitempty,oneof=normal luxury"`
	Price       string  `json:"price" validate:"required,max=50"`
}

// Normalize обрезает пробелы; пустой packageType считается отсутствующим
func (r *CreateOrderRequest) Normalize() {
	r.FullName = strings.TrimSpace(r.FullName)
	r.CarPlate = strings.TrimSpace(r.CarPlate)
	r.PhoneNumber = strings.TrimSpace(r.PhoneNumber)
	r.Location = strings.TrimSpace(r.Location)
	r.ServiceType = strings.TrimSpace(r.ServiceType)
	r.Price = strings.TrimSpace(r.Price)
	r.PackageType = ptr.TrimmedOrNil(r.PackageType)
}

// ToDomain конвертирует запрос в доменный заказ со статусом pending
func (r *CreateOrderRequest) ToDomain() *domain.Order {
	o := &domain.Order{
		FullName:    r.FullName,
		CarPlate:    r.CarPlate,
		PhoneNumber: r.PhoneNumber,
		Location:    r.Location,
		ServiceType: r.ServiceType,
		Price:       r.Price,
		Status:      domain.OrderStatusPending,
	}
	if r.PackageType != nil {
		p := domain.PackageType(*r.PackageType)
		o.PackageType = &p
	}
	return o
}

// UpdateOrderStatusRequest тело смены статуса заказа
type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending completed cancelled"`
}

// OrderResponse заказ в ответе API
type OrderResponse struct {
	ID          string    `json:"_id"`
	FullName    string    `json:"fullName"`
	CarPlate    string    `json:"carPlate"`
	PhoneNumber string    `json:"phoneNumber"`
	Location    string    `json:"location"`
	ServiceType string    `json:"serviceType"`
	PackageType *string   `json:"packageType,omitempty"`
	Price       string    `json:"price"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// FromDomainOrder конвертирует доменный заказ в ответ
func FromDomainOrder(o *domain.Order) *OrderResponse {
	resp := &OrderResponse{
		ID:          o.ID,
		FullName:    o.FullName,
		CarPlate:    o.CarPlate,
		PhoneNumber: o.PhoneNumber,
		Location:    o.Location,
		ServiceType: o.ServiceType,
		Price:       o.Price,
		Status:      string(o.Status),
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
	if o.PackageType != nil {
		p := string(*o.PackageType)
		resp.PackageType = &p
	}
	return resp
}

// FromDomainOrderList конвертирует список заказов
func FromDomainOrderList(list []*domain.Order) []*OrderResponse {
	result := make([]*OrderResponse, 0, len(list))
	for _, o := range list {
		result = append(result, FromDomainOrder(o))
	}
	return result
}
