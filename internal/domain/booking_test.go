package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestBookingStatus_IsValid(t *testing.T) {
	for _, s := range BookingStatuses {
		assert.True(t, s.IsValid(), s)
	}
	assert.False(t, BookingStatus("in_progress").IsValid())
	assert.False(t, BookingStatus("").IsValid())
	assert.False(t, BookingStatus("Pending").IsValid())
}

func TestCheckPrice(t *testing.T) {
	tests := []struct {
		price string
		ok    bool
	}{
		{"0", true},
		{"15.99", true},
		{"15.990", true},
		{"9999999999.99", true},
		{"15.999", false},
		{"-1", false},
		{"10000000000", false},
		{"123456789012345", false},
	}
	for _, tt := range tests {
		msg := CheckPrice(decimal.RequireFromString(tt.price))
		assert.Equal(t, tt.ok, msg == "", tt.price)
	}
}

func TestOrderStatusAndPackage(t *testing.T) {
	assert.True(t, OrderStatusCompleted.IsValid())
	assert.False(t, OrderStatus("confirmed").IsValid())
	assert.True(t, PackageLuxury.IsValid())
	assert.False(t, PackageType("premium").IsValid())
}

func TestIdentity_CanAccessUser(t *testing.T) {
	owner := &Identity{UID: "u1"}
	admin := &Identity{UID: "a1", Admin: true}

	assert.True(t, owner.CanAccessUser("u1"))
	assert.False(t, owner.CanAccessUser("u2"))
	assert.True(t, admin.CanAccessUser("u2"))
}

func TestService_RequiresCompany(t *testing.T) {
	assert.False(t, (&Service{}).RequiresCompany())
	assert.True(t, (&Service{IsPublicServant: true}).RequiresCompany())
	assert.True(t, (&Service{RequiredCompanyVerification: true}).RequiresCompany())
}

func TestValidationError(t *testing.T) {
	verr := NewValidationError("price", "must be non-negative")
	verr.Add("features", "must not be empty")

	assert.True(t, verr.HasErrors())
	assert.Equal(t, "validation failed: price: must be non-negative; features: must not be empty", verr.Error())
	assert.False(t, (&ValidationError{}).HasErrors())
}
