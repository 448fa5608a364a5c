package domain

import "time"

// Company represents an employer whose verification unlocks public-servant bookings
type Company struct {
	ID                 string
	Name               string
	RegistrationNumber string
	ContactNumber      string
	Email              string
	Address            string
	IsVerified         bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// CompanySummary is the public projection of a verified company
type CompanySummary struct {
	ID                 string
	Name               string
	RegistrationNumber string
}

// Summary returns the public projection of the company
func (c *Company) Summary() CompanySummary {
	return CompanySummary{
		ID:                 c.ID,
		Name:               c.Name,
		RegistrationNumber: c.RegistrationNumber,
	}
}
