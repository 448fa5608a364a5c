package domain

// Business validation constants
const (
	MaxCompanySearchResults = 10
	MaxSearchQueryLength    = 100
	MinNameLength           = 2
	MaxNameLength           = 200
	MaxFeatures             = 50
)

// Collection / table names
const (
	CollectionServices  = "services"
	CollectionCompanies = "companies"
	CollectionBookings  = "bookings"
	CollectionOrders    = "orders"
)

// SortOrder порядок выдачи списков по времени создания
type SortOrder int

const (
	OldestFirst SortOrder = iota
	NewestFirst
)
