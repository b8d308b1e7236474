package entity

import "time"

// Customer priorities.
const (
	PriorityNormal = "normal"
	PriorityHigh   = "high"
	PriorityVIP    = "vip"
)

// Customer is a billing customer. Financial figures are never stored here;
// invoices reference the customer by ID.
type Customer struct {
	ID             string
	Name           string
	Email          string
	Phone          string
	AlternatePhone string

	Address    string
	City       string
	PostalCode string

	CompanyName string
	GSTNumber   string

	IsActive bool
	Priority string // normal | high | vip

	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
	CreatedBy string
	DeletedAt *time.Time
}
