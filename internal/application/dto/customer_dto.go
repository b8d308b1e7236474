package dto

// CustomerRequest is the body for POST/PUT /api/customers.
type CustomerRequest struct {
	Name           string `json:"name"`
	Email          string `json:"email,omitempty"`
	Phone          string `json:"phone"`
	AlternatePhone string `json:"alternate_phone,omitempty"`
	Address        string `json:"address,omitempty"`
	City           string `json:"city,omitempty"`
	PostalCode     string `json:"postal_code,omitempty"`
	CompanyName    string `json:"company_name,omitempty"`
	GSTNumber      string `json:"gst_number,omitempty"`
	IsActive       *bool  `json:"is_active,omitempty"` // defaults to true on create
	Priority       string `json:"priority,omitempty"`  // normal | high | vip
	Notes          string `json:"notes,omitempty"`
}

// CustomerResponse is a customer in responses.
type CustomerResponse struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Email          string `json:"email,omitempty"`
	Phone          string `json:"phone"`
	AlternatePhone string `json:"alternate_phone,omitempty"`
	Address        string `json:"address,omitempty"`
	City           string `json:"city,omitempty"`
	PostalCode     string `json:"postal_code,omitempty"`
	CompanyName    string `json:"company_name,omitempty"`
	GSTNumber      string `json:"gst_number,omitempty"`
	IsActive       bool   `json:"is_active"`
	Priority       string `json:"priority"`
	Notes          string `json:"notes,omitempty"`
	CreatedAt      string `json:"created_at"`
}
