package dto

// ErrorResponse is the HTTP error body.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	// MaxAmount is filled on overpayment rejections so the form can cap the
	// field without a second round trip.
	MaxAmount string `json:"max_amount,omitempty"`
}
