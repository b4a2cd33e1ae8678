package utils

// ErrorResponse is the JSON envelope for failed requests.
type ErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}
