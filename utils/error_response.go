package utils

// ErrorResponse is the JSON body every failed request gets. Storage-level
// detail stays in the server log, never in the message.
type ErrorResponse struct {
	Message string `json:"message"`
}
