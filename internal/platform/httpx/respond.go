// Package httpx provides the JSON envelope shared by every response of the
// service: {"success": bool, "message"?, "data"?, "pagination"?, "errors"?}.
package httpx

import (
	"encoding/json"
	"net/http"
)

// maxBodyBytes caps inbound JSON payloads at 10 MiB.
const maxBodyBytes = 10 << 20

// FieldError is a single (field, message) violation as it appears on the wire.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Envelope is the uniform response body.
type Envelope struct {
	Success    bool         `json:"success"`
	Message    string       `json:"message,omitempty"`
	Data       any          `json:"data,omitempty"`
	Pagination any          `json:"pagination,omitempty"`
	Errors     []FieldError `json:"errors,omitempty"`

	// Error carries internal detail on server failures outside production.
	Error   string `json:"error,omitempty"`
	ErrorID string `json:"errorId,omitempty"`
}

// JSON sends a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// OK sends a success envelope carrying data.
func OK(w http.ResponseWriter, status int, message string, data any) {
	JSON(w, status, Envelope{Success: true, Message: message, Data: data})
}

// OKPage sends a success envelope carrying data plus pagination metadata.
func OKPage(w http.ResponseWriter, data any, pagination any) {
	JSON(w, http.StatusOK, Envelope{Success: true, Data: data, Pagination: pagination})
}

// Fail sends a failure envelope.
func Fail(w http.ResponseWriter, status int, message string, errs []FieldError) {
	JSON(w, status, Envelope{Success: false, Message: message, Errors: errs})
}

// DecodeJSON decodes the request body into target, enforcing the body size cap.
func DecodeJSON(w http.ResponseWriter, r *http.Request, target any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	return json.NewDecoder(r.Body).Decode(target)
}
