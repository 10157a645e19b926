package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
)

// Sentinel errors for the persistence layer.
var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate entry")
)

// ValidationError carries the ordered list of field violations for a payload.
type ValidationError struct {
	Violations []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Violations) == 0 {
		return "validation failed"
	}
	return fmt.Sprintf("validation failed: %s: %s", e.Violations[0].Field, e.Violations[0].Message)
}

// Validation builds a single-field validation error.
func Validation(field, message string) *ValidationError {
	return &ValidationError{Violations: []FieldError{{Field: field, Message: message}}}
}

// StatusError pairs an HTTP status with a caller-facing message.
type StatusError struct {
	Status  int
	Message string
	Err     error
}

func (e *StatusError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *StatusError) Unwrap() error { return e.Err }

// NotFound builds a 404 error with the given caller-facing message.
func NotFound(message string) *StatusError {
	return &StatusError{Status: http.StatusNotFound, Message: message, Err: ErrNotFound}
}

// BadRequest builds a 400 error with the given caller-facing message.
func BadRequest(message string) *StatusError {
	return &StatusError{Status: http.StatusBadRequest, Message: message}
}

// Translator is the single place that maps raised failures to HTTP responses.
// Full detail is always logged; callers only see internals outside production.
type Translator struct {
	Logger     *slog.Logger
	Production bool
}

// Respond writes the envelope for err and logs it.
func (t *Translator) Respond(w http.ResponseWriter, r *http.Request, err error) {
	var verr *ValidationError
	var serr *StatusError

	switch {
	case errors.As(err, &verr):
		t.warn(r, err)
		Fail(w, http.StatusBadRequest, "validation failed", verr.Violations)
	case errors.As(err, &serr):
		t.warn(r, err)
		Fail(w, serr.Status, serr.Message, nil)
	case errors.Is(err, ErrNotFound):
		t.warn(r, err)
		Fail(w, http.StatusNotFound, "material not found", nil)
	default:
		errID := uuid.NewString()
		if t.Logger != nil {
			t.Logger.Error("request failed",
				slog.String("error_id", errID),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Any("error", err),
			)
		}
		env := Envelope{Success: false, Message: "internal server error", ErrorID: errID}
		if !t.Production {
			env.Error = err.Error()
		}
		JSON(w, http.StatusInternalServerError, env)
	}
}

func (t *Translator) warn(r *http.Request, err error) {
	if t.Logger == nil {
		return
	}
	t.Logger.Warn("request rejected",
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.Any("error", err),
	)
}

// DecodeError normalizes JSON decoding failures: type mismatches become
// field-level validation errors, everything else a 400.
func DecodeError(err error) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return Validation(typeErr.Field, fmt.Sprintf("%s must be of type %s", typeErr.Field, typeErr.Type))
	}
	return BadRequest("invalid JSON body")
}
