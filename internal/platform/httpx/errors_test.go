package httpx

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTranslator(production bool) *Translator {
	return &Translator{
		Logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		Production: production,
	}
}

func respond(t *testing.T, tr *Translator, err error) (*httptest.ResponseRecorder, Envelope) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/api/materials", nil)
	rr := httptest.NewRecorder()
	tr.Respond(rr, req, err)

	var env Envelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
	return rr, env
}

func TestRespondValidationError(t *testing.T) {
	verr := &ValidationError{Violations: []FieldError{
		{Field: "code", Message: "material code is required"},
		{Field: "unit", Message: "unit is required"},
	}}
	rr, env := respond(t, testTranslator(false), verr)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.False(t, env.Success)
	assert.Equal(t, "validation failed", env.Message)
	assert.Equal(t, verr.Violations, env.Errors)
}

func TestRespondStatusError(t *testing.T) {
	rr, env := respond(t, testTranslator(false), BadRequest("ids must be a non-empty list of material ids"))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "ids must be a non-empty list of material ids", env.Message)
	assert.Empty(t, env.Errors)
}

func TestRespondNotFoundSentinel(t *testing.T) {
	rr, env := respond(t, testTranslator(false), errors.New("materials: id 9: record not found"))
	// A bare string is not the sentinel; wrapping is required.
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	_ = env

	rr, env = respond(t, testTranslator(false), ErrNotFound)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "material not found", env.Message)
}

func TestRespondInternalHidesDetailInProduction(t *testing.T) {
	cause := errors.New("pq: connection refused")

	rr, env := respond(t, testTranslator(true), cause)
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "internal server error", env.Message)
	assert.Empty(t, env.Error)
	assert.NotEmpty(t, env.ErrorID)

	_, env = respond(t, testTranslator(false), cause)
	assert.Equal(t, "pq: connection refused", env.Error)
	assert.NotEmpty(t, env.ErrorID)
}

func TestDecodeErrorTypeMismatch(t *testing.T) {
	var target struct {
		Stock int `json:"stock"`
	}
	raw := json.Unmarshal([]byte(`{"stock":"plenty"}`), &target)
	require.Error(t, raw)

	err := DecodeError(raw)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Violations, 1)
	assert.Equal(t, "stock", verr.Violations[0].Field)
}

func TestDecodeErrorMalformedBody(t *testing.T) {
	raw := json.Unmarshal([]byte(`{"stock":`), &struct{}{})
	require.Error(t, raw)

	err := DecodeError(raw)
	var serr *StatusError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, http.StatusBadRequest, serr.Status)
}
