package materials

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mms-suite/mms/internal/platform/httpx"
	_ "github.com/mms-suite/mms/internal/testing/guard"
)

type envelope struct {
	Success    bool               `json:"success"`
	Message    string             `json:"message"`
	Data       json.RawMessage    `json:"data"`
	Pagination *paginationPayload `json:"pagination"`
	Errors     []httpx.FieldError `json:"errors"`
	Error      string             `json:"error"`
	ErrorID    string             `json:"errorId"`
}

type paginationPayload struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

func newTestRouter(t *testing.T) (chi.Router, *Service, *mockRepository) {
	t.Helper()
	repo := newMockRepository()
	svc := NewService(repo)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	translator := &httpx.Translator{Logger: logger}
	handler := NewHandler(logger, svc, translator)

	r := chi.NewRouter()
	handler.Routes(r)
	return r, svc, repo
}

func doRequest(t *testing.T, router chi.Router, method, target string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
	return rr, env
}

func TestHandlerListPaginationEnvelope(t *testing.T) {
	router, svc, _ := newTestRouter(t)
	seedMaterial(t, svc, "MAT-001", "Hex Bolt M8", "fasteners")
	seedMaterial(t, svc, "MAT-002", "Hex Nut M8", "fasteners")

	rr, env := doRequest(t, router, http.MethodGet, "/materials?page=2&limit=1", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, env.Success)

	var rows []Material
	require.NoError(t, json.Unmarshal(env.Data, &rows))
	assert.Len(t, rows, 1)

	require.NotNil(t, env.Pagination)
	assert.Equal(t, 2, env.Pagination.Page)
	assert.Equal(t, 1, env.Pagination.Limit)
	assert.Equal(t, 2, env.Pagination.Total)
	assert.Equal(t, 2, env.Pagination.TotalPages)
}

func TestHandlerListZeroPageEqualsPageOne(t *testing.T) {
	router, svc, _ := newTestRouter(t)
	seedMaterial(t, svc, "MAT-001", "Hex Bolt M8", "fasteners")

	_, envZero := doRequest(t, router, http.MethodGet, "/materials?page=0", nil)
	_, envOne := doRequest(t, router, http.MethodGet, "/materials?page=1", nil)
	assert.Equal(t, envOne.Pagination, envZero.Pagination)
	assert.JSONEq(t, string(envOne.Data), string(envZero.Data))
}

func TestHandlerGet(t *testing.T) {
	router, svc, _ := newTestRouter(t)
	created := seedMaterial(t, svc, "MAT-001", "Hex Bolt M8", "fasteners")

	rr, env := doRequest(t, router, http.MethodGet, "/materials/1", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	require.True(t, env.Success)

	var got Material
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "MAT-001", got.Code)
}

func TestHandlerGetNotFound(t *testing.T) {
	router, _, _ := newTestRouter(t)
	rr, env := doRequest(t, router, http.MethodGet, "/materials/999", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.False(t, env.Success)
	assert.Equal(t, "material not found", env.Message)
	assert.Nil(t, env.Data)
}

func TestHandlerGetNonNumericID(t *testing.T) {
	router, _, _ := newTestRouter(t)
	rr, env := doRequest(t, router, http.MethodGet, "/materials/abc", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.False(t, env.Success)
}

func TestHandlerCreate(t *testing.T) {
	router, _, _ := newTestRouter(t)
	rr, env := doRequest(t, router, http.MethodPost, "/materials", map[string]any{
		"code":     "MAT-001",
		"name":     "Hex Bolt M8",
		"category": "fasteners",
		"unit":     "pcs",
		"price":    1.25,
	})
	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.True(t, env.Success)
	assert.Equal(t, "material created successfully", env.Message)

	var created Material
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.NotZero(t, created.ID)
	assert.Equal(t, 0, created.Stock)
	assert.Equal(t, StatusActive, created.Status)
	require.NotNil(t, created.Price)
	assert.Equal(t, 1.25, *created.Price)
}

func TestHandlerCreateValidationFailure(t *testing.T) {
	router, _, _ := newTestRouter(t)
	rr, env := doRequest(t, router, http.MethodPost, "/materials", map[string]any{
		"code": "MAT-001",
		"unit": "pcs",
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.False(t, env.Success)
	assert.Equal(t, "validation failed", env.Message)

	fields := make([]string, 0, len(env.Errors))
	for _, e := range env.Errors {
		fields = append(fields, e.Field)
	}
	assert.Equal(t, []string{"name", "category"}, fields)
}

func TestHandlerCreateNegativeStock(t *testing.T) {
	router, _, _ := newTestRouter(t)
	rr, env := doRequest(t, router, http.MethodPost, "/materials", map[string]any{
		"code":     "MAT-001",
		"name":     "Hex Bolt M8",
		"category": "fasteners",
		"unit":     "pcs",
		"stock":    -4,
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	require.Len(t, env.Errors, 1)
	assert.Equal(t, "stock", env.Errors[0].Field)
}

func TestHandlerCreateDuplicateCode(t *testing.T) {
	router, svc, _ := newTestRouter(t)
	seedMaterial(t, svc, "MAT-001", "Hex Bolt M8", "fasteners")

	rr, env := doRequest(t, router, http.MethodPost, "/materials", map[string]any{
		"code":     "MAT-001",
		"name":     "Another",
		"category": "fasteners",
		"unit":     "pcs",
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	require.Len(t, env.Errors, 1)
	assert.Equal(t, "code", env.Errors[0].Field)
	assert.Equal(t, "material code already exists", env.Errors[0].Message)
}

func TestHandlerCreateWrongFieldType(t *testing.T) {
	router, _, _ := newTestRouter(t)
	rr, env := doRequest(t, router, http.MethodPost, "/materials", map[string]any{
		"code":     "MAT-001",
		"name":     "Hex Bolt M8",
		"category": "fasteners",
		"unit":     "pcs",
		"stock":    "plenty",
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	require.Len(t, env.Errors, 1)
	assert.Equal(t, "stock", env.Errors[0].Field)
}

func TestHandlerUpdatePartial(t *testing.T) {
	router, svc, _ := newTestRouter(t)
	created := seedMaterial(t, svc, "MAT-001", "Hex Bolt M8", "fasteners")

	rr, env := doRequest(t, router, http.MethodPut, "/materials/1", map[string]any{"stock": 5})
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, env.Success)

	var updated Material
	require.NoError(t, json.Unmarshal(env.Data, &updated))
	assert.Equal(t, 5, updated.Stock)
	assert.Equal(t, created.Code, updated.Code)
	assert.Equal(t, created.Name, updated.Name)
}

func TestHandlerUpdateNullClearsPrice(t *testing.T) {
	router, svc, repo := newTestRouter(t)
	created := seedMaterial(t, svc, "MAT-001", "Hex Bolt M8", "fasteners")
	repo.materials[created.ID].Price = floatPtr(12.50)
	repo.materials[created.ID].MaxStock = intPtr(500)

	rr, env := doRequest(t, router, http.MethodPut, "/materials/1", map[string]any{
		"price":    nil,
		"maxStock": nil,
	})
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, env.Success)

	var updated Material
	require.NoError(t, json.Unmarshal(env.Data, &updated))
	assert.Nil(t, updated.Price)
	assert.Nil(t, updated.MaxStock)
	assert.Nil(t, repo.materials[created.ID].Price)
}

func TestHandlerUpdateNotFound(t *testing.T) {
	router, _, _ := newTestRouter(t)
	rr, env := doRequest(t, router, http.MethodPut, "/materials/999", map[string]any{"stock": 5})
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.False(t, env.Success)
}

func TestHandlerDelete(t *testing.T) {
	router, svc, repo := newTestRouter(t)
	seedMaterial(t, svc, "MAT-001", "Hex Bolt M8", "fasteners")

	rr, env := doRequest(t, router, http.MethodDelete, "/materials/1", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, env.Success)
	assert.Equal(t, "material deleted successfully", env.Message)
	assert.Empty(t, repo.materials)
}

func TestHandlerDeleteNotFound(t *testing.T) {
	router, _, _ := newTestRouter(t)
	rr, env := doRequest(t, router, http.MethodDelete, "/materials/999", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.False(t, env.Success)
}

func TestHandlerBulkDelete(t *testing.T) {
	router, svc, _ := newTestRouter(t)
	seedMaterial(t, svc, "MAT-001", "Hex Bolt M8", "fasteners")
	seedMaterial(t, svc, "MAT-002", "Hex Nut M8", "fasteners")

	rr, env := doRequest(t, router, http.MethodDelete, "/materials", map[string]any{
		"ids": []int64{1, 2, 999},
	})
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, env.Success)
	assert.Equal(t, "deleted 2 materials", env.Message)

	var data map[string]int64
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, int64(2), data["deletedCount"])
}

func TestHandlerBulkDeleteRejectsBadPayloads(t *testing.T) {
	router, _, _ := newTestRouter(t)
	cases := []any{
		map[string]any{},
		map[string]any{"ids": []int64{}},
		map[string]any{"ids": "1,2,3"},
	}
	for _, body := range cases {
		rr, env := doRequest(t, router, http.MethodDelete, "/materials", body)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.False(t, env.Success)
	}
}

func TestHandlerCategories(t *testing.T) {
	router, svc, _ := newTestRouter(t)
	seedMaterial(t, svc, "MAT-001", "Hex Bolt M8", "fasteners")
	seedMaterial(t, svc, "MAT-002", "Bearing 6204", "bearings")

	rr, env := doRequest(t, router, http.MethodGet, "/materials/categories", nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	var categories []string
	require.NoError(t, json.Unmarshal(env.Data, &categories))
	assert.ElementsMatch(t, []string{"fasteners", "bearings"}, categories)
}

func TestHandlerStatisticsEmptyStore(t *testing.T) {
	router, _, _ := newTestRouter(t)
	rr, env := doRequest(t, router, http.MethodGet, "/materials/statistics", nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	var stats StockStatistics
	require.NoError(t, json.Unmarshal(env.Data, &stats))
	assert.Equal(t, StockStatistics{}, stats)
}

func TestHandlerListRepositoryFailure(t *testing.T) {
	router, _, repo := newTestRouter(t)
	repo.listErr = context.DeadlineExceeded

	rr, env := doRequest(t, router, http.MethodGet, "/materials", nil)
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.False(t, env.Success)
	assert.Equal(t, "internal server error", env.Message)
	assert.NotEmpty(t, env.ErrorID)
}
