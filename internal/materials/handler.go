package materials

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/mms-suite/mms/internal/platform/httpx"
)

// Handler exposes the materials REST endpoints.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	errors   *httpx.Translator
	validate *validator.Validate
}

func NewHandler(logger *slog.Logger, service *Service, errors *httpx.Translator) *Handler {
	return &Handler{
		logger:   logger,
		service:  service,
		errors:   errors,
		validate: validator.New(),
	}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q := ParseListQuery(r.URL.Query())
	rows, pagination, err := h.service.List(r.Context(), q)
	if err != nil {
		h.errors.Respond(w, r, err)
		return
	}
	httpx.OKPage(w, rows, pagination)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		h.errors.Respond(w, r, err)
		return
	}
	material, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.errors.Respond(w, r, err)
		return
	}
	httpx.OK(w, http.StatusOK, "", material)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var form MaterialForm
	if err := httpx.DecodeJSON(w, r, &form); err != nil {
		h.errors.Respond(w, r, httpx.DecodeError(err))
		return
	}
	created, err := h.service.Create(r.Context(), form)
	if err != nil {
		h.errors.Respond(w, r, err)
		return
	}
	h.logger.Info("material created", slog.Int64("id", created.ID), slog.String("code", created.Code))
	httpx.OK(w, http.StatusCreated, "material created successfully", created)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		h.errors.Respond(w, r, err)
		return
	}
	var form MaterialForm
	if err := httpx.DecodeJSON(w, r, &form); err != nil {
		h.errors.Respond(w, r, httpx.DecodeError(err))
		return
	}
	updated, err := h.service.Update(r.Context(), id, form)
	if err != nil {
		h.errors.Respond(w, r, err)
		return
	}
	httpx.OK(w, http.StatusOK, "material updated successfully", updated)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		h.errors.Respond(w, r, err)
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		h.errors.Respond(w, r, err)
		return
	}
	h.logger.Info("material deleted", slog.Int64("id", id))
	httpx.OK(w, http.StatusOK, "material deleted successfully", nil)
}

func (h *Handler) BulkDelete(w http.ResponseWriter, r *http.Request) {
	var req BulkDeleteRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		h.errors.Respond(w, r, httpx.DecodeError(err))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.errors.Respond(w, r, httpx.BadRequest("ids must be a non-empty list of material ids"))
		return
	}
	count, err := h.service.DeleteMany(r.Context(), req.IDs)
	if err != nil {
		h.errors.Respond(w, r, err)
		return
	}
	h.logger.Info("materials bulk deleted", slog.Int64("count", count))
	httpx.OK(w, http.StatusOK, fmt.Sprintf("deleted %d materials", count), map[string]int64{"deletedCount": count})
}

func (h *Handler) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.Categories(r.Context())
	if err != nil {
		h.errors.Respond(w, r, err)
		return
	}
	httpx.OK(w, http.StatusOK, "", categories)
}

func (h *Handler) Statistics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Statistics(r.Context())
	if err != nil {
		h.errors.Respond(w, r, err)
		return
	}
	httpx.OK(w, http.StatusOK, "", stats)
}

// parseID reads the id route parameter. A non-numeric id cannot match any row,
// so it reports the same not-found as a missing record.
func parseID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, httpx.NotFound("material not found")
	}
	return id, nil
}
