package materials

import (
	"github.com/go-chi/chi/v5"
)

// Routes mounts the materials endpoints. The fixed paths (statistics,
// categories) are registered before the id parameter so they are not shadowed.
func (h *Handler) Routes(r chi.Router) {
	r.Route("/materials", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/statistics", h.Statistics)
		r.Get("/categories", h.Categories)
		r.Get("/{id}", h.Get)
		r.Post("/", h.Create)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
		r.Delete("/", h.BulkDelete)
	})
}
