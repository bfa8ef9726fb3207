// internal/api/biodata/routes.go
package biodata

import (
	"net/http"

	commonhttp "biodata-service/internal/common/http"
)

// Register mounts the biodata routes. Each route is instrumented under its
// own pattern so metric labels stay bounded.
func (h *Handler) Register(mux *http.ServeMux) {
	routes := []struct {
		pattern string
		handler http.HandlerFunc
	}{
		{"GET /{$}", h.List},
		{"GET /api/biodata", h.List},
		{"POST /api/student_check", h.StudentCheck},
		{"POST /api/biodata", h.Create},
		{"GET /api/biodata/{$}", h.Get},
		{"GET /api/biodata/{id}", h.Get},
		{"PUT /api/biodata/{id}", h.Update},
		{"DELETE /api/biodata/{id}", h.Delete},
	}

	for _, rt := range routes {
		mux.Handle(rt.pattern, commonhttp.Instrument(rt.pattern, rt.handler))
	}
}
