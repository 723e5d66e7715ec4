package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	appfp "github.com/turtacn/KeyIP-Fingerprint/internal/application/fingerprint"
	"github.com/turtacn/KeyIP-Fingerprint/internal/infrastructure/monitoring/logging"
	ftypes "github.com/turtacn/KeyIP-Fingerprint/pkg/types/fingerprint"
)

// FieldHandler serves the per-field settings registry.
type FieldHandler struct {
	svc         appfp.Service
	logger      logging.Logger
	maxBodySize int64
}

func NewFieldHandler(svc appfp.Service, logger logging.Logger, maxBodySize int64) *FieldHandler {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &FieldHandler{svc: svc, logger: logger, maxBodySize: maxBodySize}
}

// RegisterRoutes mounts the handler under /fields.
func (h *FieldHandler) RegisterRoutes(r chi.Router) {
	r.Route("/fields", func(fr chi.Router) {
		fr.Get("/", h.List)
		fr.Route("/{field}", func(item chi.Router) {
			item.Get("/settings", h.GetSettings)
			item.Put("/settings", h.PutSettings)
			item.Delete("/settings", h.DeleteSettings)
			item.Post("/compatibility", h.CheckQuery)
		})
	})
}

// List handles GET /fields.
func (h *FieldHandler) List(w http.ResponseWriter, r *http.Request) {
	fields, err := h.svc.ListFields(r.Context())
	if err != nil {
		writeAppError(w, r, h.logger, err)
		return
	}
	if fields == nil {
		fields = []string{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"fields": fields})
}

// GetSettings handles GET /fields/{field}/settings.
func (h *FieldHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	resp, err := h.svc.FieldSettings(r.Context(), chi.URLParam(r, "field"))
	if err != nil {
		writeAppError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// PutSettings handles PUT /fields/{field}/settings.
func (h *FieldHandler) PutSettings(w http.ResponseWriter, r *http.Request) {
	var dto ftypes.SettingsDTO
	if err := decodeJSON(w, r, h.maxBodySize, &dto); err != nil {
		writeAppError(w, r, h.logger, err)
		return
	}
	resp, err := h.svc.RegisterField(r.Context(), chi.URLParam(r, "field"), dto)
	if err != nil {
		writeAppError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// DeleteSettings handles DELETE /fields/{field}/settings.
func (h *FieldHandler) DeleteSettings(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteField(r.Context(), chi.URLParam(r, "field")); err != nil {
		writeAppError(w, r, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CheckQuery handles POST /fields/{field}/compatibility.  An incompatible
// query answers 409.
func (h *FieldHandler) CheckQuery(w http.ResponseWriter, r *http.Request) {
	var dto ftypes.SettingsDTO
	if err := decodeJSON(w, r, h.maxBodySize, &dto); err != nil {
		writeAppError(w, r, h.logger, err)
		return
	}
	if err := h.svc.CheckQueryCompatibility(r.Context(), chi.URLParam(r, "field"), dto); err != nil {
		writeAppError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, ftypes.CompatibilityResponse{Compatible: true})
}

//Personal.AI order the ending
