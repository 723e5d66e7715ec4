package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	appfp "github.com/turtacn/KeyIP-Fingerprint/internal/application/fingerprint"
	"github.com/turtacn/KeyIP-Fingerprint/internal/infrastructure/monitoring/logging"
	ftypes "github.com/turtacn/KeyIP-Fingerprint/pkg/types/fingerprint"
)

// FingerprintHandler serves the fingerprint catalog and calculation
// endpoints.
type FingerprintHandler struct {
	svc         appfp.Service
	logger      logging.Logger
	maxBodySize int64
}

// NewFingerprintHandler creates a FingerprintHandler.  A non-positive
// maxBodySize selects DefaultMaxBodySize.
func NewFingerprintHandler(svc appfp.Service, logger logging.Logger, maxBodySize int64) *FingerprintHandler {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &FingerprintHandler{svc: svc, logger: logger, maxBodySize: maxBodySize}
}

// RegisterRoutes mounts the handler under /fingerprints.
func (h *FingerprintHandler) RegisterRoutes(r chi.Router) {
	r.Route("/fingerprints", func(fr chi.Router) {
		fr.Get("/families", h.ListFamilies)
		fr.Post("/specification", h.Specification)
		fr.Post("/validate", h.Validate)
		fr.Post("/compatibility", h.Compatibility)
		fr.Post("/calculate", h.Calculate)
		fr.Post("/similarity", h.Similarity)
	})
}

// ListFamilies handles GET /fingerprints/families.
func (h *FingerprintHandler) ListFamilies(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"families": h.svc.Families(r.Context()),
	})
}

// Specification handles POST /fingerprints/specification.
func (h *FingerprintHandler) Specification(w http.ResponseWriter, r *http.Request) {
	var req ftypes.SpecificationRequest
	if err := decodeJSON(w, r, h.maxBodySize, &req); err != nil {
		writeAppError(w, r, h.logger, err)
		return
	}
	dto, err := h.svc.Specification(r.Context(), &req)
	if err != nil {
		writeAppError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, dto)
}

// Validate handles POST /fingerprints/validate.  Illegal settings are a
// successful call with valid=false.
func (h *FingerprintHandler) Validate(w http.ResponseWriter, r *http.Request) {
	var dto ftypes.SettingsDTO
	if err := decodeJSON(w, r, h.maxBodySize, &dto); err != nil {
		writeAppError(w, r, h.logger, err)
		return
	}
	resp, err := h.svc.Validate(r.Context(), dto)
	if err != nil {
		writeAppError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Compatibility handles POST /fingerprints/compatibility.
func (h *FingerprintHandler) Compatibility(w http.ResponseWriter, r *http.Request) {
	var req ftypes.CompatibilityRequest
	if err := decodeJSON(w, r, h.maxBodySize, &req); err != nil {
		writeAppError(w, r, h.logger, err)
		return
	}
	resp, err := h.svc.CheckCompatibility(r.Context(), &req)
	if err != nil {
		writeAppError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Calculate handles POST /fingerprints/calculate.
func (h *FingerprintHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	var req ftypes.CalculateRequest
	if err := decodeJSON(w, r, h.maxBodySize, &req); err != nil {
		writeAppError(w, r, h.logger, err)
		return
	}
	resp, err := h.svc.Calculate(r.Context(), &req)
	if err != nil {
		writeAppError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Similarity handles POST /fingerprints/similarity.
func (h *FingerprintHandler) Similarity(w http.ResponseWriter, r *http.Request) {
	var req ftypes.SimilarityRequest
	if err := decodeJSON(w, r, h.maxBodySize, &req); err != nil {
		writeAppError(w, r, h.logger, err)
		return
	}
	resp, err := h.svc.Similarity(r.Context(), &req)
	if err != nil {
		writeAppError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

//Personal.AI order the ending
