package handler

import (
	"net/http"

	"github.com/passguard/passguard-go/internal/middleware"
	"github.com/passguard/passguard-go/internal/model"
	"github.com/passguard/passguard-go/internal/service"
)

// PreferencesHandler handles HTTP requests for saved generator settings.
type PreferencesHandler struct {
	service *service.PreferencesService
}

// NewPreferencesHandler creates a new PreferencesHandler.
func NewPreferencesHandler(svc *service.PreferencesService) *PreferencesHandler {
	return &PreferencesHandler{service: svc}
}

// HandleGet handles GET /api/v1/preferences requests.
func (h *PreferencesHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	prefs, err := h.service.Get(r.Context(), userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	writeJSON(w, http.StatusOK, prefs)
}

// HandlePut handles PUT /api/v1/preferences requests.
func (h *PreferencesHandler) HandlePut(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	var req model.PreferencesPayload
	if !decodeJSON(w, r, &req, false) {
		return
	}

	prefs, err := h.service.Save(r.Context(), userID, req)
	if err != nil {
		if isValidationError(err) {
			writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	writeJSON(w, http.StatusOK, prefs)
}
