package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/passguard/passguard-go/internal/crypto"
	"github.com/passguard/passguard-go/internal/export"
	"github.com/passguard/passguard-go/internal/middleware"
	"github.com/passguard/passguard-go/internal/model"
	"github.com/passguard/passguard-go/internal/service"
)

// GeneratorHandler handles HTTP requests for password generation.
type GeneratorHandler struct {
	service *service.GeneratorService
	history *service.HistoryService
}

// NewGeneratorHandler creates a new GeneratorHandler. history may be nil when
// no database is available.
func NewGeneratorHandler(svc *service.GeneratorService, history *service.HistoryService) *GeneratorHandler {
	return &GeneratorHandler{service: svc, history: history}
}

// HandleGenerate handles POST /api/v1/generate requests.
func (h *GeneratorHandler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	var req model.GenerateRequest
	if !decodeJSON(w, r, &req, true) {
		return
	}

	resp, err := h.service.Generate(req)
	if err != nil {
		writeGeneratorError(w, err)
		return
	}

	if userID, ok := middleware.UserIDFromContext(r.Context()); ok && h.history != nil {
		if _, err := h.history.Record(r.Context(), userID, resp); err != nil {
			slog.Warn("recording history failed", "user_id", userID, "error", err)
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleAssess handles POST /api/v1/assess requests.
func (h *GeneratorHandler) HandleAssess(w http.ResponseWriter, r *http.Request) {
	var req model.GenerateRequest
	if !decodeJSON(w, r, &req, true) {
		return
	}

	resp, err := h.service.Assess(req)
	if err != nil {
		writeGeneratorError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleShuffle handles POST /api/v1/shuffle requests.
func (h *GeneratorHandler) HandleShuffle(w http.ResponseWriter, r *http.Request) {
	var req model.PasswordRequest
	if !decodeJSON(w, r, &req, false) {
		return
	}

	resp, err := h.service.Shuffle(req)
	if err != nil {
		writeGeneratorError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleExport handles POST /api/v1/export requests.
func (h *GeneratorHandler) HandleExport(w http.ResponseWriter, r *http.Request) {
	var req model.PasswordRequest
	if !decodeJSON(w, r, &req, false) {
		return
	}

	content, filename, err := h.service.Export(req)
	if err != nil {
		writeGeneratorError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(content))
}

func writeGeneratorError(w http.ResponseWriter, err error) {
	switch {
	case isValidationError(err):
		writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
	case errors.Is(err, crypto.ErrExhaustedEntropy):
		slog.Error("secure randomness unavailable", "error", err)
		writeJSON(w, http.StatusServiceUnavailable, errorResponse("secure random source unavailable"))
	default:
		slog.Error("generation failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
	}
}

func isValidationError(err error) bool {
	return errors.Is(err, crypto.ErrEmptyPool) ||
		errors.Is(err, crypto.ErrInvalidLength) ||
		errors.Is(err, service.ErrLengthTooLong) ||
		errors.Is(err, service.ErrPasswordRequired) ||
		errors.Is(err, export.ErrNothingToExport)
}
