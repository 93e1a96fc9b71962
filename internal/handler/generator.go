package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/vaultpass/passgen-go/internal/history"
	"github.com/vaultpass/passgen-go/internal/middleware"
	"github.com/vaultpass/passgen-go/internal/model"
	"github.com/vaultpass/passgen-go/internal/service"
)

// GeneratorHandler handles HTTP requests for password generation.
type GeneratorHandler struct {
	service  *service.GeneratorService
	sessions *middleware.Sessions
}

// NewGeneratorHandler creates a new GeneratorHandler. With nil sessions no
// history is recorded.
func NewGeneratorHandler(svc *service.GeneratorService, sessions *middleware.Sessions) *GeneratorHandler {
	return &GeneratorHandler{service: svc, sessions: sessions}
}

// HandleGenerate handles POST /api/v1/generate requests. The batch is
// recorded in the caller's session history.
func (h *GeneratorHandler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	var req model.GenerateRequest
	if !decodeJSON(w, r, &req, true) {
		return
	}

	resp, err := h.service.Generate(req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	if h.sessions != nil {
		sess, err := h.sessions.Ensure(w, r)
		if err != nil {
			slog.Error("creating session", "error", err)
			writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
			return
		}
		entries := make([]history.Entry, len(resp.Passwords))
		for i, p := range resp.Passwords {
			entries[i] = history.Entry{Password: p.Password, Strength: p.Strength}
		}
		sess.History.Push(entries...)
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleStrength handles POST /api/v1/strength requests.
func (h *GeneratorHandler) HandleStrength(w http.ResponseWriter, r *http.Request) {
	var req model.StrengthRequest
	if !decodeJSON(w, r, &req, false) {
		return
	}

	resp, err := h.service.Score(req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// decodeJSON reads the request body into v, writing the error response
// itself when it fails. An empty body is accepted when optional is set.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any, optional bool) bool {
	if r.Body == nil || r.Body == http.NoBody {
		if optional {
			return true
		}
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid request body"))
		return false
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB
	defer r.Body.Close()

	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse("request body too large"))
		case optional && errors.Is(err, io.EOF):
			return true
		default:
			writeJSON(w, http.StatusBadRequest, errorResponse("invalid request body"))
		}
		return false
	}
	return true
}

func writeServiceError(w http.ResponseWriter, err error) {
	if service.IsValidationError(err) {
		writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
		return
	}
	slog.Error("request failed", "error", err)
	writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func errorResponse(msg string) map[string]string {
	return map[string]string{"error": msg}
}
