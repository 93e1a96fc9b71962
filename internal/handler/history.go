package handler

import (
	"net/http"

	"github.com/vaultpass/passgen-go/internal/history"
	"github.com/vaultpass/passgen-go/internal/middleware"
	"github.com/vaultpass/passgen-go/internal/model"
)

// HistoryHandler serves the caller's session history.
type HistoryHandler struct {
	sessions *middleware.Sessions
}

// NewHistoryHandler creates a new HistoryHandler.
func NewHistoryHandler(sessions *middleware.Sessions) *HistoryHandler {
	return &HistoryHandler{sessions: sessions}
}

// HandleHistory handles GET /api/v1/history requests. Callers without a
// session get an empty list.
func (h *HistoryHandler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	resp := model.HistoryResponse{
		Capacity: h.sessions.Store().HistorySize(),
		Entries:  []history.Entry{},
	}
	if sess, ok := middleware.SessionFromContext(r.Context()); ok {
		resp.Capacity = sess.History.Cap()
		resp.Entries = sess.History.Items()
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleClearHistory handles DELETE /api/v1/history requests.
func (h *HistoryHandler) HandleClearHistory(w http.ResponseWriter, r *http.Request) {
	if sess, ok := middleware.SessionFromContext(r.Context()); ok {
		sess.History.Clear()
	}
	w.WriteHeader(http.StatusNoContent)
}
