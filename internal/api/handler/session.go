package handler

import (
	"net/http"

	"github.com/expotrack/expotrack/internal/api/middleware"
	"github.com/expotrack/expotrack/internal/api/response"
	"github.com/expotrack/expotrack/internal/services/session"
)

// SessionHandler handles session-scoped endpoints
type SessionHandler struct {
	coordinator *session.Coordinator
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(coordinator *session.Coordinator) *SessionHandler {
	return &SessionHandler{coordinator: coordinator}
}

// Snapshot handles GET /api/v1/session
func (h *SessionHandler) Snapshot(w http.ResponseWriter, r *http.Request) {
	sess := middleware.MustGetSession(r.Context())
	response.JSON(w, http.StatusOK, response.SnapshotFromSession(sess))
}

// Leaderboard handles GET /api/v1/leaderboard
func (h *SessionHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	sess := middleware.MustGetSession(r.Context())

	entries, err := h.coordinator.Leaderboard(sess.Token)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.LeaderboardFromEntries(entries))
}

// Logout handles POST /api/v1/logout. Logout is idempotent, so this route
// skips the auth middleware: a missing or stale token still succeeds.
func (h *SessionHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token := middleware.ExtractToken(r)

	result := h.coordinator.Logout(r.Context(), token)

	// Clear the session cookie regardless of outcome
	http.SetCookie(w, &http.Cookie{
		Name:     "session",
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	response.JSON(w, http.StatusOK, response.LogoutResponseFromResult(result))
}
