package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/expotrack/expotrack/internal/api/request"
	"github.com/expotrack/expotrack/internal/api/response"
	"github.com/expotrack/expotrack/internal/model"
	"github.com/expotrack/expotrack/internal/services/aggregate"
	"github.com/expotrack/expotrack/internal/services/session"
)

// VisitorHandler handles visitor-related endpoints
type VisitorHandler struct {
	coordinator *session.Coordinator
	aggregate   *aggregate.Service
}

// NewVisitorHandler creates a new visitor handler
func NewVisitorHandler(coordinator *session.Coordinator, aggregate *aggregate.Service) *VisitorHandler {
	return &VisitorHandler{
		coordinator: coordinator,
		aggregate:   aggregate,
	}
}

// Register handles POST /api/v1/visitors/register
func (h *VisitorHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	sess, err := h.coordinator.Register(r.Context(), model.VisitorID(req.VisitorID), req.Name, req.Email)
	if err != nil {
		WriteError(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "session",
		Value:    string(sess.Token),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	response.JSON(w, http.StatusCreated, response.RegisterResponseFromSession(sess))
}

// GetTimes handles GET /api/v1/visitors/{id}/times
func (h *VisitorHandler) GetTimes(w http.ResponseWriter, r *http.Request) {
	visitorID := model.VisitorID(mux.Vars(r)["id"])

	record, err := h.aggregate.Read(r.Context(), visitorID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.AggregateFromModel(record))
}
