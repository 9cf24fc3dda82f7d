package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/expotrack/expotrack/internal/api/middleware"
	"github.com/expotrack/expotrack/internal/api/response"
	"github.com/expotrack/expotrack/internal/model"
	"github.com/expotrack/expotrack/internal/services/session"
)

// StationHandler handles station and timer endpoints
type StationHandler struct {
	coordinator *session.Coordinator
	catalog     *model.StationCatalog
}

// NewStationHandler creates a new station handler
func NewStationHandler(coordinator *session.Coordinator, catalog *model.StationCatalog) *StationHandler {
	return &StationHandler{
		coordinator: coordinator,
		catalog:     catalog,
	}
}

// List handles GET /api/v1/stations
func (h *StationHandler) List(w http.ResponseWriter, r *http.Request) {
	list := h.catalog.List()
	stations := make([]response.Station, len(list))
	for i, st := range list {
		stations[i] = response.StationFromModel(st)
	}
	response.JSON(w, http.StatusOK, response.StationsResponse{Stations: stations})
}

// Start handles POST /api/v1/stations/{id}/start
func (h *StationHandler) Start(w http.ResponseWriter, r *http.Request) {
	sess := middleware.MustGetSession(r.Context())
	stationID := model.StationID(mux.Vars(r)["id"])

	startedAt, err := h.coordinator.StartStation(sess.Token, stationID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.StartResponse{
		StationID: string(stationID),
		StartedAt: startedAt,
	})
}

// Stop handles POST /api/v1/stations/{id}/stop
func (h *StationHandler) Stop(w http.ResponseWriter, r *http.Request) {
	sess := middleware.MustGetSession(r.Context())
	stationID := model.StationID(mux.Vars(r)["id"])

	res, err := h.coordinator.StopStation(r.Context(), sess.Token, stationID)
	if err != nil {
		WriteError(w, err)
		return
	}

	var stationName string
	if station, ok := h.catalog.Get(stationID); ok {
		stationName = station.Name
	}

	response.JSON(w, http.StatusOK, response.StopResponse{
		StationID:   string(stationID),
		StationName: stationName,
		Minutes:     res.Minutes,
		Clamped:     res.Clamped,
	})
}
