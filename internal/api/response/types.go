package response

import (
	"time"

	"github.com/expotrack/expotrack/internal/model"
	"github.com/expotrack/expotrack/internal/services/leaderboard"
	"github.com/expotrack/expotrack/internal/services/session"
)

// Visitor represents a visitor identity in API responses
type Visitor struct {
	VisitorID    string    `json:"visitor_id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	RegisteredAt time.Time `json:"registered_at"`
}

// VisitorFromModel converts a model.VisitorIdentity to a response Visitor
func VisitorFromModel(v *model.VisitorIdentity) Visitor {
	return Visitor{
		VisitorID:    string(v.ID),
		Name:         v.Name,
		Email:        v.Email,
		RegisteredAt: v.RegisteredAt,
	}
}

// RegisterResponse is the response for the registration endpoint
type RegisterResponse struct {
	Visitor      Visitor `json:"visitor"`
	SessionToken string  `json:"session_token"`
}

// RegisterResponseFromSession creates a RegisterResponse from a session
func RegisterResponseFromSession(s *model.Session) RegisterResponse {
	return RegisterResponse{
		Visitor:      VisitorFromModel(&s.Visitor),
		SessionToken: string(s.Token),
	}
}

// Station represents station metadata
type Station struct {
	StationID     string `json:"station_id"`
	Name          string `json:"name"`
	EstimatedTime string `json:"estimated_time,omitempty"`
}

// StationFromModel converts model.Station
func StationFromModel(st model.Station) Station {
	return Station{
		StationID:     string(st.ID),
		Name:          st.Name,
		EstimatedTime: st.EstimatedTime,
	}
}

// StationsResponse lists the station catalog
type StationsResponse struct {
	Stations []Station `json:"stations"`
}

// StartResponse is the response after starting a station timer
type StartResponse struct {
	StationID string    `json:"station_id"`
	StartedAt time.Time `json:"started_at"`
}

// StopResponse is the response after stopping a station timer
type StopResponse struct {
	StationID   string  `json:"station_id"`
	StationName string  `json:"station_name,omitempty"`
	Minutes     float64 `json:"minutes"`
	Clamped     bool    `json:"clamped,omitempty"`
}

// LeaderboardEntry is one ranked leaderboard row
type LeaderboardEntry struct {
	StationID   string  `json:"station_id"`
	StationName string  `json:"station_name"`
	TimeSpent   string  `json:"time_spent"`
	Minutes     float64 `json:"minutes"`
}

// LeaderboardResponse is the ranked leaderboard for a session
type LeaderboardResponse struct {
	Entries []LeaderboardEntry `json:"entries"`
}

// LeaderboardFromEntries converts leaderboard entries
func LeaderboardFromEntries(entries []leaderboard.Entry) LeaderboardResponse {
	out := make([]LeaderboardEntry, len(entries))
	for i, e := range entries {
		out[i] = LeaderboardEntry{
			StationID:   string(e.StationID),
			StationName: e.StationName,
			TimeSpent:   e.FormattedDuration,
			Minutes:     e.Minutes,
		}
	}
	return LeaderboardResponse{Entries: out}
}

// SessionSnapshot is the debug view of a session
type SessionSnapshot struct {
	VisitorID      string               `json:"visitor_id"`
	Name           string               `json:"name"`
	EntryTime      time.Time            `json:"entry_time"`
	Running        map[string]time.Time `json:"running"`
	CompletedTimes map[string]float64   `json:"completed_times"`
}

// SnapshotFromSession builds a SessionSnapshot
func SnapshotFromSession(s *model.Session) SessionSnapshot {
	running := make(map[string]time.Time)
	for id, t := range s.RunningStations() {
		running[string(id)] = t
	}
	completed := make(map[string]float64)
	for id, m := range s.CompletedTimes() {
		completed[string(id)] = m
	}
	return SessionSnapshot{
		VisitorID:      string(s.Visitor.ID),
		Name:           s.Visitor.Name,
		EntryTime:      s.EntryTime,
		Running:        running,
		CompletedTimes: completed,
	}
}

// AggregateResponse is the durable per-visitor station durations
type AggregateResponse struct {
	VisitorID string             `json:"visitor_id"`
	Durations map[string]float64 `json:"durations"`
}

// AggregateFromModel converts model.AggregateRecord
func AggregateFromModel(r *model.AggregateRecord) AggregateResponse {
	durations := make(map[string]float64, len(r.Durations))
	for id, m := range r.Durations {
		durations[string(id)] = m
	}
	return AggregateResponse{
		VisitorID: string(r.VisitorID),
		Durations: durations,
	}
}

// LogoutResponse is the response for the logout endpoint
type LogoutResponse struct {
	LoggedOut   bool   `json:"logged_out"`
	SummarySent bool   `json:"summary_sent"`
	Message     string `json:"message"`
}

// LogoutResponseFromResult builds a LogoutResponse
func LogoutResponseFromResult(r session.LogoutResult) LogoutResponse {
	message := "No active session"
	if r.HadSession {
		message = "Logged out successfully"
		if r.SummarySent {
			message += " - summary sent"
		}
	}
	return LogoutResponse{
		LoggedOut:   true,
		SummarySent: r.SummarySent,
		Message:     message,
	}
}
