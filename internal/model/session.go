package model

import (
	"math"
	"sync"
	"time"
)

// SessionToken is the server-issued key for an active session
type SessionToken string

// RoundMinutes rounds a duration in minutes to 2 decimal places
func RoundMinutes(minutes float64) float64 {
	return math.Round(minutes*100) / 100
}

// Session is the ephemeral per-visitor context spanning registration to
// logout. It owns the per-station timer state; all mutation goes through
// its methods, which serialize concurrent callers for the same session.
type Session struct {
	Token     SessionToken
	Visitor   VisitorIdentity
	EntryTime time.Time

	mu        sync.Mutex
	running   map[StationID]time.Time
	completed map[StationID]float64
}

// NewSession creates an active session with empty timer state
func NewSession(token SessionToken, visitor VisitorIdentity, entryTime time.Time) *Session {
	return &Session{
		Token:     token,
		Visitor:   visitor,
		EntryTime: entryTime,
		running:   make(map[StationID]time.Time),
		completed: make(map[StationID]float64),
	}
}

// StartStation records (or overwrites) the running start timestamp for a
// station. Restarting a running or completed station discards the prior
// start time; a previously completed duration is kept until the next stop.
func (s *Session) StartStation(id StationID, now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.running[id] = now
}

// StopResult describes a completed stop transition
type StopResult struct {
	// Minutes is the elapsed duration in minutes, rounded to 2 decimals
	Minutes float64
	// Clamped is true when a negative elapsed time was clamped to zero
	Clamped bool
	// StartedAt is the start timestamp the duration was measured from
	StartedAt time.Time
}

// StopStation completes a running station timer. It computes the elapsed
// duration in minutes rounded to 2 decimal places, stores it as the
// station's completed duration, and clears the running entry. A negative
// elapsed time (clock skew) is clamped to zero and reported via Clamped.
// Returns ErrStationNotStarted if the station has no running timer.
func (s *Session) StopStation(id StationID, now time.Time) (StopResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	start, ok := s.running[id]
	if !ok {
		return StopResult{}, ErrStationNotStarted
	}

	res := StopResult{StartedAt: start}
	elapsed := now.Sub(start).Minutes()
	if elapsed < 0 {
		elapsed = 0
		res.Clamped = true
	}

	res.Minutes = RoundMinutes(elapsed)
	s.completed[id] = res.Minutes
	delete(s.running, id)
	return res, nil
}

// RunningStations returns a copy of the running timer start times
func (s *Session) RunningStations() map[StationID]time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[StationID]time.Time, len(s.running))
	for id, t := range s.running {
		out[id] = t
	}
	return out
}

// CompletedTimes returns a copy of the completed durations in minutes
func (s *Session) CompletedTimes() map[StationID]float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[StationID]float64, len(s.completed))
	for id, m := range s.completed {
		out[id] = m
	}
	return out
}
