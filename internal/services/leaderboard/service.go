package leaderboard

import (
	"fmt"
	"sort"

	"github.com/expotrack/expotrack/internal/model"
)

// Entry is one ranked row of a session's leaderboard
type Entry struct {
	StationID         model.StationID
	StationName       string
	FormattedDuration string
	Minutes           float64
}

// Service projects a session's completed station durations into a ranked
// view. It is read-only.
type Service struct {
	catalog *model.StationCatalog
}

// New creates a new leaderboard service
func New(catalog *model.StationCatalog) *Service {
	return &Service{catalog: catalog}
}

// Rank returns the session's completed stations ordered descending by
// duration, ties broken by ascending station id. Stations missing from
// the catalog are skipped.
func (s *Service) Rank(session *model.Session) ([]Entry, error) {
	if session == nil {
		return nil, model.ErrNoActiveSession
	}

	completed := session.CompletedTimes()
	entries := make([]Entry, 0, len(completed))
	for id, minutes := range completed {
		station, ok := s.catalog.Get(id)
		if !ok {
			continue
		}
		entries = append(entries, Entry{
			StationID:         id,
			StationName:       station.Name,
			FormattedDuration: FormatMinutes(minutes),
			Minutes:           minutes,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Minutes != entries[j].Minutes {
			return entries[i].Minutes > entries[j].Minutes
		}
		return entries[i].StationID < entries[j].StationID
	})

	return entries, nil
}

// FormatMinutes renders a duration in minutes as "{h}h {m}m {s}s",
// omitting leading zero-valued units.
func FormatMinutes(minutes float64) string {
	hours := int(minutes) / 60
	mins := int(minutes) % 60
	secs := int((minutes - float64(int(minutes))) * 60)

	switch {
	case hours > 0:
		return fmt.Sprintf("%dh %dm %ds", hours, mins, secs)
	case mins > 0:
		return fmt.Sprintf("%dm %ds", mins, secs)
	default:
		return fmt.Sprintf("%ds", secs)
	}
}
