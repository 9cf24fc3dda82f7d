package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case RegisterResult:
		o.printRegisterResult(v)
	case StationsResult:
		o.printStationsResult(v)
	case StartResult:
		o.printStartResult(v)
	case StopResult:
		o.printStopResult(v)
	case LeaderboardResult:
		o.printLeaderboardResult(v)
	case SessionResult:
		o.printSessionResult(v)
	case TimesResult:
		o.printTimesResult(v)
	case LogoutResult:
		o.printLogoutResult(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Visitor response type (matches API)
type Visitor struct {
	VisitorID    string    `json:"visitor_id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	RegisteredAt time.Time `json:"registered_at"`
}

// RegisterResult combines visitor and token
type RegisterResult struct {
	Visitor      Visitor `json:"visitor"`
	SessionToken string  `json:"session_token"`
}

// Station response type
type Station struct {
	StationID     string `json:"station_id"`
	Name          string `json:"name"`
	EstimatedTime string `json:"estimated_time,omitempty"`
}

// StationsResult lists the station catalog
type StationsResult struct {
	Stations []Station `json:"stations"`
}

// StartResult response type
type StartResult struct {
	StationID string    `json:"station_id"`
	StartedAt time.Time `json:"started_at"`
}

// StopResult response type
type StopResult struct {
	StationID   string  `json:"station_id"`
	StationName string  `json:"station_name,omitempty"`
	Minutes     float64 `json:"minutes"`
	Clamped     bool    `json:"clamped,omitempty"`
}

// LeaderboardEntry response type
type LeaderboardEntry struct {
	StationID   string  `json:"station_id"`
	StationName string  `json:"station_name"`
	TimeSpent   string  `json:"time_spent"`
	Minutes     float64 `json:"minutes"`
}

// LeaderboardResult response type
type LeaderboardResult struct {
	Entries []LeaderboardEntry `json:"entries"`
}

// SessionResult response type
type SessionResult struct {
	VisitorID      string               `json:"visitor_id"`
	Name           string               `json:"name"`
	EntryTime      time.Time            `json:"entry_time"`
	Running        map[string]time.Time `json:"running"`
	CompletedTimes map[string]float64   `json:"completed_times"`
}

// TimesResult response type
type TimesResult struct {
	VisitorID string             `json:"visitor_id"`
	Durations map[string]float64 `json:"durations"`
}

// LogoutResult response type
type LogoutResult struct {
	LoggedOut   bool   `json:"logged_out"`
	SummarySent bool   `json:"summary_sent"`
	Message     string `json:"message"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printRegisterResult(r RegisterResult) {
	fmt.Printf("Visitor: %s (%s)\n", r.Visitor.Name, r.Visitor.VisitorID)
	fmt.Printf("Email: %s\n", r.Visitor.Email)
	fmt.Printf("Token: %s\n", r.SessionToken)
}

func (o *Output) printStationsResult(r StationsResult) {
	fmt.Printf("Stations (%d):\n", len(r.Stations))
	for _, s := range r.Stations {
		if s.EstimatedTime != "" {
			fmt.Printf("  %s: %s (%s)\n", s.StationID, s.Name, s.EstimatedTime)
		} else {
			fmt.Printf("  %s: %s\n", s.StationID, s.Name)
		}
	}
}

func (o *Output) printStartResult(r StartResult) {
	fmt.Printf("Started station %s at %s\n", r.StationID, r.StartedAt.Format(time.Kitchen))
}

func (o *Output) printStopResult(r StopResult) {
	name := r.StationName
	if name == "" {
		name = "station " + r.StationID
	}
	fmt.Printf("Stopped %s: %.2f minutes\n", name, r.Minutes)
	if r.Clamped {
		fmt.Println("Warning: measured duration was negative and was recorded as zero")
	}
}

func (o *Output) printLeaderboardResult(r LeaderboardResult) {
	if len(r.Entries) == 0 {
		fmt.Println("No completed stations yet")
		return
	}
	for i, e := range r.Entries {
		fmt.Printf("%d. %s - %s\n", i+1, e.StationName, e.TimeSpent)
	}
}

func (o *Output) printSessionResult(r SessionResult) {
	fmt.Printf("Visitor: %s (%s)\n", r.Name, r.VisitorID)
	fmt.Printf("Entry Time: %s\n", r.EntryTime.Format(time.RFC3339))

	if len(r.Running) > 0 {
		fmt.Println("Running:")
		for _, id := range sortedKeys(r.Running) {
			fmt.Printf("  %s (since %s)\n", id, r.Running[id].Format(time.Kitchen))
		}
	}

	if len(r.CompletedTimes) > 0 {
		fmt.Println("Completed:")
		for _, id := range sortedKeys(r.CompletedTimes) {
			fmt.Printf("  %s: %.2f minutes\n", id, r.CompletedTimes[id])
		}
	}
}

func (o *Output) printTimesResult(r TimesResult) {
	fmt.Printf("Visitor: %s\n", r.VisitorID)
	for _, id := range sortedKeys(r.Durations) {
		fmt.Printf("  %s: %.2f minutes\n", id, r.Durations[id])
	}
}

func (o *Output) printLogoutResult(r LogoutResult) {
	fmt.Println(r.Message)
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
