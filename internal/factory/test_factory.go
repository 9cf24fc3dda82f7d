package factory

import (
	"context"
	"sync"
	"time"

	"github.com/expotrack/expotrack/internal/dependencies/mocks"
	"github.com/expotrack/expotrack/internal/model"
	"github.com/expotrack/expotrack/internal/storage/memory"
	"github.com/expotrack/expotrack/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock    *mocks.MockClock
	SentNotifier *CapturingNotifier
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	notifier := &CapturingNotifier{}

	app := newWithDependencies(store, stationsForTest(), notifier, mockClock, Config{}, testutil.NopLogger())

	return &TestApp{
		App:          app,
		MockClock:    mockClock,
		SentNotifier: notifier,
	}
}

// CapturingNotifier records the summaries it is asked to send
type CapturingNotifier struct {
	mu   sync.Mutex
	Sent []SentSummary
	Err  error
}

// SentSummary is one recorded summary delivery
type SentSummary struct {
	Visitor   model.VisitorIdentity
	EntryTime time.Time
	Completed map[model.StationID]float64
}

func (n *CapturingNotifier) SendSummary(ctx context.Context, visitor model.VisitorIdentity, entryTime time.Time, completed map[model.StationID]float64) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.Err != nil {
		return n.Err
	}
	n.Sent = append(n.Sent, SentSummary{Visitor: visitor, EntryTime: entryTime, Completed: completed})
	return nil
}

// Summaries returns a copy of the recorded deliveries
func (n *CapturingNotifier) Summaries() []SentSummary {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]SentSummary, len(n.Sent))
	copy(out, n.Sent)
	return out
}

func stationsForTest() *model.StationCatalog {
	return model.NewStationCatalog([]model.Station{
		{ID: "1", Name: "Framework", EstimatedTime: "15 minutes"},
		{ID: "2", Name: "Solution", EstimatedTime: "15 minutes"},
		{ID: "3", Name: "Data Analytics Team", EstimatedTime: "15 minutes"},
	})
}
