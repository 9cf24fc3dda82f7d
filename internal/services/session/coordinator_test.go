package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/expotrack/expotrack/internal/dependencies/mocks"
	"github.com/expotrack/expotrack/internal/model"
	"github.com/expotrack/expotrack/internal/services/aggregate"
	"github.com/expotrack/expotrack/internal/services/leaderboard"
	"github.com/expotrack/expotrack/internal/services/registry"
	"github.com/expotrack/expotrack/internal/services/timer"
	"github.com/expotrack/expotrack/internal/storage/memory"
	"github.com/expotrack/expotrack/internal/testutil"
)

// recordingNotifier captures sends and can be told to fail
type recordingNotifier struct {
	sent      int
	fail      bool
	visitor   model.VisitorIdentity
	completed map[model.StationID]float64
}

func (n *recordingNotifier) SendSummary(ctx context.Context, visitor model.VisitorIdentity, entryTime time.Time, completed map[model.StationID]float64) error {
	n.sent++
	n.visitor = visitor
	n.completed = completed
	if n.fail {
		return errors.New("smtp is down")
	}
	return nil
}

type CoordinatorSuite struct {
	suite.Suite
	storage     *memory.Storage
	clock       *mocks.MockClock
	notifier    *recordingNotifier
	coordinator *Coordinator
	ctx         context.Context
}

func TestCoordinatorSuite(t *testing.T) {
	suite.Run(t, new(CoordinatorSuite))
}

func (s *CoordinatorSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC))
	s.notifier = &recordingNotifier{}

	logger := testutil.NopLogger()
	catalog := model.NewStationCatalog([]model.Station{
		{ID: "1", Name: "Framework"},
		{ID: "2", Name: "Solution"},
	})

	registryService := registry.New(s.storage, s.clock, registry.DefaultConfig(), logger)
	aggregateService := aggregate.New(s.storage, aggregate.DefaultConfig(), logger)
	timerService := timer.New(catalog, aggregateService, s.clock, logger)
	leaderboardService := leaderboard.New(catalog)

	s.coordinator = New(registryService, timerService, leaderboardService, s.notifier, s.clock, DefaultConfig(), logger)
	s.ctx = context.Background()
}

func (s *CoordinatorSuite) TestRegisterOpensSession() {
	session, err := s.coordinator.Register(s.ctx, "E1", "Alice", "a@x.com")
	s.Require().NoError(err)

	s.NotEmpty(session.Token)
	s.Equal(model.VisitorID("E1"), session.Visitor.ID)
	s.Equal(s.clock.CurrentTime, session.EntryTime)

	got, err := s.coordinator.Get(session.Token)
	s.Require().NoError(err)
	s.Equal(session.Token, got.Token)
}

func (s *CoordinatorSuite) TestRegisterFailureOpensNoSession() {
	_, err := s.coordinator.Register(s.ctx, "E1", "Alice", "a@x.com")
	s.Require().NoError(err)

	_, err = s.coordinator.Register(s.ctx, "E1", "Bob", "b@y.com")
	s.ErrorIs(err, model.ErrDuplicateID)
}

func (s *CoordinatorSuite) TestGetUnknownToken() {
	_, err := s.coordinator.Get("sess_unknown")
	s.ErrorIs(err, model.ErrNoActiveSession)
}

func (s *CoordinatorSuite) TestStartStopThroughCoordinator() {
	session, err := s.coordinator.Register(s.ctx, "E1", "Alice", "a@x.com")
	s.Require().NoError(err)

	startedAt, err := s.coordinator.StartStation(session.Token, "1")
	s.Require().NoError(err)
	s.Equal(s.clock.CurrentTime, startedAt)

	s.clock.Advance(90 * time.Second)

	res, err := s.coordinator.StopStation(s.ctx, session.Token, "1")
	s.Require().NoError(err)
	s.Equal(1.5, res.Minutes)

	record, err := s.storage.GetAggregate(s.ctx, "E1")
	s.Require().NoError(err)
	minutes, ok := record.Duration("1")
	s.True(ok)
	s.Equal(1.5, minutes)
}

func (s *CoordinatorSuite) TestStartWithoutSession() {
	_, err := s.coordinator.StartStation("sess_unknown", "1")
	s.ErrorIs(err, model.ErrNoActiveSession)
}

func (s *CoordinatorSuite) TestStopWithoutSession() {
	_, err := s.coordinator.StopStation(s.ctx, "sess_unknown", "1")
	s.ErrorIs(err, model.ErrNoActiveSession)
}

func (s *CoordinatorSuite) TestLeaderboard() {
	session, _ := s.coordinator.Register(s.ctx, "E1", "Alice", "a@x.com")

	_, _ = s.coordinator.StartStation(session.Token, "1")
	s.clock.Advance(2 * time.Minute)
	_, err := s.coordinator.StopStation(s.ctx, session.Token, "1")
	s.Require().NoError(err)

	_, _ = s.coordinator.StartStation(session.Token, "2")
	s.clock.Advance(5 * time.Minute)
	_, err = s.coordinator.StopStation(s.ctx, session.Token, "2")
	s.Require().NoError(err)

	entries, err := s.coordinator.Leaderboard(session.Token)
	s.Require().NoError(err)
	s.Require().Len(entries, 2)
	s.Equal(model.StationID("2"), entries[0].StationID)
	s.Equal(model.StationID("1"), entries[1].StationID)
}

func (s *CoordinatorSuite) TestLogoutSendsSummaryAndClosesSession() {
	session, _ := s.coordinator.Register(s.ctx, "E1", "Alice", "a@x.com")
	_, _ = s.coordinator.StartStation(session.Token, "1")
	s.clock.Advance(time.Minute)
	_, _ = s.coordinator.StopStation(s.ctx, session.Token, "1")

	result := s.coordinator.Logout(s.ctx, session.Token)

	s.True(result.HadSession)
	s.True(result.SummarySent)
	s.Equal(1, s.notifier.sent)
	s.Equal(model.VisitorID("E1"), s.notifier.visitor.ID)
	s.Equal(1.0, s.notifier.completed["1"])

	_, err := s.coordinator.Get(session.Token)
	s.ErrorIs(err, model.ErrNoActiveSession)
}

func (s *CoordinatorSuite) TestLogoutIsIdempotent() {
	session, _ := s.coordinator.Register(s.ctx, "E1", "Alice", "a@x.com")

	first := s.coordinator.Logout(s.ctx, session.Token)
	s.True(first.HadSession)

	second := s.coordinator.Logout(s.ctx, session.Token)
	s.False(second.HadSession)
	s.False(second.SummarySent)

	// Notification fired exactly once
	s.Equal(1, s.notifier.sent)
}

func (s *CoordinatorSuite) TestLogoutSucceedsWhenNotifierFails() {
	s.notifier.fail = true

	session, _ := s.coordinator.Register(s.ctx, "E1", "Alice", "a@x.com")
	result := s.coordinator.Logout(s.ctx, session.Token)

	s.True(result.HadSession)
	s.False(result.SummarySent)
}

func (s *CoordinatorSuite) TestRunningTimerContributesNothingAtLogout() {
	session, _ := s.coordinator.Register(s.ctx, "E1", "Alice", "a@x.com")
	_, _ = s.coordinator.StartStation(session.Token, "1")
	s.clock.Advance(time.Minute)

	result := s.coordinator.Logout(s.ctx, session.Token)

	s.True(result.HadSession)
	s.Empty(s.notifier.completed)
}
