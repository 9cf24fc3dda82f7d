package timer

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/expotrack/expotrack/internal/dependencies/mocks"
	"github.com/expotrack/expotrack/internal/model"
	"github.com/expotrack/expotrack/internal/services/aggregate"
	"github.com/expotrack/expotrack/internal/storage/memory"
	"github.com/expotrack/expotrack/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	storage   *memory.Storage
	clock     *mocks.MockClock
	aggregate *aggregate.Service
	service   *Service
	session   *model.Session
	ctx       context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC))
	s.aggregate = aggregate.New(s.storage, aggregate.DefaultConfig(), testutil.NopLogger())

	catalog := model.NewStationCatalog([]model.Station{
		{ID: "1", Name: "Framework"},
		{ID: "2", Name: "Solution"},
	})
	s.service = New(catalog, s.aggregate, s.clock, testutil.NopLogger())

	visitor := model.VisitorIdentity{ID: "E1", Name: "Alice", Email: "a@x.com"}
	s.session = model.NewSession("tok", visitor, s.clock.CurrentTime)
	s.ctx = context.Background()
}

func (s *ServiceSuite) TestStartRecordsRunningTimer() {
	startedAt, err := s.service.Start(s.session, "1")
	s.Require().NoError(err)

	s.Equal(s.clock.CurrentTime, startedAt)
	running := s.session.RunningStations()
	s.Equal(startedAt, running["1"])
}

func (s *ServiceSuite) TestStartUnknownStation() {
	_, err := s.service.Start(s.session, "99")
	s.ErrorIs(err, model.ErrUnknownStation)
}

func (s *ServiceSuite) TestStartNilSession() {
	_, err := s.service.Start(nil, "1")
	s.ErrorIs(err, model.ErrNoActiveSession)
}

func (s *ServiceSuite) TestStopComputesMinutes() {
	_, err := s.service.Start(s.session, "1")
	s.Require().NoError(err)

	s.clock.Advance(90 * time.Second)

	res, err := s.service.Stop(s.ctx, s.session, "1")
	s.Require().NoError(err)
	s.Equal(1.5, res.Minutes)
	s.False(res.Clamped)

	completed := s.session.CompletedTimes()
	s.Equal(1.5, completed["1"])
	s.Empty(s.session.RunningStations())
}

func (s *ServiceSuite) TestStopWritesThroughToAggregate() {
	_, _ = s.service.Start(s.session, "1")
	s.clock.Advance(90 * time.Second)

	_, err := s.service.Stop(s.ctx, s.session, "1")
	s.Require().NoError(err)

	record, err := s.storage.GetAggregate(s.ctx, "E1")
	s.Require().NoError(err)
	minutes, ok := record.Duration("1")
	s.True(ok)
	s.Equal(1.5, minutes)
}

func (s *ServiceSuite) TestStopWithoutStart() {
	_, err := s.service.Stop(s.ctx, s.session, "1")
	s.ErrorIs(err, model.ErrStationNotStarted)
}

func (s *ServiceSuite) TestStopUnknownStation() {
	_, err := s.service.Stop(s.ctx, s.session, "99")
	s.ErrorIs(err, model.ErrUnknownStation)
}

func (s *ServiceSuite) TestRestartMeasuresFromSecondStart() {
	_, _ = s.service.Start(s.session, "1")
	s.clock.Advance(10 * time.Minute)

	_, err := s.service.Start(s.session, "1")
	s.Require().NoError(err)
	s.clock.Advance(2 * time.Minute)

	res, err := s.service.Stop(s.ctx, s.session, "1")
	s.Require().NoError(err)
	s.Equal(2.0, res.Minutes)
}

func (s *ServiceSuite) TestRestartKeepsPriorCompletedDurationUntilNextStop() {
	_, _ = s.service.Start(s.session, "1")
	s.clock.Advance(2 * time.Minute)
	_, err := s.service.Stop(s.ctx, s.session, "1")
	s.Require().NoError(err)

	_, _ = s.service.Start(s.session, "1")

	completed := s.session.CompletedTimes()
	s.Equal(2.0, completed["1"])

	s.clock.Advance(30 * time.Second)
	res, err := s.service.Stop(s.ctx, s.session, "1")
	s.Require().NoError(err)
	s.Equal(0.5, res.Minutes)
	s.Equal(0.5, s.session.CompletedTimes()["1"])
}

func (s *ServiceSuite) TestStopClampsNegativeElapsedToZero() {
	_, _ = s.service.Start(s.session, "1")
	s.clock.Advance(-5 * time.Minute)

	res, err := s.service.Stop(s.ctx, s.session, "1")
	s.Require().NoError(err)
	s.Equal(0.0, res.Minutes)
	s.True(res.Clamped)
}

func (s *ServiceSuite) TestStopRoundsToTwoDecimals() {
	_, _ = s.service.Start(s.session, "1")
	s.clock.Advance(100 * time.Second)

	res, err := s.service.Stop(s.ctx, s.session, "1")
	s.Require().NoError(err)
	// 100s = 1.666... minutes
	s.Equal(1.67, res.Minutes)
}
