package timer

import (
	"context"
	"log/slog"
	"time"

	"github.com/expotrack/expotrack/internal/dependencies/clock"
	"github.com/expotrack/expotrack/internal/model"
	"github.com/expotrack/expotrack/internal/services/aggregate"
)

// Service implements the per-station start/stop timer state machine for a
// session. Stops write through to the visitor's durable aggregate record.
type Service struct {
	catalog   *model.StationCatalog
	aggregate *aggregate.Service
	clock     clock.Clock
	logger    *slog.Logger
}

// New creates a new timer service
func New(catalog *model.StationCatalog, aggregate *aggregate.Service, clock clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		catalog:   catalog,
		aggregate: aggregate,
		clock:     clock,
		logger:    logger,
	}
}

// Start records the running start timestamp for a station. Starting an
// already-running or completed station restarts it from now; a previously
// completed duration is kept until the next stop overwrites it.
func (s *Service) Start(session *model.Session, stationID model.StationID) (time.Time, error) {
	if session == nil {
		return time.Time{}, model.ErrNoActiveSession
	}
	if !s.catalog.Contains(stationID) {
		return time.Time{}, model.ErrUnknownStation
	}

	now := s.clock.Now()
	session.StartStation(stationID, now)
	return now, nil
}

// Stop completes a running station timer, records the elapsed minutes in
// the session and writes through to the aggregate store. If the durable
// write fails the running timer is restored so the caller can retry.
func (s *Service) Stop(ctx context.Context, session *model.Session, stationID model.StationID) (model.StopResult, error) {
	if session == nil {
		return model.StopResult{}, model.ErrNoActiveSession
	}
	if !s.catalog.Contains(stationID) {
		return model.StopResult{}, model.ErrUnknownStation
	}

	res, err := session.StopStation(stationID, s.clock.Now())
	if err != nil {
		return model.StopResult{}, err
	}

	if res.Clamped {
		s.logger.Warn("negative elapsed time clamped to zero",
			slog.String("visitor_id", string(session.Visitor.ID)),
			slog.String("station_id", string(stationID)),
			slog.Time("started_at", res.StartedAt),
		)
	}

	if err := s.aggregate.Upsert(ctx, session.Visitor.ID, stationID, res.Minutes); err != nil {
		session.StartStation(stationID, res.StartedAt)
		return model.StopResult{}, err
	}

	return res, nil
}
