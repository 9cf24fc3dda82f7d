package aggregate

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/expotrack/expotrack/internal/model"
	"github.com/expotrack/expotrack/internal/storage"
)

// Service maintains the durable per-visitor aggregate of station durations.
// Each upsert is a load-modify-full-rewrite of the visitor's record,
// serialized per visitor so concurrent stops cannot lose an update while
// unrelated visitors stay non-blocking.
type Service struct {
	storage storage.Storage
	logger  *slog.Logger

	mu    sync.Mutex
	locks map[model.VisitorID]*sync.Mutex

	storeTimeout time.Duration
}

// Config holds configuration for the aggregate service
type Config struct {
	// StoreTimeout bounds each durable read/write
	StoreTimeout time.Duration
}

// DefaultConfig returns default aggregate configuration
func DefaultConfig() Config {
	return Config{
		StoreTimeout: 3 * time.Second,
	}
}

// New creates a new aggregate service
func New(storage storage.Storage, cfg Config, logger *slog.Logger) *Service {
	if cfg.StoreTimeout == 0 {
		cfg.StoreTimeout = DefaultConfig().StoreTimeout
	}
	return &Service{
		storage:      storage,
		logger:       logger,
		locks:        make(map[model.VisitorID]*sync.Mutex),
		storeTimeout: cfg.StoreTimeout,
	}
}

// visitorLock returns the mutex serializing upserts for one visitor
func (s *Service) visitorLock(id model.VisitorID) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[id]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[id] = lock
	}
	return lock
}

// Upsert sets one station's duration on the visitor's aggregate record,
// creating the record if it does not exist and rewriting it in full.
func (s *Service) Upsert(ctx context.Context, visitorID model.VisitorID, stationID model.StationID, minutes float64) error {
	lock := s.visitorLock(visitorID)
	lock.Lock()
	defer lock.Unlock()

	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	record, err := s.storage.GetAggregate(ctx, visitorID)
	if err != nil {
		if !errors.Is(err, model.ErrAggregateNotFound) {
			return errors.Join(model.ErrStoreUnavailable, err)
		}
		record = model.NewAggregateRecord(visitorID)
	}

	record.Set(stationID, minutes)

	if err := s.storage.SaveAggregate(ctx, record); err != nil {
		return errors.Join(model.ErrStoreUnavailable, err)
	}

	s.logger.Debug("aggregate updated",
		slog.String("visitor_id", string(visitorID)),
		slog.String("station_id", string(stationID)),
		slog.Float64("minutes", minutes),
	)

	return nil
}

// Read returns the visitor's aggregate record without side effects
func (s *Service) Read(ctx context.Context, visitorID model.VisitorID) (*model.AggregateRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	record, err := s.storage.GetAggregate(ctx, visitorID)
	if err != nil {
		if errors.Is(err, model.ErrAggregateNotFound) {
			return nil, err
		}
		return nil, errors.Join(model.ErrStoreUnavailable, err)
	}
	return record, nil
}
