package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"log/slog"
	"sync"
	"time"

	"github.com/expotrack/expotrack/internal/dependencies/clock"
	"github.com/expotrack/expotrack/internal/model"
	"github.com/expotrack/expotrack/internal/notify"
	"github.com/expotrack/expotrack/internal/services/leaderboard"
	"github.com/expotrack/expotrack/internal/services/registry"
	"github.com/expotrack/expotrack/internal/services/timer"
)

// Coordinator owns the in-memory session store and orchestrates the visit
// flow: registration opens a session, timer calls mutate it, logout closes
// it and triggers the summary notification exactly once.
type Coordinator struct {
	registry    *registry.Service
	timer       *timer.Service
	leaderboard *leaderboard.Service
	notifier    notify.Notifier
	clock       clock.Clock
	logger      *slog.Logger

	mu       sync.RWMutex
	sessions map[model.SessionToken]*entry

	notifyTimeout time.Duration
}

// entry pairs a session with the mutex that serializes its operations
type entry struct {
	mu      sync.Mutex
	session *model.Session
}

// Config holds configuration for the session coordinator
type Config struct {
	// NotifyTimeout bounds the summary notification at logout
	NotifyTimeout time.Duration
}

// DefaultConfig returns default coordinator configuration
func DefaultConfig() Config {
	return Config{
		NotifyTimeout: 5 * time.Second,
	}
}

// New creates a new session coordinator
func New(registry *registry.Service, timer *timer.Service, leaderboard *leaderboard.Service, notifier notify.Notifier, clock clock.Clock, cfg Config, logger *slog.Logger) *Coordinator {
	if cfg.NotifyTimeout == 0 {
		cfg.NotifyTimeout = DefaultConfig().NotifyTimeout
	}
	return &Coordinator{
		registry:      registry,
		timer:         timer,
		leaderboard:   leaderboard,
		notifier:      notifier,
		clock:         clock,
		logger:        logger,
		sessions:      make(map[model.SessionToken]*entry),
		notifyTimeout: cfg.NotifyTimeout,
	}
}

// Register registers a new visitor and opens a session for them. A failed
// registration opens no session.
func (c *Coordinator) Register(ctx context.Context, id model.VisitorID, name, email string) (*model.Session, error) {
	visitor, err := c.registry.Register(ctx, id, name, email)
	if err != nil {
		return nil, err
	}

	token := model.SessionToken(generateToken())
	session := model.NewSession(token, *visitor, c.clock.Now())

	c.mu.Lock()
	c.sessions[token] = &entry{session: session}
	c.mu.Unlock()

	return session, nil
}

// Get returns the active session for a token
func (c *Coordinator) Get(token model.SessionToken) (*model.Session, error) {
	c.mu.RLock()
	e, ok := c.sessions[token]
	c.mu.RUnlock()
	if !ok {
		return nil, model.ErrNoActiveSession
	}
	return e.session, nil
}

// StartStation starts (or restarts) the station timer for the session
func (c *Coordinator) StartStation(token model.SessionToken, stationID model.StationID) (time.Time, error) {
	e, err := c.lookup(token)
	if err != nil {
		return time.Time{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return c.timer.Start(e.session, stationID)
}

// StopStation stops the station timer for the session, writing the
// duration through to the aggregate store
func (c *Coordinator) StopStation(ctx context.Context, token model.SessionToken, stationID model.StationID) (model.StopResult, error) {
	e, err := c.lookup(token)
	if err != nil {
		return model.StopResult{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return c.timer.Stop(ctx, e.session, stationID)
}

// Leaderboard returns the ranked station durations for the session
func (c *Coordinator) Leaderboard(token model.SessionToken) ([]leaderboard.Entry, error) {
	e, err := c.lookup(token)
	if err != nil {
		return nil, err
	}
	return c.leaderboard.Rank(e.session)
}

// LogoutResult reports the outcome of closing a session
type LogoutResult struct {
	// HadSession is false when no active session matched the token; this
	// is not an error, logout is idempotent
	HadSession bool
	// SummarySent reports whether the summary notification succeeded
	SummarySent bool
	// Visitor is the identity of the closed session, if any
	Visitor *model.VisitorIdentity
}

// Logout closes the session and sends the visit summary best-effort. It
// never fails: a missing session reports HadSession false, and a failed
// notification is logged without affecting the outcome. There is no way
// back; a closed session's token is gone for good.
func (c *Coordinator) Logout(ctx context.Context, token model.SessionToken) LogoutResult {
	c.mu.Lock()
	e, ok := c.sessions[token]
	delete(c.sessions, token)
	c.mu.Unlock()

	if !ok {
		return LogoutResult{HadSession: false}
	}

	// Wait out any in-flight timer call before reading the final state
	e.mu.Lock()
	session := e.session
	e.mu.Unlock()

	visitor := session.Visitor
	completed := session.CompletedTimes()

	result := LogoutResult{HadSession: true, Visitor: &visitor}

	notifyCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.notifyTimeout)
	defer cancel()

	if err := c.notifier.SendSummary(notifyCtx, visitor, session.EntryTime, completed); err != nil {
		c.logger.Warn("summary notification failed",
			slog.String("visitor_id", string(visitor.ID)),
			slog.String("error", err.Error()),
		)
	} else {
		result.SummarySent = true
	}

	c.logger.Info("session closed",
		slog.String("visitor_id", string(visitor.ID)),
		slog.Int("stations_completed", len(completed)),
		slog.Bool("summary_sent", result.SummarySent),
	)

	return result
}

// lookup returns the session entry for a token
func (c *Coordinator) lookup(token model.SessionToken) (*entry, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.sessions[token]
	if !ok {
		return nil, model.ErrNoActiveSession
	}
	return e, nil
}

// generateToken generates a random session token
func generateToken() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return "sess_" + base64.RawURLEncoding.EncodeToString(b)
}
