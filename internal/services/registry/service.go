package registry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"sync"
	"time"

	"github.com/expotrack/expotrack/internal/dependencies/clock"
	"github.com/expotrack/expotrack/internal/model"
	"github.com/expotrack/expotrack/internal/storage"
)

// Service handles visitor registration. The durable register is
// append-only; uniqueness of visitor id and email is enforced here.
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger

	// mu serializes the duplicate-check-then-append critical section so
	// two concurrent registrations can never both pass the check.
	mu sync.Mutex

	storeTimeout time.Duration
}

// Config holds configuration for the registry service
type Config struct {
	// StoreTimeout bounds each durable read/write
	StoreTimeout time.Duration
}

// DefaultConfig returns default registry configuration
func DefaultConfig() Config {
	return Config{
		StoreTimeout: 3 * time.Second,
	}
}

// New creates a new registry service
func New(storage storage.Storage, clock clock.Clock, cfg Config, logger *slog.Logger) *Service {
	if cfg.StoreTimeout == 0 {
		cfg.StoreTimeout = DefaultConfig().StoreTimeout
	}
	return &Service{
		storage:      storage,
		clock:        clock,
		logger:       logger,
		storeTimeout: cfg.StoreTimeout,
	}
}

// Register validates the visitor's details, checks uniqueness of id and
// email (case-insensitive) and appends the new identity to the register.
// The check and the append form a single critical section.
func (s *Service) Register(ctx context.Context, id model.VisitorID, name, email string) (*model.VisitorIdentity, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: visitor id is required", model.ErrInvalidInput)
	}
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", model.ErrInvalidInput)
	}
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", model.ErrInvalidInput)
	}
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		return nil, fmt.Errorf("%w: malformed email address", model.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	_, err := s.storage.GetVisitor(ctx, id)
	if err == nil {
		return nil, model.ErrDuplicateID
	}
	if !errors.Is(err, model.ErrVisitorNotFound) {
		return nil, errors.Join(model.ErrStoreUnavailable, err)
	}

	_, err = s.storage.GetVisitorByEmail(ctx, email)
	if err == nil {
		return nil, model.ErrDuplicateEmail
	}
	if !errors.Is(err, model.ErrVisitorNotFound) {
		return nil, errors.Join(model.ErrStoreUnavailable, err)
	}

	visitor := &model.VisitorIdentity{
		ID:           id,
		Name:         name,
		Email:        email,
		RegisteredAt: s.clock.Now(),
	}

	if err := s.storage.SaveVisitor(ctx, visitor); err != nil {
		return nil, errors.Join(model.ErrStoreUnavailable, err)
	}

	s.logger.Info("visitor registered",
		slog.String("visitor_id", string(visitor.ID)),
		slog.String("email", visitor.Email),
	)

	return visitor, nil
}

// Lookup returns the identity for a visitor id
func (s *Service) Lookup(ctx context.Context, id model.VisitorID) (*model.VisitorIdentity, error) {
	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	visitor, err := s.storage.GetVisitor(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrVisitorNotFound) {
			return nil, err
		}
		return nil, errors.Join(model.ErrStoreUnavailable, err)
	}
	return visitor, nil
}
