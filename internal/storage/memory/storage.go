package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/expotrack/expotrack/internal/model"
	"github.com/expotrack/expotrack/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	visitors   map[model.VisitorID]*model.VisitorIdentity
	emailIndex map[string]model.VisitorID
	order      []model.VisitorID
	aggregates map[model.VisitorID]*model.AggregateRecord
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		visitors:   make(map[model.VisitorID]*model.VisitorIdentity),
		emailIndex: make(map[string]model.VisitorID),
		aggregates: make(map[model.VisitorID]*model.AggregateRecord),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Visitor register operations

func (s *Storage) SaveVisitor(ctx context.Context, visitor *model.VisitorIdentity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := *visitor
	s.visitors[v.ID] = &v
	s.emailIndex[strings.ToLower(v.Email)] = v.ID
	s.order = append(s.order, v.ID)
	return nil
}

func (s *Storage) GetVisitor(ctx context.Context, id model.VisitorID) (*model.VisitorIdentity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	visitor, ok := s.visitors[id]
	if !ok {
		return nil, model.ErrVisitorNotFound
	}
	v := *visitor
	return &v, nil
}

func (s *Storage) GetVisitorByEmail(ctx context.Context, email string) (*model.VisitorIdentity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.emailIndex[strings.ToLower(email)]
	if !ok {
		return nil, model.ErrVisitorNotFound
	}
	visitor, ok := s.visitors[id]
	if !ok {
		return nil, model.ErrVisitorNotFound
	}
	v := *visitor
	return &v, nil
}

func (s *Storage) ListVisitors(ctx context.Context) ([]*model.VisitorIdentity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*model.VisitorIdentity, 0, len(s.order))
	for _, id := range s.order {
		v := *s.visitors[id]
		out = append(out, &v)
	}
	return out, nil
}

// Aggregate record operations

func (s *Storage) SaveAggregate(ctx context.Context, record *model.AggregateRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.aggregates[record.VisitorID] = record.Clone()
	return nil
}

func (s *Storage) GetAggregate(ctx context.Context, id model.VisitorID) (*model.AggregateRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.aggregates[id]
	if !ok {
		return nil, model.ErrAggregateNotFound
	}
	return record.Clone(), nil
}
