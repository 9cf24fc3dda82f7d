package storage

import (
	"context"

	"github.com/expotrack/expotrack/internal/model"
)

// Storage defines the interface for data persistence
type Storage interface {
	// Visitor register operations. SaveVisitor is append-only: records are
	// never updated or deleted once written.
	SaveVisitor(ctx context.Context, visitor *model.VisitorIdentity) error
	GetVisitor(ctx context.Context, id model.VisitorID) (*model.VisitorIdentity, error)
	// GetVisitorByEmail matches case-insensitively.
	GetVisitorByEmail(ctx context.Context, email string) (*model.VisitorIdentity, error)
	ListVisitors(ctx context.Context) ([]*model.VisitorIdentity, error)

	// Aggregate record operations. SaveAggregate replaces the visitor's
	// record wholesale; at most one record exists per visitor id.
	SaveAggregate(ctx context.Context, record *model.AggregateRecord) error
	GetAggregate(ctx context.Context, id model.VisitorID) (*model.AggregateRecord, error)
}
