// Package notify defines the capability that delivers a post-visit summary
// to the visitor. Delivery is best-effort: a failed send is logged by the
// caller and never blocks the visit flow.
package notify

import (
	"context"
	"log/slog"
	"time"

	"github.com/expotrack/expotrack/internal/model"
)

// Notifier sends a human-readable visit summary to a visitor
type Notifier interface {
	SendSummary(ctx context.Context, visitor model.VisitorIdentity, entryTime time.Time, completed map[model.StationID]float64) error
}

// LogNotifier is a Notifier that only logs the summary. It is the default
// when no delivery transport is configured.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier creates a log-only notifier
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

var _ Notifier = (*LogNotifier)(nil)

// SendSummary logs the visit summary instead of delivering it
func (n *LogNotifier) SendSummary(ctx context.Context, visitor model.VisitorIdentity, entryTime time.Time, completed map[model.StationID]float64) error {
	n.logger.Info("visit summary",
		slog.String("visitor_id", string(visitor.ID)),
		slog.String("email", visitor.Email),
		slog.Time("entry_time", entryTime),
		slog.Int("stations_completed", len(completed)),
	)
	return nil
}
