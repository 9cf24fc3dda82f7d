// Package resend implements the summary Notifier using the Resend API.
package resend

import (
	"context"
	"fmt"
	"time"

	"github.com/resendlabs/resend-go"

	"github.com/expotrack/expotrack/internal/model"
	"github.com/expotrack/expotrack/internal/notify"
)

// Config holds settings for the Resend notifier
type Config struct {
	APIKey    string
	FromEmail string
	FromName  string
	Subject   string
}

// Notifier sends the visit summary email via Resend
type Notifier struct {
	client  *resend.Client
	catalog *model.StationCatalog
	cfg     Config
}

// New creates a Resend-backed notifier
func New(cfg Config, catalog *model.StationCatalog) (*Notifier, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("resend api key is required")
	}
	if cfg.FromEmail == "" {
		cfg.FromEmail = "noreply@expotrack.io"
	}
	if cfg.FromName == "" {
		cfg.FromName = "ExpoTrack"
	}
	if cfg.Subject == "" {
		cfg.Subject = "Thank You for Visiting!"
	}

	return &Notifier{
		client:  resend.NewClient(cfg.APIKey),
		catalog: catalog,
		cfg:     cfg,
	}, nil
}

var _ notify.Notifier = (*Notifier)(nil)

// SendSummary composes and sends the visit summary email
func (n *Notifier) SendSummary(ctx context.Context, visitor model.VisitorIdentity, entryTime time.Time, completed map[model.StationID]float64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	html, err := renderSummary(summaryData{
		Name:      visitor.Name,
		VisitorID: string(visitor.ID),
		EntryTime: entryTime.Format("January 2, 2006 at 3:04 PM"),
		Rows:      summaryRows(n.catalog, completed),
	})
	if err != nil {
		return fmt.Errorf("render summary email: %w", err)
	}

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", n.cfg.FromName, n.cfg.FromEmail),
		To:      []string{visitor.Email},
		Subject: n.cfg.Subject,
		Html:    html,
	}

	if _, err := n.client.Emails.Send(params); err != nil {
		return fmt.Errorf("send summary email via resend: %w", err)
	}
	return nil
}
