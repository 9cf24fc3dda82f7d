// Package file implements storage as human-inspectable CSV files: an
// append-only visitor register and one duration file per visitor that is
// rewritten wholesale on every aggregate save.
package file

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/expotrack/expotrack/internal/model"
	"github.com/expotrack/expotrack/internal/storage"
)

const (
	registerFile = "visitors.csv"
	timesDir     = "time_tracking"
	timesSuffix  = "_times.csv"
)

var registerHeader = []string{"visitor_id", "name", "email", "registered_at"}

// Storage is a CSV flat-file implementation of the storage interface
type Storage struct {
	mu      sync.Mutex
	dir     string
	catalog *model.StationCatalog
}

// New creates a file storage rooted at dir. The station catalog fixes the
// column set of the per-visitor duration files.
func New(dir string, catalog *model.StationCatalog) (*Storage, error) {
	if err := os.MkdirAll(filepath.Join(dir, timesDir), 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	s := &Storage{dir: dir, catalog: catalog}

	registerPath := s.registerPath()
	if _, err := os.Stat(registerPath); os.IsNotExist(err) {
		if err := s.writeHeader(registerPath); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}

	return s, nil
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) registerPath() string {
	return filepath.Join(s.dir, registerFile)
}

func (s *Storage) timesPath(id model.VisitorID) string {
	return filepath.Join(s.dir, timesDir, string(id)+timesSuffix)
}

func (s *Storage) writeHeader(path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(registerHeader); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

// Visitor register operations

func (s *Storage) SaveVisitor(ctx context.Context, visitor *model.VisitorIdentity) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.OpenFile(s.registerPath(), os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open register: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	record := []string{
		string(visitor.ID),
		visitor.Name,
		visitor.Email,
		visitor.RegisteredAt.Format(time.RFC3339),
	}
	if err := w.Write(record); err != nil {
		return fmt.Errorf("append register row: %w", err)
	}
	w.Flush()
	return w.Error()
}

func (s *Storage) GetVisitor(ctx context.Context, id model.VisitorID) (*model.VisitorIdentity, error) {
	visitors, err := s.ListVisitors(ctx)
	if err != nil {
		return nil, err
	}
	for _, v := range visitors {
		if v.ID == id {
			return v, nil
		}
	}
	return nil, model.ErrVisitorNotFound
}

func (s *Storage) GetVisitorByEmail(ctx context.Context, email string) (*model.VisitorIdentity, error) {
	visitors, err := s.ListVisitors(ctx)
	if err != nil {
		return nil, err
	}
	for _, v := range visitors {
		if strings.EqualFold(v.Email, email) {
			return v, nil
		}
	}
	return nil, model.ErrVisitorNotFound
}

func (s *Storage) ListVisitors(ctx context.Context) ([]*model.VisitorIdentity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.Open(s.registerPath())
	if err != nil {
		return nil, fmt.Errorf("open register: %w", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read register: %w", err)
	}

	var visitors []*model.VisitorIdentity
	for i, row := range rows {
		if i == 0 || len(row) < 4 {
			continue
		}
		registeredAt, err := time.Parse(time.RFC3339, row[3])
		if err != nil {
			return nil, fmt.Errorf("register row %d: %w", i, err)
		}
		visitors = append(visitors, &model.VisitorIdentity{
			ID:           model.VisitorID(row[0]),
			Name:         row[1],
			Email:        row[2],
			RegisteredAt: registeredAt,
		})
	}
	return visitors, nil
}

// Aggregate record operations

func (s *Storage) SaveAggregate(ctx context.Context, record *model.AggregateRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := s.catalog.IDs()
	header := make([]string, 0, len(ids)+1)
	header = append(header, "visitor_id")
	for _, id := range ids {
		header = append(header, "station_"+string(id))
	}

	row := make([]string, 0, len(ids)+1)
	row = append(row, string(record.VisitorID))
	for _, id := range ids {
		if minutes, ok := record.Duration(id); ok {
			row = append(row, strconv.FormatFloat(minutes, 'f', 2, 64))
		} else {
			row = append(row, "")
		}
	}

	// Full rewrite via temp file + rename so readers never see a torn row
	path := s.timesPath(record.VisitorID)
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+string(record.VisitorID)+"-*")
	if err != nil {
		return fmt.Errorf("create temp times file: %w", err)
	}
	defer os.Remove(tmp.Name())

	w := csv.NewWriter(tmp)
	if err := w.WriteAll([][]string{header, row}); err != nil {
		tmp.Close()
		return fmt.Errorf("write times file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func (s *Storage) GetAggregate(ctx context.Context, id model.VisitorID) (*model.AggregateRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.Open(s.timesPath(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, model.ErrAggregateNotFound
		}
		return nil, fmt.Errorf("open times file: %w", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read times file: %w", err)
	}
	if len(rows) < 2 {
		return nil, model.ErrAggregateNotFound
	}

	record := model.NewAggregateRecord(id)
	header, row := rows[0], rows[1]
	for i := 1; i < len(header) && i < len(row); i++ {
		if row[i] == "" {
			continue
		}
		minutes, err := strconv.ParseFloat(row[i], 64)
		if err != nil {
			return nil, fmt.Errorf("times column %q: %w", header[i], err)
		}
		station := model.StationID(strings.TrimPrefix(header[i], "station_"))
		record.Set(station, minutes)
	}
	return record, nil
}
