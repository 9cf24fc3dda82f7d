package file

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/expotrack/expotrack/internal/model"
)

type StorageSuite struct {
	suite.Suite
	dir     string
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.dir = s.T().TempDir()

	catalog := model.NewStationCatalog([]model.Station{
		{ID: "1", Name: "Framework"},
		{ID: "2", Name: "Solution"},
		{ID: "3", Name: "Data Analytics Team"},
	})

	storage, err := New(s.dir, catalog)
	s.Require().NoError(err)
	s.storage = storage
	s.ctx = context.Background()
}

func (s *StorageSuite) TestNewWritesRegisterHeader() {
	data, err := os.ReadFile(filepath.Join(s.dir, "visitors.csv"))
	s.Require().NoError(err)
	s.True(strings.HasPrefix(string(data), "visitor_id,name,email,registered_at"))
}

func (s *StorageSuite) TestNewKeepsExistingRegister() {
	visitor := &model.VisitorIdentity{ID: "E1", Name: "Alice", Email: "a@x.com", RegisteredAt: time.Now().UTC()}
	s.Require().NoError(s.storage.SaveVisitor(s.ctx, visitor))

	reopened, err := New(s.dir, s.storage.catalog)
	s.Require().NoError(err)

	visitors, err := reopened.ListVisitors(s.ctx)
	s.Require().NoError(err)
	s.Len(visitors, 1)
}

func (s *StorageSuite) TestSaveVisitorAppends() {
	first := &model.VisitorIdentity{ID: "E1", Name: "Alice", Email: "a@x.com", RegisteredAt: time.Now().UTC()}
	second := &model.VisitorIdentity{ID: "E2", Name: "Bob", Email: "b@y.com", RegisteredAt: time.Now().UTC()}

	s.Require().NoError(s.storage.SaveVisitor(s.ctx, first))
	s.Require().NoError(s.storage.SaveVisitor(s.ctx, second))

	visitors, err := s.storage.ListVisitors(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(visitors, 2)
	s.Equal(model.VisitorID("E1"), visitors[0].ID)
	s.Equal(model.VisitorID("E2"), visitors[1].ID)
}

func (s *StorageSuite) TestGetVisitorByEmailIsCaseInsensitive() {
	visitor := &model.VisitorIdentity{ID: "E1", Name: "Alice", Email: "a@x.com", RegisteredAt: time.Now().UTC()}
	s.Require().NoError(s.storage.SaveVisitor(s.ctx, visitor))

	retrieved, err := s.storage.GetVisitorByEmail(s.ctx, "A@X.COM")
	s.Require().NoError(err)
	s.Equal(model.VisitorID("E1"), retrieved.ID)
}

func (s *StorageSuite) TestGetVisitorNotFound() {
	_, err := s.storage.GetVisitor(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrVisitorNotFound)
}

func (s *StorageSuite) TestSaveAggregateWritesFixedColumns() {
	record := model.NewAggregateRecord("E1")
	record.Set("1", 1.5)

	s.Require().NoError(s.storage.SaveAggregate(s.ctx, record))

	data, err := os.ReadFile(filepath.Join(s.dir, "time_tracking", "E1_times.csv"))
	s.Require().NoError(err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	s.Require().Len(lines, 2)
	s.Equal("visitor_id,station_1,station_2,station_3", lines[0])
	s.Equal("E1,1.50,,", lines[1])
}

func (s *StorageSuite) TestSaveAggregateRewritesWholesale() {
	first := model.NewAggregateRecord("E1")
	first.Set("1", 1.5)
	s.Require().NoError(s.storage.SaveAggregate(s.ctx, first))

	second := model.NewAggregateRecord("E1")
	second.Set("1", 1.5)
	second.Set("2", 3.25)
	s.Require().NoError(s.storage.SaveAggregate(s.ctx, second))

	retrieved, err := s.storage.GetAggregate(s.ctx, "E1")
	s.Require().NoError(err)
	minutes, ok := retrieved.Duration("1")
	s.True(ok)
	s.Equal(1.5, minutes)
	minutes, ok = retrieved.Duration("2")
	s.True(ok)
	s.Equal(3.25, minutes)
	_, ok = retrieved.Duration("3")
	s.False(ok)
}

func (s *StorageSuite) TestAggregatesAreIsolatedPerVisitor() {
	alice := model.NewAggregateRecord("E1")
	alice.Set("1", 1.5)
	bob := model.NewAggregateRecord("E2")
	bob.Set("2", 7.0)

	s.Require().NoError(s.storage.SaveAggregate(s.ctx, alice))
	s.Require().NoError(s.storage.SaveAggregate(s.ctx, bob))

	got, err := s.storage.GetAggregate(s.ctx, "E1")
	s.Require().NoError(err)
	_, ok := got.Duration("2")
	s.False(ok)
}

func (s *StorageSuite) TestGetAggregateNotFound() {
	_, err := s.storage.GetAggregate(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrAggregateNotFound)
}
