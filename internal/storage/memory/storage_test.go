package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/expotrack/expotrack/internal/model"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.storage = New()
	s.ctx = context.Background()
}

// Visitor tests

func (s *StorageSuite) TestSaveAndGetVisitor() {
	visitor := &model.VisitorIdentity{
		ID:           "E1",
		Name:         "Alice",
		Email:        "a@x.com",
		RegisteredAt: time.Now(),
	}

	err := s.storage.SaveVisitor(s.ctx, visitor)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetVisitor(s.ctx, "E1")
	s.Require().NoError(err)
	s.Equal(visitor.Name, retrieved.Name)
	s.Equal(visitor.Email, retrieved.Email)
}

func (s *StorageSuite) TestGetVisitorNotFound() {
	_, err := s.storage.GetVisitor(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrVisitorNotFound)
}

func (s *StorageSuite) TestGetVisitorByEmailIsCaseInsensitive() {
	visitor := &model.VisitorIdentity{ID: "E1", Name: "Alice", Email: "a@x.com"}
	_ = s.storage.SaveVisitor(s.ctx, visitor)

	retrieved, err := s.storage.GetVisitorByEmail(s.ctx, "A@X.COM")
	s.Require().NoError(err)
	s.Equal(model.VisitorID("E1"), retrieved.ID)
}

func (s *StorageSuite) TestGetVisitorByEmailNotFound() {
	_, err := s.storage.GetVisitorByEmail(s.ctx, "nobody@x.com")
	s.ErrorIs(err, model.ErrVisitorNotFound)
}

func (s *StorageSuite) TestListVisitorsPreservesInsertionOrder() {
	_ = s.storage.SaveVisitor(s.ctx, &model.VisitorIdentity{ID: "E2", Email: "b@x.com"})
	_ = s.storage.SaveVisitor(s.ctx, &model.VisitorIdentity{ID: "E1", Email: "a@x.com"})

	visitors, err := s.storage.ListVisitors(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(visitors, 2)
	s.Equal(model.VisitorID("E2"), visitors[0].ID)
	s.Equal(model.VisitorID("E1"), visitors[1].ID)
}

// Aggregate tests

func (s *StorageSuite) TestSaveAndGetAggregate() {
	record := model.NewAggregateRecord("E1")
	record.Set("1", 1.5)

	err := s.storage.SaveAggregate(s.ctx, record)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetAggregate(s.ctx, "E1")
	s.Require().NoError(err)
	minutes, ok := retrieved.Duration("1")
	s.True(ok)
	s.Equal(1.5, minutes)
}

func (s *StorageSuite) TestGetAggregateNotFound() {
	_, err := s.storage.GetAggregate(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrAggregateNotFound)
}

func (s *StorageSuite) TestSaveAggregateReplacesRecord() {
	first := model.NewAggregateRecord("E1")
	first.Set("1", 1.5)
	_ = s.storage.SaveAggregate(s.ctx, first)

	second := model.NewAggregateRecord("E1")
	second.Set("2", 3.25)
	_ = s.storage.SaveAggregate(s.ctx, second)

	retrieved, err := s.storage.GetAggregate(s.ctx, "E1")
	s.Require().NoError(err)
	_, ok := retrieved.Duration("1")
	s.False(ok)
	minutes, ok := retrieved.Duration("2")
	s.True(ok)
	s.Equal(3.25, minutes)
}

func (s *StorageSuite) TestSaveAggregateIsolatesCallersFromMutation() {
	record := model.NewAggregateRecord("E1")
	record.Set("1", 1.5)
	_ = s.storage.SaveAggregate(s.ctx, record)

	record.Set("1", 99)

	retrieved, _ := s.storage.GetAggregate(s.ctx, "E1")
	minutes, _ := retrieved.Duration("1")
	s.Equal(1.5, minutes)
}
