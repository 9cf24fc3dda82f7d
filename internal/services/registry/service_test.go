package registry

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/expotrack/expotrack/internal/dependencies/mocks"
	"github.com/expotrack/expotrack/internal/model"
	"github.com/expotrack/expotrack/internal/storage/memory"
	"github.com/expotrack/expotrack/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	clock   *mocks.MockClock
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC))
	s.service = New(s.storage, s.clock, DefaultConfig(), testutil.NopLogger())
	s.ctx = context.Background()
}

func (s *ServiceSuite) TestRegisterSucceeds() {
	visitor, err := s.service.Register(s.ctx, "E1", "Alice", "a@x.com")
	s.Require().NoError(err)

	s.Equal(model.VisitorID("E1"), visitor.ID)
	s.Equal("Alice", visitor.Name)
	s.Equal("a@x.com", visitor.Email)
	s.Equal(s.clock.CurrentTime, visitor.RegisteredAt)
}

func (s *ServiceSuite) TestRegisterPersistsIdentity() {
	_, err := s.service.Register(s.ctx, "E1", "Alice", "a@x.com")
	s.Require().NoError(err)

	stored, err := s.storage.GetVisitor(s.ctx, "E1")
	s.Require().NoError(err)
	s.Equal("Alice", stored.Name)
}

func (s *ServiceSuite) TestRegisterRejectsEmptyFields() {
	cases := []struct {
		name    string
		id      model.VisitorID
		visitor string
		email   string
	}{
		{"missing id", "", "Alice", "a@x.com"},
		{"missing name", "E1", "", "a@x.com"},
		{"missing email", "E1", "Alice", ""},
	}
	for _, tc := range cases {
		_, err := s.service.Register(s.ctx, tc.id, tc.visitor, tc.email)
		s.ErrorIs(err, model.ErrInvalidInput, tc.name)
	}
}

func (s *ServiceSuite) TestRegisterRejectsMalformedEmail() {
	for _, email := range []string{"not-an-email", "a@", "@x.com", "Alice <a@x.com>"} {
		_, err := s.service.Register(s.ctx, "E1", "Alice", email)
		s.ErrorIs(err, model.ErrInvalidInput, email)
	}
}

func (s *ServiceSuite) TestRegisterRejectsDuplicateID() {
	_, err := s.service.Register(s.ctx, "E1", "Alice", "a@x.com")
	s.Require().NoError(err)

	_, err = s.service.Register(s.ctx, "E1", "Bob", "b@y.com")
	s.ErrorIs(err, model.ErrDuplicateID)
}

func (s *ServiceSuite) TestRegisterRejectsDuplicateEmailCaseInsensitive() {
	_, err := s.service.Register(s.ctx, "E1", "Alice", "a@x.com")
	s.Require().NoError(err)

	_, err = s.service.Register(s.ctx, "E2", "Carl", "A@X.COM")
	s.ErrorIs(err, model.ErrDuplicateEmail)
}

func (s *ServiceSuite) TestRegisterDoesNotAppendOnRejection() {
	_, _ = s.service.Register(s.ctx, "E1", "Alice", "a@x.com")
	_, _ = s.service.Register(s.ctx, "E1", "Bob", "b@y.com")

	visitors, err := s.storage.ListVisitors(s.ctx)
	s.Require().NoError(err)
	s.Len(visitors, 1)
}

func (s *ServiceSuite) TestConcurrentRegistrationsNeverBothSucceed() {
	const workers = 16

	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, errs[n] = s.service.Register(s.ctx, "E1", "Alice", fmt.Sprintf("a%d@x.com", n))
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			s.ErrorIs(err, model.ErrDuplicateID)
		}
	}
	s.Equal(1, succeeded)
}

func (s *ServiceSuite) TestLookup() {
	_, err := s.service.Register(s.ctx, "E1", "Alice", "a@x.com")
	s.Require().NoError(err)

	visitor, err := s.service.Lookup(s.ctx, "E1")
	s.Require().NoError(err)
	s.Equal("Alice", visitor.Name)

	_, err = s.service.Lookup(s.ctx, "E2")
	s.ErrorIs(err, model.ErrVisitorNotFound)
}
