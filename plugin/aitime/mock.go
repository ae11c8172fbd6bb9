package aitime

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

// MockTimeService is a mock implementation of TimeService for testing.
type MockTimeService struct {
	mock.Mock
}

// NewMockTimeService creates a new MockTimeService.
func NewMockTimeService() *MockTimeService {
	return &MockTimeService{}
}

// Analyze records the call and returns the configured analysis.
func (m *MockTimeService) Analyze(ctx context.Context, input string, now time.Time, g Granularity) (*Analysis, error) {
	args := m.Called(ctx, input, now, g)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Analysis), args.Error(1)
}

// AnalyzeClause records the call and returns the configured candidate.
func (m *MockTimeService) AnalyzeClause(ctx context.Context, input string, now time.Time, g Granularity) (*Candidate, error) {
	args := m.Called(ctx, input, now, g)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Candidate), args.Error(1)
}

// Ensure MockTimeService implements TimeService
var _ TimeService = (*MockTimeService)(nil)
