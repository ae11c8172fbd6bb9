package aitime

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/hrygo/apptime/internal/errors"
)

func newTestService() *Service {
	return NewService("UTC", nil)
}

// utcNow is refNow expressed in UTC: Wednesday 2025-11-12 14:18.
var utcNow = time.Date(2025, 11, 12, 14, 18, 0, 0, time.UTC)

func TestService_Analyze(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	t.Run("found", func(t *testing.T) {
		a, err := svc.Analyze(ctx, "明天下午3點", utcNow, GranularityMinute)
		require.NoError(t, err)
		require.True(t, a.Found)
		assert.Equal(t, "2025-11-13", a.Result.DateString())
		assert.Equal(t, "15:00", a.Result.TimeString())
		assert.False(t, a.TimeCleared)
		assert.False(t, a.Tentative)
	})

	t.Run("not found is not an error", func(t *testing.T) {
		a, err := svc.Analyze(ctx, "你好", utcNow, GranularityMinute)
		require.NoError(t, err)
		assert.False(t, a.Found)
		assert.Nil(t, a.Result)
	})

	t.Run("roster query clears time", func(t *testing.T) {
		a, err := svc.Analyze(ctx, "明天下午3點的班表", utcNow, GranularityMinute)
		require.NoError(t, err)
		require.True(t, a.Found)
		assert.True(t, a.TimeCleared)
		assert.Equal(t, "2025-11-13", a.Result.DateString())
		assert.False(t, a.Result.HasTime())
	})

	t.Run("roster query for today keeps time", func(t *testing.T) {
		a, err := svc.Analyze(ctx, "今天下午4點師傅表", utcNow, GranularityMinute)
		require.NoError(t, err)
		assert.False(t, a.TimeCleared)
		assert.Equal(t, "16:00", a.Result.TimeString())
	})

	t.Run("tentative", func(t *testing.T) {
		a, err := svc.Analyze(ctx, "明天再說", utcNow, GranularityMinute)
		require.NoError(t, err)
		assert.True(t, a.Found)
		assert.True(t, a.Tentative)
	})

	t.Run("bare reply", func(t *testing.T) {
		a, err := svc.Analyze(ctx, "明天可以嗎？", utcNow, GranularityMinute)
		require.NoError(t, err)
		assert.True(t, a.BareReply)
		assert.Equal(t, "2025-11-13", a.Result.DateString())
	})

	t.Run("now is converted into the service zone", func(t *testing.T) {
		// 2025-11-13 01:00 in UTC+8 is still 11-12 in UTC.
		local := time.Date(2025, 11, 13, 1, 0, 0, 0, testLoc)
		a, err := svc.Analyze(ctx, "明天", local, GranularityMinute)
		require.NoError(t, err)
		assert.Equal(t, "2025-11-13", a.Result.DateString())
	})
}

func TestService_Analyze_InvalidInput(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	_, err := svc.Analyze(ctx, "  ", utcNow, GranularityMinute)
	assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidArgument))

	_, err = svc.Analyze(ctx, strings.Repeat("好", MaxInputRunes+1), utcNow, GranularityMinute)
	assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidArgument))

	_, err = svc.Analyze(ctx, strings.Repeat("好", MaxInputRunes), utcNow, GranularityMinute)
	assert.NoError(t, err)

	canceled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = svc.Analyze(canceled, "明天", utcNow, GranularityMinute)
	assert.True(t, errors.IsCode(err, errors.ErrCodeContextCanceled))
}

func TestService_AnalyzeClause(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	c, err := svc.AnalyzeClause(ctx, "今天 10:00", utcNow, GranularityMinute)
	require.NoError(t, err)
	assert.True(t, c.RolledOver)
	assert.Equal(t, "22:00", c.Time.Format(GranularityMinute))

	_, err = svc.AnalyzeClause(ctx, "你好", utcNow, GranularityMinute)
	assert.True(t, errors.IsCode(err, errors.ErrCodeNotFound))
}

func TestNewService_UnknownTimezone(t *testing.T) {
	svc := NewService("Not/AZone", nil)
	assert.Equal(t, time.Local, svc.Location())
}

func TestMockTimeService(t *testing.T) {
	m := NewMockTimeService()
	want := &Analysis{Found: true}
	m.On("Analyze", mock.Anything, "明天", utcNow, GranularityMinute).Return(want, nil).Once()
	m.On("AnalyzeClause", mock.Anything, "你好", utcNow, GranularityMinute).
		Return(nil, errors.NotFound("no date or time in clause")).Once()

	got, err := m.Analyze(context.Background(), "明天", utcNow, GranularityMinute)
	require.NoError(t, err)
	assert.Same(t, want, got)

	_, err = m.AnalyzeClause(context.Background(), "你好", utcNow, GranularityMinute)
	assert.True(t, errors.IsCode(err, errors.ErrCodeNotFound))

	m.AssertExpectations(t)
}
