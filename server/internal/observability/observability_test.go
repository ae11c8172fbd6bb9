package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestContext_LogsBaseFields(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	rc := NewRequestContextWithID(logger, "req-1", "resolve")
	rc.Info(context.Background(), "resolved", slog.String(LogFieldOutcome, string(OutcomeFound)))

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "req-1", line[LogFieldRequestID])
	assert.Equal(t, "resolve", line[LogFieldEndpoint])
	assert.Equal(t, "found", line[LogFieldOutcome])
}

func TestRequestContext_ErrorIncludesCause(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	rc := NewRequestContext(logger, "resolve")
	assert.NotEmpty(t, rc.RequestID)
	rc.Error(context.Background(), "failed", errors.New("boom"))

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "boom", line["error"])
	assert.Equal(t, "ERROR", line["level"])
}

func TestRequestContext_RoundTripsThroughContext(t *testing.T) {
	rc := NewRequestContextWithID(nil, "", "batch")
	assert.NotEmpty(t, rc.RequestID)

	ctx := WithRequestContext(context.Background(), rc)
	got, ok := FromContext(ctx)
	require.True(t, ok)
	assert.Same(t, rc, got)

	_, ok = FromContext(context.Background())
	assert.False(t, ok)
}

func TestMetrics_Snapshot(t *testing.T) {
	m := NewMetrics(10)
	for i := 1; i <= 10; i++ {
		m.Record(OutcomeFound, time.Duration(i)*time.Millisecond)
	}
	m.Record(OutcomeNotFound, 0)
	m.Record(OutcomeError, 0)
	m.RecordCacheHit()

	s := m.Snapshot()
	assert.Equal(t, int64(12), s.RequestTotal)
	assert.Equal(t, int64(1), s.CacheHits)
	assert.Equal(t, int64(10), s.Outcomes[OutcomeFound])
	assert.Equal(t, int64(0), s.Outcomes[OutcomePartial])
	assert.Equal(t, int64(1), s.Outcomes[OutcomeNotFound])
	assert.Equal(t, int64(1), s.Outcomes[OutcomeError])
	// 55ms over 12 requests.
	assert.Equal(t, int64(4583), s.AvgLatencyMicros)
	// The FIFO keeps the last 10 samples: 3ms..10ms plus two zeros.
	assert.Equal(t, int64(5000), s.P50LatencyMicros)
	assert.Equal(t, int64(10000), s.P95LatencyMicros)
}

func TestMetrics_ConcurrentRecord(t *testing.T) {
	m := NewMetrics(100)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.Record(OutcomePartial, time.Millisecond)
			_ = m.Snapshot()
		}()
	}
	wg.Wait()
	assert.Equal(t, int64(50), m.GetOutcomeCount(OutcomePartial))

	m.Reset()
	assert.Equal(t, int64(0), m.GetRequestTotal())
	assert.Equal(t, int64(0), m.Snapshot().P95LatencyMicros)
}
