package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hrygo/apptime/server/internal/observability"
)

// MetricsOverviewResponse represents the overview response of resolver metrics
type MetricsOverviewResponse struct {
	*observability.MetricsSnapshot
	SuccessRate float64 `json:"success_rate"`
	CacheSize   int     `json:"cache_size"`
	Version     string  `json:"version,omitempty"`
}

// GetMetrics returns the resolution counters since start.
// GET /api/v1/metrics
func (s *APIV1Service) GetMetrics(c echo.Context) error {
	snapshot := s.Metrics.Snapshot()

	// Not-found answers are successful resolutions of messages without a date.
	var successRate float64
	if snapshot.RequestTotal > 0 {
		successRate = float64(snapshot.RequestTotal-snapshot.Outcomes[observability.OutcomeError]) / float64(snapshot.RequestTotal)
	}

	return c.JSON(http.StatusOK, MetricsOverviewResponse{
		MetricsSnapshot: snapshot,
		SuccessRate:     successRate,
		CacheSize:       s.results.Len(),
		Version:         s.Profile.Version,
	})
}

// Healthz reports liveness.
// GET /healthz
func (s *APIV1Service) Healthz(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
