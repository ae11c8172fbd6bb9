package v1

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/hrygo/apptime/internal/profile"
	"github.com/hrygo/apptime/plugin/aitime"
	"github.com/hrygo/apptime/plugin/cache"
	"github.com/hrygo/apptime/plugin/timeout"
	"github.com/hrygo/apptime/server/internal/observability"
	ratelimit "github.com/hrygo/apptime/server/middleware"
)

type APIV1Service struct {
	Profile     *profile.Profile
	TimeService aitime.TimeService
	Metrics     *observability.Metrics

	logger      *slog.Logger
	results     *cache.LRU[resolveKey, *aitime.Analysis]
	rateLimiter *ratelimit.RateLimiter
}

func NewAPIV1Service(profile *profile.Profile, timeService aitime.TimeService, logger *slog.Logger) *APIV1Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &APIV1Service{
		Profile:     profile,
		TimeService: timeService,
		Metrics:     observability.NewMetrics(1000),
		logger:      logger,
		results:     cache.New[resolveKey, *aitime.Analysis](profile.CacheCapacity, profile.CacheTTL),
		rateLimiter: ratelimit.NewRateLimiter(profile.RateLimitPerSecond, profile.RateLimitBurst),
	}
}

// RegisterGateway registers the HTTP handlers with the given Echo instance and
// starts sweeping the result cache until ctx is done.
func (s *APIV1Service) RegisterGateway(ctx context.Context, echoServer *echo.Echo) error {
	echoServer.GET("/healthz", s.Healthz)

	apiGroup := echoServer.Group("/api/v1", middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
	}))
	apiGroup.POST("/resolve", s.Resolve,
		middleware.ContextTimeout(timeout.RequestTimeout),
		s.rateLimiter.Middleware(),
	)
	apiGroup.GET("/metrics", s.GetMetrics)

	go s.results.RunCleanup(ctx, min(s.Profile.CacheTTL, timeout.CacheSweepInterval))
	return nil
}
