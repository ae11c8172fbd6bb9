package v1

import (
	"context"
	stderrors "errors"
	"log/slog"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/labstack/echo/v4"

	"github.com/hrygo/apptime/internal/errors"
	"github.com/hrygo/apptime/plugin/aitime"
	"github.com/hrygo/apptime/server/internal/observability"
	"github.com/hrygo/apptime/server/timezone"
)

// ResolveRequest is the body of POST /api/v1/resolve.
type ResolveRequest struct {
	Text string `json:"text"`
	// Now is an optional RFC 3339 reference instant; the server clock is used when empty.
	Now string `json:"now"`
	// Granularity is "minute" or "second"; the profile default is used when empty.
	Granularity  string `json:"granularity"`
	SingleClause bool   `json:"single_clause"`
}

// ErrorResponse is the body of every non-2xx answer.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// resolveKey identifies a cached analysis. The reference instant is kept at
// the precision of the granularity, so repeated messages share an entry only
// while rollover would compare them against the same moment.
type resolveKey struct {
	text         string
	instant      int64
	granularity  aitime.Granularity
	singleClause bool
}

// referencePrecision is the precision the reference instant is read at.
func referencePrecision(g aitime.Granularity) time.Duration {
	if g == aitime.GranularitySecond {
		return time.Second
	}
	return time.Minute
}

// Resolve resolves the date and time of a message.
// POST /api/v1/resolve
func (s *APIV1Service) Resolve(c echo.Context) error {
	ctx := c.Request().Context()
	rc := observability.NewRequestContextWithID(s.logger, c.Request().Header.Get(echo.HeaderXRequestID), "resolve")
	ctx = observability.WithRequestContext(ctx, rc)
	c.Response().Header().Set(echo.HeaderXRequestID, rc.RequestID)

	var req ResolveRequest
	if err := c.Bind(&req); err != nil {
		return s.fail(c, rc, errors.InvalidArgument("malformed request body"))
	}
	rc.Debug(ctx, "resolve requested",
		slog.Int(observability.LogFieldMessageLen, messageLength(req.Text)),
		slog.Bool("single_clause", req.SingleClause),
	)
	now, err := timezone.ParseReference(req.Now)
	if err != nil {
		return s.fail(c, rc, errors.Wrap(err, errors.ErrCodeInvalidArgument, "now must be RFC 3339"))
	}
	if req.Granularity == "" {
		req.Granularity = s.Profile.Granularity
	}
	g, err := aitime.ParseGranularity(req.Granularity)
	if err != nil {
		return s.fail(c, rc, errors.Wrap(err, errors.ErrCodeInvalidArgument, "granularity must be minute or second"))
	}
	now = timezone.ReferenceTime(now, s.Profile.Location()).Truncate(referencePrecision(g))

	key := resolveKey{
		text:         req.Text,
		instant:      now.Unix(),
		granularity:  g,
		singleClause: req.SingleClause,
	}
	if analysis, ok := s.results.Get(key); ok {
		s.Metrics.RecordCacheHit()
		return s.succeed(c, rc, analysis, true)
	}

	var analysis *aitime.Analysis
	if req.SingleClause {
		analysis, err = s.resolveClause(ctx, req.Text, now, g)
	} else {
		analysis, err = s.TimeService.Analyze(ctx, req.Text, now, g)
	}
	if err != nil {
		return s.fail(c, rc, err)
	}

	s.results.Set(key, analysis)
	return s.succeed(c, rc, analysis, false)
}

// resolveClause maps a single-clause NOT_FOUND to a not-found analysis so both
// modes answer the same way.
func (s *APIV1Service) resolveClause(ctx context.Context, text string, now time.Time, g aitime.Granularity) (*aitime.Analysis, error) {
	cand, err := s.TimeService.AnalyzeClause(ctx, text, now, g)
	if errors.IsCode(err, errors.ErrCodeNotFound) {
		return &aitime.Analysis{}, nil
	}
	if err != nil {
		return nil, err
	}
	result := cand.Result(g)
	return &aitime.Analysis{Found: true, Result: &result}, nil
}

func (s *APIV1Service) succeed(c echo.Context, rc *observability.RequestContext, analysis *aitime.Analysis, cacheHit bool) error {
	outcome := outcomeOf(analysis)
	s.Metrics.Record(outcome, rc.Duration())
	rc.Info(c.Request().Context(), "resolve completed",
		slog.String(observability.LogFieldOutcome, string(outcome)),
		slog.Bool(observability.LogFieldCacheHit, cacheHit),
		slog.Int64(observability.LogFieldDuration, rc.DurationMs()),
	)
	return c.JSON(http.StatusOK, analysis)
}

func (s *APIV1Service) fail(c echo.Context, rc *observability.RequestContext, err error) error {
	s.Metrics.Record(observability.OutcomeError, rc.Duration())
	code := errors.GetCodeFromError(err, errors.ErrCodeInternal)
	status := errors.HTTPStatus(err)

	attrs := []slog.Attr{
		slog.String(observability.LogFieldErrorCode, string(code)),
		slog.Int64(observability.LogFieldDuration, rc.DurationMs()),
	}
	if status >= http.StatusInternalServerError {
		rc.Error(c.Request().Context(), "resolve failed", err, attrs...)
	} else {
		rc.Warn(c.Request().Context(), "resolve rejected", append(attrs, slog.String("error", err.Error()))...)
	}

	message := err.Error()
	var re *errors.ResolveError
	if stderrors.As(err, &re) {
		message = re.Message
	}
	return c.JSON(status, ErrorResponse{Code: string(code), Message: message})
}

func outcomeOf(analysis *aitime.Analysis) observability.Outcome {
	switch {
	case analysis == nil || !analysis.Found:
		return observability.OutcomeNotFound
	case analysis.Result.IsPartial():
		return observability.OutcomePartial
	default:
		return observability.OutcomeFound
	}
}

// messageLength is logged instead of the message itself.
func messageLength(text string) int {
	return utf8.RuneCountInString(text)
}
