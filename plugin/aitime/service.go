package aitime

import (
	"context"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/golang-sql/civil"

	"github.com/hrygo/apptime/internal/errors"
)

// MaxInputRunes bounds the length of a message accepted by the service.
const MaxInputRunes = 2000

// Service implements TimeService with the rule-based pipeline.
type Service struct {
	location *time.Location
	logger   *slog.Logger
}

// NewService creates a new time service. An unknown timezone falls back to the
// local zone; a nil logger uses slog.Default().
func NewService(defaultTimezone string, logger *slog.Logger) *Service {
	loc, err := time.LoadLocation(defaultTimezone)
	if err != nil {
		loc = time.Local
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		location: loc,
		logger:   logger,
	}
}

// Location returns the zone the service resolves in.
func (s *Service) Location() *time.Location {
	return s.location
}

// Analyze resolves a whole message.
func (s *Service) Analyze(ctx context.Context, input string, now time.Time, g Granularity) (*Analysis, error) {
	if err := s.validate(ctx, input); err != nil {
		return nil, err
	}
	now = s.reference(now)

	analysis := &Analysis{
		Tentative: IsTentative(input),
		BareReply: IsBareDateReply(input),
	}
	result, ok := Resolve(input, now, g)
	if !ok {
		s.logger.DebugContext(ctx, "no date or time found",
			slog.Int("message_length", utf8.RuneCountInString(input)))
		return analysis, nil
	}

	if result.HasDate() && result.HasTime() && IsScheduleTableQuery(input) && *result.Date != civil.DateOf(now) {
		result.Time = nil
		analysis.TimeCleared = true
	}
	analysis.Found = true
	analysis.Result = &result

	s.logger.DebugContext(ctx, "resolved message",
		slog.String("date", result.DateString()),
		slog.String("time", result.TimeString()),
		slog.Int("clause", result.Clause.Index),
		slog.Bool("time_cleared", analysis.TimeCleared),
	)
	return analysis, nil
}

// AnalyzeClause resolves a single clause.
func (s *Service) AnalyzeClause(ctx context.Context, input string, now time.Time, g Granularity) (*Candidate, error) {
	if err := s.validate(ctx, input); err != nil {
		return nil, err
	}
	c, ok := ResolveSingleClause(input, s.reference(now), g)
	if !ok {
		return nil, errors.NotFound("no date or time in clause").
			WithContext("message_length", utf8.RuneCountInString(input))
	}
	return &c, nil
}

func (s *Service) validate(ctx context.Context, input string) error {
	if err := ctx.Err(); err != nil {
		return errors.ContextCanceled(err)
	}
	if strings.TrimSpace(input) == "" {
		return errors.InvalidArgument("input is empty")
	}
	if n := utf8.RuneCountInString(input); n > MaxInputRunes {
		return errors.InvalidArgument("input is too long").
			WithContext("message_length", n).
			WithContext("max", MaxInputRunes)
	}
	return nil
}

// reference pins now to the service zone. A zero now means the wall clock.
func (s *Service) reference(now time.Time) time.Time {
	if now.IsZero() {
		now = time.Now()
	}
	return now.In(s.location)
}

// Ensure Service implements TimeService
var _ TimeService = (*Service)(nil)
