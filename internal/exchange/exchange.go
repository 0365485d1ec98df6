// Package exchange runs one assignment request end to end: it merges a
// group's recorded history into the forbidden pairs, generates, and records
// the new pairings.
package exchange

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/AjayBarot7035/secret-santa/history"
	"github.com/AjayBarot7035/secret-santa/internal/logger"
	"github.com/AjayBarot7035/secret-santa/types"
	"github.com/AjayBarot7035/secret-santa/wire"
)

// Generator produces assignments for one participant list.
type Generator interface {
	Generate(ctx context.Context, participants []types.Participant, forbidden []types.ForbiddenPair) types.Result
}

// History is the subset of the history store used by Service.
type History interface {
	Previous(ctx context.Context, group, period string) (history.Exchange, bool, error)
	Record(ctx context.Context, group, period string, assignments []types.Assignment) error
}

var _ History = (*history.Store)(nil)

// Service is safe for concurrent use.
type Service struct {
	gen     Generator
	history History
	logger  types.Logger
	now     func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithHistory enables group history. Without it the group field is ignored.
func WithHistory(h History) Option {
	return func(s *Service) { s.history = h }
}

// WithLogger sets the logger.
func WithLogger(l types.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock overrides the clock used for the default period.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// New creates a Service around gen.
func New(gen Generator, opts ...Option) *Service {
	s := &Service{
		gen:    gen,
		logger: logger.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Period returns the request's period, defaulting to the current UTC year.
func (s *Service) Period(req wire.Request) string {
	if p := strings.TrimSpace(req.Period); p != "" {
		return p
	}

	return s.now().UTC().Format("2006")
}

// Run generates assignments for req.
//
// When req names a group and history is enabled, the group's most recent
// exchange from another period is added to the request's own previous
// assignments, and a successful result is recorded for the request's period.
//
// Parameters:
//   - ctx: Context for history I/O and generation cancellation
//   - req: Decoded request
//
// Returns:
//   - types.Result: Generation outcome; validation and infeasibility failures are reported here
//   - error: History lookup or record failure only
func (s *Service) Run(ctx context.Context, req wire.Request) (types.Result, error) {
	forbidden := req.ForbiddenPairs()
	group := strings.TrimSpace(req.Group)
	useHistory := s.history != nil && group != ""
	period := s.Period(req)

	log := s.logger.With("group", group, "period", period)

	if useHistory {
		prev, ok, err := s.history.Previous(ctx, group, period)
		if err != nil {
			return types.Result{}, fmt.Errorf("failed to load history of group %s: %w", group, err)
		}
		if ok {
			forbidden = append(forbidden, types.ForbiddenPairs(prev.Assignments)...)
			log.Debug("merged group history", "previous_period", prev.Period, "pairs", len(prev.Assignments))
		}
	}

	result := s.gen.Generate(ctx, req.Employees, forbidden)
	if !result.Success || !useHistory {
		return result, nil
	}

	if err := s.history.Record(ctx, group, period, result.Assignments); err != nil {
		return result, fmt.Errorf("failed to record exchange of group %s: %w", group, err)
	}
	log.Info("recorded exchange", "pairs", len(result.Assignments))

	return result, nil
}
