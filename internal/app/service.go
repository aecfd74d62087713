// Package service runs tabulations for the command line: it resolves the
// election parameters, calls the allocation engine, and logs and records
// metrics for every run.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/okian/allocscore/internal/domain/allocation"
	"github.com/okian/allocscore/internal/report"
	"github.com/okian/allocscore/internal/scenario"
	"github.com/okian/allocscore/pkg/logger"
	"github.com/okian/allocscore/pkg/metrics"
)

const millisecondsPerSecond = 1e3

// Request is one election to tabulate. Positive MaxScore and Seats override
// the values in the election document.
type Request struct {
	Election scenario.Election
	MaxScore float64
	Seats    int
}

// Service tabulates elections.
type Service struct {
	engine  *allocation.Engine
	metrics *metrics.Manager
	logger  logger.Logger

	defaultMaxScore float64
	defaultSeats    int
	newRunID        func() string
}

// New constructs a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		engine:   allocation.New(),
		metrics:  metrics.Default(),
		logger:   logger.Nop(),
		newRunID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Resolve fills in the max score and seat count of the request's election,
// preferring the request, then the election, then the service defaults.
func (s *Service) Resolve(req Request) (scenario.Election, error) {
	e := req.Election
	if req.MaxScore > 0 {
		e.MaxScore = req.MaxScore
	}
	if e.MaxScore <= 0 {
		e.MaxScore = s.defaultMaxScore
	}
	if req.Seats > 0 {
		e.Seats = req.Seats
	}
	if e.Seats <= 0 {
		e.Seats = s.defaultSeats
	}

	if e.MaxScore <= 0 {
		return e, fmt.Errorf("%w for election %q", ErrMissingMaxScore, e.Name)
	}
	if e.Seats <= 0 {
		return e, fmt.Errorf("%w for election %q", ErrMissingSeats, e.Name)
	}
	return e, nil
}

// Tabulate runs one election and returns a report of the result.
func (s *Service) Tabulate(ctx context.Context, req Request) (report.Report, error) {
	if err := ctx.Err(); err != nil {
		return report.Report{}, fmt.Errorf("context cancelled: %w", err)
	}

	e, err := s.Resolve(req)
	if err != nil {
		s.metrics.RecordTabulation(metrics.OutcomeInvalid, 0)
		return report.Report{}, err
	}

	runID := s.newRunID()
	log := s.logger.With(logger.String("run_id", runID), logger.String("election", e.Name))

	m, err := e.Matrix()
	if err != nil {
		s.metrics.RecordTabulation(metrics.OutcomeInvalid, 0)
		log.Warn(ctx, "election rejected", logger.Error(err))
		return report.Report{}, err
	}

	log.Info(ctx, "tabulating election",
		logger.Int("ballots", m.Ballots()),
		logger.Int("candidates", m.Len()),
		logger.Int("seats", e.Seats),
		logger.Float64("max_score", e.MaxScore),
		logger.String("split_basis", s.engine.Basis().String()),
		logger.Float64("tolerance", s.engine.Tolerance()),
	)

	start := time.Now()
	res, err := s.engine.Tabulate(e.MaxScore, e.Seats, m)
	elapsed := time.Since(start)
	if err != nil {
		s.metrics.RecordTabulation(metrics.OutcomeInvalid, 0)
		log.Warn(ctx, "election rejected", logger.Error(err))
		return report.Report{}, err
	}
	res.RunID = runID

	s.metrics.RecordElection(m.Ballots(), m.Len(), e.Seats, res.Quota)
	prev := allocation.NewState(m.Ballots(), m.Len()).Weights
	for _, r := range res.Rounds {
		spent := r.Spent(prev)
		s.metrics.RecordRound(r.Degenerate, spent)
		log.Debug(ctx, "round complete",
			logger.Int("round", r.Number),
			logger.String("winner", r.Winner),
			logger.Float64("split_point", r.SplitPoint),
			logger.Float64("spent", spent),
			logger.Bool("degenerate", r.Degenerate),
			logger.Any("scores", r.Scores),
		)
		prev = r.Weights
	}
	s.metrics.UpdateRemainingWeight(prev.Sum() / float64(m.Ballots()))
	s.metrics.RecordTabulation(metrics.OutcomeOK, elapsed.Seconds()*millisecondsPerSecond)

	log.Info(ctx, "tabulation complete",
		logger.Strings("winners", res.Winners),
		logger.Float64("quota", res.Quota),
		logger.Duration("elapsed", elapsed),
	)
	return report.Report{Election: e, Result: res}, nil
}
