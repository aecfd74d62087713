package service

import (
	"github.com/okian/allocscore/internal/domain/allocation"
	"github.com/okian/allocscore/pkg/logger"
	"github.com/okian/allocscore/pkg/metrics"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMetrics sets the metrics manager tabulations are recorded on.
func WithMetrics(m *metrics.Manager) Option {
	return func(s *Service) {
		if m != nil {
			s.metrics = m
		}
	}
}

// WithEngine sets the allocation engine.
func WithEngine(e *allocation.Engine) Option {
	return func(s *Service) {
		if e != nil {
			s.engine = e
		}
	}
}

// WithDefaultMaxScore sets the score ceiling used when neither the request
// nor the election sets one.
func WithDefaultMaxScore(maxScore float64) Option {
	return func(s *Service) {
		if maxScore > 0 {
			s.defaultMaxScore = maxScore
		}
	}
}

// WithDefaultSeats sets the seat count used when neither the request nor
// the election sets one.
func WithDefaultSeats(seats int) Option {
	return func(s *Service) {
		if seats > 0 {
			s.defaultSeats = seats
		}
	}
}

// WithRunIDs replaces the run ID generator.
func WithRunIDs(next func() string) Option {
	return func(s *Service) {
		if next != nil {
			s.newRunID = next
		}
	}
}
