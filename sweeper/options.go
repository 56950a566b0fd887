package sweeper

import (
	"errors"
	"time"

	"go.uber.org/zap"
)

type Options func(s *Sweeper) error

func WithInterval(d time.Duration) Options {
	return func(s *Sweeper) error {
		if d <= 0 {
			return errors.New("sweeper: interval must be positive")
		}
		s.interval = d
		return nil
	}
}

func WithLogger(l *zap.SugaredLogger) Options {
	return func(s *Sweeper) error {
		if l == nil {
			return errors.New("sweeper: nil logger")
		}
		s.logger = l
		return nil
	}
}

// WithLocation sets the zone wall-clock comparisons are made in.
func WithLocation(loc *time.Location) Options {
	return func(s *Sweeper) error {
		if loc == nil {
			return errors.New("sweeper: nil location")
		}
		s.loc = loc
		return nil
	}
}

func WithClock(now func() time.Time) Options {
	return func(s *Sweeper) error {
		if now == nil {
			return errors.New("sweeper: nil clock")
		}
		s.now = now
		return nil
	}
}
