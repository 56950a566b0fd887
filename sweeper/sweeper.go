// Package sweeper ends screening showtimes once their start time has passed.
package sweeper

import (
	"context"
	"errors"
	"sync"
	"time"

	"movieclub/movie"
	"movieclub/pkg/logger"
	"movieclub/pkg/sentry"

	"go.uber.org/zap"
)

const DefaultInterval = 60 * time.Second

var ErrAlreadyStarted = errors.New("sweeper: already started")

// Ender is the part of the movie usecase the sweeper drives.
type Ender interface {
	EndElapsedScreenings(ctx context.Context, now time.Time) (int64, error)
}

type Sweeper struct {
	ender    Ender
	interval time.Duration
	logger   *zap.SugaredLogger
	loc      *time.Location
	now      func() time.Time

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func New(ender Ender, opts ...Options) (*Sweeper, error) {
	s := &Sweeper{
		ender:    ender,
		interval: DefaultInterval,
		logger:   logger.NOOPLogger,
		loc:      time.Local,
		now:      time.Now,
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Sweep runs a single pass and returns how many showtimes were ended.
func (s *Sweeper) Sweep(ctx context.Context) (int64, error) {
	now := s.now().In(s.loc)
	n, err := s.ender.EndElapsedScreenings(ctx, now)
	if err != nil {
		return 0, &SweepError{Cutoff: movie.CutoffAt(now), Err: err}
	}
	if n > 0 {
		s.logger.Infow("ended elapsed screenings", "count", n, "cutoff", movie.CutoffAt(now).String())
	}
	return n, nil
}

// SweepError is a failed pass together with the cutoff it ran against.
type SweepError struct {
	Cutoff movie.Cutoff
	Err    error
}

func (e *SweepError) Error() string {
	return "sweep at " + e.Cutoff.String() + ": " + e.Err.Error()
}

func (e *SweepError) Unwrap() error { return e.Err }

// Start sweeps once immediately and then on every tick until ctx is done or Stop is called.
func (s *Sweeper) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.done != nil {
		return ErrAlreadyStarted
	}

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.done = make(chan struct{})

	go s.run(ctx, s.done)
	return nil
}

// Stop cancels the loop and waits for a running sweep to return.
func (s *Sweeper) Stop() {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel, s.done = nil, nil
	s.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

func (s *Sweeper) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.tick(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

// tick never returns an error; a failed pass is retried on the next tick.
func (s *Sweeper) tick(ctx context.Context) {
	if _, err := s.Sweep(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		extras := map[string]interface{}{"interval": s.interval.String()}
		var sweepErr *SweepError
		if errors.As(err, &sweepErr) {
			extras["cutoff"] = sweepErr.Cutoff.String()
		}
		s.logger.Errorw("sweep failed", "error", err)
		sentry.WithTags(map[string]string{"component": "sweeper"}).WithExtras(extras).Error(err)
	}
}
