package poller

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/preston-bernstein/ncaa-baseball-service/internal/domain"
	"github.com/preston-bernstein/ncaa-baseball-service/internal/logging"
	"github.com/preston-bernstein/ncaa-baseball-service/internal/metrics"
)

const (
	defaultInterval = 30 * time.Second
	defaultTimeout  = 20 * time.Second
)

// Scoreboard is the read the poller keeps warm.
type Scoreboard interface {
	Scoreboard(ctx context.Context, date string) []domain.Game
}

// Poller refreshes today's scoreboard on an interval so provider caches stay warm.
type Poller struct {
	source   Scoreboard
	logger   *slog.Logger
	metrics  *metrics.Recorder
	interval time.Duration
	timeout  time.Duration

	ticker   *time.Ticker
	done     chan struct{}
	stopOnce sync.Once
	startMu  sync.Mutex
	started  bool

	statusMu sync.RWMutex
	status   Status
}

// Status describes the recent health of the poller loop.
type Status struct {
	ConsecutiveFailures int
	LastError           string
	LastAttempt         time.Time
	LastSuccess         time.Time
	LastCount           int
}

// IsReady reports whether the poller has had a recent success and is not failing repeatedly.
func (s Status) IsReady() bool {
	if s.LastSuccess.IsZero() {
		return false
	}
	return s.ConsecutiveFailures < 3
}

// New constructs a Poller. A cycle that outlives timeout counts as a failure.
func New(source Scoreboard, logger *slog.Logger, recorder *metrics.Recorder, interval, timeout time.Duration) *Poller {
	if interval <= 0 {
		interval = defaultInterval
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Poller{
		source:   source,
		logger:   logger,
		metrics:  recorder,
		interval: interval,
		timeout:  timeout,
		done:     make(chan struct{}),
	}
}

// Start begins polling until the context is cancelled or Stop is called.
func (p *Poller) Start(ctx context.Context) {
	p.startMu.Lock()
	if p.started {
		p.startMu.Unlock()
		return
	}
	p.started = true
	p.startMu.Unlock()

	p.ticker = time.NewTicker(p.interval)

	go func() {
		logging.Info(p.logger, "poller started", slog.Int64(logging.FieldDurationMS, p.interval.Milliseconds()))
		p.fetchOnce(ctx)

		for {
			select {
			case <-ctx.Done():
				p.stopTicker()
				logging.Info(p.logger, "poller stopped")
				return
			case <-p.done:
				p.stopTicker()
				logging.Info(p.logger, "poller stopped")
				return
			case <-p.ticker.C:
				p.fetchOnce(ctx)
			}
		}
	}()
}

// Stop halts the polling loop.
func (p *Poller) Stop(ctx context.Context) error {
	_ = ctx
	p.stopOnce.Do(func() {
		close(p.done)
		p.stopTicker()
	})
	return nil
}

func (p *Poller) fetchOnce(ctx context.Context) {
	start := time.Now()
	p.recordAttempt(start)

	cycleCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	games := p.source.Scoreboard(cycleCtx, "")

	var err error
	if cycleCtx.Err() != nil {
		err = fmt.Errorf("scoreboard refresh: %w", cycleCtx.Err())
	}
	p.metrics.RecordPollerCycle(time.Since(start), err)
	if err != nil {
		logging.Error(p.logger, "poller refresh failed", err, slog.Int64(logging.FieldDurationMS, time.Since(start).Milliseconds()))
		p.recordFailure(err, start)
		return
	}

	p.recordSuccess(start, len(games))
	logging.Info(p.logger, "poller refreshed scoreboard",
		logging.FieldCount, len(games),
		logging.FieldDurationMS, time.Since(start).Milliseconds(),
	)
}

func (p *Poller) stopTicker() {
	if p.ticker != nil {
		p.ticker.Stop()
	}
}

func (p *Poller) recordAttempt(at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.LastAttempt = at
}

func (p *Poller) recordSuccess(at time.Time, count int) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.ConsecutiveFailures = 0
	p.status.LastError = ""
	p.status.LastSuccess = at
	p.status.LastCount = count
}

func (p *Poller) recordFailure(err error, at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.ConsecutiveFailures++
	if err != nil {
		p.status.LastError = err.Error()
	}
	p.status.LastAttempt = at
}

// Status returns a snapshot of the poller's recent health.
func (p *Poller) Status() Status {
	p.statusMu.RLock()
	defer p.statusMu.RUnlock()
	return p.status
}
