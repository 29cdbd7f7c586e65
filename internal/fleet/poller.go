package fleet

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

var (
	ErrTickInProgress   = errors.New("previous poll still in flight")
	ErrAllRegionsFailed = errors.New("all regions failed")
	ErrAlreadyRunning   = errors.New("poller already running")
)

// Status is the outcome of the most recent completed poll.
type Status string

const (
	StatusPending     Status = "pending"
	StatusOK          Status = "ok"
	StatusNoData      Status = "no_data"
	StatusFetchFailed Status = "fetch_failed"
)

const noDataMessage = "No aircraft found in monitored regions."

// Metrics counts poller activity.
type Metrics struct {
	Ticks          atomic.Int64
	SkippedTicks   atomic.Int64
	FailedTicks    atomic.Int64
	EmptyTicks     atomic.Int64
	RegionFailures atomic.Int64
}

type MetricsSnapshot struct {
	Ticks          int64 `json:"ticks"`
	SkippedTicks   int64 `json:"skippedTicks"`
	FailedTicks    int64 `json:"failedTicks"`
	EmptyTicks     int64 `json:"emptyTicks"`
	RegionFailures int64 `json:"regionFailures"`
}

func (m *Metrics) Snapshot() MetricsSnapshot {
	return MetricsSnapshot{
		Ticks:          m.Ticks.Load(),
		SkippedTicks:   m.SkippedTicks.Load(),
		FailedTicks:    m.FailedTicks.Load(),
		EmptyTicks:     m.EmptyTicks.Load(),
		RegionFailures: m.RegionFailures.Load(),
	}
}

// Snapshot is a consistent copy of the poller state.
type Snapshot struct {
	Aircraft   []AircraftState `json:"aircraft"`
	LastUpdate time.Time       `json:"lastUpdate"`
	Status     Status          `json:"status"`
	Message    string          `json:"message,omitempty"`
	LastReport GatherReport    `json:"lastReport"`
}

// Poller rebuilds the aircraft set from the feed on a fixed interval. The previous set is
// kept whenever a poll yields nothing.
type Poller struct {
	fetcher  RegionFetcher
	regions  []Region
	interval time.Duration
	timeout  time.Duration
	metrics  Metrics

	inFlight atomic.Bool

	mu         sync.RWMutex
	aircraft   []AircraftState
	lastUpdate time.Time
	status     Status
	message    string
	report     GatherReport

	runMu   sync.Mutex
	running bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// NewPoller creates a poller over regions. Zero durations take the defaults.
func NewPoller(f RegionFetcher, regions []Region, interval, regionTimeout time.Duration) *Poller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	if regionTimeout <= 0 {
		regionTimeout = DefaultRegionTimeout
	}
	return &Poller{
		fetcher:  f,
		regions:  append([]Region(nil), regions...),
		interval: interval,
		timeout:  regionTimeout,
		status:   StatusPending,
		aircraft: []AircraftState{},
	}
}

func (p *Poller) Metrics() *Metrics { return &p.metrics }

// Tick runs one poll. It returns ErrTickInProgress without fetching if another poll has
// not finished yet, and ErrAllRegionsFailed when no region answered. If ctx ends during
// the poll, ctx.Err() is returned and the recorded state is left untouched.
func (p *Poller) Tick(ctx context.Context) error {
	if !p.inFlight.CompareAndSwap(false, true) {
		p.metrics.SkippedTicks.Add(1)
		return ErrTickInProgress
	}
	defer p.inFlight.Store(false)

	p.metrics.Ticks.Add(1)
	start := time.Now()

	raw, report := Gather(ctx, p.fetcher, p.regions, p.timeout)

	// Shutdown or caller abort: the failed regions say nothing about the feed.
	if err := ctx.Err(); err != nil {
		return err
	}
	p.metrics.RegionFailures.Add(int64(len(report.Failed)))

	if report.AllFailed() {
		p.metrics.FailedTicks.Add(1)
		msg := fmt.Sprintf("Failed to fetch flight data: all %d regions failed", report.Regions)
		p.setOutcome(StatusFetchFailed, msg, report, nil)
		return ErrAllRegionsFailed
	}

	states := NormalizeAll(raw)
	LogTransform(len(raw), len(states), time.Since(start))

	if len(states) == 0 {
		p.metrics.EmptyTicks.Add(1)
		p.setOutcome(StatusNoData, noDataMessage, report, nil)
		return nil
	}

	p.setOutcome(StatusOK, "", report, states)
	return nil
}

// setOutcome records a finished poll. A nil states keeps the current aircraft set.
func (p *Poller) setOutcome(status Status, msg string, report GatherReport, states []AircraftState) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.status = status
	p.message = msg
	p.report = report
	if states != nil {
		p.aircraft = states
		p.lastUpdate = time.Now()
	}
}

// Snapshot returns a copy of the current state.
func (p *Poller) Snapshot() Snapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()

	aircraft := make([]AircraftState, len(p.aircraft))
	copy(aircraft, p.aircraft)

	return Snapshot{
		Aircraft:   aircraft,
		LastUpdate: p.lastUpdate,
		Status:     p.status,
		Message:    p.message,
		LastReport: p.report,
	}
}

// Lookup finds one aircraft in the current set.
func (p *Poller) Lookup(hex string) (AircraftState, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	for _, a := range p.aircraft {
		if a.Identifier == hex {
			return a, true
		}
	}
	return AircraftState{}, false
}

// SignalLost returns the aircraft of the current set flagged as stale.
func (p *Poller) SignalLost() []AircraftState {
	p.mu.RLock()
	defer p.mu.RUnlock()

	out := []AircraftState{}
	for _, a := range p.aircraft {
		if a.SignalLost {
			out = append(out, a)
		}
	}
	return out
}

// Start polls immediately and then every interval until ctx is done or Stop is called.
// Each tick runs in its own goroutine; ticks that fire while one is in flight are skipped.
func (p *Poller) Start(ctx context.Context) error {
	p.runMu.Lock()
	defer p.runMu.Unlock()

	if p.running {
		return ErrAlreadyRunning
	}
	p.running = true

	ctx, p.cancel = context.WithCancel(ctx)
	p.wg.Add(1)
	go p.run(ctx)
	return nil
}

// Stop halts the loop and waits for an in-flight tick to return.
func (p *Poller) Stop() {
	p.runMu.Lock()
	if p.cancel != nil {
		p.cancel()
	}
	p.runMu.Unlock()

	p.wg.Wait()

	p.runMu.Lock()
	p.running = false
	p.cancel = nil
	p.runMu.Unlock()
}

func (p *Poller) IsRunning() bool {
	p.runMu.Lock()
	defer p.runMu.Unlock()
	return p.running
}

func (p *Poller) run(ctx context.Context) {
	defer p.wg.Done()

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.spawnTick(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.spawnTick(ctx)
		}
	}
}

func (p *Poller) spawnTick(ctx context.Context) {
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		err := p.Tick(ctx)
		if err != nil && !errors.Is(err, ErrTickInProgress) && ctx.Err() == nil {
			LogError("poll", err)
		}
	}()
}
