package qsim

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/theapemachine/errnie"
)

// ErrPoolClosed is returned by Run after Close.
var ErrPoolClosed = errors.New("pool closed")

// Result is the outcome of running a circuit for a number of shots.
type Result struct {
	Shots    int
	Counts   map[string]int
	Memory   []string
	Duration time.Duration
}

// Frequency is the share of shots that measured bits.
func (r *Result) Frequency(bits string) float64 {
	if r.Shots == 0 {
		return 0
	}
	return float64(r.Counts[bits]) / float64(r.Shots)
}

/*
Pool runs shots of a circuit on a fixed set of workers. Every shot builds its
own register, so shots share nothing but the job channel. Seeded runs are
reproducible whatever the worker count, because shot k always draws from the
stream for seed+k.
*/
type Pool struct {
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	jobs    chan Job
	metrics *Metrics
	config  *Config
	logger  *log.Logger
	runs    atomic.Uint64
}

/*
NewPool starts config.Workers workers. A nil config or logger gets the defaults;
a config that fails Validate is refused before any worker starts.
*/
func NewPool(ctx context.Context, config *Config, logger *log.Logger) (*Pool, error) {
	if config == nil {
		config = NewConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("new pool: %w", err)
	}
	if logger == nil {
		logger = NewLogger(config.LogLevel)
	}

	errnie.Info(
		"NewPool - workers %d, maxFailures %d, seed %d",
		config.Workers,
		config.MaxFailures,
		config.Seed,
	)

	ctx, cancel := context.WithCancel(ctx)
	p := &Pool{
		ctx:     ctx,
		cancel:  cancel,
		jobs:    make(chan Job, config.Workers*10),
		metrics: NewMetrics(),
		config:  config,
		logger:  logger,
	}

	for i := 0; i < config.Workers; i++ {
		p.startWorker(i)
	}

	return p, nil
}

func (p *Pool) startWorker(id int) {
	worker := &Worker{id: id, pool: p}

	p.metrics.mu.Lock()
	p.metrics.WorkerCount++
	p.metrics.mu.Unlock()

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		worker.run(p.ctx)
	}()
}

/*
Run executes circuit shots times and collects the measured bitstrings in shot
order. The first failed shot, in shot order, aborts the run with its error.
*/
func (p *Pool) Run(ctx context.Context, circuit *Circuit, shots int) (*Result, error) {
	if p.ctx.Err() != nil {
		return nil, ErrPoolClosed
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if circuit == nil || shots <= 0 {
		return nil, fmt.Errorf("%w: run needs a circuit and a positive shot count", ErrInvalidArgument)
	}

	runID := p.runs.Add(1)
	p.metrics.recordRun()
	p.logger.Info("run started", "run", runID, "qubits", circuit.Qubits, "ops", len(circuit.Ops), "shots", shots)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	space := NewResultSpace()
	breaker := NewCircuitBreaker(p.config.MaxFailures)
	ids := make([]string, shots)
	for k := range ids {
		ids[k] = fmt.Sprintf("run-%d/shot-%d", runID, k)
	}

	go p.schedule(ctx, ids, circuit, space, breaker)

	start := time.Now()
	result := &Result{
		Shots:  shots,
		Counts: make(map[string]int),
		Memory: make([]string, shots),
	}

	for k, id := range ids {
		sv, err := p.await(ctx, space, id)
		if err != nil {
			return nil, err
		}
		if sv.Error != nil {
			p.logger.Warn("run aborted", "run", runID, "err", sv.Error)
			return nil, sv.Error
		}

		result.Memory[k] = sv.Bits
		result.Counts[sv.Bits]++
	}

	result.Duration = time.Since(start)
	p.logger.Info("run finished", "run", runID, "outcomes", len(result.Counts), "duration", result.Duration)

	return result, nil
}

func (p *Pool) schedule(ctx context.Context, ids []string, circuit *Circuit, space *ResultSpace, breaker *CircuitBreaker) {
	for k, id := range ids {
		job := newJob(id, k, circuit, p.config.Seed, space, breaker)

		select {
		case p.jobs <- job:
		case <-ctx.Done():
			return
		case <-p.ctx.Done():
			return
		}
	}
}

func (p *Pool) await(ctx context.Context, space *ResultSpace, id string) (ShotValue, error) {
	timeout := p.config.ShotTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case sv := <-space.Await(id):
		return sv, nil
	case <-ctx.Done():
		return ShotValue{}, ctx.Err()
	case <-p.ctx.Done():
		return ShotValue{}, ErrPoolClosed
	case <-timer.C:
		return ShotValue{}, fmt.Errorf("%s: no result after %v", id, timeout)
	}
}

// Metrics returns a snapshot of the pool's counters.
func (p *Pool) Metrics() map[string]any {
	return p.metrics.ExportMetrics()
}

// Close stops the workers and waits for them to exit. Close is idempotent.
func (p *Pool) Close() {
	if p == nil {
		return
	}

	p.cancel()
	p.wg.Wait()
	p.logger.Debug("pool closed", "runs", p.runs.Load())
}
