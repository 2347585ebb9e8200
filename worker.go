package qsim

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Worker executes shots taken from the pool's job channel.
type Worker struct {
	id   int
	pool *Pool
}

func (w *Worker) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case job := <-w.pool.jobs:
			bits, err := w.processJob(job)
			job.space.Store(job.ID, bits, err)
		}
	}
}

func (w *Worker) processJob(job Job) (string, error) {
	if !job.breaker.Allow() {
		w.pool.metrics.recordSkip()
		return "", fmt.Errorf("shot %d: %w", job.Shot, ErrBreakerOpen)
	}

	start := time.Now()
	reg, err := job.Circuit.Build(WithSource(job.Source))
	w.pool.metrics.recordShot(start, err == nil)

	if err != nil {
		job.breaker.RecordFailure()
		w.pool.logger.Debug("shot failed", "worker", w.id, "job", job.ID, "queued", start.Sub(job.QueuedAt), "err", err)
		return "", fmt.Errorf("shot %d: %w", job.Shot, err)
	}

	job.breaker.RecordSuccess()
	return bitstring(reg.MeasureAll()), nil
}

// bitstring writes qubit 0 first.
func bitstring(bits []int) string {
	var sb strings.Builder
	sb.Grow(len(bits))
	for _, b := range bits {
		if b == 0 {
			sb.WriteByte('0')
		} else {
			sb.WriteByte('1')
		}
	}
	return sb.String()
}

func newJob(id string, shot int, circuit *Circuit, seed uint64, space *ResultSpace, breaker *CircuitBreaker) Job {
	return Job{
		ID:       id,
		Shot:     shot,
		Circuit:  circuit,
		Source:   shotSource(seed, shot),
		QueuedAt: time.Now(),
		space:    space,
		breaker:  breaker,
	}
}
