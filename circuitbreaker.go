package qsim

import (
	"errors"
	"sync"
)

// ErrBreakerOpen is returned for shots skipped after too many failures.
var ErrBreakerOpen = errors.New("circuit breaker open")

// BreakerState is the state of a CircuitBreaker.
type BreakerState int

const (
	BreakerClosed BreakerState = iota
	BreakerOpen
)

/*
CircuitBreaker stops a run from building the same failing circuit over and
over. Gate application is deterministic, so once maxFailures consecutive shots
have failed the remaining ones would fail the same way. A breaker with
maxFailures 0 never opens.

An open breaker stays open for the rest of its run; every run gets a new one.
*/
type CircuitBreaker struct {
	mu           sync.RWMutex
	maxFailures  int
	failureCount int
	state        BreakerState
}

func NewCircuitBreaker(maxFailures int) *CircuitBreaker {
	return &CircuitBreaker{
		maxFailures: maxFailures,
		state:       BreakerClosed,
	}
}

// RecordFailure counts a failed shot and opens the breaker at the threshold.
func (cb *CircuitBreaker) RecordFailure() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.failureCount++
	if cb.maxFailures > 0 && cb.failureCount >= cb.maxFailures {
		cb.state = BreakerOpen
	}
}

// RecordSuccess clears the consecutive failure count of a closed breaker.
func (cb *CircuitBreaker) RecordSuccess() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if cb.state == BreakerClosed {
		cb.failureCount = 0
	}
}

// Allow reports whether another shot may run.
func (cb *CircuitBreaker) Allow() bool {
	cb.mu.RLock()
	defer cb.mu.RUnlock()
	return cb.state == BreakerClosed
}

func (cb *CircuitBreaker) State() BreakerState {
	cb.mu.RLock()
	defer cb.mu.RUnlock()
	return cb.state
}
