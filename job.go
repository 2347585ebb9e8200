package qsim

import "time"

/*
Job is one shot: build the circuit on a fresh register and measure every
qubit. Each job carries the result space and breaker of the run it belongs
to, so concurrent runs on the same pool never see each other's shots.
*/
type Job struct {
	ID       string
	Shot     int
	Circuit  *Circuit
	Source   Source
	QueuedAt time.Time

	space   *ResultSpace
	breaker *CircuitBreaker
}

// shotSource gives shot k its own reproducible stream when the run is seeded.
func shotSource(seed uint64, shot int) Source {
	if seed == 0 {
		return SystemSource()
	}
	return NewSeededSource(seed + uint64(shot))
}
