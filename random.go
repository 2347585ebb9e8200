package qsim

import (
	"math/rand/v2"
	"sync"
)

/*
Source is the randomness used to collapse a measurement into a classical bit.
Float64 must return a value in [0, 1).
*/
type Source interface {
	Float64() float64
}

type systemSource struct{}

func (systemSource) Float64() float64 {
	return rand.Float64()
}

// SystemSource returns the process-wide generator. It is safe for concurrent use.
func SystemSource() Source {
	return systemSource{}
}

/*
seededSource is a deterministic PCG stream. The mutex is there because a
register's source may be shared with other registers by the caller.
*/
type seededSource struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSeededSource returns a reproducible Source for the given seed.
func NewSeededSource(seed uint64) Source {
	return &seededSource{
		rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

func (s *seededSource) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Float64()
}

type fixedSource struct {
	mu     sync.Mutex
	values []float64
	next   int
}

// FixedSource cycles through the given draws. With no values it always returns 0.
func FixedSource(values ...float64) Source {
	return &fixedSource{values: values}
}

func (f *fixedSource) Float64() float64 {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.values) == 0 {
		return 0
	}

	v := f.values[f.next%len(f.values)]
	f.next++
	return v
}
