package qsim

import (
	"sync"
	"time"
)

// ShotValue is the outcome of one shot as stored in a ResultSpace.
type ShotValue struct {
	Bits      string
	Error     error
	CreatedAt time.Time
}

/*
ResultSpace is where workers drop shot outcomes and where the run collects
them. Await may be called before or after Store; either way the channel
receives the value exactly once.
*/
type ResultSpace struct {
	mu      sync.Mutex
	values  map[string]ShotValue
	waiting map[string][]chan ShotValue
}

// NewResultSpace returns an empty space, one per run.
func NewResultSpace() *ResultSpace {
	return &ResultSpace{
		values:  make(map[string]ShotValue),
		waiting: make(map[string][]chan ShotValue),
	}
}

// Store records the outcome for id and hands it to anyone already waiting.
func (rs *ResultSpace) Store(id string, bits string, err error) {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	sv := ShotValue{
		Bits:      bits,
		Error:     err,
		CreatedAt: time.Now(),
	}
	rs.values[id] = sv

	for _, ch := range rs.waiting[id] {
		ch <- sv
		close(ch)
	}
	delete(rs.waiting, id)
}

// Await returns a channel that receives the outcome for id once it is stored.
func (rs *ResultSpace) Await(id string) <-chan ShotValue {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	ch := make(chan ShotValue, 1)

	if sv, ok := rs.values[id]; ok {
		ch <- sv
		close(ch)
		return ch
	}

	rs.waiting[id] = append(rs.waiting[id], ch)
	return ch
}

// Len is the number of stored outcomes.
func (rs *ResultSpace) Len() int {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	return len(rs.values)
}
