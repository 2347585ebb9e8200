package qsim

import (
	"fmt"
	"math"
)

// normTolerance bounds how far |α|² + |β|² may drift from 1.
const normTolerance = 1e-10

/*
Qubit is a normalized pair of amplitudes, alpha for |0⟩ and beta for |1⟩.
A Qubit is never mutated after construction: applying a gate yields a new
Qubit, and measuring only samples from the distribution.
*/
type Qubit struct {
	alpha Complex
	beta  Complex
}

/*
NewQubit is the single place where the normalization invariant is enforced.
Every gate application goes through it, which is what catches non-unitary
custom gates.
*/
func NewQubit(alpha, beta Complex) (*Qubit, error) {
	if !alpha.finite() || !beta.finite() {
		return nil, fmt.Errorf("%w: amplitudes must be finite, got %v and %v", ErrInvalidState, alpha, beta)
	}

	norm := alpha.squaredMagnitude() + beta.squaredMagnitude()
	if !(math.Abs(norm-1) <= normTolerance) {
		return nil, fmt.Errorf("%w: |alpha|²+|beta|² = %v", ErrInvalidState, norm)
	}

	return &Qubit{alpha: alpha, beta: beta}, nil
}

// Zero returns |0⟩.
func Zero() *Qubit {
	return &Qubit{alpha: NewComplex(1, 0), beta: NewComplex(0, 0)}
}

// One returns |1⟩.
func One() *Qubit {
	return &Qubit{alpha: NewComplex(0, 0), beta: NewComplex(1, 0)}
}

func (q *Qubit) Alpha() Complex { return q.alpha }
func (q *Qubit) Beta() Complex  { return q.beta }

// ProbabilityZero is |alpha|².
func (q *Qubit) ProbabilityZero() float64 {
	return q.alpha.squaredMagnitude()
}

// ProbabilityOne is |beta|².
func (q *Qubit) ProbabilityOne() float64 {
	return q.beta.squaredMagnitude()
}

/*
Measure draws r from src and returns 0 when r < ProbabilityZero, 1 otherwise.
The amplitudes are left as they are, so measuring again samples the same
distribution.
*/
func (q *Qubit) Measure(src Source) int {
	if src.Float64() < q.ProbabilityZero() {
		return 0
	}
	return 1
}

// ApplyGate returns gate·q as a new, re-validated Qubit.
func (q *Qubit) ApplyGate(gate *Gate) (*Qubit, error) {
	return gate.ApplyTo(q)
}

// Equal compares both amplitudes within tol.
func (q *Qubit) Equal(other *Qubit, tol float64) bool {
	return q.alpha.Equal(other.alpha, tol) && q.beta.Equal(other.beta, tol)
}

func (q *Qubit) String() string {
	return fmt.Sprintf("(%s)|0⟩ + (%s)|1⟩", q.alpha, q.beta)
}
