package qsim

import (
	"fmt"
	"math"
)

// unitaryTolerance bounds each entry of U†U against the identity.
const unitaryTolerance = 1e-9

// GateKind tags the built-in gates. Everything else is KindCustom.
type GateKind int

const (
	KindCustom GateKind = iota
	KindHadamard
	KindPauliX
	KindPauliY
	KindPauliZ
	KindPhase
)

func (k GateKind) String() string {
	switch k {
	case KindHadamard:
		return "hadamard"
	case KindPauliX:
		return "pauli-x"
	case KindPauliY:
		return "pauli-y"
	case KindPauliZ:
		return "pauli-z"
	case KindPhase:
		return "phase"
	default:
		return "custom"
	}
}

/*
Gate is a single-qubit transform described by a 2×2 complex matrix. Gates are
stateless and can be applied to any number of qubits. Unitarity is not checked
on every application; use Validate for custom matrices. A non-unitary matrix
still surfaces as ErrInvalidState from ApplyTo once it denormalizes a qubit.
*/
type Gate struct {
	kind   GateKind
	name   string
	matrix [2][2]Complex
}

// NewGate builds a custom gate from an arbitrary matrix.
func NewGate(name string, matrix [2][2]Complex) *Gate {
	return &Gate{kind: KindCustom, name: name, matrix: matrix}
}

// Hadamard is 1/√2 · [[1, 1], [1, -1]].
func Hadamard() *Gate {
	h := 1 / math.Sqrt2
	return &Gate{
		kind: KindHadamard,
		name: "H",
		matrix: [2][2]Complex{
			{NewComplex(h, 0), NewComplex(h, 0)},
			{NewComplex(h, 0), NewComplex(-h, 0)},
		},
	}
}

// PauliX is [[0, 1], [1, 0]].
func PauliX() *Gate {
	return &Gate{
		kind: KindPauliX,
		name: "X",
		matrix: [2][2]Complex{
			{NewComplex(0, 0), NewComplex(1, 0)},
			{NewComplex(1, 0), NewComplex(0, 0)},
		},
	}
}

// PauliY is [[0, -i], [i, 0]].
func PauliY() *Gate {
	return &Gate{
		kind: KindPauliY,
		name: "Y",
		matrix: [2][2]Complex{
			{NewComplex(0, 0), NewComplex(0, -1)},
			{NewComplex(0, 1), NewComplex(0, 0)},
		},
	}
}

// PauliZ is [[1, 0], [0, -1]].
func PauliZ() *Gate {
	return &Gate{
		kind: KindPauliZ,
		name: "Z",
		matrix: [2][2]Complex{
			{NewComplex(1, 0), NewComplex(0, 0)},
			{NewComplex(0, 0), NewComplex(-1, 0)},
		},
	}
}

// Phase is [[1, 0], [0, e^{iθ}]].
func Phase(theta float64) *Gate {
	return &Gate{
		kind: KindPhase,
		name: fmt.Sprintf("P(%g)", theta),
		matrix: [2][2]Complex{
			{NewComplex(1, 0), NewComplex(0, 0)},
			{NewComplex(0, 0), ExpI(theta)},
		},
	}
}

// S is Phase(π/2).
func S() *Gate {
	g := Phase(math.Pi / 2)
	g.name = "S"
	return g
}

// T is Phase(π/4).
func T() *Gate {
	g := Phase(math.Pi / 4)
	g.name = "T"
	return g
}

// RX rotates about the X axis: [[cos θ/2, -i·sin θ/2], [-i·sin θ/2, cos θ/2]].
func RX(theta float64) *Gate {
	c, s := math.Cos(theta/2), math.Sin(theta/2)
	return NewGate(fmt.Sprintf("RX(%g)", theta), [2][2]Complex{
		{NewComplex(c, 0), NewComplex(0, -s)},
		{NewComplex(0, -s), NewComplex(c, 0)},
	})
}

// RY rotates about the Y axis: [[cos θ/2, -sin θ/2], [sin θ/2, cos θ/2]].
func RY(theta float64) *Gate {
	c, s := math.Cos(theta/2), math.Sin(theta/2)
	return NewGate(fmt.Sprintf("RY(%g)", theta), [2][2]Complex{
		{NewComplex(c, 0), NewComplex(-s, 0)},
		{NewComplex(s, 0), NewComplex(c, 0)},
	})
}

// RZ rotates about the Z axis: [[e^{-iθ/2}, 0], [0, e^{iθ/2}]].
func RZ(theta float64) *Gate {
	return NewGate(fmt.Sprintf("RZ(%g)", theta), [2][2]Complex{
		{ExpI(-theta / 2), NewComplex(0, 0)},
		{NewComplex(0, 0), ExpI(theta / 2)},
	})
}

func (g *Gate) Name() string   { return g.name }
func (g *Gate) Kind() GateKind { return g.kind }
func (g *Gate) String() string { return g.name }

// Matrix returns a copy of the gate's matrix.
func (g *Gate) Matrix() [2][2]Complex {
	return g.matrix
}

/*
ApplyTo multiplies the matrix with the amplitude vector:

	alpha' = M00·alpha + M01·beta
	beta'  = M10·alpha + M11·beta

The result goes through NewQubit, so a malformed matrix is reported as
ErrInvalidState here.
*/
func (g *Gate) ApplyTo(q *Qubit) (*Qubit, error) {
	m := g.matrix
	alpha := m[0][0].Multiply(q.alpha).Add(m[0][1].Multiply(q.beta))
	beta := m[1][0].Multiply(q.alpha).Add(m[1][1].Multiply(q.beta))

	next, err := NewQubit(alpha, beta)
	if err != nil {
		return nil, fmt.Errorf("gate %s: %w", g.name, err)
	}

	return next, nil
}

// Validate reports whether U†U is the identity within 1e-9 per entry.
func (g *Gate) Validate() bool {
	identity := [2][2]Complex{
		{NewComplex(1, 0), NewComplex(0, 0)},
		{NewComplex(0, 0), NewComplex(1, 0)},
	}

	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			// (U†U)ij = Σk conj(Uki)·Ukj
			var sum Complex
			for k := 0; k < 2; k++ {
				sum = sum.Add(g.matrix[k][i].Conjugate().Multiply(g.matrix[k][j]))
			}

			if !sum.Equal(identity[i][j], unitaryTolerance) {
				return false
			}
		}
	}

	return true
}
