package qsim

import (
	"fmt"
	"sort"
	"strings"
)

/*
Register is an ordered, fixed-size collection of independent qubits together
with the named gates that can be applied to them.

The register owns its slots: replacing slot i with the output of a gate is
the only way its state changes. It has no internal locking. Callers sharing a
register between goroutines must guard the whole register themselves, since a
gate application reads a slot and then writes it back.
*/
type Register struct {
	qubits []*Qubit
	gates  map[string]*Gate
	source Source
}

// RegisterOption configures a Register at construction.
type RegisterOption func(*Register)

// WithSource sets the randomness used by measurements.
func WithSource(src Source) RegisterOption {
	return func(r *Register) {
		if src != nil {
			r.source = src
		}
	}
}

// WithGates registers extra gates on top of the built-ins.
func WithGates(gates map[string]*Gate) RegisterOption {
	return func(r *Register) {
		for name, gate := range gates {
			if name != "" && gate != nil {
				r.gates[name] = gate
			}
		}
	}
}

/*
NewRegister creates n qubits in |0⟩ and registers H, X, Y and Z. Measurements
use the system source unless WithSource says otherwise.
*/
func NewRegister(n int, opts ...RegisterOption) (*Register, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: register size must be positive, got %d", ErrInvalidArgument, n)
	}

	r := &Register{
		qubits: make([]*Qubit, n),
		gates: map[string]*Gate{
			"H": Hadamard(),
			"X": PauliX(),
			"Y": PauliY(),
			"Z": PauliZ(),
		},
		source: SystemSource(),
	}

	for _, opt := range opts {
		opt(r)
	}

	r.Reset()
	return r, nil
}

// Size is the number of qubit slots.
func (r *Register) Size() int {
	return len(r.qubits)
}

/*
Qubit returns the qubit in slot i. Indices outside [0, Size) fail with an
*IndexError that wraps ErrIndexOutOfRange.
*/
func (r *Register) Qubit(i int) (*Qubit, error) {
	if i < 0 || i >= len(r.qubits) {
		return nil, &IndexError{Index: i, Size: len(r.qubits)}
	}
	return r.qubits[i], nil
}

/*
RegisterGate stores gate under name. An existing entry with the same name,
built-ins included, is overwritten: the last registration wins.
*/
func (r *Register) RegisterGate(name string, gate *Gate) error {
	if name == "" || gate == nil {
		return fmt.Errorf("%w: gate registration needs a name and a gate", ErrInvalidArgument)
	}

	r.gates[name] = gate
	return nil
}

// Gate looks up a registered gate by name.
func (r *Register) Gate(name string) (*Gate, bool) {
	gate, ok := r.gates[name]
	return gate, ok
}

// GateNames lists the registered gate names in sorted order.
func (r *Register) GateNames() []string {
	names := make([]string, 0, len(r.gates))
	for name := range r.gates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

/*
ApplyGate replaces slot i with the named gate applied to it. The slot is left
untouched when the lookup, the index or the resulting state is invalid.
*/
func (r *Register) ApplyGate(name string, i int) error {
	gate, ok := r.gates[name]
	if !ok {
		return &GateError{Name: name}
	}

	q, err := r.Qubit(i)
	if err != nil {
		return err
	}

	next, err := q.ApplyGate(gate)
	if err != nil {
		return fmt.Errorf("qubit %d: %w", i, err)
	}

	r.qubits[i] = next
	return nil
}

/*
MeasureQubit samples slot i with the register's source. The slot keeps its
amplitudes, so measuring it again draws from the same distribution.
*/
func (r *Register) MeasureQubit(i int) (int, error) {
	q, err := r.Qubit(i)
	if err != nil {
		return 0, err
	}
	return q.Measure(r.source), nil
}

// MeasureAll measures every qubit in index order.
func (r *Register) MeasureAll() []int {
	bits := make([]int, len(r.qubits))
	for i, q := range r.qubits {
		bits[i] = q.Measure(r.source)
	}
	return bits
}

// Reset returns every slot to |0⟩. Registered gates are kept.
func (r *Register) Reset() {
	for i := range r.qubits {
		r.qubits[i] = Zero()
	}
}

// StateString dumps each qubit as "(α)|0⟩ + (β)|1⟩", joined by ", ".
func (r *Register) StateString() string {
	parts := make([]string, len(r.qubits))
	for i, q := range r.qubits {
		parts[i] = q.String()
	}
	return strings.Join(parts, ", ")
}
