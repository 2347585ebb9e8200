package qsim

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Op applies the gate registered under Gate to the qubit at Target.
type Op struct {
	Gate   string
	Target int
}

/*
Circuit is an ordered list of single-qubit operations over a fixed number of
qubits, plus any gates beyond the built-ins that those operations refer to.
A Circuit is a recipe: Build turns it into a fresh Register every time, which
is what the shot runner relies on.
*/
type Circuit struct {
	Qubits int
	Ops    []Op
	Gates  map[string]*Gate
}

/*
NewCircuit returns an empty circuit for a register of the given size. The size
is only checked by Build.
*/
func NewCircuit(qubits int) *Circuit {
	return &Circuit{
		Qubits: qubits,
		Ops:    make([]Op, 0),
		Gates:  make(map[string]*Gate),
	}
}

// Add appends an operation.
func (c *Circuit) Add(gate string, target int) *Circuit {
	c.Ops = append(c.Ops, Op{Gate: gate, Target: target})
	return c
}

// Define registers a gate under name for every register the circuit builds.
func (c *Circuit) Define(name string, gate *Gate) *Circuit {
	c.Gates[name] = gate
	return c
}

/*
Build creates a register of c.Qubits slots and applies every operation in
order. The first failing operation aborts the build.
*/
func (c *Circuit) Build(opts ...RegisterOption) (*Register, error) {
	opts = append(opts, WithGates(c.Gates))

	reg, err := NewRegister(c.Qubits, opts...)
	if err != nil {
		return nil, err
	}

	for n, op := range c.Ops {
		if err := reg.ApplyGate(op.Gate, op.Target); err != nil {
			return nil, fmt.Errorf("op %d (%s:%d): %w", n, op.Gate, op.Target, err)
		}
	}

	return reg, nil
}

func (c *Circuit) String() string {
	parts := make([]string, len(c.Ops))
	for i, op := range c.Ops {
		parts[i] = op.Gate + ":" + strconv.Itoa(op.Target)
	}
	return strings.Join(parts, " ")
}

var parameterized = regexp.MustCompile(`^(P|RX|RY|RZ)\((.+)\)$`)

/*
ParseCircuit reads operations written as NAME:INDEX, separated by spaces or
commas, for example "H:0 X:1 P(pi/4):1". The parameterized names P, RX, RY
and RZ define their gate on the fly; any other name must be a built-in or be
defined on the returned circuit before it is built.
*/
func ParseCircuit(qubits int, text string) (*Circuit, error) {
	c := NewCircuit(qubits)

	tokens := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})

	for _, token := range tokens {
		sep := strings.LastIndex(token, ":")
		if sep <= 0 || sep == len(token)-1 {
			return nil, fmt.Errorf("%w: malformed operation %q", ErrInvalidArgument, token)
		}

		name := token[:sep]
		target, err := strconv.Atoi(token[sep+1:])
		if err != nil {
			return nil, fmt.Errorf("%w: bad qubit index in %q", ErrInvalidArgument, token)
		}

		if m := parameterized.FindStringSubmatch(name); m != nil {
			theta, err := parseAngle(m[2])
			if err != nil {
				return nil, fmt.Errorf("%w: bad angle in %q", ErrInvalidArgument, token)
			}
			c.Define(name, angleGate(m[1], theta))
		}

		c.Add(name, target)
	}

	return c, nil
}

func angleGate(family string, theta float64) *Gate {
	switch family {
	case "RX":
		return RX(theta)
	case "RY":
		return RY(theta)
	case "RZ":
		return RZ(theta)
	default:
		return Phase(theta)
	}
}

/*
parseAngle accepts plain floats and the forms pi, -pi, pi/N, k*pi, k*pi/N.
The result is always finite: nan and inf are rejected.
*/
func parseAngle(s string) (float64, error) {
	s = strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), " ", "")

	theta, err := parseAngleValue(s)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(theta) || math.IsInf(theta, 0) {
		return 0, fmt.Errorf("angle %q is not finite", s)
	}

	return theta, nil
}

func parseAngleValue(s string) (float64, error) {
	if !strings.Contains(s, "pi") {
		return strconv.ParseFloat(s, 64)
	}

	num, den, _ := strings.Cut(s, "/")
	factor := 1.0

	coeff := strings.TrimSuffix(strings.TrimSuffix(num, "pi"), "*")
	switch coeff {
	case "":
	case "-":
		factor = -1
	default:
		f, err := strconv.ParseFloat(coeff, 64)
		if err != nil {
			return 0, err
		}
		factor = f
	}

	if !strings.HasSuffix(num, "pi") {
		return 0, fmt.Errorf("unsupported angle %q", s)
	}

	if den != "" {
		d, err := strconv.ParseFloat(den, 64)
		if err != nil || d == 0 {
			return 0, fmt.Errorf("unsupported angle %q", s)
		}
		factor /= d
	}

	return factor * math.Pi, nil
}
