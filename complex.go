package qsim

import (
	"math"
	"strconv"
)

/*
Complex is an immutable complex number. Every arithmetic operation returns a
new value, so amplitudes can be shared freely between qubits and gates.
*/
type Complex struct {
	Real float64
	Imag float64
}

// NewComplex builds real + imag·i.
func NewComplex(real, imag float64) Complex {
	return Complex{Real: real, Imag: imag}
}

// ExpI returns e^{iθ} = cos θ + i·sin θ.
func ExpI(theta float64) Complex {
	return Complex{Real: math.Cos(theta), Imag: math.Sin(theta)}
}

func (c Complex) Add(other Complex) Complex {
	return Complex{Real: c.Real + other.Real, Imag: c.Imag + other.Imag}
}

func (c Complex) Sub(other Complex) Complex {
	return Complex{Real: c.Real - other.Real, Imag: c.Imag - other.Imag}
}

// Multiply computes (a+bi)(c+di) = (ac-bd) + (ad+bc)i.
func (c Complex) Multiply(other Complex) Complex {
	return Complex{
		Real: c.Real*other.Real - c.Imag*other.Imag,
		Imag: c.Real*other.Imag + c.Imag*other.Real,
	}
}

func (c Complex) Scale(factor float64) Complex {
	return Complex{Real: c.Real * factor, Imag: c.Imag * factor}
}

// Magnitude is the Euclidean norm sqrt(real² + imag²).
func (c Complex) Magnitude() float64 {
	return math.Sqrt(c.Real*c.Real + c.Imag*c.Imag)
}

func (c Complex) Conjugate() Complex {
	return Complex{Real: c.Real, Imag: -c.Imag}
}

// Equal reports whether both components are within tol of other's.
func (c Complex) Equal(other Complex, tol float64) bool {
	return math.Abs(c.Real-other.Real) <= tol && math.Abs(c.Imag-other.Imag) <= tol
}

/*
String renders the number as "a+bi" or "a-bi". Negative zero is printed as
zero on both components so that state dumps stay stable across gates that
flip signs of empty amplitudes.
*/
func (c Complex) String() string {
	sign := "+"
	if c.Imag < 0 {
		sign = "-"
	}

	return formatFloat(c.Real) + sign + formatFloat(math.Abs(c.Imag)) + "i"
}

// squaredMagnitude avoids the sqrt round trip when only |c|² is needed.
func (c Complex) squaredMagnitude() float64 {
	return c.Real*c.Real + c.Imag*c.Imag
}

func formatFloat(f float64) string {
	if f == 0 {
		f = 0
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func (c Complex) finite() bool {
	return !math.IsNaN(c.Real) && !math.IsInf(c.Real, 0) &&
		!math.IsNaN(c.Imag) && !math.IsInf(c.Imag, 0)
}
