package qsim

import (
	"errors"
	"math"
	"strconv"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestNewRegister(t *testing.T) {
	Convey("Given a register size", t, func() {
		Convey("When it is positive", func() {
			reg, err := NewRegister(3)

			Convey("Then every qubit starts in |0⟩", func() {
				So(err, ShouldBeNil)
				So(reg.Size(), ShouldEqual, 3)
				for i := 0; i < 3; i++ {
					q, err := reg.Qubit(i)
					So(err, ShouldBeNil)
					So(q.Equal(Zero(), 0), ShouldBeTrue)
				}
			})

			Convey("Then the built-in gates are registered", func() {
				So(reg.GateNames(), ShouldResemble, []string{"H", "X", "Y", "Z"})
			})

			Convey("Then measuring all yields three zeros", func() {
				So(reg.MeasureAll(), ShouldResemble, []int{0, 0, 0})
			})
		})

		Convey("When it is zero or negative", func() {
			for _, n := range []int{0, -1} {
				reg, err := NewRegister(n)
				So(reg, ShouldBeNil)
				So(err, ShouldWrap, ErrInvalidArgument)
			}
		})
	})
}

func TestRegisterIndexing(t *testing.T) {
	Convey("Given a register of size 2", t, func() {
		reg, err := NewRegister(2)
		So(err, ShouldBeNil)

		Convey("Out of range indices fail with the index kind", func() {
			for _, i := range []int{-1, 2} {
				_, err := reg.Qubit(i)
				So(err, ShouldWrap, ErrIndexOutOfRange)

				var idxErr *IndexError
				So(errors.As(err, &idxErr), ShouldBeTrue)
				So(idxErr.Index, ShouldEqual, i)
				So(idxErr.Size, ShouldEqual, 2)

				_, err = reg.MeasureQubit(i)
				So(err, ShouldWrap, ErrIndexOutOfRange)

				So(reg.ApplyGate("H", i), ShouldWrap, ErrIndexOutOfRange)
			}
		})
	})
}

func TestRegisterApplyGate(t *testing.T) {
	Convey("Given a register of size 2", t, func() {
		reg, err := NewRegister(2, WithSource(FixedSource(0.5)))
		So(err, ShouldBeNil)

		Convey("When applying X to qubit 1", func() {
			So(reg.ApplyGate("X", 1), ShouldBeNil)

			Convey("Then only that slot changes", func() {
				So(reg.MeasureAll(), ShouldResemble, []int{0, 1})
				So(reg.StateString(), ShouldEqual,
					"(1+0i)|0⟩ + (0+0i)|1⟩, (0+0i)|0⟩ + (1+0i)|1⟩")
			})
		})

		Convey("When applying H to qubit 0", func() {
			So(reg.ApplyGate("H", 0), ShouldBeNil)

			Convey("Then the state string shows the superposition", func() {
				h := strconv.FormatFloat(1/math.Sqrt2, 'g', -1, 64)
				So(reg.StateString(), ShouldEqual,
					"("+h+"+0i)|0⟩ + ("+h+"+0i)|1⟩, (1+0i)|0⟩ + (0+0i)|1⟩")
				So(h, ShouldStartWith, "0.707106781186547")
			})

			Convey("Then repeated measurements sample the same distribution", func() {
				reg, err := NewRegister(1, WithSource(FixedSource(0.2, 0.8)))
				So(err, ShouldBeNil)
				So(reg.ApplyGate("H", 0), ShouldBeNil)

				first, _ := reg.MeasureQubit(0)
				second, _ := reg.MeasureQubit(0)
				third, _ := reg.MeasureQubit(0)
				So([]int{first, second, third}, ShouldResemble, []int{0, 1, 0})
			})
		})

		Convey("When the gate name is unknown", func() {
			err := reg.ApplyGate("Q", 0)

			Convey("Then it fails with the gate kind", func() {
				So(err, ShouldWrap, ErrGateNotFound)

				var gateErr *GateError
				So(errors.As(err, &gateErr), ShouldBeTrue)
				So(gateErr.Name, ShouldEqual, "Q")
			})
		})

		Convey("When the gate is not unitary", func() {
			bad := NewGate("BAD", [2][2]Complex{
				{NewComplex(2, 0), NewComplex(0, 0)},
				{NewComplex(0, 0), NewComplex(2, 0)},
			})
			So(reg.RegisterGate("BAD", bad), ShouldBeNil)

			err := reg.ApplyGate("BAD", 0)

			Convey("Then it fails with an invalid state and the slot is kept", func() {
				So(err, ShouldWrap, ErrInvalidState)
				q, _ := reg.Qubit(0)
				So(q.Equal(Zero(), 0), ShouldBeTrue)
			})
		})
	})
}

func TestRegisterGateRegistry(t *testing.T) {
	Convey("Given a register", t, func() {
		reg, err := NewRegister(1)
		So(err, ShouldBeNil)

		Convey("Registering a new name makes it applicable", func() {
			So(reg.RegisterGate("S", S()), ShouldBeNil)
			So(reg.ApplyGate("S", 0), ShouldBeNil)

			g, ok := reg.Gate("S")
			So(ok, ShouldBeTrue)
			So(g.Name(), ShouldEqual, "S")
		})

		Convey("Registering an existing name overwrites it", func() {
			So(reg.RegisterGate("H", PauliX()), ShouldBeNil)
			So(reg.ApplyGate("H", 0), ShouldBeNil)

			q, _ := reg.Qubit(0)
			So(q.Equal(One(), tolerance), ShouldBeTrue)
		})

		Convey("The last registration wins", func() {
			So(reg.RegisterGate("G", PauliX()), ShouldBeNil)
			So(reg.RegisterGate("G", PauliZ()), ShouldBeNil)

			g, _ := reg.Gate("G")
			So(g.Kind(), ShouldEqual, KindPauliZ)
		})

		Convey("Registering without a name or gate is rejected", func() {
			So(reg.RegisterGate("", PauliX()), ShouldWrap, ErrInvalidArgument)
			So(reg.RegisterGate("N", nil), ShouldWrap, ErrInvalidArgument)
		})

		Convey("Gates passed at construction are registered", func() {
			reg, err := NewRegister(1, WithGates(map[string]*Gate{"T": T()}))
			So(err, ShouldBeNil)
			So(reg.GateNames(), ShouldContain, "T")
		})
	})
}

func TestRegisterReset(t *testing.T) {
	Convey("Given a register after arbitrary gates", t, func() {
		reg, err := NewRegister(4, WithSource(NewSeededSource(7)))
		So(err, ShouldBeNil)

		So(reg.RegisterGate("T", T()), ShouldBeNil)
		for i, name := range []string{"H", "X", "Y", "T"} {
			So(reg.ApplyGate(name, i), ShouldBeNil)
			So(reg.ApplyGate("H", (i+1)%4), ShouldBeNil)
		}

		Convey("When it is reset", func() {
			reg.Reset()

			Convey("Then every measurement is zero", func() {
				for i := 0; i < 20; i++ {
					So(reg.MeasureAll(), ShouldResemble, []int{0, 0, 0, 0})
				}
			})

			Convey("Then the registered gates survive", func() {
				_, ok := reg.Gate("T")
				So(ok, ShouldBeTrue)
			})
		})
	})
}
