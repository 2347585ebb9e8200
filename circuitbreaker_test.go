package qsim

import (
	"sync"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestCircuitBreaker(t *testing.T) {
	Convey("Given a circuit breaker allowing 3 failures", t, func() {
		cb := NewCircuitBreaker(3)

		So(cb.State(), ShouldEqual, BreakerClosed)
		So(cb.Allow(), ShouldBeTrue)

		Convey("When failures reach the threshold", func() {
			for i := 0; i < 3; i++ {
				cb.RecordFailure()
			}

			Convey("Then it opens and stays open", func() {
				So(cb.State(), ShouldEqual, BreakerOpen)
				So(cb.Allow(), ShouldBeFalse)

				cb.RecordSuccess()
				So(cb.Allow(), ShouldBeFalse)
			})
		})

		Convey("When a success interrupts the failures", func() {
			cb.RecordFailure()
			cb.RecordFailure()
			cb.RecordSuccess()
			cb.RecordFailure()

			Convey("Then it stays closed", func() {
				So(cb.State(), ShouldEqual, BreakerClosed)
			})
		})

		Convey("When failures are recorded concurrently", func() {
			var wg sync.WaitGroup
			for i := 0; i < 10; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					cb.RecordFailure()
				}()
			}
			wg.Wait()

			So(cb.Allow(), ShouldBeFalse)
		})
	})

	Convey("Given a breaker with no threshold", t, func() {
		cb := NewCircuitBreaker(0)
		for i := 0; i < 100; i++ {
			cb.RecordFailure()
		}
		So(cb.Allow(), ShouldBeTrue)
	})
}
