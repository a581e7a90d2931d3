package telemetry_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/raidsight/raidsight/internal/adapters/telemetry"
	. "github.com/smartystreets/goconvey/convey"
)

func TestTransient(t *testing.T) {
	Convey("Given the retry classifier", t, func() {
		Convey("Rate limits and server errors are transient", func() {
			So(telemetry.Transient(&telemetry.StatusError{Code: 429}), ShouldBeTrue)
			So(telemetry.Transient(&telemetry.StatusError{Code: 500}), ShouldBeTrue)
			So(telemetry.Transient(&telemetry.StatusError{Code: 503}), ShouldBeTrue)
			So(telemetry.Transient(telemetry.ErrRateLimited), ShouldBeTrue)
		})

		Convey("Client contract failures are not", func() {
			So(telemetry.Transient(&telemetry.StatusError{Code: 400}), ShouldBeFalse)
			So(telemetry.Transient(&telemetry.StatusError{Code: 403}), ShouldBeFalse)
			So(telemetry.Transient(telemetry.ErrNotFound), ShouldBeFalse)
		})

		Convey("Cancellation is never retried", func() {
			So(telemetry.Transient(context.Canceled), ShouldBeFalse)
			So(telemetry.Transient(context.DeadlineExceeded), ShouldBeFalse)
		})

		Convey("Wrapped errors keep their classification", func() {
			wrapped := fmt.Errorf("fetch report: %w", &telemetry.StatusError{Code: 502})
			So(telemetry.Transient(wrapped), ShouldBeTrue)
			So(telemetry.Transient(fmt.Errorf("fetch: %w", telemetry.ErrNotFound)), ShouldBeFalse)
		})

		Convey("Plain connection failures are transient", func() {
			So(telemetry.Transient(errors.New("connection reset by peer")), ShouldBeTrue)
		})
	})
}
