package fake_test

import (
	"context"
	"testing"

	"github.com/raidsight/raidsight/internal/adapters/telemetry/fake"
	. "github.com/smartystreets/goconvey/convey"
)

func TestDeterminism(t *testing.T) {
	Convey("Given the synthetic client", t, func() {
		ctx := context.Background()
		client := fake.New()

		Convey("When the same report is fetched twice", func() {
			metaA, errA := client.ReportMetadata(ctx, "DEMO")
			metaB, errB := client.ReportMetadata(ctx, "DEMO")
			So(errA, ShouldBeNil)
			So(errB, ShouldBeNil)

			eventsA, err := client.Events(ctx, "DEMO", metaA.Fights[0], []string{"cast", "begincast"})
			So(err, ShouldBeNil)
			eventsB, err := client.Events(ctx, "DEMO", metaB.Fights[0], []string{"cast", "begincast"})
			So(err, ShouldBeNil)

			Convey("Then both fetches are identical", func() {
				So(metaB, ShouldResemble, metaA)
				So(eventsB, ShouldResemble, eventsA)
			})
		})

		Convey("When leaderboard codes are fetched back", func() {
			clears, err := client.FastestClears(ctx, 711, 2)
			So(err, ShouldBeNil)
			So(clears, ShouldHaveLength, 2)

			Convey("Then each minted report reports its own encounter", func() {
				meta, err := client.ReportMetadata(ctx, clears[0].ReportCode)
				So(err, ShouldBeNil)
				So(meta.Fights[0].Encounter, ShouldEqual, 711)
			})
		})

		Convey("When a failing report is configured", func() {
			failing := fake.New(fake.WithFailingReports("BAD"))
			_, err := failing.ReportMetadata(ctx, "BAD")

			Convey("Then every fetch for it fails", func() {
				So(err, ShouldNotBeNil)
				_, err := failing.ReportMetadata(ctx, "GOOD")
				So(err, ShouldBeNil)
			})
		})
	})
}
