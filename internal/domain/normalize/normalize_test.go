package normalize_test

import (
	"testing"

	"github.com/raidsight/raidsight/internal/domain/model"
	"github.com/raidsight/raidsight/internal/domain/normalize"
	. "github.com/smartystreets/goconvey/convey"
)

func TestEvents(t *testing.T) {
	Convey("Given an actor table with two players", t, func() {
		actors := map[int]string{1: "Aeris", 2: "Borin"}
		amount := func(v int) *int { return &v }

		Convey("When a well-formed cast record is normalized", func() {
			raw := []normalize.RawEvent{{
				Timestamp: 1_000,
				Type:      "cast",
				SourceID:  1,
				TargetID:  2,
				Ability:   &normalize.RawAbility{GUID: 100, Name: "Flash Heal"},
			}}
			out := normalize.Events(raw, actors)

			Convey("Then the event carries actor, target and ability", func() {
				So(out, ShouldHaveLength, 1)
				So(out[0].Actor, ShouldEqual, "Aeris")
				So(out[0].Target, ShouldEqual, "Borin")
				So(out[0].Kind, ShouldEqual, model.KindCastComplete)
				So(out[0].AbilityName, ShouldEqual, "Flash Heal")
			})
		})

		Convey("When the source actor is not in the player table", func() {
			raw := []normalize.RawEvent{{
				Timestamp: 1_000, Type: "cast", SourceID: 99,
				Ability: &normalize.RawAbility{GUID: 100, Name: "Cleave"},
			}}
			out := normalize.Events(raw, actors)

			Convey("Then the record is dropped", func() {
				So(out, ShouldBeEmpty)
			})
		})

		Convey("When the ability block is missing", func() {
			raw := []normalize.RawEvent{{Timestamp: 1_000, Type: "begincast", SourceID: 1}}
			out := normalize.Events(raw, actors)

			Convey("Then the name falls back to a placeholder", func() {
				So(out, ShouldHaveLength, 1)
				So(out[0].AbilityName, ShouldEqual, "Spell-0")
				So(out[0].Kind, ShouldEqual, model.KindCastBegin)
			})
		})

		Convey("When a resource record is incomplete", func() {
			raw := []normalize.RawEvent{
				{Timestamp: 1_000, Type: "resourcechange", SourceID: 1, ResourceType: "mana"},
				{Timestamp: 2_000, Type: "resourcechange", SourceID: 1, Amount: amount(40)},
				{Timestamp: 3_000, Type: "resourcechange", SourceID: 1, ResourceType: "mana", Amount: amount(40)},
			}
			out := normalize.Events(raw, actors)

			Convey("Then only the complete record survives", func() {
				So(out, ShouldHaveLength, 1)
				So(out[0].ResourceKind, ShouldEqual, "mana")
				So(out[0].ResourceValue, ShouldEqual, 40)
				So(out[0].HasResource, ShouldBeTrue)
			})
		})

		Convey("When records carry unknown types or negative timestamps", func() {
			raw := []normalize.RawEvent{
				{Timestamp: 1_000, Type: "damage", SourceID: 1},
				{Timestamp: -5, Type: "cast", SourceID: 1},
				{Timestamp: 2_000, Type: "death", SourceID: 2},
			}
			out := normalize.Events(raw, actors)

			Convey("Then only recognized, valid records survive", func() {
				So(out, ShouldHaveLength, 1)
				So(out[0].Kind, ShouldEqual, model.KindDeath)
			})
		})

		Convey("When records arrive out of order", func() {
			raw := []normalize.RawEvent{
				{Timestamp: 3_000, Type: "cast", SourceID: 1},
				{Timestamp: 1_000, Type: "cast", SourceID: 2},
				{Timestamp: 2_000, Type: "cast", SourceID: 1},
			}
			out := normalize.Events(raw, actors)

			Convey("Then the output is sorted by timestamp", func() {
				So(out, ShouldHaveLength, 3)
				So(out[0].Timestamp, ShouldEqual, 1_000)
				So(out[1].Timestamp, ShouldEqual, 2_000)
				So(out[2].Timestamp, ShouldEqual, 3_000)
			})
		})
	})
}
