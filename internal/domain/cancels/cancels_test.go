package cancels_test

import (
	"testing"

	"github.com/raidsight/raidsight/internal/domain/cancels"
	"github.com/raidsight/raidsight/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func event(actor string, spellID int, name string, kind model.EventKind) model.CombatEvent {
	return model.CombatEvent{
		Timestamp:   1_000,
		Actor:       actor,
		SpellID:     spellID,
		AbilityName: name,
		Kind:        kind,
	}
}

func TestCompute(t *testing.T) {
	Convey("Given a 60s fight window", t, func() {
		window := model.FightWindow{StartTime: 0, EndTime: 60_000}

		Convey("When a spell begins three times but completes once", func() {
			events := []model.CombatEvent{
				event("Aeris", 10, "Greater Heal", model.KindCastBegin),
				event("Aeris", 10, "Greater Heal", model.KindCastBegin),
				event("Aeris", 10, "Greater Heal", model.KindCastBegin),
				event("Aeris", 10, "Greater Heal", model.KindCastComplete),
			}
			out := cancels.Compute(events, window)

			Convey("Then two cancels are inferred and the spell is ranked", func() {
				s := out["Aeris"]
				So(s.TotalBegins, ShouldEqual, 3)
				So(s.TotalCompletions, ShouldEqual, 1)
				So(s.CancelCount, ShouldEqual, 2)
				So(s.CancelPct, ShouldAlmostEqual, 200.0/3.0, 0.001)
				So(s.TopCancelled, ShouldHaveLength, 1)
				So(s.TopCancelled[0].AbilityName, ShouldEqual, "Greater Heal")
				So(s.TopCancelled[0].Cancelled, ShouldEqual, 2)
			})
		})

		Convey("When a player only uses instant casts", func() {
			events := []model.CombatEvent{
				event("Borin", 20, "Bloodthirst", model.KindCastComplete),
				event("Borin", 20, "Bloodthirst", model.KindCastComplete),
			}
			out := cancels.Compute(events, window)

			Convey("Then completions never count as negative cancels", func() {
				s := out["Borin"]
				So(s.TotalBegins, ShouldEqual, 0)
				So(s.CancelCount, ShouldEqual, 0)
				So(s.CancelPct, ShouldEqual, 0.0)
				So(s.TopCancelled, ShouldBeNil)
			})
		})

		Convey("When more than five spells have cancels", func() {
			var events []model.CombatEvent
			for id := 1; id <= 7; id++ {
				// spell id doubles as the cancel count so ranking is verifiable
				for n := 0; n < id; n++ {
					events = append(events, event("Aeris", id, "Spell", model.KindCastBegin))
				}
			}
			out := cancels.Compute(events, window)

			Convey("Then only the five worst offenders are listed, in order", func() {
				s := out["Aeris"]
				So(s.TopCancelled, ShouldHaveLength, 5)
				So(s.TopCancelled[0].SpellID, ShouldEqual, 7)
				So(s.TopCancelled[4].SpellID, ShouldEqual, 3)
			})
		})

		Convey("When two spells tie on cancels", func() {
			events := []model.CombatEvent{
				event("Aeris", 30, "Flash Heal", model.KindCastBegin),
				event("Aeris", 12, "Renew", model.KindCastBegin),
			}
			out := cancels.Compute(events, window)

			Convey("Then the lower spell id ranks first", func() {
				s := out["Aeris"]
				So(s.TopCancelled[0].SpellID, ShouldEqual, 12)
				So(s.TopCancelled[1].SpellID, ShouldEqual, 30)
			})
		})

		Convey("When the fight has zero duration", func() {
			out := cancels.Compute(
				[]model.CombatEvent{event("Aeris", 10, "Greater Heal", model.KindCastBegin)},
				model.FightWindow{StartTime: 10, EndTime: 10},
			)

			Convey("Then the result is empty", func() {
				So(out, ShouldBeEmpty)
			})
		})
	})
}
