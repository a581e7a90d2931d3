package rotation_test

import (
	"testing"

	"github.com/raidsight/raidsight/internal/domain/model"
	"github.com/raidsight/raidsight/internal/domain/rotation"
	"github.com/raidsight/raidsight/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func casterRules() rotation.Rules {
	return rotation.Rules{
		GCDTarget:              85,
		CPMTarget:              35,
		CDEfficiencyTarget:     80,
		LongCDEfficiencyTarget: 60,
		Role:                   types.RoleCaster,
	}
}

func TestScore(t *testing.T) {
	Convey("Given caster rules", t, func() {
		rules := casterRules()

		Convey("When every checked rule passes", func() {
			metrics := rotation.PlayerMetrics{
				Cast: &model.CastMetric{GCDUptimePct: 91, CastsPerMinute: 38},
			}
			report := rotation.Score("Aeris", "Priest", "Shadow", metrics, rules, rotation.SourceDefault)

			Convey("Then the score is 100 and the grade is S", func() {
				So(report.Status, ShouldEqual, rotation.StatusScored)
				So(report.Checked, ShouldEqual, 2)
				So(report.Passed, ShouldEqual, 2)
				So(report.Score, ShouldAlmostEqual, 100.0, 1e-9)
				So(report.Grade, ShouldEqual, types.GradeS)
			})
		})

		Convey("When no evidence exists at all", func() {
			report := rotation.Score("Aeris", "Priest", "Shadow", rotation.PlayerMetrics{}, rules, rotation.SourceDefault)

			Convey("Then the outcome is no_data, not a zero score", func() {
				So(report.Status, ShouldEqual, rotation.StatusNoData)
				So(report.Checked, ShouldEqual, 0)
				So(report.Score, ShouldEqual, 0.0)
				So(report.Grade, ShouldEqual, types.GradeNone)
				So(report.Message, ShouldContainSubstring, "no data")
			})
		})

		Convey("When cooldowns straddle the long-cooldown cutoff", func() {
			metrics := rotation.PlayerMetrics{
				Cooldowns: []model.CooldownRecord{
					{AbilityName: "Shadowfiend", CooldownMS: 300_000, TimesUsed: 2, EfficiencyPct: 65},
					{AbilityName: "Inner Focus", CooldownMS: 180_000, TimesUsed: 3, EfficiencyPct: 65},
					{AbilityName: "Trinket", CooldownMS: 120_000, TimesUsed: 0},
				},
			}
			report := rotation.Score("Aeris", "Priest", "Shadow", metrics, rules, rotation.SourceDefault)

			Convey("Then long cooldowns get the lower target and unused ones no rule", func() {
				So(report.Checked, ShouldEqual, 2)
				So(report.Rules[0].Name, ShouldEqual, "cooldown_efficiency:Shadowfiend")
				So(report.Rules[0].Passed, ShouldBeTrue)
				So(report.Rules[1].Name, ShouldEqual, "cooldown_efficiency:Inner Focus")
				So(report.Rules[1].Passed, ShouldBeFalse)
			})
		})

		Convey("When half the rules fail", func() {
			metrics := rotation.PlayerMetrics{
				Cast: &model.CastMetric{GCDUptimePct: 91, CastsPerMinute: 20},
			}
			report := rotation.Score("Aeris", "Priest", "Shadow", metrics, rules, rotation.SourceDefault)

			Convey("Then the score and grade track the pass ratio", func() {
				So(report.Score, ShouldAlmostEqual, 50.0, 1e-9)
				So(report.Grade, ShouldEqual, types.GradeD)
			})
		})
	})

	Convey("Given tank rules", t, func() {
		rules := rotation.Rules{Role: types.RoleTank}
		metrics := rotation.PlayerMetrics{
			Cast: &model.CastMetric{GCDUptimePct: 99, CastsPerMinute: 50},
		}
		report := rotation.Score("Borin", "Warrior", "Protection", metrics, rules, rotation.SourceDefault)

		Convey("Then scoring is unsupported regardless of evidence", func() {
			So(report.Status, ShouldEqual, rotation.StatusUnsupported)
			So(report.Checked, ShouldEqual, 0)
			So(report.Message, ShouldEqual, "tank scoring coming soon")
		})
	})

	Convey("Given healer rules", t, func() {
		rules := rotation.Rules{
			GCDTarget:            70,
			CPMTarget:            25,
			CDEfficiencyTarget:   80,
			Role:                 types.RoleHealer,
			HealerOverhealTarget: 30,
			KeyAbilities:         []string{"Prayer of Healing", "Renew"},
		}
		overheal := 22.0

		Convey("When mana time-at-zero sits in the caution band", func() {
			metrics := rotation.PlayerMetrics{
				OverhealPct: &overheal,
				Resource:    &model.ResourceSnapshot{TimeAtZeroPct: 7.0},
			}
			report := rotation.Score("Aeris", "Priest", "Holy", metrics, rules, rotation.SourceDefault)

			Convey("Then mana management passes with a caution detail", func() {
				var mana rotation.RuleResult
				for _, r := range report.Rules {
					if r.Name == "mana_management" {
						mana = r
					}
				}
				So(mana.Passed, ShouldBeTrue)
				So(mana.Detail, ShouldEqual, "caution")
			})

			Convey("And the overheal rule passes", func() {
				So(report.Rules[0].Name, ShouldEqual, "overheal")
				So(report.Rules[0].Passed, ShouldBeTrue)
			})
		})

		Convey("When mana time-at-zero exceeds 10%", func() {
			metrics := rotation.PlayerMetrics{
				Resource: &model.ResourceSnapshot{TimeAtZeroPct: 14.0},
			}
			report := rotation.Score("Aeris", "Priest", "Holy", metrics, rules, rotation.SourceDefault)

			Convey("Then mana management fails with a risk detail", func() {
				So(report.Rules[0].Passed, ShouldBeFalse)
				So(report.Rules[0].Detail, ShouldEqual, "risk")
			})
		})

		Convey("When an ability breakdown exists", func() {
			metrics := rotation.PlayerMetrics{
				AbilityBreakdown: map[string]float64{"Prayer of Healing": 60.0},
			}
			report := rotation.Score("Aeris", "Priest", "Holy", metrics, rules, rotation.SourceDefault)

			Convey("Then each key ability gets a usage rule", func() {
				So(report.Checked, ShouldEqual, 2)
				So(report.Rules[0].Name, ShouldEqual, "key_spell:Prayer of Healing")
				So(report.Rules[0].Passed, ShouldBeTrue)
				So(report.Rules[1].Name, ShouldEqual, "key_spell:Renew")
				So(report.Rules[1].Passed, ShouldBeFalse)
			})
		})

		Convey("When the breakdown is empty", func() {
			report := rotation.Score("Aeris", "Priest", "Holy", rotation.PlayerMetrics{}, rules, rotation.SourceDefault)

			Convey("Then no key-spell rules are checked", func() {
				So(report.Status, ShouldEqual, rotation.StatusNoData)
			})
		})
	})
}

func TestGradeFor(t *testing.T) {
	Convey("Given the grade bands", t, func() {
		So(types.GradeFor(100), ShouldEqual, types.GradeS)
		So(types.GradeFor(95), ShouldEqual, types.GradeS)
		So(types.GradeFor(94.9), ShouldEqual, types.GradeA)
		So(types.GradeFor(85), ShouldEqual, types.GradeA)
		So(types.GradeFor(75), ShouldEqual, types.GradeB)
		So(types.GradeFor(60), ShouldEqual, types.GradeC)
		So(types.GradeFor(40), ShouldEqual, types.GradeD)
		So(types.GradeFor(39.9), ShouldEqual, types.GradeF)
		So(types.GradeFor(0), ShouldEqual, types.GradeF)
	})
}
