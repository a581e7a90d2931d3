package benchmark_test

import (
	"testing"
	"time"

	"github.com/raidsight/raidsight/internal/domain/benchmark"
	"github.com/raidsight/raidsight/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func corpus() []benchmark.FightSample {
	return []benchmark.FightSample{
		{
			ReportCode:    "RPT-B",
			FightID:       2,
			EncounterID:   709,
			EncounterName: "Gruul the Dragonkiller",
			DurationMS:    240_000,
			Deaths:        2,
			Players: []benchmark.PlayerSample{
				{
					Name: "Aeris", Class: "Priest", Spec: "Shadow", Role: types.RoleCaster,
					Throughput: 900, GCDUptimePct: 90, CPM: 36,
					AbilityDamage: map[string]float64{
						"Mind Blast":  500,
						"Mind Flay":   480,
						"Starshards":  10, // 1% of total, below the cutoff
						"Shadow Bolt": 10,
					},
					BuffUptimePct: map[string]float64{"Inner Fire": 95, "Power Infusion": 8},
					CooldownUses:  map[string]benchmark.CooldownUse{"Shadowfiend": {Uses: 2, EfficiencyPct: 80}},
					Consumables:   []string{"flask", "food"},
				},
			},
		},
		{
			ReportCode:    "RPT-A",
			FightID:       5,
			EncounterID:   709,
			EncounterName: "Gruul the Dragonkiller",
			DurationMS:    300_000,
			Deaths:        0,
			Players: []benchmark.PlayerSample{
				{
					Name: "Umbra", Class: "Priest", Spec: "Shadow", Role: types.RoleCaster,
					Throughput: 1100, GCDUptimePct: 94, CPM: 40,
					BuffUptimePct: map[string]float64{"Inner Fire": 85},
					CooldownUses:  map[string]benchmark.CooldownUse{"Shadowfiend": {Uses: 1, EfficiencyPct: 60}},
					Consumables:   []string{"flask"},
				},
				{
					Name: "Borin", Class: "Warrior", Spec: "Fury", Role: types.RoleMelee,
					Throughput: 1300, GCDUptimePct: 96, CPM: 44,
				},
			},
		},
	}
}

func TestCompute(t *testing.T) {
	computedAt := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	Convey("Given an empty corpus", t, func() {
		_, ok := benchmark.Compute(709, nil, computedAt)

		Convey("Then no document is produced", func() {
			So(ok, ShouldBeFalse)
		})
	})

	Convey("Given two kill samples for one encounter", t, func() {
		doc, ok := benchmark.Compute(709, corpus(), computedAt)
		So(ok, ShouldBeTrue)

		Convey("Then the fight-level aggregates are correct", func() {
			So(doc.EncounterID, ShouldEqual, 709)
			So(doc.EncounterName, ShouldEqual, "Gruul the Dragonkiller")
			So(doc.KillCount, ShouldEqual, 2)
			So(doc.AvgDurationMS, ShouldAlmostEqual, 270_000, 1e-9)
			So(doc.MedianDurationMS, ShouldAlmostEqual, 270_000, 1e-9)
			So(doc.MinDurationMS, ShouldEqual, 240_000)
			So(doc.AvgDeaths, ShouldAlmostEqual, 1.0, 1e-9)
			So(doc.ZeroDeathPct, ShouldAlmostEqual, 50.0, 1e-9)
		})

		Convey("Then spec stats aggregate per spec key", func() {
			stat, found := doc.SpecStatFor("Priest", "Shadow")
			So(found, ShouldBeTrue)
			So(stat.SampleSize, ShouldEqual, 2)
			So(stat.AvgThroughput, ShouldAlmostEqual, 1000.0, 1e-9)
			So(stat.MedianThroughput, ShouldAlmostEqual, 1000.0, 1e-9)
			So(stat.P75Throughput, ShouldAlmostEqual, 1050.0, 1e-9)
			So(stat.AvgGCDUptimePct, ShouldAlmostEqual, 92.0, 1e-9)
			So(stat.AvgCPM, ShouldAlmostEqual, 38.0, 1e-9)

			warrior, found := doc.SpecStatFor("Warrior", "Fury")
			So(found, ShouldBeTrue)
			So(warrior.SampleSize, ShouldEqual, 1)
		})

		Convey("Then only abilities above 3% of a player's own total rank", func() {
			stat, _ := doc.SpecStatFor("Priest", "Shadow")
			So(stat.TopAbilities, ShouldHaveLength, 2)
			So(stat.TopAbilities[0].Name, ShouldEqual, "Mind Blast")
			So(stat.TopAbilities[0].AvgPct, ShouldAlmostEqual, 50.0, 1e-9)
			So(stat.TopAbilities[1].Name, ShouldEqual, "Mind Flay")
		})

		Convey("Then buffs below 20% average uptime are dropped", func() {
			stat, _ := doc.SpecStatFor("Priest", "Shadow")
			So(stat.BuffUptimes, ShouldContainKey, "Inner Fire")
			So(stat.BuffUptimes["Inner Fire"], ShouldAlmostEqual, 90.0, 1e-9)
			So(stat.BuffUptimes, ShouldNotContainKey, "Power Infusion")
		})

		Convey("Then cooldown usage averages across the sample", func() {
			stat, _ := doc.SpecStatFor("Priest", "Shadow")
			cd := stat.Cooldowns["Shadowfiend"]
			So(cd.AvgUses, ShouldAlmostEqual, 1.5, 1e-9)
			So(cd.AvgEfficiencyPct, ShouldAlmostEqual, 70.0, 1e-9)
		})

		Convey("Then consumable rates are shares of player-fights", func() {
			So(doc.ConsumableRates["flask"], ShouldAlmostEqual, 200.0/3.0, 0.001)
			So(doc.ConsumableRates["food"], ShouldAlmostEqual, 100.0/3.0, 0.001)
		})

		Convey("Then the average composition counts specs per kill", func() {
			So(doc.AvgComposition[types.SpecKey("Priest", "Shadow")], ShouldAlmostEqual, 1.0, 1e-9)
			So(doc.AvgComposition[types.SpecKey("Warrior", "Fury")], ShouldAlmostEqual, 0.5, 1e-9)
		})
	})

	Convey("Given the same corpus in a different order", t, func() {
		forward, _ := benchmark.Compute(709, corpus(), computedAt)
		reversed := corpus()
		reversed[0], reversed[1] = reversed[1], reversed[0]
		backward, _ := benchmark.Compute(709, reversed, computedAt)

		Convey("Then recomputation is deterministic", func() {
			So(backward, ShouldResemble, forward)
		})
	})
}

func TestPercentileEdges(t *testing.T) {
	Convey("Given a corpus with a single kill", t, func() {
		samples := corpus()[:1]
		doc, ok := benchmark.Compute(709, samples, time.Now().UTC())

		Convey("Then every duration statistic collapses to that kill", func() {
			So(ok, ShouldBeTrue)
			So(doc.AvgDurationMS, ShouldAlmostEqual, 240_000, 1e-9)
			So(doc.MedianDurationMS, ShouldAlmostEqual, 240_000, 1e-9)
			So(doc.MinDurationMS, ShouldEqual, 240_000)
			So(doc.ZeroDeathPct, ShouldEqual, 0.0)
		})
	})
}
