// Package benchmark aggregates a corpus of top-performing kills into
// per-encounter statistical reference documents consulted by the rotation
// scorer.
package benchmark

import (
	"time"

	"github.com/raidsight/raidsight/internal/domain/types"
)

// CooldownStat aggregates one tracked cooldown across a spec's sample.
type CooldownStat struct {
	AvgUses          float64 `json:"avg_uses"`
	AvgEfficiencyPct float64 `json:"avg_efficiency_pct"`
}

// AbilityContribution is one top-damage ability row, ranked by AvgPct.
type AbilityContribution struct {
	Name   string  `json:"name"`
	AvgPct float64 `json:"avg_pct"`
}

// SpecStat is the per-(spec, class) section of a benchmark document.
type SpecStat struct {
	SampleSize       int                     `json:"sample_size"`
	AvgThroughput    float64                 `json:"avg_throughput"`
	MedianThroughput float64                 `json:"median_throughput"`
	P75Throughput    float64                 `json:"p75_throughput"`
	AvgGCDUptimePct  float64                 `json:"avg_gcd_uptime_pct"`
	AvgCPM           float64                 `json:"avg_cpm"`
	TopAbilities     []AbilityContribution   `json:"top_abilities,omitempty"`
	BuffUptimes      map[string]float64      `json:"buff_uptimes,omitempty"`
	Cooldowns        map[string]CooldownStat `json:"cooldowns,omitempty"`
}

// Document is the computed statistical reference for one encounter. Each
// recomputation fully replaces the prior document; consumers never see a
// partial update.
type Document struct {
	EncounterID   int       `json:"encounter_id"`
	EncounterName string    `json:"encounter_name"`
	ComputedAt    time.Time `json:"computed_at"`

	KillCount        int     `json:"kill_count"`
	AvgDurationMS    float64 `json:"avg_duration_ms"`
	MedianDurationMS float64 `json:"median_duration_ms"`
	MinDurationMS    int64   `json:"min_duration_ms"`

	AvgDeaths    float64 `json:"avg_deaths"`
	ZeroDeathPct float64 `json:"zero_death_pct"`

	// SpecStats is keyed by types.SpecKey, e.g. "Shadow Priest".
	SpecStats map[string]SpecStat `json:"spec_stats"`

	ConsumableRates map[string]float64 `json:"consumable_rates,omitempty"`
	AvgComposition  map[string]float64 `json:"avg_composition,omitempty"`
}

// SpecStat looks up the section for a (class, spec) pair.
func (d *Document) SpecStatFor(class, spec string) (SpecStat, bool) {
	if d == nil || d.SpecStats == nil {
		return SpecStat{}, false
	}
	s, ok := d.SpecStats[types.SpecKey(class, spec)]
	return s, ok
}

// CooldownUse is one player-fight's usage of a tracked cooldown.
type CooldownUse struct {
	Uses          int     `json:"uses"`
	EfficiencyPct float64 `json:"efficiency_pct"`
}

// PlayerSample is one player's contribution to the benchmark corpus from a
// single kill.
type PlayerSample struct {
	Name  string     `json:"name"`
	Class string     `json:"class"`
	Spec  string     `json:"spec"`
	Role  types.Role `json:"role"`

	// Throughput is the spec role's primary metric: damage per second for
	// damage roles, healing per second for healers.
	Throughput   float64 `json:"throughput"`
	GCDUptimePct float64 `json:"gcd_uptime_pct"`
	CPM          float64 `json:"cpm"`

	AbilityDamage map[string]float64     `json:"ability_damage,omitempty"`
	BuffUptimePct map[string]float64     `json:"buff_uptime_pct,omitempty"`
	CooldownUses  map[string]CooldownUse `json:"cooldown_uses,omitempty"`
	Consumables   []string               `json:"consumables,omitempty"`
}

// FightSample is one kill's worth of corpus data.
type FightSample struct {
	ReportCode    string         `json:"report_code"`
	FightID       int            `json:"fight_id"`
	EncounterID   int            `json:"encounter_id"`
	EncounterName string         `json:"encounter_name"`
	DurationMS    int64          `json:"duration_ms"`
	Deaths        int            `json:"deaths"`
	Players       []PlayerSample `json:"players"`
}
