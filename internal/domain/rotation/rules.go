// Package rotation scores a player's fight against per-spec play-pattern
// rules resolved from benchmark data or static fallback tables.
package rotation

import "github.com/raidsight/raidsight/internal/domain/types"

// Source records where a scoring run's rules came from. The label changes
// downstream behavior: encounter-context modifiers apply only to default
// rules, because benchmark targets already encode realized encounter
// difficulty.
type Source string

// Rule sources.
const (
	SourceBenchmark Source = "benchmark"
	SourceDefault   Source = "default"
)

// Rules is the resolved threshold set for one scoring run. Immutable once
// resolved.
type Rules struct {
	GCDTarget              float64
	CPMTarget              float64
	CDEfficiencyTarget     float64
	LongCDEfficiencyTarget float64
	KeyAbilities           []string
	Role                   types.Role
	HealerOverhealTarget   float64
}

// EncounterContext is a per-encounter modifier reflecting downtime and
// movement that legitimately lower achievable uptime. MeleeModifier, when
// set, overrides GCDModifier for melee roles.
type EncounterContext struct {
	GCDModifier   float64
	MeleeModifier *float64
}

// DefaultEncounterContext applies no adjustment.
func DefaultEncounterContext() EncounterContext {
	return EncounterContext{GCDModifier: 1.0}
}

// apply scales the uptime-sensitive targets. Only called for SourceDefault.
func (c EncounterContext) apply(r Rules) Rules {
	modifier := c.GCDModifier
	if r.Role.Melee() && c.MeleeModifier != nil {
		modifier = *c.MeleeModifier
	}
	if modifier <= 0 {
		return r
	}
	r.GCDTarget *= modifier
	r.CPMTarget *= modifier
	return r
}
