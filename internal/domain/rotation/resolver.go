package rotation

import (
	"github.com/raidsight/raidsight/internal/domain/benchmark"
	"github.com/raidsight/raidsight/internal/domain/types"
)

// Resolve picks the threshold set for a scoring run. The fallback order is
// literal and fixed: benchmark document -> static per-spec table -> static
// per-role table. The returned Source tells the caller whether encounter
// modifiers still apply.
func Resolve(doc *benchmark.Document, class, spec string) (Rules, Source) {
	role := RoleFor(class, spec)

	if stat, ok := doc.SpecStatFor(class, spec); ok && stat.SampleSize > 0 {
		return fromBenchmark(stat, role), SourceBenchmark
	}
	if rules, ok := specRules[types.SpecKey(class, spec)]; ok {
		return rules, SourceDefault
	}
	return roleRules[role], SourceDefault
}

// ResolveWithContext resolves rules and applies the encounter modifier when
// and only when the rules are not benchmark-sourced.
func ResolveWithContext(doc *benchmark.Document, class, spec string, encounterID int) (Rules, Source) {
	rules, source := Resolve(doc, class, spec)
	if source == SourceDefault {
		rules = ContextFor(encounterID).apply(rules)
	}
	return rules, source
}

// fromBenchmark derives targets from what top parses actually achieved for
// this spec on this encounter.
func fromBenchmark(stat benchmark.SpecStat, role types.Role) Rules {
	rules := Rules{
		GCDTarget:              stat.AvgGCDUptimePct,
		CPMTarget:              stat.AvgCPM,
		CDEfficiencyTarget:     defaultCDEfficiency,
		LongCDEfficiencyTarget: defaultLongCDEfficiency,
		Role:                   role,
	}
	if role == types.RoleHealer {
		rules.HealerOverhealTarget = defaultOverhealTarget
	}
	if len(stat.Cooldowns) > 0 {
		var sum float64
		for _, cd := range stat.Cooldowns {
			sum += cd.AvgEfficiencyPct
		}
		observed := sum / float64(len(stat.Cooldowns))
		if observed > 0 && observed < rules.CDEfficiencyTarget {
			rules.CDEfficiencyTarget = observed
		}
	}
	for _, ability := range stat.TopAbilities {
		rules.KeyAbilities = append(rules.KeyAbilities, ability.Name)
	}
	return rules
}
