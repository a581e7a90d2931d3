package rotation

import (
	"fmt"

	"github.com/raidsight/raidsight/internal/domain/model"
	"github.com/raidsight/raidsight/internal/domain/types"
)

// LongCooldownCutoffMS separates long cooldowns, which get the lower
// efficiency target, from short ones. Reference value 180s.
const LongCooldownCutoffMS = 180_000

// Mana time-at-zero bands for healers, in percent of fight duration.
const (
	manaZeroGoodPct    = 5.0
	manaZeroCautionPct = 10.0
)

// Status distinguishes scored results from the two outcomes that carry no
// number: no evidence at all, and roles we do not score yet.
type Status string

// Scoring statuses.
const (
	StatusScored      Status = "scored"
	StatusNoData      Status = "no_data"
	StatusUnsupported Status = "unsupported"
)

// PlayerMetrics is the evidence a scoring run evaluates. Nil/empty fields
// mean "no data" for the rules that need them; those rules are simply not
// checked.
type PlayerMetrics struct {
	Cast             *model.CastMetric
	Cooldowns        []model.CooldownRecord
	Resource         *model.ResourceSnapshot
	OverhealPct      *float64
	AbilityBreakdown map[string]float64
}

// RuleResult is one evaluated rule.
type RuleResult struct {
	Name   string
	Passed bool
	Target float64
	Actual float64
	Detail string
}

// Report is the outcome of one scoring run.
type Report struct {
	Player  string
	Class   string
	Spec    string
	Source  Source
	Status  Status
	Rules   []RuleResult
	Checked int
	Passed  int
	Score   float64
	Grade   types.Grade
	Message string
}

// Score evaluates the fixed rule set against a player's metrics. A rule is
// only checked when its prerequisite data exists; zero checked rules yields
// StatusNoData, which is a different outcome than a score of 0.
func Score(player, class, spec string, metrics PlayerMetrics, rules Rules, source Source) Report {
	report := Report{
		Player: player,
		Class:  class,
		Spec:   spec,
		Source: source,
	}

	if rules.Role == types.RoleTank {
		report.Status = StatusUnsupported
		report.Grade = types.GradeNone
		report.Message = "tank scoring coming soon"
		return report
	}

	if metrics.Cast != nil {
		report.add(RuleResult{
			Name:   "gcd_uptime",
			Passed: metrics.Cast.GCDUptimePct >= rules.GCDTarget,
			Target: rules.GCDTarget,
			Actual: metrics.Cast.GCDUptimePct,
		})
		report.add(RuleResult{
			Name:   "casts_per_minute",
			Passed: metrics.Cast.CastsPerMinute >= rules.CPMTarget,
			Target: rules.CPMTarget,
			Actual: metrics.Cast.CastsPerMinute,
		})
	}

	for _, cd := range metrics.Cooldowns {
		if cd.TimesUsed == 0 {
			continue // only cooldowns actually used produce a rule
		}
		target := rules.CDEfficiencyTarget
		if cd.CooldownMS > LongCooldownCutoffMS {
			target = rules.LongCDEfficiencyTarget
		}
		report.add(RuleResult{
			Name:   fmt.Sprintf("cooldown_efficiency:%s", cd.AbilityName),
			Passed: cd.EfficiencyPct >= target,
			Target: target,
			Actual: cd.EfficiencyPct,
		})
	}

	if rules.Role == types.RoleHealer {
		scoreHealer(&report, metrics, rules)
	}

	if report.Checked == 0 {
		report.Status = StatusNoData
		report.Grade = types.GradeNone
		report.Message = "no data for this player in this fight"
		return report
	}

	report.Status = StatusScored
	report.Score = float64(report.Passed) / float64(report.Checked) * 100
	report.Grade = types.GradeFor(report.Score)
	return report
}

func scoreHealer(report *Report, metrics PlayerMetrics, rules Rules) {
	if metrics.OverhealPct != nil && rules.HealerOverhealTarget > 0 {
		report.add(RuleResult{
			Name:   "overheal",
			Passed: *metrics.OverhealPct <= rules.HealerOverhealTarget,
			Target: rules.HealerOverhealTarget,
			Actual: *metrics.OverhealPct,
		})
	}

	if metrics.Resource != nil {
		pct := metrics.Resource.TimeAtZeroPct
		var band string
		switch {
		case pct <= manaZeroGoodPct:
			band = "good"
		case pct <= manaZeroCautionPct:
			band = "caution"
		default:
			band = "risk"
		}
		report.add(RuleResult{
			Name:   "mana_management",
			Passed: pct <= manaZeroCautionPct,
			Target: manaZeroCautionPct,
			Actual: pct,
			Detail: band,
		})
	}

	if len(metrics.AbilityBreakdown) > 0 {
		for _, ability := range rules.KeyAbilities {
			_, used := metrics.AbilityBreakdown[ability]
			report.add(RuleResult{
				Name:   fmt.Sprintf("key_spell:%s", ability),
				Passed: used,
			})
		}
	}
}

func (r *Report) add(rule RuleResult) {
	r.Rules = append(r.Rules, rule)
	r.Checked++
	if rule.Passed {
		r.Passed++
	}
}
