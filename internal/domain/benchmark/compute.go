package benchmark

import (
	"sort"
	"time"

	"github.com/raidsight/raidsight/internal/domain/types"
)

// Aggregation cutoffs.
const (
	topAbilityMinPct = 3.0  // ability must be >=3% of the player's own total
	buffUptimeMinPct = 20.0 // buffs below 20% average uptime are dropped
	maxTopAbilities  = 10
)

// Compute aggregates all kill samples for one encounter into a Document.
// Returns false when the sample set is empty. The computation is pure and
// deterministic: the same corpus always yields the same document apart from
// the computedAt stamp.
func Compute(encounterID int, samples []FightSample, computedAt time.Time) (Document, bool) {
	if len(samples) == 0 {
		return Document{}, false
	}

	// Stable input order regardless of how the corpus was stored.
	sorted := make([]FightSample, len(samples))
	copy(sorted, samples)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].ReportCode != sorted[j].ReportCode {
			return sorted[i].ReportCode < sorted[j].ReportCode
		}
		return sorted[i].FightID < sorted[j].FightID
	})

	doc := Document{
		EncounterID: encounterID,
		ComputedAt:  computedAt,
		KillCount:   len(sorted),
		SpecStats:   make(map[string]SpecStat),
	}

	durations := make([]float64, 0, len(sorted))
	var deaths float64
	var zeroDeathKills int
	minDuration := sorted[0].DurationMS
	for _, s := range sorted {
		if doc.EncounterName == "" {
			doc.EncounterName = s.EncounterName
		}
		durations = append(durations, float64(s.DurationMS))
		deaths += float64(s.Deaths)
		if s.Deaths == 0 {
			zeroDeathKills++
		}
		if s.DurationMS < minDuration {
			minDuration = s.DurationMS
		}
	}
	doc.AvgDurationMS = mean(durations)
	doc.MedianDurationMS = median(durations)
	doc.MinDurationMS = minDuration
	doc.AvgDeaths = deaths / float64(len(sorted))
	doc.ZeroDeathPct = float64(zeroDeathKills) / float64(len(sorted)) * 100

	doc.SpecStats = specStats(sorted)
	doc.ConsumableRates = consumableRates(sorted)
	doc.AvgComposition = composition(sorted)
	return doc, true
}

type specAccumulator struct {
	throughput []float64
	gcdUptime  []float64
	cpm        []float64
	abilityPct map[string][]float64
	buffUptime map[string][]float64
	cdUses     map[string][]float64
	cdEff      map[string][]float64
}

func specStats(samples []FightSample) map[string]SpecStat {
	accs := make(map[string]*specAccumulator)
	for _, fight := range samples {
		for _, p := range fight.Players {
			key := types.SpecKey(p.Class, p.Spec)
			acc := accs[key]
			if acc == nil {
				acc = &specAccumulator{
					abilityPct: make(map[string][]float64),
					buffUptime: make(map[string][]float64),
					cdUses:     make(map[string][]float64),
					cdEff:      make(map[string][]float64),
				}
				accs[key] = acc
			}
			acc.throughput = append(acc.throughput, p.Throughput)
			acc.gcdUptime = append(acc.gcdUptime, p.GCDUptimePct)
			acc.cpm = append(acc.cpm, p.CPM)

			// Ability share of the player's own total damage.
			var total float64
			for _, dmg := range p.AbilityDamage {
				total += dmg
			}
			if total > 0 {
				for name, dmg := range p.AbilityDamage {
					pct := dmg / total * 100
					if pct >= topAbilityMinPct {
						acc.abilityPct[name] = append(acc.abilityPct[name], pct)
					}
				}
			}
			for name, up := range p.BuffUptimePct {
				acc.buffUptime[name] = append(acc.buffUptime[name], up)
			}
			for name, cd := range p.CooldownUses {
				acc.cdUses[name] = append(acc.cdUses[name], float64(cd.Uses))
				acc.cdEff[name] = append(acc.cdEff[name], cd.EfficiencyPct)
			}
		}
	}

	out := make(map[string]SpecStat, len(accs))
	for key, acc := range accs {
		stat := SpecStat{
			SampleSize:       len(acc.throughput),
			AvgThroughput:    mean(acc.throughput),
			MedianThroughput: median(acc.throughput),
			P75Throughput:    percentile(acc.throughput, 75),
			AvgGCDUptimePct:  mean(acc.gcdUptime),
			AvgCPM:           mean(acc.cpm),
			TopAbilities:     topAbilities(acc.abilityPct),
		}
		if len(acc.buffUptime) > 0 {
			buffs := make(map[string]float64)
			for name, ups := range acc.buffUptime {
				if avg := mean(ups); avg >= buffUptimeMinPct {
					buffs[name] = avg
				}
			}
			if len(buffs) > 0 {
				stat.BuffUptimes = buffs
			}
		}
		if len(acc.cdUses) > 0 {
			cds := make(map[string]CooldownStat, len(acc.cdUses))
			for name := range acc.cdUses {
				cds[name] = CooldownStat{
					AvgUses:          mean(acc.cdUses[name]),
					AvgEfficiencyPct: mean(acc.cdEff[name]),
				}
			}
			stat.Cooldowns = cds
		}
		out[key] = stat
	}
	return out
}

func topAbilities(abilityPct map[string][]float64) []AbilityContribution {
	if len(abilityPct) == 0 {
		return nil
	}
	ranked := make([]AbilityContribution, 0, len(abilityPct))
	for name, pcts := range abilityPct {
		ranked = append(ranked, AbilityContribution{Name: name, AvgPct: mean(pcts)})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].AvgPct != ranked[j].AvgPct {
			return ranked[i].AvgPct > ranked[j].AvgPct
		}
		return ranked[i].Name < ranked[j].Name
	})
	if len(ranked) > maxTopAbilities {
		ranked = ranked[:maxTopAbilities]
	}
	return ranked
}

// consumableRates computes, per consumable category, the share of tracked
// player-fights that used it.
func consumableRates(samples []FightSample) map[string]float64 {
	var playerFights int
	users := make(map[string]int)
	for _, fight := range samples {
		for _, p := range fight.Players {
			playerFights++
			seen := make(map[string]bool, len(p.Consumables))
			for _, category := range p.Consumables {
				if !seen[category] {
					seen[category] = true
					users[category]++
				}
			}
		}
	}
	if playerFights == 0 || len(users) == 0 {
		return nil
	}
	rates := make(map[string]float64, len(users))
	for category, n := range users {
		rates[category] = float64(n) / float64(playerFights) * 100
	}
	return rates
}

// composition averages how many of each spec appeared per kill.
func composition(samples []FightSample) map[string]float64 {
	totals := make(map[string]int)
	for _, fight := range samples {
		for _, p := range fight.Players {
			totals[types.SpecKey(p.Class, p.Spec)]++
		}
	}
	if len(totals) == 0 {
		return nil
	}
	avg := make(map[string]float64, len(totals))
	for key, n := range totals {
		avg[key] = float64(n) / float64(len(samples))
	}
	return avg
}
