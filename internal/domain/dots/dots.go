// Package dots grades damage-over-time refresh quality. Recasting a DoT
// while the prior application still has a large remainder wastes the ticks
// it would have dealt ("clipping").
package dots

import (
	"sort"

	"github.com/raidsight/raidsight/internal/domain/model"
)

// earlyRefreshFraction is the remaining-duration fraction above which a
// refresh counts as early.
const earlyRefreshFraction = 0.30

// TrackedDot is one catalog entry: a DoT spell with its full duration and
// tick cadence.
type TrackedDot struct {
	SpellID        int
	Name           string
	DurationMS     int64
	TickIntervalMS int64
}

// Catalog maps class name to tracked DoT spells.
type Catalog map[string][]TrackedDot

// DefaultCatalog is the built-in per-class DoT table.
func DefaultCatalog() Catalog {
	return Catalog{
		"Warlock": {
			{SpellID: 30108, Name: "Unstable Affliction", DurationMS: 18_000, TickIntervalMS: 3_000},
			{SpellID: 27216, Name: "Corruption", DurationMS: 18_000, TickIntervalMS: 3_000},
			{SpellID: 27218, Name: "Curse of Agony", DurationMS: 24_000, TickIntervalMS: 2_000},
		},
		"Priest": {
			{SpellID: 25368, Name: "Shadow Word: Pain", DurationMS: 18_000, TickIntervalMS: 3_000},
			{SpellID: 25387, Name: "Vampiric Touch", DurationMS: 15_000, TickIntervalMS: 3_000},
		},
		"Druid": {
			{SpellID: 27013, Name: "Moonfire", DurationMS: 12_000, TickIntervalMS: 3_000},
			{SpellID: 26988, Name: "Insect Swarm", DurationMS: 12_000, TickIntervalMS: 2_000},
		},
		"Mage": {
			{SpellID: 27215, Name: "Ignite", DurationMS: 4_000, TickIntervalMS: 2_000},
		},
	}
}

// Compute walks consecutive completed casts of each tracked DoT and counts
// early refreshes plus the ticks they clipped. Spells with fewer than two
// casts are silently omitted.
func Compute(events []model.CombatEvent, window model.FightWindow, catalog Catalog, classes map[string]string) []model.DotRefreshSummary {
	if window.Duration() == 0 || len(events) == 0 {
		return nil
	}

	// player -> spellID -> sorted cast timestamps
	casts := make(map[string]map[int][]int64)
	for _, ev := range events {
		if ev.Kind != model.KindCastComplete {
			continue
		}
		spells := casts[ev.Actor]
		if spells == nil {
			spells = make(map[int][]int64)
			casts[ev.Actor] = spells
		}
		spells[ev.SpellID] = append(spells[ev.SpellID], ev.Timestamp)
	}

	players := make([]string, 0, len(classes))
	for p := range classes {
		players = append(players, p)
	}
	sort.Strings(players)

	var out []model.DotRefreshSummary
	for _, player := range players {
		tracked, ok := catalog[classes[player]]
		if !ok {
			continue
		}
		for _, dot := range tracked {
			times := casts[player][dot.SpellID]
			if len(times) < 2 {
				continue
			}
			out = append(out, analyze(player, dot, times))
		}
	}
	return out
}

func analyze(player string, dot TrackedDot, times []int64) model.DotRefreshSummary {
	sort.Slice(times, func(i, j int) bool { return times[i] < times[j] })

	s := model.DotRefreshSummary{
		Player:         player,
		SpellID:        dot.SpellID,
		AbilityName:    dot.Name,
		TotalRefreshes: len(times) - 1,
	}
	cutoff := float64(dot.DurationMS) * earlyRefreshFraction
	for i := 1; i < len(times); i++ {
		remaining := dot.DurationMS - (times[i] - times[i-1])
		if remaining <= 0 {
			continue // prior application expired before the recast
		}
		if float64(remaining) > cutoff {
			s.EarlyRefreshes++
			s.ClippedTicks += float64(remaining) / float64(dot.TickIntervalMS)
		}
	}
	s.EarlyRefreshPct = float64(s.EarlyRefreshes) / float64(s.TotalRefreshes) * 100
	return s
}
