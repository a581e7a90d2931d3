// Package cancels infers cancelled casts by diffing begin and completion
// counts. A cast that began but never completed was cancelled, moved, or
// interrupted; the source feed carries no explicit cancel event.
package cancels

import (
	"sort"

	"github.com/raidsight/raidsight/internal/domain/model"
)

// topListSize caps the ranked per-player cancelled-spell list.
const topListSize = 5

type spellCounts struct {
	name        string
	begins      int
	completions int
}

// Compute builds one CancelledCastSummary per player that produced any cast
// events. Players with zero begins keep a nil TopCancelled list.
func Compute(events []model.CombatEvent, window model.FightWindow) map[string]model.CancelledCastSummary {
	out := make(map[string]model.CancelledCastSummary)
	if window.Duration() == 0 || len(events) == 0 {
		return out
	}

	// player -> spellID -> counts
	counts := make(map[string]map[int]*spellCounts)
	for _, ev := range events {
		if ev.Kind != model.KindCastBegin && ev.Kind != model.KindCastComplete {
			continue
		}
		spells := counts[ev.Actor]
		if spells == nil {
			spells = make(map[int]*spellCounts)
			counts[ev.Actor] = spells
		}
		sc := spells[ev.SpellID]
		if sc == nil {
			sc = &spellCounts{name: ev.AbilityName}
			spells[ev.SpellID] = sc
		}
		if ev.Kind == model.KindCastBegin {
			sc.begins++
		} else {
			sc.completions++
		}
	}

	for player, spells := range counts {
		out[player] = summarize(player, spells)
	}
	return out
}

func summarize(player string, spells map[int]*spellCounts) model.CancelledCastSummary {
	s := model.CancelledCastSummary{Player: player}

	var ranked []model.SpellCancelCount
	for id, sc := range spells {
		s.TotalBegins += sc.begins
		s.TotalCompletions += sc.completions
		cancelled := sc.begins - sc.completions
		if cancelled < 0 {
			// Instant casts emit completions without begins.
			cancelled = 0
		}
		s.CancelCount += cancelled
		if cancelled > 0 {
			ranked = append(ranked, model.SpellCancelCount{
				SpellID:     id,
				AbilityName: sc.name,
				Begins:      sc.begins,
				Completions: sc.completions,
				Cancelled:   cancelled,
			})
		}
	}

	if s.TotalBegins > 0 {
		s.CancelPct = float64(s.CancelCount) / float64(s.TotalBegins) * 100

		sort.Slice(ranked, func(i, j int) bool {
			if ranked[i].Cancelled != ranked[j].Cancelled {
				return ranked[i].Cancelled > ranked[j].Cancelled
			}
			return ranked[i].SpellID < ranked[j].SpellID
		})
		if len(ranked) > topListSize {
			ranked = ranked[:topListSize]
		}
		s.TopCancelled = ranked
	}
	return s
}
