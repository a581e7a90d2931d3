// Package cooldowns measures how often tracked abilities were used against
// how often the fight allowed.
package cooldowns

import (
	"sort"

	"github.com/raidsight/raidsight/internal/domain/model"
)

// TrackedAbility is one catalog entry: an ability and its cooldown length.
type TrackedAbility struct {
	SpellID    int
	Name       string
	CooldownMS int64
}

// Catalog maps a class name to its tracked cooldowns. Supplied as external
// configuration; see DefaultCatalog for the built-in table.
type Catalog map[string][]TrackedAbility

// Compute builds one CooldownRecord per (player, tracked ability) for the
// players listed in classes (player -> class). Zero duration or no events
// yields an empty slice.
func Compute(events []model.CombatEvent, window model.FightWindow, catalog Catalog, classes map[string]string) []model.CooldownRecord {
	duration := window.Duration()
	if duration == 0 || len(events) == 0 {
		return nil
	}

	// player -> spellID -> sorted use timestamps
	uses := make(map[string]map[int][]int64)
	for _, ev := range events {
		if ev.Kind != model.KindCastComplete {
			continue
		}
		spells := uses[ev.Actor]
		if spells == nil {
			spells = make(map[int][]int64)
			uses[ev.Actor] = spells
		}
		spells[ev.SpellID] = append(spells[ev.SpellID], ev.Timestamp)
	}

	players := make([]string, 0, len(classes))
	for p := range classes {
		players = append(players, p)
	}
	sort.Strings(players)

	var out []model.CooldownRecord
	for _, player := range players {
		tracked, ok := catalog[classes[player]]
		if !ok {
			continue
		}
		for _, ability := range tracked {
			if ability.CooldownMS <= 0 {
				continue
			}
			out = append(out, record(player, ability, uses[player][ability.SpellID], duration))
		}
	}
	return out
}

func record(player string, ability TrackedAbility, times []int64, duration int64) model.CooldownRecord {
	// The +1 accounts for a use available at time zero.
	maxPossible := int(duration/ability.CooldownMS) + 1

	r := model.CooldownRecord{
		Player:      player,
		SpellID:     ability.SpellID,
		AbilityName: ability.Name,
		CooldownMS:  ability.CooldownMS,
		TimesUsed:   len(times),
		MaxPossible: maxPossible,
	}
	if len(times) > 0 {
		sort.Slice(times, func(i, j int) bool { return times[i] < times[j] })
		first, last := times[0], times[len(times)-1]
		r.FirstUseMS = &first
		r.LastUseMS = &last

		// Haste and cooldown-reduction effects can legitimately beat the
		// floor estimate; clamp instead of reporting >100%.
		eff := float64(r.TimesUsed) / float64(maxPossible) * 100
		if eff > 100 {
			eff = 100
		}
		r.EfficiencyPct = eff
	}
	return r
}
