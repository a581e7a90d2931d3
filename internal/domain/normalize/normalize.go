// Package normalize maps raw telemetry records into typed combat events.
//
// Normalization is a pure transform: malformed records are skipped one at a
// time, never failing a whole page, and events sourced by actors missing
// from the player table (NPCs, pets) are dropped.
package normalize

import (
	"fmt"
	"sort"

	"github.com/raidsight/raidsight/internal/domain/model"
)

// RawAbility is the ability block of a raw event record.
type RawAbility struct {
	GUID int    `json:"guid"`
	Name string `json:"name"`
}

// RawEvent is one record as returned by the log-hosting API. Fields that a
// given event type does not carry are left at their zero value.
type RawEvent struct {
	Timestamp    int64       `json:"timestamp"`
	Type         string      `json:"type"`
	SourceID     int         `json:"sourceID"`
	TargetID     int         `json:"targetID"`
	Ability      *RawAbility `json:"ability,omitempty"`
	ResourceType string      `json:"resourceType,omitempty"`
	Amount       *int        `json:"amount,omitempty"`
}

// Events converts one fight's raw records into ordered CombatEvents using
// the actor id -> name table. Records with an unknown source actor or an
// unrecognized type are dropped; a missing ability defaults to a
// "Spell-<id>" placeholder rather than failing the record.
func Events(raw []RawEvent, actors map[int]string) []model.CombatEvent {
	out := make([]model.CombatEvent, 0, len(raw))
	for i := range raw {
		ev, ok := one(&raw[i], actors)
		if !ok {
			continue
		}
		out = append(out, ev)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp < out[j].Timestamp })
	return out
}

func one(r *RawEvent, actors map[int]string) (model.CombatEvent, bool) {
	name, ok := actors[r.SourceID]
	if !ok || name == "" {
		return model.CombatEvent{}, false
	}
	if r.Timestamp < 0 {
		return model.CombatEvent{}, false
	}

	kind, ok := kindOf(r.Type)
	if !ok {
		return model.CombatEvent{}, false
	}

	ev := model.CombatEvent{
		Timestamp: r.Timestamp,
		Actor:     name,
		Kind:      kind,
	}
	if r.Ability != nil {
		ev.SpellID = r.Ability.GUID
		ev.AbilityName = r.Ability.Name
	}
	if ev.AbilityName == "" {
		ev.AbilityName = fmt.Sprintf("Spell-%d", ev.SpellID)
	}
	if target, ok := actors[r.TargetID]; ok {
		ev.Target = target
	}
	if kind == model.KindResourceChange {
		if r.ResourceType == "" || r.Amount == nil {
			return model.CombatEvent{}, false
		}
		ev.ResourceKind = r.ResourceType
		ev.ResourceValue = *r.Amount
		ev.HasResource = true
	}
	return ev, true
}

// kindOf retains only the event types the metric computers consume. Cast
// streams contribute "cast" and "begincast"; everything else from them is
// noise.
func kindOf(t string) (model.EventKind, bool) {
	switch t {
	case "cast":
		return model.KindCastComplete, true
	case "begincast":
		return model.KindCastBegin, true
	case "resourcechange":
		return model.KindResourceChange, true
	case "death":
		return model.KindDeath, true
	default:
		return "", false
	}
}
