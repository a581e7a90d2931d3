// Package model contains domain models passed between layers.
package model

// EventKind classifies a normalized combat event.
type EventKind string

// Event kinds produced by the normalizer.
const (
	KindCastBegin      EventKind = "begincast"
	KindCastComplete   EventKind = "cast"
	KindResourceChange EventKind = "resourcechange"
	KindDeath          EventKind = "death"
)

// CombatEvent is one normalized, player-sourced combat-log event.
// Timestamps are milliseconds relative to the report start. Ordering within
// one actor is non-decreasing from the source feed but NOT guaranteed
// globally; consumers must sort explicitly.
type CombatEvent struct {
	Timestamp   int64
	Actor       string
	SpellID     int
	AbilityName string
	Kind        EventKind
	Target      string

	// Resource fields are set only for KindResourceChange events.
	ResourceKind  string
	ResourceValue int
	HasResource   bool
}

// FightWindow bounds one pull within a report.
type FightWindow struct {
	FightID   int
	Name      string
	Encounter int
	Kill      bool
	StartTime int64
	EndTime   int64
}

// Duration returns the fight length in milliseconds, never negative.
// A zero duration means "no data" to every metric computer.
func (w FightWindow) Duration() int64 {
	d := w.EndTime - w.StartTime
	if d < 0 {
		return 0
	}
	return d
}

// PlayerInfo identifies one player actor in a report.
type PlayerInfo struct {
	ID    int
	Name  string
	Class string
	Spec  string
}

// ReportMetadata is the per-report actor table and fight list.
type ReportMetadata struct {
	Code   string
	Title  string
	Actors map[int]PlayerInfo
	Fights []FightWindow
}

// ActorNames flattens the actor table into an id -> name lookup.
func (r ReportMetadata) ActorNames() map[int]string {
	names := make(map[int]string, len(r.Actors))
	for id, p := range r.Actors {
		names[id] = p.Name
	}
	return names
}
