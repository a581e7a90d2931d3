// Package telemetry fetches raw combat-log pages from the remote
// log-hosting API. All calls honor context cancellation, consult a shared
// rate-limit tracker first, and retry transient failures with backoff.
package telemetry

import (
	"context"

	"github.com/raidsight/raidsight/internal/domain/model"
	"github.com/raidsight/raidsight/internal/domain/normalize"
)

// Ranking is one candidate report reference from a leaderboard index or a
// watched guild's upload list.
type Ranking struct {
	ReportCode  string `json:"reportCode"`
	FightID     int    `json:"fightID"`
	EncounterID int    `json:"encounterID"`
	DurationMS  int64  `json:"duration"`
}

// PlayerSummary is one player's row of a fight summary table.
type PlayerSummary struct {
	Name          string             `json:"name"`
	Class         string             `json:"class"`
	Spec          string             `json:"spec"`
	DamageDone    float64            `json:"damageDone"`
	HealingDone   float64            `json:"healingDone"`
	OverhealPct   float64            `json:"overhealPct"`
	AbilityDamage map[string]float64 `json:"abilityDamage,omitempty"`
	BuffUptimePct map[string]float64 `json:"buffUptimePct,omitempty"`
	Consumables   []string           `json:"consumables,omitempty"`
}

// Summary is the per-fight damage/healing table the benchmark corpus draws
// throughput, ability breakdowns, buffs, and consumables from.
type Summary struct {
	Deaths  int             `json:"deaths"`
	Players []PlayerSummary `json:"players"`
}

// Client is the telemetry collaborator contract the core consumes.
type Client interface {
	// ReportMetadata fetches the actor table and fight list for a report.
	ReportMetadata(ctx context.Context, code string) (model.ReportMetadata, error)

	// Events fetches all raw events of the given kinds inside a fight
	// window, following pagination internally.
	Events(ctx context.Context, code string, fight model.FightWindow, kinds []string) ([]normalize.RawEvent, error)

	// FightSummary fetches the summary table for one fight.
	FightSummary(ctx context.Context, code string, fightID int) (Summary, error)

	// FastestClears lists top reports for an encounter from the speed
	// leaderboard.
	FastestClears(ctx context.Context, encounterID, limit int) ([]Ranking, error)

	// GuildReports lists recent kill reports uploaded by a watched guild.
	GuildReports(ctx context.Context, guildID, limit int) ([]Ranking, error)
}
