// Package fake provides a deterministic in-process telemetry client. It
// synthesizes plausible combat logs from a seed derived from the report
// code, so tests and the CLI demo path get stable data without network
// access.
package fake

import (
	"context"
	"fmt"
	"hash/fnv"
	"math/rand"
	"sort"

	"github.com/raidsight/raidsight/internal/adapters/telemetry"
	"github.com/raidsight/raidsight/internal/domain/model"
	"github.com/raidsight/raidsight/internal/domain/normalize"
)

// Synthetic fight shape constants.
const (
	fightDurationMS = 300_000 // five-minute kills
	rosterSize      = 8
	manaPool        = 100
)

type roleTemplate struct {
	class, spec string
	castSpellID int
	castName    string
	castGapMS   int64
}

var roster = []roleTemplate{
	{"Priest", "Shadow", 25368, "Shadow Word: Pain", 1600},
	{"Mage", "Fire", 27070, "Fireball", 1700},
	{"Warlock", "Affliction", 27216, "Corruption", 1800},
	{"Warrior", "Fury", 23881, "Bloodthirst", 1500},
	{"Rogue", "Combat", 26862, "Sinister Strike", 1500},
	{"Hunter", "Marksmanship", 27019, "Aimed Shot", 2000},
	{"Priest", "Holy", 25316, "Greater Heal", 2600},
	{"Druid", "Restoration", 26979, "Rejuvenation", 2400},
}

// Client implements telemetry.Client with synthesized data.
type Client struct {
	encounters []int
	failing    map[string]bool
}

// Option applies a configuration option to the fake client.
type Option func(*Client)

// WithEncounters sets the encounter ids the fake leaderboard serves.
func WithEncounters(ids ...int) Option {
	return func(c *Client) {
		if len(ids) > 0 {
			c.encounters = ids
		}
	}
}

// WithFailingReports makes the listed report codes fail every fetch, for
// exercising per-report failure isolation.
func WithFailingReports(codes ...string) Option {
	return func(c *Client) {
		for _, code := range codes {
			c.failing[code] = true
		}
	}
}

// New builds a fake client.
func New(opts ...Option) *Client {
	c := &Client{
		encounters: []int{709, 711},
		failing:    make(map[string]bool),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func seedFor(code string) int64 {
	h := fnv.New64a()
	h.Write([]byte(code))
	return int64(h.Sum64() & 0x7fffffffffffffff)
}

func (c *Client) fail(code string) error {
	if c.failing[code] {
		return &telemetry.StatusError{Code: 500, Path: "fake:" + code}
	}
	return nil
}

// encounterFor picks the synthetic encounter a report belongs to. Codes
// minted by FastestClears embed their encounter; everything else hashes.
func (c *Client) encounterFor(code string) int {
	var enc, n int
	if _, err := fmt.Sscanf(code, "SYN%d-%d", &enc, &n); err == nil {
		return enc
	}
	return c.encounters[int(seedFor(code))%len(c.encounters)]
}

// ReportMetadata synthesizes the actor table and one kill fight.
func (c *Client) ReportMetadata(_ context.Context, code string) (model.ReportMetadata, error) {
	if err := c.fail(code); err != nil {
		return model.ReportMetadata{}, err
	}
	meta := model.ReportMetadata{
		Code:   code,
		Title:  "Synthetic raid " + code,
		Actors: make(map[int]model.PlayerInfo, rosterSize),
	}
	for i, t := range roster {
		id := i + 1
		meta.Actors[id] = model.PlayerInfo{
			ID:    id,
			Name:  fmt.Sprintf("%s%d-%s", t.spec, id, code),
			Class: t.class,
			Spec:  t.spec,
		}
	}
	meta.Fights = []model.FightWindow{{
		FightID:   1,
		Name:      fmt.Sprintf("Encounter %d", c.encounterFor(code)),
		Encounter: c.encounterFor(code),
		Kill:      true,
		StartTime: 0,
		EndTime:   fightDurationMS,
	}}
	return meta, nil
}

// Events synthesizes per-player cast and resource streams.
func (c *Client) Events(_ context.Context, code string, fight model.FightWindow, kinds []string) ([]normalize.RawEvent, error) {
	if err := c.fail(code); err != nil {
		return nil, err
	}
	rng := rand.New(rand.NewSource(seedFor(code) ^ int64(fight.FightID))) //nolint:gosec // deterministic synthetic data

	wantKind := make(map[string]bool, len(kinds))
	for _, k := range kinds {
		wantKind[k] = true
	}

	var out []normalize.RawEvent
	for i, t := range roster {
		sourceID := i + 1
		if wantKind["cast"] || wantKind["begincast"] {
			out = append(out, castStream(rng, sourceID, t, fight, wantKind)...)
		}
		if wantKind["resourcechange"] {
			out = append(out, manaStream(rng, sourceID, fight)...)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp < out[j].Timestamp })
	return out, nil
}

func castStream(rng *rand.Rand, sourceID int, t roleTemplate, fight model.FightWindow, want map[string]bool) []normalize.RawEvent {
	var out []normalize.RawEvent
	ability := &normalize.RawAbility{GUID: t.castSpellID, Name: t.castName}
	ts := fight.StartTime
	for ts < fight.EndTime {
		if want["begincast"] {
			out = append(out, normalize.RawEvent{Timestamp: ts, Type: "begincast", SourceID: sourceID, Ability: ability})
		}
		// Roughly one in twelve casts is cancelled by movement.
		if want["cast"] && rng.Intn(12) != 0 {
			out = append(out, normalize.RawEvent{Timestamp: ts, Type: "cast", SourceID: sourceID, Ability: ability})
		}
		ts += t.castGapMS + int64(rng.Intn(600))
	}
	return out
}

func manaStream(rng *rand.Rand, sourceID int, fight model.FightWindow) []normalize.RawEvent {
	var out []normalize.RawEvent
	value := manaPool
	for ts := fight.StartTime; ts < fight.EndTime; ts += 5_000 {
		value -= rng.Intn(8)
		if value < 0 {
			value = 0
		}
		amount := value
		out = append(out, normalize.RawEvent{
			Timestamp:    ts,
			Type:         "resourcechange",
			SourceID:     sourceID,
			ResourceType: "mana",
			Amount:       &amount,
		})
		if value == 0 && rng.Intn(3) == 0 {
			value = manaPool / 2 // mana potion
		}
	}
	return out
}

// FightSummary synthesizes the damage/healing table.
func (c *Client) FightSummary(_ context.Context, code string, fightID int) (telemetry.Summary, error) {
	if err := c.fail(code); err != nil {
		return telemetry.Summary{}, err
	}
	rng := rand.New(rand.NewSource(seedFor(code) ^ int64(fightID) ^ 0x5317)) //nolint:gosec // deterministic synthetic data

	s := telemetry.Summary{Deaths: rng.Intn(3)}
	for i, t := range roster {
		healer := t.spec == "Holy" || t.spec == "Restoration"
		p := telemetry.PlayerSummary{
			Name:        fmt.Sprintf("%s%d-%s", t.spec, i+1, code),
			Class:       t.class,
			Spec:        t.spec,
			Consumables: []string{"flask", "food"},
			BuffUptimePct: map[string]float64{
				"Power Infusion": 20 + rng.Float64()*30,
				"World Buff":     60 + rng.Float64()*40,
			},
		}
		durationSec := float64(fightDurationMS) / 1000
		if healer {
			p.HealingDone = (600 + rng.Float64()*300) * durationSec
			p.OverhealPct = 15 + rng.Float64()*30
		} else {
			p.DamageDone = (900 + rng.Float64()*400) * durationSec
			p.AbilityDamage = map[string]float64{
				t.castName:    500 + rng.Float64()*200,
				"Melee":       100 + rng.Float64()*100,
				"Trinket Hit": 10 + rng.Float64()*10,
			}
		}
		s.Players = append(s.Players, p)
	}
	return s, nil
}

// FastestClears lists synthetic top reports for an encounter.
func (c *Client) FastestClears(_ context.Context, encounterID, limit int) ([]telemetry.Ranking, error) {
	var out []telemetry.Ranking
	for i := 0; i < limit; i++ {
		code := fmt.Sprintf("SYN%d-%d", encounterID, i)
		out = append(out, telemetry.Ranking{
			ReportCode:  code,
			FightID:     1,
			EncounterID: encounterID,
			DurationMS:  fightDurationMS - int64(i)*1000,
		})
	}
	return out, nil
}

// GuildReports lists synthetic uploads for a watched guild.
func (c *Client) GuildReports(_ context.Context, guildID, limit int) ([]telemetry.Ranking, error) {
	var out []telemetry.Ranking
	for i := 0; i < limit; i++ {
		enc := c.encounters[i%len(c.encounters)]
		out = append(out, telemetry.Ranking{
			ReportCode:  fmt.Sprintf("GLD%d-%d", guildID, i),
			FightID:     1,
			EncounterID: enc,
			DurationMS:  fightDurationMS,
		})
	}
	return out, nil
}

var _ telemetry.Client = (*Client)(nil)
