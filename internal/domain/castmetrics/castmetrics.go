// Package castmetrics derives global-cooldown uptime from completed casts.
//
// GCD uptime is a proxy for rotation density: every completed cast credits
// at most one GCD length of active time, so a player weaving casts
// back-to-back approaches 100% while idle stretches show up as downtime and
// significant gaps.
package castmetrics

import (
	"sort"

	"github.com/raidsight/raidsight/internal/domain/model"
)

// Reference timing constants in milliseconds.
const (
	DefaultGCDLengthMS    = 1500
	DefaultGapThresholdMS = 2500

	msPerMinute = 60_000
)

// Config tunes the activity model.
type Config struct {
	// GCDLengthMS is the minimum time between GCD-gated actions.
	GCDLengthMS int64
	// GapThresholdMS is the inter-cast gap above which a gap is "significant".
	GapThresholdMS int64
}

// DefaultConfig returns the reference GCD model.
func DefaultConfig() Config {
	return Config{GCDLengthMS: DefaultGCDLengthMS, GapThresholdMS: DefaultGapThresholdMS}
}

// Compute builds one CastMetric per player from a fight's events. A zero
// duration or an empty event set yields an empty map, never an error.
func Compute(events []model.CombatEvent, window model.FightWindow, cfg Config) map[string]model.CastMetric {
	out := make(map[string]model.CastMetric)
	duration := window.Duration()
	if duration == 0 || len(events) == 0 {
		return out
	}
	if cfg.GCDLengthMS <= 0 {
		cfg.GCDLengthMS = DefaultGCDLengthMS
	}
	if cfg.GapThresholdMS <= 0 {
		cfg.GapThresholdMS = DefaultGapThresholdMS
	}

	byPlayer := make(map[string][]int64)
	for _, ev := range events {
		if ev.Kind != model.KindCastComplete {
			continue
		}
		byPlayer[ev.Actor] = append(byPlayer[ev.Actor], ev.Timestamp)
	}

	for player, casts := range byPlayer {
		out[player] = forPlayer(player, casts, duration, cfg)
	}
	return out
}

func forPlayer(player string, casts []int64, duration int64, cfg Config) model.CastMetric {
	sort.Slice(casts, func(i, j int) bool { return casts[i] < casts[j] })

	m := model.CastMetric{
		Player:         player,
		TotalCasts:     len(casts),
		CastsPerMinute: float64(len(casts)) / (float64(duration) / msPerMinute),
	}

	var active int64
	var gapTotal int64
	for i := 0; i < len(casts); i++ {
		if i == len(casts)-1 {
			// The final cast gets a full GCD; there is no next cast to bound it.
			active += cfg.GCDLengthMS
			break
		}
		gap := casts[i+1] - casts[i]
		active += min64(cfg.GCDLengthMS, gap)
		if gap > cfg.GapThresholdMS {
			m.GapCount++
			gapTotal += gap
			if gap > m.LongestGapMS {
				m.LongestGapMS = gap
				m.LongestGapAtMS = casts[i]
			}
		}
	}
	if active > duration {
		active = duration
	}

	m.ActiveTimeMS = active
	m.DowntimeMS = duration - active
	m.GCDUptimePct = float64(active) / float64(duration) * 100
	if m.GapCount > 0 {
		m.AverageGapMS = float64(gapTotal) / float64(m.GapCount)
	}
	return m
}

func min64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}
