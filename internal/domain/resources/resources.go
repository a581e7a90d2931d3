// Package resources tracks depletable combat resources (mana, energy) per
// player over one fight, including sustained time at zero.
package resources

import (
	"sort"

	"github.com/raidsight/raidsight/internal/domain/model"
)

// SeriesTarget is the downsampling target for display series.
const SeriesTarget = 50

type sample struct {
	ts    int64
	value int
}

// Compute builds one ResourceSnapshot per player for the given resource
// kind. Events of other kinds or other resources are ignored. Zero duration
// or no matching events yields an empty map.
func Compute(events []model.CombatEvent, window model.FightWindow, resourceKind string) map[string]model.ResourceSnapshot {
	out := make(map[string]model.ResourceSnapshot)
	duration := window.Duration()
	if duration == 0 || len(events) == 0 {
		return out
	}

	byPlayer := make(map[string][]sample)
	for _, ev := range events {
		if ev.Kind != model.KindResourceChange || !ev.HasResource || ev.ResourceKind != resourceKind {
			continue
		}
		byPlayer[ev.Actor] = append(byPlayer[ev.Actor], sample{ts: ev.Timestamp, value: ev.ResourceValue})
	}

	for player, samples := range byPlayer {
		out[player] = snapshot(player, resourceKind, samples, window)
	}
	return out
}

func snapshot(player, kind string, samples []sample, window model.FightWindow) model.ResourceSnapshot {
	sort.Slice(samples, func(i, j int) bool { return samples[i].ts < samples[j].ts })
	duration := window.Duration()

	s := model.ResourceSnapshot{
		Player:       player,
		ResourceKind: kind,
		MinValue:     samples[0].value,
		MaxValue:     samples[0].value,
	}

	var sum int64
	var zero int64
	for i, sm := range samples {
		if sm.value < s.MinValue {
			s.MinValue = sm.value
		}
		if sm.value > s.MaxValue {
			s.MaxValue = sm.value
		}
		sum += int64(sm.value)

		// Sustained depletion: a zero sample counts until the player's next
		// sample, or until the fight ends if it is the last one.
		if sm.value == 0 {
			until := window.EndTime
			if i+1 < len(samples) {
				until = samples[i+1].ts
			}
			if d := until - sm.ts; d > 0 {
				zero += d
			}
		}
	}
	if zero > duration {
		zero = duration
	}

	s.AvgValue = float64(sum) / float64(len(samples))
	s.TimeAtZeroMS = zero
	s.TimeAtZeroPct = float64(zero) / float64(duration) * 100
	s.Series = downsample(samples, SeriesTarget)
	return s
}

// downsample keeps ~target representative points, preserving the first and
// last samples exactly.
func downsample(samples []sample, target int) []model.SeriesPoint {
	n := len(samples)
	if n <= target {
		points := make([]model.SeriesPoint, n)
		for i, sm := range samples {
			points[i] = model.SeriesPoint{TimestampMS: sm.ts, Value: sm.value}
		}
		return points
	}

	points := make([]model.SeriesPoint, 0, target)
	for k := 0; k < target; k++ {
		idx := k * (n - 1) / (target - 1)
		sm := samples[idx]
		points = append(points, model.SeriesPoint{TimestampMS: sm.ts, Value: sm.value})
	}
	return points
}
