package model

// CastMetric summarizes one player's cast activity over one fight.
type CastMetric struct {
	Player         string
	TotalCasts     int
	CastsPerMinute float64
	ActiveTimeMS   int64
	DowntimeMS     int64
	GCDUptimePct   float64
	LongestGapMS   int64
	LongestGapAtMS int64
	GapCount       int
	AverageGapMS   float64
}

// CooldownRecord tracks one tracked ability for one player in one fight.
// FirstUseMS/LastUseMS are nil when the ability was never used.
type CooldownRecord struct {
	Player        string
	SpellID       int
	AbilityName   string
	CooldownMS    int64
	TimesUsed     int
	MaxPossible   int
	EfficiencyPct float64
	FirstUseMS    *int64
	LastUseMS     *int64
}

// SpellCancelCount is one row of a ranked cancelled-cast list.
type SpellCancelCount struct {
	SpellID     int
	AbilityName string
	Begins      int
	Completions int
	Cancelled   int
}

// CancelledCastSummary aggregates inferred cast cancellations for one player.
// TopCancelled is nil when the player had no cast-begin events.
type CancelledCastSummary struct {
	Player           string
	TotalBegins      int
	TotalCompletions int
	CancelCount      int
	CancelPct        float64
	TopCancelled     []SpellCancelCount
}

// SeriesPoint is one downsampled resource sample for charting.
type SeriesPoint struct {
	TimestampMS int64
	Value       int
}

// ResourceSnapshot summarizes one resource kind for one player in one fight.
type ResourceSnapshot struct {
	Player        string
	ResourceKind  string
	MinValue      int
	MaxValue      int
	AvgValue      float64
	TimeAtZeroMS  int64
	TimeAtZeroPct float64
	Series        []SeriesPoint
}

// DotRefreshSummary grades refresh quality for one DoT spell.
// Spells with fewer than two completed casts are never reported.
type DotRefreshSummary struct {
	Player          string
	SpellID         int
	AbilityName     string
	TotalRefreshes  int
	EarlyRefreshes  int
	EarlyRefreshPct float64
	ClippedTicks    float64
}
