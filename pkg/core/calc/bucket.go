package calc

import (
	"math"
	"time"
)

// Bin is one half-open interval [Min, Max) of a fixed partition. The final
// bin of a partition carries Max = +Inf so the domain is covered with no
// upper gap.
type Bin struct {
	Label string  `json:"label"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
}

// BucketResult is the per-bin outcome of a Bucketize pass.
type BucketResult struct {
	Label   string `json:"label"`
	Count   int    `json:"count"`
	Percent int    `json:"percent"`
}

// Bucketize assigns each record to the first bin containing valueFn(record)
// and returns per-bin counts with integer percentages of the bucketed total.
// A value matching no bin (negative age from bad data, for instance) is
// silently excluded from all bins and from the percentage denominator.
func Bucketize[T any](records []T, bins []Bin, valueFn func(T) float64) []BucketResult {
	counts := make([]int, len(bins))
	considered := 0

	for _, rec := range records {
		v := valueFn(rec)
		for i, bin := range bins {
			if v >= bin.Min && v < bin.Max {
				counts[i]++
				considered++
				break
			}
		}
	}

	denom := considered
	if denom < 1 {
		denom = 1
	}
	results := make([]BucketResult, len(bins))
	for i, bin := range bins {
		results[i] = BucketResult{
			Label:   bin.Label,
			Count:   counts[i],
			Percent: int(math.Round(float64(counts[i]) / float64(denom) * 100)),
		}
	}
	return results
}

// Default partitions. These thresholds are business constants carried over
// from the dashboards; they are deployment-tunable through config but the
// defaults below are the canonical ones.

// DefaultSalaryBands partitions TRY-denominated monthly salaries.
func DefaultSalaryBands() []Bin {
	return []Bin{
		{Label: "0-25K", Min: 0, Max: 25000},
		{Label: "25K-50K", Min: 25000, Max: 50000},
		{Label: "50K-100K", Min: 50000, Max: 100000},
		{Label: "100K-250K", Min: 100000, Max: 250000},
		{Label: "250K+", Min: 250000, Max: math.Inf(1)},
	}
}

// DefaultAgeBuckets partitions employee ages in integer years.
func DefaultAgeBuckets() []Bin {
	return []Bin{
		{Label: "18-25", Min: 18, Max: 25},
		{Label: "25-35", Min: 25, Max: 35},
		{Label: "35-45", Min: 35, Max: 45},
		{Label: "45-55", Min: 45, Max: 55},
		{Label: "55+", Min: 55, Max: math.Inf(1)},
	}
}

// DefaultTenureBuckets partitions years of service. For ex-employees the
// caller computes tenure up to the separation date, not up to now.
func DefaultTenureBuckets() []Bin {
	return []Bin{
		{Label: "0-1", Min: 0, Max: 1},
		{Label: "1-3", Min: 1, Max: 3},
		{Label: "3-5", Min: 3, Max: 5},
		{Label: "5-10", Min: 5, Max: 10},
		{Label: "10+", Min: 10, Max: math.Inf(1)},
	}
}

// DefaultAgingBins partitions receivables by days until due, measured
// against "now" at call time. Negative days = overdue.
func DefaultAgingBins() []Bin {
	return []Bin{
		{Label: "Vadesi Geçmiş", Min: math.Inf(-1), Max: 0},
		{Label: "Bugün", Min: 0, Max: 1},
		{Label: "7 Gün İçinde", Min: 1, Max: 8},
		{Label: "Daha Sonra", Min: 8, Max: math.Inf(1)},
	}
}

// YearsBetween returns whole years from start to end, floored. Used for age
// and tenure bucket value functions.
func YearsBetween(start, end time.Time) float64 {
	years := end.Year() - start.Year()
	anniversary := start.AddDate(years, 0, 0)
	if anniversary.After(end) {
		years--
	}
	return float64(years)
}

// DaysUntil returns fractional days from now until t; negative when t is in
// the past.
func DaysUntil(t time.Time, now time.Time) float64 {
	return t.Sub(now).Hours() / 24
}
