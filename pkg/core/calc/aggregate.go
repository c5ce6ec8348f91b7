// Package calc implements the pure computation layer of the engine:
// grouped aggregation, fixed-bin bucketing, ranking and pagination. Every
// function is a single linear pass over an immutable snapshot slice and is
// safe to call concurrently with other readers.
package calc

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Group is one per-key reduction of a filtered collection: a count, a
// monetary sum and a percentage of the collection total. Percent is filled
// in only after the full pass completes.
type Group struct {
	Key     string          `json:"key"`
	Label   string          `json:"label"`
	Count   int             `json:"count"`
	Sum     decimal.Decimal `json:"sum"`
	Percent float64         `json:"percent"`
}

// Aggregate reduces records into groups in one pass. keyFn produces the
// grouping key (use CompositeKey for multi-dimension keys); metricFn
// produces the monetary contribution of a record; pass the signed amount
// where direction matters, the magnitude where activity volume does.
// Group order is first-seen, so output is deterministic for a given input
// order; percentages use max(1, total) as denominator so an empty or
// all-zero collection yields zeros rather than a division by zero.
func Aggregate[T any](records []T, keyFn func(T) string, metricFn func(T) decimal.Decimal) []Group {
	index := make(map[string]int, 16)
	groups := make([]Group, 0, 16)
	total := decimal.Zero

	for _, rec := range records {
		key := keyFn(rec)
		metric := metricFn(rec)
		total = total.Add(metric)

		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, Group{Key: key, Label: key})
		}
		groups[i].Count++
		groups[i].Sum = groups[i].Sum.Add(metric)
	}

	denom := total
	if denom.IsZero() {
		denom = decimal.NewFromInt(1)
	}
	for i := range groups {
		pct, _ := groups[i].Sum.Div(denom).Mul(decimal.NewFromInt(100)).Float64()
		groups[i].Percent = pct
	}
	return groups
}

// CompositeKey joins dimension values into a single grouping key.
func CompositeKey(parts ...string) string {
	return strings.Join(parts, "|")
}

// MergeAggregates combines an authoritative pre-aggregated result with a
// locally recomputed fallback. The authoritative side wins outright when the
// fallback is empty and vice versa; when both carry data they are summed
// with a matching-key merge, never one overwriting the other. Percentages
// are recomputed over the merged totals.
func MergeAggregates(authoritative, fallback []Group) []Group {
	if len(authoritative) == 0 {
		return recomputePercentages(cloneGroups(fallback))
	}
	if len(fallback) == 0 {
		return recomputePercentages(cloneGroups(authoritative))
	}

	merged := cloneGroups(authoritative)
	index := make(map[string]int, len(merged))
	for i, g := range merged {
		index[g.Key] = i
	}
	for _, g := range fallback {
		if i, ok := index[g.Key]; ok {
			merged[i].Count += g.Count
			merged[i].Sum = merged[i].Sum.Add(g.Sum)
		} else {
			index[g.Key] = len(merged)
			merged = append(merged, g)
		}
	}
	return recomputePercentages(merged)
}

// SumGroups returns the total of the Sum metric over groups.
func SumGroups(groups []Group) decimal.Decimal {
	total := decimal.Zero
	for _, g := range groups {
		total = total.Add(g.Sum)
	}
	return total
}

func recomputePercentages(groups []Group) []Group {
	denom := SumGroups(groups)
	if denom.IsZero() {
		denom = decimal.NewFromInt(1)
	}
	for i := range groups {
		pct, _ := groups[i].Sum.Div(denom).Mul(decimal.NewFromInt(100)).Float64()
		groups[i].Percent = pct
	}
	return groups
}

func cloneGroups(groups []Group) []Group {
	out := make([]Group, len(groups))
	copy(out, groups)
	return out
}
