package calc

import (
	"sort"
	"strings"
)

// Metric selects which group measure drives a ranking.
type Metric int

const (
	MetricSum Metric = iota
	MetricCount
)

// currencyPriority orders the home currency first, then the majors; every
// other currency sorts alphabetically after them.
var currencyPriority = map[string]int{
	"TRY": 0,
	"USD": 1,
	"EUR": 2,
	"GBP": 3,
}

// RankGroups orders groups descending by the chosen metric and truncates to
// topN. Ties break on the key ascending so identical inputs always produce
// byte-identical output. topN <= 0 means no truncation; fewer groups than
// topN returns all of them, never padded.
func RankGroups(groups []Group, metric Metric, topN int) []Group {
	ranked := cloneGroups(groups)
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		switch metric {
		case MetricCount:
			if a.Count != b.Count {
				return a.Count > b.Count
			}
		default:
			if cmp := a.Sum.Cmp(b.Sum); cmp != 0 {
				return cmp > 0
			}
		}
		return a.Key < b.Key
	})
	if topN > 0 && len(ranked) > topN {
		ranked = ranked[:topN]
	}
	return ranked
}

// RankByCurrencyPriority orders currency-keyed groups by the fixed priority
// list (TRY, USD, EUR, GBP) and everything else alphabetically after it,
// overriding pure metric order. Used for the currency dimension only.
func RankByCurrencyPriority(groups []Group, topN int) []Group {
	ranked := cloneGroups(groups)
	sort.SliceStable(ranked, func(i, j int) bool {
		a := strings.ToUpper(ranked[i].Key)
		b := strings.ToUpper(ranked[j].Key)
		pa, oka := currencyPriority[a]
		pb, okb := currencyPriority[b]
		switch {
		case oka && okb:
			return pa < pb
		case oka:
			return true
		case okb:
			return false
		default:
			return a < b
		}
	})
	if topN > 0 && len(ranked) > topN {
		ranked = ranked[:topN]
	}
	return ranked
}
