package calc

import (
	"reflect"
	"testing"
)

func keys(groups []Group) []string {
	out := make([]string, len(groups))
	for i, g := range groups {
		out[i] = g.Key
	}
	return out
}

func TestRankGroupsDeterministicTieBreak(t *testing.T) {
	groups := []Group{
		{Key: "Ziraat", Sum: d("100"), Count: 5},
		{Key: "Akbank", Sum: d("100"), Count: 2},
		{Key: "Garanti", Sum: d("250"), Count: 1},
	}

	first := RankGroups(groups, MetricSum, 0)
	second := RankGroups(groups, MetricSum, 0)

	want := []string{"Garanti", "Akbank", "Ziraat"}
	if !reflect.DeepEqual(keys(first), want) {
		t.Errorf("got %v, want %v", keys(first), want)
	}
	if !reflect.DeepEqual(keys(first), keys(second)) {
		t.Error("identical input must produce identical ordering")
	}
}

func TestRankGroupsByCount(t *testing.T) {
	groups := []Group{
		{Key: "IK", Count: 3},
		{Key: "Finans", Count: 9},
		{Key: "Satış", Count: 3},
	}
	ranked := RankGroups(groups, MetricCount, 0)
	want := []string{"Finans", "IK", "Satış"}
	if !reflect.DeepEqual(keys(ranked), want) {
		t.Errorf("got %v, want %v", keys(ranked), want)
	}
}

func TestRankGroupsTruncation(t *testing.T) {
	groups := []Group{
		{Key: "A", Sum: d("3")},
		{Key: "B", Sum: d("2")},
		{Key: "C", Sum: d("1")},
	}
	if got := RankGroups(groups, MetricSum, 2); len(got) != 2 {
		t.Errorf("topN=2: got %d groups", len(got))
	}
	// Fewer groups than topN: return all, never pad.
	if got := RankGroups(groups, MetricSum, 10); len(got) != 3 {
		t.Errorf("topN=10 over 3 groups: got %d", len(got))
	}
}

func TestRankGroupsDoesNotMutateInput(t *testing.T) {
	groups := []Group{
		{Key: "B", Sum: d("1")},
		{Key: "A", Sum: d("2")},
	}
	RankGroups(groups, MetricSum, 0)
	if groups[0].Key != "B" {
		t.Error("input slice order must be preserved")
	}
}

func TestRankByCurrencyPriority(t *testing.T) {
	groups := []Group{
		{Key: "AUD"}, {Key: "EUR"}, {Key: "CHF"}, {Key: "TRY"}, {Key: "USD"},
	}
	ranked := RankByCurrencyPriority(groups, 0)
	want := []string{"TRY", "USD", "EUR", "AUD", "CHF"}
	if !reflect.DeepEqual(keys(ranked), want) {
		t.Errorf("got %v, want %v", keys(ranked), want)
	}
}
