// Package filter holds the dashboard filter state and compiles it into
// record predicates. The State value is the single source of truth for every
// derived view; nothing computed from it may be cached across a change.
package filter

import "strings"

// All is the sentinel criterion value meaning "no restriction". Matching is
// case-insensitive, so "ALL" from the UI behaves the same.
const All = "all"

// DefaultPageSize is applied when a caller supplies a non-positive page size.
const DefaultPageSize = 10

// State is the complete set of active filter criteria for one dashboard.
// Zero or "all" valued criteria impose no restriction.
type State struct {
	Status     string `json:"status"`     // "settled", "pending" or all
	Kind       string `json:"kind"`       // DEBIT / CREDIT / BALANCE / OTHER
	Currency   string `json:"currency"`   // 3-letter code
	Bank       string `json:"bank"`       // account/bank name
	Department string `json:"department"` // HR dashboards
	Company    string `json:"company"`    // company code
	Search     string `json:"search"`     // debounced free text
	WindowDays int    `json:"windowDays"` // 0 = no date restriction
	Page       int    `json:"page"`
	PageSize   int    `json:"pageSize"`
}

// IsAll reports whether a criterion value imposes no restriction.
func IsAll(criterion string) bool {
	criterion = strings.TrimSpace(criterion)
	return criterion == "" || strings.EqualFold(criterion, All)
}

// ResetPage returns a copy of the state with the pagination cursor rewound
// to the first page. Callers must apply this on every criterion or page-size
// change; stale page numbers pointing past the new last page are a known
// bug class.
func (s State) ResetPage() State {
	s.Page = 1
	return s
}

// Normalized clamps pagination fields into their valid domain. Out-of-range
// input is corrected, never rejected.
func (s State) Normalized() State {
	if s.Page < 1 {
		s.Page = 1
	}
	if s.PageSize <= 0 {
		s.PageSize = DefaultPageSize
	}
	return s
}
