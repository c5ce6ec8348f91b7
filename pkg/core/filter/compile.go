package filter

import (
	"strings"
	"time"

	"finadash/pkg/models"
)

// FinancialPredicate decides whether a financial record passes the filter.
type FinancialPredicate func(models.FinancialRecord) bool

// PersonPredicate decides whether a person record passes the filter.
type PersonPredicate func(models.PersonRecord) bool

// CompileFinancial builds a single composite predicate from the state. Each
// active criterion contributes one conjunct; free text is OR across the
// searchable fields and AND with everything else. Date windows resolve
// "now" at evaluation time, so the same predicate may legitimately admit a
// different set tomorrow.
func CompileFinancial(s State) FinancialPredicate {
	var conjuncts []FinancialPredicate

	if !IsAll(s.Status) {
		wantSettled := strings.EqualFold(s.Status, "settled") || strings.EqualFold(s.Status, "financed")
		conjuncts = append(conjuncts, func(r models.FinancialRecord) bool {
			return r.Settled == wantSettled
		})
	}
	if !IsAll(s.Kind) {
		kind := models.RecordKind(strings.ToUpper(strings.TrimSpace(s.Kind)))
		conjuncts = append(conjuncts, func(r models.FinancialRecord) bool {
			return r.Kind == kind
		})
	}
	if !IsAll(s.Currency) {
		code := strings.ToUpper(strings.TrimSpace(s.Currency))
		conjuncts = append(conjuncts, func(r models.FinancialRecord) bool {
			return r.Currency == code
		})
	}
	if !IsAll(s.Bank) {
		bank := strings.ToLower(strings.TrimSpace(s.Bank))
		conjuncts = append(conjuncts, func(r models.FinancialRecord) bool {
			return strings.ToLower(r.AccountName) == bank
		})
	}
	if !IsAll(s.Company) {
		company := strings.TrimSpace(s.Company)
		conjuncts = append(conjuncts, func(r models.FinancialRecord) bool {
			return r.CompanyCode == company
		})
	}
	if s.WindowDays > 0 {
		days := s.WindowDays
		conjuncts = append(conjuncts, func(r models.FinancialRecord) bool {
			if r.CreatedAt == nil {
				return false
			}
			cutoff := time.Now().AddDate(0, 0, -days)
			return !r.CreatedAt.Before(cutoff)
		})
	}
	if term := strings.ToLower(strings.TrimSpace(s.Search)); term != "" {
		conjuncts = append(conjuncts, func(r models.FinancialRecord) bool {
			return containsFold(r.AccountName, term) ||
				containsFold(r.Reference, term) ||
				containsFold(r.Description, term) ||
				containsFold(r.IBAN, term) ||
				containsFold(r.AccountRef, term)
		})
	}

	return func(r models.FinancialRecord) bool {
		for _, c := range conjuncts {
			if !c(r) {
				return false
			}
		}
		return true
	}
}

// CompilePerson builds the composite predicate for person records.
func CompilePerson(s State) PersonPredicate {
	var conjuncts []PersonPredicate

	if !IsAll(s.Status) {
		wantActive := strings.EqualFold(s.Status, "active")
		conjuncts = append(conjuncts, func(r models.PersonRecord) bool {
			return r.Active == wantActive
		})
	}
	if !IsAll(s.Currency) {
		code := strings.ToUpper(strings.TrimSpace(s.Currency))
		conjuncts = append(conjuncts, func(r models.PersonRecord) bool {
			return r.SalaryCurrency == code
		})
	}
	if !IsAll(s.Department) {
		dept := strings.ToLower(strings.TrimSpace(s.Department))
		conjuncts = append(conjuncts, func(r models.PersonRecord) bool {
			return strings.ToLower(r.Department) == dept
		})
	}
	if !IsAll(s.Company) {
		company := strings.ToLower(strings.TrimSpace(s.Company))
		conjuncts = append(conjuncts, func(r models.PersonRecord) bool {
			return strings.ToLower(r.Company) == company
		})
	}
	if s.WindowDays > 0 {
		days := s.WindowDays
		conjuncts = append(conjuncts, func(r models.PersonRecord) bool {
			if r.StartDate == nil {
				return false
			}
			cutoff := time.Now().AddDate(0, 0, -days)
			return !r.StartDate.Before(cutoff)
		})
	}
	if term := strings.ToLower(strings.TrimSpace(s.Search)); term != "" {
		conjuncts = append(conjuncts, func(r models.PersonRecord) bool {
			return containsFold(r.FullName, term) ||
				containsFold(r.Title, term) ||
				containsFold(r.Department, term) ||
				containsFold(r.CostCenter, term)
		})
	}

	return func(r models.PersonRecord) bool {
		for _, c := range conjuncts {
			if !c(r) {
				return false
			}
		}
		return true
	}
}

// ApplyFinancial returns the records passing the compiled predicate.
func ApplyFinancial(records []models.FinancialRecord, pred FinancialPredicate) []models.FinancialRecord {
	out := make([]models.FinancialRecord, 0, len(records))
	for _, r := range records {
		if pred(r) {
			out = append(out, r)
		}
	}
	return out
}

// ApplyPerson returns the records passing the compiled predicate.
func ApplyPerson(records []models.PersonRecord, pred PersonPredicate) []models.PersonRecord {
	out := make([]models.PersonRecord, 0, len(records))
	for _, r := range records {
		if pred(r) {
			out = append(out, r)
		}
	}
	return out
}

// containsFold is a case-insensitive substring check; term must already be
// lowercased.
func containsFold(haystack, term string) bool {
	return strings.Contains(strings.ToLower(haystack), term)
}
