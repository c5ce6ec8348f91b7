// Package normalize converts raw, loosely-typed source payloads into the
// canonical records in pkg/models. Normalization is total: a malformed record
// is defaulted field by field, never rejected, so a single bad row cannot
// fail a refresh batch. All functions here are pure.
package normalize

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"

	"finadash/pkg/models"
)

// NormalizeFinancial maps raw transaction/voucher rows onto canonical
// financial records. Every output field has an explicit fallback.
func NormalizeFinancial(raws []models.RawFinancialRecord) []models.FinancialRecord {
	records := make([]models.FinancialRecord, 0, len(raws))
	for _, raw := range raws {
		records = append(records, normalizeFinancialOne(raw))
	}
	return records
}

func normalizeFinancialOne(raw models.RawFinancialRecord) models.FinancialRecord {
	settled := false
	if raw.Settled != nil {
		settled = *raw.Settled
	} else if raw.Financed != nil {
		settled = *raw.Financed
	}

	return models.FinancialRecord{
		ID:          coalesce(raw.ID, raw.RecordID),
		Reference:   coalesce(raw.Reference, raw.DocumentNo),
		Description: coalesce(raw.Description, raw.Aciklama),
		Amount:      parseAmount(raw.Amount, raw.Tutar),
		Currency:    CanonicalCurrency(coalesce(raw.Currency, raw.ParaBirimi)),
		Kind:        canonicalKind(coalesce(raw.Kind, raw.BorcAlacak)),
		Settled:     settled,
		DueDate:     ParseDate(coalesce(raw.DueDate, raw.VadeTarihi)),
		AccountName: coalesce(raw.AccountName, raw.BankaAdi),
		AccountRef:  coalesce(raw.AccountRef, raw.HesapKodu),
		IBAN:        strings.ToUpper(strings.ReplaceAll(raw.IBAN, " ", "")),
		CreatedBy:   raw.CreatedBy,
		CreatedAt:   ParseDate(raw.CreatedAt),
		CompanyCode: PadCompanyCode(coalesce(raw.CompanyCode, raw.FirmaKodu)),
	}
}

// NormalizePeople maps raw personnel rows onto canonical person records and
// deduplicates by person identity. When the same ID appears in both the
// active and passive sources the active row wins; among rows of equal
// standing the first seen wins.
func NormalizePeople(raws []models.RawPersonRecord) []models.PersonRecord {
	byID := make(map[string]int, len(raws))
	records := make([]models.PersonRecord, 0, len(raws))

	for _, raw := range raws {
		rec := normalizePersonOne(raw)
		idx, seen := byID[rec.ID]
		if !seen || rec.ID == "" {
			byID[rec.ID] = len(records)
			records = append(records, rec)
			continue
		}
		if rec.Active && !records[idx].Active {
			records[idx] = rec
		}
	}
	return records
}

func normalizePersonOne(raw models.RawPersonRecord) models.PersonRecord {
	endDate := ParseDate(coalesce(raw.EndDate, raw.CikisTarihi))
	active := endDate == nil
	if raw.Source == models.SourcePassivePersonnel {
		active = false
	}

	var prev *decimal.Decimal
	if d, ok := parseNumber(raw.PrevSalary); ok {
		prev = &d
	}

	return models.PersonRecord{
		ID:             coalesce(raw.ID, raw.PersonelID),
		FullName:       coalesce(raw.FullName, raw.AdSoyad),
		Gender:         CanonicalGender(coalesce(raw.Gender, raw.Cinsiyet)),
		MaritalStatus:  CanonicalMaritalStatus(coalesce(raw.MaritalStatus, raw.MedeniHal)),
		BirthDate:      ParseDate(coalesce(raw.BirthDate, raw.DogumTarihi)),
		StartDate:      ParseDate(coalesce(raw.StartDate, raw.GirisTarihi)),
		EndDate:        endDate,
		Active:         active,
		Salary:         parseAmount(raw.Salary, raw.Maas),
		SalaryCurrency: CanonicalCurrency(raw.Currency),
		SalaryType:     raw.SalaryType,
		PrevSalary:     prev,
		CostCenter:     raw.CostCenter,
		Company:        raw.Company,
		Department:     coalesce(raw.Department, raw.Departman),
		Title:          coalesce(raw.Title, raw.Unvan),
	}
}

// PadCompanyCode left-pads numeric company codes to 4 digits so "12" and
// "0012" group together. Non-numeric codes pass through untouched.
func PadCompanyCode(code string) string {
	code = strings.TrimSpace(code)
	if code == "" || len(code) >= 4 {
		return code
	}
	for _, c := range code {
		if c < '0' || c > '9' {
			return code
		}
	}
	return strings.Repeat("0", 4-len(code)) + code
}

func canonicalKind(raw string) models.RecordKind {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debit", "borc", "borç", "b", "d":
		return models.KindDebit
	case "credit", "alacak", "a", "c":
		return models.KindCredit
	case "balance", "bakiye":
		return models.KindBalance
	default:
		return models.KindOther
	}
}

// parseAmount coalesces alternate numeric fields; unparseable input yields
// zero rather than an error.
func parseAmount(primary, secondary json.Number) decimal.Decimal {
	if d, ok := parseNumber(primary); ok {
		return d
	}
	if d, ok := parseNumber(secondary); ok {
		return d
	}
	return decimal.Zero
}

func parseNumber(n json.Number) (decimal.Decimal, bool) {
	s := strings.TrimSpace(n.String())
	if s == "" {
		return decimal.Zero, false
	}
	// Turkish sources occasionally emit "1.234,56".
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

func coalesce(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
