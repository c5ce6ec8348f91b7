// Package export serializes filtered record collections to tabular formats.
// Column accessors follow the same field-access rules as the predicate
// compiler: a missing or nil field yields an empty string, never a panic.
package export

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"finadash/pkg/models"
)

// ErrNothingToExport signals an empty filtered collection. Callers show a
// "nothing to export" notice instead of writing an empty file.
var ErrNothingToExport = errors.New("nothing to export")

// Column maps one output column to its label and value accessor.
type Column[T any] struct {
	Label string
	Value func(T) string
}

// ToCSV serializes records under the given column specs. Every field is
// wrapped in double quotes with embedded quotes doubled, one header row
// first. Rows are joined with \r\n per RFC 4180.
func ToCSV[T any](records []T, columns []Column[T]) (string, error) {
	if len(records) == 0 {
		return "", ErrNothingToExport
	}

	var b strings.Builder
	writeRow(&b, headerRow(columns))
	for _, rec := range records {
		row := make([]string, len(columns))
		for i, col := range columns {
			row[i] = col.Value(rec)
		}
		writeRow(&b, row)
	}
	return b.String(), nil
}

func headerRow[T any](columns []Column[T]) []string {
	labels := make([]string, len(columns))
	for i, col := range columns {
		labels[i] = col.Label
	}
	return labels
}

func writeRow(b *strings.Builder, fields []string) {
	for i, f := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		b.WriteString(strings.ReplaceAll(f, `"`, `""`))
		b.WriteByte('"')
	}
	b.WriteString("\r\n")
}

// FinancialColumns is the default column set for financial record exports.
func FinancialColumns() []Column[models.FinancialRecord] {
	return []Column[models.FinancialRecord]{
		{Label: "ID", Value: func(r models.FinancialRecord) string { return r.ID }},
		{Label: "Referans", Value: func(r models.FinancialRecord) string { return r.Reference }},
		{Label: "Hesap", Value: func(r models.FinancialRecord) string { return r.AccountName }},
		{Label: "IBAN", Value: func(r models.FinancialRecord) string { return r.IBAN }},
		{Label: "Tutar", Value: func(r models.FinancialRecord) string { return r.Amount.StringFixed(2) }},
		{Label: "Para Birimi", Value: func(r models.FinancialRecord) string { return r.Currency }},
		{Label: "Tür", Value: func(r models.FinancialRecord) string { return string(r.Kind) }},
		{Label: "Vade", Value: func(r models.FinancialRecord) string { return formatDate(r.DueDate) }},
		{Label: "Firma", Value: func(r models.FinancialRecord) string { return r.CompanyCode }},
		{Label: "Açıklama", Value: func(r models.FinancialRecord) string { return r.Description }},
	}
}

// PersonColumns is the default column set for personnel exports.
func PersonColumns() []Column[models.PersonRecord] {
	return []Column[models.PersonRecord]{
		{Label: "ID", Value: func(r models.PersonRecord) string { return r.ID }},
		{Label: "Ad Soyad", Value: func(r models.PersonRecord) string { return r.FullName }},
		{Label: "Cinsiyet", Value: func(r models.PersonRecord) string { return r.Gender }},
		{Label: "Departman", Value: func(r models.PersonRecord) string { return r.Department }},
		{Label: "Unvan", Value: func(r models.PersonRecord) string { return r.Title }},
		{Label: "Giriş", Value: func(r models.PersonRecord) string { return formatDate(r.StartDate) }},
		{Label: "Çıkış", Value: func(r models.PersonRecord) string { return formatDate(r.EndDate) }},
		{Label: "Maaş", Value: func(r models.PersonRecord) string { return formatDecimal(r.Salary) }},
		{Label: "Para Birimi", Value: func(r models.PersonRecord) string { return r.SalaryCurrency }},
	}
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("02.01.2006")
}

func formatDecimal(d decimal.Decimal) string {
	return d.StringFixed(2)
}
