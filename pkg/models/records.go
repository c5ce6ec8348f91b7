// Package models defines the canonical entities the analytics engine operates
// on. Canonical records are built once per refresh cycle by pkg/core/normalize
// and are never mutated afterwards; every derived view is recomputed from them.
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecordKind classifies a financial record's direction.
type RecordKind string

const (
	KindDebit   RecordKind = "DEBIT"
	KindCredit  RecordKind = "CREDIT"
	KindBalance RecordKind = "BALANCE"
	KindOther   RecordKind = "OTHER"
)

// FallbackCurrency is substituted whenever a raw currency code is absent or
// not a 3-letter code. The dashboards are TRY-denominated by default.
const FallbackCurrency = "TRY"

// FinancialRecord is a banking transaction or accounting voucher line after
// normalization. Amount keeps its sign; use Magnitude for activity-style
// comparisons where direction is irrelevant.
type FinancialRecord struct {
	ID          string          `json:"id"`
	Reference   string          `json:"reference"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	Kind        RecordKind      `json:"kind"`
	Settled     bool            `json:"settled"`
	DueDate     *time.Time      `json:"dueDate,omitempty"`
	AccountName string          `json:"accountName"`
	AccountRef  string          `json:"accountRef"`
	IBAN        string          `json:"iban"`
	CreatedBy   string          `json:"createdBy"`
	CreatedAt   *time.Time      `json:"createdAt,omitempty"`
	CompanyCode string          `json:"companyCode"`
}

// Magnitude returns the absolute amount.
func (r FinancialRecord) Magnitude() decimal.Decimal {
	return r.Amount.Abs()
}

// PersonRecord is an employee after normalization. Gender and MaritalStatus
// are members of closed label sets; Active is derived from EndDate.
type PersonRecord struct {
	ID             string           `json:"id"`
	FullName       string           `json:"fullName"`
	Gender         string           `json:"gender"`
	MaritalStatus  string           `json:"maritalStatus"`
	BirthDate      *time.Time       `json:"birthDate,omitempty"`
	StartDate      *time.Time       `json:"startDate,omitempty"`
	EndDate        *time.Time       `json:"endDate,omitempty"`
	Active         bool             `json:"active"`
	Salary         decimal.Decimal  `json:"salary"`
	SalaryCurrency string           `json:"salaryCurrency"`
	SalaryType     string           `json:"salaryType"`
	PrevSalary     *decimal.Decimal `json:"prevSalary,omitempty"`
	CostCenter     string           `json:"costCenter"`
	Company        string           `json:"company"`
	Department     string           `json:"department"`
	Title          string           `json:"title"`
}

// Closed gender labels. Raw inputs arrive in many spellings and are mapped
// onto these three during normalization.
const (
	GenderMale    = "Erkek"
	GenderFemale  = "Kadın"
	GenderUnknown = "Bilinmiyor"
)

// Closed marital status labels.
const (
	MaritalMarried = "Evli"
	MaritalSingle  = "Bekar"
	MaritalUnknown = "Bilinmiyor"
)
