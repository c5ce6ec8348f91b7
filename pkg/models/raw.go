package models

import "encoding/json"

// Raw payload shapes. Each upstream source has a known, fixed shape; the
// shapes below are tagged unions of the field spellings the sources actually
// emit. Shape resolution happens in pkg/core/normalize, never at aggregation
// time.
//
// Numeric and date fields use json.Number / string because the sources are
// inconsistent about quoting; the normalizer owns all coercion.

// RawFinancialRecord covers the transaction and voucher endpoints. Alternate
// spellings of the same field (English and Turkish) are separate struct
// fields; the normalizer coalesces them in a fixed order.
type RawFinancialRecord struct {
	ID          string      `json:"id"`
	RecordID    string      `json:"recordId"`
	Reference   string      `json:"reference"`
	DocumentNo  string      `json:"belgeNo"`
	Description string      `json:"description"`
	Aciklama    string      `json:"aciklama"`
	Amount      json.Number `json:"amount"`
	Tutar       json.Number `json:"tutar"`
	Currency    string      `json:"currency"`
	ParaBirimi  string      `json:"paraBirimi"`
	Kind        string      `json:"kind"`
	BorcAlacak  string      `json:"borcAlacak"`
	Settled     *bool       `json:"settled"`
	Financed    *bool       `json:"finanse"`
	DueDate     string      `json:"dueDate"`
	VadeTarihi  string      `json:"vadeTarihi"`
	AccountName string      `json:"accountName"`
	BankaAdi    string      `json:"bankaAdi"`
	AccountRef  string      `json:"accountRef"`
	HesapKodu   string      `json:"hesapKodu"`
	IBAN        string      `json:"iban"`
	CreatedBy   string      `json:"createdBy"`
	CreatedAt   string      `json:"createdAt"`
	CompanyCode string      `json:"companyCode"`
	FirmaKodu   string      `json:"firmaKodu"`
}

// RawPersonRecord covers the employee endpoints. The active and passive
// personnel sources share this shape; Source marks which endpoint a row came
// from so the dedup rule can prefer the active one.
type RawPersonRecord struct {
	ID            string      `json:"id"`
	PersonelID    string      `json:"personelId"`
	FullName      string      `json:"fullName"`
	AdSoyad       string      `json:"adSoyad"`
	Gender        string      `json:"gender"`
	Cinsiyet      string      `json:"cinsiyet"`
	MaritalStatus string      `json:"maritalStatus"`
	MedeniHal     string      `json:"medeniHal"`
	BirthDate     string      `json:"birthDate"`
	DogumTarihi   string      `json:"dogumTarihi"`
	StartDate     string      `json:"startDate"`
	GirisTarihi   string      `json:"girisTarihi"`
	EndDate       string      `json:"endDate"`
	CikisTarihi   string      `json:"cikisTarihi"`
	Salary        json.Number `json:"salary"`
	Maas          json.Number `json:"maas"`
	PrevSalary    json.Number `json:"prevSalary"`
	Currency      string      `json:"currency"`
	SalaryType    string      `json:"salaryType"`
	CostCenter    string      `json:"costCenter"`
	Company       string      `json:"company"`
	Department    string      `json:"department"`
	Departman     string      `json:"departman"`
	Title         string      `json:"title"`
	Unvan         string      `json:"unvan"`
	Source        string      `json:"-"`
}

// Raw source tags set by the fetch layer before normalization.
const (
	SourceActivePersonnel  = "active"
	SourcePassivePersonnel = "passive"
)
