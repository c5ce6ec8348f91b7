package normalize

import (
	"encoding/json"
	"testing"
	"time"

	"finadash/pkg/models"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string // "" means nil expected
	}{
		{"ISO with zone", "2024-05-01T10:30:00Z", "2024-05-01"},
		{"ISO without zone", "2024-05-01T10:30:00", "2024-05-01"},
		{"Space separated", "2024-05-01 10:30:00", "2024-05-01"},
		{"Date only", "2024-05-01", "2024-05-01"},
		{"Turkish dotted", "01.05.2024", "2024-05-01"},
		{"Turkish dotted with time", "01.05.2024 10:30:00", "2024-05-01"},
		{"Slash day first", "01/05/2024", "2024-05-01"},
		{"Garbage", "not-a-date", ""},
		{"Empty", "", ""},
		{"Zero sentinel", "0001-01-01T00:00:00", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseDate(tt.raw)
			if tt.want == "" {
				if got != nil {
					t.Fatalf("expected nil, got %v", got)
				}
				return
			}
			if got == nil {
				t.Fatalf("expected %s, got nil", tt.want)
			}
			if got.Format("2006-01-02") != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got.Format("2006-01-02"))
			}
		})
	}
}

func TestCanonicalCurrency(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"usd", "USD"},
		{" eur ", "EUR"},
		{"TRY", "TRY"},
		{"TL", "TRY"},   // two letters: fallback
		{"", "TRY"},     // absent: fallback
		{"TRY1", "TRY"}, // four chars: fallback
		{"U$D", "TRY"},  // non-letter: fallback
	}
	for _, tt := range tests {
		if got := CanonicalCurrency(tt.raw); got != tt.want {
			t.Errorf("CanonicalCurrency(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestCanonicalGender(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"Erkek", models.GenderMale},
		{"E", models.GenderMale},
		{"Bayan", models.GenderFemale},
		{"Kadın", models.GenderFemale},
		{"kadin", models.GenderFemale},
		{"female", models.GenderFemale},
		{"", models.GenderUnknown},
		{"xyz", models.GenderUnknown},
	}
	for _, tt := range tests {
		if got := CanonicalGender(tt.raw); got != tt.want {
			t.Errorf("CanonicalGender(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestPadCompanyCode(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"12", "0012"},
		{"1", "0001"},
		{"0012", "0012"},
		{"12345", "12345"},
		{"ABC", "ABC"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := PadCompanyCode(tt.raw); got != tt.want {
			t.Errorf("PadCompanyCode(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestNormalizeFinancialTotality(t *testing.T) {
	raws := []models.RawFinancialRecord{
		{ID: "1", Tutar: json.Number("1.234,56"), ParaBirimi: "usd", BorcAlacak: "B", FirmaKodu: "7"},
		{}, // fully malformed: must still normalize with defaults
		{RecordID: "3", Amount: json.Number("-50"), Kind: "alacak", VadeTarihi: "15.06.2024"},
	}

	records := NormalizeFinancial(raws)
	if len(records) != len(raws) {
		t.Fatalf("expected %d records, got %d", len(raws), len(records))
	}

	first := records[0]
	if first.Amount.StringFixed(2) != "1234.56" {
		t.Errorf("Turkish decimal parse: got %s", first.Amount.StringFixed(2))
	}
	if first.Currency != "USD" {
		t.Errorf("currency: got %s", first.Currency)
	}
	if first.Kind != models.KindDebit {
		t.Errorf("kind: got %s", first.Kind)
	}
	if first.CompanyCode != "0007" {
		t.Errorf("company code: got %s", first.CompanyCode)
	}

	empty := records[1]
	if empty.Currency != models.FallbackCurrency {
		t.Errorf("malformed record currency: got %q", empty.Currency)
	}
	if empty.Kind != models.KindOther {
		t.Errorf("malformed record kind: got %q", empty.Kind)
	}
	if !empty.Amount.IsZero() {
		t.Errorf("malformed record amount: got %s", empty.Amount)
	}

	third := records[2]
	if third.ID != "3" {
		t.Errorf("alternate id field: got %q", third.ID)
	}
	if third.Kind != models.KindCredit {
		t.Errorf("kind from Turkish label: got %s", third.Kind)
	}
	if third.DueDate == nil || third.DueDate.Format("2006-01-02") != "2024-06-15" {
		t.Errorf("due date: got %v", third.DueDate)
	}
}

func TestNormalizePeopleDedup(t *testing.T) {
	end := "2023-01-31"
	raws := []models.RawPersonRecord{
		{ID: "7", AdSoyad: "Ayşe Yılmaz", CikisTarihi: end, Source: models.SourcePassivePersonnel},
		{ID: "7", AdSoyad: "Ayşe Yılmaz", Source: models.SourceActivePersonnel},
		{ID: "9", FullName: "Mehmet Kaya", Source: models.SourcePassivePersonnel, CikisTarihi: end},
		{ID: "9", FullName: "Mehmet K.", Source: models.SourcePassivePersonnel, CikisTarihi: end},
	}

	people := NormalizePeople(raws)
	if len(people) != 2 {
		t.Fatalf("expected 2 deduplicated people, got %d", len(people))
	}

	byID := map[string]models.PersonRecord{}
	for _, p := range people {
		byID[p.ID] = p
	}

	if !byID["7"].Active {
		t.Error("active record should win over passive for the same ID")
	}
	if byID["9"].FullName != "Mehmet Kaya" {
		t.Errorf("first-seen should win among equals, got %q", byID["9"].FullName)
	}
}

func TestNormalizePersonActiveDerivation(t *testing.T) {
	start := time.Now().AddDate(-2, 0, 0).Format("2006-01-02")
	raws := []models.RawPersonRecord{
		{ID: "1", GirisTarihi: start},
		{ID: "2", GirisTarihi: start, CikisTarihi: "2024-01-31"},
	}
	people := NormalizePeople(raws)
	if !people[0].Active {
		t.Error("no end date should derive active=true")
	}
	if people[1].Active {
		t.Error("end date present should derive active=false")
	}
	if people[0].Gender != models.GenderUnknown {
		t.Errorf("missing gender should default, got %q", people[0].Gender)
	}
}
