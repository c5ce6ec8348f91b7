package export

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"finadash/pkg/models"
)

func TestToCSVQuoting(t *testing.T) {
	records := []models.FinancialRecord{
		{
			ID:          "1",
			Reference:   "TRF-001",
			AccountName: `Garanti "Merkez"`,
			Description: "virgül, içeren açıklama",
			Amount:      decimal.NewFromFloat(1234.5),
			Currency:    "TRY",
			Kind:        models.KindDebit,
		},
	}

	out, err := ToCSV(records, FinancialColumns())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := strings.Split(strings.TrimRight(out, "\r\n"), "\r\n")
	if len(lines) != 2 {
		t.Fatalf("expected header + 1 row, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], `"ID","Referans"`) {
		t.Errorf("header: %s", lines[0])
	}
	if !strings.Contains(lines[1], `"Garanti ""Merkez"""`) {
		t.Errorf("embedded quotes must be doubled: %s", lines[1])
	}
	if !strings.Contains(lines[1], `"virgül, içeren açıklama"`) {
		t.Errorf("comma-bearing field must stay one quoted field: %s", lines[1])
	}
	if !strings.Contains(lines[1], `"1234.50"`) {
		t.Errorf("amount formatting: %s", lines[1])
	}
}

func TestToCSVNilFieldsBecomeEmpty(t *testing.T) {
	// A zero-valued record exercises every nil-safe accessor.
	out, err := ToCSV([]models.PersonRecord{{}}, PersonColumns())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, `""`) {
		t.Error("nil dates should serialize as empty quoted fields")
	}
}

func TestToCSVEmptyCollection(t *testing.T) {
	_, err := ToCSV([]models.FinancialRecord{}, FinancialColumns())
	if !errors.Is(err, ErrNothingToExport) {
		t.Fatalf("expected ErrNothingToExport, got %v", err)
	}
}
