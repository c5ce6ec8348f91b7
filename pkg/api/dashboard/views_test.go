package dashboard

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"finadash/pkg/core/config"
	"finadash/pkg/core/filter"
	"finadash/pkg/core/snapshot"
	"finadash/pkg/models"
)

func bankingSnapshot() snapshot.Snapshot {
	overdue := time.Now().AddDate(0, 0, -3)
	upcoming := time.Now().AddDate(0, 0, 4)
	return snapshot.Snapshot{
		Financial: []models.FinancialRecord{
			{ID: "1", Kind: models.KindDebit, Amount: decimal.NewFromInt(100), Currency: "TRY", AccountName: "Garanti", DueDate: &overdue},
			{ID: "2", Kind: models.KindCredit, Amount: decimal.NewFromInt(-50), Currency: "USD", AccountName: "Akbank", DueDate: &upcoming},
			{ID: "3", Kind: models.KindDebit, Amount: decimal.NewFromInt(30), Currency: "TRY", AccountName: "Garanti"},
		},
	}
}

func TestBuildBankingViewTotals(t *testing.T) {
	view := BuildBankingView(bankingSnapshot(), filter.State{}, config.Default())

	if !view.TotalDebit.Equal(decimal.NewFromInt(130)) {
		t.Errorf("total debit: got %s", view.TotalDebit)
	}
	if !view.TotalCredit.Equal(decimal.NewFromInt(50)) {
		t.Errorf("total credit: got %s", view.TotalCredit)
	}
	if !view.Net.Equal(decimal.NewFromInt(80)) {
		t.Errorf("net: got %s", view.Net)
	}
	if view.TotalRecords != 3 {
		t.Errorf("total records: got %d", view.TotalRecords)
	}

	if len(view.TopBanks) != 2 || view.TopBanks[0].Key != "Garanti" {
		t.Errorf("bank ranking: got %+v", view.TopBanks)
	}
	if len(view.Currencies) != 2 || view.Currencies[0].Key != "TRY" {
		t.Errorf("currency priority: got %+v", view.Currencies)
	}
}

func TestBuildBankingViewAgingSkipsUndated(t *testing.T) {
	view := BuildBankingView(bankingSnapshot(), filter.State{}, config.Default())

	// Two dated records: one overdue, one due within a week. The undated
	// third record must not appear in any aging bin.
	total := 0
	for _, b := range view.Aging {
		total += b.Count
		switch b.Label {
		case "Vadesi Geçmiş":
			if b.Count != 1 {
				t.Errorf("overdue: got %d", b.Count)
			}
		case "7 Gün İçinde":
			if b.Count != 1 {
				t.Errorf("due soon: got %d", b.Count)
			}
		}
	}
	if total != 2 {
		t.Errorf("undated record leaked into aging: %+v", view.Aging)
	}
}

func TestBuildBankingViewFilterAndPagination(t *testing.T) {
	state := filter.State{Currency: "TRY", PageSize: 1, Page: 2}
	view := BuildBankingView(bankingSnapshot(), state, config.Default())

	if view.TotalRecords != 2 {
		t.Fatalf("currency filter: got %d records", view.TotalRecords)
	}
	if len(view.Page) != 1 || view.Page[0].ID != "3" {
		t.Errorf("page window: got %+v", view.Page)
	}
	if view.TotalPages != 2 {
		t.Errorf("total pages: got %d", view.TotalPages)
	}
}

func TestBuildHRViewBuckets(t *testing.T) {
	birth := time.Date(1990, 5, 1, 0, 0, 0, 0, time.UTC)
	start := time.Date(2020, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2022, 3, 1, 0, 0, 0, 0, time.UTC)
	snap := snapshot.Snapshot{
		People: []models.PersonRecord{
			{ID: "p1", Gender: models.GenderFemale, Department: "Finans", Salary: decimal.NewFromInt(40000), Active: true, BirthDate: &birth, StartDate: &start},
			{ID: "p2", Gender: models.GenderMale, Department: "Finans", Salary: decimal.NewFromInt(30000), Active: false, StartDate: &start, EndDate: &end},
			{ID: "p3", Gender: models.GenderFemale, Department: "IK", Salary: decimal.NewFromInt(120000), Active: true},
		},
	}

	view := BuildHRView(snap, filter.State{}, config.Default())

	if view.Headcount != 3 || view.ActiveCount != 2 {
		t.Errorf("headcount: got %d/%d", view.Headcount, view.ActiveCount)
	}
	if !view.SalaryTotal.Equal(decimal.NewFromInt(190000)) {
		t.Errorf("salary total: got %s", view.SalaryTotal)
	}
	if len(view.GenderSplit) != 2 || view.GenderSplit[0].Key != models.GenderFemale {
		t.Errorf("gender split must rank by count: %+v", view.GenderSplit)
	}
	if view.TopDepartments[0].Key != "Finans" {
		t.Errorf("department ranking: %+v", view.TopDepartments)
	}

	// p2 left after exactly two years: tenure counts to separation, not now.
	for _, b := range view.TenureBuckets {
		if b.Label == "1-3" && b.Count != 1 {
			t.Errorf("ex-employee tenure must stop at separation: %+v", view.TenureBuckets)
		}
	}

	// Only p1 has a birth date, so age buckets consider one person.
	aged := 0
	for _, b := range view.AgeBuckets {
		aged += b.Count
	}
	if aged != 1 {
		t.Errorf("birthless people leaked into age buckets: %+v", view.AgeBuckets)
	}
}
