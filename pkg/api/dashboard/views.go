package dashboard

import (
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"finadash/pkg/core/calc"
	"finadash/pkg/core/config"
	"finadash/pkg/core/filter"
	"finadash/pkg/core/snapshot"
	"finadash/pkg/models"
)

// BankingView is the derived, read-only structure behind the banking and
// accounting dashboards. Everything in it is recomputed from the current
// snapshot under the given filter state on every request.
type BankingView struct {
	Cycle        uuid.UUID                 `json:"cycle"`
	GeneratedAt  time.Time                 `json:"generatedAt"`
	Sources      []snapshot.SourceStatus   `json:"sources"`
	TotalRecords int                       `json:"totalRecords"`
	TotalDebit   decimal.Decimal           `json:"totalDebit"`
	TotalCredit  decimal.Decimal           `json:"totalCredit"`
	Net          decimal.Decimal           `json:"net"`
	TopBanks     []calc.Group              `json:"topBanks"`
	Currencies   []calc.Group              `json:"currencies"`
	ByKind       []calc.Group              `json:"byKind"`
	Aging        []calc.BucketResult       `json:"aging"`
	Page         []models.FinancialRecord  `json:"page"`
	PageNumber   int                       `json:"pageNumber"`
	TotalPages   int                       `json:"totalPages"`
}

// HRView is the derived structure behind the HR dashboard.
type HRView struct {
	Cycle          uuid.UUID               `json:"cycle"`
	GeneratedAt    time.Time               `json:"generatedAt"`
	Sources        []snapshot.SourceStatus `json:"sources"`
	Headcount      int                     `json:"headcount"`
	ActiveCount    int                     `json:"activeCount"`
	GenderSplit    []calc.Group            `json:"genderSplit"`
	SalaryBands    []calc.BucketResult     `json:"salaryBands"`
	AgeBuckets     []calc.BucketResult     `json:"ageBuckets"`
	TenureBuckets  []calc.BucketResult     `json:"tenureBuckets"`
	TopDepartments []calc.Group            `json:"topDepartments"`
	SalaryTotal    decimal.Decimal         `json:"salaryTotal"`
	Page           []models.PersonRecord   `json:"page"`
	PageNumber     int                     `json:"pageNumber"`
	TotalPages     int                     `json:"totalPages"`
}

// topN for ranking panels; matches the dashboards' card layouts.
const topN = 5

// BuildBankingView derives the banking dashboard from a snapshot.
func BuildBankingView(snap snapshot.Snapshot, state filter.State, cfg config.Config) BankingView {
	state = state.Normalized()
	filtered := filter.ApplyFinancial(snap.Financial, filter.CompileFinancial(state))

	totalDebit, totalCredit := decimal.Zero, decimal.Zero
	for _, r := range filtered {
		switch r.Kind {
		case models.KindDebit:
			totalDebit = totalDebit.Add(r.Magnitude())
		case models.KindCredit:
			totalCredit = totalCredit.Add(r.Magnitude())
		}
	}

	// Bank activity ranks by magnitude; direction is irrelevant for volume.
	banks := calc.Aggregate(filtered,
		func(r models.FinancialRecord) string { return r.AccountName },
		models.FinancialRecord.Magnitude)

	currencies := calc.Aggregate(filtered,
		func(r models.FinancialRecord) string { return r.Currency },
		models.FinancialRecord.Magnitude)

	byKind := calc.Aggregate(filtered,
		func(r models.FinancialRecord) string { return string(r.Kind) },
		models.FinancialRecord.Magnitude)

	now := time.Now()
	aging := calc.Bucketize(filtered, cfg.AgingBuckets(), func(r models.FinancialRecord) float64 {
		if r.DueDate == nil {
			return math.NaN() // no due date: excluded from every aging bin
		}
		return calc.DaysUntil(*r.DueDate, now)
	})

	return BankingView{
		Cycle:        snap.Cycle,
		GeneratedAt:  now,
		Sources:      snap.Sources,
		TotalRecords: len(filtered),
		TotalDebit:   totalDebit,
		TotalCredit:  totalCredit,
		Net:          totalDebit.Sub(totalCredit),
		TopBanks:     calc.RankGroups(banks, calc.MetricSum, topN),
		Currencies:   calc.RankByCurrencyPriority(currencies, 0),
		ByKind:       calc.RankGroups(byKind, calc.MetricSum, 0),
		Aging:        aging,
		Page:         calc.Paginate(filtered, state.Page, state.PageSize),
		PageNumber:   state.Page,
		TotalPages:   calc.TotalPages(len(filtered), state.PageSize),
	}
}

// BuildHRView derives the HR dashboard from a snapshot.
func BuildHRView(snap snapshot.Snapshot, state filter.State, cfg config.Config) HRView {
	state = state.Normalized()
	filtered := filter.ApplyPerson(snap.People, filter.CompilePerson(state))

	active := 0
	salaryTotal := decimal.Zero
	for _, p := range filtered {
		if p.Active {
			active++
		}
		salaryTotal = salaryTotal.Add(p.Salary)
	}

	genders := calc.Aggregate(filtered,
		func(p models.PersonRecord) string { return p.Gender },
		func(p models.PersonRecord) decimal.Decimal { return p.Salary })

	departments := calc.Aggregate(filtered,
		func(p models.PersonRecord) string { return p.Department },
		func(p models.PersonRecord) decimal.Decimal { return p.Salary })

	now := time.Now()
	salaryBands := calc.Bucketize(filtered, cfg.SalaryBands(), func(p models.PersonRecord) float64 {
		f, _ := p.Salary.Float64()
		return f
	})
	ages := calc.Bucketize(filtered, cfg.AgeBuckets(), func(p models.PersonRecord) float64 {
		if p.BirthDate == nil {
			return -1
		}
		return calc.YearsBetween(*p.BirthDate, now)
	})
	// Tenure counts up to separation for ex-employees, up to now otherwise.
	tenure := calc.Bucketize(filtered, cfg.TenureBuckets(), func(p models.PersonRecord) float64 {
		if p.StartDate == nil {
			return -1
		}
		end := now
		if p.EndDate != nil {
			end = *p.EndDate
		}
		return calc.YearsBetween(*p.StartDate, end)
	})

	return HRView{
		Cycle:          snap.Cycle,
		GeneratedAt:    now,
		Sources:        snap.Sources,
		Headcount:      len(filtered),
		ActiveCount:    active,
		GenderSplit:    calc.RankGroups(genders, calc.MetricCount, 0),
		SalaryBands:    salaryBands,
		AgeBuckets:     ages,
		TenureBuckets:  tenure,
		TopDepartments: calc.RankGroups(departments, calc.MetricCount, topN),
		SalaryTotal:    salaryTotal,
		Page:           calc.Paginate(filtered, state.Page, state.PageSize),
		PageNumber:     state.Page,
		TotalPages:     calc.TotalPages(len(filtered), state.PageSize),
	}
}
