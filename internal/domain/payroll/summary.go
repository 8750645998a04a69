package payroll

import (
	"math"
	"sort"
	"time"

	"hrerp/internal/domain/rollup"
)

// ParsePeriod checks a YYYY-MM key.
func ParsePeriod(value string) (time.Time, error) {
	t, err := time.Parse(PeriodLayout, value)
	if err != nil {
		return time.Time{}, ErrInvalidPeriod
	}
	return t, nil
}

func BuildPayslip(r Record) Payslip {
	amounts := ComputePayroll(r.BaseSalary, r.Lines())
	slip := Payslip{
		RecordID:     r.ID,
		EmployeeID:   r.EmployeeID,
		EmployeeName: r.EmployeeName,
		Period:       r.Period,
		Currency:     r.Currency,
		Gross:        amounts.Gross,
		Deductions:   amounts.Deductions,
		Net:          amounts.Net,
	}
	if slip.EmployeeName == "" {
		slip.EmployeeName = "Unknown"
	}
	if amounts.Net < 0 {
		slip.Warnings = append(slip.Warnings, WarningNegativeNet)
	}
	return slip
}

// Summarize builds payslips for one period and totals them per currency.
// Amounts in different currencies are never added together.
func Summarize(period string, records []Record) PeriodSummary {
	summary := PeriodSummary{Period: period, Payslips: make([]Payslip, 0, len(records))}
	byCurrency := map[string]*Totals{}
	nets := map[string][]float64{}
	for _, r := range records {
		slip := BuildPayslip(r)
		summary.Payslips = append(summary.Payslips, slip)
		summary.Warnings += len(slip.Warnings)

		totals, ok := byCurrency[slip.Currency]
		if !ok {
			totals = &Totals{Currency: slip.Currency}
			byCurrency[slip.Currency] = totals
		}
		totals.Employees++
		totals.Gross += slip.Gross
		totals.Deductions += slip.Deductions
		totals.Net += slip.Net
		nets[slip.Currency] = append(nets[slip.Currency], slip.Net)
	}

	summary.Totals = make([]Totals, 0, len(byCurrency))
	for currency, totals := range byCurrency {
		totals.AverageNet = roundCents(rollup.Average(nets[currency]))
		summary.Totals = append(summary.Totals, *totals)
	}
	sort.Slice(summary.Totals, func(i, j int) bool {
		return summary.Totals[i].Currency < summary.Totals[j].Currency
	})
	return summary
}

func roundCents(value float64) float64 {
	return math.Round(value*100) / 100
}
