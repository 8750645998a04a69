package payroll

import (
	"strconv"

	"hrerp/internal/platform/pdf"
)

func PayslipDocument(p Payslip) pdf.Document {
	money := func(v float64) string {
		return strconv.FormatFloat(v, 'f', 2, 64) + " " + p.Currency
	}
	section := pdf.Section{
		Heading: "Pay",
		Facts: []pdf.Fact{
			{Label: "Gross", Value: money(p.Gross)},
			{Label: "Deductions", Value: money(p.Deductions)},
			{Label: "Net", Value: money(p.Net)},
		},
	}
	for _, w := range p.Warnings {
		section.Facts = append(section.Facts, pdf.Fact{Label: "Warning", Value: w})
	}
	return pdf.Document{
		Title:    "Payslip",
		Subtitle: p.EmployeeName + ", period " + p.Period,
		Sections: []pdf.Section{section},
	}
}
