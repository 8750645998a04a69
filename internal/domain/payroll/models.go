package payroll

import "time"

type Record struct {
	ID           string    `json:"id"`
	EmployeeID   string    `json:"employeeId"`
	Period       string    `json:"period"`
	BaseSalary   float64   `json:"baseSalary"`
	Earnings     float64   `json:"earnings"`
	Deductions   float64   `json:"deductions"`
	Currency     string    `json:"currency"`
	EmployeeName string    `json:"employeeName,omitempty"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Lines expresses the record as payroll input lines for ComputePayroll.
func (r Record) Lines() []InputLine {
	return []InputLine{
		{Type: ElementTypeEarning, Amount: r.Earnings},
		{Type: ElementTypeDeduction, Amount: r.Deductions},
	}
}

type Payslip struct {
	RecordID     string   `json:"recordId"`
	EmployeeID   string   `json:"employeeId"`
	EmployeeName string   `json:"employeeName"`
	Period       string   `json:"period"`
	Currency     string   `json:"currency"`
	Gross        float64  `json:"gross"`
	Deductions   float64  `json:"deductions"`
	Net          float64  `json:"net"`
	Warnings     []string `json:"warnings,omitempty"`
}

type Totals struct {
	Currency   string  `json:"currency"`
	Employees  int     `json:"employees"`
	Gross      float64 `json:"gross"`
	Deductions float64 `json:"deductions"`
	Net        float64 `json:"net"`
	AverageNet float64 `json:"averageNet"`
}

type PeriodSummary struct {
	Period   string    `json:"period"`
	Payslips []Payslip `json:"payslips"`
	Totals   []Totals  `json:"totals"`
	Warnings int       `json:"warnings"`
}
