package payroll

type InputLine struct {
	Type   string
	Amount float64
}

type Amounts struct {
	Gross      float64
	Deductions float64
	Net        float64
}

// ComputePayroll adds earning lines to the base salary and subtracts
// deduction lines. Lines of any other type are ignored.
func ComputePayroll(baseSalary float64, inputs []InputLine) Amounts {
	a := Amounts{Gross: baseSalary}
	for _, input := range inputs {
		switch input.Type {
		case ElementTypeEarning:
			a.Gross += input.Amount
		case ElementTypeDeduction:
			a.Deductions += input.Amount
		}
	}
	a.Net = a.Gross - a.Deductions
	return a
}
