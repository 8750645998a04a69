package payroll

const (
	ElementTypeEarning   = "earning"
	ElementTypeDeduction = "deduction"

	WarningNegativeNet = "negative_net"

	DefaultCurrency = "USD"

	// PeriodLayout is the YYYY-MM key a payroll record is filed under.
	PeriodLayout = "2006-01"
)
