package payroll

import "errors"

var ErrInvalidPeriod = errors.New("payroll period must be formatted YYYY-MM")
