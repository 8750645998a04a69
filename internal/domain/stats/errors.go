package stats

import "errors"

var (
	ErrInvalidRange  = errors.New("invalid date range")
	ErrInvalidPeriod = errors.New("invalid period")
)
