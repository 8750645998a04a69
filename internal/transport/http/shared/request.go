package shared

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"hrerp/internal/domain/stats"
	"hrerp/internal/platform/datastore"
)

var ErrEmptyBody = errors.New("request body is empty")

// DecodeJSON decodes one JSON object into dst, rejecting unknown fields and
// trailing data. dst may already hold values; only keys present in the body
// are overwritten.
func DecodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return ErrEmptyBody
		}
		return fmt.Errorf("invalid json: %w", err)
	}
	if dec.More() {
		return errors.New("invalid json: trailing data")
	}
	return nil
}

// Range is a validated from/to/period query.
type Range struct {
	From   time.Time
	To     time.Time
	Period stats.Period
}

// ParseRange reads from, to and period. Missing bounds default to the
// trailing window of defaultDays days ending today in UTC. Problems come back
// together as a *datastore.ValidationError.
func ParseRange(r *http.Request, defaultDays int) (Range, error) {
	q := r.URL.Query()
	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	out := Range{To: today, From: today.AddDate(0, 0, -(defaultDays - 1))}

	var issues datastore.Issues
	if raw := strings.TrimSpace(q.Get("from")); raw != "" {
		if parsed, ok := dateField(&issues, "from", raw); ok {
			out.From = parsed
		}
	}
	if raw := strings.TrimSpace(q.Get("to")); raw != "" {
		if parsed, ok := dateField(&issues, "to", raw); ok {
			out.To = parsed
		}
	}
	if out.To.Before(out.From) {
		issues.Add("from", "must be on or before to")
		issues.Add("to", "must be on or after from")
	}

	period, err := stats.ParsePeriod(q.Get("period"))
	if err != nil {
		issues.Add("period", "must be one of day, week, month")
	}
	out.Period = period
	return out, issues.Err()
}
