package shared

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"hrerp/internal/domain/stats"
	"hrerp/internal/platform/datastore"
)

func TestParseRange(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?from=2024-03-01&to=2024-03-31&period=week", nil)
	got, err := ParseRange(req, 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.From.Equal(time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)) || got.Period != stats.PeriodWeek {
		t.Fatalf("unexpected range: %+v", got)
	}
}

func TestParseRangeDefaultsAndErrors(t *testing.T) {
	got, err := ParseRange(httptest.NewRequest(http.MethodGet, "/", nil), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.To.Sub(got.From) != 6*24*time.Hour || got.Period != stats.PeriodDay {
		t.Fatalf("expected a seven day daily window, got %+v", got)
	}

	_, err = ParseRange(httptest.NewRequest(http.MethodGet, "/?from=2024-03-10&to=2024-03-01&period=year", nil), 7)
	var verr *datastore.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected a validation error, got %v", err)
	}
	fields := map[string]bool{}
	for _, issue := range verr.Fields {
		fields[issue.Field] = true
	}
	if !fields["from"] || !fields["to"] || !fields["period"] {
		t.Fatalf("expected from, to and period issues, got %+v", verr.Fields)
	}

	_, err = ParseRange(httptest.NewRequest(http.MethodGet, "/?from=March", nil), 7)
	if !errors.Is(err, datastore.ErrInvalidValue) {
		t.Fatalf("expected an invalid value, got %v", err)
	}
}

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	dst := payload{Name: "kept", Count: 1}
	req := httptest.NewRequest(http.MethodPatch, "/", strings.NewReader(`{"count":5}`))
	if err := DecodeJSON(req, &dst); err != nil {
		t.Fatalf("DecodeJSON returned error: %v", err)
	}
	if dst.Name != "kept" || dst.Count != 5 {
		t.Fatalf("expected merge onto existing value, got %+v", dst)
	}

	for _, body := range []string{``, `{"unknown":1}`, `{"count":1} {}`} {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		if err := DecodeJSON(req, &dst); err == nil {
			t.Fatalf("expected error for body %q", body)
		}
	}
}
