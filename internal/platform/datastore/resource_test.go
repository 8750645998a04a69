package datastore

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"

	pgxmock "github.com/pashagolub/pgxmock/v3"
)

func TestResourceCreateRunsValidatorFirst(t *testing.T) {
	t.Parallel()
	table, mock := newMockTable(t)
	resource := NewResource(table, func(_ context.Context, _, id string, w widget) (widget, error) {
		var issues Issues
		issues.Required("name", w.Name)
		issues.NonNegative("count", float64(w.Count))
		if id != "" {
			issues.Add("id", "unexpected on create")
		}
		return w, issues.Err()
	})

	_, err := resource.Create(context.Background(), "tenant-1", widget{Count: -1})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(verr.Fields) != 2 || verr.Fields[0].Field != "name" || verr.Fields[1].Field != "count" {
		t.Fatalf("unexpected fields: %+v", verr.Fields)
	}
	if !errors.Is(err, ErrInvalidValue) {
		t.Fatal("expected validation error to match ErrInvalidValue")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("validator must run before any statement: %v", err)
	}
}

func TestResourceReplaceWritesEveryColumn(t *testing.T) {
	t.Parallel()
	table, mock := newMockTable(t)
	var seenID string
	resource := NewResource(table, func(_ context.Context, _, id string, w widget) (widget, error) {
		seenID = id
		w.Name = strings.TrimSpace(w.Name)
		return w, nil
	})

	query := regexp.QuoteMeta("UPDATE widgets SET count = $3, name = $4, updated_at = now() WHERE tenant_id = $1 AND id = $2")
	mock.ExpectQuery(query).
		WithArgs("tenant-1", "w-1", 5, "cog").
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "count"}).AddRow("w-1", "cog", 5))

	got, err := resource.Replace(context.Background(), "tenant-1", "w-1", widget{Name: " cog ", Count: 5})
	if err != nil {
		t.Fatalf("Replace returned error: %v", err)
	}
	if seenID != "w-1" || got.Name != "cog" {
		t.Fatalf("unexpected result id=%q row=%+v", seenID, got)
	}
}

func TestIssuesErrNilWhenEmpty(t *testing.T) {
	var issues Issues
	issues.Enum("status", "active", "active", "inactive")
	issues.Range("level", 50, 0, 100)
	if err := issues.Err(); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	issues.Range("level", 101, 0, 100)
	if err := issues.Err(); err == nil || err.Error() != "validation failed: level: must be between 0 and 100" {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestResourceObserversSeeSuccessfulWritesOnly(t *testing.T) {
	t.Parallel()
	table, mock := newMockTable(t)
	resource := NewResource[widget](table, nil)
	var seen []Change
	resource.Observe(func(_ context.Context, tenantID string, c Change) {
		if tenantID != "tenant-1" {
			t.Errorf("unexpected tenant %q", tenantID)
		}
		seen = append(seen, c)
	})

	mock.ExpectQuery("INSERT INTO widgets").
		WithArgs("tenant-1", "gear", 1).
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "count"}).AddRow("w-1", "gear", 1))
	mock.ExpectQuery("UPDATE widgets SET count").
		WithArgs("tenant-1", "w-1", 2).
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "count"}).AddRow("w-1", "gear", 2))
	mock.ExpectExec("DELETE FROM widgets").
		WithArgs("tenant-1", "w-2").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectExec("DELETE FROM widgets").
		WithArgs("tenant-1", "w-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	ctx := context.Background()
	if _, err := resource.Create(ctx, "tenant-1", widget{Name: "gear", Count: 1}); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if _, err := resource.Update(ctx, "tenant-1", "w-1", Patch{"count": 2}); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if err := resource.Delete(ctx, "tenant-1", "w-2"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := resource.Delete(ctx, "tenant-1", "w-1"); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}

	if len(seen) != 3 {
		t.Fatalf("expected 3 changes, got %+v", seen)
	}
	if seen[0].Action != ActionCreate || seen[0].Table != "widgets" || seen[0].After.(widget).ID != "w-1" {
		t.Fatalf("unexpected create change: %+v", seen[0])
	}
	if seen[1].Action != ActionUpdate || seen[1].ID != "w-1" || seen[1].After.(widget).Count != 2 {
		t.Fatalf("unexpected update change: %+v", seen[1])
	}
	if seen[2].Action != ActionDelete || seen[2].ID != "w-1" || seen[2].After != nil {
		t.Fatalf("unexpected delete change: %+v", seen[2])
	}
}
