package pdf

import (
	"bytes"
	"testing"
	"time"
)

func TestRenderProducesPDF(t *testing.T) {
	var buf bytes.Buffer
	doc := Document{
		Title:       "Workforce report",
		Subtitle:    "2024-03-01 to 2024-03-31",
		GeneratedAt: time.Date(2024, time.April, 1, 8, 0, 0, 0, time.UTC),
		Sections: []Section{
			{
				Heading: "Headcount",
				Facts:   []Fact{{Label: "Total", Value: "12"}, {Label: "Active", Value: "10"}},
			},
			{
				Heading: "Departments",
				Columns: []string{"Department", "Headcount", "Active %"},
				Rows:    [][]string{{"Engineering", "7", "86"}, {"Unassigned"}},
			},
		},
	}

	if err := Render(&buf, doc); err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Fatalf("expected PDF header, got %q", buf.Bytes()[:8])
	}
}

func TestRenderEmptyDocument(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(&buf, Document{Title: "Empty"}); err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	if buf.Len() == 0 {
		t.Fatal("expected output")
	}
}
