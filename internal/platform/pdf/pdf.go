// Package pdf renders simple tabular documents with gofpdf.
package pdf

import (
	"fmt"
	"io"
	"time"

	"github.com/jung-kurt/gofpdf"
)

type Document struct {
	Title       string
	Subtitle    string
	GeneratedAt time.Time
	Sections    []Section
}

// Section is a heading followed by key/value facts and an optional table.
type Section struct {
	Heading string
	Facts   []Fact
	Columns []string
	Rows    [][]string
}

type Fact struct {
	Label string
	Value string
}

const (
	pageWidth   = 190.0
	lineHeight  = 7.0
	tableHeight = 6.0
)

// Render writes doc as an A4 portrait PDF.
func Render(w io.Writer, doc Document) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(doc.Title, false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, doc.Title)
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 10)
	if doc.Subtitle != "" {
		pdf.Cell(0, lineHeight, doc.Subtitle)
		pdf.Ln(lineHeight)
	}
	if !doc.GeneratedAt.IsZero() {
		pdf.Cell(0, lineHeight, "Generated: "+doc.GeneratedAt.Format("2006-01-02 15:04 MST"))
		pdf.Ln(lineHeight)
	}

	for _, section := range doc.Sections {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 8, section.Heading)
		pdf.Ln(9)
		pdf.SetFont("Helvetica", "", 10)
		for _, fact := range section.Facts {
			pdf.Cell(60, lineHeight, fact.Label)
			pdf.Cell(0, lineHeight, fact.Value)
			pdf.Ln(lineHeight)
		}
		if len(section.Columns) > 0 {
			writeTable(pdf, section.Columns, section.Rows)
		}
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render pdf %q: %w", doc.Title, err)
	}
	return nil
}

func writeTable(pdf *gofpdf.Fpdf, columns []string, rows [][]string) {
	width := pageWidth / float64(len(columns))
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	for _, col := range columns {
		pdf.CellFormat(width, tableHeight, col, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetFont("Helvetica", "", 9)
	for _, row := range rows {
		for i := range columns {
			value := ""
			if i < len(row) {
				value = row[i]
			}
			pdf.CellFormat(width, tableHeight, value, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}
}
