package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

// PDFExporter renders datasets into a basic tabular PDF.
type PDFExporter struct{}

// NewPDFExporter constructs a PDF exporter.
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

// Render creates a PDF document with an optional title and table body. When
// the dataset declares a GroupBy column, rows are split into titled sections
// and the grouping column is dropped from the table itself.
func (e *PDFExporter) Render(data Dataset, title string) ([]byte, error) {
	if len(data.Headers) == 0 {
		return nil, fmt.Errorf("pdf requires at least one header")
	}
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 15, 10)
	pdf.AddPage()

	if title != "" {
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, 10, strings.ToUpper(title), "", 1, "C", false, 0, "")
		pdf.Ln(5)
	}

	headers := data.Headers
	if data.GroupBy != "" {
		headers = withoutHeader(headers, data.GroupBy)
	}
	colWidth := 190.0 / float64(len(headers))

	writeHeaderRow := func() {
		pdf.SetFont("Arial", "B", 10)
		for _, header := range headers {
			pdf.CellFormat(colWidth, 8, header, "1", 0, "C", false, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Arial", "", 9)
	}

	if data.GroupBy == "" {
		writeHeaderRow()
		for _, row := range data.Rows {
			writeDataRow(pdf, headers, row, colWidth)
		}
	} else {
		current := ""
		started := false
		for _, row := range data.Rows {
			if group := row[data.GroupBy]; !started || group != current {
				if started {
					pdf.Ln(4)
				}
				pdf.SetFont("Arial", "B", 11)
				pdf.CellFormat(0, 8, group, "", 1, "L", false, 0, "")
				writeHeaderRow()
				current = group
				started = true
			}
			writeDataRow(pdf, headers, row, colWidth)
		}
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func writeDataRow(pdf *gofpdf.Fpdf, headers []string, row map[string]string, colWidth float64) {
	for _, header := range headers {
		pdf.CellFormat(colWidth, 7, row[header], "1", 0, "", false, 0, "")
	}
	pdf.Ln(-1)
}

func withoutHeader(headers []string, drop string) []string {
	kept := make([]string, 0, len(headers))
	for _, h := range headers {
		if h != drop {
			kept = append(kept, h)
		}
	}
	return kept
}
