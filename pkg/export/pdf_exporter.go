package export

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

const (
	landscapeWidth = 277.0
	labelWidth     = 42.0
)

// PDFExporter renders a roster grid as a landscape A4 table. The first header
// is treated as the row label column and gets a wider cell.
//
// Core PDF fonts only cover cp1252, so callers pass ASCII cell values.
type PDFExporter struct{}

// NewPDFExporter constructs a PDF exporter.
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

// Render creates a PDF document with a title, the table body and an optional
// legend printed under the table.
func (e *PDFExporter) Render(data Dataset, title string, legend []string) ([]byte, error) {
	if len(data.Headers) == 0 {
		return nil, fmt.Errorf("pdf requires at least one header")
	}
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 12, 10)
	pdf.SetAutoPageBreak(true, 12)
	pdf.AddPage()

	if title != "" {
		pdf.SetFont("Arial", "B", 13)
		pdf.CellFormat(0, 9, title, "", 1, "C", false, 0, "")
		pdf.Ln(3)
	}

	widths := columnWidths(len(data.Headers))
	writeHeader := func() {
		pdf.SetFont("Arial", "B", 7)
		for i, header := range data.Headers {
			pdf.CellFormat(widths[i], 6, header, "1", 0, "C", false, 0, "")
		}
		pdf.Ln(-1)
	}
	writeHeader()

	pdf.SetFont("Arial", "", 7)
	_, pageHeight := pdf.GetPageSize()
	for _, row := range data.Rows {
		if pdf.GetY()+6 > pageHeight-12 {
			pdf.AddPage()
			writeHeader()
			pdf.SetFont("Arial", "", 7)
		}
		for i, header := range data.Headers {
			align := "C"
			if i == 0 {
				align = "L"
			}
			pdf.CellFormat(widths[i], 6, row[header], "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	if len(legend) > 0 {
		pdf.Ln(4)
		pdf.SetFont("Arial", "I", 7)
		for _, line := range legend {
			pdf.CellFormat(0, 4, line, "", 1, "L", false, 0, "")
		}
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func columnWidths(count int) []float64 {
	widths := make([]float64, count)
	if count == 1 {
		widths[0] = landscapeWidth
		return widths
	}
	widths[0] = labelWidth
	rest := (landscapeWidth - labelWidth) / float64(count-1)
	for i := 1; i < count; i++ {
		widths[i] = rest
	}
	return widths
}
