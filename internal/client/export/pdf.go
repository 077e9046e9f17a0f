package export

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"
)

// writePDF renders one bold section heading and one table per date bucket
// on A4 landscape, columns sized evenly across the page width.
func writePDF(w io.Writer, title string, header []string, sections []Section) error {
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 10, title, "", 1, "C", false, 0, "")
	pdf.Ln(2)

	pageWidth, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	colWidth := (pageWidth - left - right) / float64(len(header))

	for _, section := range sections {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(0, 8, section.Label, "", 1, "L", false, 0, "")

		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetFillColor(230, 230, 230)
		for _, cell := range header {
			pdf.CellFormat(colWidth, 7, cell, "1", 0, "L", true, 0, "")
		}
		pdf.Ln(-1)

		pdf.SetFont("Helvetica", "", 9)
		for _, row := range section.Rows {
			for i := 0; i < len(header); i++ {
				var cell string
				if i < len(row) {
					cell = row[i]
				}
				pdf.CellFormat(colWidth, 6, cell, "1", 0, "L", false, 0, "")
			}
			pdf.Ln(-1)
		}
		pdf.Ln(4)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return nil
}
