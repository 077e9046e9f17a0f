package export

import (
	"encoding/csv"
	"fmt"
	"io"
)

// writeCSV emits one block per section: a label line, the header, then the
// rows, separated by blank lines. Semicolon-delimited so French Excel
// opens it directly.
func writeCSV(w io.Writer, title string, header []string, sections []Section) error {
	cw := csv.NewWriter(w)
	cw.Comma = ';'

	if err := cw.Write([]string{title}); err != nil {
		return fmt.Errorf("write title: %w", err)
	}

	for _, section := range sections {
		if err := cw.Write(nil); err != nil {
			return fmt.Errorf("write separator: %w", err)
		}
		if err := cw.Write([]string{section.Label}); err != nil {
			return fmt.Errorf("write section label: %w", err)
		}
		if err := cw.Write(header); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
		for _, row := range section.Rows {
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("write row: %w", err)
			}
		}
	}

	cw.Flush()
	return cw.Error()
}
