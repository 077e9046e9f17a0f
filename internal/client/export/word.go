package export

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// writeWord builds a minimal WordprocessingML package: one heading
// paragraph and one table per section, zipped with the mandatory
// content-type and relationship parts. Enough for Word and LibreOffice
// to open it; styling is out of scope.
func writeWord(w io.Writer, title string, header []string, sections []Section) error {
	archive := zip.NewWriter(w)

	parts := []struct {
		name string
		body string
	}{
		{"[Content_Types].xml", wordContentTypes},
		{"_rels/.rels", wordRels},
		{"word/document.xml", wordDocument(title, header, sections)},
	}
	for _, part := range parts {
		f, err := archive.Create(part.name)
		if err != nil {
			return fmt.Errorf("create %s: %w", part.name, err)
		}
		if _, err := io.WriteString(f, part.body); err != nil {
			return fmt.Errorf("write %s: %w", part.name, err)
		}
	}

	if err := archive.Close(); err != nil {
		return fmt.Errorf("finalize docx: %w", err)
	}
	return nil
}

const wordContentTypes = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
<Default Extension="xml" ContentType="application/xml"/>
<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`

const wordRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`

func wordDocument(title string, header []string, sections []Section) string {
	var b strings.Builder

	b.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n")
	b.WriteString(`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`)

	writeParagraph(&b, title, true)
	for _, section := range sections {
		writeParagraph(&b, section.Label, true)
		writeTable(&b, header, section.Rows)
		writeParagraph(&b, "", false)
	}

	b.WriteString(`</w:body></w:document>`)
	return b.String()
}

func writeParagraph(b *strings.Builder, text string, bold bool) {
	b.WriteString(`<w:p><w:r>`)
	if bold {
		b.WriteString(`<w:rPr><w:b/></w:rPr>`)
	}
	b.WriteString(`<w:t xml:space="preserve">`)
	writeEscaped(b, text)
	b.WriteString(`</w:t></w:r></w:p>`)
}

func writeTable(b *strings.Builder, header []string, rows [][]string) {
	b.WriteString(`<w:tbl><w:tblPr><w:tblBorders>` +
		`<w:top w:val="single"/><w:bottom w:val="single"/>` +
		`<w:left w:val="single"/><w:right w:val="single"/>` +
		`<w:insideH w:val="single"/><w:insideV w:val="single"/>` +
		`</w:tblBorders></w:tblPr>`)

	writeTableRow(b, header, true)
	for _, row := range rows {
		cells := row
		if len(cells) < len(header) {
			padded := make([]string, len(header))
			copy(padded, cells)
			cells = padded
		}
		writeTableRow(b, cells, false)
	}

	b.WriteString(`</w:tbl>`)
}

func writeTableRow(b *strings.Builder, cells []string, bold bool) {
	b.WriteString(`<w:tr>`)
	for _, cell := range cells {
		b.WriteString(`<w:tc>`)
		writeParagraph(b, cell, bold)
		b.WriteString(`</w:tc>`)
	}
	b.WriteString(`</w:tr>`)
}

func writeEscaped(b *strings.Builder, text string) {
	// xml.EscapeText cannot fail on a strings.Builder
	_ = xml.EscapeText(b, []byte(text))
}
