package export

import (
	"archive/zip"
	"bytes"
	"encoding/csv"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type prospection struct {
	Partenaire string
	Statut     string
	Date       time.Time
}

var prospectionMapper = Mapper[prospection]{
	Header: []string{"Partenaire", "Statut"},
	Row:    func(p prospection) []string { return []string{p.Partenaire, p.Statut} },
	Date:   func(p prospection) time.Time { return p.Date },
}

func day(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func sampleRecords() []prospection {
	return []prospection{
		{Partenaire: "ACME", Statut: "A relancer", Date: day("2024-03-01")},
		{Partenaire: "Globex", Statut: "Acceptée", Date: day("2024-05-12")},
		{Partenaire: "Initech", Statut: "En cours", Date: day("2024-03-01")},
		{Partenaire: "Umbrella", Statut: "Refusée"},
		{Partenaire: "Stark", Statut: "En cours", Date: day("2024-05-12")},
	}
}

func TestGroup_SectionsByDateDescending(t *testing.T) {
	sections := group(sampleRecords(), prospectionMapper)

	require.Len(t, sections, 3, "two distinct dates plus the dateless bucket")
	assert.Equal(t, "12/05/2024", sections[0].Label)
	assert.Equal(t, "01/03/2024", sections[1].Label)
	assert.Equal(t, SansDate, sections[2].Label)

	total := 0
	for _, s := range sections {
		total += len(s.Rows)
	}
	assert.Equal(t, 5, total, "section row counts sum to the record count")
}

func TestGroup_SameDayDifferentTimesShareSection(t *testing.T) {
	records := []prospection{
		{Partenaire: "a", Date: day("2024-05-12").Add(9 * time.Hour)},
		{Partenaire: "b", Date: day("2024-05-12").Add(17 * time.Hour)},
	}
	sections := group(records, prospectionMapper)

	require.Len(t, sections, 1)
	assert.Len(t, sections[0].Rows, 2)
}

func TestWrite_EmptyInput(t *testing.T) {
	for _, format := range []Format{FormatCSV, FormatPDF, FormatWord} {
		t.Run(string(format), func(t *testing.T) {
			var buf bytes.Buffer
			err := Write(&buf, format, "Prospections", nil, prospectionMapper)
			require.ErrorIs(t, err, ErrNoRecords)
			assert.Zero(t, buf.Len(), "nothing may be written for an empty set")
		})
	}
}

func TestWrite_CSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatCSV, "Prospections", sampleRecords(), prospectionMapper))

	r := csv.NewReader(&buf)
	r.Comma = ';'
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	require.NoError(t, err)

	require.Equal(t, []string{"Prospections"}, rows[0])

	var labels []string
	for _, row := range rows {
		if len(row) == 1 && row[0] != "Prospections" && row[0] != "" {
			labels = append(labels, row[0])
		}
	}
	assert.Equal(t, []string{"12/05/2024", "01/03/2024", SansDate}, labels)

	content := strings.Join(flatten(rows), "\n")
	assert.Contains(t, content, "ACME;A relancer")
	assert.Contains(t, content, "Umbrella;Refusée")
}

func TestWrite_PDF(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatPDF, "Prospections", sampleRecords(), prospectionMapper))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}

func TestWrite_Word(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatWord, "Prospections", sampleRecords(), prospectionMapper))

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)

	doc := readZipPart(t, zr, "word/document.xml")
	assert.Equal(t, 3, strings.Count(doc, "<w:tbl>"), "one table per section")
	assert.Contains(t, doc, "12/05/2024")
	assert.Contains(t, doc, SansDate)
	assert.Contains(t, doc, "Globex")

	readZipPart(t, zr, "[Content_Types].xml")
	readZipPart(t, zr, "_rels/.rels")
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{in: "csv", want: FormatCSV},
		{in: "pdf", want: FormatPDF},
		{in: "word", want: FormatWord},
		{in: "docx", want: FormatWord},
		{in: "xlsx", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tc := range tests {
		got, err := ParseFormat(tc.in)
		if tc.wantErr {
			assert.Error(t, err, tc.in)
			continue
		}
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got)
	}
}

func TestFormatExt(t *testing.T) {
	assert.Equal(t, ".csv", FormatCSV.Ext())
	assert.Equal(t, ".pdf", FormatPDF.Ext())
	assert.Equal(t, ".docx", FormatWord.Ext())
}

func flatten(rows [][]string) []string {
	var out []string
	for _, row := range rows {
		out = append(out, strings.Join(row, ";"))
	}
	return out
}

func readZipPart(t *testing.T, zr *zip.Reader, name string) string {
	t.Helper()
	f, err := zr.Open(name)
	require.NoError(t, err, name)
	defer f.Close()

	data, err := io.ReadAll(f)
	require.NoError(t, err)
	return string(data)
}
