// Package export renders tabular resource data into downloadable artifacts.
// All formats share one grouping contract: rows are bucketed by a date
// field, buckets are ordered newest first, and records without a date land
// in a trailing "Sans date" bucket.
package export

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"time"
)

// SansDate labels the bucket of records that carry no date.
const SansDate = "Sans date"

// dateLabel is the French day format used for section headings.
const dateLabel = "02/01/2006"

// Format selects the output artifact type.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatPDF  Format = "pdf"
	FormatWord Format = "word"
)

// ErrNoRecords is returned when asked to export an empty set. Nothing is
// written in that case.
var ErrNoRecords = errors.New("nothing to export")

// ParseFormat validates a user-supplied format string.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatCSV, FormatPDF, FormatWord:
		return Format(s), nil
	case "docx":
		return FormatWord, nil
	default:
		return "", fmt.Errorf("unknown export format %q (want csv, pdf or word)", s)
	}
}

// Ext returns the file extension for the format, dot included.
func (f Format) Ext() string {
	switch f {
	case FormatPDF:
		return ".pdf"
	case FormatWord:
		return ".docx"
	default:
		return ".csv"
	}
}

// Mapper turns domain records into rows. Date returning the zero time
// means the record has no date.
type Mapper[T any] struct {
	Header []string
	Row    func(T) []string
	Date   func(T) time.Time
}

// Section is one date bucket, rendered as its own table.
type Section struct {
	Label string
	Rows  [][]string
}

// Write renders records to w in the requested format. An empty record set
// is rejected before anything reaches w.
func Write[T any](w io.Writer, format Format, title string, records []T, m Mapper[T]) error {
	if len(records) == 0 {
		return ErrNoRecords
	}

	sections := group(records, m)

	switch format {
	case FormatCSV:
		return writeCSV(w, title, m.Header, sections)
	case FormatPDF:
		return writePDF(w, title, m.Header, sections)
	case FormatWord:
		return writeWord(w, title, m.Header, sections)
	default:
		return fmt.Errorf("unknown export format %q", format)
	}
}

// group buckets records by calendar day, newest first, dateless last.
func group[T any](records []T, m Mapper[T]) []Section {
	type bucket struct {
		day  time.Time
		rows [][]string
	}

	byDay := map[time.Time]*bucket{}
	var dateless [][]string

	for _, rec := range records {
		row := m.Row(rec)

		date := time.Time{}
		if m.Date != nil {
			date = m.Date(rec)
		}
		if date.IsZero() {
			dateless = append(dateless, row)
			continue
		}

		y, mo, d := date.Date()
		day := time.Date(y, mo, d, 0, 0, 0, 0, time.UTC)
		b, ok := byDay[day]
		if !ok {
			b = &bucket{day: day}
			byDay[day] = b
		}
		b.rows = append(b.rows, row)
	}

	buckets := make([]*bucket, 0, len(byDay))
	for _, b := range byDay {
		buckets = append(buckets, b)
	}
	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].day.After(buckets[j].day)
	})

	sections := make([]Section, 0, len(buckets)+1)
	for _, b := range buckets {
		sections = append(sections, Section{
			Label: b.day.Format(dateLabel),
			Rows:  b.rows,
		})
	}
	if len(dateless) > 0 {
		sections = append(sections, Section{Label: SansDate, Rows: dateless})
	}
	return sections
}
