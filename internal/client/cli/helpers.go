package cli

import (
	"flag"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/nberthel/formadmin/internal/client/api"
	"github.com/nberthel/formadmin/internal/client/iocli"
)

// filterFlag collects repeated --filter k=v occurrences.
type filterFlag map[string]string

func (f filterFlag) String() string {
	pairs := make([]string, 0, len(f))
	for key, val := range f {
		pairs = append(pairs, key+"="+val)
	}
	return strings.Join(pairs, ",")
}

func (f filterFlag) Set(value string) error {
	key, val, ok := strings.Cut(value, "=")
	if !ok || key == "" {
		return fmt.Errorf("filter must be key=value, got %q", value)
	}
	f[key] = val
	return nil
}

// listFlags declares the shared list-shaping flags on fs and returns a
// builder producing the resulting query after parsing.
func listFlags(fs *flag.FlagSet) func() api.ListQuery {
	search := fs.String("search", "", "free-text search")
	page := fs.Int("page", 1, "page number (1-based)")
	pageSize := fs.Int("page-size", 20, "rows per page")
	ordering := fs.String("ordering", "", "ordering key, prefix with - for descending")
	filters := filterFlag{}
	fs.Var(filters, "filter", "filter as key=value, repeatable")

	return func() api.ListQuery {
		return api.ListQuery{
			Search:   *search,
			Page:     *page,
			PageSize: *pageSize,
			Ordering: *ordering,
			Filters:  filters,
		}
	}
}

// parseID reads the record id positional argument.
func parseID(args []string, usage string) (int64, error) {
	if len(args) == 0 {
		return 0, fmt.Errorf("missing record id. Usage: %s", usage)
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid record id %q", args[0])
	}
	return id, nil
}

// parseFields turns field=value arguments into a JSON-ready payload.
// Integer and boolean literals are coerced; everything else stays a string.
func parseFields(args []string) (map[string]any, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("missing field=value arguments")
	}

	fields := make(map[string]any, len(args))
	for _, arg := range args {
		key, val, ok := strings.Cut(arg, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("expected field=value, got %q", arg)
		}
		fields[key] = coerce(val)
	}
	return fields, nil
}

func coerce(val string) any {
	if n, err := strconv.ParseInt(val, 10, 64); err == nil {
		return n
	}
	switch val {
	case "true":
		return true
	case "false":
		return false
	}
	return val
}

// printTable renders rows as an aligned table with a header line.
func printTable(out iocli.IO, header []string, rows [][]string) {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	for _, row := range rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	tw.Flush()
}

func pageCount(total, pageSize int) int {
	if pageSize <= 0 {
		return 1
	}
	pages := total / pageSize
	if total%pageSize != 0 {
		pages++
	}
	if pages == 0 {
		pages = 1
	}
	return pages
}
