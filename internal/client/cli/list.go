package cli

import (
	"context"
	"flag"
)

func (c *Cli) runList(ctx context.Context, h handler, args []string) error {
	fs := flag.NewFlagSet("list "+h.name(), flag.ContinueOnError)
	fs.SetOutput(c.io)
	query := listFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	q := query()
	rows, total, err := h.list(ctx, q)
	if err != nil {
		return err
	}

	if total == 0 {
		c.io.Printf("No %s found.\n", h.name())
		return nil
	}

	c.io.Printf("=== %s ===\n\n", h.heading())
	printTable(c.io, h.columns(), rows)
	c.io.Printf("\nPage %d/%d — %d record(s)\n", q.Page, pageCount(total, q.PageSize), total)
	return nil
}
