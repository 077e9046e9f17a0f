package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// runBrowse is the interactive list mode: the user mutates search, filters
// and pagination from a prompt and the table re-renders after each change.
func (c *Cli) runBrowse(ctx context.Context, h handler) error {
	b := h.newBrowser()
	b.refresh(ctx)
	b.wait()
	c.renderBrowser(h, b)

	c.io.Println(`Commands: search TEXT | filter k=v | order KEY | page N | next | prev | size N | refresh | help | quit`)

	for {
		line, err := c.io.ReadInput(h.name() + "> ")
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		cmd, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
		arg = strings.TrimSpace(arg)

		switch cmd {
		case "", "refresh":
			b.refresh(ctx)
		case "search":
			b.search(ctx, arg)
		case "filter":
			key, val, ok := strings.Cut(arg, "=")
			if !ok || key == "" {
				c.io.Println("usage: filter key=value (empty value removes the filter)")
				continue
			}
			b.filter(ctx, key, val)
		case "order":
			b.order(ctx, arg)
		case "page":
			n, err := strconv.Atoi(arg)
			if err != nil {
				c.io.Println("usage: page N")
				continue
			}
			b.page(ctx, n)
		case "next":
			b.next(ctx)
		case "prev":
			b.prev(ctx)
		case "size":
			n, err := strconv.Atoi(arg)
			if err != nil || n < 1 {
				c.io.Println("usage: size N")
				continue
			}
			b.size(ctx, n)
		case "help":
			c.io.Println(`search TEXT | filter k=v | order KEY | page N | next | prev | size N | refresh | quit`)
			continue
		case "quit", "exit", "q":
			return nil
		default:
			c.io.Printf("unknown command %q, try 'help'\n", cmd)
			continue
		}

		b.wait()
		c.renderBrowser(h, b)
	}
}

func (c *Cli) renderBrowser(h handler, b browser) {
	rows, meta, err := b.snapshot()
	if err != nil {
		c.io.Errorf("Error: %v\n", err)
		return
	}

	c.io.Println()
	printTable(c.io, h.columns(), rows)

	var constraints []string
	if meta.query.Search != "" {
		constraints = append(constraints, fmt.Sprintf("search=%q", meta.query.Search))
	}
	for key, val := range meta.query.Filters {
		constraints = append(constraints, key+"="+val)
	}
	if meta.query.Ordering != "" {
		constraints = append(constraints, "order="+meta.query.Ordering)
	}

	c.io.Printf("\nPage %d/%d — %d record(s)",
		meta.query.Page, pageCount(meta.total, meta.query.PageSize), meta.total)
	if len(constraints) > 0 {
		c.io.Printf("  [%s]", strings.Join(constraints, ", "))
	}
	c.io.Println()
}
