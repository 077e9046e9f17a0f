package cli

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/nberthel/formadmin/internal/client/export"
)

func (c *Cli) runExport(ctx context.Context, h handler, args []string) error {
	fs := flag.NewFlagSet("export "+h.name(), flag.ContinueOnError)
	fs.SetOutput(c.io)
	formatName := fs.String("format", "csv", "output format: csv, pdf or word")
	out := fs.String("out", "", "output path (default: <resource><ext>)")
	query := listFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	format, err := export.ParseFormat(*formatName)
	if err != nil {
		return err
	}

	path := *out
	if path == "" {
		path = h.name() + format.Ext()
	}

	// render fully in memory so an empty set leaves no file behind
	var buf bytes.Buffer
	if err := h.exportTo(ctx, &buf, format, query()); err != nil {
		if errors.Is(err, export.ErrNoRecords) {
			return fmt.Errorf("no %s match the given criteria, nothing exported", h.name())
		}
		return err
	}

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	c.io.Printf("✓ Exported %s to %s\n", h.name(), path)
	return nil
}
