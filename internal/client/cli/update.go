package cli

import (
	"context"
	"fmt"
)

func (c *Cli) runUpdate(ctx context.Context, h handler, args []string) error {
	id, err := parseID(args, "formadmin update "+h.name()+" ID field=value...")
	if err != nil {
		return err
	}
	fields, err := parseFields(args[1:])
	if err != nil {
		return fmt.Errorf("%w. Usage: formadmin update %s ID field=value...", err, h.name())
	}

	detail, err := h.update(ctx, id, fields)
	if err != nil {
		return c.reportSubmitError(err)
	}

	c.io.Printf("✓ %s %d updated:\n%s\n", h.heading(), id, detail)
	return nil
}
