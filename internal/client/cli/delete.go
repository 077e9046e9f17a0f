package cli

import (
	"context"
	"flag"
	"fmt"
)

func (c *Cli) runDelete(ctx context.Context, h handler, args []string) error {
	id, err := parseID(args, "formadmin delete "+h.name()+" ID [--yes]")
	if err != nil {
		return err
	}

	fs := flag.NewFlagSet("delete "+h.name(), flag.ContinueOnError)
	fs.SetOutput(c.io)
	yes := fs.Bool("yes", false, "skip the confirmation prompt")
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}

	if !*yes {
		ok, err := c.io.Confirm(fmt.Sprintf("Delete %s record %d?", h.name(), id))
		if err != nil {
			return err
		}
		if !ok {
			c.io.Println("Aborted.")
			return nil
		}
	}

	if err := h.remove(ctx, id); err != nil {
		return err
	}
	c.io.Printf("✓ %s record %d deleted.\n", h.heading(), id)
	return nil
}
