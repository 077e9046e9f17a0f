package cli

import (
	"context"
)

func (c *Cli) runGet(ctx context.Context, h handler, args []string) error {
	id, err := parseID(args, "formadmin get "+h.name()+" ID")
	if err != nil {
		return err
	}

	detail, err := h.detail(ctx, id)
	if err != nil {
		return err
	}
	c.io.Println(detail)
	return nil
}
