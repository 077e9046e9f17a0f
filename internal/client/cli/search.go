package cli

import (
	"context"
	"fmt"
	"strings"
)

func (c *Cli) runSearch(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing search text. Usage: formadmin search TEXT")
	}
	query := strings.Join(args, " ")

	results, err := c.client.GlobalSearch(ctx, query)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		c.io.Printf("No results for %q.\n", query)
		return nil
	}

	rows := make([][]string, len(results))
	for i, res := range results {
		rows[i] = []string{res.Type, formatID(res.ID), res.Label}
	}
	c.io.Printf("%d result(s) for %q:\n\n", len(results), query)
	printTable(c.io, []string{"Type", "ID", "Libellé"}, rows)
	return nil
}
