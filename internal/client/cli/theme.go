package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/nberthel/formadmin/internal/client/storage"
)

func (c *Cli) runTheme(ctx context.Context, args []string) error {
	if len(args) == 0 {
		theme, err := c.prefs.GetTheme(ctx)
		if errors.Is(err, storage.ErrPrefNotFound) {
			c.io.Println("Theme: light (default)")
			return nil
		}
		if err != nil {
			return err
		}
		c.io.Printf("Theme: %s\n", theme)
		return nil
	}

	theme := args[0]
	if theme != "light" && theme != "dark" {
		return fmt.Errorf("unknown theme %q (want light or dark)", theme)
	}
	if err := c.prefs.SaveTheme(ctx, theme); err != nil {
		return err
	}
	c.io.Printf("✓ Theme set to %s\n", theme)
	return nil
}
