package cli

import (
	"context"
	"fmt"
)

func (c *Cli) runLogout(ctx context.Context) error {
	session := c.auth.Current()
	if !session.IsAuthenticated() {
		c.io.Println("Not signed in.")
		return nil
	}

	if err := c.auth.Logout(ctx); err != nil {
		return fmt.Errorf("logout failed: %w", err)
	}

	c.io.Println("✓ Signed out. Local session cleared.")
	return nil
}
