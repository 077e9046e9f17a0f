package cli

import (
	"context"
	"fmt"

	"github.com/nberthel/formadmin/internal/client/api"
)

func (c *Cli) runLogin(ctx context.Context) error {
	c.io.Println("=== Connexion ===")
	c.io.Println()

	email, err := c.io.ReadInput("Email: ")
	if err != nil {
		return fmt.Errorf("failed to read email: %w", err)
	}
	password, err := c.io.ReadPassword("Mot de passe: ")
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}

	c.io.Println()
	c.io.Println("Authenticating...")

	if err := c.auth.Login(ctx, email, password); err != nil {
		if api.IsKind(err, api.KindAuth) {
			return fmt.Errorf("invalid email or password")
		}
		return err
	}

	session := c.auth.Current()
	c.io.Println()
	c.io.Println("✓ Login successful!")
	if session.User != nil {
		c.io.Printf("Signed in as: %s <%s>\n", session.User.FullName(), session.User.Email)
		if session.User.RoleDisplay != "" {
			c.io.Printf("Role: %s\n", session.User.RoleDisplay)
		}
	}
	c.io.Println()
	c.io.Println("Your session has been saved.")
	return nil
}
