package cli

import (
	"context"
	"errors"
	"time"

	"github.com/nberthel/formadmin/internal/client/auth"
	"github.com/nberthel/formadmin/internal/client/storage"
)

func (c *Cli) runStatus(ctx context.Context) error {
	c.io.Println("=== Session ===")
	c.io.Println()

	session := c.auth.Current()
	switch session.State {
	case auth.StateAuthenticated:
		c.io.Println("Status: signed in")
		if session.User != nil {
			c.io.Printf("User:   %s <%s>\n", session.User.FullName(), session.User.Email)
			if session.User.RoleDisplay != "" {
				c.io.Printf("Role:   %s\n", session.User.RoleDisplay)
			}
		}
		c.printTokenExpiry(ctx)
	case auth.StateLoading:
		c.io.Println("Status: restoring session...")
	default:
		c.io.Println("Status: not signed in")
		c.io.Println()
		c.io.Println("Use 'formadmin login' to sign in.")
	}

	theme, err := c.prefs.GetTheme(ctx)
	if err == nil {
		c.io.Printf("Theme:  %s\n", theme)
	} else if !errors.Is(err, storage.ErrPrefNotFound) {
		return err
	}
	return nil
}

func (c *Cli) printTokenExpiry(ctx context.Context) {
	expiry, err := c.auth.AccessTokenExpiry(ctx)
	if err != nil {
		// opaque or malformed token, nothing to display
		return
	}

	if remaining := time.Until(expiry); remaining > 0 {
		c.io.Printf("Token:  expires in %s (%s)\n",
			remaining.Round(time.Second), expiry.Local().Format("15:04:05"))
	} else {
		c.io.Println("Token:  expired, next request will require a new login")
	}
}
