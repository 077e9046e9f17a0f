package cli

import (
	"context"
	"fmt"

	"github.com/nberthel/formadmin/internal/validation"
	pkgapi "github.com/nberthel/formadmin/pkg/api"
)

func (c *Cli) runRegister(ctx context.Context) error {
	c.io.Println("=== Création de compte ===")
	c.io.Println()

	email, err := c.io.ReadInput("Email: ")
	if err != nil {
		return fmt.Errorf("failed to read email: %w", err)
	}
	if err := validation.ValidateEmail(email); err != nil {
		return err
	}

	firstName, err := c.io.ReadInput("Prénom: ")
	if err != nil {
		return fmt.Errorf("failed to read first name: %w", err)
	}
	lastName, err := c.io.ReadInput("Nom: ")
	if err != nil {
		return fmt.Errorf("failed to read last name: %w", err)
	}

	password, err := c.io.ReadPassword("Mot de passe: ")
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}
	confirm, err := c.io.ReadPassword("Confirmez le mot de passe: ")
	if err != nil {
		return fmt.Errorf("failed to read password confirmation: %w", err)
	}
	if password != confirm {
		return fmt.Errorf("passwords do not match")
	}
	if err := validation.ValidatePassword(password); err != nil {
		return err
	}

	resp, err := c.client.Register(ctx, pkgapi.RegisterRequest{
		Email:     email,
		Password:  password,
		FirstName: firstName,
		LastName:  lastName,
	})
	if err != nil {
		return err
	}

	c.io.Println()
	c.io.Println("✓ Account created!")
	if resp.Message != "" {
		c.io.Println(resp.Message)
	}
	c.io.Println("An administrator must activate the account before you can sign in.")
	return nil
}
