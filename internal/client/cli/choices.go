package cli

import (
	"context"
)

// runChoices shows the reference data used by formation forms: centres,
// statuts and types d'offre, loaded concurrently.
func (c *Cli) runChoices(ctx context.Context) error {
	choices, err := c.resources.LoadFormChoices(ctx)
	if err != nil {
		return err
	}

	c.io.Println("=== Centres ===")
	for _, centre := range choices.Centres {
		c.io.Printf("  %d  %s\n", centre.ID, centre.Nom)
	}

	c.io.Println()
	c.io.Println("=== Statuts ===")
	for _, statut := range choices.Statuts {
		c.io.Printf("  %d  %s\n", statut.ID, badgeOf(&statut))
	}

	c.io.Println()
	c.io.Println("=== Types d'offre ===")
	for _, typeOffre := range choices.TypeOffres {
		c.io.Printf("  %d  %s\n", typeOffre.ID, badgeOf(&typeOffre))
	}
	return nil
}
