package cli

import (
	"context"
	"fmt"
	"sort"

	"github.com/nberthel/formadmin/internal/client/form"
)

func (c *Cli) runCreate(ctx context.Context, h handler, args []string) error {
	fields, err := parseFields(args)
	if err != nil {
		return fmt.Errorf("%w. Usage: formadmin create %s field=value...", err, h.name())
	}

	detail, err := h.create(ctx, fields)
	if err != nil {
		return c.reportSubmitError(err)
	}

	c.io.Printf("✓ %s created:\n%s\n", h.heading(), detail)
	return nil
}

// reportSubmitError prints server-side validation messages per field; any
// other failure bubbles up unchanged.
func (c *Cli) reportSubmitError(err error) error {
	f := form.New(nil)
	if !f.ApplyError(err) {
		return err
	}

	c.io.Println("The server rejected the submitted values:")
	for _, field := range fieldsOf(f) {
		c.io.Printf("  %-20s %s\n", field, f.Error(field))
	}
	return fmt.Errorf("validation failed")
}

func fieldsOf(f *form.Form) []string {
	errs := f.Errors()
	fields := make([]string, 0, len(errs))
	for field := range errs {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fields
}
