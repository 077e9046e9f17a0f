package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// runUpload sends a file as a new document record. The first argument is
// the file path; the rest are field=value form values, formation=ID at
// minimum.
func (c *Cli) runUpload(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing file path. Usage: formadmin upload PATH formation=ID [type_document=TYPE]")
	}
	path := args[0]

	fields := map[string]string{}
	for _, arg := range args[1:] {
		key, val, ok := strings.Cut(arg, "=")
		if !ok || key == "" {
			return fmt.Errorf("expected field=value, got %q", arg)
		}
		fields[key] = val
	}
	if fields["formation"] == "" {
		return fmt.Errorf("formation=ID is required")
	}

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	doc, err := c.resources.UploadDocument(ctx, fields, filepath.Base(path), file)
	if err != nil {
		return err
	}

	c.io.Printf("✓ Document uploaded: %s (id %d", doc.NomFichier, doc.ID)
	if doc.TailleFichier > 0 {
		c.io.Printf(", %s", formatSize(doc.TailleFichier))
	}
	c.io.Println(")")
	return nil
}
