package cli

import (
	"context"
	"flag"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/nberthel/formadmin/internal/client/api"
	pkgapi "github.com/nberthel/formadmin/pkg/api"
)

// formationSection renders one nested collection of a formation as rows.
type formationSection struct {
	title string
	cols  []string
	fetch func(ctx context.Context, id int64, q api.ListQuery) ([][]string, int, error)
}

func nestedRows[T any](page *api.Page[T], err error, row func(T) []string) ([][]string, int, error) {
	if err != nil {
		return nil, 0, err
	}
	rows := make([][]string, len(page.Items))
	for i, item := range page.Items {
		rows[i] = row(item)
	}
	return rows, page.Count, nil
}

func (c *Cli) formationSections() map[string]formationSection {
	r := c.resources
	return map[string]formationSection{
		"commentaires": {
			title: "Commentaires",
			cols:  []string{"ID", "Auteur", "Date", "Contenu"},
			fetch: func(ctx context.Context, id int64, q api.ListQuery) ([][]string, int, error) {
				page, err := r.FormationCommentaires(ctx, id, q)
				return nestedRows(page, err, func(c pkgapi.Commentaire) []string {
					return []string{formatID(c.ID), c.Auteur, c.Date, truncate(c.Contenu, 60)}
				})
			},
		},
		"documents": {
			title: "Documents",
			cols:  []string{"ID", "Fichier", "Type", "Taille"},
			fetch: func(ctx context.Context, id int64, q api.ListQuery) ([][]string, int, error) {
				page, err := r.FormationDocuments(ctx, id, q)
				return nestedRows(page, err, func(d pkgapi.Document) []string {
					return []string{formatID(d.ID), d.NomFichier, d.TypeDocument, formatSize(d.TailleFichier)}
				})
			},
		},
		"evenements": {
			title: "Événements",
			cols:  []string{"ID", "Type", "Date", "Candidats", "Inscriptions"},
			fetch: func(ctx context.Context, id int64, q api.ListQuery) ([][]string, int, error) {
				page, err := r.FormationEvenements(ctx, id, q)
				return nestedRows(page, err, func(e pkgapi.Evenement) []string {
					return []string{
						formatID(e.ID), e.TypeEvenement, e.Date,
						strconv.Itoa(e.NbCandidats), strconv.Itoa(e.NbInscriptions),
					}
				})
			},
		},
		"prospections": {
			title: "Prospections",
			cols:  []string{"ID", "Partenaire", "Statut", "Objectif", "Date"},
			fetch: func(ctx context.Context, id int64, q api.ListQuery) ([][]string, int, error) {
				page, err := r.FormationProspections(ctx, id, q)
				return nestedRows(page, err, func(p pkgapi.Prospection) []string {
					return []string{formatID(p.ID), nomOf(p.Partenaire), p.Statut, p.Objectif, p.Date}
				})
			},
		},
		"partenaires": {
			title: "Partenaires",
			cols:  []string{"ID", "Nom", "Type", "Ville", "Contact"},
			fetch: func(ctx context.Context, id int64, q api.ListQuery) ([][]string, int, error) {
				page, err := r.FormationPartenaires(ctx, id, q)
				return nestedRows(page, err, func(p pkgapi.Partenaire) []string {
					return []string{formatID(p.ID), p.Nom, p.Type, p.Ville, p.ContactNom}
				})
			},
		},
		"historique": {
			title: "Historique",
			cols:  []string{"ID", "Champ", "Avant", "Après", "Par", "Date"},
			fetch: func(ctx context.Context, id int64, q api.ListQuery) ([][]string, int, error) {
				page, err := r.FormationHistorique(ctx, id, q)
				return nestedRows(page, err, func(h pkgapi.Historique) []string {
					return []string{formatID(h.ID), h.Champ, h.AncienneVal, h.NouvelleVal, h.Auteur, h.Date}
				})
			},
		},
	}
}

// runFormation shows one nested section of a formation:
// "formadmin formation 12 commentaires [list flags]".
func (c *Cli) runFormation(ctx context.Context, args []string) error {
	sections := c.formationSections()

	id, err := parseID(args, "formation ID SECTION")
	if err != nil {
		return err
	}
	if len(args) < 2 {
		return fmt.Errorf("missing section name. Known sections: %s", knownSections(sections))
	}
	section, ok := sections[args[1]]
	if !ok {
		return fmt.Errorf("unknown section %q. Known sections: %s", args[1], knownSections(sections))
	}

	fs := flag.NewFlagSet("formation "+args[1], flag.ContinueOnError)
	fs.SetOutput(c.io)
	query := listFlags(fs)
	if err := fs.Parse(args[2:]); err != nil {
		return err
	}

	q := query()
	rows, total, err := section.fetch(ctx, id, q)
	if err != nil {
		return err
	}

	if total == 0 {
		c.io.Printf("No %s for formation %d.\n", args[1], id)
		return nil
	}

	c.io.Printf("=== %s — formation %d ===\n\n", section.title, id)
	printTable(c.io, section.cols, rows)
	c.io.Printf("\nPage %d/%d — %d record(s)\n", q.Page, pageCount(total, q.PageSize), total)
	return nil
}

func knownSections(sections map[string]formationSection) string {
	names := make([]string, 0, len(sections))
	for name := range sections {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}
