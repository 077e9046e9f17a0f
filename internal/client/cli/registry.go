package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/nberthel/formadmin/internal/client/api"
	"github.com/nberthel/formadmin/internal/client/export"
	"github.com/nberthel/formadmin/internal/client/listview"
	pkgapi "github.com/nberthel/formadmin/pkg/api"
)

// handler is the type-erased command surface of one resource, so the
// dispatch code stays free of generics.
type handler interface {
	name() string
	heading() string
	columns() []string
	list(ctx context.Context, q api.ListQuery) ([][]string, int, error)
	detail(ctx context.Context, id int64) (string, error)
	create(ctx context.Context, fields map[string]any) (string, error)
	update(ctx context.Context, id int64, fields map[string]any) (string, error)
	remove(ctx context.Context, id int64) error
	exportTo(ctx context.Context, w io.Writer, format export.Format, q api.ListQuery) error
	newBrowser() browser
}

// browser drives one interactive list session.
type browser interface {
	search(ctx context.Context, text string)
	filter(ctx context.Context, key, value string)
	order(ctx context.Context, key string)
	page(ctx context.Context, n int)
	next(ctx context.Context)
	prev(ctx context.Context)
	size(ctx context.Context, n int)
	refresh(ctx context.Context)
	snapshot() ([][]string, browseMeta, error)
	wait()
}

// browseMeta is the non-row part of a list snapshot.
type browseMeta struct {
	total int
	query api.ListQuery
}

// entry binds one typed Resource to its table representation.
type entry[T any] struct {
	resource string
	title    string
	res      *api.Resource[T]
	cols     []string
	row      func(T) []string
	id       func(T) int64
	date     func(T) time.Time
}

func (e *entry[T]) name() string      { return e.resource }
func (e *entry[T]) heading() string   { return e.title }
func (e *entry[T]) columns() []string { return e.cols }

func (e *entry[T]) list(ctx context.Context, q api.ListQuery) ([][]string, int, error) {
	page, err := e.res.List(ctx, q)
	if err != nil {
		return nil, 0, err
	}
	rows := make([][]string, len(page.Items))
	for i, item := range page.Items {
		rows[i] = e.row(item)
	}
	return rows, page.Count, nil
}

func (e *entry[T]) detail(ctx context.Context, id int64) (string, error) {
	item, err := e.res.Get(ctx, id)
	if err != nil {
		return "", err
	}
	return renderJSON(item)
}

func (e *entry[T]) create(ctx context.Context, fields map[string]any) (string, error) {
	item, err := e.res.Create(ctx, fields)
	if err != nil {
		return "", err
	}
	return renderJSON(item)
}

func (e *entry[T]) update(ctx context.Context, id int64, fields map[string]any) (string, error) {
	item, err := e.res.Update(ctx, id, fields)
	if err != nil {
		return "", err
	}
	return renderJSON(item)
}

func (e *entry[T]) remove(ctx context.Context, id int64) error {
	return e.res.Delete(ctx, id)
}

// exportTo pulls every page matching the query, then renders. The page
// size is bumped to keep round-trips down.
func (e *entry[T]) exportTo(ctx context.Context, w io.Writer, format export.Format, q api.ListQuery) error {
	q.PageSize = exportPageSize
	q.Page = 1

	var records []T
	for {
		page, err := e.res.List(ctx, q)
		if err != nil {
			return err
		}
		records = append(records, page.Items...)
		if len(page.Items) < exportPageSize || len(records) >= page.Count {
			break
		}
		q.Page++
	}

	return export.Write(w, format, e.title, records, export.Mapper[T]{
		Header: e.cols,
		Row:    e.row,
		Date:   e.date,
	})
}

const exportPageSize = 200

func (e *entry[T]) newBrowser() browser {
	view := listview.New(e.res.List, listview.Options[T]{ID: e.id})
	return &viewBrowser[T]{view: view, row: e.row}
}

// viewBrowser adapts a typed listview.View to the erased browser surface.
type viewBrowser[T any] struct {
	view *listview.View[T]
	row  func(T) []string
}

func (b *viewBrowser[T]) search(ctx context.Context, text string) { b.view.SetSearch(ctx, text) }
func (b *viewBrowser[T]) filter(ctx context.Context, key, value string) {
	b.view.SetFilter(ctx, key, value)
}
func (b *viewBrowser[T]) order(ctx context.Context, key string) { b.view.SetOrdering(ctx, key) }
func (b *viewBrowser[T]) page(ctx context.Context, n int)       { b.view.SetPage(ctx, n) }
func (b *viewBrowser[T]) next(ctx context.Context)              { b.view.NextPage(ctx) }
func (b *viewBrowser[T]) prev(ctx context.Context)              { b.view.PrevPage(ctx) }
func (b *viewBrowser[T]) size(ctx context.Context, n int)       { b.view.SetPageSize(ctx, n) }
func (b *viewBrowser[T]) refresh(ctx context.Context)           { b.view.Refresh(ctx) }
func (b *viewBrowser[T]) wait()                                 { b.view.Wait() }

func (b *viewBrowser[T]) snapshot() ([][]string, browseMeta, error) {
	snap := b.view.Snapshot()
	rows := make([][]string, len(snap.Rows))
	for i, item := range snap.Rows {
		rows[i] = b.row(item)
	}
	return rows, browseMeta{total: snap.Total, query: snap.Query}, snap.Err
}

// newRegistry builds the resource table the CLI dispatches on.
func newRegistry(r *api.Resources) map[string]handler {
	registry := map[string]handler{}

	add := func(h handler) { registry[h.name()] = h }

	add(&entry[pkgapi.Formation]{
		resource: "formations",
		title:    "Formations",
		res:      r.Formations,
		cols:     []string{"ID", "Nom", "Centre", "Statut", "Début", "Fin", "Places", "Inscrits"},
		row: func(f pkgapi.Formation) []string {
			return []string{
				formatID(f.ID), f.Nom, nomOf(f.Centre), badgeOf(f.Statut),
				f.StartDate, f.EndDate,
				strconv.Itoa(f.TotalPlaces), strconv.Itoa(f.InscritsTotal),
			}
		},
		id:   func(f pkgapi.Formation) int64 { return f.ID },
		date: func(f pkgapi.Formation) time.Time { return parseDay(f.StartDate) },
	})

	add(&entry[pkgapi.Candidat]{
		resource: "candidats",
		title:    "Candidats",
		res:      r.Candidats,
		cols:     []string{"ID", "Nom", "Prénom", "Email", "Téléphone", "Statut"},
		row: func(c pkgapi.Candidat) []string {
			return []string{formatID(c.ID), c.Nom, c.Prenom, c.Email, c.Telephone, c.Statut}
		},
		id:   func(c pkgapi.Candidat) int64 { return c.ID },
		date: func(c pkgapi.Candidat) time.Time { return parseDay(c.DateInscription) },
	})

	add(&entry[pkgapi.Partenaire]{
		resource: "partenaires",
		title:    "Partenaires",
		res:      r.Partenaires,
		cols:     []string{"ID", "Nom", "Type", "Secteur", "Ville", "Contact", "Prospections"},
		row: func(p pkgapi.Partenaire) []string {
			return []string{
				formatID(p.ID), p.Nom, p.Type, p.Secteur, p.Ville,
				p.ContactNom, strconv.Itoa(p.NbProspection),
			}
		},
		id:   func(p pkgapi.Partenaire) int64 { return p.ID },
		date: func(p pkgapi.Partenaire) time.Time { return parseDay(p.CreatedAt) },
	})

	add(&entry[pkgapi.Prospection]{
		resource: "prospections",
		title:    "Prospections",
		res:      r.Prospections,
		cols:     []string{"ID", "Partenaire", "Formation", "Statut", "Objectif", "Date"},
		row: func(p pkgapi.Prospection) []string {
			return []string{
				formatID(p.ID), nomOf(p.Partenaire), nomOf(p.Formation),
				p.Statut, p.Objectif, p.Date,
			}
		},
		id:   func(p pkgapi.Prospection) int64 { return p.ID },
		date: func(p pkgapi.Prospection) time.Time { return parseDay(p.Date) },
	})

	add(&entry[pkgapi.Appairage]{
		resource: "appairages",
		title:    "Appairages",
		res:      r.Appairages,
		cols:     []string{"ID", "Candidat", "Partenaire", "Formation", "Statut", "Date"},
		row: func(a pkgapi.Appairage) []string {
			return []string{
				formatID(a.ID), nomOf(a.Candidat), nomOf(a.Partenaire),
				nomOf(a.Formation), a.Statut, a.Date,
			}
		},
		id:   func(a pkgapi.Appairage) int64 { return a.ID },
		date: func(a pkgapi.Appairage) time.Time { return parseDay(a.Date) },
	})

	add(&entry[pkgapi.Commentaire]{
		resource: "commentaires",
		title:    "Commentaires",
		res:      r.Commentaires,
		cols:     []string{"ID", "Formation", "Auteur", "Date", "Contenu"},
		row: func(c pkgapi.Commentaire) []string {
			return []string{formatID(c.ID), c.FormationNom, c.Auteur, c.Date, truncate(c.Contenu, 60)}
		},
		id:   func(c pkgapi.Commentaire) int64 { return c.ID },
		date: func(c pkgapi.Commentaire) time.Time { return parseDay(c.Date) },
	})

	add(&entry[pkgapi.Document]{
		resource: "documents",
		title:    "Documents",
		res:      r.Documents,
		cols:     []string{"ID", "Fichier", "Type", "Taille", "Ajouté le"},
		row: func(d pkgapi.Document) []string {
			return []string{
				formatID(d.ID), d.NomFichier, d.TypeDocument,
				formatSize(d.TailleFichier), d.CreatedAt,
			}
		},
		id:   func(d pkgapi.Document) int64 { return d.ID },
		date: func(d pkgapi.Document) time.Time { return parseDay(d.CreatedAt) },
	})

	add(&entry[pkgapi.AtelierTRE]{
		resource: "ateliers",
		title:    "Ateliers TRE",
		res:      r.AteliersTRE,
		cols:     []string{"ID", "Type", "Date", "Inscrits"},
		row: func(a pkgapi.AtelierTRE) []string {
			return []string{formatID(a.ID), a.TypeAtelier, a.Date, strconv.Itoa(a.NbInscrits)}
		},
		id:   func(a pkgapi.AtelierTRE) int64 { return a.ID },
		date: func(a pkgapi.AtelierTRE) time.Time { return parseDay(a.Date) },
	})

	add(&entry[pkgapi.NomID]{
		resource: "centres",
		title:    "Centres",
		res:      r.Centres,
		cols:     []string{"ID", "Nom"},
		row:      func(n pkgapi.NomID) []string { return []string{formatID(n.ID), n.Nom} },
		id:       func(n pkgapi.NomID) int64 { return n.ID },
	})

	add(&entry[pkgapi.Badge]{
		resource: "statuts",
		title:    "Statuts",
		res:      r.Statuts,
		cols:     []string{"ID", "Nom", "Libellé", "Couleur"},
		row: func(b pkgapi.Badge) []string {
			return []string{formatID(b.ID), b.Nom, b.Libelle, b.Couleur}
		},
		id: func(b pkgapi.Badge) int64 { return b.ID },
	})

	add(&entry[pkgapi.Badge]{
		resource: "typeoffres",
		title:    "Types d'offre",
		res:      r.TypeOffres,
		cols:     []string{"ID", "Nom", "Libellé", "Couleur"},
		row: func(b pkgapi.Badge) []string {
			return []string{formatID(b.ID), b.Nom, b.Libelle, b.Couleur}
		},
		id: func(b pkgapi.Badge) int64 { return b.ID },
	})

	add(&entry[pkgapi.UserProfile]{
		resource: "users",
		title:    "Utilisateurs",
		res:      r.Users,
		cols:     []string{"ID", "Email", "Nom", "Rôle", "Actif"},
		row: func(u pkgapi.UserProfile) []string {
			return []string{
				formatID(u.ID), u.Email, u.FullName(), u.RoleDisplay,
				strconv.FormatBool(u.IsActive),
			}
		},
		id:   func(u pkgapi.UserProfile) int64 { return u.ID },
		date: func(u pkgapi.UserProfile) time.Time { return parseDay(u.DateJoined) },
	})

	return registry
}

func knownResources(registry map[string]handler) string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}

func renderJSON(v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("render record: %w", err)
	}
	return string(data), nil
}

// parseDay accepts the two date shapes the backend emits.
func parseDay(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	return time.Time{}
}

func nomOf(n *pkgapi.NomID) string {
	if n == nil {
		return ""
	}
	return n.Nom
}

func badgeOf(b *pkgapi.Badge) string {
	if b == nil {
		return ""
	}
	if b.Libelle != "" {
		return b.Libelle
	}
	return b.Nom
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

func formatSize(bytes int64) string {
	switch {
	case bytes >= 1<<20:
		return fmt.Sprintf("%.1f Mo", float64(bytes)/(1<<20))
	case bytes >= 1<<10:
		return fmt.Sprintf("%.1f Ko", float64(bytes)/(1<<10))
	case bytes > 0:
		return fmt.Sprintf("%d o", bytes)
	default:
		return ""
	}
}

// truncate counts runes, not bytes, so accented text never gets cut
// mid-character.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
