package api

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/sync/errgroup"

	pkgapi "github.com/nberthel/formadmin/pkg/api"
)

// Resources bundles one typed accessor per backend collection.
type Resources struct {
	Formations   *Resource[pkgapi.Formation]
	Centres      *Resource[pkgapi.NomID]
	Statuts      *Resource[pkgapi.Badge]
	TypeOffres   *Resource[pkgapi.Badge]
	Commentaires *Resource[pkgapi.Commentaire]
	Documents    *Resource[pkgapi.Document]
	Partenaires  *Resource[pkgapi.Partenaire]
	Candidats    *Resource[pkgapi.Candidat]
	Prospections *Resource[pkgapi.Prospection]
	Appairages   *Resource[pkgapi.Appairage]
	AteliersTRE  *Resource[pkgapi.AtelierTRE]
	Users        *Resource[pkgapi.UserProfile]

	client *Client
}

// NewResources wires all resource accessors over one client.
func NewResources(client *Client) *Resources {
	return &Resources{
		Formations:   NewResource[pkgapi.Formation](client, "/formations/"),
		Centres:      NewResource[pkgapi.NomID](client, "/centres/"),
		Statuts:      NewResource[pkgapi.Badge](client, "/statuts/"),
		TypeOffres:   NewResource[pkgapi.Badge](client, "/typeoffres/"),
		Commentaires: NewResource[pkgapi.Commentaire](client, "/commentaires/"),
		Documents:    NewResource[pkgapi.Document](client, "/documents/"),
		Partenaires:  NewResource[pkgapi.Partenaire](client, "/partenaires/"),
		Candidats:    NewResource[pkgapi.Candidat](client, "/candidats/"),
		Prospections: NewResource[pkgapi.Prospection](client, "/prospections/"),
		Appairages:   NewResource[pkgapi.Appairage](client, "/appairages/"),
		AteliersTRE:  NewResource[pkgapi.AtelierTRE](client, "/ateliers-tre/"),
		Users:        NewResource[pkgapi.UserProfile](client, "/users/"),
		client:       client,
	}
}

// FormationCommentaires reads the comments nested under one formation.
func (r *Resources) FormationCommentaires(ctx context.Context, formationID int64, q ListQuery) (*Page[pkgapi.Commentaire], error) {
	return ListNested[pkgapi.Commentaire](ctx, r.client, "/formations/", formationID, "commentaires", q)
}

// FormationDocuments reads the documents nested under one formation.
func (r *Resources) FormationDocuments(ctx context.Context, formationID int64, q ListQuery) (*Page[pkgapi.Document], error) {
	return ListNested[pkgapi.Document](ctx, r.client, "/formations/", formationID, "documents", q)
}

// FormationEvenements reads the events nested under one formation.
func (r *Resources) FormationEvenements(ctx context.Context, formationID int64, q ListQuery) (*Page[pkgapi.Evenement], error) {
	return ListNested[pkgapi.Evenement](ctx, r.client, "/formations/", formationID, "evenements", q)
}

// FormationProspections reads the prospections nested under one formation.
func (r *Resources) FormationProspections(ctx context.Context, formationID int64, q ListQuery) (*Page[pkgapi.Prospection], error) {
	return ListNested[pkgapi.Prospection](ctx, r.client, "/formations/", formationID, "prospections", q)
}

// FormationPartenaires reads the partners nested under one formation.
func (r *Resources) FormationPartenaires(ctx context.Context, formationID int64, q ListQuery) (*Page[pkgapi.Partenaire], error) {
	return ListNested[pkgapi.Partenaire](ctx, r.client, "/formations/", formationID, "partenaires", q)
}

// FormationHistorique reads the audit trail nested under one formation.
func (r *Resources) FormationHistorique(ctx context.Context, formationID int64, q ListQuery) (*Page[pkgapi.Historique], error) {
	return ListNested[pkgapi.Historique](ctx, r.client, "/formations/", formationID, "historique", q)
}

// UploadDocument creates a document record with its file as multipart
// form-data. fields carries the scalar form values (formation id, type).
func (r *Resources) UploadDocument(ctx context.Context, fields map[string]string, filename string, file io.Reader) (*pkgapi.Document, error) {
	var doc pkgapi.Document
	err := r.client.doMultipart(ctx, http.MethodPost, "/documents/", fields, "fichier", filename, file, &doc)
	if err != nil {
		return nil, fmt.Errorf("document upload failed: %w", err)
	}
	return &doc, nil
}

// FormChoices is the reference data every formation form needs.
type FormChoices struct {
	Centres    []pkgapi.NomID
	Statuts    []pkgapi.Badge
	TypeOffres []pkgapi.Badge
}

// LoadFormChoices fetches centres, statuts and type d'offres concurrently.
// One failed fetch fails the whole load.
func (r *Resources) LoadFormChoices(ctx context.Context) (*FormChoices, error) {
	choices := &FormChoices{}
	group, ctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		page, err := r.Centres.List(ctx, ListQuery{})
		if err != nil {
			return err
		}
		choices.Centres = page.Items
		return nil
	})
	group.Go(func() error {
		page, err := r.Statuts.List(ctx, ListQuery{})
		if err != nil {
			return err
		}
		choices.Statuts = page.Items
		return nil
	})
	group.Go(func() error {
		page, err := r.TypeOffres.List(ctx, ListQuery{})
		if err != nil {
			return err
		}
		choices.TypeOffres = page.Items
		return nil
	})

	if err := group.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load form choices: %w", err)
	}
	return choices, nil
}
