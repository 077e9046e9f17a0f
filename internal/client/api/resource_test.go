package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nberthel/formadmin/internal/client/storage"
	pkgapi "github.com/nberthel/formadmin/pkg/api"
)

func TestListQuery_Values(t *testing.T) {
	q := ListQuery{
		Search:   "dev web",
		Page:     2,
		PageSize: 10,
		Ordering: "-start_date",
		Filters:  map[string]string{"centre": "3", "statut": ""},
	}

	values := q.Values()
	assert.Equal(t, "dev web", values.Get("search"))
	assert.Equal(t, "2", values.Get("page"))
	assert.Equal(t, "10", values.Get("page_size"))
	assert.Equal(t, "-start_date", values.Get("ordering"))
	assert.Equal(t, "3", values.Get("centre"))
	// empty filter value means "no constraint", not an empty parameter
	assert.False(t, values.Has("statut"))
}

func TestListQuery_ZeroValuesOmitted(t *testing.T) {
	assert.Empty(t, ListQuery{}.Values().Encode())
}

func newResourceServer(t *testing.T) (*httptest.Server, *Resources) {
	t.Helper()

	mux := http.NewServeMux()

	mux.HandleFunc("GET /formations/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"count": 2, "results": [{"id": 1, "nom": "Dev Web"}, {"id": 2, "nom": "Vente"}]}`))
	})
	mux.HandleFunc("GET /formations/1/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success": true, "message": "ok", "data": {"id": 1, "nom": "Dev Web"}}`))
	})
	mux.HandleFunc("POST /formations/", func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		if payload["nom"] == "" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"nom": ["Ce champ est obligatoire."]}`))
			return
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"success": true, "data": {"id": 3, "nom": "Nouvelle"}}`))
	})
	mux.HandleFunc("DELETE /formations/2/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("GET /formations/1/commentaires/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"count": 1, "results": [{"id": 11, "formation_id": 1, "contenu": "RAS", "date": "2025-06-01"}]}`))
	})
	mux.HandleFunc("GET /formations/1/documents/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"count": 1, "results": [{"id": 21, "formation": 1, "nom_fichier": "convention.pdf", "type_document": "convention"}]}`))
	})
	mux.HandleFunc("GET /formations/1/evenements/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"count": 1, "results": [{"id": 31, "formation": 1, "type_evenement": "job_dating", "event_date": "2025-06-15", "nombre_candidats": 8}]}`))
	})
	mux.HandleFunc("GET /formations/1/prospections/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"count": 1, "results": [{"id": 41, "partenaire": {"id": 5, "nom": "Acme"}, "statut": "a_relancer"}]}`))
	})
	mux.HandleFunc("GET /formations/1/partenaires/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"count": 1, "results": [{"id": 5, "nom": "Acme", "type": "entreprise"}]}`))
	})
	mux.HandleFunc("GET /formations/1/historique/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"count": 1, "results": [{"id": 51, "formation_id": 1, "champ": "statut", "ancienne_valeur": "ouverte", "nouvelle_valeur": "pleine", "modifie_par": "admin"}]}`))
	})
	mux.HandleFunc("GET /candidats/meta/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"statut_choices": [{"value": "inscrit", "label": "Inscrit"}]}`))
	})
	mux.HandleFunc("GET /prospections/choices/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"value": "a_relancer", "label": "À relancer"}, {"value": "acceptee", "label": "Acceptée"}]`))
	})
	mux.HandleFunc("GET /candidats/choices/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success": true, "data": [{"value": "inscrit", "label": "Inscrit"}]}`))
	})
	mux.HandleFunc("GET /centres/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"id": 1, "nom": "Paris"}]`))
	})
	mux.HandleFunc("GET /statuts/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"count": 1, "results": [{"id": 2, "nom": "ouverte", "couleur": "#0a0"}]}`))
	})
	mux.HandleFunc("GET /typeoffres/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success": true, "data": {"count": 1, "results": [{"id": 3, "nom": "CRIF"}]}}`))
	})
	mux.HandleFunc("POST /documents/", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "1", r.FormValue("formation"))

		file, header, err := r.FormFile("fichier")
		require.NoError(t, err)
		defer func() { _ = file.Close() }()

		content, err := io.ReadAll(file)
		require.NoError(t, err)
		assert.Equal(t, "hello", string(content))

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(pkgapi.Document{ID: 9, NomFichier: header.Filename})
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	tokens := &memTokens{pair: &storage.TokenPair{Access: "T1", Refresh: "T2"}}
	return server, NewResources(NewClient(server.URL, 0, tokens, nil))
}

func TestResource_List(t *testing.T) {
	_, resources := newResourceServer(t)

	page, err := resources.Formations.List(context.Background(), ListQuery{Search: "dev"})
	require.NoError(t, err)
	assert.Equal(t, 2, page.Count)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "Dev Web", page.Items[0].Nom)
}

func TestResource_Get_UnwrapsEnvelope(t *testing.T) {
	_, resources := newResourceServer(t)

	formation, err := resources.Formations.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), formation.ID)
	assert.Equal(t, "Dev Web", formation.Nom)
}

func TestResource_Create_ValidationError(t *testing.T) {
	_, resources := newResourceServer(t)

	_, err := resources.Formations.Create(context.Background(), map[string]any{"nom": ""})
	require.Error(t, err)
	assert.True(t, IsKind(err, KindValidation))
	assert.Equal(t, "Ce champ est obligatoire.", FieldErrors(err)["nom"])
}

func TestResource_Create(t *testing.T) {
	_, resources := newResourceServer(t)

	formation, err := resources.Formations.Create(context.Background(), map[string]any{"nom": "Nouvelle"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), formation.ID)
}

func TestResource_Delete(t *testing.T) {
	_, resources := newResourceServer(t)

	require.NoError(t, resources.Formations.Delete(context.Background(), 2))
}

func TestResource_Meta(t *testing.T) {
	_, resources := newResourceServer(t)

	meta, err := resources.Candidats.Meta(context.Background())
	require.NoError(t, err)
	require.Contains(t, meta, "statut_choices")
	assert.Equal(t, "Inscrit", meta["statut_choices"][0].Label)
}

func TestResources_NestedCommentaires(t *testing.T) {
	_, resources := newResourceServer(t)

	page, err := resources.FormationCommentaires(context.Background(), 1, ListQuery{})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "RAS", page.Items[0].Contenu)
}

func TestResource_Choices(t *testing.T) {
	_, resources := newResourceServer(t)

	choices, err := resources.Prospections.Choices(context.Background())
	require.NoError(t, err)
	require.Len(t, choices, 2)
	assert.Equal(t, "a_relancer", choices[0].Value)
	assert.Equal(t, "À relancer", choices[0].Label)
}

func TestResource_Choices_UnwrapsEnvelope(t *testing.T) {
	_, resources := newResourceServer(t)

	choices, err := resources.Candidats.Choices(context.Background())
	require.NoError(t, err)
	require.Len(t, choices, 1)
	assert.Equal(t, "Inscrit", choices[0].Label)
}

func TestResources_NestedDocuments(t *testing.T) {
	_, resources := newResourceServer(t)

	page, err := resources.FormationDocuments(context.Background(), 1, ListQuery{})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "convention.pdf", page.Items[0].NomFichier)
}

func TestResources_NestedEvenements(t *testing.T) {
	_, resources := newResourceServer(t)

	page, err := resources.FormationEvenements(context.Background(), 1, ListQuery{})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "job_dating", page.Items[0].TypeEvenement)
	assert.Equal(t, 8, page.Items[0].NbCandidats)
}

func TestResources_NestedProspections(t *testing.T) {
	_, resources := newResourceServer(t)

	page, err := resources.FormationProspections(context.Background(), 1, ListQuery{})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	require.NotNil(t, page.Items[0].Partenaire)
	assert.Equal(t, "Acme", page.Items[0].Partenaire.Nom)
}

func TestResources_NestedPartenaires(t *testing.T) {
	_, resources := newResourceServer(t)

	page, err := resources.FormationPartenaires(context.Background(), 1, ListQuery{})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Acme", page.Items[0].Nom)
}

func TestResources_NestedHistorique(t *testing.T) {
	_, resources := newResourceServer(t)

	page, err := resources.FormationHistorique(context.Background(), 1, ListQuery{})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "statut", page.Items[0].Champ)
	assert.Equal(t, "pleine", page.Items[0].NouvelleVal)
}

func TestResources_LoadFormChoices(t *testing.T) {
	_, resources := newResourceServer(t)

	choices, err := resources.LoadFormChoices(context.Background())
	require.NoError(t, err)
	require.Len(t, choices.Centres, 1)
	require.Len(t, choices.Statuts, 1)
	require.Len(t, choices.TypeOffres, 1)
	assert.Equal(t, "Paris", choices.Centres[0].Nom)
	assert.Equal(t, "CRIF", choices.TypeOffres[0].Nom)
}

func TestResources_UploadDocument(t *testing.T) {
	_, resources := newResourceServer(t)

	doc, err := resources.UploadDocument(context.Background(),
		map[string]string{"formation": "1"}, "notes.txt", strings.NewReader("hello"))
	require.NoError(t, err)
	assert.Equal(t, int64(9), doc.ID)
	assert.Equal(t, "notes.txt", doc.NomFichier)
}
