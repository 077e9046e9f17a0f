package api

// NomID is the minimal referenced-entity shape used by choice endpoints
// and foreign-key fields (centres, statuts, type d'offres).
type NomID struct {
	ID  int64  `json:"id"`
	Nom string `json:"nom"`
}

// Badge extends NomID with the display attributes carried by statut and
// type d'offre records.
type Badge struct {
	ID      int64  `json:"id"`
	Nom     string `json:"nom"`
	Libelle string `json:"libelle,omitempty"`
	Couleur string `json:"couleur,omitempty"`
}

// Formation is a training-program record.
type Formation struct {
	ID         int64  `json:"id"`
	Nom        string `json:"nom"`
	Centre     *NomID `json:"centre,omitempty"`
	Statut     *Badge `json:"statut,omitempty"`
	TypeOffre  *Badge `json:"type_offre,omitempty"`
	StartDate  string `json:"start_date,omitempty"`
	EndDate    string `json:"end_date,omitempty"`
	NumKairos  string `json:"num_kairos,omitempty"`
	NumOffre   string `json:"num_offre,omitempty"`
	NumProduit string `json:"num_produit,omitempty"`
	Assistante string `json:"assistante,omitempty"`

	PrevusCRIF   int `json:"prevus_crif,omitempty"`
	PrevusMP     int `json:"prevus_mp,omitempty"`
	InscritsCRIF int `json:"inscrits_crif,omitempty"`
	InscritsMP   int `json:"inscrits_mp,omitempty"`
	Cap          int `json:"cap,omitempty"`

	TotalPlaces     int      `json:"total_places,omitempty"`
	InscritsTotal   int      `json:"inscrits_total,omitempty"`
	PlacesRestantes int      `json:"places_restantes,omitempty"`
	Saturation      *float64 `json:"saturation,omitempty"`

	DernierCommentaire string `json:"dernier_commentaire,omitempty"`
	CreatedAt          string `json:"created_at,omitempty"`
	UpdatedAt          string `json:"updated_at,omitempty"`
}

// Commentaire is a dated comment attached to a formation.
type Commentaire struct {
	ID           int64    `json:"id"`
	FormationID  int64    `json:"formation_id"`
	FormationNom string   `json:"formation_nom,omitempty"`
	NumOffre     string   `json:"num_offre,omitempty"`
	CentreNom    string   `json:"centre_nom,omitempty"`
	Contenu      string   `json:"contenu"`
	Auteur       string   `json:"auteur,omitempty"`
	Date         string   `json:"date,omitempty"`
	Heure        string   `json:"heure,omitempty"`
	Saturation   *float64 `json:"saturation,omitempty"`
	IsEdited     bool     `json:"is_edited,omitempty"`
}

// Document is a file attached to a formation. Create/update go through
// multipart upload; this struct is the read shape.
type Document struct {
	ID            int64  `json:"id"`
	FormationID   int64  `json:"formation,omitempty"`
	NomFichier    string `json:"nom_fichier"`
	TypeDocument  string `json:"type_document,omitempty"`
	TailleFichier int64  `json:"taille_fichier,omitempty"`
	MimeType      string `json:"mime_type,omitempty"`
	Telecharger   string `json:"download_url,omitempty"`
	CreatedAt     string `json:"created_at,omitempty"`
}

// Partenaire is a partner organisation.
type Partenaire struct {
	ID            int64  `json:"id"`
	Nom           string `json:"nom"`
	Type          string `json:"type,omitempty"`
	Secteur       string `json:"secteur_activite,omitempty"`
	Ville         string `json:"city,omitempty"`
	CodePostal    string `json:"zip_code,omitempty"`
	ContactNom    string `json:"contact_nom,omitempty"`
	ContactEmail  string `json:"contact_email,omitempty"`
	ContactPhone  string `json:"contact_telephone,omitempty"`
	SiteWeb       string `json:"website,omitempty"`
	Actions       string `json:"actions,omitempty"`
	Description   string `json:"description,omitempty"`
	CreatedAt     string `json:"created_at,omitempty"`
	NbProspection int    `json:"nb_prospections,omitempty"`
}

// Candidat is a training candidate.
type Candidat struct {
	ID              int64  `json:"id"`
	Nom             string `json:"nom"`
	Prenom          string `json:"prenom"`
	NomComplet      string `json:"nom_complet,omitempty"`
	Email           string `json:"email,omitempty"`
	Telephone       string `json:"telephone,omitempty"`
	Ville           string `json:"ville,omitempty"`
	CodePostal      string `json:"code_postal,omitempty"`
	Statut          string `json:"statut,omitempty"`
	Formation       *int64 `json:"formation,omitempty"`
	EntretienDone   bool   `json:"entretien_done,omitempty"`
	TestIsOK        bool   `json:"test_is_ok,omitempty"`
	Admissible      bool   `json:"admissible,omitempty"`
	RQTH            bool   `json:"rqth,omitempty"`
	PermisB         bool   `json:"permis_b,omitempty"`
	DateInscription string `json:"date_inscription,omitempty"`
	Date            string `json:"date_naissance,omitempty"`
}

// Prospection is a partner-prospecting record.
type Prospection struct {
	ID            int64  `json:"id"`
	Partenaire    *NomID `json:"partenaire,omitempty"`
	Formation     *NomID `json:"formation,omitempty"`
	Statut        string `json:"statut,omitempty"`
	Objectif      string `json:"objectif,omitempty"`
	Motif         string `json:"motif,omitempty"`
	TypeContact   string `json:"type_contact,omitempty"`
	Commentaire   string `json:"commentaire,omitempty"`
	DateProchaine string `json:"prochain_contact,omitempty"`
	Date          string `json:"date_prospection,omitempty"`
}

// Appairage pairs a candidate with a partner for placement.
type Appairage struct {
	ID          int64  `json:"id"`
	Candidat    *NomID `json:"candidat,omitempty"`
	Partenaire  *NomID `json:"partenaire,omitempty"`
	Formation   *NomID `json:"formation,omitempty"`
	Statut      string `json:"statut,omitempty"`
	Commentaire string `json:"commentaire,omitempty"`
	Date        string `json:"date_appairage,omitempty"`
}

// AtelierTRE is a job-search workshop session.
type AtelierTRE struct {
	ID          int64  `json:"id"`
	TypeAtelier string `json:"type_atelier"`
	Date        string `json:"date_atelier,omitempty"`
	NbInscrits  int    `json:"nb_inscrits,omitempty"`
	Remarque    string `json:"remarque,omitempty"`
}

// Evenement is a recruitment event attached to a formation.
type Evenement struct {
	ID             int64  `json:"id"`
	FormationID    int64  `json:"formation,omitempty"`
	TypeEvenement  string `json:"type_evenement,omitempty"`
	Details        string `json:"details,omitempty"`
	Date           string `json:"event_date,omitempty"`
	NbCandidats    int    `json:"nombre_candidats,omitempty"`
	NbInscriptions int    `json:"nombre_inscriptions,omitempty"`
}

// Historique is an audit-trail entry for a formation.
type Historique struct {
	ID          int64  `json:"id"`
	FormationID int64  `json:"formation_id,omitempty"`
	Champ       string `json:"champ,omitempty"`
	AncienneVal string `json:"ancienne_valeur,omitempty"`
	NouvelleVal string `json:"nouvelle_valeur,omitempty"`
	Auteur      string `json:"modifie_par,omitempty"`
	Date        string `json:"created_at,omitempty"`
}

// Choice is one entry of a /<resource>/choices/ or /<resource>/meta/
// enumeration (value + human label).
type Choice struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// SearchResult is one hit of the global GET /search/ endpoint.
type SearchResult struct {
	Type  string `json:"type"`
	ID    int64  `json:"id"`
	Label string `json:"label"`
	URL   string `json:"url,omitempty"`
}
