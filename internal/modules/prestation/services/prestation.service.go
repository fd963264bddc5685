package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"cetime-core/internal/app/config"
	"cetime-core/internal/infrastructure/database/postgres"
	"cetime-core/internal/modules/prestation/dto"
	"cetime-core/internal/modules/prestation/queries"

	"github.com/jackc/pgx/v5"
)

// Correspondance directe libellé pays vers res_country, avant la
// consultation de la table
var countryMap = map[string]int{
	"tunisie": 223,
	"tunisia": 223,
	"france":  73,
	"maroc":   150,
	"morocco": 150,
	"algérie": 4,
	"algerie": 4,
	"algeria": 4,
}

// PrestationService gère le registre des prestations et les chaînes de
// résolution des identifiants de l'ERP à la création
type PrestationService struct {
	db       *postgres.Client
	defaults config.PrestationConfig
}

func NewPrestationService(db *postgres.Client, cfg *config.Config) *PrestationService {
	return &PrestationService{
		db:       db,
		defaults: cfg.GetPrestation(),
	}
}

// Create résout les identifiants liés puis insère la prestation
func (s *PrestationService) Create(ctx context.Context, req dto.CreatePrestationRequest) (int, error) {
	if strings.TrimSpace(req.NomProjet) == "" {
		return 0, dto.NewPrestError("MISSING_NOM_PROJET", "Le champ 'nom_projet' est requis.", nil)
	}

	activityID, err := s.resolveActivityID(ctx, req.ActivityID, req.Activite)
	if err != nil {
		return 0, err
	}
	if activityID == nil {
		return 0, dto.NewPrestError("INVALID_ACTIVITY",
			"Activité invalide: l'id/libellé ne correspond à aucun 'product_template'.",
			map[string]interface{}{
				"activityIdRecu": req.ActivityID,
				"activiteRecue":  req.Activite,
			})
	}

	analyticID, err := s.resolveAnalyticID(ctx, req.AnalyticAccountID)
	if err != nil {
		return 0, err
	}
	if analyticID == nil {
		return 0, dto.NewPrestError("NO_ANALYTIC_ACCOUNT",
			"Aucun compte analytique valide. Définissez DEFAULT_ANALYTIC_ACCOUNT_ID "+
				"ou créez au moins un account_analytic_account.", nil)
	}

	departmentID, err := s.resolveDepartmentID(ctx, req.DepartmentID, req.Departement)
	if err != nil {
		return 0, err
	}

	countryID, err := s.resolveCountryID(ctx, req.Pays)
	if err != nil {
		return 0, err
	}

	officeOrderID, err := s.resolveOfficeOrderID(ctx, req.BureauOrder)
	if err != nil {
		return 0, err
	}

	active := true
	if req.Actif != nil {
		active = *req.Actif
	}

	var description string
	if req.AdresseClient != "" {
		description = fmt.Sprintf("Adresse client: %s", req.AdresseClient)
	}

	var id int
	err = s.db.QueryRow(ctx, queries.PrestationQueries.Insert,
		*activityID, departmentID, *analyticID, countryID,
		req.NomProjet, req.Date, req.EnteteTexte, req.ReferenceBordereau,
		officeOrderID, req.IAT, req.NumPrestation, req.ChefProjet,
		req.Intervenants, description, req.T, active).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("erreur création prestation: %w", err)
	}

	return id, nil
}

// Summary compte les prestations par état
func (s *PrestationService) Summary(ctx context.Context) (*dto.SummaryResponse, error) {
	rows, err := s.db.Query(ctx, queries.PrestationQueries.Summary)
	if err != nil {
		return nil, fmt.Errorf("erreur résumé prestations: %w", err)
	}
	defer rows.Close()

	result := &dto.SummaryResponse{Counts: []dto.StateCount{}}
	for rows.Next() {
		var entry dto.StateCount
		if err := rows.Scan(&entry.State, &entry.Count); err != nil {
			return nil, fmt.Errorf("erreur lecture compteur: %w", err)
		}
		result.Counts = append(result.Counts, entry)
		result.Total += entry.Count
	}

	return result, nil
}

// ListByState retourne une page de prestations d'un état donné
func (s *PrestationService) ListByState(ctx context.Context, state, q string, page, pageSize int) (*dto.ListByStateResponse, error) {
	state = strings.ToLower(strings.TrimSpace(state))
	if state == "" {
		return nil, dto.NewPrestError("MISSING_STATE", "Paramètre 'state' manquant. Ex: ?state=closed", nil)
	}
	if !dto.AllowedStates[state] {
		return nil, dto.NewPrestError("INVALID_STATE", "Paramètre 'state' invalide.", map[string]interface{}{
			"allowed": []string{"closed", "done", "open", "draft", "rejected"},
		})
	}

	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}
	if pageSize > 100 {
		pageSize = 100
	}
	offset := (page - 1) * pageSize

	pattern := likePattern(q)

	rows, err := s.db.Query(ctx, queries.PrestationQueries.ListByState, state, pattern, pageSize, offset)
	if err != nil {
		return nil, fmt.Errorf("erreur liste par état: %w", err)
	}
	defer rows.Close()

	result := &dto.ListByStateResponse{Rows: []dto.StateRow{}, Page: page, PageSize: pageSize}
	for rows.Next() {
		var r dto.StateRow
		if err := rows.Scan(&r.ID, &r.Prestation, &r.NamePrimary, &r.Date, &r.IAT,
			&r.ReferenceBordereau, &r.DepartmentID, &r.ActivityID,
			&r.DepartmentName, &r.ActivityName); err != nil {
			return nil, fmt.Errorf("erreur lecture ligne: %w", err)
		}
		result.Rows = append(result.Rows, r)
	}
	rows.Close()

	err = s.db.QueryRow(ctx, queries.PrestationQueries.CountByState, state, pattern).Scan(&result.Count)
	if err != nil {
		return nil, fmt.Errorf("erreur total liste par état: %w", err)
	}

	return result, nil
}

// List retourne la liste générique normalisée avec filtres optionnels
func (s *PrestationService) List(ctx context.Context, state, q string, limit, offset int) ([]dto.Prestation, error) {
	if limit <= 0 || limit > 1000 {
		limit = 1000
	}
	if offset < 0 {
		offset = 0
	}

	return s.listNormalized(ctx, queries.PrestationQueries.ListGeneric,
		strings.ToLower(strings.TrimSpace(state)), likePattern(q), limit, offset)
}

// GetByID retourne le détail normalisé avec ses documents
func (s *PrestationService) GetByID(ctx context.Context, id int) (*dto.Prestation, error) {
	row := s.db.QueryRow(ctx, queries.PrestationQueries.GetByID, id)

	prest, err := scanNormalized(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errPrestationNotFound()
		}
		return nil, fmt.Errorf("erreur récupération prestation: %w", err)
	}

	docs, err := s.documentsFor(ctx, id)
	if err != nil {
		return nil, err
	}
	prest.Documents = docs

	return &prest, nil
}

// GetFull retourne le détail complet avec les libellés joints
func (s *PrestationService) GetFull(ctx context.Context, id int) (*dto.FullResponse, error) {
	var full dto.PrestationFull

	row := s.db.QueryRow(ctx, queries.PrestationQueries.GetFull, id)
	err := row.Scan(&full.ID, &full.Prestation, &full.NamePrimary, &full.State,
		&full.Date, &full.IAT, &full.Entete, &full.ReferenceBordereau,
		&full.Intervenants, &full.DepartmentName, &full.ActivityName,
		&full.CountryName, &full.AnalyticName, &full.AnalyticCode, &full.ResponsibleName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errPrestationNotFound()
		}
		return nil, fmt.Errorf("erreur détail prestation: %w", err)
	}

	docs, err := s.documentsFor(ctx, id)
	if err != nil {
		return nil, err
	}

	return &dto.FullResponse{Row: full, Documents: docs}, nil
}

// Update applique une mise à jour partielle puis retourne le détail
func (s *PrestationService) Update(ctx context.Context, id int, req dto.UpdatePrestationRequest) (*dto.Prestation, error) {
	if _, err := s.GetByID(ctx, id); err != nil {
		return nil, err
	}

	err := s.db.Exec(ctx, queries.PrestationQueries.Update, id,
		req.NomProjet, req.Prestation, req.State, req.IAT, req.Intervenants,
		req.ReferenceBordereau, req.DepartmentID, req.ActivityID,
		req.ResponsibleID, req.Date)
	if err != nil {
		return nil, fmt.Errorf("erreur mise à jour prestation: %w", err)
	}

	return s.GetByID(ctx, id)
}

// Delete supprime une prestation existante
func (s *PrestationService) Delete(ctx context.Context, id int) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}

	if err := s.db.Exec(ctx, queries.PrestationQueries.Delete, id); err != nil {
		return fmt.Errorf("erreur suppression prestation: %w", err)
	}

	return nil
}

// ListByClient retourne les prestations rattachées à un compte client
func (s *PrestationService) ListByClient(ctx context.Context, clientID int) ([]dto.Prestation, error) {
	rows, err := s.db.Query(ctx, queries.PrestationQueries.ListByClient, strconv.Itoa(clientID))
	if err != nil {
		return nil, fmt.Errorf("erreur prestations client: %w", err)
	}
	defer rows.Close()

	return collectNormalized(rows)
}

/* ------------------------- Chaînes de résolution -------------------------- */

// resolveActivityID résout l'activité par id, libellé, code article
// puis valeur par défaut de la configuration
func (s *PrestationService) resolveActivityID(ctx context.Context, rawID *int, activite string) (*int, error) {
	if rawID != nil && *rawID > 0 {
		exists, err := s.existsQuery(ctx, queries.ResolutionQueries.ActivityExists, *rawID)
		if err != nil {
			return nil, err
		}
		if exists {
			return rawID, nil
		}
	}

	activite = strings.TrimSpace(activite)
	if activite != "" {
		if id, ok, err := s.idQuery(ctx, queries.ResolutionQueries.ActivityByName, activite); err != nil {
			return nil, err
		} else if ok {
			return &id, nil
		}

		if id, ok, err := s.idQuery(ctx, queries.ResolutionQueries.ActivityByDefaultCode, activite); err != nil {
			return nil, err
		} else if ok {
			return &id, nil
		}
	}

	if s.defaults.DefaultActivityID > 0 {
		id := s.defaults.DefaultActivityID
		return &id, nil
	}

	return nil, nil
}

// resolveAnalyticID résout le compte analytique par id, valeur par
// défaut de la configuration puis première ligne de la table
func (s *PrestationService) resolveAnalyticID(ctx context.Context, rawID *int) (*int, error) {
	if rawID != nil && *rawID > 0 {
		exists, err := s.existsQuery(ctx, queries.ResolutionQueries.AnalyticExists, *rawID)
		if err != nil {
			return nil, err
		}
		if exists {
			return rawID, nil
		}
	}

	if s.defaults.DefaultAnalyticAccountID > 0 {
		exists, err := s.existsQuery(ctx, queries.ResolutionQueries.AnalyticExists, s.defaults.DefaultAnalyticAccountID)
		if err != nil {
			return nil, err
		}
		if exists {
			id := s.defaults.DefaultAnalyticAccountID
			return &id, nil
		}
	}

	var id int
	err := s.db.QueryRow(ctx, queries.ResolutionQueries.FirstAnalytic).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("erreur résolution compte analytique: %w", err)
	}

	return &id, nil
}

func (s *PrestationService) resolveDepartmentID(ctx context.Context, rawID *int, departement string) (*int, error) {
	if rawID != nil && *rawID > 0 {
		exists, err := s.existsQuery(ctx, queries.ResolutionQueries.DepartmentExists, *rawID)
		if err != nil {
			return nil, err
		}
		if exists {
			return rawID, nil
		}
	}

	departement = strings.TrimSpace(departement)
	if departement != "" {
		if id, ok, err := s.idQuery(ctx, queries.ResolutionQueries.DepartmentByCodeName, departement); err != nil {
			return nil, err
		} else if ok {
			return &id, nil
		}
	}

	return nil, nil
}

// resolveCountryID résout le pays par id numérique, table statique,
// table res_country puis Tunisie par défaut
func (s *PrestationService) resolveCountryID(ctx context.Context, pays string) (int, error) {
	pays = strings.TrimSpace(pays)
	if pays != "" {
		if id, err := strconv.Atoi(pays); err == nil && id > 0 {
			return id, nil
		}

		if id, ok := countryMap[strings.ToLower(pays)]; ok {
			return id, nil
		}

		if id, ok, err := s.idQuery(ctx, queries.ResolutionQueries.CountryByName, pays); err != nil {
			return 0, err
		} else if ok {
			return id, nil
		}
	}

	if s.defaults.DefaultCountryID > 0 {
		return s.defaults.DefaultCountryID, nil
	}

	return 223, nil
}

func (s *PrestationService) resolveOfficeOrderID(ctx context.Context, raw string) (*int, error) {
	if id, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil && id > 0 {
		exists, err := s.existsQuery(ctx, queries.ResolutionQueries.OfficeOrderExists, id)
		if err != nil {
			return nil, err
		}
		if exists {
			return &id, nil
		}
	}

	if s.defaults.DefaultOfficeOrderID > 0 {
		exists, err := s.existsQuery(ctx, queries.ResolutionQueries.OfficeOrderExists, s.defaults.DefaultOfficeOrderID)
		if err != nil {
			return nil, err
		}
		if exists {
			id := s.defaults.DefaultOfficeOrderID
			return &id, nil
		}
	}

	// La colonne accepte NULL
	return nil, nil
}

/* --------------------------------- Helpers -------------------------------- */

func (s *PrestationService) existsQuery(ctx context.Context, sql string, arg interface{}) (bool, error) {
	var exists bool
	if err := s.db.QueryRow(ctx, sql, arg).Scan(&exists); err != nil {
		return false, fmt.Errorf("erreur vérification existence: %w", err)
	}
	return exists, nil
}

func (s *PrestationService) idQuery(ctx context.Context, sql string, arg interface{}) (int, bool, error) {
	var id int
	err := s.db.QueryRow(ctx, sql, arg).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("erreur résolution identifiant: %w", err)
	}
	return id, true, nil
}

func (s *PrestationService) documentsFor(ctx context.Context, prestationID int) ([]dto.DocumentRef, error) {
	rows, err := s.db.Query(ctx, queries.PrestationQueries.DocumentsByPrestID, prestationID)
	if err != nil {
		return nil, fmt.Errorf("erreur documents prestation: %w", err)
	}
	defer rows.Close()

	docs := []dto.DocumentRef{}
	for rows.Next() {
		var d dto.DocumentRef
		if err := rows.Scan(&d.ID, &d.Type, &d.CheminFichier, &d.Actif, &d.Date); err != nil {
			return nil, fmt.Errorf("erreur lecture document: %w", err)
		}
		docs = append(docs, d)
	}

	return docs, nil
}

func (s *PrestationService) listNormalized(ctx context.Context, sql string, args ...interface{}) ([]dto.Prestation, error) {
	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("erreur liste prestations: %w", err)
	}
	defer rows.Close()

	return collectNormalized(rows)
}

func collectNormalized(rows pgx.Rows) ([]dto.Prestation, error) {
	prests := []dto.Prestation{}
	for rows.Next() {
		prest, err := scanNormalized(rows)
		if err != nil {
			return nil, fmt.Errorf("erreur lecture prestation: %w", err)
		}
		prests = append(prests, prest)
	}
	return prests, nil
}

func scanNormalized(row pgx.Row) (dto.Prestation, error) {
	var p dto.Prestation
	var departmentID, activityID *int
	var departmentName, activityName string

	err := row.Scan(&p.ID, &p.Prestation, &p.Description, &p.IAT, &p.Intervenants,
		&p.Date, &p.DateStartPrevue, &p.Commercial, &p.State,
		&departmentID, &departmentName, &activityID, &activityName,
		&p.PartnerName, &p.ResponsibleName)
	if err != nil {
		return dto.Prestation{}, err
	}

	p.ChefProjet = p.ResponsibleName
	p.DepartmentName = departmentName
	p.ActivityName = activityName
	p.Documents = []dto.DocumentRef{}
	if departmentID != nil {
		p.Department = &dto.Ref{ID: *departmentID, Name: departmentName}
	}
	if activityID != nil {
		p.Activity = &dto.Ref{ID: *activityID, Name: activityName}
	}

	return p, nil
}

func likePattern(q string) string {
	q = strings.TrimSpace(q)
	if q == "" {
		return ""
	}
	return "%" + q + "%"
}

func errPrestationNotFound() *dto.PrestError {
	return dto.NewPrestError("PRESTATION_NOT_FOUND", "Prestation non trouvée", nil)
}
