package services

import (
	"context"
	"fmt"
	"strings"

	"cetime-core/internal/infrastructure/database/postgres"
	"cetime-core/internal/modules/prestation/dto"
	"cetime-core/internal/modules/prestation/queries"
)

// LookupService alimente les listes déroulantes du front
type LookupService struct {
	db *postgres.Client
}

func NewLookupService(db *postgres.Client) *LookupService {
	return &LookupService{db: db}
}

// SearchActivities recherche des activités par libellé
func (s *LookupService) SearchActivities(ctx context.Context, q string) ([]dto.Option, error) {
	rows, err := s.db.Query(ctx, queries.LookupQueries.SearchActivities, likePattern(q))
	if err != nil {
		return nil, fmt.Errorf("erreur recherche activités: %w", err)
	}
	defer rows.Close()

	options := []dto.Option{}
	for rows.Next() {
		var opt dto.Option
		if err := rows.Scan(&opt.Value, &opt.Label); err != nil {
			return nil, fmt.Errorf("erreur lecture activité: %w", err)
		}
		options = append(options, opt)
	}

	return options, nil
}

// ListDepartments liste les départements, filtrables par préfixe de code
func (s *LookupService) ListDepartments(ctx context.Context, code string) ([]dto.Option, error) {
	pattern := ""
	if code = strings.TrimSpace(code); code != "" {
		pattern = code + "%"
	}

	rows, err := s.db.Query(ctx, queries.LookupQueries.ListDepartments, pattern)
	if err != nil {
		return nil, fmt.Errorf("erreur liste départements: %w", err)
	}
	defer rows.Close()

	options := []dto.Option{}
	for rows.Next() {
		var id int
		var deptCode, name string
		if err := rows.Scan(&id, &deptCode, &name); err != nil {
			return nil, fmt.Errorf("erreur lecture département: %w", err)
		}

		label := name
		if deptCode != "" {
			label = strings.TrimSpace(fmt.Sprintf("%s - %s", deptCode, name))
		}
		options = append(options, dto.Option{Value: id, Label: label})
	}

	return options, nil
}

// UsersByGroup liste les comptes membres d'un groupe, par id de groupe
// ou motif insensible à la casse sur son nom
func (s *LookupService) UsersByGroup(ctx context.Context, group string, groupID int, q string, limit int) ([]dto.UserOption, error) {
	if group == "" {
		group = "client"
	}
	if limit <= 0 || limit > 500 {
		limit = 200
	}

	rows, err := s.db.Query(ctx, queries.LookupQueries.UsersByGroup,
		groupID, "%"+group+"%", likePattern(q), limit)
	if err != nil {
		return nil, fmt.Errorf("erreur utilisateurs par groupe: %w", err)
	}
	defer rows.Close()

	users := []dto.UserOption{}
	for rows.Next() {
		var u dto.UserOption
		var name string
		if err := rows.Scan(&u.ID, &u.Label, &u.Active, &u.PartnerID, &name, &u.Email); err != nil {
			return nil, fmt.Errorf("erreur lecture utilisateur: %w", err)
		}

		u.Value = u.ID
		u.PartnerName = name
		if name != "" {
			u.Label = name
		}
		if u.Label == "" {
			u.Label = fmt.Sprintf("user_%d", u.ID)
		}
		users = append(users, u)
	}

	return users, nil
}
