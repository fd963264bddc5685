package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cetime-core/internal/infrastructure/database/postgres"
	"cetime-core/internal/modules/rendezvous/dto"
	"cetime-core/internal/modules/rendezvous/queries"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// PostgresStore implémente Store sur le client pgx du projet
type PostgresStore struct {
	db *postgres.Client
}

func NewPostgresStore(db *postgres.Client) *PostgresStore {
	return &PostgresStore{db: db}
}

// NewStore expose l'implémentation PostgreSQL derrière l'interface Store
func NewStore(db *postgres.Client) Store {
	return NewPostgresStore(db)
}

func (s *PostgresStore) CreateDisponibilite(ctx context.Context, agentID int, start, end time.Time) (dto.Disponibilite, error) {
	dispo := dto.Disponibilite{AgentID: agentID, Start: start, End: end}

	err := s.db.QueryRow(ctx, queries.DisponibiliteQueries.Insert, agentID, start, end).Scan(&dispo.ID)
	if err != nil {
		return dto.Disponibilite{}, fmt.Errorf("erreur création disponibilité: %w", err)
	}

	return dispo, nil
}

func (s *PostgresStore) ListDisponibilitesByAgent(ctx context.Context, agentID int) ([]dto.Disponibilite, error) {
	rows, err := s.db.Query(ctx, queries.DisponibiliteQueries.ListByAgent, agentID)
	if err != nil {
		return nil, fmt.Errorf("erreur liste disponibilités: %w", err)
	}
	defer rows.Close()

	return scanDisponibilites(rows)
}

func (s *PostgresStore) ListAllDisponibilites(ctx context.Context) ([]dto.Disponibilite, error) {
	rows, err := s.db.Query(ctx, queries.DisponibiliteQueries.ListAll)
	if err != nil {
		return nil, fmt.Errorf("erreur liste disponibilités: %w", err)
	}
	defer rows.Close()

	return scanDisponibilites(rows)
}

func (s *PostgresStore) AgentHasWindowOnDay(ctx context.Context, agentID int, day time.Time) (bool, error) {
	var exists bool
	err := s.db.QueryRow(ctx, queries.DisponibiliteQueries.AgentHasWindowOnDay,
		agentID, day.Format("2006-01-02")).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("erreur vérification créneau agent: %w", err)
	}
	return exists, nil
}

func (s *PostgresStore) FindCoveringAgent(ctx context.Context, start, end time.Time) (*int, error) {
	var id int
	err := s.db.QueryRow(ctx, queries.DisponibiliteQueries.FindCoveringAgent, start, end).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("erreur recherche agent disponible: %w", err)
	}

	return &id, nil
}

func (s *PostgresStore) InsertRendezVous(ctx context.Context, rdv dto.RendezVous) (int, error) {
	var id int
	err := s.db.QueryRow(ctx, queries.RendezVousQueries.Insert,
		rdv.ClientID, rdv.AgentID, rdv.DateRdv, rdv.Duree, rdv.Statut, rdv.Objet, rdv.Notes).Scan(&id)
	if err != nil {
		if isDayConflict(err) {
			return 0, ErrDayConflict
		}
		return 0, fmt.Errorf("erreur création rendez-vous: %w", err)
	}

	return id, nil
}

func (s *PostgresStore) GetRendezVous(ctx context.Context, id int) (dto.RendezVous, error) {
	row := s.db.QueryRow(ctx, queries.RendezVousQueries.GetByID, id)

	rdv, err := scanRendezVous(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dto.RendezVous{}, ErrNotFound
		}
		return dto.RendezVous{}, fmt.Errorf("erreur récupération rendez-vous: %w", err)
	}

	return rdv, nil
}

func (s *PostgresStore) UpdateStatutAgent(ctx context.Context, id int, statut string, agentID *int) error {
	err := s.db.Exec(ctx, queries.RendezVousQueries.UpdateStatutAgent, id, statut, agentID)
	if err != nil {
		if isDayConflict(err) {
			return ErrDayConflict
		}
		return fmt.Errorf("erreur mise à jour rendez-vous: %w", err)
	}
	return nil
}

func (s *PostgresStore) AgentHasConfirmedOnDay(ctx context.Context, agentID int, day time.Time, excludeRdvID int) (bool, error) {
	var exists bool
	err := s.db.QueryRow(ctx, queries.RendezVousQueries.AgentHasConfirmedOnDay,
		agentID, day.Format("2006-01-02"), excludeRdvID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("erreur vérification conflit jour: %w", err)
	}
	return exists, nil
}

func (s *PostgresStore) ListByClient(ctx context.Context, clientID int) ([]dto.RendezVous, error) {
	return s.listRendezVous(ctx, queries.RendezVousQueries.ListByClient, clientID)
}

func (s *PostgresStore) ListByAgent(ctx context.Context, agentID int) ([]dto.RendezVous, error) {
	return s.listRendezVous(ctx, queries.RendezVousQueries.ListByAgent, agentID)
}

func (s *PostgresStore) ListAll(ctx context.Context) ([]dto.RendezVous, error) {
	return s.listRendezVous(ctx, queries.RendezVousQueries.ListAll)
}

func (s *PostgresStore) ListPendingUnassigned(ctx context.Context) ([]dto.RendezVous, error) {
	return s.listRendezVous(ctx, queries.RendezVousQueries.ListPendingUnassigned)
}

func (s *PostgresStore) GetUserContact(ctx context.Context, userID int) (string, string, error) {
	var name, email string
	err := s.db.QueryRow(ctx, queries.AnnuaireQueries.GetUserContact, userID).Scan(&name, &email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", "", ErrNotFound
		}
		return "", "", fmt.Errorf("erreur récupération contact: %w", err)
	}
	return name, email, nil
}

func (s *PostgresStore) listRendezVous(ctx context.Context, sql string, args ...interface{}) ([]dto.RendezVous, error) {
	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("erreur liste rendez-vous: %w", err)
	}
	defer rows.Close()

	rdvs := []dto.RendezVous{}
	for rows.Next() {
		rdv, err := scanRendezVous(rows)
		if err != nil {
			return nil, fmt.Errorf("erreur lecture rendez-vous: %w", err)
		}
		rdvs = append(rdvs, rdv)
	}

	return rdvs, nil
}

func scanRendezVous(row pgx.Row) (dto.RendezVous, error) {
	var rdv dto.RendezVous
	err := row.Scan(&rdv.ID, &rdv.ClientID, &rdv.AgentID, &rdv.DateRdv, &rdv.Duree,
		&rdv.Statut, &rdv.Objet, &rdv.Notes, &rdv.ClientName, &rdv.ClientEmail, &rdv.AgentName)
	return rdv, err
}

func scanDisponibilites(rows pgx.Rows) ([]dto.Disponibilite, error) {
	dispos := []dto.Disponibilite{}
	for rows.Next() {
		var d dto.Disponibilite
		if err := rows.Scan(&d.ID, &d.AgentID, &d.Start, &d.End); err != nil {
			return nil, fmt.Errorf("erreur lecture disponibilité: %w", err)
		}
		dispos = append(dispos, d)
	}
	return dispos, nil
}

// isDayConflict détecte la violation de l'index partiel d'unicité
// agent/jour sur les rendez-vous validés
func isDayConflict(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" && pgErr.ConstraintName == "rendezvous_agent_jour_valide_uniq"
	}
	return false
}
