package bootstrap

import (
	"context"
	"fmt"
	"os"

	"cetime-core/internal/app/config"
	"cetime-core/internal/infrastructure/database/postgres"
	"cetime-core/internal/shared/utils"
)

// SeedingManager gère le seeding des données initiales : groupes de base
// pour la résolution des rôles et compte administrateur de développement
type SeedingManager struct {
	pgClient *postgres.Client
	config   *config.Config
}

// SeedStatus état des données de seeding
type SeedStatus struct {
	GroupsExist   bool
	AdminExists   bool
	AllDataExists bool
}

// Groupes de base attendus par la résolution des rôles
var baseGroups = []string{
	"Administrateur",
	"Agent",
	"Client",
}

// NewSeedingManager crée une nouvelle instance du gestionnaire de seeding
func NewSeedingManager(pgClient *postgres.Client, cfg *config.Config) *SeedingManager {
	return &SeedingManager{
		pgClient: pgClient,
		config:   cfg,
	}
}

// CheckSeedDataExists vérifie quelles données de seeding existent déjà
func (sm *SeedingManager) CheckSeedDataExists(ctx context.Context) (*SeedStatus, error) {
	fmt.Printf("[SEEDING] Vérification données existantes\n")

	status := &SeedStatus{}

	var groupCount int
	err := sm.pgClient.Pool().QueryRow(ctx,
		`SELECT COUNT(*) FROM res_groups WHERE name = ANY($1)`,
		baseGroups,
	).Scan(&groupCount)
	if err != nil {
		return nil, fmt.Errorf("erreur vérification groupes: %w", err)
	}
	status.GroupsExist = groupCount == len(baseGroups)

	err = sm.pgClient.Pool().QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM res_users WHERE login = 'admin')`,
	).Scan(&status.AdminExists)
	if err != nil {
		return nil, fmt.Errorf("erreur vérification admin: %w", err)
	}

	status.AllDataExists = status.GroupsExist && status.AdminExists

	fmt.Printf("[SEEDING] État données: groupes=%t, admin=%t\n",
		status.GroupsExist, status.AdminExists)

	return status, nil
}

// ApplySeeding applique le seeding selon les données manquantes
func (sm *SeedingManager) ApplySeeding(ctx context.Context, status *SeedStatus) error {
	if status.AllDataExists {
		fmt.Printf("[SEEDING] ✅ Toutes les données de base sont déjà présentes\n")
		return nil
	}

	fmt.Printf("[SEEDING] 🌱 Application seeding données manquantes\n")

	if !status.GroupsExist {
		if err := sm.SeedBaseGroups(ctx); err != nil {
			return fmt.Errorf("échec seeding groupes: %w", err)
		}
	}

	// Le compte admin par défaut n'est créé qu'en développement
	if !status.AdminExists && sm.config.Environment == "development" {
		if err := sm.SeedDefaultAdmin(ctx); err != nil {
			return fmt.Errorf("échec seeding admin par défaut: %w", err)
		}
	}

	fmt.Printf("[SEEDING] ✅ Seeding terminé avec succès\n")
	return nil
}

// SeedBaseGroups crée les groupes de base s'ils n'existent pas
func (sm *SeedingManager) SeedBaseGroups(ctx context.Context) error {
	fmt.Printf("[SEEDING] 📋 Création des groupes de base\n")

	for _, group := range baseGroups {
		_, err := sm.pgClient.Pool().Exec(ctx,
			`INSERT INTO res_groups (name) VALUES ($1) ON CONFLICT (name) DO NOTHING`,
			group,
		)
		if err != nil {
			return fmt.Errorf("création groupe %s: %w", group, err)
		}
	}

	fmt.Printf("[SEEDING] ✅ Groupes de base créés\n")
	return nil
}

// SeedDefaultAdmin crée le compte administrateur de développement
func (sm *SeedingManager) SeedDefaultAdmin(ctx context.Context) error {
	fmt.Printf("[SEEDING] 👤 Création compte admin de développement\n")

	password := os.Getenv("ADMIN_DEFAULT_PASSWORD")
	if password == "" {
		password = "admin1234"
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash mot de passe admin: %w", err)
	}

	tx, err := sm.pgClient.Pool().Begin(ctx)
	if err != nil {
		return fmt.Errorf("ouverture transaction seeding admin: %w", err)
	}
	defer tx.Rollback(ctx)

	var partnerID int
	err = tx.QueryRow(ctx,
		`INSERT INTO res_partner (name, email) VALUES ($1, $2) RETURNING id`,
		"Administrateur", "admin@cetime.tn",
	).Scan(&partnerID)
	if err != nil {
		return fmt.Errorf("création partner admin: %w", err)
	}

	var userID int
	err = tx.QueryRow(ctx,
		`INSERT INTO res_users (partner_id, login, password, active)
		 VALUES ($1, 'admin', $2, TRUE) RETURNING id`,
		partnerID, hashed,
	).Scan(&userID)
	if err != nil {
		return fmt.Errorf("création utilisateur admin: %w", err)
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO res_groups_users_rel (gid, uid)
		 SELECT id, $1 FROM res_groups WHERE name = 'Administrateur'
		 ON CONFLICT DO NOTHING`,
		userID,
	)
	if err != nil {
		return fmt.Errorf("liaison groupe admin: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit seeding admin: %w", err)
	}

	fmt.Printf("[SEEDING] ✅ Compte admin créé (login: admin)\n")
	return nil
}
