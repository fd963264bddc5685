package bootstrap

import (
	"context"
	"fmt"

	"cetime-core/internal/app/config"
	"cetime-core/internal/infrastructure/database/postgres"
)

// SchemaManager crée les tables propres à la plateforme.
// Les tables de l'ERP (res_users, res_partner, prestation_prestation, ...)
// préexistent en production ; les CREATE IF NOT EXISTS les recréent à
// l'identique en développement et sont sans effet ailleurs.
type SchemaManager struct {
	pgClient *postgres.Client
	config   *config.Config
}

// NewSchemaManager crée une nouvelle instance du gestionnaire de schéma
func NewSchemaManager(pgClient *postgres.Client, cfg *config.Config) *SchemaManager {
	return &SchemaManager{
		pgClient: pgClient,
		config:   cfg,
	}
}

// schemaStatements DDL appliqué au démarrage, dans l'ordre
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS res_partner (
		id SERIAL PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		email VARCHAR(255),
		phone VARCHAR(64),
		active BOOLEAN NOT NULL DEFAULT TRUE,
		create_date TIMESTAMP NOT NULL DEFAULT NOW(),
		write_date TIMESTAMP NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS res_users (
		id SERIAL PRIMARY KEY,
		partner_id INTEGER NOT NULL REFERENCES res_partner(id),
		login VARCHAR(255) NOT NULL UNIQUE,
		password VARCHAR(255),
		active BOOLEAN NOT NULL DEFAULT TRUE,
		create_date TIMESTAMP NOT NULL DEFAULT NOW(),
		write_date TIMESTAMP NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS res_groups (
		id SERIAL PRIMARY KEY,
		name VARCHAR(255) NOT NULL UNIQUE
	)`,

	`CREATE TABLE IF NOT EXISTS res_groups_users_rel (
		gid INTEGER NOT NULL REFERENCES res_groups(id),
		uid INTEGER NOT NULL REFERENCES res_users(id),
		PRIMARY KEY (gid, uid)
	)`,

	// date_rdv et les fenêtres sont stockés en TIMESTAMP sans fuseau :
	// date(date_rdv) doit être IMMUTABLE pour l'index partiel ci-dessous.
	`CREATE TABLE IF NOT EXISTS disponibilite (
		id SERIAL PRIMARY KEY,
		agent_id INTEGER NOT NULL REFERENCES res_users(id),
		start_at TIMESTAMP NOT NULL,
		end_at TIMESTAMP NOT NULL,
		create_date TIMESTAMP NOT NULL DEFAULT NOW(),
		CONSTRAINT disponibilite_fenetre_check CHECK (end_at > start_at)
	)`,

	`CREATE INDEX IF NOT EXISTS disponibilite_agent_idx
		ON disponibilite (agent_id, start_at)`,

	`CREATE TABLE IF NOT EXISTS rendezvous (
		id SERIAL PRIMARY KEY,
		client_id INTEGER NOT NULL REFERENCES res_users(id),
		agent_id INTEGER REFERENCES res_users(id),
		date_rdv TIMESTAMP NOT NULL,
		duree INTEGER NOT NULL DEFAULT 30,
		statut VARCHAR(16) NOT NULL DEFAULT 'en_attente',
		objet TEXT,
		notes TEXT,
		create_date TIMESTAMP NOT NULL DEFAULT NOW(),
		write_date TIMESTAMP NOT NULL DEFAULT NOW(),
		CONSTRAINT rendezvous_statut_check
			CHECK (statut IN ('en_attente', 'valide', 'annule'))
	)`,

	// Un agent ne peut avoir qu'un seul rendez-vous validé par jour
	// calendaire. L'index partiel ferme la course check-then-act : deux
	// validations concurrentes le même jour font échouer la seconde en 23505.
	`CREATE UNIQUE INDEX IF NOT EXISTS rendezvous_agent_jour_valide_uniq
		ON rendezvous (agent_id, date(date_rdv))
		WHERE statut = 'valide'`,

	`CREATE INDEX IF NOT EXISTS rendezvous_client_idx
		ON rendezvous (client_id, date_rdv)`,

	`CREATE TABLE IF NOT EXISTS documents (
		id SERIAL PRIMARY KEY,
		prestation_id INTEGER,
		type VARCHAR(64) NOT NULL,
		original_name VARCHAR(255) NOT NULL,
		file_path TEXT NOT NULL,
		file_size BIGINT,
		mime_type VARCHAR(128),
		prestation_name VARCHAR(255),
		client_name VARCHAR(255),
		upload_date TIMESTAMP NOT NULL DEFAULT NOW()
	)`,

	`CREATE INDEX IF NOT EXISTS documents_prestation_idx
		ON documents (prestation_id)`,
}

// EnsureSchema applique le DDL de la plateforme
func (sm *SchemaManager) EnsureSchema(ctx context.Context) error {
	fmt.Printf("[SCHEMA] Application du schéma plateforme (%d instructions)\n", len(schemaStatements))

	for i, stmt := range schemaStatements {
		if _, err := sm.pgClient.Pool().Exec(ctx, stmt); err != nil {
			return fmt.Errorf("schema statement %d failed: %w", i, err)
		}
	}

	fmt.Printf("[SCHEMA] ✅ Schéma plateforme à jour\n")
	return nil
}
