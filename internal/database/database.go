package database

import (
	"fmt"
	"log"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

func Connect(dbURL string) (*sqlx.DB, error) {
	log.Println("🔌 Connecting to Postgres...")

	db, err := sqlx.Connect("postgres", dbURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Println("✅ Database connection established")
	return db, nil
}

func Migrate(db *sqlx.DB) error {
	migrations := []string{
		// Console accounts (admin back-office + agent mobile app)
		`CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			email TEXT NOT NULL UNIQUE,
			password TEXT NOT NULL,
			name TEXT NOT NULL,
			role TEXT NOT NULL CHECK(role IN ('admin', 'manager', 'agent')),
			created_at BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())::BIGINT,
			updated_at BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())::BIGINT
		)`,

		// Guard roster
		`CREATE TABLE IF NOT EXISTS agents (
			id TEXT PRIMARY KEY,
			first_name TEXT NOT NULL,
			last_name TEXT NOT NULL,
			email TEXT NOT NULL UNIQUE,
			phone TEXT,
			status TEXT NOT NULL DEFAULT 'active' CHECK(status IN ('active', 'inactive')),
			specialties TEXT[] NOT NULL DEFAULT '{}',
			matricule TEXT,
			professional_card_number TEXT,
			contract_type TEXT CHECK(contract_type IN ('FULL_TIME', 'PART_TIME')),
			created_at BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())::BIGINT,
			updated_at BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())::BIGINT
		)`,

		// Client sites
		`CREATE TABLE IF NOT EXISTS sites (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			address TEXT,
			client_contact TEXT,
			email TEXT,
			required_specialties TEXT[] NOT NULL DEFAULT '{}',
			notes TEXT,
			created_at BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())::BIGINT,
			updated_at BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())::BIGINT
		)`,

		// Missions: assignments are a JSONB document, mirroring the shape the
		// admin console edits in one piece. Deleting a mission removes it whole.
		`CREATE TABLE IF NOT EXISTS missions (
			id TEXT PRIMARY KEY,
			site_id TEXT NOT NULL REFERENCES sites(id),
			site_name TEXT NOT NULL,
			agent_assignments JSONB NOT NULL DEFAULT '[]',
			assigned_agent_ids TEXT[] NOT NULL DEFAULT '{}',
			status TEXT NOT NULL DEFAULT 'scheduled' CHECK(status IN ('scheduled', 'completed', 'cancelled')),
			notes TEXT,
			created_at BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())::BIGINT,
			updated_at BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())::BIGINT
		)`,

		`CREATE INDEX IF NOT EXISTS idx_missions_site_id ON missions(site_id)`,
		`CREATE INDEX IF NOT EXISTS idx_missions_assigned_agents ON missions USING GIN(assigned_agent_ids)`,

		// Calendar events with pre-resolved instants, fed into payroll next to
		// mission vacations
		`CREATE TABLE IF NOT EXISTS planning_events (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			agent_id TEXT NOT NULL REFERENCES agents(id) ON DELETE CASCADE,
			agent_name TEXT NOT NULL,
			mission_id TEXT REFERENCES missions(id) ON DELETE SET NULL,
			site_id TEXT,
			site_name TEXT,
			starts_at BIGINT NOT NULL,
			ends_at BIGINT NOT NULL,
			created_at BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())::BIGINT,
			CHECK (ends_at > starts_at)
		)`,

		`CREATE INDEX IF NOT EXISTS idx_planning_events_agent_id ON planning_events(agent_id)`,
	}

	for i, migration := range migrations {
		if _, err := db.Exec(migration); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}

	return nil
}
