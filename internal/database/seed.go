package database

import (
	"log"
	"os"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
)

// SeedUsers ensures the initial admin account exists
func SeedUsers(db *sqlx.DB) error {
	var count int
	if err := db.Get(&count, "SELECT COUNT(*) FROM users"); err != nil {
		return err
	}
	if count > 0 {
		log.Println("✓ Users already seeded, skipping...")
		return nil
	}

	adminEmail := os.Getenv("SEED_ADMIN_EMAIL")
	if adminEmail == "" {
		adminEmail = "admin@vigiplan.fr"
	}
	adminPassword := os.Getenv("SEED_ADMIN_PASSWORD")
	if adminPassword == "" {
		adminPassword = "changeme"
		log.Println("⚠️  SEED_ADMIN_PASSWORD not set, using default password (change it!)")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	_, err = db.Exec(`
		INSERT INTO users (id, email, password, name, role)
		VALUES ($1, $2, $3, $4, 'admin')
	`, uuid.New().String(), adminEmail, string(hashed), "Administrateur")
	if err != nil {
		return err
	}

	log.Printf("🌱 Seeded initial admin: %s", adminEmail)
	return nil
}

// SeedDemoData inserts a handful of agents and sites so a fresh install has
// something to schedule. Runs only when both tables are empty.
func SeedDemoData(db *sqlx.DB) error {
	var count int
	if err := db.Get(&count, "SELECT COUNT(*) FROM agents"); err != nil {
		return err
	}
	if count > 0 {
		log.Println("✓ Agents already seeded, skipping...")
		return nil
	}

	agents := []struct {
		firstName, lastName, email string
		specialties                []string
	}{
		{"Jean", "Dupont", "jean.dupont@vigiplan.fr", []string{"ADS"}},
		{"Marie", "Martin", "marie.martin@vigiplan.fr", []string{"ADS", "SSIAP1"}},
		{"Karim", "Benali", "karim.benali@vigiplan.fr", []string{"cynophile"}},
		{"Sophie", "Leroy", "sophie.leroy@vigiplan.fr", []string{"SSIAP2"}},
	}
	for _, a := range agents {
		_, err := db.Exec(`
			INSERT INTO agents (id, first_name, last_name, email, status, specialties)
			VALUES ($1, $2, $3, $4, 'active', $5)
		`, uuid.New().String(), a.firstName, a.lastName, a.email, pq.StringArray(a.specialties))
		if err != nil {
			return err
		}
	}

	sites := []struct {
		name, address string
		specialties   []string
	}{
		{"Marina Baie des Anges", "Avenue de la Batterie, Villeneuve-Loubet", []string{"ADS"}},
		{"Port Vauban", "Avenue de Verdun, Antibes", []string{"ADS", "SSIAP1"}},
		{"Polygone Riviera", "Avenue des Alpes, Cagnes-sur-Mer", []string{"SSIAP1"}},
	}
	for _, s := range sites {
		_, err := db.Exec(`
			INSERT INTO sites (id, name, address, required_specialties)
			VALUES ($1, $2, $3, $4)
		`, uuid.New().String(), s.name, s.address, pq.StringArray(s.specialties))
		if err != nil {
			return err
		}
	}

	log.Printf("🌱 Seeded %d agents and %d sites", len(agents), len(sites))
	return nil
}
