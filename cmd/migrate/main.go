package main

import (
	"fmt"
	"log"
	"os"

	"vigiplan-backend/internal/database"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable not set")
	}

	db, err := sqlx.Connect("postgres", dbURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	log.Println("Connected to database successfully")

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	log.Println("Migration completed successfully!")

	if err := database.SeedUsers(db); err != nil {
		log.Fatalf("User seeding failed: %v", err)
	}
	if err := database.SeedDemoData(db); err != nil {
		log.Fatalf("Demo data seeding failed: %v", err)
	}

	// Query and display summary
	var result struct {
		Users    int `db:"users"`
		Agents   int `db:"agents"`
		Sites    int `db:"sites"`
		Missions int `db:"missions"`
		Events   int `db:"events"`
	}

	query := `
		SELECT
			(SELECT COUNT(*) FROM users) AS users,
			(SELECT COUNT(*) FROM agents) AS agents,
			(SELECT COUNT(*) FROM sites) AS sites,
			(SELECT COUNT(*) FROM missions) AS missions,
			(SELECT COUNT(*) FROM planning_events) AS events
	`
	if err := db.Get(&result, query); err != nil {
		log.Fatalf("Failed to query summary: %v", err)
	}

	fmt.Println("\n============================================================")
	fmt.Println("MIGRATION SUMMARY")
	fmt.Println("============================================================")
	fmt.Printf("Users:            %d\n", result.Users)
	fmt.Printf("Agents:           %d\n", result.Agents)
	fmt.Printf("Sites:            %d\n", result.Sites)
	fmt.Printf("Missions:         %d\n", result.Missions)
	fmt.Printf("Planning events:  %d\n", result.Events)
	fmt.Println("============================================================")
}
