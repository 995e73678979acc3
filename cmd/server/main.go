package main

import (
	"log"
	"net/http"
	"os"

	"vigiplan-backend/internal/database"
	"vigiplan-backend/internal/handlers"
	"vigiplan-backend/internal/middleware"
	"vigiplan-backend/internal/services"
	"vigiplan-backend/internal/websocket"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
)

func main() {
	log.Println("═══════════════════════════════════════════════════════════════════")
	log.Println("🚀 VIGIPLAN BACKEND SERVER STARTING")
	log.Println("═══════════════════════════════════════════════════════════════════")

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, using environment variables from system")
	}

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}
	if os.Getenv("APP_JWT_SECRET") == "" {
		log.Fatal("APP_JWT_SECRET environment variable is required")
	}

	// Connect to database
	db, err := database.Connect(dbURL)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	// Run migrations
	log.Println("🔄 Running database migrations...")
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Database migrations failed: %v", err)
	}
	log.Println("✅ Database migrations completed")

	// Seed database
	if err := database.SeedUsers(db); err != nil {
		log.Fatalf("User seeding failed: %v", err)
	}
	if err := database.SeedDemoData(db); err != nil {
		log.Fatalf("Demo data seeding failed: %v", err)
	}

	// Initialize the Firebase Auth verifier so console users signed in through
	// Firebase Authentication can call the API directly. Optional: without
	// credentials only local JWTs are accepted.
	var firebaseAuth *services.FirebaseAuthService
	if credsBase64 := os.Getenv("FIREBASE_CREDENTIALS_BASE64"); credsBase64 != "" {
		firebaseAuth, err = services.NewFirebaseAuthServiceFromBase64(credsBase64)
		if err != nil {
			log.Printf("⚠️  Failed to initialize Firebase Auth from base64: %v (Firebase sign-in disabled)", err)
			firebaseAuth = nil
		} else {
			log.Println("✅ Firebase Auth verifier initialized from base64 credentials")
		}
	} else if credsFile := os.Getenv("FIREBASE_CREDENTIALS_FILE"); credsFile != "" {
		firebaseAuth, err = services.NewFirebaseAuthService(credsFile)
		if err != nil {
			log.Printf("⚠️  Failed to initialize Firebase Auth from file: %v (Firebase sign-in disabled)", err)
			firebaseAuth = nil
		} else {
			log.Println("✅ Firebase Auth verifier initialized from file")
		}
	}

	// Initialize WebSocket hub for live planning updates
	wsHub := websocket.NewHub()
	go wsHub.Run()
	log.Println("✅ WebSocket hub started")

	// Create router
	r := chi.NewRouter()

	// Middleware
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := db.Ping(); err != nil {
			http.Error(w, "database unreachable", http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("OK"))
	})

	// Authentication routes (no auth required)
	r.Post("/api/auth/login", handlers.Login(db))

	// WebSocket endpoint (authentication handled in handler via query param)
	r.Get("/ws", websocket.HandleWebSocket(wsHub))

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Auth(firebaseAuth))

		// Console accounts (admin only)
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole("admin"))
			r.Get("/users", handlers.GetUsers(db))
			r.Post("/users", handlers.CreateUser(db))
		})

		// Guard roster
		r.Get("/agents", handlers.GetAgents(db))
		r.Get("/agents/{id}", handlers.GetAgent(db))
		r.Post("/agents", handlers.CreateAgent(db))
		r.Patch("/agents/{id}", handlers.UpdateAgent(db))
		r.Delete("/agents/{id}", handlers.DeleteAgent(db))

		// Client sites
		r.Get("/sites", handlers.GetSites(db))
		r.Get("/sites/{id}", handlers.GetSite(db))
		r.Post("/sites", handlers.CreateSite(db))
		r.Patch("/sites/{id}", handlers.UpdateSite(db))
		r.Delete("/sites/{id}", handlers.DeleteSite(db))

		// Missions
		r.Get("/missions", handlers.GetMissions(db))
		r.Get("/missions/{id}", handlers.GetMission(db))
		r.Get("/missions/{id}/durations", handlers.GetMissionDurations(db))
		r.Post("/missions", handlers.CreateMission(db, wsHub))
		r.Put("/missions/{id}", handlers.UpdateMission(db, wsHub))
		r.Delete("/missions/{id}", handlers.DeleteMission(db, wsHub))

		// Planning helpers
		r.Post("/planning/check-conflicts", handlers.CheckConflicts(db))
		r.Get("/planning/events", handlers.GetPlanningEvents(db))
		r.Post("/planning/events", handlers.CreatePlanningEvent(db, wsHub))
		r.Delete("/planning/events/{id}", handlers.DeletePlanningEvent(db, wsHub))

		// Payroll
		r.Get("/payroll", handlers.GetPayrollReport(db))
		r.Get("/payroll/agents/{id}", handlers.GetAgentPayroll(db))

		// Dashboard
		r.Get("/analytics/dashboard", handlers.GetDashboardStats(db))
	})

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Println("═══════════════════════════════════════════════════════════════════")
	log.Printf("✅ Server listening on port %s", port)
	log.Println("═══════════════════════════════════════════════════════════════════")

	if err := http.ListenAndServe(":"+port, r); err != nil {
		log.Fatal(err)
	}
}
