package main

import (
	"flag"
	"log/slog"
	"net/http"
	"os"
	"time"

	"keeply/backend/config"
	"keeply/backend/database"
	"keeply/backend/handlers"
	"keeply/backend/logging"
	"keeply/backend/middleware"
	"keeply/backend/security"
	"keeply/backend/services"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	migrateOnly := flag.Bool("migrate-only", false, "Run migrations and exit")
	flag.Parse()

	logging.Setup()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	encryptionKey := cfg.Security.EncryptionKey
	if encryptionKey == "" {
		slog.Warn("No encryption key configured, using development default. NOT secure for production!")
		encryptionKey = "default-key-for-development-only"
	}
	security.InitializeEncryption(encryptionKey)

	if err := database.InitDB(cfg.Database.Path, cfg.Database.URL); err != nil {
		slog.Error("Failed to initialize database", "error", err)
		os.Exit(1)
	}

	if *migrateOnly {
		slog.Info("Migrations completed, exiting")
		return
	}

	if err := middleware.InitializeFirebase(cfg.Firebase.ProjectID); err != nil {
		slog.Error("Failed to initialize Firebase", "error", err)
		os.Exit(1)
	}

	handlers.ImageHost = cfg.ImageHost

	if cfg.Scheduler.Enabled {
		services.StartScheduler()
	}

	r := mux.NewRouter()
	r.Use(middleware.EnableCORS(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics)

	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	// Routes live both at the root and under /api; older client builds use
	// the unprefixed paths
	registerRoutes(r)
	registerRoutes(r.PathPrefix("/api").Subrouter())

	port := cfg.Server.Port
	if envPort := os.Getenv("PORT"); envPort != "" {
		port = envPort
	}

	srv := &http.Server{
		Handler:     r,
		Addr:        ":" + port,
		ReadTimeout: 15 * time.Second,
		// No write timeout: event streams stay open indefinitely
		IdleTimeout: 60 * time.Second,
	}

	slog.Info("Starting server", "port", port)
	if err := srv.ListenAndServe(); err != nil {
		slog.Error("Server stopped", "error", err)
		os.Exit(1)
	}
}

// registerRoutes sets up all API routes.
func registerRoutes(r *mux.Router) {
	// Public routes (no auth required)
	r.HandleFunc("/health", handlers.HealthCheck).Methods("GET", "OPTIONS")

	protected := r.PathPrefix("").Subrouter()
	protected.Use(middleware.AuthMiddleware)

	// Tasks
	protected.HandleFunc("/tasks", handlers.GetTasks).Methods("GET")
	protected.HandleFunc("/tasks", handlers.AddTask).Methods("POST")
	protected.HandleFunc("/tasks/streak", handlers.GetTaskStreak).Methods("GET")
	protected.HandleFunc("/tasks/{id}", handlers.UpdateTask).Methods("PUT")
	protected.HandleFunc("/tasks/{id}/toggle", handlers.ToggleTask).Methods("POST")
	protected.HandleFunc("/tasks/{id}", handlers.DeleteTask).Methods("DELETE")

	// Folders and notes
	protected.HandleFunc("/folders", handlers.GetFolders).Methods("GET")
	protected.HandleFunc("/folders", handlers.AddFolder).Methods("POST")
	protected.HandleFunc("/folders/{id}", handlers.UpdateFolder).Methods("PUT")
	protected.HandleFunc("/folders/{id}", handlers.DeleteFolder).Methods("DELETE")
	protected.HandleFunc("/folders/{id}/notes", handlers.AddNote).Methods("POST")
	protected.HandleFunc("/folders/{id}/notes/{noteId}", handlers.UpdateNote).Methods("PUT")
	protected.HandleFunc("/folders/{id}/notes/{noteId}", handlers.DeleteNote).Methods("DELETE")

	// Book library
	protected.HandleFunc("/books", handlers.GetBooks).Methods("GET")
	protected.HandleFunc("/books", handlers.AddBook).Methods("POST")
	protected.HandleFunc("/books/search", handlers.SearchBooks).Methods("GET")
	protected.HandleFunc("/books/{id}", handlers.UpdateBook).Methods("PUT")
	protected.HandleFunc("/books/{id}/favorite", handlers.ToggleBookFavorite).Methods("POST")
	protected.HandleFunc("/books/{id}", handlers.DeleteBook).Methods("DELETE")

	// Schedule
	protected.HandleFunc("/schedules", handlers.GetSchedules).Methods("GET")
	protected.HandleFunc("/schedules", handlers.AddSchedule).Methods("POST")
	protected.HandleFunc("/schedules/{id}", handlers.UpdateSchedule).Methods("PUT")
	protected.HandleFunc("/schedules/{id}", handlers.DeleteSchedule).Methods("DELETE")

	// Finance ledger
	protected.HandleFunc("/expenses", handlers.GetExpenses).Methods("GET")
	protected.HandleFunc("/expenses", handlers.AddExpense).Methods("POST")
	protected.HandleFunc("/expenses/{id}", handlers.UpdateExpense).Methods("PUT")
	protected.HandleFunc("/expenses/{id}", handlers.DeleteExpense).Methods("DELETE")

	protected.HandleFunc("/categories", handlers.GetCategories).Methods("GET")
	protected.HandleFunc("/categories", handlers.AddCategory).Methods("POST")
	protected.HandleFunc("/categories/{id}", handlers.UpdateCategory).Methods("PUT")
	protected.HandleFunc("/categories/{id}", handlers.DeleteCategory).Methods("DELETE")

	protected.HandleFunc("/debts", handlers.GetDebts).Methods("GET")
	protected.HandleFunc("/debts", handlers.AddDebt).Methods("POST")
	protected.HandleFunc("/debts/{id}", handlers.UpdateDebt).Methods("PUT")
	protected.HandleFunc("/debts/{id}/settle", handlers.SettleDebt).Methods("POST")
	protected.HandleFunc("/debts/{id}", handlers.DeleteDebt).Methods("DELETE")

	protected.HandleFunc("/budget", handlers.GetBudget).Methods("GET")
	protected.HandleFunc("/budget", handlers.UpdateBudget).Methods("PUT")

	protected.HandleFunc("/ledger/summary", handlers.GetLedgerSummary).Methods("GET")
	protected.HandleFunc("/ledger/summary/history", handlers.GetLedgerSummaryHistory).Methods("GET")
	protected.HandleFunc("/ledger/export", handlers.ExportLedger).Methods("POST")

	// Live collection streams (SSE)
	protected.HandleFunc("/stream/{collection}", handlers.StreamCollection).Methods("GET")

	// Image uploads and per-user image host key
	protected.HandleFunc("/upload", handlers.UploadImage).Methods("POST")
	protected.HandleFunc("/settings/imagehost", handlers.GetImageHostKeyStatus).Methods("GET")
	protected.HandleFunc("/settings/imagehost", handlers.SetImageHostKey).Methods("PUT")
	protected.HandleFunc("/settings/imagehost", handlers.DeleteImageHostKey).Methods("DELETE")

	// Users
	protected.HandleFunc("/users/sync", handlers.SyncUser).Methods("POST")
	protected.HandleFunc("/users/me", handlers.GetCurrentUser).Methods("GET")
}
