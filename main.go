package main

import (
	"flag"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"donorledger/database"
	"donorledger/handlers"
	"donorledger/middleware"
	"donorledger/migrations"

	"github.com/gorilla/mux"
)

func main() {
	noExit := flag.Bool("no-exit", false, "Don't exit after database reset")
	resetDB := flag.Bool("reset-db", false, "Force reset the database")
	flag.Parse()

	isResetDB := os.Getenv("RESET_DB") == "true" || *resetDB

	isDevelopment := os.Getenv("APP_ENV") != "production" &&
		os.Getenv("ENVIRONMENT") != "production" &&
		os.Getenv("ENV") != "production"

	if isResetDB {
		log.Println("Running in database reset mode")
	}
	if isDevelopment {
		log.Println("Running in development environment")
	}

	// Initialize database
	err := database.InitDB()
	if err != nil {
		log.Fatal(err)
	}

	log.Println("Running migrations...")
	err = migrations.RunMigrations(database.DB.DB)
	if err != nil {
		log.Printf("Warning: Failed to run migrations: %v", err)
	}

	// If running in reset mode, exit after database setup is complete
	// unless --no-exit flag is provided
	if isResetDB && !*noExit {
		log.Println("Database reset completed successfully. Exiting.")
		return
	}

	log.Println("Initializing Firebase Admin SDK...")
	err = middleware.InitializeFirebase()
	if err != nil {
		log.Printf("Warning: Failed to initialize Firebase: %v", err)
		log.Println("Auth token verification will be disabled!")
	}

	// Create router
	r := mux.NewRouter()
	r.Use(middleware.EnableCORS)

	// Register routes with both direct paths and /api prefix to maintain
	// compatibility with the frontend fetch paths
	registerRoutes(r)
	apiRouter := r.PathPrefix("/api").Subrouter()
	registerRoutes(apiRouter)

	// Serve static files from the "dist" directory for the frontend
	fs := http.FileServer(http.Dir("./dist"))
	r.PathPrefix("/assets/").Handler(http.StripPrefix("", fs))
	r.PathPrefix("/").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/assets/") {
			log.Printf("Serving index.html for path: %s", r.URL.Path)
		}
		http.ServeFile(w, r, "./dist/index.html")
	}).Methods("GET")

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Handler:      r,
		Addr:         ":" + port,
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
	}

	log.Printf("Starting server on port %s...", port)
	log.Fatal(srv.ListenAndServe())
}

// registerRoutes sets up all API routes
func registerRoutes(r *mux.Router) {
	// Public routes (no auth required)
	r.HandleFunc("/health", handlers.HealthCheck).Methods("GET", "OPTIONS")

	// Create a subrouter for authenticated routes
	protectedRouter := r.PathPrefix("").Subrouter()
	protectedRouter.Use(middleware.AuthMiddleware)

	// Donation routes
	protectedRouter.HandleFunc("/donations", handlers.GetDonations).Methods("GET")
	protectedRouter.HandleFunc("/donations", handlers.AddDonation).Methods("POST")
	protectedRouter.HandleFunc("/donations/{id}", handlers.GetDonation).Methods("GET")
	protectedRouter.HandleFunc("/donations/{id}", handlers.UpdateDonation).Methods("PUT")
	protectedRouter.HandleFunc("/donations/{id}", handlers.DeleteDonation).Methods("DELETE")

	// Friend routes
	protectedRouter.HandleFunc("/friends", handlers.GetFriends).Methods("GET")
	protectedRouter.HandleFunc("/friends", handlers.AddFriend).Methods("POST")
	protectedRouter.HandleFunc("/friends/{id}", handlers.GetFriend).Methods("GET")
	protectedRouter.HandleFunc("/friends/{id}", handlers.UpdateFriend).Methods("PUT")
	protectedRouter.HandleFunc("/friends/{id}", handlers.DeleteFriend).Methods("DELETE")
	protectedRouter.HandleFunc("/friends/{id}/donations", handlers.GetFriendDonations).Methods("GET")

	// Year-end document routes
	protectedRouter.HandleFunc("/reports/receipts", handlers.GetReceipts).Methods("GET")
	protectedRouter.HandleFunc("/reports/labels", handlers.GetLabels).Methods("GET")
}
