package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/davidcogill1011-code/ai-tutor-turnkey/config"
	"github.com/davidcogill1011-code/ai-tutor-turnkey/db"
	"github.com/davidcogill1011-code/ai-tutor-turnkey/handlers"
	"github.com/davidcogill1011-code/ai-tutor-turnkey/services"
	"github.com/davidcogill1011-code/ai-tutor-turnkey/services/llm"
)

func main() {
	cfg := config.Load()

	var progressRepo db.ProgressRepository
	var profileRepo db.ProfileRepository

	if cfg.DatabaseURL != "" {
		pgProgress, err := db.NewPostgresProgressRepository(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to initialize progress database: %v", err)
		}
		defer pgProgress.Close()

		pgProfile, err := db.NewPostgresProfileRepository(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to initialize profile database: %v", err)
		}
		defer pgProfile.Close()

		progressRepo = pgProgress
		profileRepo = pgProfile
	} else {
		log.Printf("[INFO] DB_URL not set, using in-memory progress store")
		progressRepo = db.NewMemoryProgressRepository()
		profileRepo = db.NewMemoryProfileRepository()
	}

	client := buildCompletionClient(cfg)

	masteryService := services.NewMasteryService(progressRepo)
	profileService := services.NewProfileService(profileRepo)
	tutorService := services.NewTutorService(client)
	sessionService := services.NewSessionService(tutorService, masteryService)

	tutorHandler := handlers.NewTutorHandler(tutorService)
	progressHandler := handlers.NewProgressHandler(masteryService)
	profileHandler := handlers.NewProfileHandler(profileService)
	sessionHandler := handlers.NewSessionHandler(sessionService)

	router := mux.NewRouter()

	router.Use(corsMiddleware)

	router.PathPrefix("/").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods("OPTIONS")

	tutorHandler.RegisterRoutes(router)
	progressHandler.RegisterRoutes(router)
	profileHandler.RegisterRoutes(router)
	sessionHandler.RegisterRoutes(router)

	router.HandleFunc("/health", healthCheckHandler).Methods("GET")

	addr := ":" + cfg.Port
	fmt.Printf("Server starting on port %s\n", cfg.Port)

	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}

// buildCompletionClient picks the configured completion backend. With
// no credential at all the client stays nil and the tutor serves canned
// demo replies instead of calling out.
func buildCompletionClient(cfg *config.Config) llm.Client {
	if cfg.OpenAIAPIKey != "" {
		client, err := llm.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.TutorModel)
		if err != nil {
			log.Fatalf("Failed to initialize OpenAI client: %v", err)
		}
		return client
	}

	if cfg.AnthropicAPIKey != "" {
		client, err := llm.NewAnthropicClient(cfg.AnthropicAPIKey)
		if err != nil {
			log.Fatalf("Failed to initialize Anthropic client: %v", err)
		}
		return client
	}

	return nil
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS, PATCH")
		w.Header().Set("Access-Control-Allow-Headers", "*")
		w.Header().Set("Access-Control-Expose-Headers", "*")
		w.Header().Set("Access-Control-Allow-Credentials", "true")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "healthy"}`))
}
