package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"omnislide/internal/auth"
	"omnislide/internal/capabilities"
	"omnislide/internal/config"
	"omnislide/internal/domain/services"
	"omnislide/internal/handler"
	"omnislide/internal/middleware"
	"omnislide/internal/repository/postgres"
	"omnislide/internal/service"
	"omnislide/internal/service/audio"
	"omnislide/internal/service/generation"
	"omnislide/internal/service/generation/gemini"
	"omnislide/internal/store"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Setup structured logging
	logLevel := slog.LevelInfo
	if cfg.Environment == "dev" {
		logLevel = slog.LevelDebug
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"table_prefix", cfg.TablePrefix,
	)

	// Create JWT verifier for Supabase authentication
	jwtVerifier, err := auth.NewJWTVerifier(cfg.SupabaseJWKSURL, logger)
	if err != nil {
		log.Fatalf("Failed to create JWT verifier: %v", err)
	}
	defer jwtVerifier.Close()

	// Create pgx connection pool
	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.SupabaseDBURL)
	if err != nil {
		log.Fatalf("Failed to create connection pool: %v", err)
	}
	defer pool.Close()

	logger.Info("database connected",
		"max_conns", 25,
		"min_conns", 5,
	)

	// Create repositories
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: postgres.NewTableNames(cfg.TablePrefix),
		Logger: logger,
	}
	projectRepo := postgres.NewProjectRepository(repoConfig)
	profileRepo := postgres.NewProfileRepository(repoConfig)

	// Initialize capability registry
	capabilityRegistry, err := capabilities.NewRegistry()
	if err != nil {
		log.Fatalf("Failed to initialize capability registry: %v", err)
	}
	logger.Info("capability registry initialized")

	// The Gemini provider only exists when a key is configured. Without
	// one, generation serves the mock deck and audio reports unavailable.
	var deckProvider services.DeckProvider
	var speechProvider services.SpeechProvider
	if cfg.GeminiAPIKey != "" {
		provider, err := gemini.NewProvider(ctx, cfg.GeminiAPIKey, logger)
		if err != nil {
			log.Fatalf("Failed to create Gemini provider: %v", err)
		}
		deckProvider = provider
		speechProvider = provider
		logger.Info("gemini provider initialized")
	} else {
		logger.Warn("GEMINI_API_KEY not set: serving mock decks, audio disabled")
	}

	// Create services
	generationService, err := generation.NewService(deckProvider, capabilityRegistry, logger)
	if err != nil {
		log.Fatalf("Failed to create generation service: %v", err)
	}
	audioService, err := audio.NewService(speechProvider, capabilityRegistry, "", logger)
	if err != nil {
		log.Fatalf("Failed to create audio service: %v", err)
	}
	profileService := service.NewProfileService(profileRepo, logger)

	// In-memory project store, hydrated lazily from postgres per user
	projectStore := store.New()

	// Create handlers
	projectHandler := handler.NewProjectHandler(projectStore, projectRepo, generationService, profileService, logger)
	audioHandler := handler.NewAudioHandler(projectStore, projectRepo, audioService, capabilityRegistry, logger)
	profileHandler := handler.NewProfileHandler(profileService, logger)
	modelsHandler := handler.NewModelsHandler(cfg, logger, capabilityRegistry)

	logger.Info("services initialized")

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", handler.HealthCheck)

	// Project routes
	mux.HandleFunc("GET /api/projects", projectHandler.ListProjects)
	mux.HandleFunc("POST /api/projects", projectHandler.CreateProject)
	mux.HandleFunc("GET /api/projects/{id}", projectHandler.GetProject)
	mux.HandleFunc("PATCH /api/projects/{id}", projectHandler.UpdateProject)
	mux.HandleFunc("DELETE /api/projects/{id}", projectHandler.DeleteProject)

	// Slide and block routes
	mux.HandleFunc("PATCH /api/projects/{id}/slides/{slideId}", projectHandler.UpdateSlide)
	mux.HandleFunc("PATCH /api/projects/{id}/slides/{slideId}/blocks/{blockId}", projectHandler.UpdateBlock)

	// Audio synthesis
	mux.HandleFunc("POST /api/projects/{id}/audio", audioHandler.GeneratePodcast)

	// Model capabilities routes
	mux.HandleFunc("GET /api/models/capabilities", modelsHandler.GetCapabilities)

	// Profile routes
	mux.HandleFunc("GET /api/users/me/profile", profileHandler.GetProfile)
	mux.HandleFunc("PATCH /api/users/me/profile", profileHandler.UpdateProfile)

	// Build middleware chain
	var root http.Handler = mux

	// Apply middleware in reverse order (they wrap each other)
	// Order: CORS → Recovery → Auth → Routes
	root = middleware.AuthMiddleware(jwtVerifier)(root)
	root = middleware.Recovery(logger)(root)

	// CORS - Must be before auth to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	})
	root = corsHandler.Handler(root)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      root,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second, // Generation and TTS calls are slow
		IdleTimeout:  60 * time.Second,
	}

	// Start server
	logger.Info("server listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}
