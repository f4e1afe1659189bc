package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"omnislide/internal/auth"
	"omnislide/internal/config"
	"omnislide/internal/domain/models"
	"omnislide/internal/repository/postgres"
	"omnislide/internal/service"
	"omnislide/internal/service/generation"
)

func main() {
	// Parse command-line flags
	dropTables := flag.Bool("drop-tables", false, "Drop all tables before seeding (fresh start)")
	schemaOnly := flag.Bool("schema-only", false, "Only set up schema, don't seed data")
	flag.Parse()

	// Load .env file
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// SAFETY: Prevent destructive operations in production
	if cfg.Environment == "prod" && *dropTables {
		log.Fatalf("🚫 BLOCKED: Cannot run --drop-tables in production environment")
	}

	// Setup logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	if *schemaOnly {
		log.Printf("🏗️  Setting up schema only (environment: %s, prefix: %s)", cfg.Environment, cfg.TablePrefix)
	} else {
		log.Printf("🌱 Seeding database (environment: %s, prefix: %s)", cfg.Environment, cfg.TablePrefix)
	}

	// Create database connection pool
	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.SupabaseDBURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	// Create table names
	tables := postgres.NewTableNames(cfg.TablePrefix)

	// Drop tables if requested
	if *dropTables {
		log.Println("🗑️  Dropping all tables...")
		if err := dropAllTables(ctx, pool, tables); err != nil {
			log.Fatalf("Failed to drop tables: %v", err)
		}
		log.Println("✅ Tables dropped")
	}

	// Ensure tables exist
	log.Println("📋 Ensuring database schema is up to date...")
	if err := postgres.EnsureSchema(ctx, pool, tables); err != nil {
		log.Fatalf("Failed to run schema: %v", err)
	}
	log.Println("✅ Schema ready")

	if *schemaOnly {
		log.Println("✅ Schema setup complete (schema-only mode)")
		return
	}

	email := getEnvDefault("SEED_EMAIL", "demo@omnislide.dev")
	password := getEnvDefault("SEED_PASSWORD", "demo-password-123")
	displayName := getEnvDefault("SEED_DISPLAY_NAME", "Demo User")

	// Register the demo identity with Supabase when a service key is
	// available; otherwise fall back to a fixed local uid.
	uid := "seed-user-local"
	if cfg.SupabaseURL != "" && cfg.SupabaseKey != "" {
		identityClient := auth.NewIdentityClient(cfg.SupabaseURL, cfg.SupabaseKey)

		// Idempotent: remove any previous demo identity first
		if err := identityClient.DeleteIdentity(ctx, email); err != nil {
			log.Printf("Warning: could not delete existing identity: %v", err)
		}

		uid, err = identityClient.CreateIdentity(ctx, email, password, displayName)
		if err != nil {
			log.Fatalf("Failed to create demo identity: %v", err)
		}
		log.Printf("✅ Created demo identity %s (%s)", email, uid)
	} else {
		log.Println("⚠️  SUPABASE_URL/SUPABASE_KEY not set, seeding with local uid only")
	}

	// Create repositories and services
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	projectRepo := postgres.NewProjectRepository(repoConfig)
	profileRepo := postgres.NewProfileRepository(repoConfig)
	profileService := service.NewProfileService(profileRepo, logger)

	// Bootstrap the default free-plan profile
	profile, err := profileService.GetOrCreate(ctx, uid, email, displayName)
	if err != nil {
		log.Fatalf("Failed to create profile: %v", err)
	}
	log.Printf("✅ Profile ready (plan: %s)", profile.Subscription.Plan)

	// Seed one sample deck built from the deterministic mock slides
	topic := "L'avenir de l'énergie solaire"
	now := time.Now()
	project := models.Project{
		ID:        models.NewProjectID(),
		UserID:    uid,
		Title:     topic,
		Topic:     topic,
		Slides:    generation.MockSlides(topic),
		CreatedAt: now,
		UpdatedAt: now,
		Status:    models.StatusReady,
	}
	if err := projectRepo.Upsert(ctx, &project); err != nil {
		log.Fatalf("Failed to seed project: %v", err)
	}
	log.Printf("✅ Created sample project %s (%d slides)", project.ID, len(project.Slides))

	log.Println("🎉 Seeding complete!")
}

// dropAllTables drops all tables
func dropAllTables(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames) error {
	tableNames := []string{
		tables.Projects,
		tables.Profiles,
	}

	for _, table := range tableNames {
		dropSQL := "DROP TABLE IF EXISTS " + table + " CASCADE"
		if _, err := pool.Exec(ctx, dropSQL); err != nil {
			return err
		}
		log.Printf("  ✓ Dropped %s", table)
	}

	return nil
}

func getEnvDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
