package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"omnislide/internal/domain/models"
	"omnislide/internal/domain/repositories"
)

// PostgresProfileRepository implements the ProfileRepository interface.
// Subscription and usage are JSONB namespaces, matching the document
// shape the original backend stored per identity.
type PostgresProfileRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewProfileRepository creates a new PostgresProfileRepository
func NewProfileRepository(config *RepositoryConfig) repositories.ProfileRepository {
	return &PostgresProfileRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// GetByUID retrieves the profile for an identity.
// Returns (nil, nil) when no profile exists yet.
func (r *PostgresProfileRepository) GetByUID(ctx context.Context, uid string) (*models.UserProfile, error) {
	query := fmt.Sprintf(`
		SELECT uid, email, display_name, photo_url, subscription, usage, created_at, updated_at
		FROM %s
		WHERE uid = $1
	`, r.tables.Profiles)

	var profile models.UserProfile
	var subscription, usage []byte

	err := r.pool.QueryRow(ctx, query, uid).Scan(
		&profile.UID,
		&profile.Email,
		&profile.DisplayName,
		&profile.PhotoURL,
		&subscription,
		&usage,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if err != nil {
		if IsPgNoRowsError(err) {
			// No profile exists yet - absence is not an error
			return nil, nil
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}

	if err := json.Unmarshal(subscription, &profile.Subscription); err != nil {
		return nil, fmt.Errorf("decode subscription: %w", err)
	}
	if err := json.Unmarshal(usage, &profile.Usage); err != nil {
		return nil, fmt.Errorf("decode usage: %w", err)
	}

	return &profile, nil
}

// Upsert creates or fully replaces the profile row.
func (r *PostgresProfileRepository) Upsert(ctx context.Context, profile *models.UserProfile) error {
	subscription, err := json.Marshal(profile.Subscription)
	if err != nil {
		return fmt.Errorf("encode subscription: %w", err)
	}
	usage, err := json.Marshal(profile.Usage)
	if err != nil {
		return fmt.Errorf("encode usage: %w", err)
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (uid, email, display_name, photo_url, subscription, usage, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (uid) DO UPDATE SET
			email = EXCLUDED.email,
			display_name = EXCLUDED.display_name,
			photo_url = EXCLUDED.photo_url,
			subscription = EXCLUDED.subscription,
			usage = EXCLUDED.usage,
			updated_at = EXCLUDED.updated_at
	`, r.tables.Profiles)

	_, err = r.pool.Exec(ctx, query,
		profile.UID,
		profile.Email,
		profile.DisplayName,
		profile.PhotoURL,
		subscription,
		usage,
		profile.CreatedAt,
		profile.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert profile: %w", err)
	}

	return nil
}

// Exists reports whether a profile row exists for the identity.
func (r *PostgresProfileRepository) Exists(ctx context.Context, uid string) (bool, error) {
	query := fmt.Sprintf(`
		SELECT EXISTS(SELECT 1 FROM %s WHERE uid = $1)
	`, r.tables.Profiles)

	var exists bool
	if err := r.pool.QueryRow(ctx, query, uid).Scan(&exists); err != nil {
		return false, fmt.Errorf("check profile existence: %w", err)
	}

	return exists, nil
}
