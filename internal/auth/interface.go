package auth

import (
	"context"

	"omnislide/internal/domain/models"
)

// JWTVerifier defines the interface for JWT token verification.
// This abstraction allows for different JWT verification implementations
// while keeping the middleware agnostic to the verification details.
type JWTVerifier interface {
	// VerifyToken validates a JWT token string and returns the parsed claims.
	// Returns an error if the token is invalid, expired, or has an invalid signature.
	VerifyToken(tokenString string) (*models.SupabaseClaims, error)

	// Close releases any resources held by the verifier (e.g., HTTP connections for JWKS).
	// Should be called when the verifier is no longer needed.
	Close() error
}

// IdentityClient is the narrow surface this service needs from the
// identity provider. Interactive flows (sign-in forms, OAuth popups,
// session refresh) belong to the provider and are deliberately not
// reproduced here.
type IdentityClient interface {
	// CreateIdentity registers a new email/password identity and
	// returns its id. Idempotent per email at the provider's discretion.
	CreateIdentity(ctx context.Context, email, password, displayName string) (string, error)

	// SendPasswordReset triggers the provider's password-reset email.
	SendPasswordReset(ctx context.Context, email string) error

	// DeleteIdentity removes the identity matching email.
	// Returns nil if no such identity exists (idempotent).
	DeleteIdentity(ctx context.Context, email string) error
}
