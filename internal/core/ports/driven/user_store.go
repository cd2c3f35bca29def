package driven

import (
	"context"

	"github.com/santhosh-patel/snapkeep-core/internal/core/domain"
)

// UserStore handles user persistence.
type UserStore interface {
	// Save creates or updates a user
	Save(ctx context.Context, user *domain.User) error

	// Get retrieves a user by ID
	Get(ctx context.Context, id string) (*domain.User, error)

	// GetByEmail retrieves a user by email
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// Count returns the number of users (setup gate)
	Count(ctx context.Context) (int, error)
}

// SessionStore handles session persistence with expiry.
type SessionStore interface {
	// Save stores a session
	Save(ctx context.Context, session *domain.Session) error

	// GetByToken retrieves a session by its token
	GetByToken(ctx context.Context, token string) (*domain.Session, error)

	// Delete removes a session
	Delete(ctx context.Context, id string) error

	// DeleteByUser removes all sessions for a user
	DeleteByUser(ctx context.Context, userID string) error
}

// TokenProvider mints and verifies auth tokens.
type TokenProvider interface {
	// Generate creates a signed token for the claims
	Generate(claims *domain.TokenClaims) (string, error)

	// Verify checks a token and returns its claims
	Verify(token string) (*domain.TokenClaims, error)
}

// PasswordHasher hashes and compares passwords.
type PasswordHasher interface {
	// Hash derives a storable hash from a plaintext password
	Hash(password string) (string, error)

	// Compare checks a plaintext password against a stored hash
	Compare(hash, password string) error
}
