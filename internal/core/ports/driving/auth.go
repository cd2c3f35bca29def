package driving

import (
	"context"

	"github.com/santhosh-patel/snapkeep-core/internal/core/domain"
)

// AuthService handles authentication for the HTTP surface.
type AuthService interface {
	// Authenticate validates credentials and creates a session
	Authenticate(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error)

	// Logout invalidates the session behind a token
	Logout(ctx context.Context, token string) error

	// Validate checks a token and returns the auth context
	Validate(ctx context.Context, token string) (*domain.AuthContext, error)

	// Setup creates the first user on a fresh instance
	Setup(ctx context.Context, req domain.SetupRequest) (*domain.UserSummary, error)
}
