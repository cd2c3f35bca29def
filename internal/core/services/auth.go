package services

import (
	"context"
	"strings"
	"time"

	"github.com/santhosh-patel/snapkeep-core/internal/core/domain"
	"github.com/santhosh-patel/snapkeep-core/internal/core/ports/driven"
	"github.com/santhosh-patel/snapkeep-core/internal/core/ports/driving"
)

// Ensure authService implements AuthService
var _ driving.AuthService = (*authService)(nil)

// authService implements the AuthService interface
type authService struct {
	userStore    driven.UserStore
	sessionStore driven.SessionStore
	tokens       driven.TokenProvider
	passwords    driven.PasswordHasher
	tokenTTL     time.Duration
}

// NewAuthService creates a new AuthService.
func NewAuthService(
	userStore driven.UserStore,
	sessionStore driven.SessionStore,
	tokens driven.TokenProvider,
	passwords driven.PasswordHasher,
) driving.AuthService {
	return &authService{
		userStore:    userStore,
		sessionStore: sessionStore,
		tokens:       tokens,
		passwords:    passwords,
		tokenTTL:     24 * time.Hour,
	}
}

// Authenticate validates credentials and creates a session
func (s *authService) Authenticate(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error) {
	if req.Email == "" || req.Password == "" {
		return nil, domain.ErrInvalidInput
	}

	user, err := s.userStore.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	if !user.Active {
		return nil, domain.ErrUnauthorized
	}

	if err := s.passwords.Compare(user.PasswordHash, req.Password); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	now := time.Now()
	sessionID := domain.NewID()
	claims := &domain.TokenClaims{
		UserID:    user.ID,
		Email:     user.Email,
		SessionID: sessionID,
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(s.tokenTTL).Unix(),
	}

	token, err := s.tokens.Generate(claims)
	if err != nil {
		return nil, err
	}

	expiresAt := now.Add(s.tokenTTL)
	session := &domain.Session{
		ID:        sessionID,
		UserID:    user.ID,
		Token:     token,
		ExpiresAt: expiresAt,
		CreatedAt: now,
	}

	if err := s.sessionStore.Save(ctx, session); err != nil {
		return nil, err
	}

	return &domain.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      user.ToSummary(),
	}, nil
}

// Logout invalidates the session behind a token
func (s *authService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return domain.ErrTokenInvalid
	}

	session, err := s.sessionStore.GetByToken(ctx, token)
	if err != nil {
		return domain.ErrSessionNotFound
	}
	return s.sessionStore.Delete(ctx, session.ID)
}

// Validate checks a token and returns the auth context
func (s *authService) Validate(ctx context.Context, token string) (*domain.AuthContext, error) {
	if token == "" {
		return nil, domain.ErrTokenInvalid
	}

	claims, err := s.tokens.Verify(token)
	if err != nil {
		return nil, domain.ErrTokenInvalid
	}

	if time.Now().Unix() > claims.ExpiresAt {
		return nil, domain.ErrTokenExpired
	}

	session, err := s.sessionStore.GetByToken(ctx, token)
	if err != nil {
		return nil, domain.ErrSessionNotFound
	}
	if session.IsExpired() {
		_ = s.sessionStore.Delete(ctx, session.ID)
		return nil, domain.ErrTokenExpired
	}

	return &domain.AuthContext{
		UserID:    claims.UserID,
		Email:     claims.Email,
		SessionID: session.ID,
	}, nil
}

// Setup creates the first user on a fresh instance. Refused once any
// user exists.
func (s *authService) Setup(ctx context.Context, req domain.SetupRequest) (*domain.UserSummary, error) {
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Email == "" || req.Password == "" {
		return nil, domain.ErrInvalidInput
	}

	count, err := s.userStore.Count(ctx)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, domain.ErrAlreadyExists
	}

	hash, err := s.passwords.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &domain.User{
		ID:           domain.NewID(),
		Email:        req.Email,
		PasswordHash: hash,
		Name:         req.Name,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.userStore.Save(ctx, user); err != nil {
		return nil, err
	}
	return user.ToSummary(), nil
}
