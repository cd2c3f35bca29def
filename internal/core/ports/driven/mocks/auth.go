package mocks

import (
	"errors"
	"fmt"

	"github.com/santhosh-patel/snapkeep-core/internal/core/domain"
	"github.com/santhosh-patel/snapkeep-core/internal/core/ports/driven"
)

var _ driven.TokenProvider = (*MockTokenProvider)(nil)

// MockTokenProvider issues reversible fake tokens for tests.
type MockTokenProvider struct {
	tokens map[string]*domain.TokenClaims
}

func NewMockTokenProvider() *MockTokenProvider {
	return &MockTokenProvider{tokens: make(map[string]*domain.TokenClaims)}
}

func (m *MockTokenProvider) Generate(claims *domain.TokenClaims) (string, error) {
	token := fmt.Sprintf("mock-token-%s-%d", claims.SessionID, claims.IssuedAt)
	m.tokens[token] = claims
	return token, nil
}

func (m *MockTokenProvider) Verify(token string) (*domain.TokenClaims, error) {
	claims, ok := m.tokens[token]
	if !ok {
		return nil, domain.ErrTokenInvalid
	}
	return claims, nil
}

var _ driven.PasswordHasher = (*MockPasswordHasher)(nil)

// MockPasswordHasher prefixes instead of hashing so tests stay readable.
type MockPasswordHasher struct{}

func NewMockPasswordHasher() *MockPasswordHasher {
	return &MockPasswordHasher{}
}

func (m *MockPasswordHasher) Hash(password string) (string, error) {
	return "hashed:" + password, nil
}

func (m *MockPasswordHasher) Compare(hash, password string) error {
	if hash != "hashed:"+password {
		return errors.New("password mismatch")
	}
	return nil
}
