package auth

import (
	"context"
	"crypto/subtle"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// AuthUseCase describes admin authentication.
type AuthUseCase interface {
	Login(ctx context.Context, username, password string) (AuthResult, error)
}

type AuthResult struct {
	Admin Admin
	Token string
}

type authService struct {
	creds  Credentials
	tokens TokenGenerator
}

// NewAuthService returns default implementation of AuthUseCase.
func NewAuthService(creds Credentials, tokens TokenGenerator) AuthUseCase {
	creds.Username = strings.TrimSpace(creds.Username)
	creds.Password = strings.TrimSpace(creds.Password)
	creds.PasswordHash = strings.TrimSpace(creds.PasswordHash)
	return &authService{creds: creds, tokens: tokens}
}

func (s *authService) Login(ctx context.Context, username, password string) (AuthResult, error) {
	if !s.creds.configured() {
		return AuthResult{}, ErrNotConfigured
	}
	username = strings.TrimSpace(username)
	password = strings.TrimSpace(password)
	if username == "" || password == "" {
		return AuthResult{}, ErrInvalidCredentials
	}

	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.creds.Username)) == 1
	if !s.passwordMatches(password) || !userOK {
		return AuthResult{}, ErrInvalidCredentials
	}

	admin := Admin{Username: s.creds.Username}
	token, err := s.tokens.Generate(ctx, admin)
	if err != nil {
		return AuthResult{}, err
	}
	return AuthResult{Admin: admin, Token: token}, nil
}

func (s *authService) passwordMatches(password string) bool {
	if s.creds.PasswordHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(s.creds.PasswordHash), []byte(password)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(password), []byte(s.creds.Password)) == 1
}
