package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type stubTokens struct{}

func (stubTokens) Generate(_ context.Context, a Admin) (string, error) { return "token-" + a.Username, nil }

func TestLogin_PlainPassword(t *testing.T) {
	svc := NewAuthService(Credentials{Username: "admin", Password: "s3cret"}, stubTokens{})

	res, err := svc.Login(context.Background(), " admin ", "s3cret ")
	require.NoError(t, err)
	assert.Equal(t, "admin", res.Admin.Username)
	assert.Equal(t, "token-admin", res.Token)

	_, err = svc.Login(context.Background(), "admin", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Login(context.Background(), "root", "s3cret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Login(context.Background(), "", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_BcryptHashWins(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hashed-pass"), bcrypt.MinCost)
	require.NoError(t, err)
	svc := NewAuthService(Credentials{Username: "admin", Password: "plain", PasswordHash: string(hash)}, stubTokens{})

	_, err = svc.Login(context.Background(), "admin", "hashed-pass")
	require.NoError(t, err)
	_, err = svc.Login(context.Background(), "admin", "plain")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_NotConfigured(t *testing.T) {
	svc := NewAuthService(Credentials{Username: "admin"}, stubTokens{})
	_, err := svc.Login(context.Background(), "admin", "anything")
	assert.ErrorIs(t, err, ErrNotConfigured)
}
