package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotConfigured      = errors.New("admin credentials are not configured")
)

// Admin - единственная роль с доступом к кабинету рекрутера.
type Admin struct {
	Username string
}

// Credentials is the shared admin secret. PasswordHash (bcrypt) takes
// precedence over the plain Password when both are set.
type Credentials struct {
	Username     string
	Password     string
	PasswordHash string
}

func (c Credentials) configured() bool {
	return c.Username != "" && (c.Password != "" || c.PasswordHash != "")
}
