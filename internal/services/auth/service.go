// Package auth guards the operator-only routes (badge staging and
// directory sync) with a single bcrypt-checked admin key.
package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// Errors
var (
	ErrInvalidAdminKey = errors.New("invalid admin key")
	ErrAdminDisabled   = errors.New("admin access is not configured")
)

// Config holds configuration for the auth service
type Config struct {
	// AdminKeyHash is the bcrypt hash of the admin key. Empty
	// disables all admin routes.
	AdminKeyHash string
}

// Service verifies admin keys
type Service struct {
	hash []byte
}

// New creates a new auth Service
func New(cfg Config) *Service {
	return &Service{hash: []byte(cfg.AdminKeyHash)}
}

// Enabled reports whether an admin key is configured
func (s *Service) Enabled() bool {
	return len(s.hash) > 0
}

// Verify checks a presented admin key against the configured hash
func (s *Service) Verify(key string) error {
	if !s.Enabled() {
		return ErrAdminDisabled
	}
	if err := bcrypt.CompareHashAndPassword(s.hash, []byte(key)); err != nil {
		return ErrInvalidAdminKey
	}
	return nil
}

// HashKey produces a bcrypt hash suitable for AdminKeyHash
func HashKey(key string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(key), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
