// Package auth implements the registration and login flows.
package auth

import (
	"context"
	"errors"
	"fmt"

	apperrors "github.com/skillsenselab/rolegate/internal/errors"
	"github.com/skillsenselab/rolegate/internal/logger"
	"github.com/skillsenselab/rolegate/internal/password"
	"github.com/skillsenselab/rolegate/internal/token"
	"github.com/skillsenselab/rolegate/internal/user"
)

// Service runs the credential flows against the store, hasher and codec.
// It holds no mutable state of its own, so a single instance serves all
// requests concurrently.
type Service struct {
	store  user.Store
	hasher password.Hasher
	codec  *token.Codec
	log    *logger.Logger
}

// NewService creates the auth service.
func NewService(store user.Store, hasher password.Hasher, codec *token.Codec, log *logger.Logger) *Service {
	return &Service{
		store:  store,
		hasher: hasher,
		codec:  codec,
		log:    log.WithComponent("auth"),
	}
}

// LoginResult is the success payload of the login flow.
type LoginResult struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

// Register validates the requested role, rejects duplicate usernames and
// stores a new identity with a hashed password. The returned identity never
// carries the password hash outward (the field is not serialized).
//
// The duplicate pre-check gives a friendly 409 on the common path; the
// store's own uniqueness guarantee closes the race between two concurrent
// registrations, and a losing insert is reported as the same 409.
func (s *Service) Register(ctx context.Context, username, plaintext, roleName string) (*user.Identity, error) {
	role, err := NormalizeRoleName(roleName)
	if err != nil {
		return nil, err
	}

	_, err = s.store.FindByUsername(ctx, username)
	switch {
	case err == nil:
		return nil, apperrors.Conflict("Username already taken")
	case !errors.Is(err, user.ErrNotFound):
		return nil, apperrors.DatabaseError(err)
	}

	hash, err := s.hasher.Hash(plaintext)
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("hash password: %w", err))
	}

	created, err := s.store.Insert(ctx, &user.Identity{
		Username:     username,
		PasswordHash: hash,
		RoleName:     role,
	})
	if err != nil {
		if errors.Is(err, user.ErrDuplicateUsername) {
			return nil, apperrors.Conflict("Username already taken")
		}
		return nil, apperrors.DatabaseError(err)
	}

	s.log.Info("user registered", logger.Fields(
		logger.FieldUserID, created.ID,
		"username", created.Username,
		"role_name", created.RoleName,
	))
	return created, nil
}

// Login verifies the credentials and issues a session token embedding a
// snapshot of the identity. Unknown username and wrong password produce the
// identical 401 so callers cannot probe which usernames exist.
func (s *Service) Login(ctx context.Context, username, plaintext string) (*LoginResult, error) {
	identity, err := s.store.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, apperrors.Unauthorized("invalid credentials")
		}
		return nil, apperrors.DatabaseError(err)
	}

	if !s.hasher.Verify(plaintext, identity.PasswordHash) {
		return nil, apperrors.Unauthorized("invalid credentials")
	}

	signed, err := s.codec.Issue(identity.ID, identity.Username, identity.RoleName)
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("issue token: %w", err))
	}

	s.log.Info("user logged in", logger.Fields(
		logger.FieldUserID, identity.ID,
		"username", identity.Username,
	))
	return &LoginResult{
		Message: "welcome " + identity.Username,
		Token:   signed,
	}, nil
}

// Users lists all registered identities.
func (s *Service) Users(ctx context.Context) ([]user.Identity, error) {
	identities, err := s.store.List(ctx)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	return identities, nil
}
