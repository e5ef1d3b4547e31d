package auth

import (
	"strings"

	apperrors "github.com/skillsenselab/rolegate/internal/errors"
)

const (
	// DefaultRole is assigned when registration requests no role.
	DefaultRole = "student"

	// ReservedRole cannot be requested through registration.
	ReservedRole = "admin"

	// MaxRoleNameLength is the longest accepted role name.
	MaxRoleNameLength = 32
)

// NormalizeRoleName validates and normalizes a requested role name.
// Whitespace is trimmed; an empty result falls back to DefaultRole.
// Requesting the reserved admin role or exceeding the length cap fails with
// a 422 validation error carrying the client-facing message.
func NormalizeRoleName(raw string) (string, error) {
	role := strings.TrimSpace(raw)
	if role == "" {
		return DefaultRole, nil
	}
	if role == ReservedRole {
		return "", apperrors.Validation("Role name cannot be admin")
	}
	if len(role) > MaxRoleNameLength {
		return "", apperrors.Validation("Role name can not be longer than 32 chars")
	}
	return role, nil
}
