// Package user defines the identity model and the credential-store contract.
package user

import "context"

// Identity is a registered user. Identities are immutable after creation:
// the core defines no update or delete operations.
type Identity struct {
	ID           int64  `gorm:"primaryKey" json:"user_id"`
	Username     string `gorm:"size:128;uniqueIndex;not null" json:"username"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	RoleName     string `gorm:"size:32;not null" json:"role_name"`
}

// TableName sets the GORM table name.
func (Identity) TableName() string { return "users" }

// Store is the credential-store contract the auth core depends on.
//
// Insert must be atomic with respect to the uniqueness check: two concurrent
// inserts of the same username must not both succeed. Implementations
// guarantee this with a unique constraint or an internal lock; the core
// takes no locks of its own.
type Store interface {
	// FindByUsername returns the identity for username, or ErrNotFound.
	FindByUsername(ctx context.Context, username string) (*Identity, error)

	// Insert persists a new identity and assigns its ID. Returns
	// ErrDuplicateUsername if the username is already taken, including when
	// a concurrent insert claimed it first.
	Insert(ctx context.Context, identity *Identity) (*Identity, error)

	// List returns all identities ordered by ID.
	List(ctx context.Context) ([]Identity, error)
}
