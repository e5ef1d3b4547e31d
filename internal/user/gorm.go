package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// GormStore is a Store backed by a GORM database. Uniqueness under
// concurrency is delegated to the unique index on username: a losing
// concurrent insert surfaces as a duplicate-key error and is translated to
// ErrDuplicateUsername.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore creates a Store on top of an open GORM database.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// Migrate creates or updates the users table.
func (s *GormStore) Migrate() error {
	if err := s.db.AutoMigrate(&Identity{}); err != nil {
		return fmt.Errorf("user: migrate: %w", err)
	}
	return nil
}

func (s *GormStore) FindByUsername(ctx context.Context, username string) (*Identity, error) {
	var identity Identity
	err := s.db.WithContext(ctx).Where("username = ?", username).First(&identity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("user: find by username: %w", err)
	}
	return &identity, nil
}

func (s *GormStore) Insert(ctx context.Context, identity *Identity) (*Identity, error) {
	err := s.db.WithContext(ctx).Create(identity).Error
	if err != nil {
		if isDuplicateKey(err) {
			return nil, ErrDuplicateUsername
		}
		return nil, fmt.Errorf("user: insert: %w", err)
	}
	return identity, nil
}

func (s *GormStore) List(ctx context.Context) ([]Identity, error) {
	var identities []Identity
	if err := s.db.WithContext(ctx).Order("id").Find(&identities).Error; err != nil {
		return nil, fmt.Errorf("user: list: %w", err)
	}
	return identities, nil
}

// isDuplicateKey detects unique-constraint violations across drivers. GORM
// translates these to ErrDuplicatedKey for dialects that support it; the
// sqlite driver reports them as plain errors, so the message is matched too.
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key")
}
