package user

import (
	"context"
	"sort"
	"sync"
)

// MemoryStore is an in-memory Store. The mutex makes the duplicate check and
// the insert a single atomic step, which is the uniqueness guarantee the
// registration flow relies on. Used by tests and as the fallback driver when
// no database is configured.
type MemoryStore struct {
	mu         sync.Mutex
	byUsername map[string]*Identity
	nextID     int64
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byUsername: make(map[string]*Identity),
		nextID:     1,
	}
}

func (s *MemoryStore) FindByUsername(_ context.Context, username string) (*Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.byUsername[username]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *u
	return &clone, nil
}

func (s *MemoryStore) Insert(_ context.Context, identity *Identity) (*Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byUsername[identity.Username]; exists {
		return nil, ErrDuplicateUsername
	}

	clone := *identity
	clone.ID = s.nextID
	s.nextID++
	s.byUsername[clone.Username] = &clone

	out := clone
	return &out, nil
}

func (s *MemoryStore) List(_ context.Context) ([]Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Identity, 0, len(s.byUsername))
	for _, u := range s.byUsername {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
