package guilds

import (
	"context"
	"encoding/json"
	"sync"
)

// Store loads and saves whole guild documents.
type Store interface {
	// Load returns ErrNotFound when the guild was never saved.
	Load(ctx context.Context, guildID string) (*Guild, error)
	Save(ctx context.Context, g *Guild) error
	Delete(ctx context.Context, guildID string) error
}

var _ Store = &MemoryStore{}

// MemoryStore keeps encoded documents in memory. Failing, when set, is returned by Save;
// FailingLoad, when set, is returned by Load.
type MemoryStore struct {
	mu   sync.Mutex
	docs map[string][]byte

	Failing     error
	FailingLoad error
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		docs: map[string][]byte{},
	}
}

func (s *MemoryStore) Load(ctx context.Context, guildID string) (*Guild, error) {
	s.mu.Lock()
	doc, ok := s.docs[guildID]
	failing := s.FailingLoad
	s.mu.Unlock()
	if failing != nil {
		return nil, failing
	}
	if !ok {
		return nil, ErrNotFound
	}
	return decode(doc)
}

func (s *MemoryStore) Save(ctx context.Context, g *Guild) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Failing != nil {
		return s.Failing
	}
	doc, err := json.Marshal(g)
	if err != nil {
		return err
	}
	s.docs[g.ID] = doc
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, guildID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs, guildID)
	return nil
}

func decode(doc []byte) (*Guild, error) {
	var g Guild
	if err := json.Unmarshal(doc, &g); err != nil {
		return nil, err
	}
	return &g, nil
}
