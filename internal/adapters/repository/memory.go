package repository

import (
	"context"
	"sync"
)

// MemoryStore keeps the encoded list in process memory. It still round-trips
// through JSON so it behaves like the durable stores.
type MemoryStore struct {
	mu   sync.Mutex
	data []byte
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Load(_ context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data == nil {
		return []string{}, nil
	}
	return decode(s.data)
}

func (s *MemoryStore) Save(_ context.Context, ids []string) error {
	b, err := encode(ids)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.data = b
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Delete(_ context.Context) error {
	s.mu.Lock()
	s.data = nil
	s.mu.Unlock()
	return nil
}
