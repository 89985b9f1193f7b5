package handoff

import (
	"context"
	"sync"

	"github.com/bdbl/loan-verification-api/pkg/formdata"
)

// MemoryStore is an in-process Store used in tests and local runs
// without Redis.
type MemoryStore struct {
	mu   sync.Mutex
	data map[Key]formdata.CanonicalFormData
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data: make(map[Key]formdata.CanonicalFormData),
	}
}

func (s *MemoryStore) Put(_ context.Context, key Key, data formdata.CanonicalFormData) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[key] = data
	delete(s.data, key.Other())
	return nil
}

func (s *MemoryStore) Get(_ context.Context, key Key) (formdata.CanonicalFormData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, ok := s.data[key]
	if !ok {
		return formdata.CanonicalFormData{}, ErrNotFound
	}
	return data, nil
}

func (s *MemoryStore) Clear(_ context.Context, key Key) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.data, key)
	return nil
}

var _ Store = (*MemoryStore)(nil)
