// Package memstore is an in-process storage.KV. Nothing survives the process.
package memstore

import (
	"context"
	"sync"

	"github.com/Makepad-fr/tada/internal/storage"
)

type Store struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func New() *Store {
	return &Store{data: map[string][]byte{}}
}

func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	if err := storage.ValidKey(key); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.data[key]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return append([]byte(nil), b...), nil
}

func (s *Store) Set(_ context.Context, key string, value []byte) error {
	if err := storage.ValidKey(key); err != nil {
		return err
	}
	s.mu.Lock()
	s.data[key] = append([]byte(nil), value...)
	s.mu.Unlock()
	return nil
}

func (s *Store) Close() error { return nil }
