package cache

import (
	"context"
	"sync"

	"github.com/theopenlane/ecolens/internal/scoring"
)

// MemoryStore is a concurrency-safe in-memory Store. It backs tests and
// single-process runs where persistence across restarts is not needed.
type MemoryStore struct {
	// mu guards concurrent access to the entry map
	mu sync.RWMutex
	// data maps exact page URLs to their stored analysis results
	data map[string]scoring.AnalysisResult
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data: make(map[string]scoring.AnalysisResult),
	}
}

// Get returns the stored entries for the given URLs
func (s *MemoryStore) Get(_ context.Context, keys ...string) (map[string]scoring.AnalysisResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	found := make(map[string]scoring.AnalysisResult, len(keys))

	for _, key := range keys {
		if entry, ok := s.data[key]; ok {
			found[key] = entry
		}
	}

	return found, nil
}

// Set stores the given entries, overwriting existing values
func (s *MemoryStore) Set(_ context.Context, entries map[string]scoring.AnalysisResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key, entry := range entries {
		s.data[key] = entry
	}

	return nil
}

// Len reports the number of stored entries
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.data)
}
