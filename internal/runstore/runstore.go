// Package runstore keeps completed discovery runs in memory so their
// results can be re-fetched and exported until they expire. No
// persistence: a restart forgets all runs.
package runstore

import (
	"sync"
	"time"

	"github.com/kowshik24/email-draft/models"
)

// Store holds discovery results keyed by run ID.
type Store interface {
	Put(result *models.DiscoveryResult)
	Get(id string) (*models.DiscoveryResult, bool)
	List() []*models.DiscoveryResult
}

type entry struct {
	result    *models.DiscoveryResult
	expiresAt time.Time
}

type memoryStore struct {
	mu   sync.RWMutex
	runs map[string]entry
	ttl  time.Duration
}

// New returns an in-memory store. ttl <= 0 means runs never expire.
func New(ttl time.Duration) Store {
	return &memoryStore{runs: make(map[string]entry), ttl: ttl}
}

func (s *memoryStore) Put(result *models.DiscoveryResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var expires time.Time
	if s.ttl > 0 {
		expires = time.Now().Add(s.ttl)
	}
	s.runs[result.ID] = entry{result: result, expiresAt: expires}
}

func (s *memoryStore) Get(id string) (*models.DiscoveryResult, bool) {
	s.mu.RLock()
	e, ok := s.runs[id]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if !e.expiresAt.IsZero() && time.Now().After(e.expiresAt) {
		s.mu.Lock()
		delete(s.runs, id)
		s.mu.Unlock()
		return nil, false
	}
	return e.result, true
}

func (s *memoryStore) List() []*models.DiscoveryResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	now := time.Now()
	out := make([]*models.DiscoveryResult, 0, len(s.runs))
	for _, e := range s.runs {
		if !e.expiresAt.IsZero() && now.After(e.expiresAt) {
			continue
		}
		out = append(out, e.result)
	}
	return out
}
