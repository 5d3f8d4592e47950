package store

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemStore is an in-memory Store for tests and dry runs.
type MemStore struct {
	mu    sync.RWMutex
	scans map[string]*Scan
}

var _ Store = (*MemStore)(nil)

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{scans: make(map[string]*Scan)}
}

// SaveScan stores a copy of the scan, assigning ID and CreatedAt when unset.
func (m *MemStore) SaveScan(s *Scan) (string, error) {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now().UTC()
	}

	cp := *s
	m.mu.Lock()
	m.scans[cp.ID] = &cp
	m.mu.Unlock()
	return s.ID, nil
}

// GetScan fetches one scan by id.
func (m *MemStore) GetScan(id string) (*Scan, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.scans[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *s
	return &cp, nil
}

// ListScans returns the most recent scans, newest first.
func (m *MemStore) ListScans(limit int) ([]*Scan, error) {
	m.mu.RLock()
	scans := make([]*Scan, 0, len(m.scans))
	for _, s := range m.scans {
		cp := *s
		scans = append(scans, &cp)
	}
	m.mu.RUnlock()

	sort.Slice(scans, func(i, j int) bool {
		if !scans[i].CreatedAt.Equal(scans[j].CreatedAt) {
			return scans[i].CreatedAt.After(scans[j].CreatedAt)
		}
		return scans[i].ID < scans[j].ID
	})
	if limit > 0 && len(scans) > limit {
		scans = scans[:limit]
	}
	return scans, nil
}

// Close is a no-op.
func (m *MemStore) Close() error { return nil }
