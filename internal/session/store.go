package session

import "sync"

// Store holds active sessions keyed by session id. The manager makes no
// assumption about whether the store is in-process or shared; it only
// requires that Get observes the most recent Put/Delete for the same id.
type Store interface {
	Put(s Session) error
	Get(id string) (Session, bool)
	Delete(id string) error
}

// MemoryStore is the default in-process store.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]Session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]Session)}
}

func (m *MemoryStore) Put(s Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = s
	return nil
}

func (m *MemoryStore) Get(id string) (Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	return s, ok
}

func (m *MemoryStore) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}
