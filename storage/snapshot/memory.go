package snapshot

import (
	"sync"

	"github.com/fundalabs/funda/core"
)

// memoryStore is a throwaway in-process store for tests and dev runs that
// should not touch disk.
type memoryStore struct {
	mutex sync.RWMutex
	blobs map[string][]byte
}

var _ core.SnapshotStore = (*memoryStore)(nil)

func NewMemoryStore() core.SnapshotStore {
	return &memoryStore{blobs: make(map[string][]byte)}
}

func (s *memoryStore) Load(key string) ([]byte, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	blob, ok := s.blobs[key]
	if !ok {
		return nil, nil
	}
	cp := make([]byte, len(blob))
	copy(cp, blob)
	return cp, nil
}

func (s *memoryStore) Save(key string, blob []byte) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	cp := make([]byte, len(blob))
	copy(cp, blob)
	s.blobs[key] = cp
	return nil
}
