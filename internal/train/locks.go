package train

import "sync"

// keyedLocks hands out one mutex per key, creating them on first use.
// Mutation paths lock the train's identifier so actions on the same
// train are serialized while different trains proceed independently.
type keyedLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newKeyedLocks() *keyedLocks {
	return &keyedLocks{locks: make(map[string]*sync.Mutex)}
}

// acquire locks the mutex for key and returns it for unlocking.
func (k *keyedLocks) acquire(key string) *sync.Mutex {
	k.mu.Lock()
	m, ok := k.locks[key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[key] = m
	}
	k.mu.Unlock()

	m.Lock()
	return m
}
