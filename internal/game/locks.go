package game

import "sync"

// lockTable hands out one mutex per game code so that commands touching the
// same game serialize. Different games never contend.
type lockTable struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newLockTable() *lockTable {
	return &lockTable{locks: make(map[string]*sync.Mutex)}
}

// acquire returns the mutex for a game code, creating it on first use
func (t *lockTable) acquire(code string) *sync.Mutex {
	t.mu.Lock()
	defer t.mu.Unlock()
	l, ok := t.locks[code]
	if !ok {
		l = &sync.Mutex{}
		t.locks[code] = l
	}
	return l
}
