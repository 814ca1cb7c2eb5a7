package bookmarks

import (
	"sync"

	"github.com/mrlokans/sbreader/internal/entities"
)

// keyLocks hands out one mutex per bookmark key. Entries are dropped once
// nobody holds or waits on them.
type keyLocks struct {
	mu    sync.Mutex
	locks map[entities.BookmarkKey]*keyLock
}

type keyLock struct {
	mu   sync.Mutex
	refs int
}

func newKeyLocks() *keyLocks {
	return &keyLocks{locks: make(map[entities.BookmarkKey]*keyLock)}
}

// lock blocks until the caller owns key and returns the matching unlock.
func (k *keyLocks) lock(key entities.BookmarkKey) func() {
	k.mu.Lock()
	l, ok := k.locks[key]
	if !ok {
		l = &keyLock{}
		k.locks[key] = l
	}
	l.refs++
	k.mu.Unlock()

	l.mu.Lock()

	return func() {
		l.mu.Unlock()

		k.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}

func (k *keyLocks) size() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.locks)
}
