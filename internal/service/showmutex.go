package service

import "sync"

// showMutex provides mutual exclusion per show.  Lock acquisition and
// booking commit must not interleave their check-then-write sequences
// for the same show, while operations on different shows stay fully
// independent.  Mutexes are created lazily and kept for the lifetime of
// the process; the set of shows is small enough that no eviction is
// needed.
type showMutex struct {
    mu    sync.Mutex
    locks map[uint64]*sync.Mutex
}

func newShowMutex() *showMutex {
    return &showMutex{locks: make(map[uint64]*sync.Mutex)}
}

// Lock acquires the mutex for the given show and returns its unlock
// function.
func (m *showMutex) Lock(showID uint64) func() {
    m.mu.Lock()
    l, ok := m.locks[showID]
    if !ok {
        l = &sync.Mutex{}
        m.locks[showID] = l
    }
    m.mu.Unlock()

    l.Lock()
    return l.Unlock
}
