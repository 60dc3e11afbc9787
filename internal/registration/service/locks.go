package service

import (
	"context"
	"sync"

	id "signup/pkg/domain"
)

// formLocks serialises load-mutate-save cycles per form. Entries are removed
// once nobody holds or waits on them.
type formLocks struct {
	mu    sync.Mutex
	locks map[id.FormID]*formLock
}

type formLock struct {
	sync.Mutex
	refs int
}

func newFormLocks() *formLocks {
	return &formLocks{locks: make(map[id.FormID]*formLock)}
}

// Lock blocks until formID is free and returns the matching unlock. It only
// serialises callers within this process and never fails.
func (l *formLocks) Lock(_ context.Context, formID id.FormID) (func(), error) {
	l.mu.Lock()
	fl, ok := l.locks[formID]
	if !ok {
		fl = &formLock{}
		l.locks[formID] = fl
	}
	fl.refs++
	l.mu.Unlock()

	fl.Lock()
	return func() {
		fl.Unlock()
		l.mu.Lock()
		fl.refs--
		if fl.refs == 0 {
			delete(l.locks, formID)
		}
		l.mu.Unlock()
	}, nil
}

func (l *formLocks) len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
