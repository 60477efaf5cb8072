package fakesessionstore

import (
	"sync"

	"golang.org/x/oauth2"

	"peoplectl/session"
)

var _ session.Store = (*FakeStore)(nil)

// FakeStore is an in-memory session.Store for tests.
type FakeStore struct {
	lock       sync.RWMutex
	token      *oauth2.Token
	setCalls   int
	clearCalls int
}

func NewFakeStore() *FakeStore {
	return &FakeStore{}
}

func (fs *FakeStore) Token() (oauth2.Token, bool) {
	fs.lock.RLock()
	defer fs.lock.RUnlock()

	if fs.token == nil {
		return oauth2.Token{}, false
	}
	return *fs.token, true
}

func (fs *FakeStore) SetToken(token oauth2.Token) error {
	fs.lock.Lock()
	defer fs.lock.Unlock()

	fs.token = &token
	fs.setCalls++
	return nil
}

func (fs *FakeStore) Clear() error {
	fs.lock.Lock()
	defer fs.lock.Unlock()

	fs.token = nil
	fs.clearCalls++
	return nil
}

func (fs *FakeStore) SetTokenCallCount() int {
	fs.lock.RLock()
	defer fs.lock.RUnlock()
	return fs.setCalls
}

func (fs *FakeStore) ClearCallCount() int {
	fs.lock.RLock()
	defer fs.lock.RUnlock()
	return fs.clearCalls
}
