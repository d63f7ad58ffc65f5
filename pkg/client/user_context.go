package client

import (
	"context"
	"sync"
)

type ProfileFetcher interface {
	Profile(ctx context.Context) (*User, error)
}

// UserContext holds the signed-in user for a client session. It becomes
// ready after the first successful profile fetch.
type UserContext struct {
	mu      sync.RWMutex
	fetcher ProfileFetcher
	user    *User
	ready   bool
}

func NewUserContext(fetcher ProfileFetcher) *UserContext {
	return &UserContext{fetcher: fetcher}
}

// Load fetches the profile unless a user is already set.
func (u *UserContext) Load(ctx context.Context) error {
	u.mu.RLock()
	loaded := u.user != nil
	u.mu.RUnlock()
	if loaded {
		return nil
	}

	user, err := u.fetcher.Profile(ctx)
	if err != nil {
		return err
	}

	u.mu.Lock()
	defer u.mu.Unlock()
	// a SetUser that raced the fetch wins
	if u.user == nil {
		u.user = user
	}
	u.ready = true
	return nil
}

func (u *UserContext) User() *User {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return u.user
}

func (u *UserContext) SetUser(user *User) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.user = user
}

func (u *UserContext) Ready() bool {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return u.ready
}
