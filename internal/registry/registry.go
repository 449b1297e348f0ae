// Package registry is the process-wide account table: user creation,
// lookup, per-user admission accounting and the worker handoff slot.
package registry

import (
	"sync"
)

// Registry maps user identifiers to their account records.
// Safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	accounts map[string]*Account
}

// New creates an empty registry
func New() *Registry {
	return &Registry{
		accounts: make(map[string]*Account),
	}
}

// Create inserts a fresh account for the user. Exactly one of any set of
// concurrent creators for the same user wins; the rest get
// ErrUserAlreadyExists.
func (r *Registry) Create(user string) (*Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.accounts[user]; exists {
		return nil, ErrUserAlreadyExists
	}

	acct := newAccount(user)
	r.accounts[user] = acct
	return acct, nil
}

// Lookup returns the account for the user
func (r *Registry) Lookup(user string) (*Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	acct, exists := r.accounts[user]
	if !exists {
		return nil, ErrUserDoesNotExist
	}

	return acct, nil
}

// Accounts returns a snapshot of all account records
func (r *Registry) Accounts() []*Account {
	r.mu.RLock()
	defer r.mu.RUnlock()

	accts := make([]*Account, 0, len(r.accounts))
	for _, acct := range r.accounts {
		accts = append(accts, acct)
	}
	return accts
}

// Len reports the number of registered users
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.accounts)
}
