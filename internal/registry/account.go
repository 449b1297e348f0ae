package registry

import (
	"sync/atomic"

	"github.com/kislikjeka/moonbank/internal/ledger"
	"github.com/kislikjeka/moonbank/internal/worker"
)

// MaxBacklog is the hard cap on concurrently in-flight requests per user
const MaxBacklog = 10

// Account is the per-user record: the backlog counter gating admission, a
// slot for the currently live worker and the balance state that worker owns.
// Accounts are created once and never removed; only the worker slot cycles.
type Account struct {
	user     string
	backlog  atomic.Int32
	worker   atomic.Pointer[worker.Worker]
	balances *ledger.Balances
}

func newAccount(user string) *Account {
	return &Account{
		user:     user,
		balances: ledger.NewBalances(),
	}
}

// User returns the account's user identifier
func (a *Account) User() string {
	return a.user
}

// Balances returns the balance state owned by the account's worker
func (a *Account) Balances() *ledger.Balances {
	return a.balances
}

// TryAcquire takes one admission slot. It compares before incrementing, so
// the counter never observably exceeds MaxBacklog: under any interleaving
// exactly MaxBacklog concurrent admissions succeed from an idle account.
func (a *Account) TryAcquire() bool {
	for {
		n := a.backlog.Load()
		if n >= MaxBacklog {
			return false
		}
		if a.backlog.CompareAndSwap(n, n+1) {
			return true
		}
	}
}

// Release returns an admission slot, flooring at zero
func (a *Account) Release() {
	for {
		n := a.backlog.Load()
		if n <= 0 {
			return
		}
		if a.backlog.CompareAndSwap(n, n-1) {
			return
		}
	}
}

// Backlog reports the number of currently admitted requests
func (a *Account) Backlog() int {
	return int(a.backlog.Load())
}

// Worker returns the live worker for this account, nil when none is installed
func (a *Account) Worker() *worker.Worker {
	return a.worker.Load()
}

// InstallWorker installs w into an empty slot. It fails when another worker
// is already installed, so at most one worker per user is ever live.
func (a *Account) InstallWorker(w *worker.Worker) bool {
	return a.worker.CompareAndSwap(nil, w)
}

// ClearWorker empties the slot only if it still holds w. A stale clear
// racing a newer install loses, preserving the newer worker.
func (a *Account) ClearWorker(w *worker.Worker) bool {
	return a.worker.CompareAndSwap(w, nil)
}
