// Package ledger holds the per-account balance state.
//
// A Balances value is owned by exactly one worker goroutine at a time; the
// worker lifecycle guarantees a happens-before edge between successive
// owners, so no locking is needed here.
package ledger

import (
	"github.com/kislikjeka/moonbank/pkg/money"
)

// Balances maps currency to a non-negative amount for a single user.
// A missing currency reads as zero.
type Balances struct {
	byCurrency map[string]money.Amount
}

// NewBalances creates an empty balance set
func NewBalances() *Balances {
	return &Balances{
		byCurrency: make(map[string]money.Amount),
	}
}

// Deposit credits the currency and returns the new balance
func (b *Balances) Deposit(currency string, amount money.Amount) money.Amount {
	next := b.byCurrency[currency] + amount
	b.byCurrency[currency] = next
	return next
}

// Withdraw debits the currency and returns the new balance.
// Returns ErrNotEnoughMoney and leaves the balance unchanged when the
// current balance is smaller than the requested amount.
func (b *Balances) Withdraw(currency string, amount money.Amount) (money.Amount, error) {
	current := b.byCurrency[currency]
	if current < amount {
		return current, ErrNotEnoughMoney
	}

	next := current - amount
	b.byCurrency[currency] = next
	return next, nil
}

// Get returns the balance for the currency, zero when the user never held it
func (b *Balances) Get(currency string) money.Amount {
	return b.byCurrency[currency]
}
