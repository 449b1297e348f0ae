package worker

import (
	"github.com/kislikjeka/moonbank/pkg/money"
)

// Op identifies the balance operation a request carries
type Op int

const (
	OpDeposit Op = iota
	OpWithdraw
	OpGetBalance
)

// Request is one balance operation destined for a user's worker.
// Reply must be buffered with capacity 1 so the worker never blocks on it.
type Request struct {
	Op       Op
	Currency string
	Amount   money.Amount
	Reply    chan Response
}

// Response carries the outcome of a request back to the dispatcher
type Response struct {
	Balance money.Amount
	Err     error
}
