package bank

import (
	"github.com/kislikjeka/moonbank/internal/worker"
	"github.com/kislikjeka/moonbank/pkg/money"
)

// Send moves amount in the given currency from one user to another and
// returns the resulting balances of sender and receiver.
//
// The transfer composes two serialized operations: a withdraw on the
// sender's worker, then a deposit on the receiver's. It is not atomic
// across the pair; an observer may see the debit before the credit. When
// the credit fails the debited amount is re-deposited on the sender, so a
// failed transfer never loses money.
//
// Admission happens on the sender first, then the receiver; every acquired
// slot is released exactly once on every path, in reverse order. A
// self-transfer takes both slots and reports the (unchanged) final balance
// for both sides.
func (s *Service) Send(from, to string, amount float64, currency string) (money.Amount, money.Amount, error) {
	if err := validateUser(from); err != nil {
		return 0, 0, err
	}
	if err := validateUser(to); err != nil {
		return 0, 0, err
	}
	if err := validateAmount(amount); err != nil {
		return 0, 0, err
	}
	if err := validateCurrency(currency); err != nil {
		return 0, 0, err
	}

	sender, err := s.reg.Lookup(from)
	if err != nil {
		return 0, 0, ErrSenderDoesNotExist
	}
	receiver, err := s.reg.Lookup(to)
	if err != nil {
		return 0, 0, ErrReceiverDoesNotExist
	}

	if !sender.TryAcquire() {
		return 0, 0, ErrTooManyRequestsToSender
	}
	defer sender.Release()

	if !receiver.TryAcquire() {
		return 0, 0, ErrTooManyRequestsToReceiver
	}
	defer receiver.Release()

	amt := money.FromFloat(amount)

	withdrawal := s.dispatch(sender, worker.Request{
		Op:       worker.OpWithdraw,
		Currency: currency,
		Amount:   amt,
	})
	if withdrawal.Err != nil {
		return 0, 0, s.mapOperationError(withdrawal.Err)
	}

	deposit := s.dispatch(receiver, worker.Request{
		Op:       worker.OpDeposit,
		Currency: currency,
		Amount:   amt,
	})
	if deposit.Err != nil {
		// The sender is already debited; put the money back before
		// surfacing the error. Deposits cannot currently fail on amount
		// grounds, but the compensation must outlive that assumption.
		s.dispatch(sender, worker.Request{
			Op:       worker.OpDeposit,
			Currency: currency,
			Amount:   amt,
		})
		s.log.Warn("transfer credit failed, sender compensated",
			"from", from, "to", to, "currency", currency, "error", deposit.Err)
		return 0, 0, s.mapOperationError(deposit.Err)
	}

	if from == to {
		return deposit.Balance, deposit.Balance, nil
	}

	return withdrawal.Balance, deposit.Balance, nil
}
