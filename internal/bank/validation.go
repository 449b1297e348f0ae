package bank

import (
	"math"
)

// The core assumes validated input; these checks are the outer-API contract
// guarding it. Anything rejected here never touches the registry or a
// backlog counter.

func validateUser(user string) error {
	if user == "" {
		return ErrWrongArguments
	}
	return nil
}

func validateCurrency(currency string) error {
	if currency == "" {
		return ErrWrongArguments
	}
	return nil
}

func validateAmount(amount float64) error {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount < 0 {
		return ErrWrongArguments
	}
	return nil
}
