package ledger

import "errors"

// Balance errors
var (
	ErrNotEnoughMoney = errors.New("not enough money")
)
