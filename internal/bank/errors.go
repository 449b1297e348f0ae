package bank

import "errors"

// Validation errors
var (
	ErrWrongArguments = errors.New("wrong arguments")
)

// Account errors
var (
	ErrUserAlreadyExists = errors.New("user already exists")
	ErrUserDoesNotExist  = errors.New("user does not exist")
)

// Operation errors
var (
	ErrNotEnoughMoney        = errors.New("not enough money")
	ErrTooManyRequestsToUser = errors.New("too many requests to user")
)

// Transfer errors
var (
	ErrSenderDoesNotExist        = errors.New("sender does not exist")
	ErrReceiverDoesNotExist      = errors.New("receiver does not exist")
	ErrTooManyRequestsToSender   = errors.New("too many requests to sender")
	ErrTooManyRequestsToReceiver = errors.New("too many requests to receiver")
)
