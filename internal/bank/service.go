// Package bank is the synchronous public API over the in-memory banking
// core. It fronts every operation with the same admission pipeline:
// existence check, backlog admission, enqueue to the user's worker, await
// the reply, release the admission slot.
package bank

import (
	"errors"
	"sync"
	"time"

	"github.com/kislikjeka/moonbank/internal/ledger"
	"github.com/kislikjeka/moonbank/internal/registry"
	"github.com/kislikjeka/moonbank/internal/worker"
	"github.com/kislikjeka/moonbank/pkg/logger"
	"github.com/kislikjeka/moonbank/pkg/money"
)

// Service dispatches banking operations onto per-user workers
type Service struct {
	reg *registry.Registry
	cfg worker.Config
	log *logger.Logger

	reapers sync.WaitGroup
}

// Config holds the worker lifecycle knobs consumed by the core
type Config struct {
	StaleHandlerTimeout time.Duration
	StaleCheckInterval  time.Duration
}

// NewService creates a bank service over the given registry
func NewService(reg *registry.Registry, cfg Config, log *logger.Logger) *Service {
	return &Service{
		reg: reg,
		cfg: worker.Config{
			StaleTimeout:  cfg.StaleHandlerTimeout,
			CheckInterval: cfg.StaleCheckInterval,
		},
		log: log,
	}
}

// CreateUser registers a new user with no balances
func (s *Service) CreateUser(user string) error {
	if err := validateUser(user); err != nil {
		return err
	}

	if _, err := s.reg.Create(user); err != nil {
		return ErrUserAlreadyExists
	}

	s.log.Debug("user created", "user", user)
	return nil
}

// Deposit credits the user's balance in the given currency and returns the
// new balance.
func (s *Service) Deposit(user string, amount float64, currency string) (money.Amount, error) {
	if err := validateUser(user); err != nil {
		return 0, err
	}
	if err := validateAmount(amount); err != nil {
		return 0, err
	}
	if err := validateCurrency(currency); err != nil {
		return 0, err
	}

	return s.execute(user, worker.Request{
		Op:       worker.OpDeposit,
		Currency: currency,
		Amount:   money.FromFloat(amount),
	})
}

// Withdraw debits the user's balance in the given currency and returns the
// new balance. Fails with ErrNotEnoughMoney when the balance is too small.
func (s *Service) Withdraw(user string, amount float64, currency string) (money.Amount, error) {
	if err := validateUser(user); err != nil {
		return 0, err
	}
	if err := validateAmount(amount); err != nil {
		return 0, err
	}
	if err := validateCurrency(currency); err != nil {
		return 0, err
	}

	return s.execute(user, worker.Request{
		Op:       worker.OpWithdraw,
		Currency: currency,
		Amount:   money.FromFloat(amount),
	})
}

// GetBalance returns the user's balance in the given currency; a currency
// the user never held reads as zero. Reads take an admission slot just like
// writes, so they contend for the same per-user cap.
func (s *Service) GetBalance(user string, currency string) (money.Amount, error) {
	if err := validateUser(user); err != nil {
		return 0, err
	}
	if err := validateCurrency(currency); err != nil {
		return 0, err
	}

	return s.execute(user, worker.Request{
		Op:       worker.OpGetBalance,
		Currency: currency,
	})
}

// Close stops every live worker, drains their inboxes and waits for the
// reapers to finish. The service must not be used afterwards.
func (s *Service) Close() {
	for _, acct := range s.reg.Accounts() {
		if w := acct.Worker(); w != nil {
			w.Stop()
		}
	}
	s.reapers.Wait()
	s.log.Debug("bank service closed")
}

// execute runs the full single-user pipeline: lookup, admission, dispatch,
// release. The admission slot is held until the worker has replied, success
// or failure (exactly one release per admission).
func (s *Service) execute(user string, req worker.Request) (money.Amount, error) {
	acct, err := s.reg.Lookup(user)
	if err != nil {
		return 0, ErrUserDoesNotExist
	}

	if !acct.TryAcquire() {
		return 0, ErrTooManyRequestsToUser
	}
	defer acct.Release()

	resp := s.dispatch(acct, req)
	return resp.Balance, s.mapOperationError(resp.Err)
}

// dispatch enqueues the request on the account's worker and awaits the
// reply. An enqueue can fail only when the worker lost the race with its
// own idle shutdown; in that case the dispatcher waits out the drain,
// clears the retired worker's slot and retries against a fresh one.
func (s *Service) dispatch(acct *registry.Account, req worker.Request) worker.Response {
	req.Reply = make(chan worker.Response, 1)

	for {
		w := s.workerFor(acct)
		if w.Enqueue(req) {
			break
		}

		<-w.Done()
		acct.ClearWorker(w)
	}

	return <-req.Reply
}

// workerFor returns the account's live worker, lazily installing and
// starting one when the slot is empty. The CAS install guarantees a single
// winner among concurrent dispatchers.
func (s *Service) workerFor(acct *registry.Account) *worker.Worker {
	for {
		if w := acct.Worker(); w != nil {
			return w
		}

		w := worker.New(acct.User(), acct.Balances(), s.cfg, s.log)
		if acct.InstallWorker(w) {
			w.Start()
			s.reap(acct, w)
			return w
		}
	}
}

// reap watches for the worker's exit (idle retirement, stop or fault) and
// clears its registry slot. The clear is conditional on the slot still
// holding this exact worker, so a newer install is never disturbed.
func (s *Service) reap(acct *registry.Account, w *worker.Worker) {
	s.reapers.Add(1)
	go func() {
		defer s.reapers.Done()

		<-w.Done()
		if acct.ClearWorker(w) {
			s.log.Debug("reaped worker", "user", acct.User(), "worker_id", w.ID())
		}
	}()
}

// mapOperationError translates worker-level errors into the public set
func (s *Service) mapOperationError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ledger.ErrNotEnoughMoney) {
		return ErrNotEnoughMoney
	}
	return err
}
