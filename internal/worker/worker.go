// Package worker implements the per-user serialization primitive: a single
// goroutine that owns one user's balances and executes requests for that
// user one at a time, in inbox order.
package worker

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kislikjeka/moonbank/internal/ledger"
	"github.com/kislikjeka/moonbank/pkg/logger"
)

// inboxSize must stay above the per-user admission cap so that a guarded
// send into the inbox can never block.
const inboxSize = 16

// Worker serializes balance operations for a single user.
//
// Lifecycle: started lazily by the dispatcher, retires itself after
// StaleTimeout without traffic. Retirement closes the inbox first, drains
// whatever was already enqueued, and only then signals Done; a fresh worker
// for the same user is therefore never live while an old one still holds
// the balances.
type Worker struct {
	id       uuid.UUID
	user     string
	balances *ledger.Balances
	log      *logger.Logger

	staleTimeout  time.Duration
	checkInterval time.Duration

	inbox chan Request

	mu     sync.Mutex
	closed bool

	stopOnce sync.Once
	stop     chan struct{}
	done     chan struct{}
}

// Config carries the idle-retirement knobs for a worker
type Config struct {
	StaleTimeout  time.Duration
	CheckInterval time.Duration
}

// New creates a worker for the user owning the given balances.
// The worker does not run until Start is called.
func New(user string, balances *ledger.Balances, cfg Config, log *logger.Logger) *Worker {
	id := uuid.New()
	return &Worker{
		id:            id,
		user:          user,
		balances:      balances,
		log:           log.WithUser(user).WithField("worker_id", id),
		staleTimeout:  cfg.StaleTimeout,
		checkInterval: cfg.CheckInterval,
		inbox:         make(chan Request, inboxSize),
		stop:          make(chan struct{}),
		done:          make(chan struct{}),
	}
}

// ID returns the worker's identity, used for log correlation
func (w *Worker) ID() uuid.UUID {
	return w.id
}

// Start launches the worker goroutine
func (w *Worker) Start() {
	go w.run()
}

// Stop asks the worker to shut down without waiting for the idle timeout.
// Pending inbox requests are still drained before Done is signalled.
func (w *Worker) Stop() {
	w.stopOnce.Do(func() {
		close(w.stop)
	})
}

// Done is closed once the worker has drained its inbox and exited
func (w *Worker) Done() <-chan struct{} {
	return w.done
}

// Enqueue hands a request to the worker. It returns false when the worker
// has begun shutting down; the dispatcher then retries against a fresh
// worker. The send itself never blocks: admission caps in-flight requests
// per user below the inbox capacity.
func (w *Worker) Enqueue(req Request) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return false
	}

	w.inbox <- req
	return true
}

func (w *Worker) run() {
	w.log.Debug("worker started")

	ticker := time.NewTicker(w.checkInterval)
	defer ticker.Stop()

	lastActive := time.Now()

	for {
		select {
		case req := <-w.inbox:
			w.handle(req)
			lastActive = time.Now()

		case <-ticker.C:
			if time.Since(lastActive) >= w.staleTimeout {
				w.log.Debug("worker idle, retiring")
				w.retire()
				return
			}

		case <-w.stop:
			w.log.Debug("worker stopping")
			w.retire()
			return
		}
	}
}

// retire stops accepting new requests, works off what was already queued
// and signals completion.
func (w *Worker) retire() {
	w.mu.Lock()
	w.closed = true
	w.mu.Unlock()

	w.drain()
	close(w.done)
}

// drain executes every request that made it into the inbox before close
func (w *Worker) drain() {
	for {
		select {
		case req := <-w.inbox:
			w.handle(req)
		default:
			return
		}
	}
}

// handle executes a single request against the balances and replies.
// A panic is answered as an error so the waiting dispatcher never hangs;
// the worker keeps draining, the fault is not fatal to the system.
func (w *Worker) handle(req Request) {
	defer func() {
		if r := recover(); r != nil {
			w.log.Error("worker fault while handling request", "op", req.Op, "panic", r)
			req.Reply <- Response{Err: fmt.Errorf("worker fault: %v", r)}
		}
	}()

	switch req.Op {
	case OpDeposit:
		balance := w.balances.Deposit(req.Currency, req.Amount)
		req.Reply <- Response{Balance: balance}

	case OpWithdraw:
		balance, err := w.balances.Withdraw(req.Currency, req.Amount)
		req.Reply <- Response{Balance: balance, Err: err}

	case OpGetBalance:
		req.Reply <- Response{Balance: w.balances.Get(req.Currency)}

	default:
		req.Reply <- Response{Err: fmt.Errorf("unknown operation: %d", req.Op)}
	}
}
