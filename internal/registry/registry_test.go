package registry

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kislikjeka/moonbank/internal/ledger"
	"github.com/kislikjeka/moonbank/internal/worker"
	"github.com/kislikjeka/moonbank/pkg/logger"
)

func TestRegistry_Create(t *testing.T) {
	r := New()

	acct, err := r.Create("alice")
	require.NoError(t, err)
	require.NotNil(t, acct)
	assert.Equal(t, "alice", acct.User())
	assert.Equal(t, 0, acct.Backlog())
	assert.Nil(t, acct.Worker())
}

func TestRegistry_Create_Duplicate(t *testing.T) {
	r := New()

	_, err := r.Create("alice")
	require.NoError(t, err)

	_, err = r.Create("alice")
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestRegistry_Create_ConcurrentSingleWinner(t *testing.T) {
	r := New()

	var wg sync.WaitGroup
	var successCount int32

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := r.Create("alice"); err == nil {
				atomic.AddInt32(&successCount, 1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), successCount, "exactly one concurrent creation should win")
	assert.Equal(t, 1, r.Len())
}

func TestRegistry_Lookup(t *testing.T) {
	r := New()
	created, err := r.Create("alice")
	require.NoError(t, err)

	found, err := r.Lookup("alice")
	require.NoError(t, err)
	assert.Same(t, created, found)
}

func TestRegistry_Lookup_Missing(t *testing.T) {
	r := New()

	_, err := r.Lookup("nobody")
	assert.ErrorIs(t, err, ErrUserDoesNotExist)
}

func TestAccount_TryAcquire_Cap(t *testing.T) {
	acct := newAccount("alice")

	for i := 0; i < MaxBacklog; i++ {
		require.True(t, acct.TryAcquire(), "admission %d should succeed", i)
	}

	assert.False(t, acct.TryAcquire(), "admission beyond the cap should fail")
	assert.Equal(t, MaxBacklog, acct.Backlog())
}

func TestAccount_TryAcquire_ConcurrentExactlyTen(t *testing.T) {
	acct := newAccount("u")

	var wg sync.WaitGroup
	var successCount int32

	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if acct.TryAcquire() {
				atomic.AddInt32(&successCount, 1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(MaxBacklog), successCount,
		"exactly %d of 100 concurrent admissions should succeed", MaxBacklog)
	assert.Equal(t, MaxBacklog, acct.Backlog())
}

func TestAccount_Release_RestoresCapacity(t *testing.T) {
	acct := newAccount("alice")

	for i := 0; i < MaxBacklog; i++ {
		require.True(t, acct.TryAcquire())
	}
	require.False(t, acct.TryAcquire())

	acct.Release()
	assert.True(t, acct.TryAcquire())
}

func TestAccount_Release_FloorsAtZero(t *testing.T) {
	acct := newAccount("alice")

	acct.Release()
	acct.Release()

	assert.Equal(t, 0, acct.Backlog())
}

func TestAccount_BacklogSurvivesWorkerCycles(t *testing.T) {
	acct := newAccount("alice")
	require.True(t, acct.TryAcquire())

	w := newTestWorker("alice")
	require.True(t, acct.InstallWorker(w))
	require.True(t, acct.ClearWorker(w))

	assert.Equal(t, 1, acct.Backlog(), "backlog lives with the account, not the worker")
}

func TestAccount_InstallWorker_SingleWinner(t *testing.T) {
	acct := newAccount("alice")

	w1 := newTestWorker("alice")
	w2 := newTestWorker("alice")

	require.True(t, acct.InstallWorker(w1))
	assert.False(t, acct.InstallWorker(w2), "second install must lose while a worker is live")
	assert.Same(t, w1, acct.Worker())
}

func TestAccount_ClearWorker_StaleClearLoses(t *testing.T) {
	acct := newAccount("alice")

	w1 := newTestWorker("alice")
	w2 := newTestWorker("alice")

	require.True(t, acct.InstallWorker(w1))
	require.True(t, acct.ClearWorker(w1))
	require.True(t, acct.InstallWorker(w2))

	// A reaper for the retired w1 must not clear the freshly installed w2
	assert.False(t, acct.ClearWorker(w1))
	assert.Same(t, w2, acct.Worker())
}

func newTestWorker(user string) *worker.Worker {
	return worker.New(user, ledger.NewBalances(), worker.Config{}, logger.Discard())
}
