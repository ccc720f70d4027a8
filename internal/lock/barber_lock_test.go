package lock

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestAcquireRelease(t *testing.T) {
	locks := NewBarberLocks()

	release, err := locks.Acquire(context.Background(), 1)
	require.NoError(t, err)
	release()

	// Reentrável depois do release.
	release, err = locks.Acquire(context.Background(), 1)
	require.NoError(t, err)
	release()
}

func TestAcquireBlocksSameBarber(t *testing.T) {
	locks := NewBarberLocks()

	release, err := locks.Acquire(context.Background(), 1)
	require.NoError(t, err)

	acquired := make(chan struct{})
	go func() {
		r2, err := locks.Acquire(context.Background(), 1)
		if err == nil {
			close(acquired)
			r2()
		}
	}()

	select {
	case <-acquired:
		t.Fatal("segundo Acquire não deveria passar com o lock ocupado")
	case <-time.After(50 * time.Millisecond):
	}

	release()

	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatal("segundo Acquire não destravou após o release")
	}
}

func TestBarbersAreIndependent(t *testing.T) {
	locks := NewBarberLocks()

	r1, err := locks.Acquire(context.Background(), 1)
	require.NoError(t, err)
	defer r1()

	done := make(chan struct{})
	go func() {
		r2, err := locks.Acquire(context.Background(), 2)
		require.NoError(t, err)
		r2()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("lock de outro barbeiro não deveria bloquear")
	}
}

func TestAcquireCancelledContext(t *testing.T) {
	locks := NewBarberLocks()

	release, err := locks.Acquire(context.Background(), 1)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err = locks.Acquire(ctx, 1)
	require.ErrorIs(t, err, context.DeadlineExceeded)

	// O cancelamento antes da aquisição não pode vazar o slot.
	release()

	r2, err := locks.Acquire(context.Background(), 1)
	require.NoError(t, err)
	r2()
}

func TestMutualExclusionUnderContention(t *testing.T) {
	locks := NewBarberLocks()

	var inCritical, max int
	var mu sync.Mutex
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			release, err := locks.Acquire(context.Background(), 7)
			require.NoError(t, err)
			defer release()

			mu.Lock()
			inCritical++
			if inCritical > max {
				max = inCritical
			}
			mu.Unlock()

			time.Sleep(time.Millisecond)

			mu.Lock()
			inCritical--
			mu.Unlock()
		}()
	}

	wg.Wait()
	require.Equal(t, 1, max)
}
