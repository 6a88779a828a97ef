package workerpool_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"waroengpos/pkg/workerpool"
)

func TestSubmitRunsTasks(t *testing.T) {
	pool := workerpool.New(4)
	defer pool.Shutdown()

	var done atomic.Int32
	for i := 0; i < 4; i++ {
		require.NoError(t, pool.Submit(func() { done.Add(1) }))
	}

	deadline := time.Now().Add(time.Second)
	for done.Load() < 4 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	assert.EqualValues(t, 4, done.Load())
}

func TestSubmitBackpressure(t *testing.T) {
	pool := workerpool.New(1)
	defer pool.Shutdown()

	block := make(chan struct{})
	// Occupy the single worker, then fill the queue (capacity 2).
	require.NoError(t, pool.Submit(func() { <-block }))
	time.Sleep(20 * time.Millisecond)
	require.NoError(t, pool.Submit(func() {}))
	require.NoError(t, pool.Submit(func() {}))

	err := pool.Submit(func() {})
	assert.ErrorIs(t, err, workerpool.ErrPoolFull)

	close(block)
}

func TestSubmitAfterShutdown(t *testing.T) {
	pool := workerpool.New(2)
	pool.Shutdown()

	assert.ErrorIs(t, pool.Submit(func() {}), workerpool.ErrPoolClosed)
	assert.ErrorIs(t, pool.SubmitWait(func() {}), workerpool.ErrPoolClosed)
}

func TestPanicDoesNotKillWorker(t *testing.T) {
	pool := workerpool.New(1)
	defer pool.Shutdown()

	require.NoError(t, pool.SubmitWait(func() { panic("boom") }))

	var ran atomic.Bool
	require.NoError(t, pool.SubmitWait(func() { ran.Store(true) }))

	deadline := time.Now().Add(time.Second)
	for !ran.Load() && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	assert.True(t, ran.Load())
}
