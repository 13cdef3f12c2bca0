package workerpool

import (
	"context"
	"errors"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPool_RunsAllTasks(t *testing.T) {
	ctx := context.Background()
	p := New(4, 0)
	results := p.Run(ctx)

	var ran atomic.Int32
	go func() {
		for i := 0; i < 50; i++ {
			key := strconv.Itoa(i)
			p.Submit(ctx, Task{Key: key, Run: func(context.Context) error {
				ran.Add(1)
				if key == "7" {
					return errors.New("boom")
				}
				return nil
			}})
		}
		p.Close()
	}()

	failed := 0
	total := 0
	for r := range results {
		total++
		if r.Err != nil {
			failed++
			assert.Equal(t, "7", r.Key)
		}
	}
	assert.Equal(t, 50, total)
	assert.Equal(t, 1, failed)
	assert.Equal(t, int32(50), ran.Load())
}

func TestPool_CancelStopsWorkers(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	p := New(2, 0)
	results := p.Run(ctx)
	cancel()

	select {
	case _, ok := <-results:
		if ok {
			for range results {
			}
		}
	case <-time.After(2 * time.Second):
		t.Fatal("results channel not closed after cancel")
	}
	assert.False(t, p.Submit(ctx, Task{Run: func(context.Context) error { return nil }}))
}

func TestPool_RateLimit(t *testing.T) {
	ctx := context.Background()
	p := New(3, 10)
	p.SetRateLimit(50)
	results := p.Run(ctx)

	start := time.Now()
	for i := 0; i < 5; i++ {
		require.True(t, p.Submit(ctx, Task{Run: func(context.Context) error { return nil }}))
	}
	p.Close()
	for range results {
	}
	assert.GreaterOrEqual(t, time.Since(start), 80*time.Millisecond)
}

func TestPool_CloseTwice(t *testing.T) {
	p := New(1, 0)
	p.Close()
	assert.NotPanics(t, p.Close)
}
