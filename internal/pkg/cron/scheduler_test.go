package cron

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestScheduler_RunOnceRunsEveryJob(t *testing.T) {
	s := NewScheduler()
	var a, b int32
	s.AddJob("a", time.Hour, func(ctx context.Context) error {
		atomic.AddInt32(&a, 1)
		return nil
	})
	s.AddJob("b", time.Hour, func(ctx context.Context) error {
		atomic.AddInt32(&b, 1)
		return errors.New("boom")
	})

	s.RunOnce(context.Background())

	assert.Equal(t, int32(1), atomic.LoadInt32(&a))
	assert.Equal(t, int32(1), atomic.LoadInt32(&b))
}

func TestScheduler_StartRunsImmediatelyAndStopWaits(t *testing.T) {
	s := NewScheduler()
	ran := make(chan struct{}, 1)
	var cancelled atomic.Bool

	s.AddJob("tick", time.Hour, func(ctx context.Context) error {
		ran <- struct{}{}
		<-ctx.Done()
		cancelled.Store(true)
		return nil
	})

	s.Start()

	select {
	case <-ran:
	case <-time.After(time.Second):
		t.Fatal("job did not run on start")
	}

	s.Stop()
	assert.True(t, cancelled.Load())
}
