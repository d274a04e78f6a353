package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type countingJob struct{ calls atomic.Int32 }

func (j *countingJob) RunAllCompanies(context.Context) (int, error) {
	j.calls.Add(1)
	return 1, nil
}

func TestTicker_RunsUntilCancelled(t *testing.T) {
	job := &countingJob{}
	ctx, cancel := context.WithCancel(context.Background())
	tk := NewTicker(job, 5*time.Millisecond, nil)
	tk.Start(ctx)

	assert.Eventually(t, func() bool { return job.calls.Load() >= 2 }, time.Second, time.Millisecond)
	cancel()
	tk.Wait()

	after := job.calls.Load()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, after, job.calls.Load())
}
