package repeated_task

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRepeatedTask(t *testing.T) {
	require := require.New(t)

	// Test that the task is run repeatedly
	var repeatCounter atomic.Int32
	task := func() {
		repeatCounter.Add(1)
	}

	repeatedTask := NewRepeatedTask(task, 2*time.Millisecond, 100*time.Millisecond)
	repeatedTask.Start()
	// Starting twice is a no-op.
	repeatedTask.Start()
	totalWait := 0
	for {
		if totalWait > 1000 {
			t.Fatalf("Task is stuck")
		}
		if repeatCounter.Load() > 5 {
			break
		}
		time.Sleep(1 * time.Millisecond)
		totalWait++
	}
	require.False(repeatedTask.Stop())

	// Stop flushes once more and nothing runs afterwards.
	afterStop := repeatCounter.Load()
	time.Sleep(10 * time.Millisecond)
	require.Equal(afterStop, repeatCounter.Load())

	// Stopping twice is a no-op.
	require.False(repeatedTask.Stop())
}

func TestRepeatedTaskFinalRun(t *testing.T) {
	var runs atomic.Int32
	repeatedTask := NewRepeatedTask(func() {
		runs.Add(1)
	}, time.Hour, 100*time.Millisecond)

	repeatedTask.Start()
	require.False(t, repeatedTask.Stop())
	require.Equal(t, int32(1), runs.Load())
}

func TestRepeatedTaskStopTimeout(t *testing.T) {
	release := make(chan struct{})
	repeatedTask := NewRepeatedTask(func() {
		<-release
	}, time.Hour, 5*time.Millisecond)

	repeatedTask.Start()
	require.True(t, repeatedTask.Stop())
	close(release)
}
