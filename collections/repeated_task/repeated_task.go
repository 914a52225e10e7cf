package repeated_task

import (
	"time"

	"github.com/deso-protocol/go-deadlock"
)

type state int

const (
	stopped state = iota
	running
)

// RepeatedTask calls task every interval on its own goroutine until Stop. Stop
// runs the task one final time so the last values are always flushed.
type RepeatedTask struct {
	state
	mtx deadlock.Mutex

	exitChan    chan struct{}
	doneChan    chan struct{}
	task        func()
	interval    time.Duration
	stopTimeout time.Duration
}

func NewRepeatedTask(task func(), interval time.Duration, stopTimeout time.Duration) *RepeatedTask {
	return &RepeatedTask{
		task:        task,
		interval:    interval,
		stopTimeout: stopTimeout,
	}
}

func (rt *RepeatedTask) Start() {
	rt.mtx.Lock()
	defer rt.mtx.Unlock()

	if rt.state == running {
		return
	}
	rt.exitChan = make(chan struct{})
	rt.doneChan = make(chan struct{})

	go func(exitChan chan struct{}, doneChan chan struct{}) {
		defer close(doneChan)
		ticker := time.NewTicker(rt.interval)
		defer ticker.Stop()
		for {
			select {
			case <-exitChan:
				rt.task()
				return
			case <-ticker.C:
				rt.task()
			}
		}
	}(rt.exitChan, rt.doneChan)
	rt.state = running
}

// Stop returns true if the task did not finish within the stop timeout.
func (rt *RepeatedTask) Stop() (_killed bool) {
	rt.mtx.Lock()
	defer rt.mtx.Unlock()

	if rt.state == stopped {
		return false
	}
	close(rt.exitChan)
	rt.state = stopped

	select {
	case <-rt.doneChan:
		return false
	case <-time.After(rt.stopTimeout):
		return true
	}
}
