package taskrunner

import (
	"runtime"
	"sync"
	"time"

	"github.com/joeycumines/logiface"
)

type (
	// TaskRunner executes batches of tasks. The zero value is usable; see
	// the field documentation for defaults.
	TaskRunner struct {
		// ThreadCount is the number of worker goroutines.
		// **Defaults to runtime.NumCPU(), if <= 0.**
		ThreadCount int

		// ViewUpdatePeriod is how long the view driver sleeps between
		// polling passes over the worker sinks. If <= 0, the driver drains
		// continuously, without sleeping.
		ViewUpdatePeriod time.Duration

		// Log receives engine diagnostics. It may be nil (disabled), and is
		// entirely separate from the task output delivered to the view.
		Log *logiface.Logger[logiface.Event]
	}

	// sinkState pairs a worker's sink with the driver-local name of the
	// task it is currently attributing records to.
	sinkState struct {
		sink        *sink
		currentTask string
	}
)

// Run executes every task in the batch, delivering output and status
// updates to view. It blocks until all tasks have reached a terminal
// status, every sink has closed, and all worker goroutines have exited;
// it never fails. An empty batch returns immediately, without touching
// the view.
//
// Run must not be called concurrently on the same view.
func (x *TaskRunner) Run(tasks []Task, view View) {
	if len(tasks) == 0 {
		return
	}

	names := make([]string, len(tasks))
	for i, task := range tasks {
		names[i] = task.Name()
	}
	view.Initialize(names)

	threads := x.ThreadCount
	if threads <= 0 {
		threads = runtime.NumCPU()
	}
	x.Log.Debug().Int(`tasks`, len(tasks)).Int(`threads`, threads).Log(`run started`)

	queue := newTaskQueue(tasks)
	var wg sync.WaitGroup
	wg.Add(threads)
	live := make([]*sinkState, threads)
	for i := range live {
		live[i] = &sinkState{sink: newSink()}
		startWorker(queue, live[i].sink, x.Log, &wg)
	}

	for len(live) != 0 {
		if x.ViewUpdatePeriod > 0 {
			time.Sleep(x.ViewUpdatePeriod)
		} else {
			runtime.Gosched()
		}
		remaining := live[:0]
		for _, state := range live {
			if state.sendChangesToView(view) {
				remaining = append(remaining, state)
			}
		}
		live = remaining
	}

	wg.Wait()
	x.Log.Debug().Log(`run finished`)
}

// sendChangesToView drains the sink and dispatches every recovered record,
// returning false once the sink's close marker has been seen.
func (x *sinkState) sendChangesToView(view View) (alive bool) {
	alive = true
	for _, c := range parseChanges(x.sink.drain()) {
		switch {
		case c.Name != nil:
			x.currentTask = *c.Name
		case c.Close:
			alive = false
		default:
			if x.currentTask == `` {
				// a task change can only follow a name change; see startWorker
				panic(`taskrunner: task change received before any name change`)
			}
			view.Update(TaskUpdate{TaskName: x.currentTask, Change: c.Task})
		}
	}
	return
}
