package taskrunner

import (
	"fmt"
	rtdebug "runtime/debug"
	"sync"

	"github.com/joeycumines/logiface"
)

// panicAbortMessage is the synthetic failure text a supervisor records when
// a task goroutine panics. The panic value and stack will already have been
// written to the sink as free text, by the task goroutine's recover.
const panicAbortMessage = `Aborting task since goroutine panicked`

// startWorker spawns the supervisor goroutine for one worker slot. The
// supervisor pulls tasks from the queue until it drains, running each in a
// nested goroutine so a panic unwinds only the task, then closes the sink
// and exits.
func startWorker(queue *taskQueue, sink *sink, log *logiface.Logger[logiface.Event], wg *sync.WaitGroup) {
	go func() {
		defer wg.Done()
		logger := newTaskLogger(sink)
		for {
			task, ok := queue.pop()
			if !ok {
				break
			}
			name := task.Name()
			log.Debug().Str(`task`, name).Log(`task claimed`)
			logger.switchTask(name)
			if panicked := runTaskIsolated(task, logger); panicked {
				log.Err().Str(`task`, name).Log(`task goroutine panicked`)
				logger.setStatus(Status{Kind: StatusFailed, Err: panicAbortMessage})
			}
		}
		log.Debug().Log(`worker exiting, queue drained`)
		logger.closeSink()
	}()
}

// runTaskIsolated runs the task in its own goroutine and blocks until it
// ends, reporting whether it panicked. The task goroutine itself records
// Running and the terminal status; on panic it writes the panic value and
// stack into the sink (surfaced to the view as a message), leaving the
// synthetic Failed record to the supervisor.
func runTaskIsolated(task Task, logger *taskLogger) (panicked bool) {
	done := make(chan bool, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				fmt.Fprintf(logger, "panic: %v\n\n%s", r, rtdebug.Stack())
				done <- true
			} else {
				done <- false
			}
		}()
		runTask(task, logger)
	}()
	return <-done
}

func runTask(task Task, logger *taskLogger) {
	logger.setStatus(Status{Kind: StatusRunning})
	answer, err := task.Run(logger)
	if err != nil {
		logger.setStatus(Status{Kind: StatusFailed, Err: err.Error()})
	} else {
		logger.setStatus(Status{Kind: StatusFinished, Answer: answer})
	}
}
