package taskrunner

import (
	"io"
)

type (
	// Task is a unit of work with a stable name. Tasks are executed at most
	// once, on an arbitrary worker goroutine.
	//
	// Names within one batch must be non-empty and unique; the behavior is
	// undefined otherwise.
	Task interface {
		// Name returns the task's stable identifier, used to attribute
		// output and status updates.
		Name() string

		// Run performs the work. A nil answer indicates success without a
		// result value. A non-nil error marks the task failed, with
		// err.Error() as the failure text.
		//
		// Run may log lines via logger, and may write raw output bytes via
		// the logger's [io.Writer]; both surface in the view, interleaved
		// in emission order.
		Run(logger Logger) (answer *string, err error)
	}

	// Logger is handed to a running task. It is only valid for the duration
	// of that task's Run call.
	//
	// The embedded [io.Writer] is the task's captured output stream: raw
	// bytes written to it are delivered to the view as message records,
	// preserving their order relative to Log calls.
	Logger interface {
		// Log appends message as one line of the task's log. A trailing
		// newline is added if not already present.
		Log(message string)

		io.Writer
	}

	// View consumes typed task updates. Implementations are driven
	// exclusively from the goroutine that called [TaskRunner.Run], and so
	// need no internal synchronization.
	View interface {
		// Initialize is called once, before any update, with the names of
		// all tasks in submission order.
		Initialize(names []string)

		// Update delivers a single change to a known task. Updates for a
		// given task arrive in the order the task produced them.
		Update(update TaskUpdate)
	}

	// TaskUpdate attributes a single change to a named task.
	TaskUpdate struct {
		TaskName string
		Change   TaskChange
	}

	// TaskChange is one change to a task, either a [TaskMessage] or a
	// [Status].
	TaskChange interface {
		isTaskChange()
	}

	// TaskMessage is a chunk of task output, either a logged line or raw
	// captured output bytes.
	TaskMessage string

	// StatusKind enumerates the task lifecycle states.
	StatusKind uint8

	// Status is a point in the task lifecycle. It progresses
	// Pending -> Running -> (Finished | Failed), and never regresses.
	Status struct {
		Kind StatusKind

		// Answer is the optional result value, valid only for
		// StatusFinished.
		Answer *string

		// Err is the failure text, valid only for StatusFailed.
		Err string
	}
)

const (
	StatusPending StatusKind = iota
	StatusRunning
	StatusFinished
	StatusFailed
)

func (TaskMessage) isTaskChange() {}

func (Status) isTaskChange() {}

// String returns the status word as rendered by views.
func (k StatusKind) String() string {
	switch k {
	case StatusPending:
		return `Pending`
	case StatusRunning:
		return `Running`
	case StatusFinished:
		return `Finished`
	case StatusFailed:
		return `Failed`
	default:
		return `Unknown`
	}
}

// Terminal returns true for StatusFinished and StatusFailed, the states
// with no outgoing transitions.
func (k StatusKind) Terminal() bool {
	return k == StatusFinished || k == StatusFailed
}
