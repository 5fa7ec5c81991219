// Package taskrunner executes a batch of named tasks on a fixed-size pool
// of worker goroutines, and multiplexes each worker's output and status
// records onto a per-worker byte sink, which the main goroutine drains and
// delivers to a [View], e.g. the live terminal report implemented by
// [github.com/joeycumines/go-taskrunner/console].
//
// Tasks are drawn from a single shared FIFO, so submission order is
// preserved per worker, and a run ends once the queue drains. A panic
// inside a task aborts only that task; the worker survives, reports the
// failure, and moves on to the next task.
package taskrunner
