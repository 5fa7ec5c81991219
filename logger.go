package taskrunner

import (
	"strings"
)

// taskLogger implements [Logger] on top of a worker's sink. It frames
// status and message records with the envelope tags, while its Write
// method appends raw bytes (free printed text) straight to the sink.
type taskLogger struct {
	sink *sink
}

var _ Logger = (*taskLogger)(nil)

func newTaskLogger(sink *sink) *taskLogger {
	return &taskLogger{sink: sink}
}

func (x *taskLogger) Log(message string) {
	if !strings.HasSuffix(message, "\n") {
		message += "\n"
	}
	x.sendUpdate(TaskMessage(message))
}

// Write appends raw output bytes, which the lexer coalesces into message
// records. It never fails; the returned error is always nil.
func (x *taskLogger) Write(p []byte) (int, error) {
	x.sink.append(p)
	return len(p), nil
}

func (x *taskLogger) setStatus(status Status) {
	x.sendUpdate(status)
}

func (x *taskLogger) sendUpdate(change TaskChange) {
	payload, err := marshalTaskChange(change)
	if err != nil {
		// only reachable via an invalid Status literal, a programmer error
		panic(err)
	}
	x.sink.appendFrame(taskChangeStartTag, payload, taskChangeEndTag)
}

func (x *taskLogger) switchTask(name string) {
	x.sink.appendFrame(nameChangeStartTag, []byte(name), nameChangeEndTag)
}

func (x *taskLogger) closeSink() {
	x.sink.append([]byte(closeSinkTag))
}
