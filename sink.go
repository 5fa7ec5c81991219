package taskrunner

import (
	"sync"
)

// sink is the byte buffer shared between one worker goroutine and the view
// driver. The worker only appends; the driver drains and clears. Logged
// lines, status frames, and raw captured output all share the one buffer so
// their relative order is preserved, e.g.:
//
//	fmt.Fprintln(logger, "Hello,")
//	logger.Log("World!")
//	return &answer, nil
type sink struct {
	mu  sync.Mutex
	buf []byte
}

func newSink() *sink {
	return &sink{}
}

// append adds raw bytes (free printed text) to the buffer.
func (s *sink) append(p []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.buf = append(s.buf, p...)
}

// appendFrame writes a complete frame (tag, payload, tag) atomically, so
// the driver can never observe a partial frame.
func (s *sink) appendFrame(start string, payload []byte, end string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.buf = append(s.buf, start...)
	s.buf = append(s.buf, payload...)
	s.buf = append(s.buf, end...)
}

// drain atomically takes the accumulated bytes, leaving the buffer empty.
// It returns nil when nothing was written since the last drain.
func (s *sink) drain() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.buf) == 0 {
		return nil
	}
	taken := s.buf
	s.buf = nil
	return taken
}
