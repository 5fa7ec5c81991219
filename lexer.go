package taskrunner

import (
	"bytes"

	"github.com/joeycumines/go-taskrunner/debug"
)

type (
	// change is one record recovered from a sink's byte stream. Exactly one
	// of the fields is set.
	change struct {
		// Task is a task change (status or message), attributed by the
		// driver to the sink's current task.
		Task TaskChange
		// Name marks a task switch on the writing worker.
		Name *string
		// Close marks the end of the sink; nothing follows it.
		Close bool
	}
)

// parseChanges scans a drained buffer left to right, recovering framed
// records and coalescing any run of unframed bytes into a single message,
// emitted before the frame that follows it (or at end of buffer).
//
// An opening tag with no matching closing tag in the buffer is treated as
// free text rather than a parse failure; frames are appended atomically, so
// this only happens when task output happens to contain a literal tag.
func parseChanges(buf []byte) []change {
	var changes []change
	var text []byte

	flushText := func() {
		if len(text) != 0 {
			changes = append(changes, change{Task: TaskMessage(text)})
			text = nil
		}
	}

	for len(buf) != 0 {
		start, tag := nextOpener(buf)
		if start < 0 {
			text = append(text, buf...)
			break
		}
		text = append(text, buf[:start]...)
		buf = buf[start:]

		switch tag {
		case closeSinkTag:
			flushText()
			changes = append(changes, change{Close: true})
			buf = buf[len(closeSinkTag):]

		case taskChangeStartTag:
			payload, rest, ok := framed(buf, taskChangeStartTag, taskChangeEndTag)
			if !ok {
				// unterminated; degrade to free text
				text = append(text, taskChangeStartTag...)
				buf = buf[len(taskChangeStartTag):]
				continue
			}
			task, err := unmarshalTaskChange(payload)
			if err != nil {
				debug.Log("treating malformed task change frame as free text: " + err.Error())
				text = append(text, buf[:len(buf)-len(rest)]...)
				buf = rest
				continue
			}
			flushText()
			changes = append(changes, change{Task: task})
			buf = rest

		case nameChangeStartTag:
			name, rest, ok := framed(buf, nameChangeStartTag, nameChangeEndTag)
			if !ok {
				text = append(text, nameChangeStartTag...)
				buf = buf[len(nameChangeStartTag):]
				continue
			}
			flushText()
			s := string(name)
			changes = append(changes, change{Name: &s})
			buf = rest
		}
	}

	flushText()
	return changes
}

// nextOpener returns the index and tag of the earliest opening tag in buf,
// or -1 when buf contains only free text.
func nextOpener(buf []byte) (int, string) {
	start, tag := -1, ``
	for _, candidate := range [...]string{taskChangeStartTag, nameChangeStartTag, closeSinkTag} {
		if i := bytes.Index(buf, []byte(candidate)); i >= 0 && (start < 0 || i < start) {
			start, tag = i, candidate
		}
	}
	return start, tag
}

// framed extracts the inner bytes of a frame known to start at buf[0],
// returning the remainder after the closing tag. ok is false when the
// closing tag is absent.
func framed(buf []byte, startTag, endTag string) (inner, rest []byte, ok bool) {
	inner = buf[len(startTag):]
	end := bytes.Index(inner, []byte(endTag))
	if end < 0 {
		return nil, nil, false
	}
	return inner[:end], inner[end+len(endTag):], true
}
