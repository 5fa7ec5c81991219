package console

import (
	"io"
	"strconv"
)

// Color is a terminal foreground color, applied to status words.
type Color uint8

const (
	DefaultColor Color = iota
	Blue
	Cyan
	Green
	Red
)

func (c Color) sgr() string {
	switch c {
	case Blue:
		return `34`
	case Cyan:
		return `36`
	case Green:
		return `32`
	case Red:
		return `31`
	default:
		return `39`
	}
}

// VT100Writer accumulates text and escape sequences, so a repaint can be
// flushed to the terminal in one write. The zero value is ready to use.
type VT100Writer struct {
	buffer []byte
}

// WriteString appends plain text to the pending output.
func (w *VT100Writer) WriteString(s string) {
	w.buffer = append(w.buffer, s...)
}

// CursorUp moves the cursor up n lines. It is a no-op for n <= 0.
func (w *VT100Writer) CursorUp(n int) {
	if n <= 0 {
		return
	}
	w.buffer = append(w.buffer, 0x1b, '[')
	w.buffer = strconv.AppendInt(w.buffer, int64(n), 10)
	w.buffer = append(w.buffer, 'A')
}

// EraseDown clears from the cursor to the end of the screen.
func (w *VT100Writer) EraseDown() {
	w.buffer = append(w.buffer, 0x1b, '[', 'J')
}

// SetColor sets the foreground color, optionally bold. DefaultColor with
// bold false resets all display attributes.
func (w *VT100Writer) SetColor(fg Color, bold bool) {
	w.buffer = append(w.buffer, 0x1b, '[')
	if fg == DefaultColor && !bold {
		w.buffer = append(w.buffer, '0')
	} else {
		if bold {
			w.buffer = append(w.buffer, '1', ';')
		}
		w.buffer = append(w.buffer, fg.sgr()...)
	}
	w.buffer = append(w.buffer, 'm')
}

// Flush writes the pending output to out and resets the buffer. The buffer
// is retained for reuse; a failed write still discards the pending bytes.
func (w *VT100Writer) Flush(out io.Writer) error {
	_, err := out.Write(w.buffer)
	w.buffer = w.buffer[:0]
	return err
}
