package console

import (
	"bytes"
	"testing"
)

func TestVT100WriterOutputs(t *testing.T) {
	var w VT100Writer
	w.WriteString(`plain`)
	w.CursorUp(3)
	w.CursorUp(0)  // no-op
	w.CursorUp(-1) // no-op
	w.EraseDown()
	w.SetColor(Green, true)
	w.WriteString(`Finished`)
	w.SetColor(DefaultColor, false)

	var buf bytes.Buffer
	if err := w.Flush(&buf); err != nil {
		t.Fatalf(`flush: %v`, err)
	}
	want := "plain\x1b[3A\x1b[J\x1b[1;32mFinished\x1b[0m"
	if got := buf.String(); got != want {
		t.Errorf("unexpected output\n got %q\nwant %q", got, want)
	}

	if err := w.Flush(&buf); err != nil {
		t.Fatalf(`flush after flush: %v`, err)
	}
	if buf.String() != want {
		t.Errorf(`flush must reset the pending buffer`)
	}
}

func TestVT100WriterColors(t *testing.T) {
	tests := []struct {
		color Color
		bold  bool
		want  string
	}{
		{Blue, true, "\x1b[1;34m"},
		{Cyan, true, "\x1b[1;36m"},
		{Green, false, "\x1b[32m"},
		{Red, true, "\x1b[1;31m"},
		{DefaultColor, true, "\x1b[1;39m"},
		{DefaultColor, false, "\x1b[0m"},
	}
	for _, tc := range tests {
		var w VT100Writer
		w.SetColor(tc.color, tc.bold)
		var buf bytes.Buffer
		if err := w.Flush(&buf); err != nil {
			t.Fatalf(`flush: %v`, err)
		}
		if got := buf.String(); got != tc.want {
			t.Errorf(`SetColor(%v, %v) = %q, want %q`, tc.color, tc.bold, got, tc.want)
		}
	}
}
