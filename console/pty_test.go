//go:build unix

package console_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/creack/pty"
	taskrunner "github.com/joeycumines/go-taskrunner"
	"github.com/joeycumines/go-taskrunner/console"
	"golang.org/x/term"
)

// Exercises the console against a real terminal device: the probed size
// feeds truncation, and the colored report must reach the master side.
func TestConsole_writesThroughPTY(t *testing.T) {
	ptmx, tty, err := pty.Open()
	if err != nil {
		t.Skipf(`pty unavailable: %v`, err)
	}
	defer func() { _ = ptmx.Close() }()

	if err := pty.Setsize(tty, &pty.Winsize{Rows: 24, Cols: 40}); err != nil {
		t.Fatalf(`setsize: %v`, err)
	}
	columns, _, err := term.GetSize(int(tty.Fd()))
	if err != nil {
		t.Fatalf(`get size: %v`, err)
	}
	if columns != 40 {
		t.Fatalf(`got %d columns, want 40`, columns)
	}

	view := console.New(console.WithWriter(tty), console.WithColor(true), console.WithColumns(columns))
	view.Initialize([]string{`the task`})
	view.Update(taskrunner.TaskUpdate{
		TaskName: `the task`,
		Change:   taskrunner.Status{Kind: taskrunner.StatusRunning},
	})
	_ = tty.Close()

	out, _ := io.ReadAll(ptmx) // read errors once the slave side is gone
	if len(out) == 0 {
		t.Fatalf(`no output reached the pty`)
	}
	if !bytes.Contains(out, []byte(`Pending`)) || !bytes.Contains(out, []byte(`Running`)) {
		t.Errorf(`missing status words in %q`, out)
	}
	if !bytes.Contains(out, []byte("\x1b[1;36m")) {
		t.Errorf(`missing running color sequence in %q`, out)
	}
}
