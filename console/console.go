// Package console implements the canonical terminal view for the task
// runner: one region per task, rewritten in place as updates arrive.
package console

import (
	"fmt"
	"io"
	"os"
	"strings"

	taskrunner "github.com/joeycumines/go-taskrunner"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	runewidth "github.com/mattn/go-runewidth"
	"golang.org/x/term"
)

// DefaultMaxLinesPerLog caps the visible lines per task while it is
// pending or running: one header line plus a tail of recent log lines.
const DefaultMaxLinesPerLog = 5

const bodyIndent = `  `

type (
	// Console renders task updates as a multi-line terminal report. Each
	// task occupies a stable region: a bold colored status word and name,
	// followed by a body of recent output. Every update erases exactly the
	// lines drawn previously and reprints the whole block.
	//
	// Instances must be created with [New], and must only be used from one
	// goroutine, which [taskrunner.TaskRunner.Run] guarantees.
	Console struct {
		out      io.Writer
		writer   VT100Writer
		columns  int
		color    bool
		maxLines int
		logs     []*taskLog
		drawn    int
	}

	// Option configures a Console, see the package-level functions.
	Option func(c *config)

	config struct {
		out      io.Writer
		columns  int
		color    *bool
		maxLines int
	}

	taskLog struct {
		name   string
		status taskrunner.Status
		lines  string
	}

	statusText struct {
		color      Color
		characters string
	}
)

var (
	pendingText  = statusText{color: Blue, characters: `Pending`}
	runningText  = statusText{color: Cyan, characters: `Running`}
	finishedText = statusText{color: Green, characters: `Finished`}
	failedText   = statusText{color: Red, characters: `Failed`}
)

var _ taskrunner.View = (*Console)(nil)

// WithWriter renders to out instead of standard output. It also disables
// the tty probing that standard output gets by default; combine with
// WithColor and WithColumns as needed.
func WithWriter(out io.Writer) Option {
	return func(c *config) {
		c.out = out
	}
}

// WithColumns fixes the terminal width used to truncate lines, if
// positive. Zero (the default, unless probed from the tty) disables
// truncation.
func WithColumns(columns int) Option {
	return func(c *config) {
		c.columns = columns
	}
}

// WithColor overrides color output, which otherwise follows whether
// standard output is a terminal.
func WithColor(color bool) Option {
	return func(c *config) {
		c.color = &color
	}
}

// WithMaxLinesPerLog overrides DefaultMaxLinesPerLog, if positive.
func WithMaxLinesPerLog(maxLines int) Option {
	return func(c *config) {
		c.maxLines = maxLines
	}
}

// New initializes a Console. By default it writes to standard output
// (wrapped for ANSI support on Windows), with color and width detection
// applied when standard output is a terminal.
func New(options ...Option) *Console {
	var c config
	for _, o := range options {
		o(&c)
	}

	console := Console{
		out:      c.out,
		columns:  c.columns,
		maxLines: c.maxLines,
	}
	if console.maxLines <= 0 {
		console.maxLines = DefaultMaxLinesPerLog
	}

	if console.out == nil {
		console.out = colorable.NewColorableStdout()
		fd := os.Stdout.Fd()
		if isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd) {
			console.color = true
			if console.columns == 0 {
				if width, _, err := term.GetSize(int(fd)); err == nil {
					console.columns = width
				}
			}
		}
	}
	if c.color != nil {
		console.color = *c.color
	}

	return &console
}

// Initialize creates one pending record per task and prints the initial
// block.
func (x *Console) Initialize(names []string) {
	x.logs = make([]*taskLog, len(names))
	for i, name := range names {
		x.logs[i] = &taskLog{name: name, status: taskrunner.Status{Kind: taskrunner.StatusPending}}
	}
	x.drawn = 0
	x.repaint()
}

// Update applies a single change and redraws the report, erasing exactly
// the lines of the previous paint. It panics on an unknown task name,
// which indicates a bug in the task layer.
func (x *Console) Update(update taskrunner.TaskUpdate) {
	log := x.matchingLog(update.TaskName)
	x.writer.CursorUp(x.drawn)
	x.writer.EraseDown()
	switch change := update.Change.(type) {
	case taskrunner.TaskMessage:
		log.lines += string(change)
	case taskrunner.Status:
		log.status = change
	}
	x.repaint()
}

func (x *Console) matchingLog(name string) *taskLog {
	for _, log := range x.logs {
		if log.name == name {
			return log
		}
	}
	panic(fmt.Sprintf(`console: update for unknown task %q`, name))
}

func (x *Console) repaint() {
	total := 0
	for _, log := range x.logs {
		x.printTaskLog(log)
		total += x.visibleLines(log)
	}
	x.drawn = total
	if err := x.writer.Flush(x.out); err != nil {
		panic(fmt.Sprintf(`console: terminal write failed: %v`, err))
	}
}

func statusTextFor(kind taskrunner.StatusKind) statusText {
	switch kind {
	case taskrunner.StatusRunning:
		return runningText
	case taskrunner.StatusFinished:
		return finishedText
	case taskrunner.StatusFailed:
		return failedText
	default:
		return pendingText
	}
}

func (x *Console) printTaskLog(log *taskLog) {
	text := statusTextFor(log.status.Kind)
	if x.color {
		x.writer.SetColor(text.color, true)
	}
	x.writer.WriteString(text.characters)
	if x.color {
		x.writer.SetColor(DefaultColor, false)
	}

	header := ` ` + log.name
	if log.status.Kind == taskrunner.StatusFinished && log.status.Answer != nil {
		header += `: ` + *log.status.Answer
	}
	x.writer.WriteString(x.truncate(header, x.columns-len(text.characters)))
	x.writer.WriteString("\n")

	switch log.status.Kind {
	case taskrunner.StatusFinished:
	case taskrunner.StatusFailed:
		for _, line := range splitLines(log.lines) {
			x.printBodyLine(line)
		}
		for _, line := range splitLines(log.status.Err) {
			x.printBodyLine(line)
		}
	default:
		lines := splitLines(log.lines)
		if tail := x.maxLines - 1; len(lines) > tail {
			lines = lines[len(lines)-tail:]
		}
		for _, line := range lines {
			x.printBodyLine(line)
		}
	}
}

func (x *Console) printBodyLine(line string) {
	x.writer.WriteString(bodyIndent)
	x.writer.WriteString(x.truncate(line, x.columns-len(bodyIndent)))
	x.writer.WriteString("\n")
}

// truncate limits line to the given display width, so one logical line
// never wraps, keeping the erase arithmetic exact. Unknown width (columns
// not probed or configured) disables truncation.
func (x *Console) truncate(line string, width int) string {
	if x.columns <= 0 || width <= 0 || runewidth.StringWidth(line) <= width {
		return line
	}
	return runewidth.Truncate(line, width, `…`)
}

func (x *Console) visibleLines(log *taskLog) int {
	switch log.status.Kind {
	case taskrunner.StatusFinished:
		return 1
	case taskrunner.StatusFailed:
		return 1 + countLines(log.lines) + countLines(log.status.Err)
	default:
		return min(1+countLines(log.lines), x.maxLines)
	}
}

// countLines counts newline-terminated lines, with an unterminated final
// segment counting as one line.
func countLines(s string) int {
	return len(splitLines(s))
}

func splitLines(s string) []string {
	if s == `` {
		return nil
	}
	s = strings.TrimSuffix(s, "\n")
	return strings.Split(s, "\n")
}
