// Package debug provides internal trace logging for the task runner,
// disabled unless opted into via an environment variable.
package debug

import (
	"log"
	"os"
)

const (
	// envEnableLog enables file-backed debug logging when set to a
	// non-empty value, e.g. TASKRUNNER_ENABLE_LOG=true.
	envEnableLog = `TASKRUNNER_ENABLE_LOG`

	logFileName = `taskrunner-debug.log`
)

var (
	logger  *log.Logger
	logfile *os.File
)

func init() {
	loadLoggerEnv()
}

func loadLoggerEnv() {
	if os.Getenv(envEnableLog) == `` {
		return
	}
	f, err := os.OpenFile(logFileName, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return
	}
	logfile = f
	logger = log.New(logfile, ``, log.LstdFlags|log.Lmicroseconds)
}

// Log writes msg to the debug log file, if logging is enabled.
func Log(msg string) {
	if logger == nil {
		return
	}
	logger.Println(msg)
}

// Close releases the debug log file, if one was opened.
func Close() {
	if logfile == nil {
		return
	}
	_ = logfile.Close()
	logfile = nil
	logger = nil
}
