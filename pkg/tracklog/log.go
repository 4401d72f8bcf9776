// Package tracklog is the logging surface shared by the generator, progress,
// and CLI packages: plain leveled output plus an optional mirror to
// a log file, and a structured line for reporting solver progress.
package tracklog

import (
	"fmt"
	"os"
)

var (
	// VerboseEnabled gates Verbose and the structured solve-progress line.
	VerboseEnabled = false
	// LogFile additionally mirrors every logged line to this path when set.
	LogFile = ""
)

func emit(w *os.File, message string) {
	fmt.Fprintln(w, message)
	if LogFile == "" {
		return
	}
	file, err := os.OpenFile(LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return
	}
	defer file.Close()
	fmt.Fprintln(file, message)
}

// Info logs a message unconditionally, to stdout.
func Info(format string, args ...interface{}) {
	emit(os.Stdout, fmt.Sprintf(format, args...))
}

// Verbose logs a message only when VerboseEnabled is set.
func Verbose(format string, args ...interface{}) {
	if VerboseEnabled {
		emit(os.Stdout, "[VERBOSE] "+fmt.Sprintf(format, args...))
	}
}

// Warning logs a warning unconditionally, to stdout.
func Warning(format string, args ...interface{}) {
	emit(os.Stdout, "WARNING: "+fmt.Sprintf(format, args...))
}

// Error logs an error unconditionally, to stderr.
func Error(format string, args ...interface{}) {
	emit(os.Stderr, "ERROR: "+fmt.Sprintf(format, args...))
}

// SolveProgress logs one structured search-progress line: which algorithm
// is running, how many states it has explored, and how much of the grid is
// currently filled. Gated behind VerboseEnabled like Verbose, since a long
// search can call this far more often than a human wants to read unless
// they asked for verbose output.
func SolveProgress(algo string, iterations uint64, filled, total int) {
	Verbose("algo=%s iterations=%d filled=%d/%d", algo, iterations, filled, total)
}
