package errors

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/julianstephens/cloudcontrol/internal/logger"
)

// ErrNotInitialized is returned when a command needs storage that has not been created yet.
var ErrNotInitialized = errors.New("storage not initialized, run 'cloudcontrol init' first")

// ErrCancelled is returned when the user declines a confirmation prompt.
var ErrCancelled = errors.New("cancelled")

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...any) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Report logs err and writes it to w. It returns the process exit code.
func Report(w io.Writer, err error) int {
	if err == nil {
		return 0
	}
	if errors.Is(err, ErrCancelled) {
		fmt.Fprintln(w, "Cancelled.")
		return 0
	}
	logger.Error("Command execution failed", "error", err)
	fmt.Fprintln(w, Format(err))
	return 1
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if code := Report(os.Stderr, err); code != 0 {
		os.Exit(code)
	}
}

// Fatalf logs and formats an error message, then exits the program with exit code 1
func Fatalf(format string, args ...any) {
	Fatal(fmt.Errorf(format, args...))
}
