package errors

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/julianstephens/habitus/internal/logger"
)

// ErrNotApplied marks a request the domain rules turned down: a duplicate
// habit name, a reward over its limit, not enough stars. Nothing was written.
var ErrNotApplied = stderrors.New("not applied")

// NotApplied wraps ErrNotApplied with the reason shown to the user.
func NotApplied(format string, args ...interface{}) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrNotApplied)
}

// IsNotApplied reports whether err was produced by NotApplied
func IsNotApplied(err error) bool {
	return stderrors.Is(err, ErrNotApplied)
}

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}

// Fatalf logs and formats an error message, then exits the program with exit code 1
func Fatalf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	logger.Error("Command execution failed", "error", msg)
	fmt.Fprintf(os.Stderr, "%s\n", Formatf(format, args...))
	os.Exit(1)
}
