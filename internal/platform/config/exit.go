package config

import (
	"errors"
	"fmt"
	"io"
	"os"
)

var (
	osExit           = os.Exit
	stderr io.Writer = os.Stderr
)

// Exitf prints a message to stderr and exits with code 1.
func Exitf(format string, args ...any) {
	fmt.Fprintf(stderr, format+"\n", args...)
	osExit(1)
}

// Exit prints err and exits with the code it carries, or 1. A nil err
// returns without exiting.
func Exit(err error) {
	if err == nil {
		return
	}
	if msg := err.Error(); msg != "" {
		fmt.Fprintln(stderr, msg)
	}
	osExit(ExitCode(err))
}

// ExitCode returns the code of the first error in the chain with an
// ExitCode method, or 1.
func ExitCode(err error) int {
	var coder interface{ ExitCode() int }
	if errors.As(err, &coder) {
		if code := coder.ExitCode(); code != 0 {
			return code
		}
	}
	return 1
}
