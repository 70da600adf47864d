package main

import (
	"errors"
	"fmt"
	"os"
)

// version is injected at build time via -ldflags
var version = "dev"

func main() {
	if err := newRootCommand().Execute(); err != nil {
		var exitErr *exitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// exitError carries a process exit code out of a RunE handler. The message
// has already been printed when it is returned.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err != nil {
		return e.err.Error()
	}
	return fmt.Sprintf("exit status %d", e.code)
}

func (e *exitError) Unwrap() error {
	return e.err
}
