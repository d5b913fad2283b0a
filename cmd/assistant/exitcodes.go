package main

import "errors"

// Exit codes of the assistant.
const (
	ExitSuccess     = 0 // Success, including the user leaving with close or exit
	ExitError       = 1 // General error (invalid arguments, reading the input failed)
	ExitConfigError = 2 // Configuration error (unreadable config file, missing seed database)
	ExitSeedError   = 3 // Importing contacts from the seed database failed
)

// exitError carries the exit code for an error returned by a command.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }

func (e *exitError) Unwrap() error { return e.err }

// exitCode returns the exit code for the error returned by the root command.
func exitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *exitError
	if errors.As(err, &exitErr) {
		return exitErr.code
	}
	return ExitError
}
