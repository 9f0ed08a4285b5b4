// Package exitcode defines exit codes for the CLI.
package exitcode

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, empty text, unknown task).
	UserError = 1

	// StorageError indicates the store could not be opened or a change may
	// not have been saved.
	StorageError = 2
)
