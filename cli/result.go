package cli

// CommandError carries an exit code from a failed command back to main.
//
// Commands render their own diagnostics (the styled snapshot error listing,
// import warnings) before returning, so the error itself has no message worth
// printing; main only inspects the code. Exit handling stays in one place
// instead of each command calling os.Exit mid-run and skipping deferred
// telemetry reports.
type CommandError struct {
	exitCode int
}

// NewCommandError creates a CommandError with the given exit code.
func NewCommandError(exitCode int) *CommandError {
	return &CommandError{exitCode: exitCode}
}

func (e *CommandError) Error() string {
	return "command failed"
}

// ExitCode returns the process exit code the command requested.
func (e *CommandError) ExitCode() int {
	return e.exitCode
}
