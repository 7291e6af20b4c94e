package glflow

import (
	"errors"
	"fmt"
	"strings"
)

// Configuration errors.
var (
	// ErrConfigMissing indicates a required setting is absent. Operations
	// check configuration before running any external command.
	ErrConfigMissing = errors.New("GITLAB_USERNAME and PROJECT_DIR must be set")
)

// Repository state errors.
var (
	// ErrNoCurrentBranch indicates HEAD is detached or the branch name
	// could not be determined.
	ErrNoCurrentBranch = errors.New("could not determine current branch")

	// ErrAlreadyOnTarget indicates the current branch is the rebase target
	// itself, so there is nothing to rebase.
	ErrAlreadyOnTarget = errors.New("already on target branch")
)

// External tool errors.
var (
	// ErrToolUnavailable indicates an executable was not found on PATH.
	ErrToolUnavailable = errors.New("executable not found")

	// ErrCommandTimeout indicates a command was killed after exceeding its
	// deadline.
	ErrCommandTimeout = errors.New("command timed out")
)

// CommandError wraps a failed external command together with its captured
// stderr so callers can relay the tool's own diagnostics verbatim.
type CommandError struct {
	Command  string // executable name, e.g. "git"
	Args     []string
	ExitCode int
	Stderr   string
	Err      error // underlying cause, if any (start failure, timeout)
}

// Error returns the captured stderr when present, since the tool's own
// message is more useful than the exit status.
func (e *CommandError) Error() string {
	if s := strings.TrimSpace(e.Stderr); s != "" {
		return s
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Command, e.Err)
	}
	return fmt.Sprintf("%s exited with status %d", e.Command, e.ExitCode)
}

// Unwrap returns the underlying error for errors.Is/As checks.
func (e *CommandError) Unwrap() error {
	return e.Err
}

// CommandStderr extracts the stderr text from a command failure for verbatim
// relay. It falls back to the error's own message when no stderr was captured.
func CommandStderr(err error) string {
	if err == nil {
		return ""
	}
	var ce *CommandError
	if errors.As(err, &ce) {
		if s := strings.TrimSpace(ce.Stderr); s != "" {
			return s
		}
	}
	return err.Error()
}
