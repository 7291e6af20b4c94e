package errors

import "errors"

// Common CLI errors with actionable guidance.
var (
	// ErrNotAuthenticated indicates glab has no active GitLab session.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrTokenRejected indicates the GitLab token is invalid or expired.
	ErrTokenRejected = errors.New("gitlab token rejected")

	// ErrNotInGitRepo indicates the command requires a git repository.
	ErrNotInGitRepo = errors.New("not in a git repository")

	// ErrToolMissing indicates a required CLI tool is not installed.
	ErrToolMissing = errors.New("required tool not installed")

	// ErrConfigIncomplete indicates required configuration keys are unset.
	ErrConfigIncomplete = errors.New("configuration incomplete")

	// ErrConnectionFailed indicates the GitLab host is unreachable.
	ErrConnectionFailed = errors.New("connection failed")

	// ErrPermissionDenied indicates insufficient permissions.
	ErrPermissionDenied = errors.New("permission denied")
)
