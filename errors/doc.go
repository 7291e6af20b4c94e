// Package errors provides CLI error patterns with user-friendly messaging.
//
// Core types:
//   - CLIError: Wraps errors with message, suggestion, and details
//   - ErrorMessenger: Interface for customizing error messages
//
// Sentinel errors for common scenarios:
//   - ErrNotAuthenticated: glab has no active GitLab session
//   - ErrTokenRejected: GitLab token is invalid or expired
//   - ErrNotInGitRepo: Command requires a git repository
//   - ErrToolMissing: A required CLI tool is not installed
//   - ErrConfigIncomplete: Required configuration keys are unset
//   - ErrConnectionFailed: GitLab host is unreachable
//   - ErrPermissionDenied: Insufficient permissions
//
// Example usage:
//
//	// Wrap a GitLab API error with default messages
//	if err := listMergeRequests(); err != nil {
//	    return errors.WrapGitLabError(err)
//	}
//
//	// Wrap with custom messages
//	type MyMessenger struct{}
//	func (m MyMessenger) AuthErrorMessage() (string, string) {
//	    return "Please log in.", "Run 'glab auth login' first."
//	}
//
//	wrapped := errors.WrapAuthError(err, errors.WithMessenger(MyMessenger{}))
//
//	// Check error types
//	if errors.IsToolMissingError(err) {
//	    // Tell the user what to install
//	}
package errors
