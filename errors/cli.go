package errors

import (
	"fmt"
	"strings"
)

// CLIError wraps an error with user-friendly context and suggestions.
type CLIError struct {
	// Err is the underlying error
	Err error

	// Message is a user-friendly description of what went wrong
	Message string

	// Suggestion is an actionable hint for the user
	Suggestion string

	// Details provides additional context (optional)
	Details string
}

func (e *CLIError) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Message)

	if e.Details != "" {
		sb.WriteString("\n")
		sb.WriteString(e.Details)
	}

	if e.Suggestion != "" {
		sb.WriteString("\n\n")
		sb.WriteString(e.Suggestion)
	}

	return sb.String()
}

func (e *CLIError) Unwrap() error {
	return e.Err
}

// ErrorMessenger provides customizable error messages.
// Implement this interface to customize suggestions for your workflow.
type ErrorMessenger interface {
	// AuthErrorMessage returns the message and suggestion for unauthenticated errors.
	AuthErrorMessage() (message, suggestion string)

	// TokenErrorMessage returns the message and suggestion for rejected tokens.
	TokenErrorMessage() (message, suggestion string)

	// PermissionDeniedMessage returns the message and suggestion for permission errors.
	PermissionDeniedMessage() (message, suggestion string)

	// ConnectionErrorMessage returns the message and suggestion for connection errors.
	// The serverURL parameter is the URL that failed to connect.
	ConnectionErrorMessage(serverURL string) (message, suggestion string)

	// TLSErrorMessage returns the message and suggestion for TLS/certificate errors.
	TLSErrorMessage(serverURL string) (message, suggestion string)

	// TimeoutErrorMessage returns the message and suggestion for timeout errors.
	TimeoutErrorMessage(serverURL string) (message, suggestion string)

	// NotInGitRepoMessage returns the message and suggestion for git repo errors.
	NotInGitRepoMessage() (message, suggestion string)

	// ToolMissingMessage returns the message and suggestion for a missing CLI tool.
	ToolMissingMessage(tool string) (message, suggestion string)

	// ConfigMissingMessage returns the message and suggestion for unset config keys.
	ConfigMissingMessage(keys []string) (message, suggestion string)

	// MRNotFoundMessage returns the message and suggestion for missing merge requests.
	MRNotFoundMessage() (message, suggestion string)
}

// DefaultMessenger provides default error messages.
type DefaultMessenger struct{}

func (m DefaultMessenger) AuthErrorMessage() (string, string) {
	return "You are not logged in to GitLab.", "Run 'glab auth login' to authenticate."
}

func (m DefaultMessenger) TokenErrorMessage() (string, string) {
	return "Your GitLab token was rejected.",
		"Set GITLAB_TOKEN to a valid personal access token with the api scope."
}

func (m DefaultMessenger) PermissionDeniedMessage() (string, string) {
	return "You don't have permission to perform this action.",
		"Check your role on the GitLab project."
}

func (m DefaultMessenger) ConnectionErrorMessage(serverURL string) (string, string) {
	return fmt.Sprintf("Cannot connect to server at %s", serverURL),
		"Check that:\n  - The server is running\n  - The URL is correct\n  - Your network connection is working"
}

func (m DefaultMessenger) TLSErrorMessage(serverURL string) (string, string) {
	return fmt.Sprintf("TLS/certificate error connecting to %s", serverURL),
		"Check that the server certificate is valid."
}

func (m DefaultMessenger) TimeoutErrorMessage(serverURL string) (string, string) {
	return fmt.Sprintf("Connection to %s timed out", serverURL),
		"The server may be overloaded or unreachable.\nTry again in a moment."
}

func (m DefaultMessenger) NotInGitRepoMessage() (string, string) {
	return "This command must be run from within a git repository.",
		"Change into your project directory or set PROJECT_DIR to the repository path."
}

func (m DefaultMessenger) ToolMissingMessage(tool string) (string, string) {
	msg := fmt.Sprintf("The %s CLI is not installed or not on PATH.", tool)
	switch tool {
	case "glab":
		return msg, "Install glab: https://gitlab.com/gitlab-org/cli#installation"
	case "git":
		return msg, "Install git with your system package manager."
	default:
		return msg, "Install it and make sure it is on PATH."
	}
}

func (m DefaultMessenger) ConfigMissingMessage(keys []string) (string, string) {
	return fmt.Sprintf("Required configuration is missing: %s", strings.Join(keys, ", ")),
		"Run 'glflow config set <key> <value>' or export the matching environment variables."
}

func (m DefaultMessenger) MRNotFoundMessage() (string, string) {
	return "Merge request not found.",
		"Check the merge request number and the project path."
}

// WrapConfig configures error wrapping behavior.
type WrapConfig struct {
	Messenger ErrorMessenger
}

// Option configures WrapConfig.
type Option func(*WrapConfig)

// WithMessenger sets a custom error messenger.
func WithMessenger(m ErrorMessenger) Option {
	return func(c *WrapConfig) {
		c.Messenger = m
	}
}

func getMessenger(opts []Option) ErrorMessenger {
	cfg := &WrapConfig{
		Messenger: DefaultMessenger{},
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg.Messenger
}

// WrapAuthError wraps authentication-related errors with helpful guidance.
func WrapAuthError(err error, opts ...Option) error {
	if err == nil {
		return nil
	}

	errStr := strings.ToLower(err.Error())
	messenger := getMessenger(opts)

	// Check for token rejection
	if strings.Contains(errStr, "token") && (strings.Contains(errStr, "expired") || strings.Contains(errStr, "invalid")) {
		msg, suggestion := messenger.TokenErrorMessage()
		return &CLIError{
			Err:        ErrTokenRejected,
			Message:    msg,
			Suggestion: suggestion,
		}
	}

	// Check for unauthenticated
	if strings.Contains(errStr, "unauthenticated") || strings.Contains(errStr, "unauthorized") ||
		strings.Contains(errStr, "401") {
		msg, suggestion := messenger.AuthErrorMessage()
		return &CLIError{
			Err:        ErrNotAuthenticated,
			Message:    msg,
			Suggestion: suggestion,
		}
	}

	// Check for permission denied
	if strings.Contains(errStr, "permission denied") || strings.Contains(errStr, "forbidden") ||
		strings.Contains(errStr, "403") {
		msg, suggestion := messenger.PermissionDeniedMessage()
		return &CLIError{
			Err:        ErrPermissionDenied,
			Message:    msg,
			Suggestion: suggestion,
		}
	}

	return err
}

// WrapConnectionError wraps connection-related errors with helpful guidance.
func WrapConnectionError(err error, serverURL string, opts ...Option) error {
	if err == nil {
		return nil
	}

	errStr := strings.ToLower(err.Error())
	messenger := getMessenger(opts)

	// Check for connection refused
	if strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "no such host") ||
		strings.Contains(errStr, "network is unreachable") ||
		strings.Contains(errStr, "dial tcp") {
		msg, suggestion := messenger.ConnectionErrorMessage(serverURL)
		return &CLIError{
			Err:        ErrConnectionFailed,
			Message:    msg,
			Suggestion: suggestion,
		}
	}

	// Check for TLS/certificate errors
	if strings.Contains(errStr, "certificate") || strings.Contains(errStr, "tls") ||
		strings.Contains(errStr, "x509") {
		msg, suggestion := messenger.TLSErrorMessage(serverURL)
		return &CLIError{
			Err:        ErrConnectionFailed,
			Message:    msg,
			Details:    err.Error(),
			Suggestion: suggestion,
		}
	}

	// Check for timeout
	if strings.Contains(errStr, "timeout") || strings.Contains(errStr, "deadline exceeded") {
		msg, suggestion := messenger.TimeoutErrorMessage(serverURL)
		return &CLIError{
			Err:        ErrConnectionFailed,
			Message:    msg,
			Suggestion: suggestion,
		}
	}

	return err
}

// WrapGitLabError wraps GitLab API errors with helpful guidance.
// Not-found errors get a merge request hint; auth and permission
// failures are delegated to WrapAuthError.
func WrapGitLabError(err error, opts ...Option) error {
	if err == nil {
		return nil
	}

	errStr := strings.ToLower(err.Error())
	messenger := getMessenger(opts)

	// Check for not found
	if strings.Contains(errStr, "not found") || strings.Contains(errStr, "404") {
		msg, suggestion := messenger.MRNotFoundMessage()
		return &CLIError{
			Err:        err,
			Message:    msg,
			Suggestion: suggestion,
		}
	}

	return WrapAuthError(err, opts...)
}

// NewNotInGitRepoError creates an error for commands that require a git repository.
func NewNotInGitRepoError(opts ...Option) error {
	messenger := getMessenger(opts)
	msg, suggestion := messenger.NotInGitRepoMessage()
	return &CLIError{
		Err:        ErrNotInGitRepo,
		Message:    msg,
		Suggestion: suggestion,
	}
}

// NewToolMissingError creates an error for a required CLI tool that is not installed.
func NewToolMissingError(tool string, opts ...Option) error {
	messenger := getMessenger(opts)
	msg, suggestion := messenger.ToolMissingMessage(tool)
	return &CLIError{
		Err:        ErrToolMissing,
		Message:    msg,
		Suggestion: suggestion,
	}
}

// NewConfigIncompleteError creates an error listing the unset configuration keys.
func NewConfigIncompleteError(keys []string, opts ...Option) error {
	messenger := getMessenger(opts)
	msg, suggestion := messenger.ConfigMissingMessage(keys)
	return &CLIError{
		Err:        ErrConfigIncomplete,
		Message:    msg,
		Suggestion: suggestion,
	}
}

// NewNotAuthenticatedError creates an error for unauthenticated users.
func NewNotAuthenticatedError(opts ...Option) error {
	messenger := getMessenger(opts)
	msg, suggestion := messenger.AuthErrorMessage()
	return &CLIError{
		Err:        ErrNotAuthenticated,
		Message:    msg,
		Suggestion: suggestion,
	}
}
