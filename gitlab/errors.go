package gitlab

import "errors"

// GitLab API errors
var (
	// ErrNoToken indicates no API token is configured.
	ErrNoToken = errors.New("gitlab token not configured")

	// ErrNotFound indicates the merge request does not exist.
	ErrNotFound = errors.New("merge request not found")

	// ErrUnknownRemote indicates the git remote does not look like a GitLab host.
	ErrUnknownRemote = errors.New("remote is not a recognized gitlab host")
)
