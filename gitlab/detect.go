package gitlab

import (
	"fmt"
	"os"
	"strings"
)

// IsGitLabRemote reports whether the remote URL looks like a GitLab host.
// This is a heuristic: it matches gitlab.com and self-hosted instances
// with "gitlab" in the hostname.
func IsGitLabRemote(remoteURL string) bool {
	return strings.Contains(strings.ToLower(remoteURL), "gitlab")
}

// ParseProjectFromURL extracts the project path and instance base URL from
// a git remote URL. Subgroups are preserved, so
// "git@gitlab.example.com:group/sub/project.git" yields
// "group/sub/project" and "https://gitlab.example.com".
func ParseProjectFromURL(remoteURL string) (project, baseURL string, err error) {
	raw := strings.TrimSpace(remoteURL)
	if raw == "" {
		return "", "", fmt.Errorf("empty remote URL")
	}

	var host, path string

	switch {
	// scp-style SSH: git@gitlab.example.com:group/project.git
	case strings.HasPrefix(raw, "git@"):
		rest := strings.TrimPrefix(raw, "git@")
		var ok bool
		host, path, ok = strings.Cut(rest, ":")
		if !ok {
			return "", "", fmt.Errorf("invalid SSH remote %q", remoteURL)
		}

	// HTTP(S): https://gitlab.example.com/group/project.git
	case strings.HasPrefix(raw, "https://"), strings.HasPrefix(raw, "http://"):
		trimmed := strings.TrimPrefix(raw, "https://")
		trimmed = strings.TrimPrefix(trimmed, "http://")
		var ok bool
		host, path, ok = strings.Cut(trimmed, "/")
		if !ok {
			return "", "", fmt.Errorf("invalid remote URL %q", remoteURL)
		}

	default:
		return "", "", fmt.Errorf("unsupported remote URL %q", remoteURL)
	}

	if host == "" {
		return "", "", fmt.Errorf("no host in remote URL %q", remoteURL)
	}

	project = strings.TrimSuffix(strings.Trim(path, "/"), ".git")
	if project == "" || !strings.Contains(project, "/") {
		return "", "", fmt.Errorf("invalid project path in %q", remoteURL)
	}

	return project, "https://" + host, nil
}

// FromRemote creates a read-only client for the project behind a git
// remote URL, using the given personal access token.
func FromRemote(token, remoteURL string) (*Client, error) {
	project, baseURL, err := ParseProjectFromURL(remoteURL)
	if err != nil {
		return nil, fmt.Errorf("parse remote URL: %w", err)
	}

	// gitlab.com is the library default.
	if strings.HasSuffix(baseURL, "://gitlab.com") {
		baseURL = ""
	}

	return NewClient(token, baseURL, project)
}

// FromEnv creates a client for a remote URL using GITLAB_TOKEN, falling
// back to GIT_TOKEN.
//
// Example:
//
//	remoteURL, _ := git.RemoteURL(ctx, "origin")
//	client, err := gitlab.FromEnv(remoteURL)
func FromEnv(remoteURL string) (*Client, error) {
	if !IsGitLabRemote(remoteURL) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownRemote, remoteURL)
	}

	token := os.Getenv("GITLAB_TOKEN")
	if token == "" {
		token = os.Getenv("GIT_TOKEN")
	}
	if token == "" {
		return nil, fmt.Errorf("GITLAB_TOKEN or GIT_TOKEN not set; set one of these environment variables with a valid personal access token")
	}

	return FromRemote(token, remoteURL)
}
