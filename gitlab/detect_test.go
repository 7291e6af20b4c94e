package gitlab

import (
	"errors"
	"strings"
	"testing"
)

func TestIsGitLabRemote(t *testing.T) {
	tests := []struct {
		url  string
		want bool
	}{
		{"https://gitlab.com/group/project.git", true},
		{"git@gitlab.com:group/project.git", true},
		{"https://gitlab.internal.corp/group/project.git", true},
		{"https://github.com/owner/repo.git", false},
		{"https://bitbucket.org/owner/repo.git", false},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			if got := IsGitLabRemote(tt.url); got != tt.want {
				t.Errorf("IsGitLabRemote(%q) = %v, want %v", tt.url, got, tt.want)
			}
		})
	}
}

func TestParseProjectFromURL(t *testing.T) {
	tests := []struct {
		name        string
		url         string
		wantProject string
		wantBaseURL string
		wantErr     bool
	}{
		{
			name:        "ssh",
			url:         "git@gitlab.com:group/project.git",
			wantProject: "group/project",
			wantBaseURL: "https://gitlab.com",
		},
		{
			name:        "ssh with subgroup",
			url:         "git@gitlab.example.com:group/sub/project.git",
			wantProject: "group/sub/project",
			wantBaseURL: "https://gitlab.example.com",
		},
		{
			name:        "https",
			url:         "https://gitlab.com/group/project.git",
			wantProject: "group/project",
			wantBaseURL: "https://gitlab.com",
		},
		{
			name:        "https without .git",
			url:         "https://gitlab.com/group/project",
			wantProject: "group/project",
			wantBaseURL: "https://gitlab.com",
		},
		{
			name:        "http self-hosted with subgroup",
			url:         "http://gitlab.internal/platform/tools/glflow.git",
			wantProject: "platform/tools/glflow",
			wantBaseURL: "https://gitlab.internal",
		},
		{
			name:    "empty",
			url:     "",
			wantErr: true,
		},
		{
			name:    "no project path",
			url:     "https://gitlab.com/project",
			wantErr: true,
		},
		{
			name:    "ssh without path",
			url:     "git@gitlab.com",
			wantErr: true,
		},
		{
			name:    "unsupported scheme",
			url:     "ftp://gitlab.com/group/project",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			project, baseURL, err := ParseProjectFromURL(tt.url)

			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseProjectFromURL(%q) expected error, got %q, %q", tt.url, project, baseURL)
				}
				return
			}

			if err != nil {
				t.Fatalf("ParseProjectFromURL(%q) error = %v", tt.url, err)
			}
			if project != tt.wantProject {
				t.Errorf("project = %q, want %q", project, tt.wantProject)
			}
			if baseURL != tt.wantBaseURL {
				t.Errorf("baseURL = %q, want %q", baseURL, tt.wantBaseURL)
			}
		})
	}
}

func TestFromRemote(t *testing.T) {
	client, err := FromRemote("token", "git@gitlab.example.com:group/sub/project.git")
	if err != nil {
		t.Fatalf("FromRemote() error = %v", err)
	}
	if client.Project() != "group/sub/project" {
		t.Errorf("Project() = %q, want group/sub/project", client.Project())
	}
}

func TestFromRemote_NoToken(t *testing.T) {
	_, err := FromRemote("", "git@gitlab.com:group/project.git")
	if !errors.Is(err, ErrNoToken) {
		t.Errorf("FromRemote() error = %v, want ErrNoToken", err)
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv("GITLAB_TOKEN", "test-token")
	t.Setenv("GIT_TOKEN", "")

	_, err := FromEnv("https://gitlab.com/group/project.git")
	if err != nil {
		t.Fatalf("FromEnv() error = %v", err)
	}
}

func TestFromEnv_FallbackToken(t *testing.T) {
	t.Setenv("GITLAB_TOKEN", "")
	t.Setenv("GIT_TOKEN", "fallback-token")

	_, err := FromEnv("https://gitlab.com/group/project.git")
	if err != nil {
		t.Fatalf("FromEnv() with GIT_TOKEN error = %v", err)
	}
}

func TestFromEnv_NoToken(t *testing.T) {
	t.Setenv("GITLAB_TOKEN", "")
	t.Setenv("GIT_TOKEN", "")

	_, err := FromEnv("https://gitlab.com/group/project.git")
	if err == nil {
		t.Fatal("expected error when no token, got nil")
	}
	if !strings.Contains(err.Error(), "GITLAB_TOKEN") || !strings.Contains(err.Error(), "not set") {
		t.Errorf("error should mention GITLAB_TOKEN not set, got: %v", err)
	}
}

func TestFromEnv_UnknownRemote(t *testing.T) {
	t.Setenv("GITLAB_TOKEN", "test-token")

	_, err := FromEnv("https://github.com/owner/repo.git")
	if !errors.Is(err, ErrUnknownRemote) {
		t.Errorf("FromEnv() error = %v, want ErrUnknownRemote", err)
	}
}
