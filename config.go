package glflow

import (
	"fmt"
	"strconv"
	"time"

	"github.com/glflowdev/glflow/config"
)

// Configuration keys recognized by glflow.
const (
	KeyUsername       = "username"
	KeyProjectDir     = "project_dir"
	KeyTargetBranch   = "target_branch"
	KeyDraft          = "draft"
	KeyCommandTimeout = "command_timeout"
	KeyProbeTimeout   = "probe_timeout"
	KeySlackWebhook   = "slack_webhook"
	KeyGitLabToken    = "gitlab_token"
	KeyGitLabBaseURL  = "gitlab_base_url"
	KeyServeTokenHash = "serve_token_hash"
	KeyJWTSecret      = "jwt_secret"
)

// DefaultTargetBranch is used when no target branch is configured.
const DefaultTargetBranch = "staging"

// DefaultProbeTimeout bounds health check probes unless overridden.
const DefaultProbeTimeout = 5 * time.Second

// Config holds the resolved settings for all glflow operations.
type Config struct {
	// Username is the GitLab username assigned to created merge requests.
	Username string

	// RepoPath is the working directory for every git and glab command.
	// Existence is not verified here; the health check reports on it and
	// the commands themselves fail with their own diagnostics.
	RepoPath string

	// TargetBranch is the branch merge requests target and rebases rebase
	// onto. Defaults to "staging".
	TargetBranch string

	// Draft marks created merge requests as drafts.
	Draft bool

	// CommandTimeout bounds every workflow command. Zero means no limit.
	CommandTimeout time.Duration

	// ProbeTimeout bounds each health check probe.
	ProbeTimeout time.Duration

	// SlackWebhookURL enables Slack notifications when set.
	SlackWebhookURL string

	// GitLabToken enables read-only GitLab API lookups when set.
	GitLabToken string

	// GitLabBaseURL overrides the API base URL for self-hosted instances.
	GitLabBaseURL string

	// ServeTokenHash is the SHA-256 hash of the static bearer token
	// accepted by the HTTP tool server.
	ServeTokenHash string

	// JWTSecret signs and validates JWT bearer tokens for the HTTP tool
	// server.
	JWTSecret string
}

// ConfigKeys returns every recognized configuration key.
func ConfigKeys() []string {
	return []string{
		KeyUsername,
		KeyProjectDir,
		KeyTargetBranch,
		KeyDraft,
		KeyCommandTimeout,
		KeyProbeTimeout,
		KeySlackWebhook,
		KeyGitLabToken,
		KeyGitLabBaseURL,
		KeyServeTokenHash,
		KeyJWTSecret,
	}
}

// DefaultResolverConfig returns the resolver settings shared by LoadConfig
// and the CLI config commands. Required settings keep their historical bare
// environment variable names as aliases alongside the GLFLOW_ prefix.
func DefaultResolverConfig() config.ResolverConfig {
	return config.ResolverConfig{
		Keys:      ConfigKeys(),
		EnvPrefix: "GLFLOW_",
		EnvAliases: map[string]string{
			KeyUsername:     "GITLAB_USERNAME",
			KeyProjectDir:   "PROJECT_DIR",
			KeyTargetBranch: "TARGET_BRANCH",
			KeyGitLabToken:  "GITLAB_TOKEN",
		},
		GlobalConfigDir: "glflow",
		LocalConfigName: ".glflow.yaml",
		Defaults: map[string]string{
			KeyTargetBranch: DefaultTargetBranch,
			KeyDraft:        "false",
			KeyProbeTimeout: DefaultProbeTimeout.String(),
		},
		ValidGlobalKeys: ConfigKeys(),
		// Secrets and machine-specific paths stay out of the shared
		// repo-local file.
		ValidLocalKeys: []string{
			KeyTargetBranch,
			KeyDraft,
			KeyCommandTimeout,
			KeyProbeTimeout,
			KeySlackWebhook,
			KeyGitLabBaseURL,
		},
	}
}

// LoadConfig resolves configuration from the environment and config files.
// The returned Config is always non-nil so callers that tolerate incomplete
// configuration (the health check) can still report on it; the error is
// non-nil when a required setting is missing or a value fails to parse.
func LoadConfig() (*Config, error) {
	return configFrom(config.NewResolver(DefaultResolverConfig()).Resolve())
}

// configFrom builds a Config from resolved values.
func configFrom(res *config.Resolved) (*Config, error) {
	cfg := &Config{
		Username:        res.Get(KeyUsername),
		RepoPath:        res.Get(KeyProjectDir),
		TargetBranch:    res.Get(KeyTargetBranch),
		SlackWebhookURL: res.Get(KeySlackWebhook),
		GitLabToken:     res.Get(KeyGitLabToken),
		GitLabBaseURL:   res.Get(KeyGitLabBaseURL),
		ServeTokenHash:  res.Get(KeyServeTokenHash),
		JWTSecret:       res.Get(KeyJWTSecret),
		ProbeTimeout:    DefaultProbeTimeout,
	}

	if cfg.TargetBranch == "" {
		cfg.TargetBranch = DefaultTargetBranch
	}

	if v := res.Get(KeyDraft); v != "" {
		draft, err := strconv.ParseBool(v)
		if err != nil {
			return cfg, fmt.Errorf("parse %s: %w", KeyDraft, err)
		}
		cfg.Draft = draft
	}

	if v := res.Get(KeyCommandTimeout); v != "" {
		d, err := parseTimeout(v)
		if err != nil {
			return cfg, fmt.Errorf("parse %s: %w", KeyCommandTimeout, err)
		}
		cfg.CommandTimeout = d
	}

	if v := res.Get(KeyProbeTimeout); v != "" {
		d, err := parseTimeout(v)
		if err != nil {
			return cfg, fmt.Errorf("parse %s: %w", KeyProbeTimeout, err)
		}
		cfg.ProbeTimeout = d
	}

	if cfg.Username == "" || cfg.RepoPath == "" {
		return cfg, ErrConfigMissing
	}

	return cfg, nil
}

// parseTimeout accepts a Go duration string ("30s") or a bare number of
// seconds.
func parseTimeout(v string) (time.Duration, error) {
	if d, err := time.ParseDuration(v); err == nil {
		if d < 0 {
			return 0, fmt.Errorf("negative duration %q", v)
		}
		return d, nil
	}
	secs, err := strconv.Atoi(v)
	if err != nil || secs < 0 {
		return 0, fmt.Errorf("invalid duration %q", v)
	}
	return time.Duration(secs) * time.Second, nil
}
