package workflow

import (
	"context"
	"fmt"

	glflow "github.com/glflowdev/glflow"
	"github.com/glflowdev/glflow/gitlab"
	"github.com/glflowdev/glflow/notify"
)

// Services wraps all glflow services for convenient initialization
type Services struct {
	Config   *glflow.Config
	Runner   glflow.Runner   // Command runner (defaults to ExecRunner)
	Notifier notify.Notifier // Optional notification service
	GitLab   gitlab.Reader   // Optional read-only API client
}

// InjectAll adds all configured services to the context
func (s *Services) InjectAll(ctx context.Context) context.Context {
	if s.Config != nil {
		ctx = WithConfig(ctx, s.Config)
	}
	if s.Runner != nil {
		ctx = WithRunner(ctx, s.Runner)
	}
	if s.Notifier != nil {
		ctx = notify.WithNotifier(ctx, s.Notifier)
	}
	if s.GitLab != nil {
		ctx = gitlab.ContextWithReader(ctx, s.GitLab)
	}
	return ctx
}

// NewServices creates Services with common defaults. The Slack notifier is
// wired when a webhook is configured; the GitLab API client is attached
// separately via ConnectGitLab because it needs the repository's remote.
func NewServices(cfg *glflow.Config) *Services {
	s := &Services{
		Config: cfg,
		Runner: glflow.NewExecRunner(),
	}

	if cfg != nil && cfg.SlackWebhookURL != "" {
		s.Notifier = notify.NewSlackNotifier(cfg.SlackWebhookURL)
	}

	return s
}

// ConnectGitLab resolves the origin remote of the configured repository and
// builds a read-only GitLab API client from it. A configured base URL takes
// precedence over the host derived from the remote.
func (s *Services) ConnectGitLab(ctx context.Context) error {
	if s.Config == nil || s.Config.GitLabToken == "" {
		return gitlab.ErrNoToken
	}

	git := glflow.NewGit(s.Config.RepoPath, glflow.WithGitRunner(s.Runner))
	remote, err := git.RemoteURL(ctx, "origin")
	if err != nil {
		return fmt.Errorf("resolve origin remote: %w", err)
	}

	if s.Config.GitLabBaseURL != "" {
		project, _, err := gitlab.ParseProjectFromURL(remote)
		if err != nil {
			return err
		}
		client, err := gitlab.NewClient(s.Config.GitLabToken, s.Config.GitLabBaseURL, project)
		if err != nil {
			return err
		}
		s.GitLab = client
		return nil
	}

	client, err := gitlab.FromRemote(s.Config.GitLabToken, remote)
	if err != nil {
		return err
	}
	s.GitLab = client
	return nil
}
