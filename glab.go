package glflow

import (
	"context"
	"strings"
	"time"
)

// GlabConfig configures the glab CLI wrapper.
type GlabConfig struct {
	// Binary is the glab executable name or path. Defaults to "glab".
	Binary string

	// Runner executes commands. Defaults to ExecRunner.
	Runner Runner

	// Timeout bounds each glab invocation. Zero means no limit.
	Timeout time.Duration
}

// GlabCLI wraps the glab command-line tool. Availability is not probed at
// construction; a missing binary surfaces when a command runs, and the
// health check reports it distinctly from an authentication failure.
type GlabCLI struct {
	binary  string
	runner  Runner
	timeout time.Duration
}

// NewGlabCLI creates a glab wrapper with the given configuration.
func NewGlabCLI(cfg GlabConfig) *GlabCLI {
	if cfg.Binary == "" {
		cfg.Binary = "glab"
	}
	if cfg.Runner == nil {
		cfg.Runner = NewExecRunner()
	}

	return &GlabCLI{
		binary:  cfg.Binary,
		runner:  cfg.Runner,
		timeout: cfg.Timeout,
	}
}

// MRCreateOptions describes one merge request creation.
type MRCreateOptions struct {
	Title              string
	Description        string
	SourceBranch       string
	TargetBranch       string
	Assignee           string
	RemoveSourceBranch bool
	Draft              bool
}

// CreateMR opens a merge request and returns glab's stdout, which carries
// the URL of the created MR.
func (c *GlabCLI) CreateMR(ctx context.Context, dir string, opts MRCreateOptions) (string, error) {
	res, err := c.run(ctx, dir, c.buildCreateArgs(opts)...)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(res.Stdout), nil
}

// AuthStatus reports whether glab can reach GitLab with stored credentials.
// A nil error means authenticated.
func (c *GlabCLI) AuthStatus(ctx context.Context) error {
	_, err := c.run(ctx, "", "auth", "status")
	return err
}

// buildCreateArgs assembles the argument list for glab mr create. The --yes
// flag keeps the invocation non-interactive.
func (c *GlabCLI) buildCreateArgs(opts MRCreateOptions) []string {
	args := []string{
		"mr", "create",
		"--title", opts.Title,
		"--description", opts.Description,
		"--source-branch", opts.SourceBranch,
		"--target-branch", opts.TargetBranch,
	}

	if opts.Assignee != "" {
		args = append(args, "--assignee", opts.Assignee)
	}
	if opts.RemoveSourceBranch {
		args = append(args, "--remove-source-branch")
	}
	if opts.Draft {
		args = append(args, "--draft")
	}

	return append(args, "--yes")
}

// run executes one glab command. A non-zero exit becomes a CommandError
// carrying the captured stderr.
func (c *GlabCLI) run(ctx context.Context, dir string, args ...string) (Result, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	res, err := c.runner.Run(ctx, dir, c.binary, args...)
	if err != nil {
		return res, err
	}
	if res.ExitCode != 0 {
		return res, &CommandError{Command: c.binary, Args: args, ExitCode: res.ExitCode, Stderr: res.Stderr}
	}
	return res, nil
}
