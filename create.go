package glflow

import (
	"context"
)

// Option configures the workflow constructors.
type Option func(*options)

type options struct {
	runner     Runner
	glabBinary string
}

// WithRunner sets the command runner used for git and glab invocations.
// This is primarily used for testing to inject mock command execution.
func WithRunner(runner Runner) Option {
	return func(o *options) {
		o.runner = runner
	}
}

// WithGlabBinary overrides the glab executable name or path.
func WithGlabBinary(binary string) Option {
	return func(o *options) {
		o.glabBinary = binary
	}
}

func newOptions(opts ...Option) options {
	o := options{
		runner:     NewExecRunner(),
		glabBinary: "glab",
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Creator opens merge requests for the configured repository.
type Creator struct {
	cfg  *Config
	git  *Git
	glab *GlabCLI
}

// NewCreator creates a merge request creator. cfg must be fully loaded.
func NewCreator(cfg *Config, opts ...Option) *Creator {
	o := newOptions(opts...)

	return &Creator{
		cfg:  cfg,
		git:  NewGit(cfg.RepoPath, WithGitRunner(o.runner), WithGitTimeout(cfg.CommandTimeout)),
		glab: NewGlabCLI(GlabConfig{Binary: o.glabBinary, Runner: o.runner, Timeout: cfg.CommandTimeout}),
	}
}

// Create pushes the current branch to origin and opens a merge request
// against the configured target branch, assigned to the configured user.
// The outcome text is safe to relay verbatim. A push that succeeded is not
// retracted when the MR creation afterwards fails; the branch stays on the
// remote and the failure says why the MR is missing.
func (c *Creator) Create(ctx context.Context, title, description string, draft bool) (out Outcome) {
	defer func() {
		if r := recover(); r != nil {
			out = Failuref("Unexpected error: %v", r)
		}
	}()

	if c.cfg.Username == "" || c.cfg.RepoPath == "" {
		return configFailure(ErrConfigMissing)
	}

	branch, err := c.git.CurrentBranch(ctx)
	if err != nil {
		return Failuref("Command failed: %s", CommandStderr(err))
	}
	if branch == "" {
		return Failure("Error: Could not determine current branch")
	}

	if err := c.git.PushUpstream(ctx, branch); err != nil {
		return Failuref("Error pushing branch: %s", CommandStderr(err))
	}

	url, err := c.glab.CreateMR(ctx, c.cfg.RepoPath, MRCreateOptions{
		Title:              title,
		Description:        description,
		SourceBranch:       branch,
		TargetBranch:       c.cfg.TargetBranch,
		Assignee:           c.cfg.Username,
		RemoveSourceBranch: true,
		Draft:              draft,
	})
	if err != nil {
		return Failuref("Error creating MR: %s", CommandStderr(err))
	}

	return Successf("Successfully created merge request!\n\n%s", url)
}

// CreateMergeRequest loads configuration and runs the merge request workflow
// end to end. Missing configuration fails before any command runs. Whether
// the MR is a draft comes from configuration.
func CreateMergeRequest(ctx context.Context, title, description string, opts ...Option) Outcome {
	cfg, err := LoadConfig()
	if err != nil {
		return configFailure(err)
	}
	return NewCreator(cfg, opts...).Create(ctx, title, description, cfg.Draft)
}

// configFailure renders a configuration loading error as an outcome.
func configFailure(err error) Outcome {
	return Failuref("Error: %s", err)
}
