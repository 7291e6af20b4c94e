package glflow

import (
	"context"
	"strings"
	"time"
)

// Git drives git commands for one repository. The repository directory is
// attached to every invocation; the process working directory is never
// changed, so concurrent handles on different repositories cannot interfere.
type Git struct {
	dir     string
	runner  Runner
	timeout time.Duration
}

// GitOption configures Git.
type GitOption func(*Git)

// WithGitRunner sets a custom command runner for git operations.
// This is primarily used for testing to inject mock command execution.
func WithGitRunner(runner Runner) GitOption {
	return func(g *Git) {
		g.runner = runner
	}
}

// WithGitTimeout bounds each git command. Zero means no limit.
func WithGitTimeout(d time.Duration) GitOption {
	return func(g *Git) {
		g.timeout = d
	}
}

// NewGit creates a git handle for the repository directory. The path is not
// validated up front; a wrong path surfaces through the commands' own
// diagnostics, and the health check reports on it separately.
func NewGit(dir string, opts ...GitOption) *Git {
	g := &Git{
		dir:    dir,
		runner: NewExecRunner(),
	}

	for _, opt := range opts {
		opt(g)
	}

	return g
}

// Dir returns the repository directory.
func (g *Git) Dir() string {
	return g.dir
}

// CurrentBranch returns the current branch name. A detached HEAD yields an
// empty string with a nil error; callers decide how to report that.
func (g *Git) CurrentBranch(ctx context.Context) (string, error) {
	res, err := g.run(ctx, "branch", "--show-current")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(res.Stdout), nil
}

// PushUpstream pushes the branch to origin and sets upstream tracking.
func (g *Git) PushUpstream(ctx context.Context, branch string) error {
	_, err := g.run(ctx, "push", "-u", "origin", branch)
	return err
}

// Checkout switches to the branch.
func (g *Git) Checkout(ctx context.Context, branch string) error {
	_, err := g.run(ctx, "checkout", branch)
	return err
}

// Pull updates the current branch from its upstream.
func (g *Git) Pull(ctx context.Context) error {
	_, err := g.run(ctx, "pull")
	return err
}

// Rebase replays the current branch onto the given branch.
func (g *Git) Rebase(ctx context.Context, onto string) error {
	_, err := g.run(ctx, "rebase", onto)
	return err
}

// RebaseAbort cancels an in-progress rebase.
func (g *Git) RebaseAbort(ctx context.Context) error {
	_, err := g.run(ctx, "rebase", "--abort")
	return err
}

// PushForceWithLease force-pushes the current branch to its upstream,
// refusing to clobber remote commits the local clone has not seen.
func (g *Git) PushForceWithLease(ctx context.Context) error {
	_, err := g.run(ctx, "push", "--force-with-lease")
	return err
}

// RemoteURL returns the fetch URL of the named remote.
func (g *Git) RemoteURL(ctx context.Context, remote string) (string, error) {
	res, err := g.run(ctx, "remote", "get-url", remote)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(res.Stdout), nil
}

// Version returns the installed git version string.
func (g *Git) Version(ctx context.Context) (string, error) {
	res, err := g.run(ctx, "--version")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(res.Stdout), nil
}

// run executes one git command in the repository directory. A non-zero exit
// becomes a CommandError carrying the captured stderr.
func (g *Git) run(ctx context.Context, args ...string) (Result, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	res, err := g.runner.Run(ctx, g.dir, "git", args...)
	if err != nil {
		return res, err
	}
	if res.ExitCode != 0 {
		return res, &CommandError{Command: "git", Args: args, ExitCode: res.ExitCode, Stderr: res.Stderr}
	}
	return res, nil
}
