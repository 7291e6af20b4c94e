package glflow

import (
	"context"
)

// Rebaser rebases the current branch onto the configured target branch and
// force-pushes the result.
type Rebaser struct {
	cfg *Config
	git *Git
}

// NewRebaser creates a rebaser. cfg must be fully loaded.
func NewRebaser(cfg *Config, opts ...Option) *Rebaser {
	o := newOptions(opts...)

	return &Rebaser{
		cfg: cfg,
		git: NewGit(cfg.RepoPath, WithGitRunner(o.runner), WithGitTimeout(cfg.CommandTimeout)),
	}
}

// Rebase refreshes the target branch and replays the current branch on top
// of it: checkout target, pull, checkout the original branch, rebase, then
// push with --force-with-lease. Every step checks the one before it; each
// failure reports how far the workflow got and which branch the repository
// was left on. Being on the target branch itself fails before anything is
// touched.
func (r *Rebaser) Rebase(ctx context.Context) (out Outcome) {
	defer func() {
		if p := recover(); p != nil {
			out = Failuref("Unexpected error: %v", p)
		}
	}()

	if r.cfg.Username == "" || r.cfg.RepoPath == "" {
		return configFailure(ErrConfigMissing)
	}

	target := r.cfg.TargetBranch

	branch, err := r.git.CurrentBranch(ctx)
	if err != nil {
		return Failuref("Command failed: %s", CommandStderr(err))
	}
	if branch == "" {
		return Failure("Error: Could not determine current branch")
	}
	if branch == target {
		return Failuref("Error: already on %s, nothing to rebase", target)
	}

	if err := r.git.Checkout(ctx, target); err != nil {
		return Failuref("Error checking out %s: %s", target, CommandStderr(err))
	}

	if err := r.git.Pull(ctx); err != nil {
		// Best-effort return to the original branch; the pull failure is
		// what gets reported either way.
		_ = r.git.Checkout(ctx, branch)
		return Failuref("Error pulling %s: %s", target, CommandStderr(err))
	}

	if err := r.git.Checkout(ctx, branch); err != nil {
		return Failuref("Error switching back to %s: %s. The repository is still on %s.",
			branch, CommandStderr(err), target)
	}

	if err := r.git.Rebase(ctx, target); err != nil {
		// One abort attempt so the working tree is not left mid-rebase.
		// The abort's own result is not separately reported.
		_ = r.git.RebaseAbort(ctx)
		return Failuref("Rebase of %s onto %s hit conflicts and was aborted. Resolve the conflicts manually and try again.\n\n%s",
			branch, target, CommandStderr(err))
	}

	if err := r.git.PushForceWithLease(ctx); err != nil {
		return Failuref("Rebased %s onto %s, but the branch was not pushed: %s\nPush manually with: git push --force-with-lease",
			branch, target, CommandStderr(err))
	}

	return Successf("Successfully rebased %s onto %s and pushed to origin", branch, target)
}

// RebaseOnStaging loads configuration and runs the rebase workflow end to
// end. The name reflects the default target branch; a configured target is
// honored all the same.
func RebaseOnStaging(ctx context.Context, opts ...Option) Outcome {
	cfg, err := LoadConfig()
	if err != nil {
		return configFailure(err)
	}
	return NewRebaser(cfg, opts...).Rebase(ctx)
}
