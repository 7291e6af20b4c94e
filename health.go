package glflow

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

// CheckResult is the outcome of one health probe.
type CheckResult struct {
	Name    string
	OK      bool
	Message string
}

// Line renders the result as a report line.
func (r CheckResult) Line() string {
	mark := "✅"
	if !r.OK {
		mark = "❌"
	}
	return mark + " " + r.Message
}

// Report is the ordered output of a health check run.
type Report struct {
	Results []CheckResult
}

// Healthy reports whether every check passed.
func (r Report) Healthy() bool {
	for _, res := range r.Results {
		if !res.OK {
			return false
		}
	}
	return true
}

// Lines renders one line per check, in check order.
func (r Report) Lines() []string {
	lines := make([]string, 0, len(r.Results))
	for _, res := range r.Results {
		lines = append(lines, res.Line())
	}
	return lines
}

// String renders the report as newline-joined lines.
func (r Report) String() string {
	return strings.Join(r.Lines(), "\n")
}

// Doctor runs the environment health checks. A health check run never fails
// as a whole: every probe yields exactly one report line, and probe errors
// become failed lines.
type Doctor struct {
	cfg    *Config
	runner Runner
	glab   *GlabCLI
	probe  time.Duration
}

// NewDoctor creates a health checker. cfg may be incomplete; missing values
// are exactly what the checks report on.
func NewDoctor(cfg *Config, opts ...Option) *Doctor {
	o := newOptions(opts...)

	probe := cfg.ProbeTimeout
	if probe <= 0 {
		probe = DefaultProbeTimeout
	}

	return &Doctor{
		cfg:    cfg,
		runner: o.runner,
		glab:   NewGlabCLI(GlabConfig{Binary: o.glabBinary, Runner: o.runner, Timeout: probe}),
		probe:  probe,
	}
}

// CheckHealth runs every probe in a fixed order: username, repository path,
// target branch, glab authentication, git availability.
func (d *Doctor) CheckHealth(ctx context.Context) Report {
	checks := []func(context.Context) CheckResult{
		d.checkUsername,
		d.checkRepoPath,
		d.checkTargetBranch,
		d.checkGlabAuth,
		d.checkGit,
	}

	report := Report{Results: make([]CheckResult, 0, len(checks))}
	for _, check := range checks {
		report.Results = append(report.Results, runCheck(ctx, check))
	}
	return report
}

// runCheck shields the report from a panicking probe.
func runCheck(ctx context.Context, check func(context.Context) CheckResult) (res CheckResult) {
	defer func() {
		if r := recover(); r != nil {
			res = CheckResult{Name: "internal", Message: fmt.Sprintf("check panicked: %v", r)}
		}
	}()
	return check(ctx)
}

func (d *Doctor) checkUsername(context.Context) CheckResult {
	if d.cfg.Username == "" {
		return CheckResult{Name: "username", Message: "GITLAB_USERNAME is not set"}
	}
	return CheckResult{Name: "username", OK: true, Message: "GITLAB_USERNAME: " + d.cfg.Username}
}

func (d *Doctor) checkRepoPath(context.Context) CheckResult {
	if d.cfg.RepoPath == "" {
		return CheckResult{Name: "repository", Message: "PROJECT_DIR is not set"}
	}

	info, err := os.Stat(d.cfg.RepoPath)
	if err != nil {
		return CheckResult{Name: "repository", Message: "PROJECT_DIR does not exist: " + d.cfg.RepoPath}
	}
	if !info.IsDir() {
		return CheckResult{Name: "repository", Message: "PROJECT_DIR is not a directory: " + d.cfg.RepoPath}
	}
	return CheckResult{Name: "repository", OK: true, Message: "PROJECT_DIR: " + d.cfg.RepoPath}
}

// checkTargetBranch always passes: the target branch has a default, so the
// line is informational.
func (d *Doctor) checkTargetBranch(context.Context) CheckResult {
	target := d.cfg.TargetBranch
	if target == "" {
		target = DefaultTargetBranch
	}
	return CheckResult{Name: "target_branch", OK: true, Message: "Target branch: " + target}
}

func (d *Doctor) checkGlabAuth(ctx context.Context) CheckResult {
	err := d.glab.AuthStatus(ctx)
	switch {
	case err == nil:
		return CheckResult{Name: "glab", OK: true, Message: "glab is authenticated"}
	case errors.Is(err, ErrToolUnavailable):
		return CheckResult{Name: "glab", Message: "glab CLI not found; install it from https://gitlab.com/gitlab-org/cli"}
	case errors.Is(err, ErrCommandTimeout):
		return CheckResult{Name: "glab", Message: "glab auth status timed out"}
	default:
		return CheckResult{Name: "glab", Message: "glab is not authenticated: " + firstLine(CommandStderr(err))}
	}
}

func (d *Doctor) checkGit(ctx context.Context) CheckResult {
	if d.probe > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.probe)
		defer cancel()
	}

	// Probed without a working directory so a bad repository path cannot
	// mask whether git itself is installed.
	res, err := d.runner.Run(ctx, "", "git", "--version")
	switch {
	case errors.Is(err, ErrToolUnavailable):
		return CheckResult{Name: "git", Message: "git not found on PATH"}
	case errors.Is(err, ErrCommandTimeout):
		return CheckResult{Name: "git", Message: "git version probe timed out"}
	case err != nil:
		return CheckResult{Name: "git", Message: "git is not working: " + firstLine(err.Error())}
	case res.ExitCode != 0:
		return CheckResult{Name: "git", Message: "git is not working: " + firstLine(res.Stderr)}
	default:
		msg := strings.TrimSpace(res.Stdout)
		if msg == "" {
			msg = "git is available"
		}
		return CheckResult{Name: "git", OK: true, Message: msg}
	}
}

// firstLine trims a diagnostic to its first non-empty line.
func firstLine(s string) string {
	for _, line := range strings.Split(s, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			return trimmed
		}
	}
	return strings.TrimSpace(s)
}

// CheckHealth loads whatever configuration is available and runs the health
// report. It never fails; incomplete configuration shows up as report lines.
func CheckHealth(ctx context.Context, opts ...Option) Report {
	cfg, _ := LoadConfig()
	return NewDoctor(cfg, opts...).CheckHealth(ctx)
}
