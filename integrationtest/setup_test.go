package integrationtest

import (
	"testing"

	glflow "github.com/glflowdev/glflow"
	"github.com/glflowdev/glflow/workflow"
)

// mrURL is the merge request URL the scripted glab returns.
const mrURL = "https://gitlab.example.com/team/app/-/merge_requests/7"

// testConfig returns a config for a repository that exists on disk, so the
// health check's directory probe passes.
func testConfig(t *testing.T) *glflow.Config {
	t.Helper()

	return &glflow.Config{
		Username:     "alice",
		RepoPath:     t.TempDir(),
		TargetBranch: "staging",
	}
}

// scriptedRunner returns a MockRunner preloaded with the happy-path
// responses the workflows need. Commands without an explicit response
// succeed with empty output.
func scriptedRunner() *glflow.MockRunner {
	runner := glflow.NewMockRunner()
	runner.OnCommand("git", "branch", "--show-current").Return("feature-x\n", nil)
	runner.OnCommand("glab", "auth", "status").Return("Logged in to gitlab.example.com\n", nil)
	runner.OnCommand("glab").Return(mrURL+"\n", nil)
	return runner
}

// services bundles a config and runner without touching the network.
func services(cfg *glflow.Config, runner glflow.Runner) *workflow.Services {
	return &workflow.Services{Config: cfg, Runner: runner}
}
