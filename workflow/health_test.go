package workflow

import (
	"strings"
	"testing"

	glflow "github.com/glflowdev/glflow"
)

func TestHealthCheckNode(t *testing.T) {
	t.Run("missing config", func(t *testing.T) {
		ctx := nodeContext(nil, glflow.NewMockRunner())

		_, err := HealthCheckNode(ctx, NewState("health"))
		if err == nil {
			t.Error("HealthCheckNode should fail without a config")
		}
	})

	t.Run("healthy environment", func(t *testing.T) {
		runner := glflow.NewMockRunner()
		runner.OnCommand("glab", "auth", "status").Return("Logged in to gitlab.com as alice", nil)
		runner.OnCommand("git", "--version").Return("git version 2.44.0\n", nil)

		cfg := testConfig()
		cfg.RepoPath = t.TempDir()

		ctx := nodeContext(cfg, runner)

		result, err := HealthCheckNode(ctx, NewState("health"))
		if err != nil {
			t.Fatalf("HealthCheckNode() error = %v, want nil", err)
		}

		if result.Health == nil {
			t.Fatal("Health report should be set")
		}
		if !result.Healthy {
			t.Errorf("Healthy = false, report:\n%s", result.Health)
		}
		if len(result.Health.Results) != 5 {
			t.Errorf("len(Results) = %d, want 5", len(result.Health.Results))
		}
		if result.HealthCheckedAt.IsZero() {
			t.Error("HealthCheckedAt should be set")
		}
		if !strings.Contains(result.Output, "git version 2.44.0") {
			t.Errorf("Output = %q, want the git version line", result.Output)
		}
	})

	t.Run("degraded environment never fails", func(t *testing.T) {
		runner := glflow.NewMockRunner()
		runner.OnCommand("glab", "auth", "status").Fail(1, "not logged in to any hosts")
		runner.OnCommand("git", "--version").Return("git version 2.44.0\n", nil)

		cfg := testConfig()
		cfg.Username = ""

		ctx := nodeContext(cfg, runner)

		result, err := HealthCheckNode(ctx, NewState("health"))
		if err != nil {
			t.Fatalf("HealthCheckNode() error = %v, want nil even when degraded", err)
		}

		if result.Healthy {
			t.Error("Healthy should be false with missing username")
		}
		if result.Health == nil || len(result.Health.Results) != 5 {
			t.Fatal("degraded report should still carry every check")
		}
		if result.Health.Results[0].OK {
			t.Error("username check should fail when GITLAB_USERNAME is unset")
		}
		if !strings.Contains(result.Output, "GITLAB_USERNAME is not set") {
			t.Errorf("Output = %q, want username failure line", result.Output)
		}
	})
}
