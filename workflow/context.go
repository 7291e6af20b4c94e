package workflow

import (
	"context"

	glflow "github.com/glflowdev/glflow"
)

// =============================================================================
// Context Injection Helpers
// =============================================================================
// These helpers allow glflow services to be injected into context.Context
// for use by flowgraph nodes.

// serviceContextKey is a private type for context keys to avoid collisions
type serviceContextKey string

// Context keys for glflow services
const (
	configServiceKey serviceContextKey = "glflow.config"
	runnerServiceKey serviceContextKey = "glflow.runner"
)

// WithConfig adds a resolved configuration to the context
func WithConfig(ctx context.Context, cfg *glflow.Config) context.Context {
	return context.WithValue(ctx, configServiceKey, cfg)
}

// ConfigFromContext extracts the configuration from context
func ConfigFromContext(ctx context.Context) *glflow.Config {
	if cfg, ok := ctx.Value(configServiceKey).(*glflow.Config); ok {
		return cfg
	}
	return nil
}

// MustConfigFromContext extracts the configuration or panics
func MustConfigFromContext(ctx context.Context) *glflow.Config {
	cfg := ConfigFromContext(ctx)
	if cfg == nil {
		panic("glflow/workflow: Config not found in context")
	}
	return cfg
}

// WithRunner adds a command runner to the context.
// This allows nodes to execute git and glab through a mockable interface.
func WithRunner(ctx context.Context, runner glflow.Runner) context.Context {
	return context.WithValue(ctx, runnerServiceKey, runner)
}

// RunnerFromContext extracts the command runner from context.
// Returns nil if not set - callers should fall back to ExecRunner.
func RunnerFromContext(ctx context.Context) glflow.Runner {
	if runner, ok := ctx.Value(runnerServiceKey).(glflow.Runner); ok {
		return runner
	}
	return nil
}

// GetRunner returns the command runner from context, or a default ExecRunner.
// This is the preferred way for nodes to get a runner - it always returns a
// usable runner.
func GetRunner(ctx context.Context) glflow.Runner {
	if runner := RunnerFromContext(ctx); runner != nil {
		return runner
	}
	return glflow.NewExecRunner()
}
