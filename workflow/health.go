package workflow

import (
	"fmt"
	"time"

	"github.com/randalmurphal/flowgraph/pkg/flowgraph"

	glflow "github.com/glflowdev/glflow"
)

// HealthCheckNode runs the environment health checks. The node never fails:
// degraded results are recorded on the state and routed to notification.
//
// Prerequisites: none
// Updates: state.Output, state.Health, state.Healthy, state.HealthCheckedAt
func HealthCheckNode(ctx flowgraph.Context, state State) (State, error) {
	cfg := ConfigFromContext(ctx)
	if cfg == nil {
		return state, fmt.Errorf("glflow.Config not found in context")
	}

	doctor := glflow.NewDoctor(cfg, glflow.WithRunner(GetRunner(ctx)))
	report := doctor.CheckHealth(ctx)

	state.Health = &report
	state.Healthy = report.Healthy()
	state.HealthCheckedAt = time.Now()
	state.Output = report.String()
	state.TargetBranch = cfg.TargetBranch

	return state, nil
}
