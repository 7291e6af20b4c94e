package workflow

import (
	"fmt"
	"time"

	"github.com/randalmurphal/flowgraph/pkg/flowgraph"

	glflow "github.com/glflowdev/glflow"
)

// RebaseNode rebases the current branch onto the configured target branch
// and force-pushes the result.
//
// Prerequisites: none
// Updates: state.Output, state.Rebased, state.RebasedAt (state.Error on failure)
func RebaseNode(ctx flowgraph.Context, state State) (State, error) {
	cfg := ConfigFromContext(ctx)
	if cfg == nil {
		return state, fmt.Errorf("glflow.Config not found in context")
	}

	rebaser := glflow.NewRebaser(cfg, glflow.WithRunner(GetRunner(ctx)))
	outcome := rebaser.Rebase(ctx)

	state.Output = outcome.Message
	state.TargetBranch = cfg.TargetBranch
	if !outcome.OK {
		// Conflicts and push failures are reported, not fatal to the graph.
		state.Error = outcome.Message
		return state, nil
	}

	state.Rebased = true
	state.RebasedAt = time.Now()

	return state, nil
}
