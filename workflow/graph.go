package workflow

import (
	"context"
	"fmt"

	"github.com/randalmurphal/flowgraph/pkg/flowgraph"
)

// RunMergeRequest executes the merge request workflow: push the current
// branch, create the MR, then notify.
func RunMergeRequest(ctx context.Context, svcs *Services, state State) (State, error) {
	return runWorkflow(ctx, svcs, "create-mr", CreateMergeRequestNode, state)
}

// RunRebase executes the rebase workflow: rebase the current branch onto
// the target branch, push, then notify.
func RunRebase(ctx context.Context, svcs *Services, state State) (State, error) {
	return runWorkflow(ctx, svcs, "rebase", RebaseNode, state)
}

// RunHealthCheck executes the health check workflow: run the environment
// checks, then notify.
func RunHealthCheck(ctx context.Context, svcs *Services, state State) (State, error) {
	return runWorkflow(ctx, svcs, "health", HealthCheckNode, state)
}

// runWorkflow compiles and runs a linear graph: operation node, then notify.
func runWorkflow(ctx context.Context, svcs *Services, name string, node NodeFunc, state State) (State, error) {
	graph := flowgraph.NewGraph[State]().
		AddNode(name, flowgraph.NodeFunc[State](node)).
		AddNode("notify", NotifyNode).
		AddEdge(name, "notify").
		AddEdge("notify", flowgraph.END).
		SetEntry(name)

	compiled, err := graph.Compile()
	if err != nil {
		return state, fmt.Errorf("compile %s workflow: %w", name, err)
	}

	fctx := flowgraph.NewContext(svcs.InjectAll(ctx))

	result, err := compiled.Run(fctx, state)
	if err != nil {
		return result, err
	}

	result.FinalizeDuration()
	return result, nil
}
