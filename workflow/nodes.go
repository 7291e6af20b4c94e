package workflow

import (
	"fmt"
	"time"

	"github.com/randalmurphal/flowgraph/pkg/flowgraph"

	"github.com/glflowdev/glflow/log"
)

// NodeFunc is a function that processes state and returns updated state.
// It has the same shape as flowgraph's NodeFunc[State], so wrapped nodes
// convert directly when building a graph.
type NodeFunc func(ctx flowgraph.Context, state State) (State, error)

// WithRetry wraps a node with retry logic
func WithRetry(node NodeFunc, maxRetries int) NodeFunc {
	return func(ctx flowgraph.Context, state State) (State, error) {
		var lastErr error
		for i := 0; i < maxRetries; i++ {
			result, err := node(ctx, state)
			if err == nil {
				return result, nil
			}
			lastErr = err
		}
		return state, fmt.Errorf("after %d retries: %w", maxRetries, lastErr)
	}
}

// WithTiming wraps a node with timing metrics
func WithTiming(node NodeFunc) NodeFunc {
	return func(ctx flowgraph.Context, state State) (State, error) {
		start := time.Now()
		result, err := node(ctx, state)
		duration := time.Since(start)
		log.Debug("node execution completed", "run_id", state.RunID, "duration", duration)
		return result, err
	}
}
