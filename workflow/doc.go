// Package workflow provides workflow state management and node implementations
// for GitLab merge request automation.
//
// Core types:
//   - State: Workflow execution state with git, merge request, rebase, and health data
//   - NodeFunc: Function signature for workflow nodes
//   - Services: Aggregated services injected into the workflow context
//
// Workflow nodes:
//   - CreateMergeRequestNode: Pushes the current branch and opens a merge request
//   - RebaseNode: Rebases the current branch onto the target branch
//   - HealthCheckNode: Runs environment health checks
//   - NotifyNode: Sends workflow notifications
//
// Example usage:
//
//	svcs := workflow.NewServices(cfg)
//	state := workflow.NewState("create-mr").WithMergeRequest("Add feature", "", false)
//	result, err := workflow.RunMergeRequest(ctx, svcs, state)
package workflow
