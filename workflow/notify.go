package workflow

import (
	"time"

	"github.com/randalmurphal/flowgraph/pkg/flowgraph"

	"github.com/glflowdev/glflow/notify"
)

// NotifyNode sends a notification based on current state.
//
// This node is typically placed at the end of a workflow to notify
// interested parties of completion or failure. If no notifier is
// configured in the context, this is a no-op.
//
// Updates: None (only sends notification)
func NotifyNode(ctx flowgraph.Context, state State) (State, error) {
	notifier := notify.NotifierFromContext(ctx)
	if notifier == nil {
		return state, nil // No-op if no notifier
	}

	event := notify.Event{
		Type:      determineEventType(state),
		RunID:     state.RunID,
		Workflow:  state.Workflow,
		Branch:    state.Branch,
		Timestamp: time.Now(),
		Metadata:  buildMetadata(state),
	}

	// Set severity based on state
	switch {
	case state.Error != "":
		event.Severity = notify.SeverityError
		event.Message = state.Error
	case event.Type == notify.EventHealthDegraded:
		event.Severity = notify.SeverityWarning
		event.Message = "Health check reported problems"
	default:
		event.Severity = notify.SeverityInfo
		event.Message = "Workflow completed successfully"
	}

	// Notify but don't fail the workflow on notification errors
	_ = notifier.Notify(ctx, event)

	return state, nil
}

// determineEventType determines the event type from state
func determineEventType(state State) notify.EventType {
	switch {
	case state.Error != "":
		return notify.EventRunFailed
	case state.MRURL != "":
		return notify.EventMRCreated
	case state.Rebased:
		return notify.EventBranchRebased
	case state.Health != nil && !state.Healthy:
		return notify.EventHealthDegraded
	default:
		return notify.EventRunCompleted
	}
}

// buildMetadata builds notification metadata from state
func buildMetadata(state State) map[string]any {
	meta := make(map[string]any)

	if state.TargetBranch != "" {
		meta["targetBranch"] = state.TargetBranch
	}
	if state.MRURL != "" {
		meta["mrUrl"] = state.MRURL
	}
	if state.Rebased {
		meta["rebased"] = true
	}
	if state.Health != nil {
		meta["healthy"] = state.Healthy
	}
	if !state.StartTime.IsZero() {
		meta["duration"] = time.Since(state.StartTime).Round(time.Millisecond).String()
	}

	return meta
}
