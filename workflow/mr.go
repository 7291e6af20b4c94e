package workflow

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/randalmurphal/flowgraph/pkg/flowgraph"

	glflow "github.com/glflowdev/glflow"
	"github.com/glflowdev/glflow/gitlab"
	"github.com/glflowdev/glflow/log"
)

// CreateMergeRequestNode pushes the current branch and opens a merge request
// against the configured target branch.
//
// Prerequisites: state.Title must be set
// Updates: state.Output, state.MRURL, state.MRCreatedAt (state.Error on failure)
func CreateMergeRequestNode(ctx flowgraph.Context, state State) (State, error) {
	if err := state.Validate(RequireTitle); err != nil {
		return state, err
	}

	cfg := ConfigFromContext(ctx)
	if cfg == nil {
		return state, fmt.Errorf("glflow.Config not found in context")
	}

	creator := glflow.NewCreator(cfg, glflow.WithRunner(GetRunner(ctx)))
	outcome := creator.Create(ctx, state.Title, state.Description, state.Draft)

	state.Output = outcome.Message
	state.TargetBranch = cfg.TargetBranch
	if !outcome.OK {
		// Don't return an error for a failed create - the notify node
		// still needs to see and report the failure.
		state.Error = outcome.Message
		return state, nil
	}

	state.MRURL = lastLine(outcome.Message)
	state.MRCreatedAt = time.Now()

	logCreatedMR(ctx, state.MRURL)

	return state, nil
}

// lastLine returns the last non-empty line of a message. Create outcomes
// put the merge request URL there.
func lastLine(message string) string {
	lines := strings.Split(strings.TrimSpace(message), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if line := strings.TrimSpace(lines[i]); line != "" {
			return line
		}
	}
	return ""
}

// logCreatedMR looks the created merge request up through the read-only API
// client, when one is configured, and logs its details at debug level. The
// MR exists whether or not this read succeeds, so failures are only logged.
func logCreatedMR(ctx flowgraph.Context, mrURL string) {
	reader := gitlab.ReaderFromContext(ctx)
	if reader == nil {
		return
	}
	iid, ok := iidFromURL(mrURL)
	if !ok {
		return
	}

	mr, err := reader.GetMR(ctx, iid)
	if err != nil {
		log.Debug("created MR lookup failed", "iid", iid, "error", err)
		return
	}
	log.Debug("merge request created",
		"iid", mr.IID,
		"title", mr.Title,
		"source", mr.SourceBranch,
		"target", mr.TargetBranch,
		"draft", mr.Draft,
	)
}

// iidFromURL extracts the IID from a merge request web URL, whose last path
// segment is the IID (".../-/merge_requests/42").
func iidFromURL(url string) (int, bool) {
	idx := strings.LastIndex(strings.TrimSuffix(url, "/"), "/")
	if idx < 0 {
		return 0, false
	}
	iid, err := strconv.Atoi(strings.TrimSuffix(url, "/")[idx+1:])
	if err != nil || iid <= 0 {
		return 0, false
	}
	return iid, true
}
