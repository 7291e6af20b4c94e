package workflow

import (
	"fmt"
	"time"

	nanoid "github.com/matoous/go-nanoid/v2"

	glflow "github.com/glflowdev/glflow"
)

// =============================================================================
// Embeddable State Components
// =============================================================================

// GitState tracks git branch context for a run
type GitState struct {
	Branch       string `json:"branch,omitempty"`
	TargetBranch string `json:"targetBranch,omitempty"`
}

// MergeRequestState tracks merge request creation
type MergeRequestState struct {
	MRURL       string    `json:"mrUrl,omitempty"`
	MRCreatedAt time.Time `json:"mrCreatedAt,omitempty"`
}

// RebaseState tracks rebase execution
type RebaseState struct {
	Rebased   bool      `json:"rebased,omitempty"`
	RebasedAt time.Time `json:"rebasedAt,omitempty"`
}

// HealthState tracks health check execution
type HealthState struct {
	Health          *glflow.Report `json:"health,omitempty"`
	Healthy         bool           `json:"healthy,omitempty"`
	HealthCheckedAt time.Time      `json:"healthCheckedAt,omitempty"`
}

// MetricsState tracks execution metrics
type MetricsState struct {
	StartTime     time.Time     `json:"startTime"`
	TotalDuration time.Duration `json:"totalDuration"`
}

// =============================================================================
// State - Full Workflow State
// =============================================================================

// State is the complete state for glflow workflows
type State struct {
	// Identification
	RunID    string `json:"runId"`
	Workflow string `json:"workflow"`

	// Merge request input
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Draft       bool   `json:"draft,omitempty"`

	// Embedded state components
	GitState
	MergeRequestState
	RebaseState
	HealthState
	MetricsState

	// Output is the operation's user-facing message, success or failure.
	Output string `json:"output,omitempty"`

	// Error tracking
	Error string `json:"error,omitempty"`
}

// NewState creates a new workflow state
func NewState(workflow string) State {
	return State{
		RunID:    generateRunID(workflow),
		Workflow: workflow,
		MetricsState: MetricsState{
			StartTime: time.Now(),
		},
	}
}

// WithRunID sets a custom run ID
func (s State) WithRunID(runID string) State {
	s.RunID = runID
	return s
}

// WithMergeRequest sets the merge request input fields
func (s State) WithMergeRequest(title, description string, draft bool) State {
	s.Title = title
	s.Description = description
	s.Draft = draft
	return s
}

// WithTargetBranch sets the target branch for the workflow
func (s State) WithTargetBranch(branch string) State {
	s.TargetBranch = branch
	return s
}

// FinalizeDuration sets total duration from start time
func (s *State) FinalizeDuration() {
	s.TotalDuration = time.Since(s.StartTime)
}

// SetError sets the error state
func (s *State) SetError(err error) {
	if err != nil {
		s.Error = err.Error()
	}
}

// HasError returns true if state has an error
func (s State) HasError() bool {
	return s.Error != ""
}

// =============================================================================
// State Validation
// =============================================================================

// StateRequirement defines a state prerequisite
type StateRequirement string

const (
	RequireTitle  StateRequirement = "title"
	RequireRunID  StateRequirement = "runId"
	RequireHealth StateRequirement = "health"
)

// Validate checks if state has required fields
func (s State) Validate(requirements ...StateRequirement) error {
	for _, req := range requirements {
		switch req {
		case RequireTitle:
			if s.Title == "" {
				return fmt.Errorf("title required")
			}
		case RequireRunID:
			if s.RunID == "" {
				return fmt.Errorf("runId required")
			}
		case RequireHealth:
			if s.Health == nil {
				return fmt.Errorf("health report required")
			}
		default:
			return fmt.Errorf("unknown requirement: %s", req)
		}
	}
	return nil
}

// =============================================================================
// Helper Functions
// =============================================================================

// generateRunID creates a unique run ID
func generateRunID(workflow string) string {
	timestamp := time.Now().Format("2006-01-02")
	suffix, err := nanoid.Generate("0123456789abcdefghijklmnopqrstuvwxyz", 8)
	if err != nil {
		// Fallback to timestamp-based suffix on entropy failure
		suffix = fmt.Sprintf("%x", time.Now().UnixNano())
	}
	return fmt.Sprintf("%s-%s-%s", timestamp, workflow, suffix)
}

// =============================================================================
// State Summary
// =============================================================================

// Summary returns a human-readable summary of the state
func (s State) Summary() string {
	var status string
	switch {
	case s.Error != "":
		status = "failed"
	case s.MRURL != "":
		status = "mr-created"
	case s.Rebased:
		status = "rebased"
	case s.Health != nil && s.Healthy:
		status = "healthy"
	case s.Health != nil:
		status = "degraded"
	default:
		status = "pending"
	}

	return fmt.Sprintf("Run %s [%s]: %s", s.RunID, status, s.Workflow)
}
