package workflow

import (
	"strings"
	"testing"
	"time"

	glflow "github.com/glflowdev/glflow"
)

// =============================================================================
// State Tests
// =============================================================================

func TestNewState(t *testing.T) {
	state := NewState("create-mr")

	if state.Workflow != "create-mr" {
		t.Errorf("Workflow = %q, want %q", state.Workflow, "create-mr")
	}

	if state.RunID == "" {
		t.Error("RunID should not be empty")
	}

	if !strings.Contains(state.RunID, "create-mr") {
		t.Errorf("RunID = %q, should contain the workflow name", state.RunID)
	}

	if state.StartTime.IsZero() {
		t.Error("StartTime should be set")
	}
}

func TestNewState_UniqueRunIDs(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		state := NewState("rebase")
		if seen[state.RunID] {
			t.Fatalf("duplicate RunID %q", state.RunID)
		}
		seen[state.RunID] = true
	}
}

func TestState_WithMergeRequest(t *testing.T) {
	state := NewState("create-mr").WithMergeRequest("Add feature", "Details here", true)

	if state.Title != "Add feature" {
		t.Errorf("Title = %q, want %q", state.Title, "Add feature")
	}
	if state.Description != "Details here" {
		t.Errorf("Description = %q, want %q", state.Description, "Details here")
	}
	if !state.Draft {
		t.Error("Draft should be true")
	}
}

func TestState_WithTargetBranch(t *testing.T) {
	state := NewState("rebase").WithTargetBranch("main")

	if state.TargetBranch != "main" {
		t.Errorf("TargetBranch = %q, want %q", state.TargetBranch, "main")
	}
}

func TestState_WithRunID(t *testing.T) {
	state := NewState("health").WithRunID("custom-run-1")

	if state.RunID != "custom-run-1" {
		t.Errorf("RunID = %q, want %q", state.RunID, "custom-run-1")
	}
}

func TestState_Validate(t *testing.T) {
	tests := []struct {
		name    string
		state   State
		reqs    []StateRequirement
		wantErr bool
	}{
		{
			name:    "no requirements",
			state:   NewState("test"),
			reqs:    nil,
			wantErr: false,
		},
		{
			name:    "title required but missing",
			state:   NewState("test"),
			reqs:    []StateRequirement{RequireTitle},
			wantErr: true,
		},
		{
			name:    "title required and present",
			state:   NewState("test").WithMergeRequest("Add feature", "", false),
			reqs:    []StateRequirement{RequireTitle},
			wantErr: false,
		},
		{
			name:    "run id required and present",
			state:   NewState("test"),
			reqs:    []StateRequirement{RequireRunID},
			wantErr: false,
		},
		{
			name:    "run id required but missing",
			state:   State{},
			reqs:    []StateRequirement{RequireRunID},
			wantErr: true,
		},
		{
			name:    "health required but missing",
			state:   NewState("test"),
			reqs:    []StateRequirement{RequireHealth},
			wantErr: true,
		},
		{
			name: "health required and present",
			state: func() State {
				s := NewState("test")
				s.Health = &glflow.Report{}
				return s
			}(),
			reqs:    []StateRequirement{RequireHealth},
			wantErr: false,
		},
		{
			name:    "unknown requirement",
			state:   NewState("test"),
			reqs:    []StateRequirement{StateRequirement("bogus")},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.state.Validate(tt.reqs...)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestState_SetError(t *testing.T) {
	state := NewState("test")

	if state.HasError() {
		t.Error("new state should not have an error")
	}

	state.SetError(nil)
	if state.HasError() {
		t.Error("SetError(nil) should not set an error")
	}

	state.SetError(errTest)
	if !state.HasError() {
		t.Error("HasError should be true after SetError")
	}
	if state.Error != "test failure" {
		t.Errorf("Error = %q, want %q", state.Error, "test failure")
	}
}

func TestState_FinalizeDuration(t *testing.T) {
	state := NewState("test")
	state.StartTime = time.Now().Add(-time.Second)

	state.FinalizeDuration()

	if state.TotalDuration < time.Second {
		t.Errorf("TotalDuration = %v, want at least 1s", state.TotalDuration)
	}
}

func TestState_Summary(t *testing.T) {
	tests := []struct {
		name  string
		state func() State
		want  string
	}{
		{
			name:  "pending",
			state: func() State { return NewState("create-mr") },
			want:  "pending",
		},
		{
			name: "failed",
			state: func() State {
				s := NewState("create-mr")
				s.Error = "push rejected"
				return s
			},
			want: "failed",
		},
		{
			name: "mr created",
			state: func() State {
				s := NewState("create-mr")
				s.MRURL = "https://gitlab.example/mr/1"
				return s
			},
			want: "mr-created",
		},
		{
			name: "rebased",
			state: func() State {
				s := NewState("rebase")
				s.Rebased = true
				return s
			},
			want: "rebased",
		},
		{
			name: "healthy",
			state: func() State {
				s := NewState("health")
				s.Health = &glflow.Report{}
				s.Healthy = true
				return s
			},
			want: "healthy",
		},
		{
			name: "degraded",
			state: func() State {
				s := NewState("health")
				s.Health = &glflow.Report{}
				s.Healthy = false
				return s
			},
			want: "degraded",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			summary := tt.state().Summary()
			if !strings.Contains(summary, tt.want) {
				t.Errorf("Summary() = %q, want it to contain %q", summary, tt.want)
			}
		})
	}
}
