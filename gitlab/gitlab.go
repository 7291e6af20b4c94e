package gitlab

import (
	"context"
	"time"
)

// State represents the state of a merge request, using GitLab's own names.
type State string

const (
	StateOpened State = "opened"
	StateMerged State = "merged"
	StateClosed State = "closed"
	StateLocked State = "locked"
)

// Reader is the interface for read-only GitLab queries.
// Mutations go through the glab CLI, never through this interface.
type Reader interface {
	// GetMR retrieves a merge request by IID.
	GetMR(ctx context.Context, iid int) (*MergeRequest, error)

	// ListMRs lists merge requests matching the filter.
	ListMRs(ctx context.Context, filter Filter) ([]*MergeRequest, error)

	// CurrentUser returns the user the token authenticates as.
	CurrentUser(ctx context.Context) (*User, error)
}

// Filter configures merge request listing.
type Filter struct {
	State        State    // Filter by state (empty = all)
	SourceBranch string   // Filter by source branch
	TargetBranch string   // Filter by target branch
	Author       string   // Filter by author username
	Labels       []string // Filter by labels (all must match)
	OrderBy      string   // Sort field (created_at, updated_at)
	Sort         string   // Sort direction (asc, desc)
	Limit        int      // Maximum number to return (0 = default)
}

// MergeRequest is glflow's view of a GitLab merge request.
type MergeRequest struct {
	IID          int        // MR number within the project
	Title        string     // MR title
	Description  string     // MR description (markdown)
	State        State      // Current state
	Draft        bool       // Whether it's a draft
	HasConflicts bool       // Whether GitLab reports merge conflicts
	SourceBranch string     // Source branch
	TargetBranch string     // Target branch
	WebURL       string     // Web URL
	Author       string     // Author username
	Assignees    []string   // Assignee usernames
	Reviewers    []string   // Reviewer usernames
	Labels       []string   // Applied labels
	ChangedFiles int        // Number of files changed
	CreatedAt    time.Time  // Creation time
	UpdatedAt    time.Time  // Last update time
	MergedAt     *time.Time // Merge time (nil if not merged)
	MergedBy     string     // Username who merged
}

// User is the GitLab user a token authenticates as.
type User struct {
	ID       int
	Username string
	Name     string
	WebURL   string
}
