package gitlab

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	gl "github.com/xanzy/go-gitlab"
)

// Client implements Reader against a GitLab instance.
type Client struct {
	api     *gl.Client
	project string // numeric ID or "group/subgroup/project" path
}

// NewClient creates a read-only GitLab client.
// token is a personal access token. baseURL is the GitLab instance URL
// (empty for gitlab.com). project can be a numeric ID or a full path.
func NewClient(token, baseURL, project string) (*Client, error) {
	if token == "" {
		return nil, ErrNoToken
	}
	if project == "" {
		return nil, fmt.Errorf("gitlab project is required")
	}

	var api *gl.Client
	var err error

	if baseURL != "" {
		api, err = gl.NewClient(token, gl.WithBaseURL(baseURL))
	} else {
		api, err = gl.NewClient(token)
	}
	if err != nil {
		return nil, fmt.Errorf("create gitlab client: %w", err)
	}

	return &Client{
		api:     api,
		project: project,
	}, nil
}

// Project returns the project ID or path this client queries.
func (c *Client) Project() string {
	return c.project
}

// GetMR retrieves a merge request by IID.
func (c *Client) GetMR(ctx context.Context, iid int) (*MergeRequest, error) {
	mr, resp, err := c.api.MergeRequests.GetMergeRequest(c.project, iid, nil, gl.WithContext(ctx))
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get MR !%d: %w", iid, err)
	}
	return mrFromAPI(mr), nil
}

// ListMRs lists merge requests matching the filter.
func (c *Client) ListMRs(ctx context.Context, filter Filter) ([]*MergeRequest, error) {
	mrs, _, err := c.api.MergeRequests.ListProjectMergeRequests(c.project, listOptions(filter), gl.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("list MRs: %w", err)
	}

	result := make([]*MergeRequest, len(mrs))
	for i, mr := range mrs {
		result[i] = mrFromAPI(mr)
	}
	return result, nil
}

// CurrentUser returns the user the token authenticates as.
func (c *Client) CurrentUser(ctx context.Context) (*User, error) {
	u, _, err := c.api.Users.CurrentUser(gl.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("current user: %w", err)
	}
	return &User{
		ID:       u.ID,
		Username: u.Username,
		Name:     u.Name,
		WebURL:   u.WebURL,
	}, nil
}

// listOptions translates a Filter into GitLab API list options.
func listOptions(filter Filter) *gl.ListProjectMergeRequestsOptions {
	opts := &gl.ListProjectMergeRequestsOptions{
		ListOptions: gl.ListOptions{PerPage: 20},
	}

	if filter.State != "" {
		opts.State = gl.Ptr(string(filter.State))
	}
	if filter.SourceBranch != "" {
		opts.SourceBranch = gl.Ptr(filter.SourceBranch)
	}
	if filter.TargetBranch != "" {
		opts.TargetBranch = gl.Ptr(filter.TargetBranch)
	}
	if filter.Author != "" {
		opts.AuthorUsername = gl.Ptr(filter.Author)
	}
	if len(filter.Labels) > 0 {
		opts.Labels = gl.Ptr(gl.LabelOptions(filter.Labels))
	}
	if filter.OrderBy != "" {
		opts.OrderBy = gl.Ptr(filter.OrderBy)
	}
	if filter.Sort != "" {
		opts.Sort = gl.Ptr(filter.Sort)
	}
	if filter.Limit > 0 {
		opts.PerPage = filter.Limit
	}

	return opts
}

// mrFromAPI converts a GitLab API merge request to glflow's view.
func mrFromAPI(mr *gl.MergeRequest) *MergeRequest {
	result := &MergeRequest{
		IID:          mr.IID,
		Title:        mr.Title,
		Description:  mr.Description,
		State:        State(mr.State),
		HasConflicts: mr.HasConflicts,
		SourceBranch: mr.SourceBranch,
		TargetBranch: mr.TargetBranch,
		WebURL:       mr.WebURL,
		Labels:       mr.Labels,
	}

	// Older instances omit the draft field and only mark the title.
	result.Draft = mr.Draft ||
		strings.HasPrefix(mr.Title, "Draft:") ||
		strings.HasPrefix(mr.Title, "WIP:")

	// ChangesCount is a string like "7" or "1000+".
	if mr.ChangesCount != "" {
		if count, err := strconv.Atoi(mr.ChangesCount); err == nil {
			result.ChangedFiles = count
		}
	}

	if mr.Author != nil {
		result.Author = mr.Author.Username
	}
	for _, a := range mr.Assignees {
		result.Assignees = append(result.Assignees, a.Username)
	}
	for _, r := range mr.Reviewers {
		result.Reviewers = append(result.Reviewers, r.Username)
	}

	if mr.CreatedAt != nil {
		result.CreatedAt = *mr.CreatedAt
	}
	if mr.UpdatedAt != nil {
		result.UpdatedAt = *mr.UpdatedAt
	}
	if mr.MergedAt != nil {
		result.MergedAt = mr.MergedAt
	}
	if mr.MergedBy != nil {
		result.MergedBy = mr.MergedBy.Username
	}

	return result
}
