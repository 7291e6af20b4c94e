package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	glflow "github.com/glflowdev/glflow"
	glerrors "github.com/glflowdev/glflow/errors"
	"github.com/glflowdev/glflow/gitlab"
	"github.com/glflowdev/glflow/workflow"
)

var mrListState string
var mrListLimit int

var titleCaser = cases.Title(language.English)

var mrCmd = &cobra.Command{
	Use:   "mr",
	Short: "Inspect merge requests on GitLab",
}

var mrStatusCmd = &cobra.Command{
	Use:   "status [iid]",
	Short: "Show one merge request",
	Long: `Show a merge request by IID. Without an IID, shows the open merge
request whose source branch is the current branch.

Requires a GitLab API token (gitlab_token / GITLAB_TOKEN).`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		svcs := workflow.NewServices(cfg)
		reader, err := connectGitLab(cmd.Context(), svcs)
		if err != nil {
			return err
		}

		var mr *gitlab.MergeRequest
		if len(args) == 1 {
			iid, err := parseIID(args[0])
			if err != nil {
				return err
			}
			mr, err = reader.GetMR(cmd.Context(), iid)
			if err != nil {
				return glerrors.WrapGitLabError(err)
			}
		} else {
			mr, err = openMRForCurrentBranch(cmd.Context(), cfg, svcs, reader)
			if err != nil {
				return err
			}
		}

		renderMR(os.Stdout, mr)
		return nil
	},
}

var mrListCmd = &cobra.Command{
	Use:   "list",
	Short: "List merge requests",
	Long: `List merge requests in the project, most recently created first.

Requires a GitLab API token (gitlab_token / GITLAB_TOKEN).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		filter, err := listFilter(mrListState, mrListLimit)
		if err != nil {
			return err
		}

		svcs := workflow.NewServices(cfg)
		reader, err := connectGitLab(cmd.Context(), svcs)
		if err != nil {
			return err
		}

		mrs, err := reader.ListMRs(cmd.Context(), filter)
		if err != nil {
			return glerrors.WrapGitLabError(err)
		}
		if len(mrs) == 0 {
			fmt.Println("No merge requests found.")
			return nil
		}

		renderMRList(os.Stdout, mrs)
		return nil
	},
}

// connectGitLab wires a GitLab API client into svcs and translates the
// common failure modes into errors with a fix suggestion.
func connectGitLab(ctx context.Context, svcs *workflow.Services) (gitlab.Reader, error) {
	if err := svcs.ConnectGitLab(ctx); err != nil {
		if errors.Is(err, gitlab.ErrNoToken) {
			return nil, glerrors.NewConfigIncompleteError([]string{"gitlab_token (GITLAB_TOKEN)"})
		}
		return nil, glerrors.WrapGitLabError(err)
	}
	return svcs.GitLab, nil
}

// openMRForCurrentBranch finds the open merge request whose source branch
// is the branch currently checked out in the configured repository.
func openMRForCurrentBranch(ctx context.Context, cfg *glflow.Config, svcs *workflow.Services, reader gitlab.Reader) (*gitlab.MergeRequest, error) {
	git := glflow.NewGit(cfg.RepoPath, glflow.WithGitRunner(svcs.Runner))
	branch, err := git.CurrentBranch(ctx)
	if err != nil {
		return nil, err
	}
	if branch == "" {
		return nil, fmt.Errorf("%w; pass an explicit iid", glflow.ErrNoCurrentBranch)
	}

	mrs, err := reader.ListMRs(ctx, gitlab.Filter{
		State:        gitlab.StateOpened,
		SourceBranch: branch,
		Limit:        1,
	})
	if err != nil {
		return nil, glerrors.WrapGitLabError(err)
	}
	if len(mrs) == 0 {
		return nil, fmt.Errorf("no open merge request for branch %q", branch)
	}
	return mrs[0], nil
}

func parseIID(arg string) (int, error) {
	iid, err := strconv.Atoi(strings.TrimPrefix(arg, "!"))
	if err != nil || iid <= 0 {
		return 0, fmt.Errorf("invalid merge request iid %q", arg)
	}
	return iid, nil
}

func listFilter(state string, limit int) (gitlab.Filter, error) {
	filter := gitlab.Filter{
		OrderBy: "created_at",
		Sort:    "desc",
		Limit:   limit,
	}
	switch state {
	case "all":
		// empty state matches every MR
	case "opened", "merged", "closed", "locked":
		filter.State = gitlab.State(state)
	default:
		return filter, fmt.Errorf("invalid state %q (opened, merged, closed, locked, all)", state)
	}
	return filter, nil
}

func stateLabel(mr *gitlab.MergeRequest) string {
	label := titleCaser.String(string(mr.State))
	if mr.Draft {
		label += " (draft)"
	}
	return label
}

func renderMR(w io.Writer, mr *gitlab.MergeRequest) {
	fmt.Fprintf(w, "!%d %s\n", mr.IID, mr.Title)
	fmt.Fprintf(w, "  State:    %s\n", stateLabel(mr))
	fmt.Fprintf(w, "  Branches: %s -> %s\n", mr.SourceBranch, mr.TargetBranch)
	fmt.Fprintf(w, "  Author:   %s\n", mr.Author)
	if len(mr.Assignees) > 0 {
		fmt.Fprintf(w, "  Assignees: %s\n", strings.Join(mr.Assignees, ", "))
	}
	if len(mr.Reviewers) > 0 {
		fmt.Fprintf(w, "  Reviewers: %s\n", strings.Join(mr.Reviewers, ", "))
	}
	if len(mr.Labels) > 0 {
		fmt.Fprintf(w, "  Labels:   %s\n", strings.Join(mr.Labels, ", "))
	}
	if mr.HasConflicts {
		fmt.Fprintf(w, "  Conflicts: yes\n")
	}
	if mr.MergedAt != nil {
		fmt.Fprintf(w, "  Merged:   %s by %s\n", mr.MergedAt.Format("2006-01-02 15:04"), mr.MergedBy)
	}
	fmt.Fprintf(w, "  URL:      %s\n", mr.WebURL)
}

func renderMRList(w io.Writer, mrs []*gitlab.MergeRequest) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, mr := range mrs {
		fmt.Fprintf(tw, "!%d\t%s\t%s -> %s\t%s\n",
			mr.IID, stateLabel(mr), mr.SourceBranch, mr.TargetBranch, mr.Title)
	}
	tw.Flush()
}

func init() {
	mrListCmd.Flags().StringVar(&mrListState, "state", "opened", "Filter by state: opened, merged, closed, locked, all")
	mrListCmd.Flags().IntVar(&mrListLimit, "limit", 20, "Maximum number of merge requests to list")
	mrCmd.AddCommand(mrStatusCmd)
	mrCmd.AddCommand(mrListCmd)
	rootCmd.AddCommand(mrCmd)
}
