// Package gitlab provides read-only access to the GitLab API.
//
// glflow creates merge requests through the glab CLI, not this package;
// the API client exists to answer questions the CLI workflows cannot,
// such as "what is the state of MR !42" or "which MRs target staging".
//
// Core types:
//   - Reader: Interface for querying merge requests and the token's user
//   - Client: Reader implementation backed by xanzy/go-gitlab
//   - MergeRequest: glflow's view of a GitLab merge request
//   - MockReader: Func-field mock for testing
//
// Example usage:
//
//	client, err := gitlab.FromRemote(token, "git@gitlab.com:group/project.git")
//	if err != nil {
//	    return err
//	}
//	mr, err := client.GetMR(ctx, 42)
package gitlab
