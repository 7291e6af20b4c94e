// Package glflow automates the GitLab merge-request routine for a single
// repository: push the current branch and open an MR, rebase the branch onto
// the staging branch, and report on the health of the surrounding tooling.
// Everything is driven through the git and glab command-line tools; glflow
// keeps no state of its own and relays the tools' output verbatim.
//
// The package is organized into subpackages by domain:
//
//   - config: Layered configuration (defaults, YAML files, environment)
//   - gitlab: Read-only GitLab API client for merge request lookups
//   - notify: Notification services (Slack, log, fan-out)
//   - workflow: Workflow state and flowgraph node implementations
//   - serve: JSON-RPC 2.0 tool server over stdio and HTTP
//   - auth: API keys and bearer tokens for the HTTP tool transport
//   - errors: Operator-facing error classification for the CLI
//   - log: Structured logging
//   - testutil: Test utilities and fixtures
//
// # Quick Start
//
//	cfg, err := glflow.LoadConfig()
//	if err != nil {
//	    // GITLAB_USERNAME or PROJECT_DIR is not set
//	}
//
//	outcome := glflow.NewCreator(cfg).Create(ctx, "Fix login", "Details...", cfg.Draft)
//	fmt.Println(outcome.Message)
//
// Every operation returns an Outcome; failures are descriptive text, never
// panics. See the serve package for exposing the operations as agent tools.
package glflow
