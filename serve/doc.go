// Package serve exposes the glflow workflows as a JSON-RPC 2.0 tool server
// for coding agents.
//
// Three methods are registered, each returning a single human-readable
// string:
//   - create_merge_request {title, description}: push the branch, open an MR
//   - rebase_on_staging {}: rebase the branch onto the target and force-push
//   - health_check {}: report on the environment
//
// A failed workflow is still a string result; only malformed requests and
// handler panics become JSON-RPC errors.
//
// Two transports share one method registry. ServeStdio speaks one request
// and one response per line, for agents that spawn the binary directly. The
// HTTP transport serves POST /rpc with optional bearer-token auth (a static
// hashed token or a scoped JWT) and GET /healthz with the plain-text health
// report.
//
// Example usage:
//
//	srv := serve.NewServer(cfg)
//	err := srv.ServeStdio(ctx, os.Stdin, os.Stdout)
package serve
