package serve

import (
	"context"
	"encoding/json"

	glflow "github.com/glflowdev/glflow"
	"github.com/glflowdev/glflow/workflow"
)

// Method names exposed to agent clients.
const (
	MethodCreateMergeRequest = "create_merge_request"
	MethodRebaseOnStaging    = "rebase_on_staging"
	MethodHealthCheck        = "health_check"
)

// Server exposes the glflow workflows as JSON-RPC 2.0 methods for agent
// integrations. The same method registry backs both the stdio and the HTTP
// transport. Every method returns a single human-readable string; a failed
// workflow is still a string result, not a protocol error, so agents always
// get something they can relay.
type Server struct {
	cfg      *glflow.Config
	svcs     *workflow.Services
	registry *MethodRegistry
}

// ServerOption customizes a Server.
type ServerOption func(*Server)

// WithServices overrides the workflow services the server runs with.
// Used by tests to substitute a mock command runner.
func WithServices(svcs *workflow.Services) ServerOption {
	return func(s *Server) {
		s.svcs = svcs
	}
}

// NewServer creates a server for the given configuration and registers the
// three workflow methods.
func NewServer(cfg *glflow.Config, opts ...ServerOption) *Server {
	s := &Server{
		cfg:      cfg,
		registry: NewMethodRegistry(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.svcs == nil {
		s.svcs = workflow.NewServices(cfg)
	}

	s.registry.Register(MethodCreateMergeRequest, s.handleCreateMergeRequest)
	s.registry.Register(MethodRebaseOnStaging, s.handleRebaseOnStaging)
	s.registry.Register(MethodHealthCheck, s.handleHealthCheck)

	return s
}

// Registry returns the server's method registry.
func (s *Server) Registry() *MethodRegistry {
	return s.registry
}

type createMergeRequestParams struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// handleCreateMergeRequest pushes the current branch and opens a merge
// request. The draft flag comes from configuration, not from the request.
func (s *Server) handleCreateMergeRequest(ctx context.Context, params json.RawMessage) (any, *JSONRPCError) {
	var p createMergeRequestParams
	if len(params) > 0 {
		if err := json.Unmarshal(params, &p); err != nil {
			return nil, NewJSONRPCError(ErrCodeInvalidParams, ErrMsgInvalidParams)
		}
	}
	if p.Title == "" {
		return nil, NewJSONRPCError(ErrCodeInvalidParams, "title is required")
	}

	state := workflow.NewState("create-mr").
		WithMergeRequest(p.Title, p.Description, s.cfg.Draft)

	result, err := workflow.RunMergeRequest(ctx, s.svcs, state)
	if err != nil {
		return nil, NewJSONRPCError(ErrCodeInternalError, err.Error())
	}
	return result.Output, nil
}

// handleRebaseOnStaging rebases the current branch onto the configured
// target branch and force-pushes it.
func (s *Server) handleRebaseOnStaging(ctx context.Context, _ json.RawMessage) (any, *JSONRPCError) {
	result, err := workflow.RunRebase(ctx, s.svcs, workflow.NewState("rebase"))
	if err != nil {
		return nil, NewJSONRPCError(ErrCodeInternalError, err.Error())
	}
	return result.Output, nil
}

// handleHealthCheck reports on the environment. The report always comes back
// as a result, healthy or not.
func (s *Server) handleHealthCheck(ctx context.Context, _ json.RawMessage) (any, *JSONRPCError) {
	result, err := workflow.RunHealthCheck(ctx, s.svcs, workflow.NewState("health"))
	if err != nil {
		return nil, NewJSONRPCError(ErrCodeInternalError, err.Error())
	}
	return result.Output, nil
}
