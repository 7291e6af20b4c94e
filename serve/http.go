package serve

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	glflow "github.com/glflowdev/glflow"
	"github.com/glflowdev/glflow/auth"
	"github.com/glflowdev/glflow/log"
)

// methodScopes maps each RPC method to the JWT scope that grants it.
var methodScopes = map[string]string{
	MethodCreateMergeRequest: "mr:create",
	MethodRebaseOnStaging:    "rebase",
	MethodHealthCheck:        "health",
}

// Handler returns the HTTP handler for the server: POST /rpc for JSON-RPC
// calls and GET /healthz for an unauthenticated health report.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/rpc", s.handleRPC)
	mux.HandleFunc("/healthz", s.handleHealthz)
	return mux
}

// ListenAndServe runs the HTTP transport on addr until ctx is cancelled or
// the listener fails.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:    addr,
		Handler: s.Handler(),
	}

	log.Info("rpc server listening", "addr", addr)

	errChan := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("rpc server failed: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		log.Info("shutting down rpc server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		return ctx.Err()
	case err := <-errChan:
		return err
	}
}

func (s *Server) handleRPC(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	req, rpcErr := ReadJSONRPCRequest(r)
	if rpcErr != nil {
		WriteJSONRPCResponse(w, nil, nil, rpcErr)
		return
	}

	if err := s.authorize(r, req.Method); err != nil {
		w.Header().Set("WWW-Authenticate", `Bearer realm="glflow"`)
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}

	result, dispatchErr := s.registry.Dispatch(r.Context(), req.Method, req.Params)
	if req.ID == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	WriteJSONRPCResponse(w, req.ID, result, dispatchErr)
}

// handleHealthz writes the health report as plain text. The endpoint is
// never authenticated and always answers 200; the report text carries the
// per-check status.
func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	report := glflow.NewDoctor(s.cfg, glflow.WithRunner(s.svcs.Runner)).CheckHealth(r.Context())
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintln(w, report.String())
}

// authorize checks the bearer token when token auth is configured. With
// neither a token hash nor a JWT secret set the transport is open, matching
// local stdio use. A static token grants every method; a JWT grants only the
// methods its scopes name.
func (s *Server) authorize(r *http.Request, method string) error {
	if s.cfg.ServeTokenHash == "" && s.cfg.JWTSecret == "" {
		return nil
	}

	token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok || token == "" {
		return errors.New("missing bearer token")
	}

	if s.cfg.ServeTokenHash != "" && auth.VerifyTokenHash(token, s.cfg.ServeTokenHash) {
		return nil
	}

	if s.cfg.JWTSecret != "" {
		jwtCfg := auth.JWTConfig{Secret: []byte(s.cfg.JWTSecret)}
		claims, err := auth.ValidateScopedToken(jwtCfg, token)
		if err == nil {
			scope, known := methodScopes[method]
			if !known {
				// Unknown methods fall through to dispatch, which
				// reports method-not-found.
				return nil
			}
			return auth.RequireScope(claims, scope)
		}
	}

	return errors.New("invalid bearer token")
}
