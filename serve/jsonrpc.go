package serve

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/glflowdev/glflow/log"
)

// JSON-RPC 2.0 envelope types.
// See: https://www.jsonrpc.org/specification

// JSONRPCRequest represents a JSON-RPC 2.0 request object.
type JSONRPCRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      any             `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// JSONRPCResponse represents a JSON-RPC 2.0 response object.
type JSONRPCResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      any             `json:"id"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *JSONRPCError   `json:"error,omitempty"`
}

// JSONRPCError represents a JSON-RPC 2.0 error object.
type JSONRPCError struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// Standard JSON-RPC 2.0 error codes.
const (
	// Parse error: invalid JSON was received by the server
	ErrCodeParseError = -32700

	// Invalid request: the JSON sent is not a valid Request object
	ErrCodeInvalidRequest = -32600

	// Method not found: the method does not exist / is not available
	ErrCodeMethodNotFound = -32601

	// Invalid params: invalid method parameter(s)
	ErrCodeInvalidParams = -32602

	// Internal error: internal JSON-RPC error
	ErrCodeInternalError = -32603
)

// Standard error messages.
const (
	ErrMsgParseError     = "Parse error"
	ErrMsgInvalidRequest = "Invalid Request"
	ErrMsgMethodNotFound = "Method not found"
	ErrMsgInvalidParams  = "Invalid params"
	ErrMsgInternalError  = "Internal error"
)

// NewJSONRPCError creates a new JSON-RPC error with the given code and message.
func NewJSONRPCError(code int, message string) *JSONRPCError {
	return &JSONRPCError{
		Code:    code,
		Message: message,
	}
}

// MethodHandler handles a single JSON-RPC method call. Workflow failures are
// results, not errors: a handler returns a *JSONRPCError only for requests it
// could not act on at all.
type MethodHandler func(ctx context.Context, params json.RawMessage) (any, *JSONRPCError)

// MethodRegistry holds the registered JSON-RPC methods.
type MethodRegistry struct {
	methods map[string]MethodHandler
}

// NewMethodRegistry creates an empty method registry.
func NewMethodRegistry() *MethodRegistry {
	return &MethodRegistry{
		methods: make(map[string]MethodHandler),
	}
}

// Register registers a handler under the given method name.
func (r *MethodRegistry) Register(name string, handler MethodHandler) {
	r.methods[name] = handler
}

// Methods returns the registered method names.
func (r *MethodRegistry) Methods() []string {
	names := make([]string, 0, len(r.methods))
	for name := range r.methods {
		names = append(names, name)
	}
	return names
}

// Dispatch calls the handler registered for method. A panicking handler is
// reported as an internal error so one bad request cannot take down the
// transport loop.
func (r *MethodRegistry) Dispatch(ctx context.Context, method string, params json.RawMessage) (result any, rpcErr *JSONRPCError) {
	handler, ok := r.methods[method]
	if !ok {
		return nil, NewJSONRPCError(ErrCodeMethodNotFound, ErrMsgMethodNotFound)
	}

	defer func() {
		if rec := recover(); rec != nil {
			log.Error("method handler panicked", "method", method, "panic", rec)
			result = nil
			rpcErr = NewJSONRPCError(ErrCodeInternalError, ErrMsgInternalError)
		}
	}()

	return handler(ctx, params)
}

// ValidateJSONRPCRequest validates a JSON-RPC request envelope. The ID may be
// any JSON value or absent (a notification), and params are method-specific,
// so neither is checked here.
func ValidateJSONRPCRequest(req *JSONRPCRequest) *JSONRPCError {
	if req.JSONRPC != "2.0" {
		return NewJSONRPCError(ErrCodeInvalidRequest, "jsonrpc version must be '2.0'")
	}
	if req.Method == "" {
		return NewJSONRPCError(ErrCodeInvalidRequest, "method is required")
	}
	return nil
}

// ParseJSONRPCRequest parses and validates a JSON-RPC request from a byte slice.
func ParseJSONRPCRequest(data []byte) (*JSONRPCRequest, *JSONRPCError) {
	var req JSONRPCRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, NewJSONRPCError(ErrCodeParseError, ErrMsgParseError)
	}

	if validationErr := ValidateJSONRPCRequest(&req); validationErr != nil {
		return nil, validationErr
	}

	return &req, nil
}

// NewJSONRPCResponse builds the response envelope for id. A result that
// cannot be marshalled is downgraded to an internal error rather than
// producing a malformed response.
func NewJSONRPCResponse(id, result any, rpcErr *JSONRPCError) JSONRPCResponse {
	resp := JSONRPCResponse{
		JSONRPC: "2.0",
		ID:      id,
	}

	if rpcErr != nil {
		resp.Error = rpcErr
		return resp
	}

	raw, err := json.Marshal(result)
	if err != nil {
		resp.Error = NewJSONRPCError(ErrCodeInternalError, ErrMsgInternalError)
		return resp
	}
	resp.Result = raw
	return resp
}

// WriteJSONRPCResponse writes a JSON-RPC response to the HTTP response writer.
func WriteJSONRPCResponse(w http.ResponseWriter, id, result any, rpcErr *JSONRPCError) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(NewJSONRPCResponse(id, result, rpcErr)); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}

// ReadJSONRPCRequest reads and parses a JSON-RPC request from an HTTP request.
func ReadJSONRPCRequest(r *http.Request) (*JSONRPCRequest, *JSONRPCError) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, NewJSONRPCError(ErrCodeParseError, "failed to read request body")
	}
	defer r.Body.Close()

	if len(body) == 0 {
		return nil, NewJSONRPCError(ErrCodeInvalidRequest, "empty request body")
	}

	return ParseJSONRPCRequest(body)
}
