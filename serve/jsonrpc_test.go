package serve

import (
	"context"
	"encoding/json"
	"testing"
)

// === JSON-RPC Envelope Tests ===

func TestParseJSONRPCRequest(t *testing.T) {
	t.Run("valid request", func(t *testing.T) {
		data := []byte(`{"jsonrpc":"2.0","id":1,"method":"health_check","params":{"key":"value"}}`)

		req, rpcErr := ParseJSONRPCRequest(data)
		if rpcErr != nil {
			t.Fatalf("ParseJSONRPCRequest() error = %v", rpcErr)
		}

		if req.JSONRPC != "2.0" {
			t.Errorf("JSONRPC = %q, want %q", req.JSONRPC, "2.0")
		}
		if req.Method != "health_check" {
			t.Errorf("Method = %q, want %q", req.Method, "health_check")
		}
		if req.ID != float64(1) {
			t.Errorf("ID = %v, want 1", req.ID)
		}
		if string(req.Params) != `{"key":"value"}` {
			t.Errorf("Params = %s, want the raw params object", req.Params)
		}
	})

	t.Run("notification has nil id", func(t *testing.T) {
		data := []byte(`{"jsonrpc":"2.0","method":"health_check"}`)

		req, rpcErr := ParseJSONRPCRequest(data)
		if rpcErr != nil {
			t.Fatalf("ParseJSONRPCRequest() error = %v", rpcErr)
		}
		if req.ID != nil {
			t.Errorf("ID = %v, want nil for a notification", req.ID)
		}
	})

	tests := []struct {
		name     string
		data     string
		wantCode int
	}{
		{"invalid json", `{not json`, ErrCodeParseError},
		{"missing version", `{"id":1,"method":"health_check"}`, ErrCodeInvalidRequest},
		{"wrong version", `{"jsonrpc":"1.0","id":1,"method":"health_check"}`, ErrCodeInvalidRequest},
		{"missing method", `{"jsonrpc":"2.0","id":1}`, ErrCodeInvalidRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rpcErr := ParseJSONRPCRequest([]byte(tt.data))
			if rpcErr == nil {
				t.Fatal("ParseJSONRPCRequest() should fail")
			}
			if rpcErr.Code != tt.wantCode {
				t.Errorf("code = %d, want %d", rpcErr.Code, tt.wantCode)
			}
			if req != nil {
				t.Error("request should be nil on error")
			}
		})
	}
}

func TestValidateJSONRPCRequest(t *testing.T) {
	valid := &JSONRPCRequest{JSONRPC: "2.0", ID: 1, Method: "health_check"}
	if rpcErr := ValidateJSONRPCRequest(valid); rpcErr != nil {
		t.Errorf("ValidateJSONRPCRequest() error = %v, want nil", rpcErr)
	}

	badVersion := &JSONRPCRequest{JSONRPC: "1.0", Method: "health_check"}
	if rpcErr := ValidateJSONRPCRequest(badVersion); rpcErr == nil || rpcErr.Code != ErrCodeInvalidRequest {
		t.Errorf("ValidateJSONRPCRequest(bad version) = %v, want invalid request", rpcErr)
	}

	noMethod := &JSONRPCRequest{JSONRPC: "2.0", ID: 1}
	if rpcErr := ValidateJSONRPCRequest(noMethod); rpcErr == nil || rpcErr.Code != ErrCodeInvalidRequest {
		t.Errorf("ValidateJSONRPCRequest(no method) = %v, want invalid request", rpcErr)
	}
}

// === Method Registry Tests ===

type ctxKey string

func TestMethodRegistry_Dispatch(t *testing.T) {
	t.Run("registered method", func(t *testing.T) {
		registry := NewMethodRegistry()

		var gotParams json.RawMessage
		var gotValue any
		registry.Register("echo", func(ctx context.Context, params json.RawMessage) (any, *JSONRPCError) {
			gotParams = params
			gotValue = ctx.Value(ctxKey("caller"))
			return "ok", nil
		})

		ctx := context.WithValue(context.Background(), ctxKey("caller"), "test")
		result, rpcErr := registry.Dispatch(ctx, "echo", json.RawMessage(`{"a":1}`))
		if rpcErr != nil {
			t.Fatalf("Dispatch() error = %v", rpcErr)
		}

		if result != "ok" {
			t.Errorf("result = %v, want %q", result, "ok")
		}
		if string(gotParams) != `{"a":1}` {
			t.Errorf("handler params = %s, want the raw params", gotParams)
		}
		if gotValue != "test" {
			t.Error("handler should receive the caller's context")
		}
	})

	t.Run("method not found", func(t *testing.T) {
		registry := NewMethodRegistry()

		result, rpcErr := registry.Dispatch(context.Background(), "missing", nil)
		if rpcErr == nil {
			t.Fatal("Dispatch() should fail for an unregistered method")
		}
		if rpcErr.Code != ErrCodeMethodNotFound {
			t.Errorf("code = %d, want %d", rpcErr.Code, ErrCodeMethodNotFound)
		}
		if result != nil {
			t.Error("result should be nil on error")
		}
	})

	t.Run("handler error passes through", func(t *testing.T) {
		registry := NewMethodRegistry()
		registry.Register("failing", func(ctx context.Context, params json.RawMessage) (any, *JSONRPCError) {
			return nil, NewJSONRPCError(ErrCodeInvalidParams, "bad argument")
		})

		_, rpcErr := registry.Dispatch(context.Background(), "failing", nil)
		if rpcErr == nil {
			t.Fatal("Dispatch() should surface the handler error")
		}
		if rpcErr.Code != ErrCodeInvalidParams {
			t.Errorf("code = %d, want %d", rpcErr.Code, ErrCodeInvalidParams)
		}
		if rpcErr.Message != "bad argument" {
			t.Errorf("message = %q, want %q", rpcErr.Message, "bad argument")
		}
	})

	t.Run("panicking handler becomes internal error", func(t *testing.T) {
		registry := NewMethodRegistry()
		registry.Register("panicking", func(ctx context.Context, params json.RawMessage) (any, *JSONRPCError) {
			panic("boom")
		})

		result, rpcErr := registry.Dispatch(context.Background(), "panicking", nil)
		if rpcErr == nil {
			t.Fatal("Dispatch() should convert a panic to an error")
		}
		if rpcErr.Code != ErrCodeInternalError {
			t.Errorf("code = %d, want %d", rpcErr.Code, ErrCodeInternalError)
		}
		if result != nil {
			t.Error("result should be nil after a panic")
		}
	})
}

// === Response Envelope Tests ===

func TestNewJSONRPCResponse(t *testing.T) {
	t.Run("result", func(t *testing.T) {
		resp := NewJSONRPCResponse(float64(1), "all good", nil)

		if resp.JSONRPC != "2.0" {
			t.Errorf("JSONRPC = %q, want %q", resp.JSONRPC, "2.0")
		}
		if resp.Error != nil {
			t.Errorf("Error = %v, want nil", resp.Error)
		}
		if string(resp.Result) != `"all good"` {
			t.Errorf("Result = %s, want the marshalled string", resp.Result)
		}
	})

	t.Run("error", func(t *testing.T) {
		resp := NewJSONRPCResponse(float64(1), nil, NewJSONRPCError(ErrCodeMethodNotFound, ErrMsgMethodNotFound))

		if resp.Error == nil {
			t.Fatal("Error should be set")
		}
		if resp.Error.Code != ErrCodeMethodNotFound {
			t.Errorf("code = %d, want %d", resp.Error.Code, ErrCodeMethodNotFound)
		}
		if len(resp.Result) != 0 {
			t.Errorf("Result = %s, want empty alongside an error", resp.Result)
		}
	})

	t.Run("unmarshalable result becomes internal error", func(t *testing.T) {
		resp := NewJSONRPCResponse(float64(1), make(chan int), nil)

		if resp.Error == nil {
			t.Fatal("Error should be set for an unmarshalable result")
		}
		if resp.Error.Code != ErrCodeInternalError {
			t.Errorf("code = %d, want %d", resp.Error.Code, ErrCodeInternalError)
		}
	})
}
