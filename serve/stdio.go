package serve

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// ServeStdio reads one JSON-RPC request per line from r and writes one
// response per line to w. Notifications (requests without an id) are
// dispatched but get no response. The loop ends when ctx is cancelled or r
// reaches EOF.
func (s *Server) ServeStdio(ctx context.Context, r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	// Agent payloads can exceed Scanner's default 64 KiB token limit.
	scanner.Buffer(make([]byte, 0, 128*1024), 10*1024*1024)

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		req, rpcErr := ParseJSONRPCRequest([]byte(line))
		if rpcErr != nil {
			if err := enc.Encode(NewJSONRPCResponse(nil, nil, rpcErr)); err != nil {
				return fmt.Errorf("write response: %w", err)
			}
			continue
		}

		result, dispatchErr := s.registry.Dispatch(ctx, req.Method, req.Params)
		if req.ID == nil {
			continue
		}
		if err := enc.Encode(NewJSONRPCResponse(req.ID, result, dispatchErr)); err != nil {
			return fmt.Errorf("write response: %w", err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read requests: %w", err)
	}
	return nil
}
