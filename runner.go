package glflow

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"sync"
)

// Result holds the outcome of one external command invocation. A non-zero
// ExitCode is ordinary data; Run only returns an error when the command could
// not be executed at all.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Runner executes external commands. The working directory is passed per
// call so concurrent operations never share process-global state.
type Runner interface {
	Run(ctx context.Context, dir, name string, args ...string) (Result, error)
}

// ExecRunner runs commands via os/exec.
type ExecRunner struct{}

// NewExecRunner creates a runner backed by os/exec.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run executes the command in dir, honoring ctx for cancellation. It returns
// an error only for failures to execute: a missing binary wraps
// ErrToolUnavailable, an expired deadline wraps ErrCommandTimeout. A command
// that ran and exited non-zero returns a nil error with the exit code and
// captured streams in the Result.
func (r *ExecRunner) Run(ctx context.Context, dir, name string, args ...string) (Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := Result{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}
	if err == nil {
		return res, nil
	}
	res.ExitCode = -1

	// A killed process surfaces as a plain exit error; check the context
	// first so deadline expiry is not mistaken for a tool failure.
	if ctxErr := ctx.Err(); ctxErr != nil {
		cause := ctxErr
		if errors.Is(ctxErr, context.DeadlineExceeded) {
			cause = fmt.Errorf("%w: %s", ErrCommandTimeout, name)
		}
		return res, &CommandError{Command: name, Args: args, ExitCode: -1, Stderr: res.Stderr, Err: cause}
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		res.ExitCode = exitErr.ExitCode()
		return res, nil
	}

	if errors.Is(err, exec.ErrNotFound) {
		return res, &CommandError{Command: name, Args: args, ExitCode: -1, Err: fmt.Errorf("%w: %s", ErrToolUnavailable, name)}
	}

	return res, &CommandError{Command: name, Args: args, ExitCode: -1, Stderr: res.Stderr, Err: err}
}

// MockResponse defines a canned response for MockRunner.
type MockResponse struct {
	Stdout   string
	Stderr   string
	ExitCode int
	Err      error
}

// MockCall records a single invocation made against MockRunner.
type MockCall struct {
	Command string
	Args    []string
	Dir     string
}

// MockRunner is a test double that records calls and returns configured
// responses without executing anything.
type MockRunner struct {
	mu sync.Mutex

	// Responses maps command patterns to responses. Patterns are matched in
	// order of specificity: "cmd arg1 arg2" (exact), then "cmd", then "*".
	Responses map[string]MockResponse

	// DefaultResponse is used when no pattern matches.
	DefaultResponse MockResponse

	// Calls records every invocation in order.
	Calls []MockCall
}

// NewMockRunner creates a mock runner with no configured responses. Unmatched
// commands succeed with empty output.
func NewMockRunner() *MockRunner {
	return &MockRunner{
		Responses: make(map[string]MockResponse),
	}
}

// mockExpectation configures the response for one pattern.
type mockExpectation struct {
	runner  *MockRunner
	pattern string
}

// OnCommand starts configuring the response for a command. With args it
// matches that exact invocation; without args it matches any invocation of
// the command.
func (m *MockRunner) OnCommand(name string, args ...string) *mockExpectation {
	pattern := name
	if len(args) > 0 {
		pattern = name + " " + strings.Join(args, " ")
	}
	return &mockExpectation{runner: m, pattern: pattern}
}

// OnAnyCommand starts configuring the wildcard response.
func (m *MockRunner) OnAnyCommand() *mockExpectation {
	return &mockExpectation{runner: m, pattern: "*"}
}

// Return configures a successful response with the given stdout, or a
// run-level failure when err is non-nil.
func (e *mockExpectation) Return(stdout string, err error) *MockRunner {
	e.runner.Responses[e.pattern] = MockResponse{Stdout: stdout, Err: err}
	return e.runner
}

// Fail configures a response where the command ran but exited non-zero with
// the given stderr.
func (e *mockExpectation) Fail(exitCode int, stderr string) *MockRunner {
	e.runner.Responses[e.pattern] = MockResponse{ExitCode: exitCode, Stderr: stderr}
	return e.runner
}

// Respond configures the full response verbatim.
func (e *mockExpectation) Respond(resp MockResponse) *MockRunner {
	e.runner.Responses[e.pattern] = resp
	return e.runner
}

// Run records the call and returns the configured response.
func (m *MockRunner) Run(_ context.Context, dir, name string, args ...string) (Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, MockCall{Command: name, Args: args, Dir: dir})

	resp, ok := m.Responses[name+" "+strings.Join(args, " ")]
	if !ok {
		resp, ok = m.Responses[name]
	}
	if !ok {
		resp, ok = m.Responses["*"]
	}
	if !ok {
		resp = m.DefaultResponse
	}

	return Result{ExitCode: resp.ExitCode, Stdout: resp.Stdout, Stderr: resp.Stderr}, resp.Err
}

// WasCalled reports whether the command was invoked, optionally with the
// given leading arguments.
func (m *MockRunner) WasCalled(name string, args ...string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, call := range m.Calls {
		if call.Command != name {
			continue
		}
		if len(args) == 0 {
			return true
		}
		if len(call.Args) >= len(args) && argsMatch(call.Args[:len(args)], args) {
			return true
		}
	}
	return false
}

// CallCount returns the number of invocations of the command.
func (m *MockRunner) CallCount(name string) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	count := 0
	for _, call := range m.Calls {
		if call.Command == name {
			count++
		}
	}
	return count
}

// argsMatch reports whether two argument slices are equal.
func argsMatch(actual, expected []string) bool {
	if len(actual) != len(expected) {
		return false
	}
	for i := range actual {
		if actual[i] != expected[i] {
			return false
		}
	}
	return true
}
