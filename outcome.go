package glflow

import "fmt"

// Outcome is the result of one workflow operation: either success or failure,
// each carrying a human-readable message. Operations always return an Outcome
// rather than an error so callers can relay the text to agents verbatim.
type Outcome struct {
	OK      bool
	Message string
}

// Success creates a successful outcome.
func Success(message string) Outcome {
	return Outcome{OK: true, Message: message}
}

// Successf creates a successful outcome with a formatted message.
func Successf(format string, args ...any) Outcome {
	return Outcome{OK: true, Message: fmt.Sprintf(format, args...)}
}

// Failure creates a failed outcome.
func Failure(reason string) Outcome {
	return Outcome{Message: reason}
}

// Failuref creates a failed outcome with a formatted reason.
func Failuref(format string, args ...any) Outcome {
	return Outcome{Message: fmt.Sprintf(format, args...)}
}

// String returns the outcome's message.
func (o Outcome) String() string {
	return o.Message
}
