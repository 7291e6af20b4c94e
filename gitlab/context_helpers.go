package gitlab

import "context"

// contextKey is a private type for context keys to avoid collisions.
type contextKey struct{ name string }

var readerKey = &contextKey{"gitlab-reader"}

// ContextWithReader adds a Reader to a context.Context.
// Use ReaderFromContext to retrieve it.
//
// Example:
//
//	client, _ := gitlab.FromRemote(token, remoteURL)
//	ctx := gitlab.ContextWithReader(context.Background(), client)
func ContextWithReader(ctx context.Context, r Reader) context.Context {
	return context.WithValue(ctx, readerKey, r)
}

// ReaderFromContext retrieves a Reader from a context.Context.
// Returns nil if no Reader is present.
func ReaderFromContext(ctx context.Context) Reader {
	if r, ok := ctx.Value(readerKey).(Reader); ok {
		return r
	}
	return nil
}

// MustReaderFromContext retrieves a Reader or panics.
// Use in code where the reader is required and missing is a programming error.
func MustReaderFromContext(ctx context.Context) Reader {
	r := ReaderFromContext(ctx)
	if r == nil {
		panic("gitlab.Reader not found in context")
	}
	return r
}
