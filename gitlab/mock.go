package gitlab

import "context"

// MockReader is a mock implementation of Reader for testing.
type MockReader struct {
	GetMRFunc       func(ctx context.Context, iid int) (*MergeRequest, error)
	ListMRsFunc     func(ctx context.Context, filter Filter) ([]*MergeRequest, error)
	CurrentUserFunc func(ctx context.Context) (*User, error)
}

// GetMR implements Reader.
func (m *MockReader) GetMR(ctx context.Context, iid int) (*MergeRequest, error) {
	if m.GetMRFunc != nil {
		return m.GetMRFunc(ctx, iid)
	}
	return &MergeRequest{IID: iid, State: StateOpened, WebURL: "https://gitlab.example/mr/1"}, nil
}

// ListMRs implements Reader.
func (m *MockReader) ListMRs(ctx context.Context, filter Filter) ([]*MergeRequest, error) {
	if m.ListMRsFunc != nil {
		return m.ListMRsFunc(ctx, filter)
	}
	return []*MergeRequest{}, nil
}

// CurrentUser implements Reader.
func (m *MockReader) CurrentUser(ctx context.Context) (*User, error) {
	if m.CurrentUserFunc != nil {
		return m.CurrentUserFunc(ctx)
	}
	return &User{ID: 1, Username: "glflow"}, nil
}
