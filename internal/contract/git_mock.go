package contract

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockGitClient is a testify mock for the GitClient type.
type MockGitClient struct {
	mock.Mock
}

var _ GitClient = &MockGitClient{} // Compile-time check

// Run implements the GitClient interface.
func (m *MockGitClient) Run(ctx context.Context, repoPath string, args ...string) ([]byte, error) {
	var mockArgs []any
	mockArgs = append(mockArgs, ctx, repoPath)
	for _, arg := range args {
		mockArgs = append(mockArgs, arg)
	}
	ret := m.Called(mockArgs...)
	output, _ := ret.Get(0).([]byte)
	return output, ret.Error(1)
}

// GetRepoRoot implements the GitClient interface.
func (m *MockGitClient) GetRepoRoot(ctx context.Context, contextPath string) (string, error) {
	ret := m.Called(ctx, contextPath)
	root, _ := ret.Get(0).(string)
	return root, ret.Error(1)
}

// VerifyRepository implements the GitClient interface.
func (m *MockGitClient) VerifyRepository(ctx context.Context, contextPath string) error {
	ret := m.Called(ctx, contextPath)
	return ret.Error(0)
}

// HasCommits implements the GitClient interface.
func (m *MockGitClient) HasCommits(ctx context.Context, repoPath string) (bool, error) {
	ret := m.Called(ctx, repoPath)
	return ret.Bool(0), ret.Error(1)
}

// GetNonMergeLog implements the GitClient interface.
func (m *MockGitClient) GetNonMergeLog(ctx context.Context, repoPath string) ([]byte, error) {
	ret := m.Called(ctx, repoPath)
	output, _ := ret.Get(0).([]byte)
	return output, ret.Error(1)
}

// GetAuthorNumstat implements the GitClient interface.
func (m *MockGitClient) GetAuthorNumstat(ctx context.Context, repoPath string, email string) ([]byte, error) {
	ret := m.Called(ctx, repoPath, email)
	output, _ := ret.Get(0).([]byte)
	return output, ret.Error(1)
}

// GetShortlog implements the GitClient interface.
func (m *MockGitClient) GetShortlog(ctx context.Context, repoPath string, includeMerges bool) ([]byte, error) {
	ret := m.Called(ctx, repoPath, includeMerges)
	output, _ := ret.Get(0).([]byte)
	return output, ret.Error(1)
}

// ListTrackedFiles implements the GitClient interface.
func (m *MockGitClient) ListTrackedFiles(ctx context.Context, repoPath string) ([]string, error) {
	ret := m.Called(ctx, repoPath)
	files, _ := ret.Get(0).([]string)
	return files, ret.Error(1)
}

// GetStatus implements the GitClient interface.
func (m *MockGitClient) GetStatus(ctx context.Context, repoPath string) ([]byte, error) {
	ret := m.Called(ctx, repoPath)
	output, _ := ret.Get(0).([]byte)
	return output, ret.Error(1)
}

// GetBlame implements the GitClient interface.
func (m *MockGitClient) GetBlame(ctx context.Context, repoPath string, path string) ([]byte, error) {
	ret := m.Called(ctx, repoPath, path)
	output, _ := ret.Get(0).([]byte)
	return output, ret.Error(1)
}
