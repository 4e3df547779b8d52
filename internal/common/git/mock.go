package git

// MockGitRunner implements GitExecutor for testing.
// Each method can be configured with a custom function to control behavior.
type MockGitRunner struct {
	CloneFunc       func(url string) error
	ConfigLocalFunc func(key, value string) error
	StatusFunc      func() ([]StatusEntry, error)
	AddFunc         func() error
	CommitFunc      func(message string) error
	PushFunc        func() error
	workDir         string
}

// NewMockGitRunner creates a new MockGitRunner with the specified working directory
func NewMockGitRunner(workDir string) *MockGitRunner {
	return &MockGitRunner{
		workDir: workDir,
	}
}

// Clone clones url into the working directory
func (m *MockGitRunner) Clone(url string) error {
	if m.CloneFunc != nil {
		return m.CloneFunc(url)
	}
	return nil
}

// ConfigLocal sets a repository-local config value
func (m *MockGitRunner) ConfigLocal(key, value string) error {
	if m.ConfigLocalFunc != nil {
		return m.ConfigLocalFunc(key, value)
	}
	return nil
}

// Status returns the current git status as a list of StatusEntry
func (m *MockGitRunner) Status() ([]StatusEntry, error) {
	if m.StatusFunc != nil {
		return m.StatusFunc()
	}
	return nil, nil
}

// Add stages every change in the working directory
func (m *MockGitRunner) Add() error {
	if m.AddFunc != nil {
		return m.AddFunc()
	}
	return nil
}

// Commit creates a git commit with the specified message
func (m *MockGitRunner) Commit(message string) error {
	if m.CommitFunc != nil {
		return m.CommitFunc(message)
	}
	return nil
}

// Push pushes commits to the remote repository
func (m *MockGitRunner) Push() error {
	if m.PushFunc != nil {
		return m.PushFunc()
	}
	return nil
}

// WorkDir returns the working directory of the git repository
func (m *MockGitRunner) WorkDir() string {
	return m.workDir
}

// Ensure MockGitRunner implements GitExecutor interface
var _ GitExecutor = (*MockGitRunner)(nil)
