package makepkg

// MockBuilder implements Builder for testing.
// Each method can be configured with a custom function to control behavior.
type MockBuilder struct {
	FetchSourcesFunc func() error
	BuildCleanFunc   func() error
	PrintSrcinfoFunc func() (string, error)
	workDir          string
}

// NewMockBuilder creates a new MockBuilder with the specified working directory
func NewMockBuilder(workDir string) *MockBuilder {
	return &MockBuilder{
		workDir: workDir,
	}
}

// FetchSources runs the configured function or succeeds
func (m *MockBuilder) FetchSources() error {
	if m.FetchSourcesFunc != nil {
		return m.FetchSourcesFunc()
	}
	return nil
}

// BuildClean runs the configured function or succeeds
func (m *MockBuilder) BuildClean() error {
	if m.BuildCleanFunc != nil {
		return m.BuildCleanFunc()
	}
	return nil
}

// PrintSrcinfo runs the configured function or returns an empty string
func (m *MockBuilder) PrintSrcinfo() (string, error) {
	if m.PrintSrcinfoFunc != nil {
		return m.PrintSrcinfoFunc()
	}
	return "", nil
}

// WorkDir returns the configured working directory
func (m *MockBuilder) WorkDir() string {
	return m.workDir
}

// Ensure MockBuilder implements Builder interface
var _ Builder = (*MockBuilder)(nil)
