package git

import (
	"errors"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// **Feature: aur-update, Property: Mock forwards arguments to configured functions**
func TestMockGitRunnerImplementsInterface(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("MockGitRunner satisfies GitExecutor for any workDir", prop.ForAll(
		func(workDir string) bool {
			var executor GitExecutor = NewMockGitRunner(workDir)
			return executor != nil && executor.WorkDir() == workDir
		},
		gen.AnyString(),
	))

	properties.Property("Clone calls configured function with url", prop.ForAll(
		func(workDir, url string) bool {
			mock := NewMockGitRunner(workDir)
			var receivedURL string
			mock.CloneFunc = func(u string) error {
				receivedURL = u
				return nil
			}
			return mock.Clone(url) == nil && receivedURL == url
		},
		gen.AnyString(),
		gen.AnyString(),
	))

	properties.Property("ConfigLocal calls configured function with key and value", prop.ForAll(
		func(key, value string) bool {
			mock := NewMockGitRunner("/work")
			var gotKey, gotValue string
			mock.ConfigLocalFunc = func(k, v string) error {
				gotKey, gotValue = k, v
				return nil
			}
			return mock.ConfigLocal(key, value) == nil && gotKey == key && gotValue == value
		},
		gen.AnyString(),
		gen.AnyString(),
	))

	properties.Property("Commit calls configured function with message", prop.ForAll(
		func(message string) bool {
			mock := NewMockGitRunner("/work")
			var received string
			mock.CommitFunc = func(m string) error {
				received = m
				return nil
			}
			return mock.Commit(message) == nil && received == message
		},
		gen.AnyString(),
	))

	properties.Property("Error propagation works correctly", prop.ForAll(
		func(errMsg string) bool {
			mock := NewMockGitRunner("/work")
			expectedErr := errors.New(errMsg)
			mock.PushFunc = func() error {
				return expectedErr
			}
			return errors.Is(mock.Push(), expectedErr)
		},
		gen.AnyString().SuchThat(func(s string) bool { return len(s) > 0 }),
	))

	properties.TestingRun(t)
}

// TestMockGitRunnerDefaultBehavior verifies default behavior when no functions are configured
func TestMockGitRunnerDefaultBehavior(t *testing.T) {
	mock := NewMockGitRunner("/test/dir")

	t.Run("Clone returns nil", func(t *testing.T) {
		if err := mock.Clone("https://aur.archlinux.org/foo.git"); err != nil {
			t.Errorf("expected no error, got %v", err)
		}
	})

	t.Run("Status returns nil without error", func(t *testing.T) {
		entries, err := mock.Status()
		if err != nil || entries != nil {
			t.Errorf("expected nil, nil; got %v, %v", entries, err)
		}
	})

	t.Run("Add, Commit and Push return nil", func(t *testing.T) {
		if err := mock.Add(); err != nil {
			t.Errorf("Add: %v", err)
		}
		if err := mock.Commit("msg"); err != nil {
			t.Errorf("Commit: %v", err)
		}
		if err := mock.Push(); err != nil {
			t.Errorf("Push: %v", err)
		}
	})

	t.Run("WorkDir returns configured directory", func(t *testing.T) {
		if mock.WorkDir() != "/test/dir" {
			t.Errorf("expected /test/dir, got %q", mock.WorkDir())
		}
	})
}
