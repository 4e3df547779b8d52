package aur

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestParseManifest(t *testing.T) {
	tests := []struct {
		name         string
		content      string
		wantPackages []string
		wantIgnore   []string
		wantErr      error
	}{
		{
			name:         "packages and ignore",
			content:      "packages = [\"foo\", \"bar-git\"]\nignore = [\"baz-bin\"]\n",
			wantPackages: []string{"foo", "bar-git"},
			wantIgnore:   []string{"baz-bin"},
		},
		{
			name:       "ignore only",
			content:    "ignore = [\"baz-bin\"]\n",
			wantIgnore: []string{"baz-bin"},
		},
		{
			name:    "empty manifest",
			content: "",
		},
		{
			name:    "unknown key",
			content: "packages = [\"foo\"]\nskip = [\"bar\"]\n",
			wantErr: ErrManifestInvalid,
		},
		{
			name:    "empty name",
			content: "packages = [\"foo\", \" \"]\n",
			wantErr: ErrManifestInvalid,
		},
		{
			name:    "syntax error",
			content: "packages = [\"foo\"\n",
			wantErr: ErrManifestInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := ParseManifest(tt.content)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !equalStrings(m.Packages, tt.wantPackages) {
				t.Errorf("expected packages %v, got %v", tt.wantPackages, m.Packages)
			}
			if !equalStrings(m.Ignore, tt.wantIgnore) {
				t.Errorf("expected ignore %v, got %v", tt.wantIgnore, m.Ignore)
			}
		})
	}
}

func TestLoadManifest(t *testing.T) {
	t.Run("reads file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "packages.toml")
		if err := os.WriteFile(path, []byte("packages = [\"foo\"]\n"), 0644); err != nil {
			t.Fatal(err)
		}
		m, err := LoadManifest(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(m.Packages) != 1 || m.Packages[0] != "foo" {
			t.Errorf("unexpected packages %v", m.Packages)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadManifest(filepath.Join(t.TempDir(), "missing.toml"))
		if !errors.Is(err, ErrManifestNotFound) {
			t.Errorf("expected ErrManifestNotFound, got %v", err)
		}
	})
}

func TestManifestFilter(t *testing.T) {
	m := &Manifest{Ignore: []string{"b"}}
	input := []PackageInfo{{Name: "a"}, {Name: "b"}, {Name: "c"}, {Name: "b"}}

	got := m.Filter(input)
	if len(got) != 2 || got[0].Name != "a" || got[1].Name != "c" {
		t.Errorf("expected [a c], got %+v", got)
	}

	var nilManifest *Manifest
	if len(nilManifest.Filter(input)) != len(input) {
		t.Error("nil manifest should not filter anything")
	}
	if nilManifest.Ignores("a") {
		t.Error("nil manifest should not ignore anything")
	}
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
