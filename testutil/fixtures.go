// Package testutil provides git repository fixtures and environment helpers
// for glflow tests.
package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

// ScrubEnv clears every variable glflow reads and points HOME at a scratch
// directory, so a test sees only the environment it sets itself.
func ScrubEnv(t *testing.T) {
	t.Helper()

	for _, env := range os.Environ() {
		if strings.HasPrefix(env, "GLFLOW_") {
			key, _, _ := strings.Cut(env, "=")
			unsetenv(t, key)
		}
	}
	for _, key := range []string{"GITLAB_USERNAME", "PROJECT_DIR", "TARGET_BRANCH", "GITLAB_TOKEN"} {
		unsetenv(t, key)
	}

	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
}

// unsetenv removes key for the duration of the test. Setenv first so the
// original value is restored on cleanup.
func unsetenv(t *testing.T, key string) {
	t.Helper()

	t.Setenv(key, "")
	os.Unsetenv(key)
}

// WriteLocalConfig writes a .glflow.yaml with the given values into dir and
// returns its path.
func WriteLocalConfig(t *testing.T, dir string, values map[string]string) string {
	t.Helper()

	data, err := yaml.Marshal(values)
	if err != nil {
		t.Fatalf("failed to marshal config values: %v", err)
	}

	path := filepath.Join(dir, ".glflow.yaml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("failed to write local config: %v", err)
	}
	return path
}
