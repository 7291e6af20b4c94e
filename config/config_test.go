package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestResolver_Defaults(t *testing.T) {
	resolver := NewResolver(ResolverConfig{
		Defaults: map[string]string{
			"target_branch": "staging",
			"draft":         "false",
		},
	})

	cfg := resolver.Resolve()

	if got := cfg.Get("target_branch"); got != "staging" {
		t.Errorf("target_branch = %q, want %q", got, "staging")
	}
	if got := cfg.Source("target_branch"); got != SourceDefault {
		t.Errorf("source = %q, want %q", got, SourceDefault)
	}
}

func TestResolver_EnvOverridesDefaults(t *testing.T) {
	t.Setenv("GLFLOW_TARGET_BRANCH", "main")

	resolver := NewResolver(ResolverConfig{
		EnvPrefix: "GLFLOW_",
		Defaults: map[string]string{
			"target_branch": "staging",
		},
	})

	cfg := resolver.Resolve()

	if got := cfg.Get("target_branch"); got != "main" {
		t.Errorf("target_branch = %q, want %q", got, "main")
	}
	if got := cfg.Source("target_branch"); got != SourceEnv {
		t.Errorf("source = %q, want %q", got, SourceEnv)
	}
}

func TestResolver_EnvAliases(t *testing.T) {
	t.Run("alias sets value", func(t *testing.T) {
		t.Setenv("GITLAB_USERNAME", "alice")

		resolver := NewResolver(ResolverConfig{
			EnvPrefix:  "GLFLOW_",
			EnvAliases: map[string]string{"username": "GITLAB_USERNAME"},
		})

		cfg := resolver.Resolve()

		if got := cfg.Get("username"); got != "alice" {
			t.Errorf("username = %q, want %q", got, "alice")
		}
		if got := cfg.Source("username"); got != SourceEnv {
			t.Errorf("source = %q, want %q", got, SourceEnv)
		}
	})

	t.Run("prefixed variable beats alias", func(t *testing.T) {
		t.Setenv("GITLAB_USERNAME", "alice")
		t.Setenv("GLFLOW_USERNAME", "bob")

		resolver := NewResolver(ResolverConfig{
			EnvPrefix:  "GLFLOW_",
			EnvAliases: map[string]string{"username": "GITLAB_USERNAME"},
		})

		cfg := resolver.Resolve()

		if got := cfg.Get("username"); got != "bob" {
			t.Errorf("username = %q, want %q", got, "bob")
		}
	})

	t.Run("alias works without prefix match", func(t *testing.T) {
		t.Setenv("PROJECT_DIR", "/repo")

		resolver := NewResolver(ResolverConfig{
			EnvAliases: map[string]string{"project_dir": "PROJECT_DIR"},
		})

		cfg := resolver.Resolve()

		if got := cfg.Get("project_dir"); got != "/repo" {
			t.Errorf("project_dir = %q, want %q", got, "/repo")
		}
	})
}

func TestResolver_DeclaredKeys(t *testing.T) {
	// A key with no default and no file value is still read from the
	// environment when declared in Keys.
	t.Setenv("GLFLOW_GITLAB_TOKEN", "glpat-xyz")

	resolver := NewResolver(ResolverConfig{
		Keys:      []string{"gitlab_token"},
		EnvPrefix: "GLFLOW_",
	})

	cfg := resolver.Resolve()

	if got := cfg.Get("gitlab_token"); got != "glpat-xyz" {
		t.Errorf("gitlab_token = %q, want %q", got, "glpat-xyz")
	}
}

func TestResolver_GlobalConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	os.WriteFile(configPath, []byte("target_branch: develop\n"), 0644)

	resolver := NewResolverWithPaths(ResolverConfig{
		Defaults: map[string]string{
			"target_branch": "staging",
		},
	}, configPath, "")

	cfg := resolver.Resolve()

	if got := cfg.Get("target_branch"); got != "develop" {
		t.Errorf("target_branch = %q, want %q", got, "develop")
	}
	if got := cfg.Source("target_branch"); got != SourceGlobal {
		t.Errorf("source = %q, want %q", got, SourceGlobal)
	}
}

func TestResolver_LocalConfig(t *testing.T) {
	tmpDir := t.TempDir()

	// Create git directory
	gitDir := filepath.Join(tmpDir, ".git")
	os.MkdirAll(gitDir, 0755)

	// Create local config
	localConfig := filepath.Join(tmpDir, ".glflow.yaml")
	os.WriteFile(localConfig, []byte("draft: true\n"), 0644)

	resolver := NewResolver(ResolverConfig{
		LocalConfigName: ".glflow.yaml",
		GitRootFinder: func(_ string) (string, error) {
			return tmpDir, nil
		},
		Defaults: map[string]string{
			"draft": "false",
		},
	})

	cfg := resolver.Resolve()

	if got := cfg.Get("draft"); got != "true" {
		t.Errorf("draft = %q, want %q", got, "true")
	}
	if got := cfg.Source("draft"); got != SourceLocal {
		t.Errorf("source = %q, want %q", got, SourceLocal)
	}
}

func TestResolver_Priority(t *testing.T) {
	tmpDir := t.TempDir()

	// Create global config
	globalDir := filepath.Join(tmpDir, "global")
	os.MkdirAll(globalDir, 0755)
	globalConfig := filepath.Join(globalDir, "config.yaml")
	os.WriteFile(globalConfig, []byte("target_branch: global-branch\n"), 0644)

	// Create local config
	localDir := filepath.Join(tmpDir, "local")
	os.MkdirAll(filepath.Join(localDir, ".git"), 0755)
	localConfig := filepath.Join(localDir, ".glflow.yaml")
	os.WriteFile(localConfig, []byte("target_branch: local-branch\n"), 0644)

	t.Setenv("TARGET_BRANCH", "env-branch")

	resolver := NewResolverWithPaths(ResolverConfig{
		EnvPrefix:  "GLFLOW_",
		EnvAliases: map[string]string{"target_branch": "TARGET_BRANCH"},
		Defaults: map[string]string{
			"target_branch": "staging",
		},
	}, globalConfig, localConfig)

	cfg := resolver.Resolve()

	// Env should win
	if got := cfg.Get("target_branch"); got != "env-branch" {
		t.Errorf("target_branch = %q, want %q (env should have highest priority)", got, "env-branch")
	}
}

func TestResolver_ResolveWithFlags(t *testing.T) {
	resolver := NewResolver(ResolverConfig{
		Defaults: map[string]string{
			"target_branch": "staging",
		},
	})

	cfg := resolver.ResolveWithFlags(map[string]string{
		"target_branch": "release",
	})

	if got := cfg.Get("target_branch"); got != "release" {
		t.Errorf("target_branch = %q, want %q", got, "release")
	}
	if got := cfg.Source("target_branch"); got != SourceFlag {
		t.Errorf("source = %q, want %q", got, SourceFlag)
	}
}

func TestResolver_ValidKeys(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	os.WriteFile(configPath, []byte("target_branch: main\ninvalid_key: value\n"), 0644)

	resolver := NewResolverWithPaths(ResolverConfig{
		ValidGlobalKeys: []string{"target_branch", "draft"},
		Defaults: map[string]string{
			"target_branch": "staging",
		},
	}, configPath, "")

	cfg := resolver.Resolve()

	// Valid key should be loaded
	if got := cfg.Get("target_branch"); got != "main" {
		t.Errorf("target_branch = %q, want %q", got, "main")
	}

	// Invalid key should be ignored
	if got := cfg.Get("invalid_key"); got != "" {
		t.Errorf("invalid_key = %q, want empty", got)
	}
}

func TestResolved_All(t *testing.T) {
	resolver := NewResolver(ResolverConfig{
		Defaults: map[string]string{
			"key1": "value1",
			"key2": "value2",
		},
	})

	cfg := resolver.Resolve()
	all := cfg.All()

	if len(all) != 2 {
		t.Errorf("got %d keys, want 2", len(all))
	}
	if all["key1"] != "value1" {
		t.Errorf("key1 = %q, want %q", all["key1"], "value1")
	}
}

func TestResolved_Keys(t *testing.T) {
	resolver := NewResolver(ResolverConfig{
		Defaults: map[string]string{
			"key1": "value1",
			"key2": "value2",
		},
	})

	cfg := resolver.Resolve()
	keys := cfg.Keys()

	if len(keys) != 2 {
		t.Errorf("got %d keys, want 2", len(keys))
	}
}

func TestFindGitRoot(t *testing.T) {
	tmpDir := t.TempDir()

	// Create nested directories
	nested := filepath.Join(tmpDir, "a", "b", "c")
	os.MkdirAll(nested, 0755)

	// Create .git directory in root
	gitDir := filepath.Join(tmpDir, ".git")
	os.MkdirAll(gitDir, 0755)

	// Find from nested directory
	root := findGitRoot(nested)
	if root != tmpDir {
		t.Errorf("findGitRoot() = %q, want %q", root, tmpDir)
	}
}

func TestFindGitRoot_NotFound(t *testing.T) {
	tmpDir := t.TempDir()

	root := findGitRoot(tmpDir)
	if root != "" {
		t.Errorf("findGitRoot() = %q, want empty", root)
	}
}

func TestResolver_BoolValues(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	os.WriteFile(configPath, []byte("draft: true\n"), 0644)

	resolver := NewResolverWithPaths(ResolverConfig{
		Defaults: map[string]string{
			"draft": "false",
		},
	}, configPath, "")

	cfg := resolver.Resolve()

	if got := cfg.Get("draft"); got != "true" {
		t.Errorf("draft = %q, want %q", got, "true")
	}
}
