// Package config provides hierarchical configuration resolution for CLI applications.
//
// This package supports layered configuration with clear precedence:
//  1. Environment variables (highest priority)
//  2. Local config (e.g., .glflow.yaml in git root)
//  3. Global config (e.g., ~/.config/glflow/config.yaml)
//  4. Built-in defaults (lowest priority)
//
// # Basic Usage
//
// Create a resolver with your application's settings:
//
//	resolver := config.NewResolver(config.ResolverConfig{
//	    Keys:            []string{"username", "target_branch"},
//	    EnvPrefix:       "GLFLOW_",
//	    GlobalConfigDir: "glflow",
//	    LocalConfigName: ".glflow.yaml",
//	    Defaults: map[string]string{
//	        "target_branch": "staging",
//	    },
//	})
//
//	cfg := resolver.Resolve()
//	fmt.Println(cfg.Get("target_branch"))    // "staging"
//	fmt.Println(cfg.Source("target_branch")) // "default"
//
// # Environment Variables
//
// Environment variables are detected using the configured prefix:
//
//	# With EnvPrefix: "GLFLOW_"
//	GLFLOW_TARGET_BRANCH=main  # sets "target_branch"
//	GLFLOW_DRAFT=true          # sets "draft"
//
// Keys can additionally be bound to bare variable names via EnvAliases, for
// tools whose established interface predates the prefix:
//
//	# With EnvAliases: {"username": "GITLAB_USERNAME"}
//	GITLAB_USERNAME=alice      # sets "username"
//
// When both the alias and the prefixed variable are set, the prefixed
// variable wins.
//
// # Config Sources
//
// Each resolved value tracks where it came from:
//   - "default": Built-in default value
//   - "global": ~/.config/<app>/config.yaml
//   - "local": .glflow.yaml in git root
//   - "env": Environment variable
//   - "flag": Command-line flag (set via ResolveWithFlags)
//
// # Git Root Detection
//
// By default, the resolver looks for the local config in the git repository root.
// You can customize this by providing a GitRootFinder function:
//
//	resolver := config.NewResolver(config.ResolverConfig{
//	    GitRootFinder: func(dir string) (string, error) {
//	        // Custom logic to find git root
//	        return myGitRoot(), nil
//	    },
//	})
package config
