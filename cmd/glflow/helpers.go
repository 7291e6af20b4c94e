package main

import (
	"errors"

	glflow "github.com/glflowdev/glflow"
	glerrors "github.com/glflowdev/glflow/errors"
)

// loadConfig resolves the glflow configuration and converts a
// missing-config error into one that names the keys and how to set them.
func loadConfig() (*glflow.Config, error) {
	cfg, err := glflow.LoadConfig()
	if err != nil {
		if errors.Is(err, glflow.ErrConfigMissing) {
			return nil, glerrors.NewConfigIncompleteError(missingConfigKeys(cfg))
		}
		return nil, err
	}
	return cfg, nil
}

func missingConfigKeys(cfg *glflow.Config) []string {
	var keys []string
	if cfg.Username == "" {
		keys = append(keys, "username (GITLAB_USERNAME)")
	}
	if cfg.RepoPath == "" {
		keys = append(keys, "project_dir (PROJECT_DIR)")
	}
	return keys
}
