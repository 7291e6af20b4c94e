// Command glflow automates merge request creation and staging rebases
// for a single GitLab repository.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/glflowdev/glflow/log"
)

var logLevel string

var rootCmd = &cobra.Command{
	Use:   "glflow",
	Short: "GitLab merge request automation for a single repository",
	Long: `glflow automates the GitLab side of a feature-branch workflow: pushing
the current branch and opening a merge request, rebasing it onto the
configured target branch, and checking that the environment is ready.

Configuration is resolved from config files and environment variables.
Run 'glflow config list' to see the resolved values and 'glflow health'
to verify the setup.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return log.Init(log.Config{Level: log.Level(logLevel), Format: "console"})
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level: debug, info, warn, error")
}

func main() {
	err := rootCmd.Execute()
	_ = log.Sync()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
