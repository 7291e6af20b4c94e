package main

import (
	"fmt"

	"github.com/spf13/cobra"

	glflow "github.com/glflowdev/glflow"
	"github.com/glflowdev/glflow/workflow"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check that configuration, glab, and git are ready",
	Long: `Check each prerequisite in turn: configured username, project directory,
target branch, glab authentication, and git availability.

The command always exits 0; problems show up as individual check lines
in the report, not as a failed command.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Health reports missing config as failed checks instead of
		// refusing to run.
		cfg, _ := glflow.LoadConfig()

		svcs := workflow.NewServices(cfg)
		result, err := workflow.RunHealthCheck(cmd.Context(), svcs, workflow.NewState("health"))
		if err != nil {
			return err
		}

		fmt.Println(result.Output)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(healthCmd)
}
