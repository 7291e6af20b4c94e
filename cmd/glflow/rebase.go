package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/glflowdev/glflow/workflow"
)

var rebaseCmd = &cobra.Command{
	Use:   "rebase",
	Short: "Rebase the current branch onto the target branch",
	Long: `Update the configured target branch from origin, rebase the current
branch onto it, and force-push the result with --force-with-lease.

If the rebase hits conflicts it is aborted and the branch is left as it
was before the command ran.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		svcs := workflow.NewServices(cfg)
		result, err := workflow.RunRebase(cmd.Context(), svcs, workflow.NewState("rebase"))
		if err != nil {
			return err
		}

		fmt.Println(result.Output)
		if result.HasError() {
			os.Exit(1)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(rebaseCmd)
}
