package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/glflowdev/glflow/workflow"
)

var createTitle string
var createDescription string
var createDraft bool

var createMRCmd = &cobra.Command{
	Use:   "create-mr",
	Short: "Push the current branch and open a merge request",
	Long: `Push the current branch to origin and open a merge request against the
configured target branch.

The merge request is created with 'glab mr create', so glab must be
installed and authenticated. Run 'glflow health' to check.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		draft := cfg.Draft
		if cmd.Flags().Changed("draft") {
			draft = createDraft
		}

		svcs := workflow.NewServices(cfg)
		state := workflow.NewState("create-mr").WithMergeRequest(createTitle, createDescription, draft)
		result, err := workflow.RunMergeRequest(cmd.Context(), svcs, state)
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
	createMRCmd.Flags().StringVarP(&createTitle, "title", "t", "", "Merge request title (required)")
	createMRCmd.Flags().StringVarP(&createDescription, "description", "d", "", "Merge request description")
	createMRCmd.Flags().BoolVar(&createDraft, "draft", false, "Mark the merge request as a draft (defaults from config)")
	_ = createMRCmd.MarkFlagRequired("title")
	rootCmd.AddCommand(createMRCmd)
}
