package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	glflow "github.com/glflowdev/glflow"
	"github.com/glflowdev/glflow/config"
	glerrors "github.com/glflowdev/glflow/errors"
)

var configLocal bool
var configGlobalFlag bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and edit glflow configuration",
	Long: `Configuration is resolved from built-in defaults, the global config file
(~/.config/glflow/config.yaml), the local config file (.glflow.yaml in
the git root), and environment variables, in that order of precedence.

'config set' and 'config unset' edit the global file unless --local is
given.`,
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show resolved configuration values and their sources",
	RunE: func(cmd *cobra.Command, args []string) error {
		res := config.NewResolver(glflow.DefaultResolverConfig()).Resolve()

		tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		for _, key := range glflow.ConfigKeys() {
			value, source := res.GetWithSource(key)
			if value == "" {
				fmt.Fprintf(tw, "%s\t(unset)\t\n", key)
				continue
			}
			fmt.Fprintf(tw, "%s\t%s\t(%s)\n", key, displayValue(key, value), source)
		}
		return tw.Flush()
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]
		sc, resolver := saveConfig()

		if configLocal {
			gitRoot := resolver.GitRoot()
			if gitRoot == "" {
				return glerrors.NewNotInGitRepoError()
			}
			if err := sc.SaveLocal(gitRoot, key, value); err != nil {
				return err
			}
			fmt.Printf("Set %s in %s\n", key, resolver.LocalPath())
			return nil
		}

		if err := sc.SaveGlobal(key, value); err != nil {
			return err
		}
		fmt.Printf("Set %s in %s\n", key, resolver.GlobalPath())
		return nil
	},
}

var configUnsetCmd = &cobra.Command{
	Use:   "unset <key>",
	Short: "Remove a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		key := args[0]
		sc, resolver := saveConfig()

		if configLocal {
			gitRoot := resolver.GitRoot()
			if gitRoot == "" {
				return glerrors.NewNotInGitRepoError()
			}
			if err := sc.DeleteLocalKey(gitRoot, key); err != nil {
				return err
			}
			fmt.Printf("Unset %s in %s\n", key, resolver.LocalPath())
			return nil
		}

		if err := sc.DeleteGlobalKey(key); err != nil {
			return err
		}
		fmt.Printf("Unset %s in %s\n", key, resolver.GlobalPath())
		return nil
	},
}

func saveConfig() (config.SaveConfig, *config.Resolver) {
	rc := glflow.DefaultResolverConfig()
	sc := config.SaveConfig{
		GlobalConfigDir: rc.GlobalConfigDir,
		LocalConfigName: rc.LocalConfigName,
		ValidGlobalKeys: rc.ValidGlobalKeys,
		ValidLocalKeys:  rc.ValidLocalKeys,
	}
	return sc, config.NewResolver(rc)
}

// displayValue masks credentials so 'config list' output is safe to paste
// into an issue or chat.
func displayValue(key, value string) string {
	switch key {
	case glflow.KeyGitLabToken, glflow.KeyJWTSecret, glflow.KeySlackWebhook:
		return "(set, hidden)"
	}
	return value
}

func init() {
	configSetCmd.Flags().BoolVar(&configLocal, "local", false, "Edit the local .glflow.yaml instead of the global config")
	configSetCmd.Flags().BoolVar(&configGlobalFlag, "global", false, "Edit the global config (default)")
	configUnsetCmd.Flags().BoolVar(&configLocal, "local", false, "Edit the local .glflow.yaml instead of the global config")
	configUnsetCmd.Flags().BoolVar(&configGlobalFlag, "global", false, "Edit the global config (default)")
	configCmd.AddCommand(configListCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configUnsetCmd)
	rootCmd.AddCommand(configCmd)
}
