package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/neurocron/neurocron/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View and change CLI configuration",
	Long: `View and change CLI configuration.

Settings live in a YAML file under the config directory and can be
overridden per invocation with NEUROCRON_* environment variables or
flags.

Subcommands:
  view  Show the current configuration
  get   Print one setting
  set   Change one setting
  path  Print the config file location

Examples:
  neurocron config view
  neurocron config get api_url
  neurocron config set default_org org_123`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var configViewCmd = &cobra.Command{
	Use:   "view",
	Short: "Show the current configuration",
	RunE:  runConfigView,
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print one setting",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change one setting",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file location",
	RunE:  runConfigPath,
}

func runConfigView(cmd *cobra.Command, args []string) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	if cmdCtx.Structured() {
		formatter, err := cmdCtx.NewFormatter()
		if err != nil {
			return err
		}
		return formatter.Format(cmdCtx.Config)
	}

	for _, key := range config.Keys() {
		value, err := cmdCtx.Config.Get(key)
		if err != nil {
			return err
		}
		fmt.Printf("%-12s %s\n", key+":", value)
	}
	return nil
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	value, err := cmdCtx.Config.Get(args[0])
	if err != nil {
		return err
	}

	fmt.Println(value)
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	if err := cmdCtx.Config.Set(args[0], args[1]); err != nil {
		return err
	}
	if err := cmdCtx.Config.Save(); err != nil {
		return err
	}

	fmt.Printf("Updated %s\n", args[0])
	return nil
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	path, err := config.FilePath()
	if err != nil {
		return err
	}

	fmt.Println(path)
	return nil
}

func init() {
	configCmd.AddCommand(configViewCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configPathCmd)

	rootCmd.AddCommand(configCmd)
}
