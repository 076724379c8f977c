package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/qref/internal/config"
	"github.com/aidanlsb/qref/internal/ui"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the qref configuration file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default config file if none exists",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.CreateDefault()
		if err != nil {
			return err
		}
		fmt.Println(ui.Successf("config at %s", path))
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(config.DefaultPath())
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}
