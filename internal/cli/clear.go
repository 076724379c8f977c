package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/qref/internal/ui"
)

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all cached pages and metadata",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}

		if err := store.Clear(); err != nil {
			return err
		}

		fmt.Println(ui.Success("page cache cleared"))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(clearCmd)
}
