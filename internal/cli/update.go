package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/qref/internal/ui"
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Download the latest page archive into the cache",
	Long: `Downloads the page archive and atomically replaces the local cache.
A failed download leaves the existing cache untouched.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}

		if err := runUpdate(cmd.Context(), store); err != nil {
			return err
		}

		fmt.Println(ui.Success("page cache updated"))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(updateCmd)
}
