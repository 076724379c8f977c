package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/qref/internal/platform"
	"github.com/aidanlsb/qref/internal/ui"
)

var listAllPlatforms bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the cached pages available on this platform",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}

		platforms := []platform.Platform{platform.Common}
		if host := platform.Host(); host != platform.Other {
			platforms = []platform.Platform{host, platform.Common}
		}
		if listAllPlatforms {
			platforms = platform.Known
		}

		names, err := store.ListPages(platforms)
		if err != nil {
			return err
		}
		if len(names) == 0 {
			fmt.Fprintln(os.Stderr, ui.Info("no cached pages; run 'qref update' first"))
			return errNotFound
		}

		for _, name := range names {
			fmt.Println(name)
		}
		return nil
	},
}

func init() {
	listCmd.Flags().BoolVarP(&listAllPlatforms, "all", "a", false, "Include pages for every platform")
	rootCmd.AddCommand(listCmd)
}
