package cli

import (
	"github.com/spf13/cobra"
)

var renderCmd = &cobra.Command{
	Use:   "render <file>",
	Short: "Render a local page file",
	Long: `Renders a page file from disk without consulting the cache. Useful for
previewing custom pages while writing them.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return printPage(args[0])
	},
}

func init() {
	renderCmd.Flags().BoolVarP(&rawFlag, "raw", "r", false, "Print the raw page source without styling")
	rootCmd.AddCommand(renderCmd)
}
