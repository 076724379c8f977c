package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/qref/internal/buildinfo"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("qref " + buildinfo.Summary())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
