package cmd

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"
)

// versionCmd prints build information.
var versionCmd = &cobra.Command{
	Use:     "version",
	Short:   "Print version information",
	GroupID: "info",
	Args:    cobra.NoArgs,
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Fprintf(os.Stdout, "crosscheck %s\n", Version)
		fmt.Fprintf(os.Stdout, "  commit:   %s\n", Commit)
		fmt.Fprintf(os.Stdout, "  built:    %s by %s\n", Date, BuiltBy)
		fmt.Fprintf(os.Stdout, "  platform: %s/%s %s\n", runtime.GOOS, runtime.GOARCH, runtime.Version())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
