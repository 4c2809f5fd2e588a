package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// sourcesCmd lists the wired adapters and the configured precedence.
var sourcesCmd = &cobra.Command{
	Use:     "sources",
	Short:   "List wired source adapters and precedence",
	GroupID: "info",
	Args:    cobra.NoArgs,
	RunE:    runSources,
}

func init() {
	rootCmd.AddCommand(sourcesCmd)
}

func runSources(_ *cobra.Command, _ []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	precedence := client.Precedence()
	fmt.Fprintln(os.Stdout, "Precedence:", precedence.String())
	fmt.Fprintln(os.Stdout, "Authoritative:", precedence.Authoritative())
	fmt.Fprintln(os.Stdout)
	fmt.Fprintln(os.Stdout, "Wired adapters:")
	for _, id := range client.Adapters().IDs() {
		marker := "secondary"
		if id == precedence.Authoritative() {
			marker = "authoritative"
		}
		fmt.Fprintf(os.Stdout, "  %-12s %s\n", id, marker)
	}
	return nil
}
