// Version command for the crm CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is the release version, set at build time with
// -ldflags "-X main.Version=...".
var Version = "dev"

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the crm version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(a.out, "crm", Version)
			return err
		},
	}
}
