// Reset command empties the data directory.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newResetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Delete every entity and relationship",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := a.openSession()
			if err != nil {
				return err
			}
			sess.store.Clear()
			if err := sess.save(); err != nil {
				return err
			}
			a.logger.Info("store reset", "dir", sess.dir)
			_, err = fmt.Fprintln(a.out, "crm data reset:", sess.dir)
			return err
		},
	}
}
