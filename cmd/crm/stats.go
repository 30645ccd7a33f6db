// Stats command prints store metrics in the Prometheus text format.
package main

import (
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/crm/internal/metrics"
)

func newStatsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print entity and relationship counts as Prometheus metrics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := a.openSession()
			if err != nil {
				return err
			}
			reg, err := metrics.NewRegistry(sess.store, sess.recorder)
			if err != nil {
				return system(err)
			}
			return system(metrics.WriteText(a.out, reg))
		},
	}
}
