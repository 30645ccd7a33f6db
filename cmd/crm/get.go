// Get command retrieves an entity by ID from a table.
package main

import (
	"github.com/spf13/cobra"
)

func newGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <entity> <id>",
		Short: "Get an entity by ID",
		Long: `Get retrieves an entity of the given type by its ID.

Valid entity types: lead, task, note, appointment, vehicle

Example:
  crm get lead 0192f5d6-3c1e-7a40-8b9e-5c2d1f0a4b3e`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := parseEntityType(args[0])
			if err != nil {
				return err
			}
			sess, err := a.openSession()
			if err != nil {
				return err
			}
			e, ok := sess.store.Get(t, args[1])
			if !ok {
				return notFound("crm.get", t, args[1])
			}
			return a.render(e)
		},
	}
}
