// Delete command removes an entity and its relationships.
package main

import (
	"github.com/spf13/cobra"
)

type deleteResult struct {
	Entity  string `json:"entity"`
	ID      string `json:"id"`
	Deleted bool   `json:"deleted"`
}

func newDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <entity> <id>",
		Short: "Delete an entity",
		Long: `Delete removes the entity and every relationship entry that names it.
Reference fields such as lead_id on other entities are not changed.`,
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
			if !sess.store.Delete(t, args[1]) {
				return notFound("crm.delete", t, args[1])
			}
			if err := sess.save(); err != nil {
				return err
			}
			return a.render(deleteResult{Entity: string(t), ID: args[1], Deleted: true})
		},
	}
}
