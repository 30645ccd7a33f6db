// Update command applies a partial update to an entity.
package main

import (
	"github.com/spf13/cobra"
)

func newUpdateCmd(a *app) *cobra.Command {
	var data string
	cmd := &cobra.Command{
		Use:   "update <entity> <id> --data <json>",
		Short: "Update fields of an entity",
		Long: `Update applies the fields present in --data to the entity. Keys that
are missing or null are left alone; empty strings and zeros are written.
id and created_at cannot be changed.

Example:
  crm update lead 0192f5d6-... --data '{"lead_status":"QUALIFIED","lead_score":0}'`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := parseEntityType(args[0])
			if err != nil {
				return err
			}
			p, err := parsePatchJSON(t, data)
			if err != nil {
				return err
			}

			sess, err := a.openSession()
			if err != nil {
				return err
			}
			updated, ok, err := sess.store.Update(t, args[1], p)
			if err != nil {
				return err
			}
			if !ok {
				return notFound("crm.update", t, args[1])
			}
			if err := sess.save(); err != nil {
				return err
			}
			return a.render(updated)
		},
	}
	cmd.Flags().StringVar(&data, "data", "", "fields to change as a JSON object")
	_ = cmd.MarkFlagRequired("data")
	return cmd
}
