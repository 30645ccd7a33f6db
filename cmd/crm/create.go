// Create command adds an entity to a table.
package main

import (
	"github.com/spf13/cobra"
)

func newCreateCmd(a *app) *cobra.Command {
	var data string
	cmd := &cobra.Command{
		Use:   "create <entity> --data <json>",
		Short: "Create an entity",
		Long: `Create decodes --data as an entity of the given type and stores it.
Blank id and timestamps are assigned; unset status and priority fields get
their defaults. The stored entity is printed.

Valid entity types: lead, task, note, appointment, vehicle

Example:
  crm create lead --data '{"name":"Ada Lovelace","email":"ada@example.com"}'
  crm create task --data '{"title":"Call back","due_date":"2026-11-01T09:00:00Z","assignee":"sam","lead_id":"..."}'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := parseEntityType(args[0])
			if err != nil {
				return err
			}
			e, err := parseEntityJSON(t, data)
			if err != nil {
				return err
			}

			sess, err := a.openSession()
			if err != nil {
				return err
			}
			created, err := sess.store.Create(e)
			if err != nil {
				return err
			}
			if err := sess.save(); err != nil {
				return err
			}
			return a.render(created)
		},
	}
	cmd.Flags().StringVar(&data, "data", "", "entity as a JSON object")
	_ = cmd.MarkFlagRequired("data")
	return cmd
}
