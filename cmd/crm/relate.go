// Relate command links two entities under a named relation.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/crm/pkg/types"
)

type relateResult struct {
	Owner    types.EntityType `json:"owner"`
	Relation string           `json:"relation"`
	FromID   string           `json:"from_id"`
	ToID     string           `json:"to_id"`
}

func newRelateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "relate <from> <from-id> <relation> <to> <to-id>",
		Short: "Relate two entities",
		Long: `Relate records that from-id relates to to-id under the relation.
Many relations (lead tasks, vehicles, notes, appointments; task notes;
appointment notes) append an edge, and relating the same pair twice yields
two edges. One relations (lead, task) rewrite the reference field.

Example:
  crm relate lead 0192f5d6-... vehicles vehicle 0192f5d7-...
  crm relate note 0192f5d8-... task task 0192f5d9-...`,
		Args: cobra.ExactArgs(5),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := parseEntityType(args[0])
			if err != nil {
				return err
			}
			to, err := parseEntityType(args[3])
			if err != nil {
				return err
			}
			fromID, rel, toID := args[1], args[2], args[4]

			sess, err := a.openSession()
			if err != nil {
				return err
			}
			ok, err := sess.store.AddRelationship(from, fromID, rel, to, toID)
			if err != nil {
				return err
			}
			if !ok {
				return &types.Error{
					Kind:   types.KindRelationship,
					Op:     "crm.relate",
					Entity: from,
					Err:    fmt.Errorf("%w: %s %s or %s %s", types.ErrRelationship, from, fromID, to, toID),
				}
			}
			if err := sess.save(); err != nil {
				return err
			}
			return a.render(relateResult{Owner: from, Relation: rel, FromID: fromID, ToID: toID})
		},
	}
}
