// Related command lists the entities linked to an entity under a relation.
package main

import (
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/crm/pkg/types"
)

func newRelatedCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "related <entity> <id> <relation>",
		Short: "List related entities",
		Long: `Related prints the live targets of the relation. Many relations print a
list in the order the edges were added; one relations print the single
target, or null when nothing is linked.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := parseEntityType(args[0])
			if err != nil {
				return err
			}
			id, name := args[1], args[2]

			sess, err := a.openSession()
			if err != nil {
				return err
			}
			rel, err := sess.store.Schema().Lookup(t, name)
			if err != nil {
				return err
			}
			if _, ok := sess.store.Get(t, id); !ok {
				return notFound("crm.related", t, id)
			}

			if rel.Cardinality == types.One {
				e, ok, err := sess.store.GetRelatedSingle(t, id, name)
				if err != nil {
					return err
				}
				if !ok {
					return a.render(nil)
				}
				return a.render(e)
			}

			items, err := sess.store.GetRelated(t, id, name)
			if err != nil {
				return err
			}
			if items == nil {
				items = []types.Entity{}
			}
			return a.render(items)
		},
	}
}
