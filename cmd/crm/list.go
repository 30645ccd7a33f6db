// List command filters, sorts, and paginates entities of one type.
package main

import (
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/crm/internal/query"
	"github.com/mesh-intelligence/crm/pkg/types"
)

type listOptions struct {
	filter string
	sort   string
	order  string
	page   int
	size   int
}

func newListCmd(a *app) *cobra.Command {
	var o listOptions
	cmd := &cobra.Command{
		Use:   "list <entity>",
		Short: "List entities with optional filter, sort, and pagination",
		Long: `List returns one page of entities of the given type.

--filter takes a JSON object of per-field predicates. String fields accept
eq, ne, contains, not_contains, in, not_in, starts_with, ends_with; numeric
fields accept eq, ne, gt, lt, gte, lte, in, not_in; time fields accept eq,
ne, gt, lt, gte, lte, between. Leads also accept
has_upcoming_appointments and vehicle_make.

Pages are numbered from 0. Without --sort, appointments are listed by start
time and vehicles by creation time, newest first; other types keep creation
order.

Example:
  crm list leads --filter '{"lead_status":{"eq":"NEW"}}' --sort name
  crm list leads --filter '{"has_upcoming_appointments":true}'
  crm list tasks --sort due_date --order desc --page 1 --size 10`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := parseEntityType(args[0])
			if err != nil {
				return err
			}
			s, err := parseSort(t, o.sort, o.order)
			if err != nil {
				return err
			}
			size := o.size
			if !cmd.Flags().Changed("size") {
				size = a.cfg.PageSize
			}

			sess, err := a.openSession()
			if err != nil {
				return err
			}
			eng := query.NewEngine(sess.store, query.WithNow(a.now))
			page, err := listPage(eng, t, o.filter, s, o.page, size)
			if err != nil {
				return err
			}
			return a.render(page)
		},
	}
	cmd.Flags().StringVar(&o.filter, "filter", "", "filter as a JSON object")
	cmd.Flags().StringVar(&o.sort, "sort", "", "sort field, e.g. name, created_at, due_date")
	cmd.Flags().StringVar(&o.order, "order", "", "sort order: asc or desc (default asc)")
	cmd.Flags().IntVar(&o.page, "page", 0, "zero-based page index")
	cmd.Flags().IntVar(&o.size, "size", 0, "page size (default from config)")
	return cmd
}

// parseSort checks the sort flags. An empty field means the default sort.
func parseSort(t types.EntityType, field, order string) (*query.Sort, error) {
	if field == "" {
		if order != "" {
			return nil, usageErrorf("--order requires --sort")
		}
		return nil, nil
	}
	f, err := query.ParseSortField(t, field)
	if err != nil {
		return nil, err
	}
	s := &query.Sort{Field: f, Order: query.Asc}
	if order != "" {
		if s.Order, err = query.ParseSortOrder(order); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func listPage(eng *query.Engine, t types.EntityType, filter string, s *query.Sort, page, size int) (any, error) {
	switch t {
	case types.EntityLead:
		return runQuery(eng.Leads, filter, s, page, size)
	case types.EntityTask:
		return runQuery(eng.Tasks, filter, s, page, size)
	case types.EntityNote:
		return runQuery(eng.Notes, filter, s, page, size)
	case types.EntityAppointment:
		return runQuery(eng.Appointments, filter, s, page, size)
	case types.EntityVehicle:
		return runQuery(eng.Vehicles, filter, s, page, size)
	}
	return nil, usageErrorf("cannot list %q", t)
}

func runQuery[F, T any](fn func(query.Request[F]) (query.Page[T], error), filter string, s *query.Sort, page, size int) (any, error) {
	req := query.Request[F]{Sort: s, Page: page, Size: size}
	if filter != "" {
		var f F
		if err := decodeStrict("crm.list", filter, &f); err != nil {
			return nil, err
		}
		req.Filter = &f
	}
	p, err := fn(req)
	if err != nil {
		return nil, err
	}
	return p, nil
}
