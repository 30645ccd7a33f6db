package query

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/mesh-intelligence/crm/pkg/types"
)

// SortOrder is the sort direction.
type SortOrder string

// Sort directions.
const (
	Asc  SortOrder = "ASC"
	Desc SortOrder = "DESC"
)

// Sort fields. Not every field applies to every entity type; see
// SortFields.
const (
	SortName       = "NAME"
	SortLeadStatus = "LEAD_STATUS"
	SortLeadScore  = "LEAD_SCORE"
	SortTitle      = "TITLE"
	SortDueDate    = "DUE_DATE"
	SortStatus     = "STATUS"
	SortPriority   = "PRIORITY"
	SortStartTime  = "START_TIME"
	SortEndTime    = "END_TIME"
	SortMake       = "MAKE"
	SortModel      = "MODEL"
	SortYear       = "YEAR"
	SortMileage    = "MILEAGE"
	SortCreatedAt  = "CREATED_AT"
	SortUpdatedAt  = "UPDATED_AT"
)

// Sort is a sort key and direction. Field names are matched without regard
// to case. Any order other than DESC sorts ascending.
type Sort struct {
	Field string    `json:"field"`
	Order SortOrder `json:"order"`
}

func (s *Sort) desc() bool { return strings.EqualFold(string(s.Order), string(Desc)) }

type comparators[T any] map[string]func(a, b T) int

// Missing optional integers compare as 0 and missing strings as "".

var leadSorts = comparators[*types.Lead]{
	SortName:       func(a, b *types.Lead) int { return strings.Compare(a.Name, b.Name) },
	SortLeadStatus: func(a, b *types.Lead) int { return strings.Compare(string(a.LeadStatus), string(b.LeadStatus)) },
	SortLeadScore:  func(a, b *types.Lead) int { return cmp.Compare(intOr0(a.LeadScore), intOr0(b.LeadScore)) },
	SortCreatedAt:  func(a, b *types.Lead) int { return a.CreatedAt.Compare(b.CreatedAt) },
	SortUpdatedAt:  func(a, b *types.Lead) int { return a.UpdatedAt.Compare(b.UpdatedAt) },
}

var taskSorts = comparators[*types.Task]{
	SortTitle:     func(a, b *types.Task) int { return strings.Compare(a.Title, b.Title) },
	SortDueDate:   func(a, b *types.Task) int { return a.DueDate.Compare(b.DueDate) },
	SortStatus:    func(a, b *types.Task) int { return strings.Compare(string(a.Status), string(b.Status)) },
	SortPriority:  func(a, b *types.Task) int { return cmp.Compare(a.Priority.Rank(), b.Priority.Rank()) },
	SortCreatedAt: func(a, b *types.Task) int { return a.CreatedAt.Compare(b.CreatedAt) },
	SortUpdatedAt: func(a, b *types.Task) int { return a.UpdatedAt.Compare(b.UpdatedAt) },
}

var noteSorts = comparators[*types.Note]{
	SortTitle:     func(a, b *types.Note) int { return strings.Compare(a.Title, b.Title) },
	SortCreatedAt: func(a, b *types.Note) int { return a.CreatedAt.Compare(b.CreatedAt) },
	SortUpdatedAt: func(a, b *types.Note) int { return a.UpdatedAt.Compare(b.UpdatedAt) },
}

var appointmentSorts = comparators[*types.Appointment]{
	SortTitle:     func(a, b *types.Appointment) int { return strings.Compare(a.Title, b.Title) },
	SortStartTime: func(a, b *types.Appointment) int { return a.StartTime.Compare(b.StartTime) },
	SortEndTime:   func(a, b *types.Appointment) int { return a.EndTime.Compare(b.EndTime) },
	SortStatus:    func(a, b *types.Appointment) int { return strings.Compare(string(a.Status), string(b.Status)) },
	SortCreatedAt: func(a, b *types.Appointment) int { return a.CreatedAt.Compare(b.CreatedAt) },
	SortUpdatedAt: func(a, b *types.Appointment) int { return a.UpdatedAt.Compare(b.UpdatedAt) },
}

var vehicleSorts = comparators[*types.Vehicle]{
	SortMake:      func(a, b *types.Vehicle) int { return strings.Compare(a.Make, b.Make) },
	SortModel:     func(a, b *types.Vehicle) int { return strings.Compare(a.Model, b.Model) },
	SortYear:      func(a, b *types.Vehicle) int { return strings.Compare(a.Year, b.Year) },
	SortMileage:   func(a, b *types.Vehicle) int { return cmp.Compare(intOr0(a.Mileage), intOr0(b.Mileage)) },
	SortCreatedAt: func(a, b *types.Vehicle) int { return a.CreatedAt.Compare(b.CreatedAt) },
	SortUpdatedAt: func(a, b *types.Vehicle) int { return a.UpdatedAt.Compare(b.UpdatedAt) },
}

func intOr0(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

// sortBy stable-sorts items in place. A nil sort or a field with no
// comparator leaves items untouched.
func sortBy[T any](items []T, s *Sort, cmps comparators[T]) {
	if s == nil {
		return
	}
	c, ok := cmps[strings.ToUpper(s.Field)]
	if !ok {
		return
	}
	if s.desc() {
		slices.SortStableFunc(items, func(a, b T) int { return c(b, a) })
		return
	}
	slices.SortStableFunc(items, c)
}

// SortLeads sorts leads in place. Unknown fields are ignored.
func SortLeads(leads []*types.Lead, s *Sort) { sortBy(leads, s, leadSorts) }

// SortTasks sorts tasks in place. Unknown fields are ignored.
func SortTasks(tasks []*types.Task, s *Sort) { sortBy(tasks, s, taskSorts) }

// SortNotes sorts notes in place. Unknown fields are ignored.
func SortNotes(notes []*types.Note, s *Sort) { sortBy(notes, s, noteSorts) }

// SortAppointments sorts appointments in place. Unknown fields are ignored.
func SortAppointments(appts []*types.Appointment, s *Sort) { sortBy(appts, s, appointmentSorts) }

// SortVehicles sorts vehicles in place. Unknown fields are ignored.
func SortVehicles(vehicles []*types.Vehicle, s *Sort) { sortBy(vehicles, s, vehicleSorts) }

func keys[T any](c comparators[T]) []string {
	out := make([]string, 0, len(c))
	for k := range c {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}

// SortFields returns the sortable field names of an entity type, sorted.
func SortFields(t types.EntityType) []string {
	switch t {
	case types.EntityLead:
		return keys(leadSorts)
	case types.EntityTask:
		return keys(taskSorts)
	case types.EntityNote:
		return keys(noteSorts)
	case types.EntityAppointment:
		return keys(appointmentSorts)
	case types.EntityVehicle:
		return keys(vehicleSorts)
	}
	return nil
}

// DefaultSort is applied when a request carries no sort: appointments by
// start time and vehicles by creation time, newest first. Other types keep
// insertion order.
func DefaultSort(t types.EntityType) *Sort {
	switch t {
	case types.EntityAppointment:
		return &Sort{Field: SortStartTime, Order: Desc}
	case types.EntityVehicle:
		return &Sort{Field: SortCreatedAt, Order: Desc}
	}
	return nil
}

// ParseSortField checks that name is sortable for t and returns it
// upper-cased. Unlike the sort functions, which ignore unknown fields, it
// reports them as invalid arguments.
func ParseSortField(t types.EntityType, name string) (string, error) {
	field := strings.ToUpper(name)
	if slices.Contains(SortFields(t), field) {
		return field, nil
	}
	return "", types.Invalid("query.ParseSortField", fmt.Errorf("cannot sort %s by %q (valid: %s)", t, name, strings.Join(SortFields(t), ", ")))
}

// ParseSortOrder accepts ASC or DESC in any case.
func ParseSortOrder(s string) (SortOrder, error) {
	switch strings.ToUpper(s) {
	case string(Asc):
		return Asc, nil
	case string(Desc):
		return Desc, nil
	}
	return "", types.Invalid("query.ParseSortOrder", fmt.Errorf("sort order %q is not ASC or DESC", s))
}
