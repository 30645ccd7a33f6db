package query

import (
	"time"

	"github.com/mesh-intelligence/crm/pkg/types"
)

// Reader is the read side of the store the engine queries.
type Reader interface {
	List(t types.EntityType) []types.Entity
}

// SnapshotReader is a Reader that can read several tables at one point in
// time. Joins use it when the Reader provides it.
type SnapshotReader interface {
	Reader
	ListMany(ts ...types.EntityType) map[types.EntityType][]types.Entity
}

// Request is one filtered, sorted, paginated listing. A nil Filter selects
// everything; a nil Sort falls back to DefaultSort.
type Request[F any] struct {
	Filter *F
	Sort   *Sort
	Page   int
	Size   int
}

// Engine runs filter, sort, and paginate over snapshots taken from a Reader.
type Engine struct {
	r   Reader
	now func() time.Time
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithNow sets the clock used to decide whether an appointment is upcoming.
func WithNow(now func() time.Time) EngineOption {
	return func(e *Engine) { e.now = now }
}

// NewEngine returns an engine reading from r.
func NewEngine(r Reader, opts ...EngineOption) *Engine {
	e := &Engine{r: r, now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func listOf[T types.Entity](r Reader) []T {
	var zero T
	return typed[T](r.List(zero.EntityType()))
}

func typed[T types.Entity](all []types.Entity) []T {
	out := make([]T, 0, len(all))
	for _, e := range all {
		if v, ok := e.(T); ok {
			out = append(out, v)
		}
	}
	return out
}

// leadTables reads leads, appointments, and vehicles, from a single
// snapshot when the Reader supports it.
func (e *Engine) leadTables() ([]*types.Lead, []*types.Appointment, []*types.Vehicle) {
	if sr, ok := e.r.(SnapshotReader); ok {
		m := sr.ListMany(types.EntityLead, types.EntityAppointment, types.EntityVehicle)
		return typed[*types.Lead](m[types.EntityLead]), typed[*types.Appointment](m[types.EntityAppointment]), typed[*types.Vehicle](m[types.EntityVehicle])
	}
	return listOf[*types.Lead](e.r), listOf[*types.Appointment](e.r), listOf[*types.Vehicle](e.r)
}

func sortOrDefault(t types.EntityType, s *Sort) *Sort {
	if s == nil {
		return DefaultSort(t)
	}
	return s
}

// Leads lists leads. The upcoming-appointment and vehicle-make predicates
// join against the appointment and vehicle tables by lead_id; the three
// tables come from one snapshot when the Reader is a SnapshotReader.
func (e *Engine) Leads(req Request[LeadFilter]) (Page[*types.Lead], error) {
	var (
		leads []*types.Lead
		j     LeadJoin
	)
	if f := req.Filter; f != nil && (f.HasUpcomingAppointments != nil || f.VehicleMake != nil) {
		var (
			appts    []*types.Appointment
			vehicles []*types.Vehicle
		)
		leads, appts, vehicles = e.leadTables()
		j = NewLeadJoin(appts, vehicles, e.now())
	} else {
		leads = listOf[*types.Lead](e.r)
	}
	out := FilterLeads(leads, req.Filter, j)
	SortLeads(out, sortOrDefault(types.EntityLead, req.Sort))
	return Paginate(out, req.Page, req.Size)
}

// Tasks lists tasks.
func (e *Engine) Tasks(req Request[TaskFilter]) (Page[*types.Task], error) {
	if err := req.Filter.Validate(); err != nil {
		return Page[*types.Task]{}, err
	}
	out := FilterTasks(listOf[*types.Task](e.r), req.Filter)
	SortTasks(out, sortOrDefault(types.EntityTask, req.Sort))
	return Paginate(out, req.Page, req.Size)
}

// Notes lists notes.
func (e *Engine) Notes(req Request[NoteFilter]) (Page[*types.Note], error) {
	out := FilterNotes(listOf[*types.Note](e.r), req.Filter)
	SortNotes(out, sortOrDefault(types.EntityNote, req.Sort))
	return Paginate(out, req.Page, req.Size)
}

// Appointments lists appointments, newest start time first by default.
func (e *Engine) Appointments(req Request[AppointmentFilter]) (Page[*types.Appointment], error) {
	if err := req.Filter.Validate(); err != nil {
		return Page[*types.Appointment]{}, err
	}
	out := FilterAppointments(listOf[*types.Appointment](e.r), req.Filter)
	SortAppointments(out, sortOrDefault(types.EntityAppointment, req.Sort))
	return Paginate(out, req.Page, req.Size)
}

// Vehicles lists vehicles, newest first by default.
func (e *Engine) Vehicles(req Request[VehicleFilter]) (Page[*types.Vehicle], error) {
	out := FilterVehicles(listOf[*types.Vehicle](e.r), req.Filter)
	SortVehicles(out, sortOrDefault(types.EntityVehicle, req.Sort))
	return Paginate(out, req.Page, req.Size)
}

// LeadsByStatus returns every lead in the given status, in insertion order.
func (e *Engine) LeadsByStatus(status types.LeadStatus) []*types.Lead {
	return keep(listOf[*types.Lead](e.r), func(l *types.Lead) bool { return l.LeadStatus == status })
}

// TasksByLead returns the tasks whose lead_id is leadID.
func (e *Engine) TasksByLead(leadID string) []*types.Task {
	return keep(listOf[*types.Task](e.r), func(t *types.Task) bool { return t.LeadID == leadID })
}

// NotesByLead returns the notes whose lead_id is leadID.
func (e *Engine) NotesByLead(leadID string) []*types.Note {
	return keep(listOf[*types.Note](e.r), func(n *types.Note) bool { return n.LeadID == leadID })
}

// NotesByTask returns the notes whose task_id is taskID.
func (e *Engine) NotesByTask(taskID string) []*types.Note {
	return keep(listOf[*types.Note](e.r), func(n *types.Note) bool { return n.TaskID == taskID })
}

// AppointmentsByLead returns the appointments whose lead_id is leadID.
func (e *Engine) AppointmentsByLead(leadID string) []*types.Appointment {
	return keep(listOf[*types.Appointment](e.r), func(a *types.Appointment) bool { return a.LeadID == leadID })
}

// VehiclesByLead returns the vehicles whose lead_id is leadID.
func (e *Engine) VehiclesByLead(leadID string) []*types.Vehicle {
	return keep(listOf[*types.Vehicle](e.r), func(v *types.Vehicle) bool { return v.LeadID == leadID })
}
