package query

import (
	"strings"
	"time"

	"github.com/mesh-intelligence/crm/pkg/types"
)

// LeadFilter selects leads. HasUpcomingAppointments and VehicleMake are
// evaluated against a LeadJoin built from the appointment and vehicle
// tables.
type LeadFilter struct {
	Name                    *StringFilter `json:"name,omitempty"`
	Email                   *StringFilter `json:"email,omitempty"`
	LeadStatus              *StringFilter `json:"lead_status,omitempty"`
	LeadSource              *StringFilter `json:"lead_source,omitempty"`
	LeadOwner               *StringFilter `json:"lead_owner,omitempty"`
	LeadType                *StringFilter `json:"lead_type,omitempty"`
	City                    *StringFilter `json:"city,omitempty"`
	State                   *StringFilter `json:"state,omitempty"`
	LeadScore               *IntFilter    `json:"lead_score,omitempty"`
	HasUpcomingAppointments *bool         `json:"has_upcoming_appointments,omitempty"`
	VehicleMake             *string       `json:"vehicle_make,omitempty"`
}

// LeadJoin is the per-lead data derived from other tables by lead_id.
type LeadJoin struct {
	upcoming map[string]bool
	makes    map[string]map[string]bool
}

// NewLeadJoin indexes appointments and vehicles by lead_id. An appointment is
// upcoming when it starts strictly after now and is SCHEDULED or CONFIRMED.
// Vehicle makes are indexed lower-cased.
func NewLeadJoin(appts []*types.Appointment, vehicles []*types.Vehicle, now time.Time) LeadJoin {
	j := LeadJoin{
		upcoming: make(map[string]bool),
		makes:    make(map[string]map[string]bool),
	}
	for _, a := range appts {
		if a.StartTime.After(now) && a.Status.Upcoming() {
			j.upcoming[a.LeadID] = true
		}
	}
	for _, v := range vehicles {
		m := j.makes[v.LeadID]
		if m == nil {
			m = make(map[string]bool)
			j.makes[v.LeadID] = m
		}
		m[strings.ToLower(v.Make)] = true
	}
	return j
}

// HasUpcoming reports whether the lead has an upcoming appointment.
func (j LeadJoin) HasUpcoming(leadID string) bool { return j.upcoming[leadID] }

// HasVehicleMake reports whether the lead has a vehicle of the given make,
// ignoring case.
func (j LeadJoin) HasVehicleMake(leadID, vehicleMake string) bool {
	return j.makes[leadID][strings.ToLower(vehicleMake)]
}

// FilterLeads returns the leads matching f. A nil filter returns a copy of
// leads in the same order.
func FilterLeads(leads []*types.Lead, f *LeadFilter, j LeadJoin) []*types.Lead {
	if f == nil {
		return keep(leads, func(*types.Lead) bool { return true })
	}
	return keep(leads, func(l *types.Lead) bool {
		return f.Name.Match(l.Name) &&
			f.Email.Match(l.Email) &&
			f.LeadStatus.Match(string(l.LeadStatus)) &&
			f.LeadSource.Match(l.LeadSource) &&
			f.LeadOwner.Match(l.LeadOwner) &&
			f.LeadType.Match(l.LeadType) &&
			f.City.Match(l.City) &&
			f.State.Match(l.State) &&
			f.LeadScore.MatchPtr(l.LeadScore) &&
			(f.HasUpcomingAppointments == nil || j.HasUpcoming(l.ID) == *f.HasUpcomingAppointments) &&
			(f.VehicleMake == nil || j.HasVehicleMake(l.ID, *f.VehicleMake))
	})
}

// TaskFilter selects tasks.
type TaskFilter struct {
	Title    *StringFilter `json:"title,omitempty"`
	Status   *StringFilter `json:"status,omitempty"`
	Priority *StringFilter `json:"priority,omitempty"`
	Assignee *StringFilter `json:"assignee,omitempty"`
	LeadID   *StringFilter `json:"lead_id,omitempty"`
	DueDate  *TimeFilter   `json:"due_date,omitempty"`
}

// Validate checks the time clauses of the filter.
func (f *TaskFilter) Validate() error {
	if f == nil {
		return nil
	}
	return validateTimes(f.DueDate)
}

// FilterTasks returns the tasks matching f.
func FilterTasks(tasks []*types.Task, f *TaskFilter) []*types.Task {
	if f == nil {
		return keep(tasks, func(*types.Task) bool { return true })
	}
	return keep(tasks, func(t *types.Task) bool {
		return f.Title.Match(t.Title) &&
			f.Status.Match(string(t.Status)) &&
			f.Priority.Match(string(t.Priority)) &&
			f.Assignee.Match(t.Assignee) &&
			f.LeadID.Match(t.LeadID) &&
			f.DueDate.Match(t.DueDate)
	})
}

// NoteFilter selects notes.
type NoteFilter struct {
	Title  *StringFilter `json:"title,omitempty"`
	Author *StringFilter `json:"author,omitempty"`
	LeadID *StringFilter `json:"lead_id,omitempty"`
	TaskID *StringFilter `json:"task_id,omitempty"`
}

// FilterNotes returns the notes matching f.
func FilterNotes(notes []*types.Note, f *NoteFilter) []*types.Note {
	if f == nil {
		return keep(notes, func(*types.Note) bool { return true })
	}
	return keep(notes, func(n *types.Note) bool {
		return f.Title.Match(n.Title) &&
			f.Author.Match(n.Author) &&
			f.LeadID.Match(n.LeadID) &&
			f.TaskID.Match(n.TaskID)
	})
}

// AppointmentFilter selects appointments.
type AppointmentFilter struct {
	Title     *StringFilter `json:"title,omitempty"`
	Status    *StringFilter `json:"status,omitempty"`
	LeadID    *StringFilter `json:"lead_id,omitempty"`
	StartTime *TimeFilter   `json:"start_time,omitempty"`
	EndTime   *TimeFilter   `json:"end_time,omitempty"`
}

// Validate checks the time clauses of the filter.
func (f *AppointmentFilter) Validate() error {
	if f == nil {
		return nil
	}
	return validateTimes(f.StartTime, f.EndTime)
}

// FilterAppointments returns the appointments matching f.
func FilterAppointments(appts []*types.Appointment, f *AppointmentFilter) []*types.Appointment {
	if f == nil {
		return keep(appts, func(*types.Appointment) bool { return true })
	}
	return keep(appts, func(a *types.Appointment) bool {
		return f.Title.Match(a.Title) &&
			f.Status.Match(string(a.Status)) &&
			f.LeadID.Match(a.LeadID) &&
			f.StartTime.Match(a.StartTime) &&
			f.EndTime.Match(a.EndTime)
	})
}

// VehicleFilter selects vehicles.
type VehicleFilter struct {
	Make      *StringFilter `json:"make,omitempty"`
	Model     *StringFilter `json:"model,omitempty"`
	Year      *StringFilter `json:"year,omitempty"`
	Condition *StringFilter `json:"condition,omitempty"`
	LeadID    *StringFilter `json:"lead_id,omitempty"`
	Mileage   *IntFilter    `json:"mileage,omitempty"`
}

// FilterVehicles returns the vehicles matching f.
func FilterVehicles(vehicles []*types.Vehicle, f *VehicleFilter) []*types.Vehicle {
	if f == nil {
		return keep(vehicles, func(*types.Vehicle) bool { return true })
	}
	return keep(vehicles, func(v *types.Vehicle) bool {
		return f.Make.Match(v.Make) &&
			f.Model.Match(v.Model) &&
			f.Year.Match(v.Year) &&
			f.Condition.Match(string(v.Condition)) &&
			f.LeadID.Match(v.LeadID) &&
			f.Mileage.MatchPtr(v.Mileage)
	})
}
