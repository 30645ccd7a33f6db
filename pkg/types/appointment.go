package types

import "time"

// AppointmentStatus tracks whether a meeting happened.
type AppointmentStatus string

// Appointment statuses.
const (
	AppointmentStatusScheduled AppointmentStatus = "SCHEDULED"
	AppointmentStatusConfirmed AppointmentStatus = "CONFIRMED"
	AppointmentStatusCompleted AppointmentStatus = "COMPLETED"
	AppointmentStatusCancelled AppointmentStatus = "CANCELLED"
	AppointmentStatusNoShow    AppointmentStatus = "NO_SHOW"
)

// Upcoming reports whether an appointment in this status still counts as
// pending attendance.
func (s AppointmentStatus) Upcoming() bool {
	return s == AppointmentStatusScheduled || s == AppointmentStatusConfirmed
}

// Appointment is a scheduled meeting with a lead.
type Appointment struct {
	Record       `yaml:",inline"`
	Title        string            `json:"title" validate:"required"`
	Description  string            `json:"description,omitempty"`
	Location     string            `json:"location,omitempty"`
	StartTime    time.Time         `json:"start_time" validate:"required"`
	EndTime      time.Time         `json:"end_time" validate:"required"`
	Status       AppointmentStatus `json:"status" validate:"omitempty,oneof=SCHEDULED CONFIRMED COMPLETED CANCELLED NO_SHOW"`
	ReminderTime *time.Time        `json:"reminder_time,omitempty"`
	LeadID       string            `json:"lead_id" validate:"required"`
}

func (*Appointment) EntityType() EntityType { return EntityAppointment }

func (a *Appointment) Clone() Entity {
	c := *a
	c.ReminderTime = clonePtr(a.ReminderTime)
	return &c
}

func (a *Appointment) SetDefaults() {
	if a.Status == "" {
		a.Status = AppointmentStatusScheduled
	}
}

func (a *Appointment) References() map[string]string {
	return refs(RelLead, a.LeadID)
}

func (a *Appointment) SetReference(relation, id string) bool {
	if relation != RelLead {
		return false
	}
	a.LeadID = id
	return true
}

// AppointmentPatch is a partial update for an Appointment.
type AppointmentPatch struct {
	Title        *string            `json:"title"`
	Description  *string            `json:"description"`
	Location     *string            `json:"location"`
	StartTime    *time.Time         `json:"start_time"`
	EndTime      *time.Time         `json:"end_time"`
	Status       *AppointmentStatus `json:"status"`
	ReminderTime *time.Time         `json:"reminder_time"`
	LeadID       *string            `json:"lead_id"`
}

func (*AppointmentPatch) Target() EntityType { return EntityAppointment }

func (p *AppointmentPatch) Apply(e Entity) error {
	a, ok := e.(*Appointment)
	if !ok {
		return mismatch("types.AppointmentPatch.Apply", EntityAppointment, e)
	}
	set(&a.Title, p.Title)
	set(&a.Description, p.Description)
	set(&a.Location, p.Location)
	set(&a.StartTime, p.StartTime)
	set(&a.EndTime, p.EndTime)
	set(&a.Status, p.Status)
	if p.ReminderTime != nil {
		a.ReminderTime = clonePtr(p.ReminderTime)
	}
	set(&a.LeadID, p.LeadID)
	return nil
}
