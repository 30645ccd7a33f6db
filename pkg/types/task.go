package types

import "time"

// TaskStatus tracks task progress.
type TaskStatus string

// Task statuses.
const (
	TaskStatusPending    TaskStatus = "PENDING"
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
	TaskStatusCompleted  TaskStatus = "COMPLETED"
	TaskStatusCancelled  TaskStatus = "CANCELLED"
)

// TaskPriority ranks tasks. Ordering by priority compares the rank, not the
// name, so LOW < MEDIUM < HIGH < URGENT.
type TaskPriority string

// Task priorities.
const (
	TaskPriorityLow    TaskPriority = "LOW"
	TaskPriorityMedium TaskPriority = "MEDIUM"
	TaskPriorityHigh   TaskPriority = "HIGH"
	TaskPriorityUrgent TaskPriority = "URGENT"
)

var taskPriorityRank = map[TaskPriority]int{
	TaskPriorityLow:    1,
	TaskPriorityMedium: 2,
	TaskPriorityHigh:   3,
	TaskPriorityUrgent: 4,
}

// Rank returns the ordinal of the priority, or 0 when unset or unknown.
func (p TaskPriority) Rank() int { return taskPriorityRank[p] }

// Task is a unit of follow-up work against a lead.
type Task struct {
	Record      `yaml:",inline"`
	Title       string       `json:"title" validate:"required"`
	Description string       `json:"description,omitempty"`
	DueDate     time.Time    `json:"due_date" validate:"required"`
	Status      TaskStatus   `json:"status" validate:"omitempty,oneof=PENDING IN_PROGRESS COMPLETED CANCELLED"`
	Priority    TaskPriority `json:"priority" validate:"omitempty,oneof=LOW MEDIUM HIGH URGENT"`
	Assignee    string       `json:"assignee" validate:"required"`
	LeadID      string       `json:"lead_id" validate:"required"`
}

func (*Task) EntityType() EntityType { return EntityTask }

func (t *Task) Clone() Entity {
	c := *t
	return &c
}

func (t *Task) SetDefaults() {
	if t.Status == "" {
		t.Status = TaskStatusPending
	}
	if t.Priority == "" {
		t.Priority = TaskPriorityMedium
	}
}

func (t *Task) References() map[string]string {
	return refs(RelLead, t.LeadID)
}

func (t *Task) SetReference(relation, id string) bool {
	if relation != RelLead {
		return false
	}
	t.LeadID = id
	return true
}

// TaskPatch is a partial update for a Task.
type TaskPatch struct {
	Title       *string       `json:"title"`
	Description *string       `json:"description"`
	DueDate     *time.Time    `json:"due_date"`
	Status      *TaskStatus   `json:"status"`
	Priority    *TaskPriority `json:"priority"`
	Assignee    *string       `json:"assignee"`
	LeadID      *string       `json:"lead_id"`
}

func (*TaskPatch) Target() EntityType { return EntityTask }

func (p *TaskPatch) Apply(e Entity) error {
	t, ok := e.(*Task)
	if !ok {
		return mismatch("types.TaskPatch.Apply", EntityTask, e)
	}
	set(&t.Title, p.Title)
	set(&t.Description, p.Description)
	set(&t.DueDate, p.DueDate)
	set(&t.Status, p.Status)
	set(&t.Priority, p.Priority)
	set(&t.Assignee, p.Assignee)
	set(&t.LeadID, p.LeadID)
	return nil
}
