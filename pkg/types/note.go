package types

// Note is free-form text attached to a lead, a task, both, or neither.
type Note struct {
	Record  `yaml:",inline"`
	Title   string `json:"title" validate:"required"`
	Content string `json:"content,omitempty"`
	Author  string `json:"author,omitempty"`
	LeadID  string `json:"lead_id,omitempty"`
	TaskID  string `json:"task_id,omitempty"`
}

func (*Note) EntityType() EntityType { return EntityNote }

func (n *Note) Clone() Entity {
	c := *n
	return &c
}

func (*Note) SetDefaults() {}

func (n *Note) References() map[string]string {
	r := refs(RelLead, n.LeadID)
	if n.TaskID != "" {
		if r == nil {
			r = make(map[string]string, 1)
		}
		r[RelTask] = n.TaskID
	}
	return r
}

func (n *Note) SetReference(relation, id string) bool {
	switch relation {
	case RelLead:
		n.LeadID = id
	case RelTask:
		n.TaskID = id
	default:
		return false
	}
	return true
}

// NotePatch is a partial update for a Note. Setting lead_id or task_id to ""
// detaches the note.
type NotePatch struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
	Author  *string `json:"author"`
	LeadID  *string `json:"lead_id"`
	TaskID  *string `json:"task_id"`
}

func (*NotePatch) Target() EntityType { return EntityNote }

func (p *NotePatch) Apply(e Entity) error {
	n, ok := e.(*Note)
	if !ok {
		return mismatch("types.NotePatch.Apply", EntityNote, e)
	}
	set(&n.Title, p.Title)
	set(&n.Content, p.Content)
	set(&n.Author, p.Author)
	set(&n.LeadID, p.LeadID)
	set(&n.TaskID, p.TaskID)
	return nil
}
