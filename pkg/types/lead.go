package types

// LeadStatus is the sales status of a lead.
type LeadStatus string

// Lead statuses. New leads start as LeadStatusNew.
const (
	LeadStatusNew         LeadStatus = "NEW"
	LeadStatusContacted   LeadStatus = "CONTACTED"
	LeadStatusQualified   LeadStatus = "QUALIFIED"
	LeadStatusUnqualified LeadStatus = "UNQUALIFIED"
	LeadStatusCustomer    LeadStatus = "CUSTOMER"
)

// Lead is a prospective customer. Tasks, notes, appointments, and vehicles
// hang off a lead through their lead_id reference.
type Lead struct {
	Record          `yaml:",inline"`
	Name            string     `json:"name" validate:"required"`
	Email           string     `json:"email,omitempty"`
	Phone           string     `json:"phone,omitempty"`
	Address         string     `json:"address,omitempty"`
	City            string     `json:"city,omitempty"`
	State           string     `json:"state,omitempty"`
	Zip             string     `json:"zip,omitempty"`
	LeadSource      string     `json:"lead_source,omitempty"`
	LeadStatus      LeadStatus `json:"lead_status" validate:"omitempty,oneof=NEW CONTACTED QUALIFIED UNQUALIFIED CUSTOMER"`
	LeadOwner       string     `json:"lead_owner,omitempty"`
	LeadStage       string     `json:"lead_stage,omitempty"`
	LeadScore       *int       `json:"lead_score,omitempty"`
	LeadDescription string     `json:"lead_description,omitempty"`
	LeadNotes       string     `json:"lead_notes,omitempty"`
	LeadType        string     `json:"lead_type,omitempty"`
}

func (*Lead) EntityType() EntityType { return EntityLead }

func (l *Lead) Clone() Entity {
	c := *l
	c.LeadScore = clonePtr(l.LeadScore)
	return &c
}

func (l *Lead) SetDefaults() {
	if l.LeadStatus == "" {
		l.LeadStatus = LeadStatusNew
	}
}

// References is always empty: a lead owns its children, it does not point
// at anything.
func (*Lead) References() map[string]string { return nil }

func (*Lead) SetReference(string, string) bool { return false }

// LeadPatch is a partial update for a Lead. Nil fields are left unchanged.
type LeadPatch struct {
	Name            *string     `json:"name"`
	Email           *string     `json:"email"`
	Phone           *string     `json:"phone"`
	Address         *string     `json:"address"`
	City            *string     `json:"city"`
	State           *string     `json:"state"`
	Zip             *string     `json:"zip"`
	LeadSource      *string     `json:"lead_source"`
	LeadStatus      *LeadStatus `json:"lead_status"`
	LeadOwner       *string     `json:"lead_owner"`
	LeadStage       *string     `json:"lead_stage"`
	LeadScore       *int        `json:"lead_score"`
	LeadDescription *string     `json:"lead_description"`
	LeadNotes       *string     `json:"lead_notes"`
	LeadType        *string     `json:"lead_type"`
}

func (*LeadPatch) Target() EntityType { return EntityLead }

func (p *LeadPatch) Apply(e Entity) error {
	l, ok := e.(*Lead)
	if !ok {
		return mismatch("types.LeadPatch.Apply", EntityLead, e)
	}
	set(&l.Name, p.Name)
	set(&l.Email, p.Email)
	set(&l.Phone, p.Phone)
	set(&l.Address, p.Address)
	set(&l.City, p.City)
	set(&l.State, p.State)
	set(&l.Zip, p.Zip)
	set(&l.LeadSource, p.LeadSource)
	set(&l.LeadStatus, p.LeadStatus)
	set(&l.LeadOwner, p.LeadOwner)
	set(&l.LeadStage, p.LeadStage)
	if p.LeadScore != nil {
		l.LeadScore = clonePtr(p.LeadScore)
	}
	set(&l.LeadDescription, p.LeadDescription)
	set(&l.LeadNotes, p.LeadNotes)
	set(&l.LeadType, p.LeadType)
	return nil
}
