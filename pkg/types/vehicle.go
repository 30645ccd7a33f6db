package types

// VehicleCondition describes the state of a vehicle. It has no default.
type VehicleCondition string

// Vehicle conditions.
const (
	VehicleConditionNew               VehicleCondition = "NEW"
	VehicleConditionUsed              VehicleCondition = "USED"
	VehicleConditionCertifiedPreowned VehicleCondition = "CERTIFIED_PREOWNED"
	VehicleConditionLemon             VehicleCondition = "LEMON"
	VehicleConditionSalvage           VehicleCondition = "SALVAGE"
)

// Vehicle is a car a lead owns or is interested in.
type Vehicle struct {
	Record       `yaml:",inline"`
	Make         string           `json:"make" validate:"required"`
	Model        string           `json:"model,omitempty"`
	Year         string           `json:"year" validate:"required"`
	Color        string           `json:"color,omitempty"`
	VIN          string           `json:"vin,omitempty"`
	LicensePlate string           `json:"license_plate,omitempty"`
	Mileage      *int             `json:"mileage,omitempty" validate:"omitempty,gte=0"`
	Condition    VehicleCondition `json:"condition,omitempty" validate:"omitempty,oneof=NEW USED CERTIFIED_PREOWNED LEMON SALVAGE"`
	Notes        string           `json:"notes,omitempty"`
	LeadID       string           `json:"lead_id" validate:"required"`
}

func (*Vehicle) EntityType() EntityType { return EntityVehicle }

func (v *Vehicle) Clone() Entity {
	c := *v
	c.Mileage = clonePtr(v.Mileage)
	return &c
}

func (*Vehicle) SetDefaults() {}

func (v *Vehicle) References() map[string]string {
	return refs(RelLead, v.LeadID)
}

func (v *Vehicle) SetReference(relation, id string) bool {
	if relation != RelLead {
		return false
	}
	v.LeadID = id
	return true
}

// VehiclePatch is a partial update for a Vehicle.
type VehiclePatch struct {
	Make         *string           `json:"make"`
	Model        *string           `json:"model"`
	Year         *string           `json:"year"`
	Color        *string           `json:"color"`
	VIN          *string           `json:"vin"`
	LicensePlate *string           `json:"license_plate"`
	Mileage      *int              `json:"mileage"`
	Condition    *VehicleCondition `json:"condition"`
	Notes        *string           `json:"notes"`
	LeadID       *string           `json:"lead_id"`
}

func (*VehiclePatch) Target() EntityType { return EntityVehicle }

func (p *VehiclePatch) Apply(e Entity) error {
	v, ok := e.(*Vehicle)
	if !ok {
		return mismatch("types.VehiclePatch.Apply", EntityVehicle, e)
	}
	set(&v.Make, p.Make)
	set(&v.Model, p.Model)
	set(&v.Year, p.Year)
	set(&v.Color, p.Color)
	set(&v.VIN, p.VIN)
	set(&v.LicensePlate, p.LicensePlate)
	if p.Mileage != nil {
		v.Mileage = clonePtr(p.Mileage)
	}
	set(&v.Condition, p.Condition)
	set(&v.Notes, p.Notes)
	set(&v.LeadID, p.LeadID)
	return nil
}
