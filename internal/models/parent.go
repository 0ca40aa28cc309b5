package models

// Parent holds the two guardian slots of a family and its children.
type Parent struct {
	ID               string   `json:"id"`
	FatherName       string   `json:"father_name" validate:"required_without=MotherName"`
	FatherPhone      string   `json:"father_phone,omitempty"`
	FatherEmail      string   `json:"father_email,omitempty"`
	MotherName       string   `json:"mother_name"`
	MotherPhone      string   `json:"mother_phone,omitempty"`
	MotherEmail      string   `json:"mother_email,omitempty"`
	Phone            string   `json:"phone,omitempty"`
	Address          string   `json:"address,omitempty"`
	EmergencyContact string   `json:"emergency_contact,omitempty"`
	ChildrenIDs      []string `json:"children_ids" validate:"omitempty,dive,required"`
	SchoolID         string   `json:"school_id,omitempty"`
}

// Clone returns a deep copy.
func (p Parent) Clone() Parent {
	out := p
	out.ChildrenIDs = append([]string{}, p.ChildrenIDs...)
	return out
}

// HasChild reports whether studentID is in the children set.
func (p Parent) HasChild(studentID string) bool {
	for _, id := range p.ChildrenIDs {
		if id == studentID {
			return true
		}
	}
	return false
}

// ParentPatch is a shallow merge for parent updates.
type ParentPatch struct {
	FatherName       *string   `json:"father_name,omitempty"`
	FatherPhone      *string   `json:"father_phone,omitempty"`
	FatherEmail      *string   `json:"father_email,omitempty"`
	MotherName       *string   `json:"mother_name,omitempty"`
	MotherPhone      *string   `json:"mother_phone,omitempty"`
	MotherEmail      *string   `json:"mother_email,omitempty"`
	Phone            *string   `json:"phone,omitempty"`
	Address          *string   `json:"address,omitempty"`
	EmergencyContact *string   `json:"emergency_contact,omitempty"`
	ChildrenIDs      *[]string `json:"children_ids,omitempty"`
}

// Apply merges the patch into p.
func (pp ParentPatch) Apply(p *Parent) {
	setString(&p.FatherName, pp.FatherName)
	setString(&p.FatherPhone, pp.FatherPhone)
	setString(&p.FatherEmail, pp.FatherEmail)
	setString(&p.MotherName, pp.MotherName)
	setString(&p.MotherPhone, pp.MotherPhone)
	setString(&p.MotherEmail, pp.MotherEmail)
	setString(&p.Phone, pp.Phone)
	setString(&p.Address, pp.Address)
	setString(&p.EmergencyContact, pp.EmergencyContact)
	if pp.ChildrenIDs != nil {
		p.ChildrenIDs = append([]string{}, (*pp.ChildrenIDs)...)
	}
}
