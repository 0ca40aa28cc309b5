package models

// TenantKey identifies a school partition; it is the school's domain slug.
type TenantKey string

// SchoolSettings lists what a school allows in its attendance sessions.
type SchoolSettings struct {
	TimeSlots []Slot   `json:"time_slots"`
	Classes   []string `json:"classes"`
	Sections  []string `json:"sections"`
}

// School is a tenant of the portal.
type School struct {
	ID       string         `json:"id,omitempty"`
	Name     string         `json:"name"`
	Domain   string         `json:"domain"`
	Address  string         `json:"address,omitempty"`
	Phone    string         `json:"phone,omitempty"`
	Email    string         `json:"email,omitempty"`
	LogoURL  string         `json:"logo_url,omitempty"`
	Settings SchoolSettings `json:"settings"`
}

// SchoolSummary is the public listing shape used on the login screen.
type SchoolSummary struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Domain string `json:"domain"`
}

// Tenant returns the school's tenant key.
func (s School) Tenant() TenantKey {
	return TenantKey(s.Domain)
}

// Summary projects the school into its listing shape.
func (s School) Summary() SchoolSummary {
	return SchoolSummary{ID: s.ID, Name: s.Name, Domain: s.Domain}
}

// Clone returns a deep copy.
func (s School) Clone() School {
	out := s
	out.Settings.TimeSlots = append([]Slot(nil), s.Settings.TimeSlots...)
	out.Settings.Classes = append([]string(nil), s.Settings.Classes...)
	out.Settings.Sections = append([]string(nil), s.Settings.Sections...)
	return out
}

// AllowsSlot reports whether the slot is enabled. An empty list allows every slot.
func (s SchoolSettings) AllowsSlot(slot Slot) bool {
	if len(s.TimeSlots) == 0 {
		return slot.Valid()
	}
	for _, v := range s.TimeSlots {
		if v == slot {
			return true
		}
	}
	return false
}

// AllowsClass reports whether class is offered. An empty list allows any class.
func (s SchoolSettings) AllowsClass(class string) bool {
	return containsOrEmpty(s.Classes, class)
}

// AllowsSection reports whether section is offered. An empty list allows any section.
func (s SchoolSettings) AllowsSection(section string) bool {
	return containsOrEmpty(s.Sections, section)
}

func containsOrEmpty(values []string, v string) bool {
	if len(values) == 0 {
		return true
	}
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
