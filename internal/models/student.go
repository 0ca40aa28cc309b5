package models

// Student represents a learner registered in a school.
type Student struct {
	ID       string `json:"id"`
	Name     string `json:"name" validate:"required"`
	Class    string `json:"class" validate:"required"`
	Section  string `json:"section" validate:"required"`
	SchoolID string `json:"school_id,omitempty"`
	ParentID string `json:"parent_id,omitempty"`
	PhotoURL string `json:"photo_url,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Email    string `json:"email,omitempty" validate:"omitempty,email"`
	Address  string `json:"address,omitempty"`
}

// Clone returns a copy; Student has no reference fields.
func (s Student) Clone() Student { return s }

// StudentFilter narrows student listings. Empty fields match everything.
type StudentFilter struct {
	Class    string
	Section  string
	ParentID string
}

// Matches reports whether s satisfies the filter.
func (f StudentFilter) Matches(s Student) bool {
	if f.Class != "" && s.Class != f.Class {
		return false
	}
	if f.Section != "" && s.Section != f.Section {
		return false
	}
	if f.ParentID != "" && s.ParentID != f.ParentID {
		return false
	}
	return true
}

// StudentPatch is a shallow merge applied by updates; nil fields are left alone.
type StudentPatch struct {
	Name     *string `json:"name,omitempty"`
	Class    *string `json:"class,omitempty"`
	Section  *string `json:"section,omitempty"`
	ParentID *string `json:"parent_id,omitempty"`
	PhotoURL *string `json:"photo_url,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Email    *string `json:"email,omitempty"`
	Address  *string `json:"address,omitempty"`
}

// Apply merges the patch into s.
func (p StudentPatch) Apply(s *Student) {
	setString(&s.Name, p.Name)
	setString(&s.Class, p.Class)
	setString(&s.Section, p.Section)
	setString(&s.ParentID, p.ParentID)
	setString(&s.PhotoURL, p.PhotoURL)
	setString(&s.Phone, p.Phone)
	setString(&s.Email, p.Email)
	setString(&s.Address, p.Address)
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
