package models

// Teacher is a staff member assigned to one class and section.
type Teacher struct {
	ID       string `json:"id"`
	Name     string `json:"name" validate:"required"`
	Class    string `json:"class" validate:"required"`
	Section  string `json:"section" validate:"required"`
	Phone    string `json:"phone"`
	Email    string `json:"email,omitempty" validate:"omitempty,email"`
	PhotoURL string `json:"photo_url,omitempty"`
	SchoolID string `json:"school_id,omitempty"`
}

// Clone returns a copy.
func (t Teacher) Clone() Teacher { return t }

// TeacherPatch is a shallow merge for teacher updates.
type TeacherPatch struct {
	Name     *string `json:"name,omitempty"`
	Class    *string `json:"class,omitempty"`
	Section  *string `json:"section,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Email    *string `json:"email,omitempty"`
	PhotoURL *string `json:"photo_url,omitempty"`
}

// Apply merges the patch into t.
func (p TeacherPatch) Apply(t *Teacher) {
	setString(&t.Name, p.Name)
	setString(&t.Class, p.Class)
	setString(&t.Section, p.Section)
	setString(&t.Phone, p.Phone)
	setString(&t.Email, p.Email)
	setString(&t.PhotoURL, p.PhotoURL)
}
