package models

// UserRole represents the portal roles.
type UserRole string

const (
	RoleAdmin   UserRole = "admin"
	RoleTeacher UserRole = "teacher"
	RoleParent  UserRole = "parent"
)

// Valid returns true for supported roles.
func (r UserRole) Valid() bool {
	switch r {
	case RoleAdmin, RoleTeacher, RoleParent:
		return true
	default:
		return false
	}
}

// User is the authenticated identity kept in the session.
// Class and Section are set for teachers, Children for parents.
type User struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Email    string   `json:"email,omitempty"`
	Role     UserRole `json:"role"`
	SchoolID string   `json:"school_id,omitempty"`
	School   *School  `json:"school,omitempty"`
	Class    string   `json:"class,omitempty"`
	Section  string   `json:"section,omitempty"`
	ParentID string   `json:"parent_id,omitempty"`
	Children []string `json:"children,omitempty"`
	Token    string   `json:"token,omitempty"`
}

// Clone returns a deep copy.
func (u User) Clone() User {
	out := u
	out.Children = append([]string(nil), u.Children...)
	if u.School != nil {
		school := u.School.Clone()
		out.School = &school
	}
	return out
}

// HasChild reports whether the student belongs to this parent account.
func (u User) HasChild(studentID string) bool {
	for _, id := range u.Children {
		if id == studentID {
			return true
		}
	}
	return false
}
