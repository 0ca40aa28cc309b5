package models

// QueryStatus tracks a parent query through its lifecycle.
type QueryStatus string

const (
	QueryPending   QueryStatus = "pending"
	QueryResponded QueryStatus = "responded"
	QueryResolved  QueryStatus = "resolved"
	QueryClosed    QueryStatus = "closed"
)

// RecipientType names who a query is addressed to.
type RecipientType string

const (
	RecipientAdmin   RecipientType = "admin"
	RecipientTeacher RecipientType = "teacher"
)

// Query is a message from a parent about one of their children.
type Query struct {
	ID            string        `json:"id"`
	ParentID      string        `json:"parent_id" validate:"required"`
	StudentID     string        `json:"student_id" validate:"required"`
	RecipientType RecipientType `json:"recipient_type" validate:"required,oneof=admin teacher"`
	RecipientID   string        `json:"recipient_id,omitempty"`
	Subject       string        `json:"subject" validate:"required"`
	Message       string        `json:"message" validate:"required"`
	Status        QueryStatus   `json:"status"`
	Response      string        `json:"response,omitempty"`
	ResponseDate  *string       `json:"response_date,omitempty"`
	Date          string        `json:"date"`
	SchoolID      string        `json:"school_id,omitempty"`
}

// Clone returns a deep copy.
func (q Query) Clone() Query {
	out := q
	if q.ResponseDate != nil {
		d := *q.ResponseDate
		out.ResponseDate = &d
	}
	return out
}

// CanRespond reports whether a response may be recorded in the current status.
func (s QueryStatus) CanRespond() bool {
	return s == QueryPending || s == QueryResponded
}

// CanTransition reports whether an explicit status change from s to next is allowed.
// Responding is a separate operation, so "responded" is never a valid target here.
func (s QueryStatus) CanTransition(next QueryStatus) bool {
	switch next {
	case QueryClosed:
		return true
	case QueryResolved:
		return s == QueryResponded || s == QueryResolved
	default:
		return false
	}
}

// QueryPatch is a shallow merge for query edits.
type QueryPatch struct {
	Subject       *string        `json:"subject,omitempty"`
	Message       *string        `json:"message,omitempty"`
	RecipientType *RecipientType `json:"recipient_type,omitempty" validate:"omitempty,oneof=admin teacher"`
	RecipientID   *string        `json:"recipient_id,omitempty"`
}

// Apply merges the patch into q.
func (p QueryPatch) Apply(q *Query) {
	setString(&q.Subject, p.Subject)
	setString(&q.Message, p.Message)
	if p.RecipientType != nil {
		q.RecipientType = *p.RecipientType
	}
	setString(&q.RecipientID, p.RecipientID)
}
