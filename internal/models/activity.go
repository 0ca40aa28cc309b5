package models

import "time"

// AckLevel mirrors the toast levels shown to the operator.
type AckLevel string

const (
	AckSuccess AckLevel = "success"
	AckInfo    AckLevel = "info"
	AckError   AckLevel = "error"
)

// Acknowledgment is the user-visible outcome of an operator action.
type Acknowledgment struct {
	Level   AckLevel  `json:"level"`
	Action  string    `json:"action"`
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

// ActivityEntry is an acknowledgment persisted with its actor context.
type ActivityEntry struct {
	ID        string    `db:"id" json:"id"`
	Tenant    string    `db:"tenant" json:"tenant"`
	SessionID string    `db:"session_id" json:"session_id"`
	ActorID   string    `db:"actor_id" json:"actor_id"`
	Level     AckLevel  `db:"level" json:"level"`
	Action    string    `db:"action" json:"action"`
	Message   string    `db:"message" json:"message"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
