// Package queue defines message payloads exchanged over the message broker.
package queue

// Event actions published to the contact.events queue.
const (
	ActionCreated = "created"
	ActionDeleted = "deleted"
)

// ContactEvent is published after a contact is created or deleted. It
// carries enough information for downstream consumers to log or audit
// without querying the primary database.
type ContactEvent struct {
	Action     string `json:"action"` // "created" or "deleted"
	ContactID  string `json:"contact_id"`
	OwnerID    string `json:"owner_id"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Phone      string `json:"phone"`
	OccurredAt string `json:"occurred_at"` // RFC 3339, UTC
}
