package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventStaffHired    EventType = "staff_hired"
	EventStaffUpdated  EventType = "staff_updated"
	EventBranchCreated EventType = "branch_created"
	EventBranchUpdated EventType = "branch_updated"
	EventClientCreated EventType = "client_created"
	EventClientUpdated EventType = "client_updated"
)

// Event represents a domain event emitted by services after a committed write.
type Event struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	EntityID  string    `json:"entity_id"`
	Actor     string    `json:"actor,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Payload   any       `json:"payload,omitempty"`
}

// NewEvent stamps an event with a fresh id and the current time.
func NewEvent(eventType EventType, entityID string, payload any) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		EntityID:  entityID,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
}

// StaffHiredPayload payload.
type StaffHiredPayload struct {
	BranchNo string  `json:"branch_no"`
	Position string  `json:"position"`
	Salary   float64 `json:"salary"`
}

// StaffUpdatedPayload lists the columns that were written.
type StaffUpdatedPayload struct {
	Fields []string `json:"fields"`
}

// BranchPayload payload.
type BranchPayload struct {
	City     string `json:"city"`
	PostCode string `json:"postcode"`
}
