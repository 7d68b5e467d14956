package events

import (
	"time"

	"github.com/Moussassoss/citizens-complaints/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventComplaintSubmitted     EventType = "complaint_submitted"
	EventComplaintStatusUpdated EventType = "complaint_status_updated"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	TicketID  string      `json:"ticket_id"`
	ActorID   string      `json:"actor_id,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// ComplaintSubmittedPayload payload.
type ComplaintSubmittedPayload struct {
	Category domain.Category `json:"category"`
	Agency   domain.Agency   `json:"agency"`
	Province string          `json:"province"`
}

// ComplaintStatusUpdatedPayload payload. Actor is the admin who made the change.
type ComplaintStatusUpdatedPayload struct {
	OldStatus       domain.Status `json:"old_status"`
	NewStatus       domain.Status `json:"new_status"`
	Agency          domain.Agency `json:"agency"`
	ActorAgency     domain.Agency `json:"actor_agency"`
	ResponseChanged bool          `json:"response_changed"`
}
