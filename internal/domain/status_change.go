package domain

import "time"

// StatusChange is an immutable audit entry written for every applied
// status update.
type StatusChange struct {
	ID          string
	TicketID    string
	ChangedByID string
	ActorAgency Agency
	OldStatus   Status
	NewStatus   Status
	Response    string
	CreatedAt   time.Time
}
