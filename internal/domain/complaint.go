package domain

import "time"

// Status enumerates lifecycle states for complaints.
type Status string

const (
	StatusPending    Status = "Pending"
	StatusInProgress Status = "In Progress"
	StatusResolved   Status = "Resolved"
)

// Statuses lists every status in lifecycle order.
func Statuses() []Status {
	return []Status{StatusPending, StatusInProgress, StatusResolved}
}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusResolved:
		return true
	}
	return false
}

// Category is the citizen-selected subject of a complaint.
type Category string

const (
	CategoryRoads           Category = "Roads & Infrastructure"
	CategoryElectricity     Category = "Electricity"
	CategoryWater           Category = "Water & Sanitation"
	CategoryIdentity        Category = "Identity Issues"
	CategoryLocalGovernment Category = "Local Government Services"
	CategoryEducation       Category = "Education"
	CategoryHealth          Category = "Health"
	CategoryImmigration     Category = "Immigration"
)

// Complaint is the aggregate for one citizen-reported issue.
type Complaint struct {
	TicketID       string
	CitizenName    string
	Phone          string
	Email          string
	Province       string
	District       string
	Sector         string
	Category       Category
	Description    string
	AttachmentURL  string
	AssignedAgency Agency
	Status         Status
	AdminResponse  string
	CreatedAt      time.Time
}
