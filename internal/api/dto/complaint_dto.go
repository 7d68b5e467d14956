package dto

import (
	"time"

	"github.com/Moussassoss/citizens-complaints/internal/domain"
)

// SubmitComplaintRequest payload. The agency is assigned by routing.
type SubmitComplaintRequest struct {
	CitizenName   string `json:"citizen_name"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	Province      string `json:"province"`
	District      string `json:"district"`
	Sector        string `json:"sector"`
	Category      string `json:"category"`
	Description   string `json:"description"`
	AttachmentURL string `json:"attachment_url"`
}

// UpdateStatusRequest payload.
type UpdateStatusRequest struct {
	Status   domain.Status `json:"status"`
	Response string        `json:"response"`
}

// ComplaintResponse is the full complaint as shown to citizens and staff.
type ComplaintResponse struct {
	TicketID       string        `json:"ticket_id"`
	CitizenName    string        `json:"citizen_name"`
	Phone          string        `json:"phone"`
	Email          string        `json:"email,omitempty"`
	Province       string        `json:"province"`
	District       string        `json:"district"`
	Sector         string        `json:"sector"`
	Category       string        `json:"category"`
	Description    string        `json:"description"`
	AttachmentURL  string        `json:"attachment_url,omitempty"`
	AssignedAgency domain.Agency `json:"assigned_agency"`
	Status         domain.Status `json:"status"`
	AdminResponse  string        `json:"admin_response,omitempty"`
	CreatedAt      time.Time     `json:"created_at"`
}

// NewComplaintResponse maps a domain complaint.
func NewComplaintResponse(c *domain.Complaint) ComplaintResponse {
	return ComplaintResponse{
		TicketID:       c.TicketID,
		CitizenName:    c.CitizenName,
		Phone:          c.Phone,
		Email:          c.Email,
		Province:       c.Province,
		District:       c.District,
		Sector:         c.Sector,
		Category:       string(c.Category),
		Description:    c.Description,
		AttachmentURL:  c.AttachmentURL,
		AssignedAgency: c.AssignedAgency,
		Status:         c.Status,
		AdminResponse:  c.AdminResponse,
		CreatedAt:      c.CreatedAt,
	}
}

// NewComplaintResponses maps a slice, never returning nil.
func NewComplaintResponses(list []domain.Complaint) []ComplaintResponse {
	out := make([]ComplaintResponse, 0, len(list))
	for i := range list {
		out = append(out, NewComplaintResponse(&list[i]))
	}
	return out
}

// StatusChangeResponse is one audit trail entry.
type StatusChangeResponse struct {
	ID          string        `json:"id"`
	ChangedByID string        `json:"changed_by_id"`
	ActorAgency domain.Agency `json:"actor_agency"`
	OldStatus   domain.Status `json:"old_status"`
	NewStatus   domain.Status `json:"new_status"`
	Response    string        `json:"response,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
}

// NewStatusChangeResponses maps the audit trail, never returning nil.
func NewStatusChangeResponses(trail []domain.StatusChange) []StatusChangeResponse {
	out := make([]StatusChangeResponse, 0, len(trail))
	for _, entry := range trail {
		out = append(out, StatusChangeResponse{
			ID:          entry.ID,
			ChangedByID: entry.ChangedByID,
			ActorAgency: entry.ActorAgency,
			OldStatus:   entry.OldStatus,
			NewStatus:   entry.NewStatus,
			Response:    entry.Response,
			CreatedAt:   entry.CreatedAt,
		})
	}
	return out
}
