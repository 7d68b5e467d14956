package handlers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/Moussassoss/citizens-complaints/internal/api/dto"
	"github.com/Moussassoss/citizens-complaints/internal/auth"
	"github.com/Moussassoss/citizens-complaints/internal/domain"
	"github.com/Moussassoss/citizens-complaints/internal/repository"
	"github.com/Moussassoss/citizens-complaints/internal/service"
	apperrors "github.com/Moussassoss/citizens-complaints/pkg/util/errorutil"
)

// StaffComplaintsHandler serves the agency dashboard.
type StaffComplaintsHandler struct {
	service *service.ComplaintService
}

// NewStaffComplaintsHandler constructs handler.
func NewStaffComplaintsHandler(complaintService *service.ComplaintService) *StaffComplaintsHandler {
	return &StaffComplaintsHandler{service: complaintService}
}

// List GET /api/v1/staff/complaints.
func (h *StaffComplaintsHandler) List(c *fiber.Ctx) error {
	complaints, err := h.service.ListForCurrentAgency(c.UserContext(), auth.SessionFromContext(c), parseComplaintFilter(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewComplaintResponses(complaints)})
}

// Stats GET /api/v1/staff/complaints/stats.
func (h *StaffComplaintsHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.service.AgencyStats(c.UserContext(), auth.SessionFromContext(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": stats})
}

// UpdateStatus PATCH /api/v1/staff/complaints/:ticketID/status.
func (h *StaffComplaintsHandler) UpdateStatus(c *fiber.Ctx) error {
	var req dto.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	complaint, err := h.service.UpdateStatus(c.UserContext(), auth.SessionFromContext(c), c.Params("ticketID"), req.Status, req.Response)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewComplaintResponse(complaint)})
}

// History GET /api/v1/staff/complaints/:ticketID/history.
func (h *StaffComplaintsHandler) History(c *fiber.Ctx) error {
	trail, err := h.service.History(c.UserContext(), auth.SessionFromContext(c), c.Params("ticketID"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewStatusChangeResponses(trail)})
}

// parseComplaintFilter reads status (comma separated), category, province,
// q, page and page_size. Without page_size the whole queue is returned.
func parseComplaintFilter(c *fiber.Ctx) repository.ComplaintFilter {
	filter := repository.ComplaintFilter{}
	if statusStr := c.Query("status"); statusStr != "" {
		for _, part := range strings.Split(statusStr, ",") {
			if part = strings.TrimSpace(part); part != "" {
				filter.Statuses = append(filter.Statuses, domain.Status(part))
			}
		}
	}
	if category := strings.TrimSpace(c.Query("category")); category != "" {
		value := domain.Category(category)
		filter.Category = &value
	}
	if province := strings.TrimSpace(c.Query("province")); province != "" {
		filter.Province = &province
	}
	if q := strings.TrimSpace(c.Query("q")); q != "" {
		filter.SearchTerm = &q
	}
	if pageSize := parseInt(c.Query("page_size"), 0); pageSize > 0 {
		page := parseInt(c.Query("page"), 1)
		filter.Limit = pageSize
		filter.Offset = (page - 1) * pageSize
	}
	return filter
}

func parseInt(val string, def int) int {
	if val == "" {
		return def
	}
	parsed, err := strconv.Atoi(val)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}
