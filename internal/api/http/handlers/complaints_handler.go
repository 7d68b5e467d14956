package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Moussassoss/citizens-complaints/internal/api/dto"
	"github.com/Moussassoss/citizens-complaints/internal/domain"
	"github.com/Moussassoss/citizens-complaints/internal/service"
	apperrors "github.com/Moussassoss/citizens-complaints/pkg/util/errorutil"
)

// ComplaintsHandler serves the public citizen endpoints.
type ComplaintsHandler struct {
	service *service.ComplaintService
}

// NewComplaintsHandler constructs handler.
func NewComplaintsHandler(complaintService *service.ComplaintService) *ComplaintsHandler {
	return &ComplaintsHandler{service: complaintService}
}

// Submit POST /api/v1/complaints.
func (h *ComplaintsHandler) Submit(c *fiber.Ctx) error {
	var req dto.SubmitComplaintRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	complaint, err := h.service.Submit(c.UserContext(), service.ComplaintInput{
		CitizenName:   req.CitizenName,
		Phone:         req.Phone,
		Email:         req.Email,
		Province:      req.Province,
		District:      req.District,
		Sector:        req.Sector,
		Category:      domain.Category(req.Category),
		Description:   req.Description,
		AttachmentURL: req.AttachmentURL,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.NewComplaintResponse(complaint)})
}

// Track GET /api/v1/complaints/:ticketID.
func (h *ComplaintsHandler) Track(c *fiber.Ctx) error {
	complaint, err := h.service.Track(c.UserContext(), c.Params("ticketID"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewComplaintResponse(complaint)})
}
