package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/doutly/doutly-service/internal/api/dto"
	"github.com/doutly/doutly-service/internal/auth"
	"github.com/doutly/doutly-service/internal/domain"
	"github.com/doutly/doutly-service/internal/service"
	apperrors "github.com/doutly/doutly-service/pkg/util"
)

// DoubtsHandler manages doubt/ticket endpoints.
type DoubtsHandler struct {
	service *service.DoubtService
}

// NewDoubtsHandler constructs handler.
func NewDoubtsHandler(doubtService *service.DoubtService) *DoubtsHandler {
	return &DoubtsHandler{service: doubtService}
}

// Submit handles POST /doubts.
func (h *DoubtsHandler) Submit(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.SubmitDoubtRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	input := service.DoubtSubmitInput{
		Subject:       req.Subject,
		Title:         req.Title,
		Description:   req.Description,
		TutorType:     domain.TutorType(req.TutorType),
		ScheduledDate: req.ScheduledDate,
		ScheduledTime: req.ScheduledTime,
	}
	doubt, err := h.service.SubmitDoubt(c.Context(), principal.User, input)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": doubtResponse(doubt)})
}

// ListMine handles GET /doubts/mine.
func (h *DoubtsHandler) ListMine(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	doubts, err := h.service.ListOwnDoubts(c.Context(), principal.User.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": doubtResponses(doubts)})
}

// List handles GET /doubts for tutor-facing dashboards. Supports
// ?status= and ?assigned_to=me filters.
func (h *DoubtsHandler) List(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var status *string
	if v := c.Query("status"); v != "" {
		status = &v
	}
	var assignedTo *string
	if c.Query("assigned_to") == "me" {
		assignedTo = &principal.User.Email
	}

	doubts, err := h.service.ListDoubts(c.Context(), status, assignedTo)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": doubtResponses(doubts)})
}

// Assign handles POST /doubts/:id/assign.
func (h *DoubtsHandler) Assign(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.AssignDoubtRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	doubt, err := h.service.AssignDoubt(c.Context(), principal.User.Email, c.Params("id"), req.TutorEmail)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": doubtResponse(doubt)})
}

// Resolve handles POST /doubts/:id/resolve.
func (h *DoubtsHandler) Resolve(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	doubt, err := h.service.ResolveDoubt(c.Context(), principal.User.Email, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": doubtResponse(doubt)})
}

// Delete handles DELETE /doubts/:id.
func (h *DoubtsHandler) Delete(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	if err := h.service.DeleteDoubt(c.Context(), principal.User.ID, c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

func doubtResponse(doubt *domain.Doubt) dto.DoubtResponse {
	return dto.DoubtResponse{
		ID:            doubt.ID,
		TicketNumber:  doubt.TicketNumber,
		OwnerEmail:    doubt.OwnerEmail,
		Subject:       doubt.Subject,
		Title:         doubt.Title,
		Description:   doubt.Description,
		TutorType:     doubt.TutorType,
		ScheduledDate: doubt.ScheduledDate,
		ScheduledTime: doubt.ScheduledTime,
		Status:        doubt.Status,
		AssignedTo:    doubt.AssignedTo,
		CreatedAt:     doubt.CreatedAt,
		UpdatedAt:     doubt.UpdatedAt,
	}
}

func doubtResponses(doubts []domain.Doubt) []dto.DoubtResponse {
	items := make([]dto.DoubtResponse, 0, len(doubts))
	for i := range doubts {
		items = append(items, doubtResponse(&doubts[i]))
	}
	return items
}
