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

// LeadsHandler manages the sales lead endpoints.
type LeadsHandler struct {
	service *service.LeadService
}

// NewLeadsHandler constructs handler.
func NewLeadsHandler(leadService *service.LeadService) *LeadsHandler {
	return &LeadsHandler{service: leadService}
}

// Create handles POST /leads.
func (h *LeadsHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.CreateLeadRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	lead, err := h.service.CreateLead(c.Context(), principal.User.Email, service.LeadCreateInput{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Vertical: req.Vertical,
		Source:   req.Source,
		Notes:    req.Notes,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": leadResponse(lead)})
}

// Get handles GET /leads/:id.
func (h *LeadsHandler) Get(c *fiber.Ctx) error {
	lead, err := h.service.GetLead(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": leadResponse(lead)})
}

// List handles GET /leads. Supports ?status= and ?assigned_to=me.
func (h *LeadsHandler) List(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var status *domain.LeadStatus
	if v := c.Query("status"); v != "" {
		s := domain.LeadStatus(v)
		status = &s
	}
	var assignedTo *string
	if c.Query("assigned_to") == "me" {
		assignedTo = &principal.User.Email
	}

	leads, err := h.service.ListLeads(c.Context(), assignedTo, status)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": leadResponses(leads)})
}

// Update handles PATCH /leads/:id for contact-field edits. Assignment
// and status changes go through their own endpoints so the audit
// history cannot be bypassed.
func (h *LeadsHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateLeadRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	fields := map[string]any{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Email != nil {
		fields["email"] = *req.Email
	}
	if req.Phone != nil {
		fields["phone"] = *req.Phone
	}
	if req.Vertical != nil {
		fields["vertical"] = *req.Vertical
	}
	if req.Source != nil {
		fields["source"] = *req.Source
	}
	if req.Notes != nil {
		fields["notes"] = *req.Notes
	}

	lead, err := h.service.UpdateLead(c.Context(), c.Params("id"), fields)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": leadResponse(lead)})
}

// Assign handles POST /leads/:id/assign.
func (h *LeadsHandler) Assign(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.AssignLeadRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	lead, err := h.service.AssignLead(c.Context(), c.Params("id"), req.AssigneeEmail, principal.User.Email, req.Level)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": leadResponse(lead)})
}

// UpdateStatus handles POST /leads/:id/status.
func (h *LeadsHandler) UpdateStatus(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.UpdateLeadStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	lead, err := h.service.UpdateStatus(c.Context(), c.Params("id"), domain.LeadStatus(req.Status), principal.User.Email)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": leadResponse(lead)})
}

// BulkAssign handles POST /leads/bulk-assign. The response reports
// every lead individually; a failed item never aborts the rest.
func (h *LeadsHandler) BulkAssign(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.BulkAssignRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	results := h.service.BulkAssign(c.Context(), req.LeadIDs, req.AssigneeEmail, principal.User.Email, req.Level)
	items := make([]dto.BulkAssignResultResponse, 0, len(results))
	for _, r := range results {
		item := dto.BulkAssignResultResponse{LeadID: r.LeadID, OK: r.Err == nil}
		if r.Err != nil {
			item.Error = r.Err.Error()
		}
		items = append(items, item)
	}
	status := http.StatusOK
	if service.FailedCount(results) > 0 {
		status = http.StatusMultiStatus
	}
	return c.Status(status).JSON(fiber.Map{"data": items})
}

func leadResponse(lead *domain.Lead) dto.LeadResponse {
	history := make([]dto.AssignmentRecordResponse, 0, len(lead.AssignmentHistory))
	for _, rec := range lead.AssignmentHistory {
		history = append(history, dto.AssignmentRecordResponse{
			AssignedTo:    rec.AssignedTo,
			AssignedBy:    rec.AssignedBy,
			AssignedLevel: rec.AssignedLevel,
			AssignedAt:    rec.AssignedAt,
			Status:        rec.Status,
		})
	}
	return dto.LeadResponse{
		ID:                lead.ID,
		LeadNumber:        lead.LeadNumber,
		Name:              lead.Name,
		Email:             lead.Email,
		Phone:             lead.Phone,
		Vertical:          lead.Vertical,
		Source:            lead.Source,
		Notes:             lead.Notes,
		Status:            lead.Status,
		AssignedTo:        lead.AssignedTo,
		AssignedLevel:     lead.AssignedLevel,
		AssignmentHistory: history,
		CreatedAt:         lead.CreatedAt,
		UpdatedAt:         lead.UpdatedAt,
	}
}

func leadResponses(leads []domain.Lead) []dto.LeadResponse {
	items := make([]dto.LeadResponse, 0, len(leads))
	for i := range leads {
		items = append(items, leadResponse(&leads[i]))
	}
	return items
}
