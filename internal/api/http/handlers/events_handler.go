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

// EventsHandler manages published events and signups.
type EventsHandler struct {
	service *service.EventService
}

// NewEventsHandler constructs handler.
func NewEventsHandler(eventService *service.EventService) *EventsHandler {
	return &EventsHandler{service: eventService}
}

// Create handles POST /events.
func (h *EventsHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.CreateEventRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	event, err := h.service.CreateEvent(c.Context(), principal.User.Email, service.EventCreateInput{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		StartsAt:    req.StartsAt,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": eventResponse(event)})
}

// List handles GET /events, returning upcoming events only.
func (h *EventsHandler) List(c *fiber.Ctx) error {
	events, err := h.service.ListUpcoming(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.EventResponse, 0, len(events))
	for i := range events {
		items = append(items, eventResponse(&events[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Register handles POST /events/:id/register.
func (h *EventsHandler) Register(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	registration, err := h.service.Register(c.Context(), principal.User, c.Params("id"))
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.RegistrationResponse{
		ID:        registration.ID,
		EventID:   registration.EventID,
		Email:     registration.Email,
		CreatedAt: registration.CreatedAt,
	}})
}

// Registrations handles GET /events/:id/registrations.
func (h *EventsHandler) Registrations(c *fiber.Ctx) error {
	registrations, err := h.service.ListRegistrations(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	items := make([]dto.RegistrationResponse, 0, len(registrations))
	for _, reg := range registrations {
		items = append(items, dto.RegistrationResponse{
			ID:        reg.ID,
			EventID:   reg.EventID,
			Email:     reg.Email,
			CreatedAt: reg.CreatedAt,
		})
	}
	return c.JSON(fiber.Map{"data": items})
}

func eventResponse(event *domain.Event) dto.EventResponse {
	return dto.EventResponse{
		ID:          event.ID,
		Title:       event.Title,
		Description: event.Description,
		Location:    event.Location,
		StartsAt:    event.StartsAt,
		CreatedBy:   event.CreatedBy,
		CreatedAt:   event.CreatedAt,
	}
}
