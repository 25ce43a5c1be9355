package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/gatherly/event-registration/internal/api/metrics"
	"github.com/gatherly/event-registration/internal/core/domain"
	"github.com/gatherly/event-registration/internal/core/ports"
)

// EventHandler handles both the admin and the attendee side of events.
type EventHandler struct {
	eventService ports.EventService
}

func NewEventHandler(eventService ports.EventService) *EventHandler {
	return &EventHandler{eventService: eventService}
}

// Create handles POST /admin/events.
//
// @Summary      Create an event
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createEventRequest  true  "Event details"
// @Success      201   {object}  eventResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /admin/events [post]
func (h *EventHandler) Create(c echo.Context) error {
	userID, _, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req createEventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	event, err := h.eventService.Create(c.Request().Context(), ports.CreateEventInput{
		Title:             req.Title,
		Description:       req.Description,
		Date:              req.Date,
		CreatedBy:         userID,
		CustomFieldLabels: req.CustomFieldLabels,
	})
	if err != nil {
		return err
	}
	metrics.EventsCreatedTotal.Inc()

	return c.JSON(http.StatusCreated, eventResponse{Event: event})
}

// ListAll handles GET /admin/events: every event, drafts included.
//
// @Summary      List all events
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  eventListResponse
// @Failure      403  {object}  errorResponse
// @Router       /admin/events [get]
func (h *EventHandler) ListAll(c echo.Context) error {
	events, err := h.eventService.ListAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, eventListResponse{Events: events})
}

// Publish handles POST /admin/events/:id/publish.
//
// @Summary      Publish an event
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Event id"
// @Success      200  {object}  eventResponse
// @Failure      404  {object}  errorResponse
// @Router       /admin/events/{id}/publish [post]
func (h *EventHandler) Publish(c echo.Context) error {
	return h.setPublished(c, true)
}

// Unpublish handles POST /admin/events/:id/unpublish.
//
// @Summary      Unpublish an event
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Event id"
// @Success      200  {object}  eventResponse
// @Failure      404  {object}  errorResponse
// @Router       /admin/events/{id}/unpublish [post]
func (h *EventHandler) Unpublish(c echo.Context) error {
	return h.setPublished(c, false)
}

func (h *EventHandler) setPublished(c echo.Context, published bool) error {
	event, err := h.eventService.SetPublished(c.Request().Context(), c.Param("id"), published)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, eventResponse{Event: event})
}

// Attendees handles GET /admin/events/:id/attendees.
//
// @Summary      List an event's attendees with their responses
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Event id"
// @Success      200  {object}  attendeesResponse
// @Failure      404  {object}  errorResponse
// @Router       /admin/events/{id}/attendees [get]
func (h *EventHandler) Attendees(c echo.Context) error {
	event, details, err := h.eventService.Attendees(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	items := make([]attendeeItem, 0, len(details))
	for _, d := range details {
		items = append(items, attendeeItem{Username: d.Username, Responses: d.Responses})
	}
	return c.JSON(http.StatusOK, attendeesResponse{Event: event, Attendees: items})
}

// ListPublished handles GET /events: published events annotated with the
// caller's registration status.
//
// @Summary      List published events
// @Tags         events
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  publishedEventsResponse
// @Router       /events [get]
func (h *EventHandler) ListPublished(c echo.Context) error {
	userID, _, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	events, err := h.eventService.ListPublished(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	items := make([]publishedEventItem, 0, len(events))
	for _, e := range events {
		items = append(items, publishedEventItem{Event: e.Event, IsRegistered: e.IsRegistered})
	}
	return c.JSON(http.StatusOK, publishedEventsResponse{Events: items})
}

// Register handles POST /events/:id/register.
//
// @Summary      Register for an event
// @Tags         events
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string           true  "Event id"
// @Param        body  body      registerRequest  true  "Custom field answers"
// @Success      201   {object}  eventResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /events/{id}/register [post]
func (h *EventHandler) Register(c echo.Context) error {
	userID, _, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	start := time.Now()
	event, err := h.eventService.Register(c.Request().Context(), ports.RegistrationInput{
		EventID: c.Param("id"),
		UserID:  userID,
		Answers: req.Answers,
	})
	metrics.RegistrationDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.RegistrationsTotal.WithLabelValues(registrationResult(err)).Inc()
		return err
	}
	metrics.RegistrationsTotal.WithLabelValues("ok").Inc()

	return c.JSON(http.StatusCreated, eventResponse{Event: event})
}

// MyEvents handles GET /my-events: the caller's registrations with their
// own responses.
//
// @Summary      List events the caller registered for
// @Tags         events
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  registeredEventsResponse
// @Router       /my-events [get]
func (h *EventHandler) MyEvents(c echo.Context) error {
	userID, _, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	events, err := h.eventService.MyEvents(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	items := make([]registeredEventItem, 0, len(events))
	for _, e := range events {
		items = append(items, registeredEventItem{Event: e.Event, MyResponses: e.Responses})
	}
	return c.JSON(http.StatusOK, registeredEventsResponse{Events: items})
}

func registrationResult(err error) string {
	switch {
	case errors.Is(err, domain.ErrAlreadyRegistered):
		return "duplicate"
	case errors.Is(err, domain.ErrEventNotFound):
		return "not_found"
	default:
		return "error"
	}
}
