package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/gatherly/event-registration/internal/core/domain"
	"github.com/gatherly/event-registration/internal/core/ports"
)

type eventService struct {
	events ports.EventRepository
	users  ports.UserRepository
	log    zerolog.Logger
}

// NewEventService returns an EventService implementation.
func NewEventService(events ports.EventRepository, users ports.UserRepository, log zerolog.Logger) ports.EventService {
	return &eventService{events: events, users: users, log: log}
}

func (s *eventService) Create(ctx context.Context, in ports.CreateEventInput) (*domain.Event, error) {
	if in.Title == "" || in.Description == "" || in.Date == "" || in.CreatedBy == "" {
		return nil, domain.ErrInvalidInput
	}

	event := &domain.Event{
		Title:        in.Title,
		Description:  in.Description,
		Date:         in.Date,
		CreatedBy:    in.CreatedBy,
		Published:    false,
		CustomFields: domain.NewCustomFields(in.CustomFieldLabels),
		Attendees:    []domain.Attendee{},
	}

	created, err := s.events.Create(ctx, event)
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("event_id", created.ID).
		Str("created_by", created.CreatedBy).
		Int("custom_fields", len(created.CustomFields)).
		Msg("event created")

	return created, nil
}

func (s *eventService) ListAll(ctx context.Context) ([]*domain.Event, error) {
	return s.events.GetAll(ctx)
}

func (s *eventService) ListPublished(ctx context.Context, userID string) ([]ports.PublishedEvent, error) {
	all, err := s.events.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	published := make([]ports.PublishedEvent, 0, len(all))
	for _, e := range all {
		if !e.Published {
			continue
		}
		published = append(published, ports.PublishedEvent{
			Event:        e,
			IsRegistered: e.IsRegistered(userID),
		})
	}
	return published, nil
}

func (s *eventService) SetPublished(ctx context.Context, eventID string, published bool) (*domain.Event, error) {
	updated, err := s.events.Update(ctx, eventID, ports.EventUpdate{Published: &published})
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("event_id", eventID).
		Bool("published", published).
		Msg("event visibility changed")

	return updated, nil
}

// Register builds the registrant's responses from the event's custom-field
// list, copying each field's label at registration time, and appends the
// attendee atomically.
func (s *eventService) Register(ctx context.Context, in ports.RegistrationInput) (*domain.Event, error) {
	event, err := s.events.FindByID(ctx, in.EventID)
	if err != nil {
		return nil, err
	}

	responses := make([]domain.Response, 0, len(event.CustomFields))
	for _, field := range event.CustomFields {
		responses = append(responses, domain.Response{
			FieldID: field.ID,
			Label:   field.Label,
			Value:   in.Answers[field.ID],
		})
	}

	updated, err := s.events.AddAttendee(ctx, in.EventID, domain.Attendee{
		UserID:    in.UserID,
		Responses: responses,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("event_id", in.EventID).
		Str("user_id", in.UserID).
		Int("attendees", len(updated.Attendees)).
		Msg("attendee registered")

	return updated, nil
}

func (s *eventService) MyEvents(ctx context.Context, userID string) ([]ports.RegisteredEvent, error) {
	all, err := s.events.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	var registered []ports.RegisteredEvent
	for _, e := range all {
		attendee, ok := e.AttendeeFor(userID)
		if !ok {
			continue
		}
		registered = append(registered, ports.RegisteredEvent{
			Event:     e,
			Responses: attendee.Responses,
		})
	}
	return registered, nil
}

func (s *eventService) Attendees(ctx context.Context, eventID string) (*domain.Event, []ports.AttendeeDetail, error) {
	event, err := s.events.FindByID(ctx, eventID)
	if err != nil {
		return nil, nil, err
	}

	details := make([]ports.AttendeeDetail, 0, len(event.Attendees))
	for _, attendee := range event.Attendees {
		username := "unknown"
		user, err := s.users.FindByID(ctx, attendee.UserID)
		switch {
		case err == nil:
			username = user.Username
		case errors.Is(err, domain.ErrUserNotFound):
			// Dangling user id; keep the placeholder and render the rest.
		default:
			return nil, nil, err
		}
		details = append(details, ports.AttendeeDetail{
			Username:  username,
			Responses: attendee.Responses,
		})
	}
	return event, details, nil
}
