package ports

import (
	"context"

	"github.com/gatherly/event-registration/internal/core/domain"
)

// CreateEventInput carries everything needed to create an event. Custom
// field labels are shaped (trimmed, empties dropped, ids assigned) by the
// service.
type CreateEventInput struct {
	Title             string
	Description       string
	Date              string
	CreatedBy         string
	CustomFieldLabels []string
}

// RegistrationInput carries one registration attempt. Answers maps custom
// field ids to the registrant's values; fields without an answer are
// recorded with an empty value.
type RegistrationInput struct {
	EventID string
	UserID  string
	Answers map[string]string
}

// PublishedEvent is a published event annotated with the caller's
// registration status.
type PublishedEvent struct {
	Event        *domain.Event
	IsRegistered bool
}

// RegisteredEvent pairs an event with the caller's own responses.
type RegisteredEvent struct {
	Event     *domain.Event
	Responses []domain.Response
}

// AttendeeDetail is one roster row: the registrant's username resolved for
// display, plus their responses.
type AttendeeDetail struct {
	Username  string
	Responses []domain.Response
}

type EventService interface {
	Create(ctx context.Context, in CreateEventInput) (*domain.Event, error)

	// ListAll returns every event, drafts included. Admin use.
	ListAll(ctx context.Context) ([]*domain.Event, error)

	// ListPublished returns published events annotated with whether userID
	// is already registered.
	ListPublished(ctx context.Context, userID string) ([]PublishedEvent, error)

	// SetPublished publishes or unpublishes an event.
	SetPublished(ctx context.Context, eventID string, published bool) (*domain.Event, error)

	// Register records one user's registration with their custom-field
	// answers. Exactly-once per (event, user).
	Register(ctx context.Context, in RegistrationInput) (*domain.Event, error)

	// MyEvents returns the events userID registered for, with their own
	// responses attached.
	MyEvents(ctx context.Context, userID string) ([]RegisteredEvent, error)

	// Attendees returns the event plus its roster with usernames resolved.
	Attendees(ctx context.Context, eventID string) (*domain.Event, []AttendeeDetail, error)
}
