package ports

import (
	"context"

	"github.com/gatherly/event-registration/internal/core/domain"
)

// EventUpdate enumerates the fields updateable through Update. Structural
// fields (attendees, custom fields) are deliberately absent so no partial
// update can overwrite them.
type EventUpdate struct {
	Title       *string
	Description *string
	Date        *string
	Published   *bool
}

// EventRepository defines the persistence interface for the event
// collection. Every method runs inside a single serialized section of the
// document store.
type EventRepository interface {
	// Create inserts a new event.
	Create(ctx context.Context, event *domain.Event) (*domain.Event, error)

	// GetAll returns all events in insertion order.
	GetAll(ctx context.Context) ([]*domain.Event, error)

	// FindByID returns the event or domain.ErrEventNotFound.
	FindByID(ctx context.Context, id string) (*domain.Event, error)

	// Update merges the given fields into the stored event.
	Update(ctx context.Context, id string, upd EventUpdate) (*domain.Event, error)

	// AddAttendee appends an attendee to the event. Existence check,
	// uniqueness check, and append happen in one atomic section; a
	// duplicate user id yields domain.ErrAlreadyRegistered.
	AddAttendee(ctx context.Context, eventID string, attendee domain.Attendee) (*domain.Event, error)
}
