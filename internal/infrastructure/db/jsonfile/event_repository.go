package jsonfile

import (
	"context"

	"github.com/gatherly/event-registration/internal/core/domain"
	"github.com/gatherly/event-registration/internal/core/ports"
)

// EventRepository implements ports.EventRepository on top of the document
// store.
type EventRepository struct {
	store *Store
}

// NewEventRepository creates an EventRepository sharing the given store.
func NewEventRepository(store *Store) ports.EventRepository {
	return &EventRepository{store: store}
}

// eventRecord is the on-disk shape of an event.
type eventRecord struct {
	ID           string              `json:"id"`
	Title        string              `json:"title"`
	Description  string              `json:"description"`
	Date         string              `json:"date"`
	CreatedBy    string              `json:"createdBy"`
	Published    bool                `json:"published"`
	CustomFields []customFieldRecord `json:"customFields"`
	Attendees    []attendeeRecord    `json:"attendees"`
}

type customFieldRecord struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Type  string `json:"type"`
}

type attendeeRecord struct {
	UserID    string           `json:"userId"`
	Responses []responseRecord `json:"responses"`
}

type responseRecord struct {
	FieldID string `json:"fieldId"`
	Label   string `json:"label"`
	Value   string `json:"value"`
}

func (r *EventRepository) Create(ctx context.Context, event *domain.Event) (*domain.Event, error) {
	created := *event
	if created.ID == "" {
		created.ID = domain.NewID()
	}
	if created.CustomFields == nil {
		created.CustomFields = []domain.CustomField{}
	}
	if created.Attendees == nil {
		created.Attendees = []domain.Attendee{}
	}

	err := r.store.Update(ctx, func(ds *Dataset) error {
		ds.Events = append(ds.Events, toEventRecord(&created))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *EventRepository) GetAll(ctx context.Context) ([]*domain.Event, error) {
	var events []*domain.Event
	err := r.store.View(ctx, func(ds *Dataset) error {
		events = make([]*domain.Event, 0, len(ds.Events))
		for i := range ds.Events {
			events = append(events, fromEventRecord(ds.Events[i]))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return events, nil
}

func (r *EventRepository) FindByID(ctx context.Context, id string) (*domain.Event, error) {
	var found *domain.Event
	err := r.store.View(ctx, func(ds *Dataset) error {
		for i := range ds.Events {
			if ds.Events[i].ID == id {
				found = fromEventRecord(ds.Events[i])
				return nil
			}
		}
		return domain.ErrEventNotFound
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

// Update merges only the fields enumerated in ports.EventUpdate; attendees
// and custom fields are unreachable from here.
func (r *EventRepository) Update(ctx context.Context, id string, upd ports.EventUpdate) (*domain.Event, error) {
	var updated *domain.Event
	err := r.store.Update(ctx, func(ds *Dataset) error {
		for i := range ds.Events {
			if ds.Events[i].ID != id {
				continue
			}
			if upd.Title != nil {
				ds.Events[i].Title = *upd.Title
			}
			if upd.Description != nil {
				ds.Events[i].Description = *upd.Description
			}
			if upd.Date != nil {
				ds.Events[i].Date = *upd.Date
			}
			if upd.Published != nil {
				ds.Events[i].Published = *upd.Published
			}
			updated = fromEventRecord(ds.Events[i])
			return nil
		}
		return domain.ErrEventNotFound
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *EventRepository) AddAttendee(ctx context.Context, eventID string, attendee domain.Attendee) (*domain.Event, error) {
	if attendee.Responses == nil {
		attendee.Responses = []domain.Response{}
	}

	// Existence, uniqueness, and append share one section: concurrent
	// registrations for the same (event, user) yield exactly one success.
	var updated *domain.Event
	err := r.store.Update(ctx, func(ds *Dataset) error {
		for i := range ds.Events {
			if ds.Events[i].ID != eventID {
				continue
			}
			for _, a := range ds.Events[i].Attendees {
				if a.UserID == attendee.UserID {
					return domain.ErrAlreadyRegistered
				}
			}
			ds.Events[i].Attendees = append(ds.Events[i].Attendees, toAttendeeRecord(attendee))
			updated = fromEventRecord(ds.Events[i])
			return nil
		}
		return domain.ErrEventNotFound
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func toEventRecord(e *domain.Event) eventRecord {
	rec := eventRecord{
		ID:           e.ID,
		Title:        e.Title,
		Description:  e.Description,
		Date:         e.Date,
		CreatedBy:    e.CreatedBy,
		Published:    e.Published,
		CustomFields: make([]customFieldRecord, 0, len(e.CustomFields)),
		Attendees:    make([]attendeeRecord, 0, len(e.Attendees)),
	}
	for _, f := range e.CustomFields {
		rec.CustomFields = append(rec.CustomFields, customFieldRecord{ID: f.ID, Label: f.Label, Type: f.Type})
	}
	for _, a := range e.Attendees {
		rec.Attendees = append(rec.Attendees, toAttendeeRecord(a))
	}
	return rec
}

func toAttendeeRecord(a domain.Attendee) attendeeRecord {
	rec := attendeeRecord{
		UserID:    a.UserID,
		Responses: make([]responseRecord, 0, len(a.Responses)),
	}
	for _, resp := range a.Responses {
		rec.Responses = append(rec.Responses, responseRecord{FieldID: resp.FieldID, Label: resp.Label, Value: resp.Value})
	}
	return rec
}

func fromEventRecord(rec eventRecord) *domain.Event {
	e := &domain.Event{
		ID:           rec.ID,
		Title:        rec.Title,
		Description:  rec.Description,
		Date:         rec.Date,
		CreatedBy:    rec.CreatedBy,
		Published:    rec.Published,
		CustomFields: make([]domain.CustomField, 0, len(rec.CustomFields)),
		Attendees:    make([]domain.Attendee, 0, len(rec.Attendees)),
	}
	for _, f := range rec.CustomFields {
		e.CustomFields = append(e.CustomFields, domain.CustomField{ID: f.ID, Label: f.Label, Type: f.Type})
	}
	for _, a := range rec.Attendees {
		att := domain.Attendee{UserID: a.UserID, Responses: make([]domain.Response, 0, len(a.Responses))}
		for _, resp := range a.Responses {
			att.Responses = append(att.Responses, domain.Response{FieldID: resp.FieldID, Label: resp.Label, Value: resp.Value})
		}
		e.Attendees = append(e.Attendees, att)
	}
	return e
}
