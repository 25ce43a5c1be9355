package domain

import (
	"errors"
	"strings"

	"github.com/oklog/ulid/v2"
)

var ErrEventNotFound = errors.New("event not found")
var ErrAlreadyRegistered = errors.New("user already registered for this event")

// CustomFieldTypeText is the only field kind currently supported: a free
// text input answered by each registrant.
const CustomFieldTypeText = "text"

// Event is the core aggregate root: an event together with its admin-defined
// custom questions and the attendees who registered for it.
type Event struct {
	ID           string        `json:"id"`
	Title        string        `json:"title"`
	Description  string        `json:"description"`
	Date         string        `json:"date"`
	CreatedBy    string        `json:"created_by"`
	Published    bool          `json:"published"`
	CustomFields []CustomField `json:"custom_fields"`
	Attendees    []Attendee    `json:"attendees"`
}

// CustomField is an admin-defined question attached to an event. Field ids
// are unique within their event.
type CustomField struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Type  string `json:"type"`
}

// Attendee records one user's registration for one event. At most one
// attendee per user id exists in an event.
type Attendee struct {
	UserID    string     `json:"user_id"`
	Responses []Response `json:"responses"`
}

// Response is a registrant's answer to one custom field. Label is a copy of
// the field's label taken at registration time, so later edits to the field
// do not rewrite historical answers.
type Response struct {
	FieldID string `json:"field_id"`
	Label   string `json:"label"`
	Value   string `json:"value"`
}

// IsRegistered reports whether userID already appears in the attendee set.
func (e *Event) IsRegistered(userID string) bool {
	for _, a := range e.Attendees {
		if a.UserID == userID {
			return true
		}
	}
	return false
}

// AttendeeFor returns the attendee record for userID, if present.
func (e *Event) AttendeeFor(userID string) (Attendee, bool) {
	for _, a := range e.Attendees {
		if a.UserID == userID {
			return a, true
		}
	}
	return Attendee{}, false
}

// NewCustomFields shapes raw labels into custom fields: each label is
// trimmed, empty results are dropped, and the survivors get a fresh unique
// id in input order.
func NewCustomFields(labels []string) []CustomField {
	fields := make([]CustomField, 0, len(labels))
	for _, label := range labels {
		label = strings.TrimSpace(label)
		if label == "" {
			continue
		}
		fields = append(fields, CustomField{
			ID:    NewID(),
			Label: label,
			Type:  CustomFieldTypeText,
		})
	}
	return fields
}

// NewID returns a fresh 128-bit ULID. Unlike wall-clock ids, ULIDs stay
// unique under concurrent creation within the same millisecond.
func NewID() string {
	return ulid.Make().String()
}
