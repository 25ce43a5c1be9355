package handler

import "github.com/gatherly/event-registration/internal/core/domain"

type createEventRequest struct {
	Title       string `json:"title"       validate:"required"`
	Description string `json:"description" validate:"required"`
	Date        string `json:"date"        validate:"required"`
	// CustomFieldLabels become the event's questions, in order. Blank
	// labels are dropped during shaping.
	CustomFieldLabels []string `json:"custom_field_labels"`
}

type registerRequest struct {
	// Answers maps custom field ids to the registrant's values. Fields
	// left unanswered are recorded with an empty value.
	Answers map[string]string `json:"answers"`
}

type eventResponse struct {
	Event *domain.Event `json:"event"`
}

type eventListResponse struct {
	Events []*domain.Event `json:"events"`
}

type publishedEventItem struct {
	*domain.Event
	IsRegistered bool `json:"is_registered"`
}

type publishedEventsResponse struct {
	Events []publishedEventItem `json:"events"`
}

type registeredEventItem struct {
	*domain.Event
	MyResponses []domain.Response `json:"my_responses"`
}

type registeredEventsResponse struct {
	Events []registeredEventItem `json:"events"`
}

type attendeeItem struct {
	Username  string            `json:"username"`
	Responses []domain.Response `json:"responses"`
}

type attendeesResponse struct {
	Event     *domain.Event  `json:"event"`
	Attendees []attendeeItem `json:"attendees"`
}
