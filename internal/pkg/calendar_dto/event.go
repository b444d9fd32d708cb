package calendar_dto

import "time"

type Event struct {
	ID             string          `json:"id,omitempty"`
	Summary        string          `json:"summary,omitempty"`
	Description    string          `json:"description,omitempty"`
	Start          EventTime       `json:"start"`
	End            EventTime       `json:"end"`
	Attendees      []Attendee      `json:"attendees,omitempty"`
	HangoutLink    string          `json:"hangoutLink,omitempty"`
	ConferenceData *ConferenceData `json:"conferenceData,omitempty"`
	Status         string          `json:"status,omitempty"`
}

type EventTime struct {
	DateTime time.Time `json:"dateTime"`
}

type Attendee struct {
	Email       string `json:"email"`
	DisplayName string `json:"displayName,omitempty"`
}

// ConferenceData carries the meeting-room request on create and the provider's
// generated entry points on read.
type ConferenceData struct {
	CreateRequest *ConferenceCreateRequest `json:"createRequest,omitempty"`
	EntryPoints   []EntryPoint             `json:"entryPoints,omitempty"`
}

type ConferenceCreateRequest struct {
	RequestID string `json:"requestId"`
}

type EntryPoint struct {
	EntryPointType string `json:"entryPointType"`
	URI            string `json:"uri"`
}

const EntryPointTypeVideo = "video"

// MeetingLink returns the joinable conference link for an event: the explicit
// hangout link when the provider sets one, otherwise the first video entry
// point. Empty when the event carries no conference.
func (e *Event) MeetingLink() string {
	if e.HangoutLink != "" {
		return e.HangoutLink
	}
	if e.ConferenceData == nil {
		return ""
	}
	for _, entryPoint := range e.ConferenceData.EntryPoints {
		if entryPoint.EntryPointType == EntryPointTypeVideo {
			return entryPoint.URI
		}
	}
	return ""
}
