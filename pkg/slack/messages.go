package slack

import (
	"fmt"
	"time"

	"meeting-assistant-be/internal/entity"
	"meeting-assistant-be/pkg/gcal"
)

// OutboundMessage is what the assistant sends back over the transport.
type OutboundMessage struct {
	Text        string       `json:"text"`
	Attachments []Attachment `json:"attachments,omitempty"`
}

// Attachment is the classic Slack message attachment, enough for the
// selection menus and confirmation cards the flows emit.
type Attachment struct {
	Fallback   string            `json:"fallback,omitempty"`
	Title      string            `json:"title,omitempty"`
	Text       string            `json:"text,omitempty"`
	Color      string            `json:"color,omitempty"`
	CallbackId string            `json:"callback_id,omitempty"`
	Fields     []AttachmentField `json:"fields,omitempty"`
	Actions    []AttachmentAction `json:"actions,omitempty"`
}

type AttachmentField struct {
	Title string `json:"title"`
	Value string `json:"value"`
	Short bool   `json:"short"`
}

type AttachmentAction struct {
	Name    string             `json:"name"`
	Text    string             `json:"text"`
	Type    string             `json:"type"`
	Value   string             `json:"value,omitempty"`
	Options []AttachmentOption `json:"options,omitempty"`
}

type AttachmentOption struct {
	Text  string `json:"text"`
	Value string `json:"value"`
}

const (
	CallbackLocationSelection = "location_selection"
	CallbackRoomSelection     = "room_selection"
	CallbackMeetingConfirm    = "meeting_confirm"
)

func Text(format string, args ...interface{}) OutboundMessage {
	return OutboundMessage{Text: fmt.Sprintf(format, args...)}
}

// LocationSelectionMessage offers the two offices plus an opt-out.
func LocationSelectionMessage() OutboundMessage {
	return OutboundMessage{
		Text: "Select a location for your meeting",
		Attachments: []Attachment{{
			Fallback:   "Select a location: aarhus, B2C or none",
			CallbackId: CallbackLocationSelection,
			Color:      "#3AA3E3",
			Actions: []AttachmentAction{
				{Name: "location", Text: "Aarhus", Type: "button", Value: "aarhus"},
				{Name: "location", Text: "B2C", Type: "button", Value: "B2C"},
				{Name: "location", Text: "None", Type: "button", Value: "none"},
			},
		}},
	}
}

// RoomSelectionMessage renders the available rooms as a select menu.
func RoomSelectionMessage(rooms []entity.MeetingRoom) OutboundMessage {
	if len(rooms) == 0 {
		return Text("I could not find any available rooms for that time slot.")
	}

	options := make([]AttachmentOption, 0, len(rooms))
	for _, room := range rooms {
		label := fmt.Sprintf("%s (%d people)", room.Name, room.Capacity)
		options = append(options, AttachmentOption{Text: label, Value: room.Name})
	}
	return OutboundMessage{
		Text: "These rooms are available, pick one",
		Attachments: []Attachment{{
			Fallback:   "Pick a meeting room",
			CallbackId: CallbackRoomSelection,
			Color:      "#3AA3E3",
			Actions: []AttachmentAction{{
				Name:    "room",
				Text:    "Pick a room...",
				Type:    "select",
				Options: options,
			}},
		}},
	}
}

// ConfirmMeetingMessage summarizes the draft before commit.
func ConfirmMeetingMessage(draft *entity.MeetingDraft, loc *time.Location) OutboundMessage {
	fields := []AttachmentField{
		{Title: "Subject", Value: draft.Subject, Short: true},
		{Title: "Location", Value: orDash(draft.Location), Short: true},
	}
	if draft.StartTime != nil {
		fields = append(fields, AttachmentField{Title: "Start", Value: draft.StartTime.In(loc).Format("Mon Jan 2 15:04"), Short: true})
	}
	if draft.EndTime != nil {
		fields = append(fields, AttachmentField{Title: "End", Value: draft.EndTime.In(loc).Format("Mon Jan 2 15:04"), Short: true})
	}
	return OutboundMessage{
		Text: "Should I add this event to your calendar? (yes/no)",
		Attachments: []Attachment{{
			Fallback:   "Confirm the meeting (yes/no)",
			Title:      "New meeting",
			CallbackId: CallbackMeetingConfirm,
			Color:      "#36A64F",
			Fields:     fields,
			Actions: []AttachmentAction{
				{Name: "confirm", Text: "Yes", Type: "button", Value: "yes"},
				{Name: "confirm", Text: "No", Type: "button", Value: "no"},
			},
		}},
	}
}

// EventAttachment renders one calendar event. Created events get a green
// accent to stand out from listings.
func EventAttachment(event gcal.Event, created bool) Attachment {
	attachment := Attachment{
		Fallback: event.Summary,
		Title:    event.Summary,
		Text:     formatEventWindow(event),
	}
	if event.Location != "" {
		attachment.Fields = []AttachmentField{{Title: "Location", Value: event.Location, Short: true}}
	}
	if created {
		attachment.Color = "#36A64F"
	}
	return attachment
}

// EventListMessage renders a calendar listing, one attachment per event.
func EventListMessage(events []gcal.Event) OutboundMessage {
	msg := OutboundMessage{Text: "Here is what I found"}
	for _, event := range events {
		msg.Attachments = append(msg.Attachments, EventAttachment(event, false))
	}
	return msg
}

func formatEventWindow(event gcal.Event) string {
	if event.Start == nil || event.End == nil {
		return ""
	}
	// Timed events carry dateTime, all-day events carry date.
	if event.Start.DateTime != "" {
		start, err1 := time.Parse(time.RFC3339, event.Start.DateTime)
		end, err2 := time.Parse(time.RFC3339, event.End.DateTime)
		if err1 == nil && err2 == nil {
			return fmt.Sprintf("%s - %s", start.Format("02/01/2006 15:04"), end.Format("15:04"))
		}
		return fmt.Sprintf("%s - %s", event.Start.DateTime, event.End.DateTime)
	}
	return fmt.Sprintf("%s - %s", event.Start.Date, event.End.Date)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
