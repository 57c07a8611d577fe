package gcal

// EventDateTime carries either a timed instant or an all-day date, the way
// the Calendar API does.
type EventDateTime struct {
	DateTime string `json:"dateTime,omitempty"`
	Date     string `json:"date,omitempty"`
	TimeZone string `json:"timeZone,omitempty"`
}

type EventAttendee struct {
	Email string `json:"email"`
}

type EventReminderOverride struct {
	Method  string `json:"method"`
	Minutes int    `json:"minutes"`
}

type EventReminders struct {
	UseDefault bool                    `json:"useDefault"`
	Overrides  []EventReminderOverride `json:"overrides,omitempty"`
}

type Event struct {
	Id          string          `json:"id,omitempty"`
	Summary     string          `json:"summary,omitempty"`
	Location    string          `json:"location,omitempty"`
	Description string          `json:"description,omitempty"`
	Start       *EventDateTime  `json:"start,omitempty"`
	End         *EventDateTime  `json:"end,omitempty"`
	Attendees   []EventAttendee `json:"attendees,omitempty"`
	Reminders   *EventReminders `json:"reminders,omitempty"`
	HtmlLink    string          `json:"htmlLink,omitempty"`
}

type eventList struct {
	Items []Event `json:"items"`
}

// BusyInterval is one occupied slot in a free/busy answer.
type BusyInterval struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type FreeBusyCalendar struct {
	Busy []BusyInterval `json:"busy"`
}

type freeBusyRequest struct {
	TimeMin string             `json:"timeMin"`
	TimeMax string             `json:"timeMax"`
	Items   []freeBusyRequestItem `json:"items"`
}

type freeBusyRequestItem struct {
	Id string `json:"id"`
}

type freeBusyResponse struct {
	Calendars map[string]FreeBusyCalendar `json:"calendars"`
}

// RawResource is a directory calendar resource before domain mapping.
type RawResource struct {
	ResourceName          string `json:"resourceName"`
	GeneratedResourceName string `json:"generatedResourceName"`
	ResourceEmail         string `json:"resourceEmail"`
	ResourceType          string `json:"resourceType"`
	BuildingId            string `json:"buildingId"`
}

type resourceList struct {
	Items []RawResource `json:"items"`
}
