package entity

import "time"

type Attendee struct {
	Email string `json:"email"`
}

// MeetingDraft is the accumulator the AddAppointment flow fills in across
// turns before committing a calendar event.
type MeetingDraft struct {
	Subject     string
	StartTime   *time.Time
	EndTime     *time.Time
	Location    string
	Attendees   []Attendee
	Description string
}

// Complete reports whether the draft can be committed. Subject, start and
// end are required; location and attendees are optional.
func (m *MeetingDraft) Complete() bool {
	return m != nil && m.Subject != "" && m.StartTime != nil && m.EndTime != nil
}

// AddAttendee appends an attendee, skipping duplicates.
func (m *MeetingDraft) AddAttendee(email string) {
	for _, a := range m.Attendees {
		if a.Email == email {
			return
		}
	}
	m.Attendees = append(m.Attendees, Attendee{Email: email})
}

// SearchParams describes a calendar listing request built by the
// FindAppointments flow.
type SearchParams struct {
	CalendarId   string
	TimeMin      *time.Time
	TimeMax      *time.Time
	MaxResults   int
	OrderBy      string
	SingleEvents bool
}
