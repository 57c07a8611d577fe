package recognizer

import (
	"strings"
	"time"

	"meeting-assistant-be/internal/entity"
)

// Rebind reinterprets a wall-clock value in the given location, keeping the
// calendar fields and dropping the zone the value was parsed with.
func Rebind(t time.Time, loc *time.Location) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, loc)
}

// SearchWindow resolves the temporal entities of a find-appointments request
// into calendar search parameters, in the user's timezone.
//
//   - datetimerange: [start, end) verbatim
//   - daterange:     [start 00:00, end 00:00) whole-day range
//   - datetime:      near-zero window [t, t+1s)
//   - date:          [00:00, 23:59] that day
//
// Without a window the search defaults to "from now, next 10 results".
func SearchWindow(entities []Entity, now time.Time, loc *time.Location) entity.SearchParams {
	params := entity.SearchParams{
		CalendarId:   "primary",
		OrderBy:      "startTime",
		SingleEvents: true,
	}

	if e, ok := FirstOf(entities, KindDateTimeRange); ok {
		start := Rebind(e.Start, loc)
		end := Rebind(e.End, loc)
		params.TimeMin = &start
		params.TimeMax = &end
	} else if e, ok := FirstOf(entities, KindDateRange); ok {
		start := midnight(Rebind(e.Start, loc))
		end := midnight(Rebind(e.End, loc))
		params.TimeMin = &start
		params.TimeMax = &end
	} else if e, ok := FirstOf(entities, KindDateTime); ok {
		start := Rebind(e.Start, loc)
		end := start.Add(time.Second)
		params.TimeMin = &start
		params.TimeMax = &end
	} else if e, ok := FirstOf(entities, KindDate); ok {
		day := Rebind(e.Start, loc)
		start := midnight(day)
		end := time.Date(day.Year(), day.Month(), day.Day(), 23, 59, 0, 0, loc)
		params.TimeMin = &start
		params.TimeMax = &end
	}

	if params.TimeMin == nil {
		min := now.In(loc)
		params.TimeMin = &min
	}
	if params.TimeMax == nil {
		params.MaxResults = 10
	}
	return params
}

// ApplyToDraft captures appointment entities into the meeting draft, in the
// user's timezone. Only the first entity of each kind is used. Dates without
// a time of day default to an 08:00 start.
func ApplyToDraft(entities []Entity, draft *entity.MeetingDraft, loc *time.Location) {
	if e, ok := FirstOf(entities, KindDateTimeRange); ok {
		start := Rebind(e.Start, loc)
		end := Rebind(e.End, loc)
		draft.StartTime = &start
		draft.EndTime = &end
	} else if e, ok := FirstOf(entities, KindDateTime); ok {
		start := Rebind(e.Start, loc)
		draft.StartTime = &start
	} else if e, ok := FirstOf(entities, KindDate); ok {
		day := Rebind(e.Start, loc)
		start := time.Date(day.Year(), day.Month(), day.Day(), 8, 0, 0, 0, loc)
		draft.StartTime = &start
	}

	if e, ok := FirstOf(entities, KindLocation); ok {
		draft.Location = e.Text
	}
	if e, ok := FirstOf(entities, KindSubject); ok {
		draft.Subject = e.Text
	}
	for _, e := range entities {
		if e.Kind == KindEmail {
			draft.AddAttendee(e.Text)
		}
	}
	// Contact names are recognized but there is no directory lookup for
	// them yet, so they do not become attendees.
}

var replyTimeLayouts = []string{
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"15:04",
	"15.04",
}

// ParseReplyTime extracts a time (or range) from a prompt reply. Entities
// from re-recognizing the reply take precedence; bare clock or datetime text
// is a fallback for short answers the model does not tag.
func ParseReplyTime(entities []Entity, text string, now time.Time, loc *time.Location) (start, end *time.Time) {
	if e, ok := FirstOf(entities, KindDateTimeRange); ok {
		s := Rebind(e.Start, loc)
		e2 := Rebind(e.End, loc)
		return &s, &e2
	}
	if e, ok := FirstOf(entities, KindDateTime); ok {
		s := Rebind(e.Start, loc)
		return &s, nil
	}
	if e, ok := FirstOf(entities, KindDate); ok {
		day := Rebind(e.Start, loc)
		s := time.Date(day.Year(), day.Month(), day.Day(), 8, 0, 0, 0, loc)
		return &s, nil
	}

	trimmed := strings.TrimSpace(text)
	for _, layout := range replyTimeLayouts {
		parsed, err := time.ParseInLocation(layout, trimmed, loc)
		if err != nil {
			continue
		}
		if parsed.Year() == 0 {
			// Clock-only layouts; anchor on today.
			ref := now.In(loc)
			parsed = time.Date(ref.Year(), ref.Month(), ref.Day(), parsed.Hour(), parsed.Minute(), 0, 0, loc)
		}
		return &parsed, nil
	}
	return nil, nil
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
