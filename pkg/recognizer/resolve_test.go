package recognizer

import (
	"testing"
	"time"

	"meeting-assistant-be/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var cph = mustLoadLocation("Europe/Copenhagen")

func mustLoadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(err)
	}
	return loc
}

func wall(year int, month time.Month, day, hour, min int) time.Time {
	// Entities carry wall-clock values in an arbitrary zone; SearchWindow
	// rebinds them before use.
	return time.Date(year, month, day, hour, min, 0, 0, time.UTC)
}

func TestSearchWindowDefaultsToUpcoming(t *testing.T) {
	now := time.Date(2026, time.September, 1, 9, 30, 0, 0, time.UTC)

	params := SearchWindow(nil, now, cph)

	assert.Equal(t, "primary", params.CalendarId)
	assert.Equal(t, "startTime", params.OrderBy)
	assert.True(t, params.SingleEvents)
	require.NotNil(t, params.TimeMin)
	assert.True(t, params.TimeMin.Equal(now))
	assert.Nil(t, params.TimeMax)
	assert.Equal(t, 10, params.MaxResults)
}

func TestSearchWindowDateTimeRange(t *testing.T) {
	entities := []Entity{{
		Kind:  KindDateTimeRange,
		Start: wall(2026, time.September, 3, 15, 0),
		End:   wall(2026, time.September, 3, 17, 0),
	}}

	params := SearchWindow(entities, time.Now(), cph)

	require.NotNil(t, params.TimeMin)
	require.NotNil(t, params.TimeMax)
	assert.Equal(t, time.Date(2026, time.September, 3, 15, 0, 0, 0, cph), *params.TimeMin)
	assert.Equal(t, time.Date(2026, time.September, 3, 17, 0, 0, 0, cph), *params.TimeMax)
	assert.Zero(t, params.MaxResults, "bounded windows do not cap results")
}

func TestSearchWindowDateCoversTheDay(t *testing.T) {
	entities := []Entity{{
		Kind:  KindDate,
		Start: wall(2026, time.September, 3, 0, 0),
	}}

	params := SearchWindow(entities, time.Now(), cph)

	assert.Equal(t, time.Date(2026, time.September, 3, 0, 0, 0, 0, cph), *params.TimeMin)
	assert.Equal(t, time.Date(2026, time.September, 3, 23, 59, 0, 0, cph), *params.TimeMax)
}

func TestSearchWindowDateRangeRunsMidnightToMidnight(t *testing.T) {
	entities := []Entity{{
		Kind:  KindDateRange,
		Start: wall(2026, time.September, 7, 10, 0),
		End:   wall(2026, time.September, 11, 18, 0),
	}}

	params := SearchWindow(entities, time.Now(), cph)

	assert.Equal(t, time.Date(2026, time.September, 7, 0, 0, 0, 0, cph), *params.TimeMin)
	assert.Equal(t, time.Date(2026, time.September, 11, 0, 0, 0, 0, cph), *params.TimeMax)
}

func TestSearchWindowDateTimeIsNearZeroWindow(t *testing.T) {
	entities := []Entity{{
		Kind:  KindDateTime,
		Start: wall(2026, time.September, 3, 15, 0),
	}}

	params := SearchWindow(entities, time.Now(), cph)

	assert.Equal(t, time.Second, params.TimeMax.Sub(*params.TimeMin))
}

func TestSearchWindowFirstEntityOfKindWins(t *testing.T) {
	entities := []Entity{
		{Kind: KindDateTime, Start: wall(2026, time.September, 3, 15, 0)},
		{Kind: KindDateTime, Start: wall(2026, time.September, 4, 9, 0)},
	}

	params := SearchWindow(entities, time.Now(), cph)

	assert.Equal(t, time.Date(2026, time.September, 3, 15, 0, 0, 0, cph), *params.TimeMin)
}

func TestApplyToDraftCapturesFields(t *testing.T) {
	draft := &entity.MeetingDraft{}
	entities := []Entity{
		{Kind: KindDateTimeRange, Start: wall(2026, time.September, 3, 14, 0), End: wall(2026, time.September, 3, 15, 0)},
		{Kind: KindSubject, Text: "Quarterly review"},
		{Kind: KindLocation, Text: "aarhus"},
		{Kind: KindEmail, Text: "bob@example.com"},
		{Kind: KindEmail, Text: "carol@example.com"},
		{Kind: KindEmail, Text: "bob@example.com"},
	}

	ApplyToDraft(entities, draft, cph)

	assert.Equal(t, "Quarterly review", draft.Subject)
	assert.Equal(t, "aarhus", draft.Location)
	assert.Equal(t, time.Date(2026, time.September, 3, 14, 0, 0, 0, cph), *draft.StartTime)
	assert.Equal(t, time.Date(2026, time.September, 3, 15, 0, 0, 0, cph), *draft.EndTime)
	assert.Equal(t, []entity.Attendee{
		{Email: "bob@example.com"},
		{Email: "carol@example.com"},
	}, draft.Attendees, "duplicate attendees collapse")
}

func TestApplyToDraftBareDateDefaultsToMorning(t *testing.T) {
	draft := &entity.MeetingDraft{}
	entities := []Entity{{Kind: KindDate, Start: wall(2026, time.September, 3, 0, 0)}}

	ApplyToDraft(entities, draft, cph)

	require.NotNil(t, draft.StartTime)
	assert.Equal(t, time.Date(2026, time.September, 3, 8, 0, 0, 0, cph), *draft.StartTime)
	assert.Nil(t, draft.EndTime)
}

func TestParseReplyTimePrefersEntities(t *testing.T) {
	now := time.Date(2026, time.September, 1, 9, 0, 0, 0, time.UTC)
	entities := []Entity{{
		Kind:  KindDateTimeRange,
		Start: wall(2026, time.September, 3, 8, 0),
		End:   wall(2026, time.September, 3, 9, 0),
	}}

	start, end := ParseReplyTime(entities, "irrelevant", now, cph)

	require.NotNil(t, start)
	require.NotNil(t, end)
	assert.Equal(t, time.Date(2026, time.September, 3, 8, 0, 0, 0, cph), *start)
	assert.Equal(t, time.Date(2026, time.September, 3, 9, 0, 0, 0, cph), *end)
}

func TestParseReplyTimeClockOnlyAnchorsToday(t *testing.T) {
	now := time.Date(2026, time.September, 1, 9, 0, 0, 0, cph)

	start, end := ParseReplyTime(nil, "14:30", now, cph)

	require.NotNil(t, start)
	assert.Nil(t, end)
	assert.Equal(t, time.Date(2026, time.September, 1, 14, 30, 0, 0, cph), *start)

	start, _ = ParseReplyTime(nil, "14.30", now, cph)
	require.NotNil(t, start)
	assert.Equal(t, time.Date(2026, time.September, 1, 14, 30, 0, 0, cph), *start)
}

func TestParseReplyTimeFullDatetime(t *testing.T) {
	now := time.Date(2026, time.September, 1, 9, 0, 0, 0, cph)

	start, end := ParseReplyTime(nil, " 2026-09-03 10:00 ", now, cph)

	require.NotNil(t, start)
	assert.Nil(t, end)
	assert.Equal(t, time.Date(2026, time.September, 3, 10, 0, 0, 0, cph), *start)
}

func TestParseReplyTimeGarbage(t *testing.T) {
	start, end := ParseReplyTime(nil, "whenever works", time.Now(), cph)
	assert.Nil(t, start)
	assert.Nil(t, end)
}

func TestFirstOf(t *testing.T) {
	entities := []Entity{
		{Kind: KindSubject, Text: "first"},
		{Kind: KindSubject, Text: "second"},
	}

	e, ok := FirstOf(entities, KindSubject)
	require.True(t, ok)
	assert.Equal(t, "first", e.Text)

	_, ok = FirstOf(entities, KindEmail)
	assert.False(t, ok)
}
