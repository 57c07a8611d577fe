package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"meeting-assistant-be/internal/entity"
	"meeting-assistant-be/internal/pkg/logger"
	"meeting-assistant-be/pkg/gcal"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type calendarStub struct {
	rooms         []entity.MeetingRoom
	resourcesErr  error
	resourceCalls int

	busy        map[string]gcal.FreeBusyCalendar
	freeBusyErr error
	lastMails   []string
}

func (c *calendarStub) ListEvents(ctx context.Context, creds *entity.GoogleCredentials, params entity.SearchParams) ([]gcal.Event, error) {
	return nil, nil
}

func (c *calendarStub) CreateEvent(ctx context.Context, creds *entity.GoogleCredentials, draft *entity.MeetingDraft) (*gcal.Event, error) {
	return nil, nil
}

func (c *calendarStub) FreeBusy(ctx context.Context, creds *entity.GoogleCredentials, timeMin, timeMax time.Time, mails []string) (map[string]gcal.FreeBusyCalendar, error) {
	if c.freeBusyErr != nil {
		return nil, c.freeBusyErr
	}
	c.lastMails = mails
	// Unlisted mails count as free.
	out := make(map[string]gcal.FreeBusyCalendar, len(mails))
	for _, mail := range mails {
		out[mail] = c.busy[mail]
	}
	return out, nil
}

func (c *calendarStub) ListResources(ctx context.Context, creds *entity.GoogleCredentials) ([]entity.MeetingRoom, error) {
	c.resourceCalls++
	return c.rooms, c.resourcesErr
}

func roomTestUser() *entity.UserRecord {
	return &entity.UserRecord{
		Id:          "U1",
		Credentials: &entity.GoogleCredentials{AccessToken: "tok"},
	}
}

func roomCatalog() []entity.MeetingRoom {
	return []entity.MeetingRoom{
		{Name: "ARH-3-12p", Mail: "arh-3@resource.example.com", Capacity: 12, Building: "ARH"},
		{Name: "ARH-1-4p", Mail: "arh-1@resource.example.com", Capacity: 4, Building: "ARH"},
		{Name: "ARH-2-8p", Mail: "arh-2@resource.example.com", Capacity: 8, Building: "ARH"},
		{Name: "B2C-203-8p", Mail: "b2c-203@resource.example.com", Capacity: 8, Building: "B2C"},
		{Name: "ARH-Lobby", Mail: "lobby@resource.example.com", Capacity: 0, Building: "ARH"},
	}
}

func TestAvailableRoomsFiltersAndSorts(t *testing.T) {
	stub := &calendarStub{rooms: roomCatalog()}
	svc := NewRoomService(stub, logger.NewNop())

	start := time.Date(2026, time.September, 3, 14, 0, 0, 0, time.UTC)
	rooms, err := svc.AvailableRooms(context.Background(), roomTestUser(), start, start.Add(time.Hour), "ARH", 0)

	require.NoError(t, err)
	names := make([]string, len(rooms))
	for i, room := range rooms {
		names[i] = room.Name
	}
	// Smallest fitting room first; zero-capacity resources and other
	// offices never appear.
	assert.Equal(t, []string{"ARH-1-4p", "ARH-2-8p", "ARH-3-12p"}, names)
}

func TestAvailableRoomsRespectsAttendeeCount(t *testing.T) {
	stub := &calendarStub{rooms: roomCatalog()}
	svc := NewRoomService(stub, logger.NewNop())

	start := time.Date(2026, time.September, 3, 14, 0, 0, 0, time.UTC)
	rooms, err := svc.AvailableRooms(context.Background(), roomTestUser(), start, start.Add(time.Hour), "ARH", 6)

	require.NoError(t, err)
	require.Len(t, rooms, 2)
	assert.Equal(t, "ARH-2-8p", rooms[0].Name)
	assert.Equal(t, "ARH-3-12p", rooms[1].Name)
}

func TestAvailableRoomsDropsBusyRooms(t *testing.T) {
	stub := &calendarStub{
		rooms: roomCatalog(),
		busy: map[string]gcal.FreeBusyCalendar{
			"arh-1@resource.example.com": {Busy: []gcal.BusyInterval{{Start: "2026-09-03T14:00:00Z", End: "2026-09-03T15:00:00Z"}}},
		},
	}
	svc := NewRoomService(stub, logger.NewNop())

	start := time.Date(2026, time.September, 3, 14, 0, 0, 0, time.UTC)
	rooms, err := svc.AvailableRooms(context.Background(), roomTestUser(), start, start.Add(time.Hour), "ARH", 0)

	require.NoError(t, err)
	require.Len(t, rooms, 2)
	assert.Equal(t, "ARH-2-8p", rooms[0].Name)
}

func TestAvailableRoomsNoCandidatesSkipsFreeBusy(t *testing.T) {
	stub := &calendarStub{rooms: roomCatalog(), freeBusyErr: errors.New("should not be called")}
	svc := NewRoomService(stub, logger.NewNop())

	start := time.Date(2026, time.September, 3, 14, 0, 0, 0, time.UTC)
	rooms, err := svc.AvailableRooms(context.Background(), roomTestUser(), start, start.Add(time.Hour), "OSLO", 0)

	require.NoError(t, err)
	assert.Empty(t, rooms)
}

func TestAvailableRoomsCatalogIsCached(t *testing.T) {
	stub := &calendarStub{rooms: roomCatalog()}
	svc := NewRoomService(stub, logger.NewNop())

	start := time.Date(2026, time.September, 3, 14, 0, 0, 0, time.UTC)
	ctx := context.Background()
	_, err := svc.AvailableRooms(ctx, roomTestUser(), start, start.Add(time.Hour), "ARH", 0)
	require.NoError(t, err)
	_, err = svc.AvailableRooms(ctx, roomTestUser(), start, start.Add(time.Hour), "B2C", 0)
	require.NoError(t, err)

	assert.Equal(t, 1, stub.resourceCalls, "directory listing is served from cache")
}

func TestAvailableRoomsPropagatesErrors(t *testing.T) {
	stub := &calendarStub{resourcesErr: errors.New("directory down")}
	svc := NewRoomService(stub, logger.NewNop())

	start := time.Date(2026, time.September, 3, 14, 0, 0, 0, time.UTC)
	_, err := svc.AvailableRooms(context.Background(), roomTestUser(), start, start.Add(time.Hour), "ARH", 0)
	assert.Error(t, err)

	stub = &calendarStub{rooms: roomCatalog(), freeBusyErr: errors.New("freebusy down")}
	svc = NewRoomService(stub, logger.NewNop())
	_, err = svc.AvailableRooms(context.Background(), roomTestUser(), start, start.Add(time.Hour), "ARH", 0)
	assert.Error(t, err)
}
