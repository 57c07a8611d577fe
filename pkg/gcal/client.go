// Package gcal wraps the Google Calendar and Directory REST APIs behind a
// small interface. Credentials come from the user record and are turned
// into an authorized http client per call.
package gcal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"meeting-assistant-be/internal/entity"
)

const (
	calendarBaseURL  = "https://www.googleapis.com/calendar/v3"
	directoryBaseURL = "https://admin.googleapis.com/admin/directory/v1"

	// Resource type marker the directory uses for bookable meeting rooms.
	meetingRoomResourceType = "Mødelokale"
)

// API is the calendar collaborator contract the flows depend on.
type API interface {
	ListEvents(ctx context.Context, creds *entity.GoogleCredentials, params entity.SearchParams) ([]Event, error)
	CreateEvent(ctx context.Context, creds *entity.GoogleCredentials, draft *entity.MeetingDraft) (*Event, error)
	FreeBusy(ctx context.Context, creds *entity.GoogleCredentials, timeMin, timeMax time.Time, mails []string) (map[string]FreeBusyCalendar, error)
	ListResources(ctx context.Context, creds *entity.GoogleCredentials) ([]entity.MeetingRoom, error)
}

type Client struct {
	conf *oauth2.Config

	CalendarBaseURL  string
	DirectoryBaseURL string
}

func NewClient(conf *oauth2.Config) *Client {
	return &Client{
		conf:             conf,
		CalendarBaseURL:  calendarBaseURL,
		DirectoryBaseURL: directoryBaseURL,
	}
}

func (c *Client) httpClient(ctx context.Context, creds *entity.GoogleCredentials) *http.Client {
	token := &oauth2.Token{
		AccessToken:  creds.AccessToken,
		RefreshToken: creds.RefreshToken,
		TokenType:    creds.TokenType,
	}
	if creds.Expiry != nil {
		token.Expiry = *creds.Expiry
	}
	return c.conf.Client(ctx, token)
}

func (c *Client) ListEvents(ctx context.Context, creds *entity.GoogleCredentials, params entity.SearchParams) ([]Event, error) {
	calendarId := params.CalendarId
	if calendarId == "" {
		calendarId = "primary"
	}

	query := url.Values{}
	if params.TimeMin != nil {
		query.Set("timeMin", params.TimeMin.Format(time.RFC3339))
	}
	if params.TimeMax != nil {
		query.Set("timeMax", params.TimeMax.Format(time.RFC3339))
	}
	if params.MaxResults > 0 {
		query.Set("maxResults", strconv.Itoa(params.MaxResults))
	}
	if params.SingleEvents {
		query.Set("singleEvents", "true")
	}
	if params.OrderBy != "" {
		query.Set("orderBy", params.OrderBy)
	}

	endpoint := fmt.Sprintf("%s/calendars/%s/events?%s", c.CalendarBaseURL, url.PathEscape(calendarId), query.Encode())
	var list eventList
	if err := c.getJSON(ctx, creds, endpoint, &list); err != nil {
		return nil, err
	}
	return list.Items, nil
}

func (c *Client) CreateEvent(ctx context.Context, creds *entity.GoogleCredentials, draft *entity.MeetingDraft) (*Event, error) {
	event := Event{
		Summary:     draft.Subject,
		Location:    draft.Location,
		Description: draft.Description,
		Start:       &EventDateTime{DateTime: draft.StartTime.Format(time.RFC3339)},
		End:         &EventDateTime{DateTime: draft.EndTime.Format(time.RFC3339)},
		Reminders: &EventReminders{
			UseDefault: false,
			Overrides: []EventReminderOverride{
				{Method: "email", Minutes: 24 * 60},
				{Method: "popup", Minutes: 10},
			},
		},
	}
	for _, a := range draft.Attendees {
		event.Attendees = append(event.Attendees, EventAttendee{Email: a.Email})
	}

	body, err := json.Marshal(event)
	if err != nil {
		return nil, err
	}

	endpoint := c.CalendarBaseURL + "/calendars/primary/events?sendNotifications=true"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient(ctx, creds).Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("calendar insert: %s", string(bodyBytes))
	}

	var created Event
	if err := json.Unmarshal(bodyBytes, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) FreeBusy(ctx context.Context, creds *entity.GoogleCredentials, timeMin, timeMax time.Time, mails []string) (map[string]FreeBusyCalendar, error) {
	request := freeBusyRequest{
		TimeMin: timeMin.Format(time.RFC3339),
		TimeMax: timeMax.Format(time.RFC3339),
	}
	for _, mail := range mails {
		request.Items = append(request.Items, freeBusyRequestItem{Id: mail})
	}

	body, err := json.Marshal(request)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.CalendarBaseURL+"/freeBusy", bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient(ctx, creds).Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("calendar freebusy: %s", string(bodyBytes))
	}

	var wire freeBusyResponse
	if err := json.Unmarshal(bodyBytes, &wire); err != nil {
		return nil, err
	}
	return wire.Calendars, nil
}

func (c *Client) ListResources(ctx context.Context, creds *entity.GoogleCredentials) ([]entity.MeetingRoom, error) {
	endpoint := c.DirectoryBaseURL + "/customer/my_customer/resources/calendars"
	var list resourceList
	if err := c.getJSON(ctx, creds, endpoint, &list); err != nil {
		return nil, err
	}

	rooms := make([]entity.MeetingRoom, 0, len(list.Items))
	for _, resource := range list.Items {
		room := entity.MeetingRoom{
			Name:     resource.GeneratedResourceName,
			Mail:     resource.ResourceEmail,
			Building: resource.BuildingId,
		}
		if strings.Contains(resource.ResourceType, meetingRoomResourceType) {
			room.Capacity = entity.ParseRoomCapacity(resource.ResourceName)
		}
		rooms = append(rooms, room)
	}
	return rooms, nil
}

func (c *Client) getJSON(ctx context.Context, creds *entity.GoogleCredentials, endpoint string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient(ctx, creds).Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("google api error: %s", string(bodyBytes))
	}
	return json.Unmarshal(bodyBytes, out)
}
