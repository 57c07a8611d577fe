// Package luis is a thin client for a hosted LUIS-style endpoint. The
// endpoint URI already carries the app id and subscription key; recognition
// is a GET with the utterance in the query string.
package luis

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"meeting-assistant-be/pkg/recognizer"
)

type Provider struct {
	EndpointURI string
	client      *http.Client
}

func NewProvider(endpointURI string) *Provider {
	return &Provider{
		EndpointURI: endpointURI,
		client:      &http.Client{Timeout: 10 * time.Second},
	}
}

// Wire structures for the LUIS v2 prediction response.
type luisResponse struct {
	Query            string       `json:"query"`
	TopScoringIntent luisIntent   `json:"topScoringIntent"`
	Entities         []luisEntity `json:"entities"`
}

type luisIntent struct {
	Intent string  `json:"intent"`
	Score  float64 `json:"score"`
}

type luisEntity struct {
	Entity     string          `json:"entity"`
	Type       string          `json:"type"`
	Resolution *luisResolution `json:"resolution,omitempty"`
}

type luisResolution struct {
	Values []luisTimeValue `json:"values,omitempty"`
}

type luisTimeValue struct {
	Type  string `json:"type"`
	Value string `json:"value,omitempty"`
	Start string `json:"start,omitempty"`
	End   string `json:"end,omitempty"`
}

func (p *Provider) Recognize(ctx context.Context, text string) (*recognizer.Result, error) {
	endpoint := fmt.Sprintf("%s&q=%s", p.EndpointURI, url.QueryEscape(text))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("luis recognition error: %s", string(bodyBytes))
	}

	var wire luisResponse
	if err := json.Unmarshal(bodyBytes, &wire); err != nil {
		return nil, err
	}

	result := &recognizer.Result{
		Query:  wire.Query,
		Intent: wire.TopScoringIntent.Intent,
		Score:  wire.TopScoringIntent.Score,
	}
	if result.Intent == "" {
		result.Intent = recognizer.IntentNone
	}
	for _, e := range wire.Entities {
		result.Entities = append(result.Entities, mapEntity(e))
	}
	return result, nil
}

// Wire entity types consumed by the assistant. Everything else maps to
// KindUnknown and is dropped by the flows.
const (
	wireDateTime      = "builtin.datetimeV2.datetime"
	wireDate          = "builtin.datetimeV2.date"
	wireDateRange     = "builtin.datetimeV2.daterange"
	wireDateTimeRange = "builtin.datetimeV2.datetimerange"
	wireEmail         = "builtin.email"
	wireLocation      = "Calendar.Location"
	wireSubject       = "Calendar.Subject"
	wireContactName   = "Communication.ContactName"
)

func mapEntity(e luisEntity) recognizer.Entity {
	entity := recognizer.Entity{Text: e.Entity, Kind: recognizer.KindUnknown}
	switch e.Type {
	case wireDateTime:
		entity.Kind = recognizer.KindDateTime
		entity.Start = resolveInstant(e)
	case wireDate:
		entity.Kind = recognizer.KindDate
		entity.Start = resolveInstant(e)
	case wireDateRange:
		entity.Kind = recognizer.KindDateRange
		entity.Start, entity.End = resolveRange(e)
	case wireDateTimeRange:
		entity.Kind = recognizer.KindDateTimeRange
		entity.Start, entity.End = resolveRange(e)
	case wireEmail:
		entity.Kind = recognizer.KindEmail
	case wireLocation:
		entity.Kind = recognizer.KindLocation
	case wireSubject:
		entity.Kind = recognizer.KindSubject
	case wireContactName:
		entity.Kind = recognizer.KindContactName
	}
	return entity
}

// LUIS resolved values are wall-clock local times without a zone marker.
var wireTimeLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
	"15:04:05",
	"15:04",
}

func parseWireTime(value string) time.Time {
	for _, layout := range wireTimeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Time{}
}

// Only the first resolved value is used; LUIS ranks alternatives behind it.
func resolveInstant(e luisEntity) time.Time {
	if e.Resolution == nil || len(e.Resolution.Values) == 0 {
		return time.Time{}
	}
	v := e.Resolution.Values[0]
	if v.Value != "" {
		return parseWireTime(v.Value)
	}
	return parseWireTime(v.Start)
}

func resolveRange(e luisEntity) (time.Time, time.Time) {
	if e.Resolution == nil || len(e.Resolution.Values) == 0 {
		return time.Time{}, time.Time{}
	}
	v := e.Resolution.Values[0]
	return parseWireTime(v.Start), parseWireTime(v.End)
}
