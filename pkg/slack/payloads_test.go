package slack

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReplyTextButtonValue(t *testing.T) {
	var payload ActionsPayload
	raw := `{
		"type": "interactive_message",
		"callback_id": "location_selection",
		"actions": [{"name": "location", "value": "aarhus"}]
	}`
	require.NoError(t, json.Unmarshal([]byte(raw), &payload))

	assert.Equal(t, "aarhus", payload.ReplyText())
}

func TestReplyTextSelectedOptionWins(t *testing.T) {
	var payload ActionsPayload
	raw := `{
		"type": "interactive_message",
		"callback_id": "room_selection",
		"actions": [{"name": "room", "selected_options": [{"value": "ARH-2-8p"}]}]
	}`
	require.NoError(t, json.Unmarshal([]byte(raw), &payload))

	assert.Equal(t, "ARH-2-8p", payload.ReplyText())
}

func TestReplyTextNoActions(t *testing.T) {
	payload := ActionsPayload{}
	assert.Equal(t, "", payload.ReplyText())
}
