package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"meeting-assistant-be/internal/entity"
	"meeting-assistant-be/internal/pkg/logger"
	"meeting-assistant-be/pkg/dialog"
	"meeting-assistant-be/pkg/slack"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postMessageStub(t *testing.T, auth, channel *string) *slack.Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*auth = r.Header.Get("Authorization")
		var body struct {
			Channel string `json:"channel"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		*channel = body.Channel
		_, _ = w.Write([]byte(`{"ok": true}`))
	}))
	t.Cleanup(srv.Close)

	client := slack.NewClient()
	client.BaseURL = srv.URL
	return client
}

func TestSendCapturesDebugConversations(t *testing.T) {
	sender := NewSenderService(&memBotRepo{}, slack.NewClient(), logger.NewNop())

	state := &dialog.State{ConversationId: DebugConversationPrefix + "abc", TeamId: "T1"}
	require.NoError(t, sender.Send(context.Background(), state, slack.Text("first")))
	require.NoError(t, sender.Send(context.Background(), state, slack.Text("second")))

	msgs := sender.DrainCaptured(state.ConversationId)
	require.Len(t, msgs, 2)
	assert.Equal(t, "first", msgs[0].Text)
	assert.Equal(t, "second", msgs[1].Text)

	assert.Empty(t, sender.DrainCaptured(state.ConversationId), "drain clears the buffer")
}

func TestSendFailsWithoutBotInstallation(t *testing.T) {
	sender := NewSenderService(&memBotRepo{}, slack.NewClient(), logger.NewNop())

	state := &dialog.State{ConversationId: "C1", TeamId: "T-missing"}
	err := sender.Send(context.Background(), state, slack.Text("hello"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no bot installation")
}

func TestSendUsesTeamBotToken(t *testing.T) {
	bots := &memBotRepo{bots: map[string]*entity.BotRecord{
		"T1": {TeamId: "T1", AccessToken: "xoxb-team-one"},
	}}

	var gotAuth, gotChannel string
	client := postMessageStub(t, &gotAuth, &gotChannel)
	sender := NewSenderService(bots, client, logger.NewNop())

	state := &dialog.State{ConversationId: "C42", TeamId: "T1"}
	require.NoError(t, sender.Send(context.Background(), state, slack.Text("hello")))

	assert.Equal(t, "Bearer xoxb-team-one", gotAuth)
	assert.Equal(t, "C42", gotChannel)
}
