package slack

// EventsPayload is the envelope Slack posts to the events webhook.
type EventsPayload struct {
	Token     string     `json:"token"`
	Type      string     `json:"type"`
	Challenge string     `json:"challenge,omitempty"`
	TeamId    string     `json:"team_id"`
	Event     InnerEvent `json:"event"`
}

type InnerEvent struct {
	Type    string `json:"type"`
	Subtype string `json:"subtype,omitempty"`
	User    string `json:"user"`
	BotId   string `json:"bot_id,omitempty"`
	Text    string `json:"text"`
	Channel string `json:"channel"`
	Ts      string `json:"ts"`
}

const (
	EventTypeURLVerification = "url_verification"
	EventTypeEventCallback   = "event_callback"
	InnerEventMessage        = "message"
	InnerEventAppMention     = "app_mention"
)

// CommandPayload is the form-encoded body of a slash command.
type CommandPayload struct {
	Command   string `form:"command"`
	Text      string `form:"text"`
	TeamId    string `form:"team_id"`
	ChannelId string `form:"channel_id"`
	UserId    string `form:"user_id"`
}

// ActionsPayload is the interactive-message callback (button clicks on the
// location and room selection menus).
type ActionsPayload struct {
	Type       string `json:"type"`
	CallbackId string `json:"callback_id"`
	Team       struct {
		Id string `json:"id"`
	} `json:"team"`
	Channel struct {
		Id string `json:"id"`
	} `json:"channel"`
	User struct {
		Id string `json:"id"`
	} `json:"user"`
	Actions []struct {
		Name  string `json:"name"`
		Value string `json:"value"`
		SelectedOptions []struct {
			Value string `json:"value"`
		} `json:"selected_options,omitempty"`
	} `json:"actions"`
}

// ReplyText flattens an interactive action into the free-text reply the
// suspended dialog step consumes.
func (p *ActionsPayload) ReplyText() string {
	if len(p.Actions) == 0 {
		return ""
	}
	action := p.Actions[0]
	if len(action.SelectedOptions) > 0 {
		return action.SelectedOptions[0].Value
	}
	return action.Value
}
