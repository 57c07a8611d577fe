package dto

// InboundMessage is the unit of work queued from the transport controllers
// to the consumer, one per user utterance. ConversationId is the Slack
// channel the reply goes back to.
type InboundMessage struct {
	ConversationId string `json:"conversation_id"`
	UserId         string `json:"user_id"`
	TeamId         string `json:"team_id"`
	Text           string `json:"text"`
}

// ActivityEvent is pushed to connected dashboard clients whenever the
// assistant handles something.
type ActivityEvent struct {
	Type           string `json:"type"`
	ConversationId string `json:"conversation_id,omitempty"`
	UserId         string `json:"user_id,omitempty"`
	TeamId         string `json:"team_id,omitempty"`
	Detail         string `json:"detail,omitempty"`
}
