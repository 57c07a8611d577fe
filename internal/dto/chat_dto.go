package dto

// SendChatRequest drives the local debug chat endpoint, which runs a full
// dialog turn without going through Slack.
type SendChatRequest struct {
	ConversationId string `json:"conversation_id" validate:"required"`
	UserId         string `json:"user_id" validate:"required"`
	Text           string `json:"text" validate:"required"`
}

type SendChatResponse struct {
	Replies []ChatReply `json:"replies"`
}

type ChatReply struct {
	Text        string      `json:"text"`
	Attachments interface{} `json:"attachments,omitempty"`
}
