package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"meeting-assistant-be/internal/pkg/logger"
	"meeting-assistant-be/internal/repository/contract"
	"meeting-assistant-be/pkg/dialog"
	"meeting-assistant-be/pkg/slack"
)

// DebugConversationPrefix marks conversations whose replies are captured in
// memory instead of posted to Slack, used by the debug chat endpoint.
const DebugConversationPrefix = "debug:"

// SenderService delivers the dialog engine's outbound messages using the
// bot token of the workspace the conversation belongs to.
type SenderService struct {
	bots   contract.BotRepository
	client *slack.Client
	log    logger.ILogger

	mu       sync.Mutex
	captured map[string][]slack.OutboundMessage
}

func NewSenderService(bots contract.BotRepository, client *slack.Client, log logger.ILogger) *SenderService {
	return &SenderService{
		bots:     bots,
		client:   client,
		log:      log,
		captured: make(map[string][]slack.OutboundMessage),
	}
}

var _ dialog.Sender = (*SenderService)(nil)

func (s *SenderService) Send(ctx context.Context, state *dialog.State, msg slack.OutboundMessage) error {
	if strings.HasPrefix(state.ConversationId, DebugConversationPrefix) {
		s.mu.Lock()
		s.captured[state.ConversationId] = append(s.captured[state.ConversationId], msg)
		s.mu.Unlock()
		return nil
	}

	bot, err := s.bots.Get(ctx, state.TeamId)
	if err != nil {
		return err
	}
	if bot == nil {
		return fmt.Errorf("no bot installation for team %q", state.TeamId)
	}
	return s.client.PostMessage(ctx, bot.AccessToken, state.ConversationId, msg)
}

// DrainCaptured returns and clears the replies recorded for a debug
// conversation.
func (s *SenderService) DrainCaptured(conversationId string) []slack.OutboundMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	msgs := s.captured[conversationId]
	delete(s.captured, conversationId)
	return msgs
}
