package service

import (
	"context"
	"time"

	"meeting-assistant-be/internal/dto"
	"meeting-assistant-be/internal/entity"
	"meeting-assistant-be/internal/pkg/logger"
	"meeting-assistant-be/internal/repository/contract"
	"meeting-assistant-be/internal/websocket"
	"meeting-assistant-be/pkg/dialog"
	"meeting-assistant-be/pkg/events"
	pkgNats "meeting-assistant-be/pkg/nats"
	"meeting-assistant-be/pkg/recognizer"
	"meeting-assistant-be/pkg/slack"
)

type IAssistantService interface {
	// HandleMessage runs one full dialog turn for an inbound utterance.
	HandleMessage(ctx context.Context, msg *dto.InboundMessage) error
	// HandleInstall completes the Slack app-install handshake and greets the
	// installer with the Google login walkthrough.
	HandleInstall(ctx context.Context, code string) error
	// DebugChat runs a turn without Slack and returns the replies directly.
	DebugChat(ctx context.Context, req *dto.SendChatRequest) (*dto.SendChatResponse, error)
}

type assistantService struct {
	recognizer recognizer.Recognizer
	users      IUserService
	bots       contract.BotRepository
	engine     *dialog.Engine
	sender     *SenderService
	client     *slack.Client

	clientId     string
	clientSecret string

	eventPublisher *pkgNats.Publisher
	hub            *websocket.Hub
	log            logger.ILogger
}

func NewAssistantService(
	rec recognizer.Recognizer,
	users IUserService,
	bots contract.BotRepository,
	engine *dialog.Engine,
	sender *SenderService,
	client *slack.Client,
	clientId string,
	clientSecret string,
	eventPublisher *pkgNats.Publisher,
	hub *websocket.Hub,
	log logger.ILogger,
) IAssistantService {
	return &assistantService{
		recognizer:     rec,
		users:          users,
		bots:           bots,
		engine:         engine,
		sender:         sender,
		client:         client,
		clientId:       clientId,
		clientSecret:   clientSecret,
		eventPublisher: eventPublisher,
		hub:            hub,
		log:            log,
	}
}

func (s *assistantService) HandleMessage(ctx context.Context, msg *dto.InboundMessage) error {
	user, err := s.users.Resolve(ctx, msg.UserId, msg.TeamId)
	if err != nil {
		return err
	}

	rec, err := s.recognizer.Recognize(ctx, msg.Text)
	if err != nil {
		// A recognizer outage must not break suspended flows; the reply is
		// still consumed as plain text by the waiting step.
		s.log.Warn("AssistantService", "Recognition failed", map[string]interface{}{
			"conversation_id": msg.ConversationId, "error": err.Error(),
		})
		rec = &recognizer.Result{Query: msg.Text, Intent: recognizer.IntentNone}
	}

	s.publishActivity(ctx, dto.ActivityEvent{
		Type:           "MESSAGE_RECEIVED",
		ConversationId: msg.ConversationId,
		UserId:         user.Id,
		TeamId:         msg.TeamId,
		Detail:         rec.Intent,
	})

	return s.engine.Dispatch(ctx, msg.ConversationId, user, rec)
}

func (s *assistantService) HandleInstall(ctx context.Context, code string) error {
	access, err := s.client.OAuthAccess(ctx, s.clientId, s.clientSecret, code)
	if err != nil {
		return err
	}

	bot := &entity.BotRecord{
		TeamId:      access.Team.Id,
		BotUserId:   access.BotUserId,
		BotName:     access.Team.Name,
		AccessToken: access.AccessToken,
		InstalledBy: access.AuthedUser.Id,
		CreatedAt:   time.Now(),
	}
	if err := s.bots.Save(ctx, bot); err != nil {
		return err
	}
	s.log.Info("AssistantService", "App installed", map[string]interface{}{
		"team_id": bot.TeamId, "installed_by": bot.InstalledBy,
	})

	user, err := s.users.Resolve(ctx, access.AuthedUser.Id, access.Team.Id)
	if err != nil {
		return err
	}

	s.publishActivity(ctx, dto.ActivityEvent{
		Type:   "APP_INSTALLED",
		UserId: user.Id,
		TeamId: bot.TeamId,
	})

	// The installer's DM doubles as the conversation id.
	return s.engine.StartFlow(ctx, access.AuthedUser.Id, user, dialog.FlowAppInstalled, nil)
}

func (s *assistantService) DebugChat(ctx context.Context, req *dto.SendChatRequest) (*dto.SendChatResponse, error) {
	conversationId := DebugConversationPrefix + req.ConversationId
	err := s.HandleMessage(ctx, &dto.InboundMessage{
		ConversationId: conversationId,
		UserId:         req.UserId,
		Text:           req.Text,
	})
	if err != nil {
		return nil, err
	}

	captured := s.sender.DrainCaptured(conversationId)
	resp := &dto.SendChatResponse{Replies: make([]dto.ChatReply, 0, len(captured))}
	for _, msg := range captured {
		reply := dto.ChatReply{Text: msg.Text}
		if len(msg.Attachments) > 0 {
			reply.Attachments = msg.Attachments
		}
		resp.Replies = append(resp.Replies, reply)
	}
	return resp, nil
}

// publishActivity fans the event out to the NATS bus and the dashboard
// websocket. Both are auxiliary; failures are logged, never surfaced.
func (s *assistantService) publishActivity(ctx context.Context, activity dto.ActivityEvent) {
	if s.hub != nil {
		s.hub.Broadcast(activity)
	}
	if s.eventPublisher == nil {
		return
	}
	evt := events.BaseEvent{
		Type: activity.Type,
		Data: map[string]interface{}{
			"conversation_id": activity.ConversationId,
			"user_id":         activity.UserId,
			"team_id":         activity.TeamId,
			"detail":          activity.Detail,
		},
		OccurredAt: time.Now(),
	}
	if err := s.eventPublisher.Publish(ctx, evt); err != nil {
		s.log.Warn("AssistantService", "Activity publish failed", map[string]interface{}{
			"type": activity.Type, "error": err.Error(),
		})
	}
}
