package service

import (
	"context"
	"encoding/json"

	"meeting-assistant-be/internal/dto"
	"meeting-assistant-be/internal/pkg/logger"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains the inbound message queue. Webhook controllers
// only enqueue; the actual dialog turn runs here so Slack gets its 200
// within the deadline regardless of how long the turn takes.
type consumerService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	assistant IAssistantService
	log       logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	assistant IAssistantService,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:    pubSub,
		topicName: topicName,
		assistant: assistant,
		log:       log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.InboundMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.log.Error("ConsumerService", "Failed to unmarshal message", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack() // invalid payloads would loop forever on retry
		return
	}

	if err := cs.assistant.HandleMessage(ctx, &payload); err != nil {
		// The user was already answered (or is beyond reach); a retry would
		// double-send whatever did go through.
		cs.log.Error("ConsumerService", "Dialog turn failed", map[string]interface{}{
			"conversation_id": payload.ConversationId, "error": err.Error(),
		})
	}
	msg.Ack()
}
