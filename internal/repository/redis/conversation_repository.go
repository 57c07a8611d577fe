package redis

import (
	"context"
	"encoding/json"
	"time"

	"meeting-assistant-be/internal/pkg/logger"
	"meeting-assistant-be/pkg/dialog"

	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix = "conversation:"
	stateTTL  = 1 * time.Hour
)

// ConversationRepository keeps dialog state in redis so suspended flows
// survive process restarts and can be shared across instances. The TTL
// matches the in-memory store's expiry.
type ConversationRepository struct {
	rdb *redis.Client
	log logger.ILogger
}

func NewConversationRepository(rdb *redis.Client, log logger.ILogger) *ConversationRepository {
	return &ConversationRepository{
		rdb: rdb,
		log: log,
	}
}

func (r *ConversationRepository) Save(state *dialog.State) {
	payload, err := json.Marshal(state)
	if err != nil {
		r.log.Error("ConversationRepository", "Marshal state failed", map[string]interface{}{
			"conversation_id": state.ConversationId, "error": err.Error(),
		})
		return
	}
	if err := r.rdb.Set(context.Background(), keyPrefix+state.ConversationId, payload, stateTTL).Err(); err != nil {
		r.log.Error("ConversationRepository", "Persist state failed", map[string]interface{}{
			"conversation_id": state.ConversationId, "error": err.Error(),
		})
	}
}

func (r *ConversationRepository) Get(conversationId string) (*dialog.State, bool) {
	payload, err := r.rdb.Get(context.Background(), keyPrefix+conversationId).Bytes()
	if err != nil {
		if err != redis.Nil {
			r.log.Error("ConversationRepository", "Load state failed", map[string]interface{}{
				"conversation_id": conversationId, "error": err.Error(),
			})
		}
		return nil, false
	}

	var state dialog.State
	if err := json.Unmarshal(payload, &state); err != nil {
		r.log.Error("ConversationRepository", "Unmarshal state failed", map[string]interface{}{
			"conversation_id": conversationId, "error": err.Error(),
		})
		return nil, false
	}
	return &state, true
}

func (r *ConversationRepository) Delete(conversationId string) {
	if err := r.rdb.Del(context.Background(), keyPrefix+conversationId).Err(); err != nil {
		r.log.Error("ConversationRepository", "Delete state failed", map[string]interface{}{
			"conversation_id": conversationId, "error": err.Error(),
		})
	}
}
