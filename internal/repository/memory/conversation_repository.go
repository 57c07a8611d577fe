package memory

import (
	"time"

	"meeting-assistant-be/pkg/dialog"

	"github.com/patrickmn/go-cache"
)

// ConversationRepository keeps dialog state in process memory. Abandoned
// conversations expire after an hour, matching the cancel semantics of a
// user who simply walks away mid-flow.
type ConversationRepository struct {
	cache *cache.Cache
}

func NewConversationRepository() *ConversationRepository {
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &ConversationRepository{
		cache: c,
	}
}

func (r *ConversationRepository) Save(state *dialog.State) {
	r.cache.Set(state.ConversationId, state, cache.DefaultExpiration)
}

func (r *ConversationRepository) Get(conversationId string) (*dialog.State, bool) {
	if x, found := r.cache.Get(conversationId); found {
		return x.(*dialog.State), true
	}
	return nil, false
}

func (r *ConversationRepository) Delete(conversationId string) {
	r.cache.Delete(conversationId)
}
