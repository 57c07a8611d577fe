package websocket

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"meeting-assistant-be/internal/dto"
	"meeting-assistant-be/internal/pkg/logger"

	"github.com/redis/go-redis/v9"
)

// Hub fans assistant activity out to connected dashboard clients. With
// redis configured, events are relayed between instances so a dashboard
// sees activity no matter which instance handled the message.
type Hub struct {
	clients map[*Client]struct{}

	// Register requests from the clients.
	register chan *Client

	// Unregister requests from clients.
	unregister chan *Client

	// Lock for safe map access
	mu sync.RWMutex

	// Redis connection for cross-instance relay
	rdb *redis.Client

	logger logger.ILogger
}

const relayChannel = "activity_events"

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[*Client]struct{}),
		rdb:        rdb,
		logger:     log,
	}
}

func (h *Hub) Run() {
	if h.rdb != nil {
		go h.subscribeToRedis()
	}

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = struct{}{}
			h.mu.Unlock()
			h.logger.Info("Hub", "Client registered", map[string]interface{}{"viewer_id": client.ViewerId})

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
				h.logger.Info("Hub", "Client unregistered", map[string]interface{}{"viewer_id": client.ViewerId})
			}
			h.mu.Unlock()
		}
	}
}

// Broadcast sends an activity event to every connected client and relays it
// to the other instances.
func (h *Hub) Broadcast(activity dto.ActivityEvent) {
	data, _ := json.Marshal(map[string]interface{}{
		"type": "activity",
		"data": activity,
	})

	h.deliver(data)

	if h.rdb != nil {
		h.rdb.Publish(context.Background(), relayChannel, data)
	}
}

func (h *Hub) deliver(data []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.clients {
		select {
		case client.Send <- data:
		default:
			h.logger.Warn("Hub", "Client send buffer full, dropping", map[string]interface{}{"viewer_id": client.ViewerId})
		}
	}
}

func (h *Hub) subscribeToRedis() {
	ctx := context.Background()
	pubsub := h.rdb.Subscribe(ctx, relayChannel)
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		// Relayed payloads are already serialized envelopes.
		var check map[string]json.RawMessage
		if err := json.Unmarshal([]byte(msg.Payload), &check); err != nil {
			log.Printf("Redis msg parse error: %v", err)
			continue
		}
		h.deliver([]byte(msg.Payload))
	}
}
