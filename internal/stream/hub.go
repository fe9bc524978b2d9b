package stream

import (
	"context"
	"log"
	"sync"

	"github.com/redis/go-redis/v9"
)

const (
	channelPrefix  = "render:"
	channelSuffix  = ":frames"
	channelPattern = channelPrefix + "*" + channelSuffix
)

// Hub fans frame messages out to the websocket clients watching a session.
// With redis configured every instance publishes to render:{session}:frames
// and delivers what its pattern subscription receives.
type Hub struct {
	redis      *redis.Client
	pubsub     *redis.PubSub
	subscribed bool
	clients    map[string]map[*Client]struct{}
	mu         sync.RWMutex
}

type Client struct {
	SessionID string
	Send      chan []byte
}

func NewHub(redisClient *redis.Client) *Hub {
	h := &Hub{
		redis:   redisClient,
		clients: map[string]map[*Client]struct{}{},
	}

	if redisClient != nil {
		ctx := context.Background()
		h.pubsub = redisClient.PSubscribe(ctx, channelPattern)
		if _, err := h.pubsub.Receive(ctx); err != nil {
			log.Printf("redis subscribe error, delivering locally only: %v", err)
			_ = h.pubsub.Close()
			h.pubsub = nil
		} else {
			h.subscribed = true
			go h.forward(h.pubsub)
		}
	}
	return h
}

func (h *Hub) Register(sessionID string) *Client {
	client := &Client{
		SessionID: sessionID,
		Send:      make(chan []byte, 64),
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[sessionID] == nil {
		h.clients[sessionID] = map[*Client]struct{}{}
	}
	h.clients[sessionID][client] = struct{}{}
	return client
}

func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if sessionClients, ok := h.clients[client.SessionID]; ok {
		if _, registered := sessionClients[client]; !registered {
			return
		}
		delete(sessionClients, client)
		if len(sessionClients) == 0 {
			delete(h.clients, client.SessionID)
		}
		close(client.Send)
	}
}

// Clients reports how many viewers watch sessionID on this instance.
func (h *Hub) Clients(sessionID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[sessionID])
}

// Broadcast sends payload to every viewer of sessionID. Slow clients drop
// messages rather than block the sender.
func (h *Hub) Broadcast(sessionID string, payload []byte) {
	if h.redis != nil {
		err := h.redis.Publish(context.Background(), redisChannel(sessionID), payload).Err()
		if err == nil && h.subscribed {
			return
		}
		if err != nil {
			log.Printf("redis publish error: %v", err)
		}
	}
	h.deliver(sessionID, payload)
}

// Close stops the redis subscription.
func (h *Hub) Close() error {
	if h.pubsub == nil {
		return nil
	}
	return h.pubsub.Close()
}

func (h *Hub) deliver(sessionID string, payload []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.clients[sessionID] {
		select {
		case client.Send <- payload:
		default:
		}
	}
}

func (h *Hub) forward(pubsub *redis.PubSub) {
	for msg := range pubsub.Channel() {
		sessionID := sessionIDFromChannel(msg.Channel)
		if sessionID == "" {
			continue
		}
		h.deliver(sessionID, []byte(msg.Payload))
	}
}

func redisChannel(sessionID string) string {
	return channelPrefix + sessionID + channelSuffix
}

func sessionIDFromChannel(ch string) string {
	if len(ch) <= len(channelPrefix)+len(channelSuffix) {
		return ""
	}
	if ch[:len(channelPrefix)] != channelPrefix || ch[len(ch)-len(channelSuffix):] != channelSuffix {
		return ""
	}
	return ch[len(channelPrefix) : len(ch)-len(channelSuffix)]
}
