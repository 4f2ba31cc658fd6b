package ws

import (
	"context"
	"encoding/json"
	"log"

	"github.com/playmatatu/golfcard/internal/session"
	"github.com/redis/go-redis/v9"
)

// StartEventSubscriber relays session_events to the socket of the session
// they concern, so a client learns its win has been recorded.
func StartEventSubscriber(ctx context.Context, rdb *redis.Client, hub *Hub) {
	if rdb == nil {
		log.Println("[WS] Redis client not set; session event subscriber not started")
		return
	}

	pubsub := rdb.Subscribe(ctx, session.EventsChannel)
	ch := pubsub.Channel()
	go func() {
		defer pubsub.Close()
		log.Printf("[WS] %s subscriber started", session.EventsChannel)
		for msg := range ch {
			relayEvent(hub, msg.Payload)
		}
	}()
}

func relayEvent(hub *Hub, payload string) {
	var event struct {
		Type    string `json:"type"`
		Token   string `json:"token"`
		Strokes int    `json:"strokes"`
	}
	if err := json.Unmarshal([]byte(payload), &event); err != nil {
		log.Printf("[WS] invalid event payload: %v", err)
		return
	}

	switch event.Type {
	case "session_won":
		hub.SendToSession(event.Token, map[string]interface{}{
			"type":    "win_recorded",
			"strokes": event.Strokes,
		})
	default:
		log.Printf("[WS] ignoring event type=%s", event.Type)
	}
}
