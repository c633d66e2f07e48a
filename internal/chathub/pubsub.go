package chathub

import (
	"context"
	"encoding/json"
	"log"

	"github.com/redis/go-redis/v9"

	"homechefs/backend/internal/config"
)

// PubSubBridge mirrors deliveries through Redis so every server
// instance can notify its own connected clients. Without the bridge the
// hub routes locally only.
type PubSubBridge struct {
	Redis *redis.Client
	Hub   *Hub
}

func NewPubSubBridge(rdb *redis.Client, hub *Hub) *PubSubBridge {
	return &PubSubBridge{Redis: rdb, Hub: hub}
}

// Publish broadcasts a delivery to all instances, including this one.
func (b *PubSubBridge) Publish(d Delivery) error {
	raw, err := json.Marshal(d)
	if err != nil {
		return err
	}
	return b.Redis.Publish(context.Background(), config.MessageChannel, raw).Err()
}

// Listen subscribes to the message channel and feeds deliveries into
// the hub. Runs until the subscription closes.
func (b *PubSubBridge) Listen() {
	ctx := context.Background()
	pubsub := b.Redis.Subscribe(ctx, config.MessageChannel)
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		var d Delivery
		if err := json.Unmarshal([]byte(msg.Payload), &d); err != nil {
			log.Printf("Error unmarshalling Redis delivery: %v", err)
			continue
		}
		b.Hub.pubSubCh <- d
	}
}
