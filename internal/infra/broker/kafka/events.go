package kafka

import (
	"context"
	"encoding/json"
	"time"

	"findmeroom/internal/domain/chat"
)

// ChatEventPublisher emits message-sent events keyed by conversation so
// consumers see one conversation's events in order.
type ChatEventPublisher struct {
	Producer *Producer
	Topic    string
}

type messageSentEvent struct {
	MessageID  string    `json:"message_id"`
	PropertyID string    `json:"property_id"`
	SenderID   string    `json:"sender_id"`
	ReceiverID string    `json:"receiver_id"`
	CreatedAt  time.Time `json:"created_at"`
}

func (p ChatEventPublisher) MessageSent(ctx context.Context, msg chat.Message) error {
	payload, err := json.Marshal(messageSentEvent{
		MessageID:  msg.ID,
		PropertyID: msg.PropertyID,
		SenderID:   msg.SenderID,
		ReceiverID: msg.ReceiverID,
		CreatedAt:  msg.CreatedAt,
	})
	if err != nil {
		return err
	}
	key := conversationKey(msg)
	return p.Producer.Publish(ctx, p.Topic, key, payload, map[string]string{
		"event": "chat.message-sent",
	})
}

// conversationKey is order-independent over the participant pair so both
// directions of a thread land in the same partition.
func conversationKey(msg chat.Message) string {
	a, b := msg.SenderID, msg.ReceiverID
	if b < a {
		a, b = b, a
	}
	return msg.PropertyID + "|" + a + "|" + b
}
