package chat

import (
	"context"
	"errors"
	"time"
)

var (
	ErrSelfContact      = errors.New("chat: cannot message yourself")
	ErrEmptyBody        = errors.New("chat: message body is required")
	ErrReceiverRequired = errors.New("chat: receiver is required")
	ErrNotFound         = errors.New("chat: message not found")
)

// Message is a single chat message tied to a property listing.
// Everything except the read marker is immutable after creation.
type Message struct {
	ID         string
	PropertyID string
	SenderID   string
	ReceiverID string
	Body       string
	IsRead     bool
	ReadAt     *time.Time
	CreatedAt  time.Time
}

// Counterpart returns the other participant relative to the viewer.
func (m Message) Counterpart(viewerID string) string {
	if m.SenderID == viewerID {
		return m.ReceiverID
	}
	return m.SenderID
}

// Involves reports whether the viewer is a participant of the message.
func (m Message) Involves(viewerID string) bool {
	return m.SenderID == viewerID || m.ReceiverID == viewerID
}

// Store persists messages. Append and MarkRead are the only mutations;
// MarkRead flips is_read exactly once per message and only for the receiver.
type Store interface {
	// Append inserts a new message. The message is stored as-is, including
	// its id and created_at.
	Append(ctx context.Context, msg *Message) error
	// Thread returns messages for a property exchanged between two users in
	// either direction, ordered by created_at ascending, capped at limit
	// (most recent limit messages when the thread is longer).
	Thread(ctx context.Context, propertyID, userA, userB string, limit int) ([]Message, error)
	// ByParticipant returns every message the user sent or received, in
	// insertion order.
	ByParticipant(ctx context.Context, userID string) ([]Message, error)
	// MarkRead sets is_read/read_at on the given messages, but only where
	// the user is the receiver and the message is still unread. Returns the
	// number of messages actually transitioned.
	MarkRead(ctx context.Context, receiverID string, messageIDs []string, at time.Time) (int64, error)
	// CountUnread returns the number of unread messages addressed to the user.
	CountUnread(ctx context.Context, receiverID string) (int64, error)
}
