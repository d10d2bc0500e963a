package dto

import "time"

// ChatMessage is a single message payload.
type ChatMessage struct {
	ID         string     `json:"id"`
	PropertyID string     `json:"property_id"`
	SenderID   string     `json:"sender_id"`
	ReceiverID string     `json:"receiver_id"`
	Message    string     `json:"message"`
	IsRead     bool       `json:"is_read"`
	ReadAt     *time.Time `json:"read_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// SendMessageRequest is the send payload; the sender comes from auth.
type SendMessageRequest struct {
	PropertyID string `json:"property_id"`
	ReceiverID string `json:"receiver_id"`
	Message    string `json:"message"`
}

// MarkReadRequest lists message ids to mark as read.
type MarkReadRequest struct {
	MessageIDs []string `json:"message_ids"`
}

// ConversationSummary is one inbox row for the current user.
type ConversationSummary struct {
	PropertyID      string    `json:"property_id"`
	PropertyTitle   string    `json:"property_title"`
	PropertyImage   string    `json:"property_image,omitempty"`
	OtherUserID     string    `json:"other_user_id"`
	OtherUserName   string    `json:"other_user_name"`
	LastMessage     string    `json:"last_message"`
	LastMessageTime time.Time `json:"last_message_time"`
	UnreadCount     int       `json:"unread_count"`
	IsSender        bool      `json:"is_sender"`
}
