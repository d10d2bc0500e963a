package ginserver

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	gin "github.com/gin-gonic/gin"

	appchat "findmeroom/internal/app/chat"
	"findmeroom/internal/app/dto"
	domainchat "findmeroom/internal/domain/chat"
	"findmeroom/internal/domain/listings"
)

// ChatHTTP exposes chat endpoints.
type ChatHTTP interface {
	SendMessage(c *gin.Context)
	ListConversations(c *gin.Context)
	UnreadCount(c *gin.Context)
	MarkRead(c *gin.Context)
	Thread(c *gin.Context)
}

// ChatHandler bridges HTTP with the chat service.
type ChatHandler struct {
	Chat   *appchat.Service
	Logger *slog.Logger
}

// SendMessage appends a message from the current user about a property.
func (h ChatHandler) SendMessage(c *gin.Context) {
	p, ok := requireAuth(c)
	if !ok {
		return
	}
	var req dto.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	if strings.TrimSpace(req.PropertyID) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "property_id is required"})
		return
	}

	msg, err := h.Chat.Send(c.Request.Context(), p.ID, appchat.SendInput{
		PropertyID: req.PropertyID,
		ReceiverID: req.ReceiverID,
		Body:       req.Message,
	})
	if err != nil {
		h.respondChatError(c, err, "send message", "user_id", p.ID, "property_id", req.PropertyID)
		return
	}
	c.JSON(http.StatusCreated, toChatMessage(*msg))
}

// ListConversations returns the current user's inbox.
func (h ChatHandler) ListConversations(c *gin.Context) {
	p, ok := requireAuth(c)
	if !ok {
		return
	}
	summaries, err := h.Chat.Conversations(c.Request.Context(), p.ID)
	if err != nil {
		h.respondChatError(c, err, "list conversations", "user_id", p.ID)
		return
	}
	out := make([]dto.ConversationSummary, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, dto.ConversationSummary{
			PropertyID:      s.PropertyID,
			PropertyTitle:   s.PropertyTitle,
			PropertyImage:   s.PropertyImage,
			OtherUserID:     s.CounterpartID,
			OtherUserName:   s.CounterpartName,
			LastMessage:     s.LastMessage,
			LastMessageTime: s.LastMessageTime,
			UnreadCount:     s.UnreadCount,
			IsSender:        s.IsSender,
		})
	}
	c.JSON(http.StatusOK, out)
}

// UnreadCount returns the user's total number of unread messages.
func (h ChatHandler) UnreadCount(c *gin.Context) {
	p, ok := requireAuth(c)
	if !ok {
		return
	}
	count, err := h.Chat.UnreadCount(c.Request.Context(), p.ID)
	if err != nil {
		h.respondChatError(c, err, "unread count", "user_id", p.ID)
		return
	}
	c.JSON(http.StatusOK, gin.H{"unread_count": count})
}

// MarkRead marks the listed messages as read for the current user.
func (h ChatHandler) MarkRead(c *gin.Context) {
	p, ok := requireAuth(c)
	if !ok {
		return
	}
	var req dto.MarkReadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	marked, err := h.Chat.MarkRead(c.Request.Context(), p.ID, req.MessageIDs)
	if err != nil {
		h.respondChatError(c, err, "mark read", "user_id", p.ID)
		return
	}
	c.JSON(http.StatusOK, gin.H{"marked": marked})
}

// Thread returns the message history between the current user and another
// user for one property.
func (h ChatHandler) Thread(c *gin.Context) {
	p, ok := requireAuth(c)
	if !ok {
		return
	}
	propertyID := strings.TrimSpace(c.Param("property_id"))
	if propertyID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "property id is required"})
		return
	}
	otherUserID := strings.TrimSpace(c.Query("other_user_id"))
	if otherUserID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "other_user_id is required"})
		return
	}

	messages, err := h.Chat.Thread(c.Request.Context(), p.ID, propertyID, otherUserID)
	if err != nil {
		h.respondChatError(c, err, "fetch thread", "user_id", p.ID, "property_id", propertyID)
		return
	}
	out := make([]dto.ChatMessage, 0, len(messages))
	for _, msg := range messages {
		out = append(out, toChatMessage(msg))
	}
	c.JSON(http.StatusOK, out)
}

func (h ChatHandler) respondChatError(c *gin.Context, err error, action string, attrs ...any) {
	switch {
	case errors.Is(err, listings.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "property not found"})
	case errors.Is(err, domainchat.ErrSelfContact):
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot message yourself"})
	case errors.Is(err, domainchat.ErrEmptyBody), errors.Is(err, domainchat.ErrReceiverRequired):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		if h.Logger != nil {
			h.Logger.Error("chat call failed", append([]any{"action", action, "error", err}, attrs...)...)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "chat unavailable"})
	}
}

func toChatMessage(m domainchat.Message) dto.ChatMessage {
	return dto.ChatMessage{
		ID:         m.ID,
		PropertyID: m.PropertyID,
		SenderID:   m.SenderID,
		ReceiverID: m.ReceiverID,
		Message:    m.Body,
		IsRead:     m.IsRead,
		ReadAt:     m.ReadAt,
		CreatedAt:  m.CreatedAt,
	}
}

var _ ChatHTTP = (*ChatHandler)(nil)
