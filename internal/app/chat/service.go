package chat

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	domainchat "findmeroom/internal/domain/chat"
	"findmeroom/internal/domain/listings"
	domainuser "findmeroom/internal/domain/user"
)

// defaultThreadLimit caps a single thread fetch. Ordering is preserved; when
// a thread is longer only the most recent messages are returned.
const defaultThreadLimit = 100

// PropertyResolver is the slice of the listing store the chat core needs.
type PropertyResolver interface {
	ByID(ctx context.Context, id string) (*listings.Property, error)
}

// UserResolver is the slice of the identity store the chat core needs.
type UserResolver interface {
	ByID(ctx context.Context, id string) (*domainuser.User, error)
}

// EventPublisher receives a notification after a message is stored.
// Publishing is best effort and never fails the send.
type EventPublisher interface {
	MessageSent(ctx context.Context, msg domainchat.Message) error
}

// ConversationSummary is one row of a user's inbox.
type ConversationSummary struct {
	PropertyID      string
	PropertyTitle   string
	PropertyImage   string
	CounterpartID   string
	CounterpartName string
	LastMessage     string
	LastMessageTime time.Time
	UnreadCount     int
	IsSender        bool
}

// Service implements message sending, thread retrieval, conversation
// aggregation and read-state transitions.
type Service struct {
	Messages    domainchat.Store
	Properties  PropertyResolver
	Users       UserResolver
	Events      EventPublisher
	Logger      *slog.Logger
	ThreadLimit int
}

// SendInput carries a send request; SenderID comes from the authenticated
// principal, never from the payload.
type SendInput struct {
	PropertyID string
	ReceiverID string
	Body       string
}

// Send validates and appends a new message. The property must exist, the
// sender must not be the receiver, and the body must be non-empty. Nothing
// is persisted when validation fails.
func (s *Service) Send(ctx context.Context, senderID string, in SendInput) (*domainchat.Message, error) {
	receiverID := strings.TrimSpace(in.ReceiverID)
	if receiverID == "" {
		return nil, domainchat.ErrReceiverRequired
	}
	if receiverID == senderID {
		return nil, domainchat.ErrSelfContact
	}
	if strings.TrimSpace(in.Body) == "" {
		return nil, domainchat.ErrEmptyBody
	}
	if _, err := s.Properties.ByID(ctx, in.PropertyID); err != nil {
		if errors.Is(err, listings.ErrNotFound) {
			return nil, listings.ErrNotFound
		}
		return nil, err
	}

	msg := &domainchat.Message{
		ID:         uuid.NewString(),
		PropertyID: in.PropertyID,
		SenderID:   senderID,
		ReceiverID: receiverID,
		Body:       in.Body,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.Messages.Append(ctx, msg); err != nil {
		return nil, err
	}
	if s.Events != nil {
		if err := s.Events.MessageSent(ctx, *msg); err != nil && s.Logger != nil {
			s.Logger.Warn("message event publish failed", "error", err, "message_id", msg.ID)
		}
	}
	return msg, nil
}

// Thread returns the ordered history between the viewer and a counterpart
// for one property. Unknown property or counterpart ids yield an empty
// thread, not an error.
func (s *Service) Thread(ctx context.Context, viewerID, propertyID, counterpartID string) ([]domainchat.Message, error) {
	limit := s.ThreadLimit
	if limit <= 0 {
		limit = defaultThreadLimit
	}
	return s.Messages.Thread(ctx, propertyID, viewerID, counterpartID, limit)
}

// Conversations builds the viewer's inbox: one summary per distinct
// (property, counterpart) pair. Conversations whose property or counterpart
// no longer resolves are omitted rather than failing the whole listing.
func (s *Service) Conversations(ctx context.Context, viewerID string) ([]ConversationSummary, error) {
	msgs, err := s.Messages.ByParticipant(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	groups := groupByConversation(viewerID, msgs)

	summaries := make([]ConversationSummary, 0, len(groups))
	for _, group := range groups {
		property, err := s.Properties.ByID(ctx, group.Key.PropertyID)
		if err != nil {
			if !errors.Is(err, listings.ErrNotFound) && s.Logger != nil {
				s.Logger.Warn("skipping conversation, property lookup failed", "error", err, "property_id", group.Key.PropertyID)
			}
			continue
		}
		counterpart, err := s.Users.ByID(ctx, group.Key.CounterpartID)
		if err != nil {
			if !errors.Is(err, domainuser.ErrNotFound) && s.Logger != nil {
				s.Logger.Warn("skipping conversation, user lookup failed", "error", err, "user_id", group.Key.CounterpartID)
			}
			continue
		}
		summaries = append(summaries, ConversationSummary{
			PropertyID:      property.ID,
			PropertyTitle:   property.Title,
			PropertyImage:   property.Thumbnail(),
			CounterpartID:   counterpart.ID,
			CounterpartName: counterpart.Name,
			LastMessage:     group.Last.Body,
			LastMessageTime: group.Last.CreatedAt,
			UnreadCount:     group.Unread,
			IsSender:        group.Last.SenderID == viewerID,
		})
	}
	return summaries, nil
}

// MarkRead transitions the given messages to read for the viewer. Ids that
// do not exist, belong to someone else, or are already read are skipped
// silently; the returned count covers only newly transitioned messages.
func (s *Service) MarkRead(ctx context.Context, viewerID string, messageIDs []string) (int64, error) {
	if len(messageIDs) == 0 {
		return 0, nil
	}
	return s.Messages.MarkRead(ctx, viewerID, messageIDs, time.Now().UTC())
}

// UnreadCount returns the viewer's total number of unread messages across
// all conversations.
func (s *Service) UnreadCount(ctx context.Context, viewerID string) (int64, error) {
	return s.Messages.CountUnread(ctx, viewerID)
}
