package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"findmeroom/internal/domain/chat"
)

// MessageStore keeps chat messages in memory, preserving insertion order.
// Useful for tests and local runs without a database.
type MessageStore struct {
	mu       sync.RWMutex
	messages []chat.Message
	byID     map[string]int
}

func NewMessageStore() *MessageStore {
	return &MessageStore{byID: make(map[string]int)}
}

func (s *MessageStore) Append(ctx context.Context, msg *chat.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byID[msg.ID] = len(s.messages)
	s.messages = append(s.messages, cloneMessage(*msg))
	return nil
}

func (s *MessageStore) Thread(ctx context.Context, propertyID, userA, userB string, limit int) ([]chat.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	thread := make([]chat.Message, 0)
	for _, msg := range s.messages {
		if msg.PropertyID != propertyID {
			continue
		}
		if (msg.SenderID == userA && msg.ReceiverID == userB) ||
			(msg.SenderID == userB && msg.ReceiverID == userA) {
			thread = append(thread, cloneMessage(msg))
		}
	}
	// stable sort keeps insertion order for equal timestamps
	sort.SliceStable(thread, func(i, j int) bool {
		return thread[i].CreatedAt.Before(thread[j].CreatedAt)
	})
	if limit > 0 && len(thread) > limit {
		thread = thread[len(thread)-limit:]
	}
	return thread, nil
}

func (s *MessageStore) ByParticipant(ctx context.Context, userID string) ([]chat.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]chat.Message, 0)
	for _, msg := range s.messages {
		if msg.Involves(userID) {
			out = append(out, cloneMessage(msg))
		}
	}
	return out, nil
}

func (s *MessageStore) MarkRead(ctx context.Context, receiverID string, messageIDs []string, at time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var marked int64
	for _, id := range messageIDs {
		pos, ok := s.byID[id]
		if !ok {
			continue
		}
		msg := &s.messages[pos]
		if msg.ReceiverID != receiverID || msg.IsRead {
			continue
		}
		readAt := at
		msg.IsRead = true
		msg.ReadAt = &readAt
		marked++
	}
	return marked, nil
}

func (s *MessageStore) CountUnread(ctx context.Context, receiverID string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int64
	for _, msg := range s.messages {
		if msg.ReceiverID == receiverID && !msg.IsRead {
			count++
		}
	}
	return count, nil
}

func cloneMessage(m chat.Message) chat.Message {
	if m.ReadAt != nil {
		readAt := *m.ReadAt
		m.ReadAt = &readAt
	}
	return m
}

var _ chat.Store = (*MessageStore)(nil)
