package scylla

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/gocql/gocql"

	"findmeroom/internal/domain/chat"
)

// MessageStore wraps Scylla queries for chat messages. The schema has no
// clustering on the participant pair, so pair and participant queries rely
// on filtering; fine at classifieds-chat volumes.
type MessageStore struct {
	session *gocql.Session
	logger  *slog.Logger
}

func NewMessageStore(session *gocql.Session, logger *slog.Logger) *MessageStore {
	return &MessageStore{session: session, logger: logger}
}

const messageColumns = `id, property_id, sender_id, receiver_id, body, is_read, read_at, created_at`

func (s *MessageStore) Append(ctx context.Context, msg *chat.Message) error {
	if s.session == nil {
		return errors.New("scylla session not initialized")
	}
	id, err := gocql.ParseUUID(msg.ID)
	if err != nil {
		return err
	}
	var readAt time.Time
	if msg.ReadAt != nil {
		readAt = msg.ReadAt.UTC()
	}
	return s.session.
		Query(`INSERT INTO chat_messages (`+messageColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			id, msg.PropertyID, msg.SenderID, msg.ReceiverID, msg.Body, msg.IsRead, readAt, msg.CreatedAt.UTC()).
		WithContext(ctx).
		Consistency(gocql.Quorum).
		Exec()
}

func (s *MessageStore) Thread(ctx context.Context, propertyID, userA, userB string, limit int) ([]chat.Message, error) {
	if s.session == nil {
		return nil, errors.New("scylla session not initialized")
	}
	iter := s.session.
		Query(`SELECT `+messageColumns+` FROM chat_messages WHERE property_id = ? ALLOW FILTERING`, propertyID).
		WithContext(ctx).
		Consistency(gocql.One).
		Iter()

	thread := make([]chat.Message, 0)
	var row messageRow
	for row.scan(iter) {
		msg := row.toMessage()
		if (msg.SenderID == userA && msg.ReceiverID == userB) ||
			(msg.SenderID == userB && msg.ReceiverID == userA) {
			thread = append(thread, msg)
		}
	}
	if err := iter.Close(); err != nil {
		return nil, err
	}
	sortMessages(thread)
	if limit > 0 && len(thread) > limit {
		thread = thread[len(thread)-limit:]
	}
	return thread, nil
}

func (s *MessageStore) ByParticipant(ctx context.Context, userID string) ([]chat.Message, error) {
	if s.session == nil {
		return nil, errors.New("scylla session not initialized")
	}
	seen := make(map[string]struct{})
	out := make([]chat.Message, 0)
	for _, column := range []string{"sender_id", "receiver_id"} {
		iter := s.session.
			Query(`SELECT `+messageColumns+` FROM chat_messages WHERE `+column+` = ? ALLOW FILTERING`, userID).
			WithContext(ctx).
			Consistency(gocql.One).
			Iter()
		var row messageRow
		for row.scan(iter) {
			msg := row.toMessage()
			if _, ok := seen[msg.ID]; ok {
				continue
			}
			seen[msg.ID] = struct{}{}
			out = append(out, msg)
		}
		if err := iter.Close(); err != nil {
			return nil, err
		}
	}
	sortMessages(out)
	return out, nil
}

func (s *MessageStore) MarkRead(ctx context.Context, receiverID string, messageIDs []string, at time.Time) (int64, error) {
	if s.session == nil {
		return 0, errors.New("scylla session not initialized")
	}
	var marked int64
	for _, raw := range messageIDs {
		id, err := gocql.ParseUUID(strings.TrimSpace(raw))
		if err != nil {
			continue
		}
		var storedReceiver string
		var isRead bool
		err = s.session.
			Query(`SELECT receiver_id, is_read FROM chat_messages WHERE id = ?`, id).
			WithContext(ctx).
			Consistency(gocql.One).
			Scan(&storedReceiver, &isRead)
		if err != nil {
			if err == gocql.ErrNotFound {
				continue
			}
			return marked, err
		}
		if storedReceiver != receiverID || isRead {
			continue
		}
		if err := s.session.
			Query(`UPDATE chat_messages SET is_read = true, read_at = ? WHERE id = ?`, at.UTC(), id).
			WithContext(ctx).
			Consistency(gocql.Quorum).
			Exec(); err != nil {
			return marked, err
		}
		marked++
	}
	return marked, nil
}

func (s *MessageStore) CountUnread(ctx context.Context, receiverID string) (int64, error) {
	if s.session == nil {
		return 0, errors.New("scylla session not initialized")
	}
	var count int64
	err := s.session.
		Query(`SELECT COUNT(*) FROM chat_messages WHERE receiver_id = ? AND is_read = false ALLOW FILTERING`, receiverID).
		WithContext(ctx).
		Consistency(gocql.One).
		Scan(&count)
	return count, err
}

type messageRow struct {
	ID         gocql.UUID
	PropertyID string
	SenderID   string
	ReceiverID string
	Body       string
	IsRead     bool
	ReadAt     time.Time
	CreatedAt  time.Time
}

func (r *messageRow) scan(iter *gocql.Iter) bool {
	return iter.Scan(&r.ID, &r.PropertyID, &r.SenderID, &r.ReceiverID, &r.Body, &r.IsRead, &r.ReadAt, &r.CreatedAt)
}

func (r messageRow) toMessage() chat.Message {
	msg := chat.Message{
		ID:         r.ID.String(),
		PropertyID: r.PropertyID,
		SenderID:   r.SenderID,
		ReceiverID: r.ReceiverID,
		Body:       r.Body,
		IsRead:     r.IsRead,
		CreatedAt:  r.CreatedAt.UTC(),
	}
	if !r.ReadAt.IsZero() {
		readAt := r.ReadAt.UTC()
		msg.ReadAt = &readAt
	}
	return msg
}

// sortMessages orders by created_at ascending with the id as a deterministic
// tiebreaker, since Scylla does not preserve insertion order across rows.
func sortMessages(msgs []chat.Message) {
	sort.SliceStable(msgs, func(i, j int) bool {
		if msgs[i].CreatedAt.Equal(msgs[j].CreatedAt) {
			return msgs[i].ID < msgs[j].ID
		}
		return msgs[i].CreatedAt.Before(msgs[j].CreatedAt)
	})
}

var _ chat.Store = (*MessageStore)(nil)
