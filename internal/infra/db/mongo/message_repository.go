package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"findmeroom/internal/domain/chat"
)

// MessageRepository persists chat messages in the "chats" collection.
type MessageRepository struct {
	col *mongo.Collection
}

func NewMessageRepository(db *mongo.Database) *MessageRepository {
	return &MessageRepository{col: db.Collection("chats")}
}

func (r *MessageRepository) Append(ctx context.Context, msg *chat.Message) error {
	_, err := r.col.InsertOne(ctx, newMessageDocument(msg))
	return err
}

func (r *MessageRepository) Thread(ctx context.Context, propertyID, userA, userB string, limit int) ([]chat.Message, error) {
	filter := bson.M{
		"property_id": propertyID,
		"$or": bson.A{
			bson.M{"sender_id": userA, "receiver_id": userB},
			bson.M{"sender_id": userB, "receiver_id": userA},
		},
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	if limit > 0 {
		// keep the most recent messages without breaking ascending order
		opts = options.Find().
			SetSort(bson.D{{Key: "created_at", Value: -1}}).
			SetLimit(int64(limit))
		cursor, err := r.col.Find(ctx, filter, opts)
		if err != nil {
			return nil, err
		}
		messages, err := decodeMessages(ctx, cursor)
		if err != nil {
			return nil, err
		}
		reverse(messages)
		return messages, nil
	}
	cursor, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	return decodeMessages(ctx, cursor)
}

func (r *MessageRepository) ByParticipant(ctx context.Context, userID string) ([]chat.Message, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"sender_id": userID},
		bson.M{"receiver_id": userID},
	}}
	cursor, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	return decodeMessages(ctx, cursor)
}

func (r *MessageRepository) MarkRead(ctx context.Context, receiverID string, messageIDs []string, at time.Time) (int64, error) {
	if len(messageIDs) == 0 {
		return 0, nil
	}
	filter := bson.M{
		"_id":         bson.M{"$in": messageIDs},
		"receiver_id": receiverID,
		"is_read":     false,
	}
	update := bson.M{"$set": bson.M{
		"is_read": true,
		"read_at": at.UnixMilli(),
	}}
	res, err := r.col.UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

func (r *MessageRepository) CountUnread(ctx context.Context, receiverID string) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{
		"receiver_id": receiverID,
		"is_read":     false,
	})
}

type messageDocument struct {
	ID         string `bson:"_id"`
	PropertyID string `bson:"property_id"`
	SenderID   string `bson:"sender_id"`
	ReceiverID string `bson:"receiver_id"`
	Body       string `bson:"body"`
	IsRead     bool   `bson:"is_read"`
	ReadAt     *int64 `bson:"read_at"`
	CreatedAt  int64  `bson:"created_at"`
}

func newMessageDocument(m *chat.Message) messageDocument {
	doc := messageDocument{
		ID:         m.ID,
		PropertyID: m.PropertyID,
		SenderID:   m.SenderID,
		ReceiverID: m.ReceiverID,
		Body:       m.Body,
		IsRead:     m.IsRead,
		CreatedAt:  m.CreatedAt.UnixMilli(),
	}
	if m.ReadAt != nil {
		ms := m.ReadAt.UnixMilli()
		doc.ReadAt = &ms
	}
	return doc
}

func (d messageDocument) toMessage() chat.Message {
	msg := chat.Message{
		ID:         d.ID,
		PropertyID: d.PropertyID,
		SenderID:   d.SenderID,
		ReceiverID: d.ReceiverID,
		Body:       d.Body,
		IsRead:     d.IsRead,
		CreatedAt:  timestampToTime(d.CreatedAt),
	}
	if d.ReadAt != nil {
		readAt := timestampToTime(*d.ReadAt)
		msg.ReadAt = &readAt
	}
	return msg
}

func decodeMessages(ctx context.Context, cursor *mongo.Cursor) ([]chat.Message, error) {
	defer cursor.Close(ctx)
	messages := make([]chat.Message, 0)
	for cursor.Next(ctx) {
		var doc messageDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		messages = append(messages, doc.toMessage())
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return messages, nil
}

func reverse(msgs []chat.Message) {
	for i, j := 0, len(msgs)-1; i < j; i, j = i+1, j-1 {
		msgs[i], msgs[j] = msgs[j], msgs[i]
	}
}

func timestampToTime(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

var _ chat.Store = (*MessageRepository)(nil)
