package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"findmeroom/internal/domain/chat"
)

func appendMessage(t *testing.T, store *MessageStore, id, propertyID, senderID, receiverID string, at time.Time) {
	t.Helper()
	err := store.Append(context.Background(), &chat.Message{
		ID:         id,
		PropertyID: propertyID,
		SenderID:   senderID,
		ReceiverID: receiverID,
		Body:       "body of " + id,
		CreatedAt:  at,
	})
	require.NoError(t, err)
}

func TestMessageStoreThreadFiltersAndOrders(t *testing.T) {
	ctx := context.Background()
	store := NewMessageStore()
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	appendMessage(t, store, "m2", "p1", "bob", "alice", base.Add(time.Minute))
	appendMessage(t, store, "m1", "p1", "alice", "bob", base)
	appendMessage(t, store, "other-property", "p2", "alice", "bob", base.Add(2*time.Minute))
	appendMessage(t, store, "other-pair", "p1", "carol", "bob", base.Add(3*time.Minute))

	thread, err := store.Thread(ctx, "p1", "alice", "bob", 0)
	require.NoError(t, err)
	require.Len(t, thread, 2)
	assert.Equal(t, "m1", thread[0].ID)
	assert.Equal(t, "m2", thread[1].ID)

	// swapping the participants returns the same thread
	swapped, err := store.Thread(ctx, "p1", "bob", "alice", 0)
	require.NoError(t, err)
	assert.Equal(t, thread, swapped)
}

func TestMessageStoreThreadLimitKeepsTail(t *testing.T) {
	ctx := context.Background()
	store := NewMessageStore()
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	for i, id := range []string{"m1", "m2", "m3", "m4"} {
		appendMessage(t, store, id, "p1", "alice", "bob", base.Add(time.Duration(i)*time.Minute))
	}

	thread, err := store.Thread(ctx, "p1", "alice", "bob", 2)
	require.NoError(t, err)
	require.Len(t, thread, 2)
	assert.Equal(t, "m3", thread[0].ID)
	assert.Equal(t, "m4", thread[1].ID)
}

func TestMessageStoreByParticipantPreservesInsertionOrder(t *testing.T) {
	ctx := context.Background()
	store := NewMessageStore()
	at := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	appendMessage(t, store, "m1", "p1", "alice", "bob", at)
	appendMessage(t, store, "m2", "p2", "bob", "carol", at)
	appendMessage(t, store, "m3", "p1", "carol", "dave", at)

	msgs, err := store.ByParticipant(ctx, "bob")
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "m1", msgs[0].ID)
	assert.Equal(t, "m2", msgs[1].ID)
}

func TestMessageStoreMarkRead(t *testing.T) {
	ctx := context.Background()
	store := NewMessageStore()
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	appendMessage(t, store, "m1", "p1", "alice", "bob", base)
	appendMessage(t, store, "m2", "p1", "alice", "bob", base.Add(time.Minute))
	appendMessage(t, store, "outgoing", "p1", "bob", "alice", base.Add(2*time.Minute))

	readAt := base.Add(time.Hour)
	marked, err := store.MarkRead(ctx, "bob", []string{"m1", "outgoing", "missing"}, readAt)
	require.NoError(t, err)
	assert.Equal(t, int64(1), marked)

	count, err := store.CountUnread(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	thread, err := store.Thread(ctx, "p1", "alice", "bob", 0)
	require.NoError(t, err)
	require.Len(t, thread, 3)
	assert.True(t, thread[0].IsRead)
	require.NotNil(t, thread[0].ReadAt)
	assert.Equal(t, readAt, *thread[0].ReadAt)
	assert.False(t, thread[1].IsRead)
	assert.False(t, thread[2].IsRead)

	// repeating the call transitions nothing new
	marked, err = store.MarkRead(ctx, "bob", []string{"m1"}, readAt.Add(time.Hour))
	require.NoError(t, err)
	assert.Zero(t, marked)
	thread, err = store.Thread(ctx, "p1", "alice", "bob", 0)
	require.NoError(t, err)
	assert.Equal(t, readAt, *thread[0].ReadAt)
}

func TestMessageStoreReturnsCopies(t *testing.T) {
	ctx := context.Background()
	store := NewMessageStore()
	appendMessage(t, store, "m1", "p1", "alice", "bob", time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))

	msgs, err := store.ByParticipant(ctx, "bob")
	require.NoError(t, err)
	msgs[0].Body = "mutated"
	msgs[0].IsRead = true

	again, err := store.ByParticipant(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, "body of m1", again[0].Body)
	assert.False(t, again[0].IsRead)
}
