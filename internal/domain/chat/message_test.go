package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCounterpart(t *testing.T) {
	msg := Message{SenderID: "alice", ReceiverID: "bob"}
	assert.Equal(t, "bob", msg.Counterpart("alice"))
	assert.Equal(t, "alice", msg.Counterpart("bob"))
	// a non-participant sees the sender as the other side
	assert.Equal(t, "alice", msg.Counterpart("carol"))
}

func TestInvolves(t *testing.T) {
	msg := Message{SenderID: "alice", ReceiverID: "bob"}
	assert.True(t, msg.Involves("alice"))
	assert.True(t, msg.Involves("bob"))
	assert.False(t, msg.Involves("carol"))
}
