package chat

import (
	"sort"

	domainchat "findmeroom/internal/domain/chat"
)

type threadKey struct {
	PropertyID    string
	CounterpartID string
}

// threadGroup is one (property, counterpart) conversation seen from the
// viewer's side, before listing and user metadata are resolved.
type threadGroup struct {
	Key    threadKey
	Last   domainchat.Message
	Unread int
}

// groupByConversation partitions the viewer's messages into conversations.
// Messages must be supplied in insertion order: the last message of a group
// is the one with the greatest created_at, and when timestamps collide the
// most recently appended message wins. Unread counts only messages the
// viewer received in that exact group, never across counterparts.
// The function is pure; groups come back ordered by last activity, newest
// first.
func groupByConversation(viewerID string, msgs []domainchat.Message) []threadGroup {
	index := make(map[threadKey]int)
	groups := make([]threadGroup, 0)

	for _, msg := range msgs {
		if !msg.Involves(viewerID) {
			continue
		}
		key := threadKey{
			PropertyID:    msg.PropertyID,
			CounterpartID: msg.Counterpart(viewerID),
		}
		pos, ok := index[key]
		if !ok {
			pos = len(groups)
			index[key] = pos
			groups = append(groups, threadGroup{Key: key, Last: msg})
		} else if !msg.CreatedAt.Before(groups[pos].Last.CreatedAt) {
			groups[pos].Last = msg
		}
		if msg.ReceiverID == viewerID && !msg.IsRead {
			groups[pos].Unread++
		}
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Last.CreatedAt.After(groups[j].Last.CreatedAt)
	})
	return groups
}
