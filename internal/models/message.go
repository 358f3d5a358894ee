package models

import "time"

// Message represents one chat message between two users
type Message struct {
	ID         string    `json:"id"`
	SenderID   string    `json:"sender_id"`
	ReceiverID string    `json:"receiver_id"`
	Body       string    `json:"body"`
	CreatedAt  time.Time `json:"created_at"`
	IsRead     bool      `json:"is_read"`
}

// IsUnreadFor returns true while the message is addressed to userID and has
// not been marked read
func (m *Message) IsUnreadFor(userID string) bool {
	return m.ReceiverID == userID && !m.IsRead
}

// UnreadIDs collects the ids of messages still unread for userID
func UnreadIDs(messages []Message, userID string) []string {
	var ids []string
	for i := range messages {
		if messages[i].IsUnreadFor(userID) {
			ids = append(ids, messages[i].ID)
		}
	}
	return ids
}
