package api

import (
	"context"
	"net/http"

	"tanimarket/internal/models"
)

// SendMessageRequest is the payload for sending one chat message
type SendMessageRequest struct {
	SenderID   string `json:"sender_id"`
	ReceiverID string `json:"receiver_id"`
	Body       string `json:"body"`
}

type markReadRequest struct {
	MessageIDs []string `json:"message_ids"`
}

// Conversation fetches the full message history between two users, in the
// order the backend returns it
func (c *Client) Conversation(ctx context.Context, userA, userB string) ([]models.Message, error) {
	var messages []models.Message
	path := "/chat/conversation/" + userA + "/" + userB
	if err := c.do(ctx, http.MethodGet, path, nil, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

// SendMessage sends one message and returns it as created by the backend
func (c *Client) SendMessage(ctx context.Context, req *SendMessageRequest) (*models.Message, error) {
	var message models.Message
	if err := c.do(ctx, http.MethodPost, "/chat", req, &message); err != nil {
		return nil, err
	}
	return &message, nil
}

// MarkRead submits one batch read receipt for the given message ids
func (c *Client) MarkRead(ctx context.Context, messageIDs []string) error {
	req := markReadRequest{MessageIDs: messageIDs}
	return c.do(ctx, http.MethodPut, "/chat/read", req, nil)
}
