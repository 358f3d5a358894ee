package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"tanimarket/internal/api"
	"tanimarket/internal/models"
)

// ChatAPI is the backend surface the conversation sync needs
type ChatAPI interface {
	Conversation(ctx context.Context, userA, userB string) ([]models.Message, error)
	SendMessage(ctx context.Context, req *api.SendMessageRequest) (*models.Message, error)
	MarkRead(ctx context.Context, messageIDs []string) error
}

// ChatService opens two-party conversations and keeps at most one of them
// polling at a time
type ChatService struct {
	client       ChatAPI
	userID       string
	pollInterval time.Duration

	mu     sync.Mutex
	active *Conversation
}

// NewChatService creates a chat service for the logged-in user
func NewChatService(client ChatAPI, userID string, pollInterval time.Duration) *ChatService {
	return &ChatService{client: client, userID: userID, pollInterval: pollInterval}
}

// Open fetches the full history with peerID, marks messages addressed to
// the current user read, and returns the conversation. Any previously
// open conversation is stopped first, so at most one poll loop runs.
func (s *ChatService) Open(ctx context.Context, peerID string) (*Conversation, error) {
	s.mu.Lock()
	if s.active != nil {
		s.active.Stop()
		s.active = nil
	}
	s.mu.Unlock()

	messages, err := s.client.Conversation(ctx, s.userID, peerID)
	if err != nil {
		return nil, fmt.Errorf("failed to open conversation: %w", err)
	}

	conv := &Conversation{
		client:       s.client,
		userID:       s.userID,
		peerID:       peerID,
		pollInterval: s.pollInterval,
		messages:     messages,
	}
	conv.markRead(ctx)

	s.mu.Lock()
	s.active = conv
	s.mu.Unlock()

	return conv, nil
}

// Conversation holds the synced message view with one peer
type Conversation struct {
	client       ChatAPI
	userID       string
	peerID       string
	pollInterval time.Duration

	mu       sync.Mutex
	messages []models.Message

	pollMu sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// Messages returns a copy of the held messages in backend order
func (c *Conversation) Messages() []models.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// Len returns the held message count
func (c *Conversation) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.messages)
}

// StartPolling begins re-fetching the history on the configured interval.
// Calling it again restarts the loop; the returned function is equivalent
// to Stop.
func (c *Conversation) StartPolling(ctx context.Context) func() {
	c.pollMu.Lock()
	defer c.pollMu.Unlock()

	if c.cancel != nil {
		c.stopLocked()
	}

	pollCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	c.cancel = cancel
	c.done = done

	go func() {
		defer close(done)
		ticker := time.NewTicker(c.pollInterval)
		defer ticker.Stop()
		for {
			select {
			case <-pollCtx.Done():
				return
			case <-ticker.C:
				c.poll(pollCtx)
			}
		}
	}()

	return c.Stop
}

// Stop cancels the poll loop and waits for it to finish; no tick fires
// afterwards. Stopping a conversation that is not polling is a no-op.
func (c *Conversation) Stop() {
	c.pollMu.Lock()
	defer c.pollMu.Unlock()
	c.stopLocked()
}

func (c *Conversation) stopLocked() {
	if c.cancel == nil {
		return
	}
	c.cancel()
	<-c.done
	c.cancel = nil
	c.done = nil
}

// Send creates the message on the backend and appends it to the held view
// immediately rather than waiting for the next poll tick
func (c *Conversation) Send(ctx context.Context, body string) (*models.Message, error) {
	req := &api.SendMessageRequest{
		SenderID:   c.userID,
		ReceiverID: c.peerID,
		Body:       body,
	}

	message, err := c.client.SendMessage(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to send message: %w", err)
	}

	c.mu.Lock()
	c.messages = mergeMessages(c.messages, []models.Message{*message})
	c.mu.Unlock()

	return message, nil
}

// poll re-fetches the history and folds it into the held view. The view
// changes only when the merged set strictly grows; a fetch that fails or
// returns nothing new leaves it untouched.
func (c *Conversation) poll(ctx context.Context) {
	fetched, err := c.client.Conversation(ctx, c.userID, c.peerID)
	if err != nil {
		return
	}

	c.mu.Lock()
	merged := mergeMessages(fetched, c.messages)
	if len(merged) <= len(c.messages) {
		c.mu.Unlock()
		return
	}
	c.messages = merged
	c.mu.Unlock()

	c.markRead(ctx)
}

// markRead issues one batch read receipt for every held message still
// unread for the current user, then flips them locally
func (c *Conversation) markRead(ctx context.Context) {
	c.mu.Lock()
	ids := models.UnreadIDs(c.messages, c.userID)
	c.mu.Unlock()

	if len(ids) == 0 {
		return
	}

	if err := c.client.MarkRead(ctx, ids); err != nil {
		return
	}

	c.mu.Lock()
	for i := range c.messages {
		if c.messages[i].IsUnreadFor(c.userID) {
			c.messages[i].IsRead = true
		}
	}
	c.mu.Unlock()
}

// mergeMessages unions two message lists by id. The base list keeps its
// order; extra messages not present in base are appended in their own
// order. A concurrent poll can therefore never erase an optimistically
// appended send.
func mergeMessages(base, extra []models.Message) []models.Message {
	seen := make(map[string]struct{}, len(base))
	merged := make([]models.Message, 0, len(base)+len(extra))
	for i := range base {
		seen[base[i].ID] = struct{}{}
		merged = append(merged, base[i])
	}
	for i := range extra {
		if _, ok := seen[extra[i].ID]; !ok {
			merged = append(merged, extra[i])
		}
	}
	return merged
}
