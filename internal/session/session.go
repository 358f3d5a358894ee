package session

import (
	"encoding/json"
	"fmt"
	"sync"

	"tanimarket/internal/models"
	"tanimarket/internal/store"
)

// Storage is the durable backing for the session state
type Storage interface {
	GetValue(key string) (string, bool, error)
	PutValue(key, value string) error
	DeleteValue(key string) error
}

// Manager owns the current identity for this client. Views hold a
// reference to it instead of re-reading ambient storage, and register
// subscribers to hear about identity changes.
type Manager struct {
	storage Storage

	mu          sync.RWMutex
	token       string
	user        *models.User
	subscribers map[int]func(*models.User)
	nextSubID   int
}

// NewManager creates a session manager, restoring any persisted identity
func NewManager(storage Storage) (*Manager, error) {
	m := &Manager{
		storage:     storage,
		subscribers: make(map[int]func(*models.User)),
	}

	token, found, err := storage.GetValue(store.KeyToken)
	if err != nil {
		return nil, fmt.Errorf("failed to restore token: %w", err)
	}
	if found {
		m.token = token
	}

	raw, found, err := storage.GetValue(store.KeyUser)
	if err != nil {
		return nil, fmt.Errorf("failed to restore user: %w", err)
	}
	if found {
		var user models.User
		if err := json.Unmarshal([]byte(raw), &user); err != nil {
			return nil, fmt.Errorf("failed to decode stored user: %w", err)
		}
		m.user = &user
	}

	return m, nil
}

// Token returns the current bearer credential, or "" when logged out
func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token
}

// Current returns the logged-in user, or nil
func (m *Manager) Current() *models.User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.user
}

// IsLoggedIn returns true while an identity is held
func (m *Manager) IsLoggedIn() bool {
	return m.Current() != nil
}

// Login stores the identity durably and notifies subscribers
func (m *Manager) Login(token string, user *models.User) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to encode user: %w", err)
	}

	if err := m.storage.PutValue(store.KeyToken, token); err != nil {
		return err
	}
	if err := m.storage.PutValue(store.KeyUser, string(raw)); err != nil {
		return err
	}

	m.mu.Lock()
	m.token = token
	m.user = user
	m.mu.Unlock()

	m.notify(user)
	return nil
}

// Logout clears the identity durably and notifies subscribers
func (m *Manager) Logout() error {
	if err := m.clear(); err != nil {
		return err
	}
	m.notify(nil)
	return nil
}

// Expire tears the session down after the backend rejected it. It is
// wired as the gateway client's unauthorized hook, so storage failures
// are swallowed: the in-memory identity is gone either way.
func (m *Manager) Expire() {
	_ = m.clear()
	m.notify(nil)
}

func (m *Manager) clear() error {
	if err := m.storage.DeleteValue(store.KeyToken); err != nil {
		return err
	}
	if err := m.storage.DeleteValue(store.KeyUser); err != nil {
		return err
	}
	if err := m.storage.DeleteValue(store.KeySelectedChatUser); err != nil {
		return err
	}

	m.mu.Lock()
	m.token = ""
	m.user = nil
	m.mu.Unlock()

	return nil
}

// Subscribe registers fn to run on every identity change (nil user means
// logged out). The returned function removes the subscription.
func (m *Manager) Subscribe(fn func(*models.User)) func() {
	m.mu.Lock()
	id := m.nextSubID
	m.nextSubID++
	m.subscribers[id] = fn
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		delete(m.subscribers, id)
		m.mu.Unlock()
	}
}

func (m *Manager) notify(user *models.User) {
	m.mu.RLock()
	fns := make([]func(*models.User), 0, len(m.subscribers))
	for _, fn := range m.subscribers {
		fns = append(fns, fn)
	}
	m.mu.RUnlock()

	for _, fn := range fns {
		fn(user)
	}
}

// SetChatPeer persists the deep-link target for the chat view. A nil
// user clears it.
func (m *Manager) SetChatPeer(user *models.User) error {
	if user == nil {
		return m.storage.DeleteValue(store.KeySelectedChatUser)
	}

	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to encode chat peer: %w", err)
	}
	return m.storage.PutValue(store.KeySelectedChatUser, string(raw))
}

// ChatPeer returns the stored chat deep-link target, or nil
func (m *Manager) ChatPeer() (*models.User, error) {
	raw, found, err := m.storage.GetValue(store.KeySelectedChatUser)
	if err != nil || !found {
		return nil, err
	}

	var user models.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return nil, fmt.Errorf("failed to decode chat peer: %w", err)
	}
	return &user, nil
}
